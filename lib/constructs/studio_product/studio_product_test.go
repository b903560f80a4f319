package studio_product_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws-samples/sagemaker-studio-emr/config"
	"github.com/aws-samples/sagemaker-studio-emr/config/product"
	"github.com/aws-samples/sagemaker-studio-emr/lib/constructs/studio_product"
	"github.com/aws-samples/sagemaker-studio-emr/tests/testutil"
)

func synth(t *testing.T, cfg product.Config) (*studio_product.StudioProduct, assertions.Template) {
	t.Helper()
	stack := testutil.NewStack(t, nil)
	sp := studio_product.NewStudioProduct(stack, "sagemaker-emr-product", &studio_product.StudioProductProps{
		Config: cfg,
	})
	return sp, assertions.Template_FromStack(stack, nil)
}

func TestEndpointID(t *testing.T) {
	assert.Equal(t, "ep-sagemaker-api", studio_product.EndpointID("sagemaker.api"))
	assert.Equal(t, "ep-ecr-dkr", studio_product.EndpointID("ecr.dkr"))
	assert.Equal(t, "ep-sts", studio_product.EndpointID("sts"))
}

func TestProductDescription(t *testing.T) {
	out, err := studio_product.ProductDescription("SageMaker EMR Product")
	require.NoError(t, err)

	for _, def := range config.ProductParameterDefinitions() {
		assert.Contains(t, out, def.Name)
	}
	assert.Contains(t, out, "m3.2xlarge")
}

func TestStudioProduct_Network(t *testing.T) {
	sp, template := synth(t, product.Default())
	require.Len(t, sp.Endpoints, 7)

	template.ResourceCountIs(jsii.String("AWS::EC2::VPC"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::EC2::VPCEndpoint"), jsii.Number(7))
	template.HasResourceProperties(jsii.String("AWS::EC2::VPCEndpoint"), map[string]interface{}{
		"ServiceName":       map[string]interface{}{"Fn::Sub": "com.amazonaws.${AWS::Region}.sagemaker.api"},
		"PrivateDnsEnabled": true,
		"VpcEndpointType":   "Interface",
	})

	// only the studio rules are standalone ingress resources
	template.ResourceCountIs(jsii.String("AWS::EC2::SecurityGroupIngress"), jsii.Number(3))
	template.HasResourceProperties(jsii.String("AWS::EC2::SecurityGroupIngress"), map[string]interface{}{
		"IpProtocol": "-1",
		"FromPort":   0,
		"ToPort":     65535,
	})
	template.HasResourceProperties(jsii.String("AWS::EC2::SecurityGroup"), map[string]interface{}{
		"GroupDescription": "Allow TLS for VPC endpoint",
	})

	for _, name := range []string{"vpc-id", "subnet-id", "sg-id", "copy-files-fn-arn", "copy-files-role-arn"} {
		template.HasOutput(jsii.String("*"), map[string]interface{}{
			"Export": map[string]interface{}{"Name": name},
		})
	}
}

func TestStudioProduct_Catalog(t *testing.T) {
	_, template := synth(t, product.Default())

	template.HasResourceProperties(jsii.String("AWS::ServiceCatalog::Portfolio"), map[string]interface{}{
		"DisplayName":  "SageMaker EMR Product Portfolio",
		"ProviderName": "AWS",
	})
	template.HasResourceProperties(jsii.String("AWS::ServiceCatalog::CloudFormationProduct"), map[string]interface{}{
		"Name":  "SageMaker EMR Product",
		"Owner": "AWS",
		"ProvisioningArtifactParameters": []interface{}{
			assertions.Match_ObjectLike(&map[string]interface{}{"Name": "v1"}),
		},
		"Tags": assertions.Match_ArrayWith(&[]interface{}{
			map[string]interface{}{"Key": "sagemaker:studio-visibility:emr", "Value": "true"},
		}),
	})
	template.ResourceCountIs(jsii.String("AWS::ServiceCatalog::PortfolioProductAssociation"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::ServiceCatalog::LaunchRoleConstraint"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::ServiceCatalog::PortfolioPrincipalAssociation"), jsii.Number(1))
}

func TestStudioProduct_Roles(t *testing.T) {
	_, template := synth(t, product.Default())

	template.HasResourceProperties(jsii.String("AWS::IAM::Policy"), map[string]interface{}{
		"PolicyDocument": map[string]interface{}{
			"Statement": assertions.Match_ArrayWith(&[]interface{}{
				map[string]interface{}{"Action": "s3:*", "Effect": "Allow", "Resource": "*"},
				map[string]interface{}{"Action": "elasticmapreduce:RunJobFlow", "Effect": "Allow", "Resource": "*"},
				map[string]interface{}{"Action": "cloudformation:CreateStack", "Effect": "Allow", "Resource": "*"},
			}),
		},
	})

	template.HasResourceProperties(jsii.String("AWS::IAM::Policy"), map[string]interface{}{
		"PolicyDocument": map[string]interface{}{
			"Statement": assertions.Match_ArrayWith(&[]interface{}{
				map[string]interface{}{
					"Action":   "iam:PassRole",
					"Effect":   "Allow",
					"Resource": "*",
					"Condition": map[string]interface{}{
						"StringEquals": map[string]interface{}{"iam:PassedToService": "sagemaker.amazonaws.com"},
					},
				},
			}),
		},
	})

	template.HasResourceProperties(jsii.String("AWS::IAM::Role"), map[string]interface{}{
		"AssumeRolePolicyDocument": assertions.Match_ObjectLike(&map[string]interface{}{
			"Statement": []interface{}{
				assertions.Match_ObjectLike(&map[string]interface{}{
					"Principal": map[string]interface{}{"Service": "servicecatalog.amazonaws.com"},
				}),
			},
		}),
	})

	template.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]interface{}{
		"Timeout": 900,
	})
}

func TestStudioProduct_Domain(t *testing.T) {
	_, template := synth(t, product.Default())

	template.HasResourceProperties(jsii.String("AWS::SageMaker::Domain"), map[string]interface{}{
		"DomainName":           "CDKSample",
		"AuthMode":             "IAM",
		"AppNetworkAccessType": "VpcOnly",
		"SubnetIds":            assertions.Match_AnyValue(),
	})
	template.HasResourceProperties(jsii.String("AWS::SageMaker::UserProfile"), map[string]interface{}{
		"UserProfileName": "cdk-studio-user",
	})
}

func TestStudioProduct_CustomConfig(t *testing.T) {
	cfg := product.Default()
	cfg.Endpoints = []string{"sts", "logs"}
	cfg.Studio.DomainName = "analytics"
	cfg.Exports.VpcId = "team-vpc-id"

	sp, template := synth(t, cfg)
	assert.Len(t, sp.Endpoints, 2)

	template.ResourceCountIs(jsii.String("AWS::EC2::VPCEndpoint"), jsii.Number(2))
	template.HasResourceProperties(jsii.String("AWS::SageMaker::Domain"), map[string]interface{}{
		"DomainName": "analytics",
	})
	template.HasOutput(jsii.String("*"), map[string]interface{}{
		"Export": map[string]interface{}{"Name": "team-vpc-id"},
	})

	// the product imports under the same names
	testutil.ProductStackTemplate(t, sp.EmrProduct.ProductStack).
		HasResourceProperties(jsii.String("AWS::EC2::SecurityGroup"), map[string]interface{}{
			"VpcId": map[string]interface{}{"Fn::ImportValue": "team-vpc-id"},
		})
}
