package studio_product

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssagemaker"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsservicecatalog"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aws-samples/sagemaker-studio-emr/config/product"
	"github.com/aws-samples/sagemaker-studio-emr/lib/cdklogger"
	"github.com/aws-samples/sagemaker-studio-emr/lib/constructs/copy_files"
	"github.com/aws-samples/sagemaker-studio-emr/lib/constructs/emr_product"
)

// StudioProductProps holds inputs for creating a StudioProduct.
// Config usually comes from config.ProductConfig.
type StudioProductProps struct {
	Config product.Config
	// LogLevel of the copy-files function, optional
	LogLevel string
}

// StudioProduct is a VPC with a SageMaker Studio domain and a Service
// Catalog portfolio offering the EMR product to the domain's users.
type StudioProduct struct {
	constructs.Construct

	Vpc           awsec2.Vpc
	Endpoints     []awsec2.InterfaceVpcEndpoint
	VpcEndpointSG awsec2.SecurityGroup
	SageMakerSG   awsec2.SecurityGroup
	CopyFiles     *copy_files.CopyFilesFunction
	Portfolio     awsservicecatalog.Portfolio
	EmrProduct    *emr_product.EmrProduct
	Product       awsservicecatalog.CloudFormationProduct
	LaunchRole    awsiam.Role
	ExecutionRole awsiam.Role
	Domain        awssagemaker.CfnDomain
	UserProfile   awssagemaker.CfnUserProfile
}

func NewStudioProduct(scope constructs.Construct, id string, props *StudioProductProps) *StudioProduct {
	node := constructs.NewConstruct(scope, jsii.String(id))
	sp := &StudioProduct{Construct: node}
	cfg := props.Config

	sp.Vpc = awsec2.NewVpc(node, jsii.String("vpc"), &awsec2.VpcProps{})
	sp.Endpoints = addEndpoints(sp.Vpc, cfg.Endpoints)
	cdklogger.LogInfo(node, "", "Added %d interface endpoints.", len(sp.Endpoints))

	subnetId := (*sp.Vpc.PrivateSubnets())[0].SubnetId()

	// the product template resolves these by name when it is provisioned
	export(node, "vpcidout", "VPC Id output export", sp.Vpc.VpcId(), cfg.Exports.VpcId)
	export(node, "subnetidout", "Subnet Id output export", subnetId, cfg.Exports.SubnetId)

	sp.CopyFiles = copy_files.NewCopyFilesFunction(node, "copy-files", &copy_files.CopyFilesFunctionProps{
		SourceBucket: cfg.SampleData.SourceBucket,
		KeyPrefix:    cfg.SampleData.KeyPrefix,
		LogLevel:     props.LogLevel,
	})
	export(node, "copyfilesfnout", "Copy files function ARN output export",
		sp.CopyFiles.Function.FunctionArn(), cfg.Exports.CopyFilesFunctionArn)
	export(node, "copyfilesroleout", "Copy files role ARN output export",
		sp.CopyFiles.Role().RoleArn(), cfg.Exports.CopyFilesRoleArn)

	sp.Portfolio = newPortfolio(node, cfg.Portfolio)

	sp.EmrProduct = emr_product.NewEmrProduct(node, "EmrProduct", &emr_product.EmrProductProps{
		Exports:    cfg.Exports,
		SampleData: cfg.SampleData,
	})
	sp.Product = newProduct(node, cfg.Product, sp.EmrProduct.ProductStack)
	sp.Portfolio.AddProduct(sp.Product)

	sp.LaunchRole = newLaunchRole(node)
	sp.Portfolio.SetLaunchRole(sp.Product, sp.LaunchRole, nil)

	groups := newStudioGroups(node, id, sp.Vpc)
	sp.VpcEndpointSG = groups.VpcEndpoint
	sp.SageMakerSG = groups.SageMaker

	export(node, id+"smsgidout", "SageMaker security group id output export",
		sp.SageMakerSG.SecurityGroupId(), cfg.Exports.SageMakerSGId)

	sp.ExecutionRole = newExecutionRole(node)
	sp.Portfolio.GiveAccessToRole(sp.ExecutionRole)

	sp.Domain = awssagemaker.NewCfnDomain(node, jsii.String("domain"), &awssagemaker.CfnDomainProps{
		AppNetworkAccessType: jsii.String("VpcOnly"),
		AuthMode:             jsii.String("IAM"),
		DefaultUserSettings: &awssagemaker.CfnDomain_UserSettingsProperty{
			ExecutionRole:  sp.ExecutionRole.RoleArn(),
			SecurityGroups: &[]*string{sp.SageMakerSG.SecurityGroupId()},
		},
		DomainName: jsii.String(cfg.Studio.DomainName),
		VpcId:      sp.Vpc.VpcId(),
		SubnetIds:  &[]*string{subnetId},
	})

	sp.UserProfile = awssagemaker.NewCfnUserProfile(node, jsii.String("user-profile"), &awssagemaker.CfnUserProfileProps{
		DomainId:        sp.Domain.AttrDomainId(),
		UserProfileName: jsii.String(cfg.Studio.UserProfileName),
		UserSettings: &awssagemaker.CfnUserProfile_UserSettingsProperty{
			ExecutionRole: sp.ExecutionRole.RoleArn(),
		},
	})

	return sp
}

func export(scope constructs.Construct, id, description string, value *string, exportName string) awscdk.CfnOutput {
	return awscdk.NewCfnOutput(scope, jsii.String(id), &awscdk.CfnOutputProps{
		Description: jsii.String(description),
		Value:       value,
		ExportName:  jsii.String(exportName),
	})
}
