package emr_product

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsemr"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsservicecatalog"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aws-samples/sagemaker-studio-emr/config"
	"github.com/aws-samples/sagemaker-studio-emr/config/product"
	"github.com/aws-samples/sagemaker-studio-emr/lib/cdklogger"
	"github.com/aws-samples/sagemaker-studio-emr/lib/copyfiles"
	"github.com/aws-samples/sagemaker-studio-emr/lib/ingress"
)

// EmrProductProps configures the product template.
//
// The template is provisioned by Service Catalog on its own, so nothing from
// the parent stack can be passed by reference. Every outside value is
// imported by export name.
type EmrProductProps struct {
	Exports    product.ExportsConfig
	SampleData product.SampleDataConfig
}

// EmrProduct is the stack Service Catalog provisions when a Studio user
// launches the product: an EMR cluster with the sample scripts in place.
type EmrProduct struct {
	awsservicecatalog.ProductStack

	Params           config.ProductParams
	SampleDataBucket awss3.Bucket
	MainSG           awsec2.CfnSecurityGroup
	CoreSG           awsec2.CfnSecurityGroup
	SvcSG            awsec2.CfnSecurityGroup
	JobFlowRole      awsiam.Role
	ServiceRole      awsiam.CfnRole
	Cluster          awsemr.CfnCluster
	CopyFiles        awscdk.CustomResource
}

func NewEmrProduct(scope constructs.Construct, id string, props *EmrProductProps) *EmrProduct {
	stack := awsservicecatalog.NewProductStack(scope, jsii.String(id), nil)
	p := &EmrProduct{ProductStack: stack}

	// CloudFormation parameters are the only input Service Catalog users have
	p.Params = config.NewProductParams(stack)

	// autoDeleteObjects would add an asset backed custom resource, the
	// copy-files function removes its own objects on delete instead
	p.SampleDataBucket = awss3.NewBucket(stack, jsii.String("sample-data"), &awss3.BucketProps{
		RemovalPolicy: awscdk.RemovalPolicy_RETAIN,
	})

	// L1 groups only need the VPC id, an L2 group would need the VPC itself
	vpcId := awscdk.Fn_ImportValue(jsii.String(props.Exports.VpcId))
	p.MainSG = newSecurityGroup(stack, "main-sg", "SageMaker EMR Cluster Main", vpcId)
	p.CoreSG = newSecurityGroup(stack, "core-sg", "SageMaker EMR Cluster Core", vpcId)
	p.SvcSG = newSecurityGroup(stack, "svc-sg", "SageMaker EMR Cluster Service", vpcId)

	ingress.AddAll(stack, ClusterIngressRules(ClusterGroups{
		Main:      ingress.Group(p.MainSG),
		Core:      ingress.Group(p.CoreSG),
		Svc:       ingress.Group(p.SvcSG),
		SageMaker: ingress.Literal(*awscdk.Fn_ImportValue(jsii.String(props.Exports.SageMakerSGId))),
	}))

	jobFlowRole, jobFlowProfile := newJobFlowProfile(stack, p.SampleDataBucket)
	p.JobFlowRole = jobFlowRole
	p.ServiceRole = newServiceRole(stack)

	p.Cluster = newCluster(stack, clusterInput{
		Params:           p.Params,
		SampleData:       props.SampleData,
		SampleBucketName: p.SampleDataBucket.BucketName(),
		SubnetId:         awscdk.Fn_ImportValue(jsii.String(props.Exports.SubnetId)),
		MainSG:           p.MainSG.Ref(),
		CoreSG:           p.CoreSG.Ref(),
		SvcSG:            p.SvcSG.Ref(),
		JobFlowProfile:   jobFlowProfile.Ref(),
		ServiceRole:      p.ServiceRole.Ref(),
	})

	p.CopyFiles = newCopyFilesResource(stack, p.SampleDataBucket, props)

	// the step script must be in the bucket before the cluster starts
	p.Cluster.Node().AddDependency(p.CopyFiles)

	awscdk.NewCfnOutput(stack, jsii.String("sample-data-bucket-output"), &awscdk.CfnOutputProps{
		Description: jsii.String("Bucket Name for Amazon S3 bucket"),
		Value:       p.SampleDataBucket.BucketName(),
	})

	awscdk.NewCfnOutput(stack, jsii.String("emr-main-dns-name-output"), &awscdk.CfnOutputProps{
		Description: jsii.String("DNS Name of the EMR Master Node"),
		Value:       p.Cluster.AttrMasterPublicDns(),
	})

	cdklogger.LogInfo(stack, "", "EMR product copies %v from s3://%s/%s",
		props.SampleData.Objects(), props.SampleData.SourceBucket, props.SampleData.KeyPrefix)

	return p
}

func newSecurityGroup(scope constructs.Construct, id, description string, vpcId *string) awsec2.CfnSecurityGroup {
	return awsec2.NewCfnSecurityGroup(scope, jsii.String(id), &awsec2.CfnSecurityGroupProps{
		GroupDescription: jsii.String(description),
		VpcId:            vpcId,
	})
}

// newCopyFilesResource invokes the copy-files function of the parent stack.
// The shared function role is let into the sample bucket through the bucket
// policy, which belongs to this product only.
func newCopyFilesResource(scope constructs.Construct, bucket awss3.Bucket, props *EmrProductProps) awscdk.CustomResource {
	roleArn := awscdk.Fn_ImportValue(jsii.String(props.Exports.CopyFilesRoleArn))
	bucket.AddToResourcePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Principals: &[]awsiam.IPrincipal{awsiam.NewArnPrincipal(roleArn)},
		Actions:    jsii.Strings(copyFilesBucketActions...),
		Resources:  &[]*string{bucket.BucketArn(), bucket.ArnForObjects(jsii.String("*"))},
	}))

	cr := awscdk.NewCustomResource(scope, jsii.String("custom-copy"), &awscdk.CustomResourceProps{
		ServiceToken: awscdk.Fn_ImportValue(jsii.String(props.Exports.CopyFilesFunctionArn)),
		Properties: &map[string]interface{}{
			copyfiles.PropDestBucket:   bucket.BucketName(),
			copyfiles.PropSourceBucket: props.SampleData.SourceBucket,
			copyfiles.PropPrefix:       props.SampleData.KeyPrefix,
			copyfiles.PropObjects:      props.SampleData.Objects(),
		},
	})

	// the policy has to outlive the resource, Delete removes the objects
	cr.Node().AddDependency(bucket.Policy())

	return cr
}

// copyFilesBucketActions is what Copy and Remove need on the destination.
var copyFilesBucketActions = []string{
	"s3:GetBucket*",
	"s3:List*",
	"s3:GetObject*",
	"s3:PutObject",
	"s3:PutObjectTagging",
	"s3:DeleteObject*",
	"s3:Abort*",
}
