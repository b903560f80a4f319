package emr_product

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsemr"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aws-samples/sagemaker-studio-emr/config"
	"github.com/aws-samples/sagemaker-studio-emr/config/product"
	"github.com/aws-samples/sagemaker-studio-emr/scripts/renderer"
)

const (
	sampleBucketVariable = "SampleDataBucket"
	coreInstanceCount    = 2
	mainInstanceCount    = 1
	nodeVolumeSizeGb     = 320
	rootVolumeSizeGb     = 100
)

type clusterInput struct {
	Params           config.ProductParams
	SampleData       product.SampleDataConfig
	SampleBucketName *string
	SubnetId         *string
	MainSG           *string
	CoreSG           *string
	SvcSG            *string
	JobFlowProfile   *string
	ServiceRole      *string
}

// sampleDataURI returns an s3:// URI inside the product bucket, file may be
// empty to address the prefix.
func sampleDataURI(in clusterInput, file string) *string {
	body := renderer.MustRenderS3URI(renderer.S3URIData{
		BucketVariable: sampleBucketVariable,
		Prefix:         in.SampleData.KeyPrefix,
		File:           file,
	})
	return awscdk.Fn_Sub(jsii.String(body), &map[string]*string{
		sampleBucketVariable: in.SampleBucketName,
	})
}

func instanceGroup(name string, count int, instanceType *string) *awsemr.CfnCluster_InstanceGroupConfigProperty {
	return &awsemr.CfnCluster_InstanceGroupConfigProperty{
		Name:          jsii.String(name),
		InstanceCount: jsii.Number(count),
		InstanceType:  instanceType,
		Market:        jsii.String("ON_DEMAND"),
		EbsConfiguration: &awsemr.CfnCluster_EbsConfigurationProperty{
			EbsBlockDeviceConfigs: &[]*awsemr.CfnCluster_EbsBlockDeviceConfigProperty{
				{
					VolumeSpecification: &awsemr.CfnCluster_VolumeSpecificationProperty{
						SizeInGb:   jsii.Number(nodeVolumeSizeGb),
						VolumeType: jsii.String("gp2"),
					},
				},
			},
			EbsOptimized: jsii.Bool(true),
		},
	}
}

// newCluster declares the EMR cluster. There is no L2 construct for EMR.
func newCluster(scope constructs.Construct, in clusterInput) awsemr.CfnCluster {
	return awsemr.NewCfnCluster(scope, jsii.String("cluster"), &awsemr.CfnClusterProps{
		Name: in.Params.ValueAsString(config.EmrClusterNameParamName),
		Applications: &[]*awsemr.CfnCluster_ApplicationProperty{
			{Name: jsii.String("Spark")},
			{Name: jsii.String("Hive")},
			{Name: jsii.String("Livy")},
		},
		BootstrapActions: &[]*awsemr.CfnCluster_BootstrapActionConfigProperty{
			{
				Name: jsii.String("Dummy bootstrap action"),
				ScriptBootstrapAction: &awsemr.CfnCluster_ScriptBootstrapActionConfigProperty{
					Args: jsii.Strings("dummy", "parameter"),
					Path: sampleDataURI(in, in.SampleData.BootstrapScript),
				},
			},
		},
		AutoScalingRole: jsii.String("EMR_AutoScaling_DefaultRole"),
		Configurations: &[]*awsemr.CfnCluster_ConfigurationProperty{
			{
				Classification: jsii.String("livy-conf"),
				ConfigurationProperties: &map[string]*string{
					"livy.server.session.timeout": jsii.String("2h"),
				},
			},
		},
		EbsRootVolumeSize: jsii.Number(rootVolumeSizeGb),
		Instances: &awsemr.CfnCluster_JobFlowInstancesConfigProperty{
			CoreInstanceGroup: instanceGroup("coreNode", coreInstanceCount,
				in.Params.ValueAsString(config.CoreInstanceTypeParamName)),
			MasterInstanceGroup: instanceGroup("mainNode", mainInstanceCount,
				in.Params.ValueAsString(config.MainInstanceTypeParamName)),
			TerminationProtected:          jsii.Bool(false),
			Ec2SubnetId:                   in.SubnetId,
			EmrManagedMasterSecurityGroup: in.MainSG,
			EmrManagedSlaveSecurityGroup:  in.CoreSG,
			ServiceAccessSecurityGroup:    in.SvcSG,
		},
		JobFlowRole:       in.JobFlowProfile,
		ServiceRole:       in.ServiceRole,
		LogUri:            sampleDataURI(in, ""),
		ReleaseLabel:      in.Params.ValueAsString(config.EmrReleaseVersionParamName),
		VisibleToAllUsers: jsii.Bool(true),
		Steps: &[]*awsemr.CfnCluster_StepConfigProperty{
			{
				Name:            jsii.String("run any bash or java job in spark"),
				ActionOnFailure: jsii.String("CONTINUE"),
				HadoopJarStep: &awsemr.CfnCluster_HadoopJarStepConfigProperty{
					Args:      &[]*string{sampleDataURI(in, in.SampleData.StepScript)},
					Jar:       awscdk.Fn_Sub(jsii.String("s3://${AWS::Region}.elasticmapreduce/libs/script-runner/script-runner.jar"), nil),
					MainClass: jsii.String(""),
				},
			},
		},
	})
}
