package copy_files

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdklambdagoalpha/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aws-samples/sagemaker-studio-emr/lib/utils"
)

// CopyFilesFunctionProps configures the function that backs the custom-copy
// resource of the EMR product.
type CopyFilesFunctionProps struct {
	// SourceBucket and KeyPrefix bound the objects the function may read.
	SourceBucket string
	KeyPrefix    string
	// LogLevel is passed as LOG_LEVEL, defaults to "info".
	LogLevel string
}

type CopyFilesFunction struct {
	constructs.Construct

	Function awscdklambdagoalpha.GoFunction
}

// EntryPath is the main package of the Lambda.
func EntryPath() string {
	return utils.ProjectPath("lib", "constructs", "copy_files", "lambdas", "copyfiles")
}

// NewCopyFilesFunction declares the Go Lambda. Write access to the
// destination bucket is granted by whoever declares that bucket, see Role.
func NewCopyFilesFunction(scope constructs.Construct, id string, props *CopyFilesFunctionProps) *CopyFilesFunction {
	node := constructs.NewConstruct(scope, jsii.String(id))

	logLevel := props.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	fn := awscdklambdagoalpha.NewGoFunction(node, jsii.String("copy-files"), &awscdklambdagoalpha.GoFunctionProps{
		Entry:       jsii.String(EntryPath()),
		Description: jsii.String("Copies the EMR bootstrap and step scripts into the product bucket"),
		Timeout:     awscdk.Duration_Seconds(jsii.Number(900)),
		Bundling: &awscdklambdagoalpha.BundlingOptions{
			GoBuildFlags: &[]*string{
				jsii.String("-ldflags \"-s -w\""),
			},
		},
		Environment: &map[string]*string{
			"LOG_LEVEL": jsii.String(logLevel),
		},
	})

	sourceBucket := awss3.Bucket_FromBucketName(node, jsii.String("source-bucket"), jsii.String(props.SourceBucket))
	sourceBucket.GrantRead(fn, jsii.String(props.KeyPrefix+"*"))

	return &CopyFilesFunction{
		Construct: node,
		Function:  fn,
	}
}

// Role is the execution role of the function.
func (c *CopyFilesFunction) Role() awsiam.IRole {
	return c.Function.Role()
}
