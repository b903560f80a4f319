package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"

	"github.com/aws-samples/sagemaker-studio-emr/config"
	"github.com/aws-samples/sagemaker-studio-emr/lib/utils"
	"github.com/aws-samples/sagemaker-studio-emr/stacks"
)

func main() {
	// construct annotations are mirrored to zap, silent unless asked for
	if os.Getenv("CDK_DEBUG") != "" {
		logger := zap.Must(zap.NewDevelopment())
		defer logger.Sync()
		zap.ReplaceGlobals(logger)
	}

	app := awscdk.NewApp(nil)

	stacks.SageMakerEmrStack(
		app,
		config.StackName(app),
		&stacks.SageMakerEmrStackProps{
			StackProps: awscdk.StackProps{
				Env:         utils.CdkEnv(),
				Description: jsii.String("SageMaker Studio domain with a Service Catalog product for EMR clusters"),
			},
		},
	)

	app.Synth(nil)
}
