package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aws-samples/sagemaker-studio-emr/config"
	"github.com/aws-samples/sagemaker-studio-emr/lib/cdklogger"
	"github.com/aws-samples/sagemaker-studio-emr/lib/constructs/studio_product"
)

// ProductConstructID is the id of the studio product inside the stack.
const ProductConstructID = "sagemaker-emr-product"

type SageMakerEmrStackProps struct {
	awscdk.StackProps
}

// SageMakerEmrStack deploys a VPC, a SageMaker domain and a Service Catalog
// product that lets Studio users launch an EMR cluster.
// The stack stays a thin layer over the construct.
func SageMakerEmrStack(scope constructs.Construct, id string, props *SageMakerEmrStackProps) awscdk.Stack {
	var sprops awscdk.StackProps
	if props != nil {
		sprops = props.StackProps
	}
	stack := awscdk.NewStack(scope, jsii.String(id), &sprops)

	productCfg := config.ProductConfig(stack)
	envVars := config.GetEnvironmentVariables[config.ProductEnvironmentVariables](stack)
	cdklogger.LogInfo(stack, "", "Product config loaded from %s. Domain=%s, Product=%s %s.",
		config.ProductConfigPath(stack), productCfg.Studio.DomainName, productCfg.Product.Name, productCfg.Product.VersionName)

	studio_product.NewStudioProduct(stack, ProductConstructID, &studio_product.StudioProductProps{
		Config:   productCfg,
		LogLevel: envVars.CopyFilesLogLevel,
	})

	return stack
}
