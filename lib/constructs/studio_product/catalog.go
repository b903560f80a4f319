package studio_product

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsservicecatalog"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"

	"github.com/aws-samples/sagemaker-studio-emr/config"
	"github.com/aws-samples/sagemaker-studio-emr/config/product"
	"github.com/aws-samples/sagemaker-studio-emr/lib/cdklogger"
	"github.com/aws-samples/sagemaker-studio-emr/scripts/renderer"
)

const (
	// StudioVisibilityTag makes a product show up in the EMR cluster
	// templates of SageMaker Studio.
	StudioVisibilityTag      = "sagemaker:studio-visibility:emr"
	StudioVisibilityTagValue = "true"
)

// ProductDescription renders the description shown next to the product.
func ProductDescription(productName string) (string, error) {
	params := lo.Map(config.ProductParameterDefinitions(), func(d config.ParameterDefinition, _ int) renderer.ParameterDescriptor {
		return renderer.ParameterDescriptor{
			Name:          d.Name,
			Description:   d.Description,
			Default:       d.Default,
			AllowedValues: d.AllowedValues,
		}
	})

	return renderer.Render(renderer.TplProductDescription, renderer.ProductDescriptionData{
		ProductName: productName,
		Parameters:  params,
	})
}

func newPortfolio(scope constructs.Construct, cfg product.PortfolioConfig) awsservicecatalog.Portfolio {
	return awsservicecatalog.NewPortfolio(scope, jsii.String("sagemaker-emr-portfolio"), &awsservicecatalog.PortfolioProps{
		DisplayName:  jsii.String(cfg.DisplayName),
		ProviderName: jsii.String(cfg.ProviderName),
	})
}

// newProduct publishes stack as the only version of the product.
func newProduct(scope constructs.Construct, cfg product.ProductConfig, stack awsservicecatalog.ProductStack) awsservicecatalog.CloudFormationProduct {
	description, err := ProductDescription(cfg.Name)
	if err != nil {
		cdklogger.LogError(scope, "", "rendering product description: %v", err)
		panic(fmt.Errorf("rendering product description: %w", err))
	}

	p := awsservicecatalog.NewCloudFormationProduct(scope, jsii.String("sagemaker-emr-product"), &awsservicecatalog.CloudFormationProductProps{
		ProductName: jsii.String(cfg.Name),
		Owner:       jsii.String(cfg.Owner),
		Description: jsii.String(description),
		ProductVersions: &[]*awsservicecatalog.CloudFormationProductVersion{
			{
				ProductVersionName:     jsii.String(cfg.VersionName),
				CloudFormationTemplate: awsservicecatalog.CloudFormationTemplate_FromProductStack(stack),
			},
		},
	})

	awscdk.Tags_Of(p).Add(jsii.String(StudioVisibilityTag), jsii.String(StudioVisibilityTagValue), nil)

	return p
}
