package config

import (
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// Context keys, set in cdk.json or with --context.
const (
	StackNameContextKey         = "stackName"
	ProductConfigPathContextKey = "productConfigPath"
)

// StackName returns the name of the main stack.
// DO NOT modify this function, change stack name by 'cdk.json/context/stackName'.
func StackName(scope constructs.Construct) string {
	return contextString(scope, StackNameContextKey, "CdkSagemakerEmrStack")
}

// ProductConfigPath returns the path of the optional product config file.
// PRODUCT_CONFIG_PATH wins over 'cdk.json/context/productConfigPath'. It is
// read on every run, the template shape must not depend on bundling.
func ProductConfigPath(scope constructs.Construct) string {
	envVars, err := ParseEnvironmentVariables[ProductEnvironmentVariables]()
	if err != nil {
		panic(err)
	}
	if envVars.ProductConfigPath != "" {
		return envVars.ProductConfigPath
	}
	return contextString(scope, ProductConfigPathContextKey, "product.yaml")
}

func contextString(scope constructs.Construct, key string, fallback string) string {
	ctxValue := scope.Node().TryGetContext(jsii.String(key))
	if v, ok := ctxValue.(string); ok && v != "" {
		return v
	}
	return fallback
}
