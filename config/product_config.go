package config

import (
	"github.com/aws/constructs-go/constructs/v10"

	"github.com/aws-samples/sagemaker-studio-emr/config/product"
)

// ProductConfig loads the product config file selected for scope, see
// ProductConfigPath. Synth fails on a file that exists but is invalid.
func ProductConfig(scope constructs.Construct) product.Config {
	path := ProductConfigPath(scope)

	cfg, err := product.Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
