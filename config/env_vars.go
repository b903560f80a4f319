package config

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/caarlos0/env/v11"
)

// DeployEnvironmentVariables select the account and region to deploy to.
// The CDK_DEPLOY_* pair wins over the CDK_DEFAULT_* pair set by the CDK CLI.
type DeployEnvironmentVariables struct {
	DeployAccount  string `env:"CDK_DEPLOY_ACCOUNT"`
	DeployRegion   string `env:"CDK_DEPLOY_REGION"`
	DefaultAccount string `env:"CDK_DEFAULT_ACCOUNT"`
	DefaultRegion  string `env:"CDK_DEFAULT_REGION"`
}

// AccountAndRegion picks the pair to use. The deploy pair is only used when
// both halves are set.
func (v DeployEnvironmentVariables) AccountAndRegion() (string, string) {
	if v.DeployAccount == "" || v.DeployRegion == "" {
		return v.DefaultAccount, v.DefaultRegion
	}
	return v.DeployAccount, v.DeployRegion
}

type ProductEnvironmentVariables struct {
	// overrides the productConfigPath context value
	ProductConfigPath string `env:"PRODUCT_CONFIG_PATH"`
	// LOG_LEVEL of the deployed copy-files function
	CopyFilesLogLevel string `env:"COPY_FILES_LOG_LEVEL" envDefault:"info"`
}

// ParseEnvironmentVariables parses T from the process environment.
func ParseEnvironmentVariables[T any]() (T, error) {
	return env.ParseAs[T]()
}

// GetEnvironmentVariables parses T, but only while the stack of scope is
// being synthesized. Otherwise it returns the zero value.
func GetEnvironmentVariables[T any](scope constructs.Construct) T {
	var envObj T

	// only run if we are synthesizing the stack
	if !IsStackInSynthesis(scope) {
		return envObj
	}

	envObj, err := ParseEnvironmentVariables[T]()
	if err != nil {
		panic(err)
	}

	return envObj
}

// IsStackInSynthesis reports whether the stack owning scope is selected for
// bundling, i.e. it is really being synthesized and not only listed.
// Scopes outside any stack report false.
func IsStackInSynthesis(scope constructs.Construct) bool {
	scopes := *scope.Node().Scopes()
	for i := len(scopes) - 1; i >= 0; i-- {
		if *awscdk.Stack_IsStack(scopes[i]) {
			return *awscdk.Stack_Of(scopes[i]).BundlingRequired()
		}
	}
	return false
}
