package utils

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/aws-samples/sagemaker-studio-emr/config"
)

// CdkEnv determines the AWS environment (account+region) in which our stack is to
// be deployed. For more information see: https://docs.aws.amazon.com/cdk/latest/guide/environments.html
//
// It returns nil, an environment-agnostic stack, when no account is known.
func CdkEnv() *awscdk.Environment {
	vars, err := config.ParseEnvironmentVariables[config.DeployEnvironmentVariables]()
	if err != nil {
		panic(err)
	}

	account, region := vars.AccountAndRegion()
	if account == "" && region == "" {
		return nil
	}

	return &awscdk.Environment{
		Account: jsii.String(account),
		Region:  jsii.String(region),
	}
}
