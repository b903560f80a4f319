package config

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// Names of the CloudFormation parameters offered to Service Catalog users.
// They are shown in SageMaker Studio, keep them stable.
const (
	ProjectNameParamName       = "SageMakerProjectName"
	ProjectIdParamName         = "SageMakerProjectId"
	EmrClusterNameParamName    = "EmrClusterName"
	MainInstanceTypeParamName  = "MainInstanceType"
	CoreInstanceTypeParamName  = "CoreInstanceType"
	EmrReleaseVersionParamName = "EmrReleaseVersion"
)

// ParameterDefinition describes one CfnParameter of the product template.
type ParameterDefinition struct {
	Name        string
	Type        string
	Description string
	// Default is omitted from the template when empty.
	Default       string
	AllowedValues []string
}

// ProductParameterDefinitions returns the product parameters in declaration order.
func ProductParameterDefinitions() []ParameterDefinition {
	return []ParameterDefinition{
		{
			Name:        ProjectNameParamName,
			Type:        "String",
			Description: "Name of the project",
		},
		{
			Name:        ProjectIdParamName,
			Type:        "String",
			Description: "Service generated Id of the project",
		},
		{
			Name:        EmrClusterNameParamName,
			Type:        "String",
			Description: "EMR cluster Name",
		},
		{
			Name:        MainInstanceTypeParamName,
			Type:        "String",
			Description: "Instance type of the EMR main node",
			Default:     "m5.xlarge",
			AllowedValues: []string{
				"m5.xlarge",
				"m5.2xlarge",
				"m5.4xlarge",
			},
		},
		{
			Name:        CoreInstanceTypeParamName,
			Type:        "String",
			Description: "Instance type of the EMR core nodes",
			Default:     "m5.xlarge",
			AllowedValues: []string{
				"m5.xlarge",
				"m5.2xlarge",
				"m5.4xlarge",
				"m3.medium",
				"m3.large",
				"m3.xlarge",
				"m3.2xlarge",
			},
		},
		// A CoreInstanceCount (Number) parameter is left out: Studio failed to
		// render a valid selection for it, the core group size is fixed instead.
		{
			Name:          EmrReleaseVersionParamName,
			Type:          "String",
			Description:   "The release version of EMR to launch",
			Default:       "emr-5.33.1",
			AllowedValues: []string{"emr-5.33.1", "emr-6.4.0"},
		},
	}
}

// ProductParams holds the declared parameters by name.
type ProductParams struct {
	params map[string]awscdk.CfnParameter
}

// NewProductParams declares every product parameter on scope.
func NewProductParams(scope constructs.Construct) ProductParams {
	params := make(map[string]awscdk.CfnParameter)

	for _, def := range ProductParameterDefinitions() {
		props := &awscdk.CfnParameterProps{
			Type:        jsii.String(def.Type),
			Description: jsii.String(def.Description),
		}
		if def.Default != "" {
			props.Default = jsii.String(def.Default)
		}
		if len(def.AllowedValues) > 0 {
			props.AllowedValues = jsii.Strings(def.AllowedValues...)
		}

		params[def.Name] = awscdk.NewCfnParameter(scope, jsii.String(def.Name), props)
	}

	return ProductParams{params: params}
}

// Get returns the parameter declared under name.
// It panics for unknown names: a typo here must fail synth instead of
// silently rendering an empty value into the template.
func (p ProductParams) Get(name string) awscdk.CfnParameter {
	param, ok := p.params[name]
	if !ok {
		panic(fmt.Sprintf("product parameter %q is not declared", name))
	}
	return param
}

// ValueAsString is the string token of the named parameter, see Get.
func (p ProductParams) ValueAsString(name string) *string {
	return p.Get(name).ValueAsString()
}
