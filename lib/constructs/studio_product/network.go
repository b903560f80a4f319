package studio_product

import (
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"

	"github.com/aws-samples/sagemaker-studio-emr/lib/ingress"
)

const endpointIDPrefix = "ep-"

// EndpointID is the construct id of the interface endpoint for service,
// e.g. "sagemaker.api" -> "ep-sagemaker-api".
func EndpointID(service string) string {
	return endpointIDPrefix + strings.ReplaceAll(service, ".", "-")
}

// addEndpoints adds one interface endpoint with private DNS per service
// suffix, in the order given.
func addEndpoints(vpc awsec2.Vpc, services []string) []awsec2.InterfaceVpcEndpoint {
	return lo.Map(services, func(s string, _ int) awsec2.InterfaceVpcEndpoint {
		name := awscdk.Fn_Sub(jsii.String("com.amazonaws.${AWS::Region}."+s), nil)
		return vpc.AddInterfaceEndpoint(jsii.String(EndpointID(s)), &awsec2.InterfaceVpcEndpointOptions{
			PrivateDnsEnabled: jsii.Bool(true),
			Service:           awsec2.NewInterfaceVpcEndpointService(name, nil),
		})
	})
}

// StudioIngressRules lets Studio apps talk to each other and to the VPC
// endpoints.
func StudioIngressRules(sageMaker, vpcEndpoint ingress.Ref) []ingress.Rule {
	return []ingress.Rule{
		{Name: "sm-sm", To: sageMaker, From: sageMaker, Protocol: ingress.ProtocolAll},
		{Name: "sm-smtcp", To: sageMaker, From: sageMaker, Protocol: ingress.ProtocolTCP},
		{Name: "sm-vpce", To: vpcEndpoint, From: sageMaker, Protocol: ingress.ProtocolAll},
	}
}

type studioGroups struct {
	VpcEndpoint awsec2.SecurityGroup
	SageMaker   awsec2.SecurityGroup
}

// newStudioGroups creates the groups of the Studio domain. Their ids carry
// the construct id.
func newStudioGroups(scope constructs.Construct, id string, vpc awsec2.IVpc) studioGroups {
	g := studioGroups{
		VpcEndpoint: awsec2.NewSecurityGroup(scope, jsii.String(id+"vpc-ep-sg"), &awsec2.SecurityGroupProps{
			Description: jsii.String("Allow TLS for VPC endpoint"),
			Vpc:         vpc,
		}),
		SageMaker: awsec2.NewSecurityGroup(scope, jsii.String(id+"sm-sg"), &awsec2.SecurityGroupProps{
			Vpc: vpc,
		}),
	}

	ingress.AddAll(scope, StudioIngressRules(
		ingress.Literal(*g.SageMaker.SecurityGroupId()),
		ingress.Literal(*g.VpcEndpoint.SecurityGroupId()),
	))

	return g
}
