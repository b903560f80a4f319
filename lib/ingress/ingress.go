package ingress

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aws-samples/sagemaker-studio-emr/lib/cdklogger"
)

// Add registers the entries of a rule as AWS::EC2::SecurityGroupIngress
// resources under scope, using the entry ids as construct ids.
//
// Nothing is validated here: bad ids or protocol/port combinations only
// surface when CloudFormation deploys the template.
func Add(scope constructs.Construct, rule Rule) []awsec2.CfnSecurityGroupIngress {
	entries := Expand(rule)
	out := make([]awsec2.CfnSecurityGroupIngress, 0, len(entries))

	for _, e := range entries {
		props := &awsec2.CfnSecurityGroupIngressProps{
			IpProtocol:            jsii.String(string(e.Protocol)),
			FromPort:              jsii.Number(e.Ports.From),
			ToPort:                jsii.Number(e.Ports.To),
			GroupId:               jsii.String(e.GroupID),
			SourceSecurityGroupId: jsii.String(e.SourceGroupID),
		}
		if e.Description != "" {
			props.Description = jsii.String(e.Description)
		}
		out = append(out, awsec2.NewCfnSecurityGroupIngress(scope, jsii.String(e.ID), props))
	}

	return out
}

// AddAll registers a whole rule table. Duplicate entry ids would otherwise
// only fail inside the construct tree, so they are checked up front.
func AddAll(scope constructs.Construct, rules []Rule) {
	if err := CheckUnique(rules); err != nil {
		cdklogger.LogError(scope, "", "invalid ingress rule table: %v", err)
		panic(fmt.Errorf("invalid ingress rule table: %w", err))
	}

	count := 0
	for _, r := range rules {
		count += len(Add(scope, r))
	}
	cdklogger.LogInfo(scope, "", "Registered %d ingress entries from %d rules.", count, len(rules))
}
