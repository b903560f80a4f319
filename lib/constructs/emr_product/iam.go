package emr_product

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// newJobFlowProfile creates the role the cluster EC2 instances run with,
// wrapped in the instance profile EMR expects as JobFlowRole.
func newJobFlowProfile(scope constructs.Construct, sampleData awss3.IBucket) (awsiam.Role, awsiam.CfnInstanceProfile) {
	role := awsiam.NewRole(scope, jsii.String("job-flow"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("ec2.amazonaws.com"), nil),
		ManagedPolicies: &[]awsiam.IManagedPolicy{
			awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("service-role/AmazonElasticMapReduceforEC2Role")),
		},
	})

	sampleData.GrantRead(role, nil)

	profile := awsiam.NewCfnInstanceProfile(scope, jsii.String("job-flow-profile"), &awsiam.CfnInstanceProfileProps{
		Roles: &[]*string{role.RoleName()},
		Path:  jsii.String("/"),
	})

	return role, profile
}

// newServiceRole is the role the EMR service itself assumes.
func newServiceRole(scope constructs.Construct) awsiam.CfnRole {
	return awsiam.NewCfnRole(scope, jsii.String("service-role"), &awsiam.CfnRoleProps{
		AssumeRolePolicyDocument: map[string]interface{}{
			"Statement": []interface{}{
				map[string]interface{}{
					"Action": []string{"sts:AssumeRole"},
					"Effect": "Allow",
					"Principal": map[string]interface{}{
						"Service": []string{"elasticmapreduce.amazonaws.com"},
					},
				},
			},
			"Version": "2012-10-17",
		},
		ManagedPolicyArns: jsii.Strings("arn:aws:iam::aws:policy/service-role/AmazonElasticMapReduceRole"),
		Path:              jsii.String("/"),
	})
}
