package studio_product

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"
)

func allow(actions []string, resources ...string) awsiam.PolicyStatement {
	return awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Effect:    awsiam.Effect_ALLOW,
		Actions:   jsii.Strings(actions...),
		Resources: jsii.Strings(resources...),
	})
}

func managedPolicies(names ...string) *[]awsiam.IManagedPolicy {
	policies := lo.Map(names, func(n string, _ int) awsiam.IManagedPolicy {
		return awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String(n))
	})
	return &policies
}

// launchRoleStatements is what Service Catalog needs to provision the EMR
// product on behalf of a Studio user.
var launchRoleStatements = [][]string{
	// the product bucket name is only known inside the product
	{"s3:*"},
	{"sns:Publish"},
	{
		"ec2:CreateSecurityGroup",
		"ec2:RevokeSecurityGroupEgress",
		"ec2:DeleteSecurityGroup",
		"ec2:createTags",
		"ec2:AuthorizeSecurityGroupEgress",
		"ec2:AuthorizeSecurityGroupIngress",
		"ec2:RevokeSecurityGroupIngress",
	},
	{
		"lambda:CreateFunction",
		"lambda:InvokeFunction",
		"lambda:DeleteFunction",
		"lambda:GetFunction",
	},
	{"elasticmapreduce:RunJobFlow"},
	// TODO: attach a permissions boundary, CreateRole plus PassRole amounts to admin.
	{
		"iam:CreateRole",
		"iam:DetachRolePolicy",
		"iam:AttachRolePolicy",
		"iam:DeleteRolePolicy",
		"iam:DeleteRole",
		"iam:PutRolePolicy",
		"iam:PassRole",
		"iam:CreateInstanceProfile",
		"iam:RemoveRoleFromInstanceProfile",
		"iam:DeleteInstanceProfile",
		"iam:AddRoleToInstanceProfile",
	},
	{"cloudformation:CreateStack"},
}

// newLaunchRole is the role assumed when a Studio user launches the product.
func newLaunchRole(scope constructs.Construct) awsiam.Role {
	role := awsiam.NewRole(scope, jsii.String("launch-constraint"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("servicecatalog.amazonaws.com"), nil),
		ManagedPolicies: managedPolicies(
			"AWSServiceCatalogAdminFullAccess",
			"AmazonEMRFullAccessPolicy_v2",
		),
	})

	for _, actions := range launchRoleStatements {
		role.AddToPolicy(allow(actions, "*"))
	}

	return role
}

// newExecutionRole is the default execution role of the Studio domain.
func newExecutionRole(scope constructs.Construct) awsiam.Role {
	role := awsiam.NewRole(scope, jsii.String("sm-exec"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("sagemaker.amazonaws.com"), nil),
		ManagedPolicies: managedPolicies(
			"AmazonSageMakerFullAccess",
			"AmazonS3ReadOnlyAccess",
		),
	})

	role.AddToPolicy(allow([]string{
		"elasticmapreduce:ListInstances",
		"elasticmapreduce:DescribeCluster",
		"elasticmapreduce:DescribeSecurityConfiguration",
		"elasticmapreduce:CreatePersistentAppUI",
		"elasticmapreduce:DescribePersistentAppUI",
		"elasticmapreduce:GetPersistentAppUIPresignedURL",
		"elasticmapreduce:GetOnClusterAppUIPresignedURL",
		"elasticmapreduce:ListClusters",
		"iam:CreateServiceLinkedRole",
		"iam:GetRole",
	}, "*"))

	role.AddToPolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Effect:    awsiam.Effect_ALLOW,
		Actions:   jsii.Strings("iam:PassRole"),
		Resources: jsii.Strings("*"),
		Conditions: &map[string]interface{}{
			"StringEquals": map[string]interface{}{
				"iam:PassedToService": "sagemaker.amazonaws.com",
			},
		},
	}))

	role.AddToPolicy(allow([]string{
		"elasticmapreduce:DescribeCluster",
		"elasticmapreduce:ListInstanceGroups",
	}, *awscdk.Fn_Sub(jsii.String("arn:${AWS::Partition}:elasticmapreduce:*:*:cluster/*"), nil)))

	role.AddToPolicy(allow([]string{"elasticmapreduce:ListClusters"}, "*"))

	return role
}
