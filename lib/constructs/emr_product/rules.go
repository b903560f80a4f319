package emr_product

import "github.com/aws-samples/sagemaker-studio-emr/lib/ingress"

// ClusterGroups are the security groups an EMR cluster in the product uses,
// plus the SageMaker group living in the parent stack.
type ClusterGroups struct {
	Main ingress.Ref
	Core ingress.Ref
	Svc  ingress.Ref
	// SageMaker usually is a Fn::ImportValue token.
	SageMaker ingress.Ref
}

// ClusterIngressRules returns the rule table the EMR managed security groups
// need to talk to each other and to SageMaker Studio.
// EMR rejects the cluster at launch time if any of them is missing.
func ClusterIngressRules(g ClusterGroups) []ingress.Rule {
	icmp := ingress.Ports(ingress.AllICMP)

	return []ingress.Rule{
		{Name: "main-main-icmp", To: g.Main, From: g.Main, Protocol: ingress.ProtocolICMP, Reverse: true, Ports: icmp},
		{Name: "main-core-icmp", To: g.Main, From: g.Core, Protocol: ingress.ProtocolICMP, Reverse: true, Ports: icmp},
		{Name: "main-main-tcp", To: g.Main, From: g.Main, Protocol: ingress.ProtocolTCP, Reverse: true},
		{Name: "main-core-tcp", To: g.Main, From: g.Core, Protocol: ingress.ProtocolTCP, Reverse: true},
		{Name: "main-main-udp", To: g.Main, From: g.Main, Protocol: ingress.ProtocolUDP, Reverse: true},
		{Name: "main-core-udp", To: g.Main, From: g.Core, Protocol: ingress.ProtocolUDP, Reverse: true},

		// livy, hive and the service endpoint
		{Name: "main-livy", To: g.Main, From: g.Core, Protocol: ingress.ProtocolTCP, Reverse: true, Ports: ingress.Port(8998)},
		{Name: "sm-livy-main", To: g.Main, From: g.SageMaker, Protocol: ingress.ProtocolTCP, Reverse: true, Ports: ingress.Port(8998)},
		{Name: "sm-livy-core", To: g.Core, From: g.SageMaker, Protocol: ingress.ProtocolTCP, Reverse: true, Ports: ingress.Port(8998)},
		{Name: "main-hive", To: g.Main, From: g.Core, Protocol: ingress.ProtocolTCP, Reverse: true, Ports: ingress.Port(10000)},
		{Name: "main-svc", To: g.Main, From: g.Svc, Protocol: ingress.ProtocolTCP, Reverse: true},
		{Name: "scv-main-9443", To: g.Svc, From: g.Main, Protocol: ingress.ProtocolTCP, Reverse: true, Ports: ingress.Port(9443)},

		// kerberos, one way only
		{Name: "main-kdc", To: g.Core, From: g.SageMaker, Protocol: ingress.ProtocolTCP, Ports: ingress.Port(88)},
		{Name: "main-kdcadmin", To: g.Core, From: g.SageMaker, Protocol: ingress.ProtocolTCP, Ports: ingress.Port(749)},
		{Name: "main-kdcinit", To: g.Core, From: g.SageMaker, Protocol: ingress.ProtocolTCP, Ports: ingress.Port(464)},
	}
}
