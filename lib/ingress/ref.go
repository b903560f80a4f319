package ingress

// GroupHandle is anything that exposes a security group id through its
// CloudFormation Ref, e.g. awsec2.CfnSecurityGroup.
type GroupHandle interface {
	Ref() *string
}

// Ref points at one side of an ingress rule. It is either a literal group id
// (Literal) or a handle to a group declared elsewhere in the app (Group).
type Ref interface {
	resolve() string
}

type literalRef string

func (l literalRef) resolve() string { return string(l) }

type groupRef struct {
	handle GroupHandle
}

func (g groupRef) resolve() string {
	if g.handle == nil {
		return ""
	}
	id := g.handle.Ref()
	if id == nil {
		return ""
	}
	return *id
}

// Literal wraps a plain group id. Tokens such as Fn::ImportValue are fine here,
// they are resolved by CloudFormation.
func Literal(id string) Ref {
	return literalRef(id)
}

// Group wraps a handle to a declared security group.
func Group(h GroupHandle) Ref {
	return groupRef{handle: h}
}

// Resolve maps a Ref to the id that ends up in the template.
// A nil Ref resolves to the empty string.
func Resolve(r Ref) string {
	if r == nil {
		return ""
	}
	return r.resolve()
}
