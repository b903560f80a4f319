package ingress

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Protocol is the IpProtocol value of an ingress entry.
type Protocol string

const (
	ProtocolTCP  Protocol = "tcp"
	ProtocolUDP  Protocol = "udp"
	ProtocolICMP Protocol = "icmp"
	// ProtocolAll allows every protocol. Port ranges are ignored by EC2 for it.
	ProtocolAll Protocol = "-1"
)

// ReverseSuffix is appended to a rule name to identify its mirrored entry.
const ReverseSuffix = "-rev"

// PortRange is an inclusive range of ports.
type PortRange struct {
	From int
	To   int
}

var (
	// AllPorts is used whenever a rule leaves Ports unset.
	AllPorts = PortRange{From: 0, To: 65535}
	// AllICMP selects every ICMP type and code. It is never picked
	// automatically, ICMP rules must ask for it.
	AllICMP = PortRange{From: -1, To: -1}
)

// Port returns a range holding a single port.
func Port(p int) *PortRange {
	return &PortRange{From: p, To: p}
}

// Ports returns a pointer to r, for use in Rule literals.
func Ports(r PortRange) *PortRange {
	return &r
}

func (p PortRange) String() string {
	if p.From == p.To {
		return fmt.Sprintf("%d", p.From)
	}
	return fmt.Sprintf("%d-%d", p.From, p.To)
}

// Rule is a named intent to let traffic from one group into another.
type Rule struct {
	// Name identifies the forward entry inside its scope. Must be unique.
	Name string
	// To is the group that receives the ingress entry.
	To Ref
	// From is the group that is allowed in.
	From Ref
	Protocol Protocol
	// Reverse also emits the mirrored entry, named Name+ReverseSuffix.
	Reverse bool
	// Ports defaults to AllPorts when nil.
	Ports *PortRange
	// Description is optional and copied to every emitted entry.
	Description string
}

// Entry is a single access-control entry, one AWS::EC2::SecurityGroupIngress.
type Entry struct {
	ID            string
	GroupID       string
	SourceGroupID string
	Protocol      Protocol
	Ports         PortRange
	Description   string
}

func (r Rule) portRange() PortRange {
	if r.Ports == nil {
		return AllPorts
	}
	return *r.Ports
}

// ReverseName derives the id of the mirrored entry of a rule.
func ReverseName(name string) string {
	return name + ReverseSuffix
}

// Expand turns a rule into its entries: the forward one, then the mirrored
// one when Reverse is set. It has no side effects.
func Expand(r Rule) []Entry {
	to := Resolve(r.To)
	from := Resolve(r.From)
	ports := r.portRange()

	entries := []Entry{{
		ID:            r.Name,
		GroupID:       to,
		SourceGroupID: from,
		Protocol:      r.Protocol,
		Ports:         ports,
		Description:   r.Description,
	}}

	if r.Reverse {
		entries = append(entries, Entry{
			ID:            ReverseName(r.Name),
			GroupID:       from,
			SourceGroupID: to,
			Protocol:      r.Protocol,
			Ports:         ports,
			Description:   r.Description,
		})
	}

	return entries
}

// ExpandAll expands every rule, keeping declaration order.
func ExpandAll(rules []Rule) []Entry {
	return lo.FlatMap(rules, func(r Rule, _ int) []Entry {
		return Expand(r)
	})
}

// CheckUnique reports entry ids that a rule set would register more than
// once, including a reverse name that clashes with an explicit rule.
func CheckUnique(rules []Rule) error {
	ids := lo.Map(ExpandAll(rules), func(e Entry, _ int) string {
		return e.ID
	})

	if empty := lo.Count(ids, ""); empty > 0 {
		return fmt.Errorf("%d ingress rule(s) without a name", empty)
	}

	dups := lo.FindDuplicates(ids)
	if len(dups) > 0 {
		return fmt.Errorf("duplicate ingress entry ids: %s", strings.Join(dups, ", "))
	}
	return nil
}
