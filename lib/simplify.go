package lib

import "math"

// Rule is one tree rewrite. Guard inspects a node whose children are already
// simplified; Apply mutates that node in place.
type Rule struct {
	Name  string
	Guard func(n *Node, parent *Node) bool
	Apply func(n *Node, parent *Node)
}

// RuleSet is an ordered list of rules. At most one rule fires per node.
type RuleSet struct {
	rules []Rule
}

func NewRuleSet(rules ...Rule) *RuleSet {
	copied := make([]Rule, len(rules))
	copy(copied, rules)
	return &RuleSet{rules: copied}
}

func DefaultRules() *RuleSet {
	return NewRuleSet(ConstantFolding, ZeroTimesAnything, ZeroPlusIdentity)
}

func (rs *RuleSet) Names() []string {
	names := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		names[i] = r.Name
	}
	return names
}

// apply runs the first rule whose guard matches and reports its name.
func (rs *RuleSet) apply(n *Node, parent *Node) (string, bool) {
	for _, r := range rs.rules {
		if r.Guard(n, parent) {
			r.Apply(n, parent)
			return r.Name, true
		}
	}
	return "", false
}

var ConstantFolding = Rule{
	Name: "constant-folding",
	Guard: func(n *Node, _ *Node) bool {
		if n.Kind != KindBinaryOp {
			return false
		}
		if _, ok := arithmetic[n.Value]; !ok {
			return false
		}
		for _, child := range n.Children {
			if child.Kind != KindLiteral {
				return false
			}
		}
		return true
	},
	Apply: func(n *Node, _ *Node) {
		fold := arithmetic[n.Value]
		n.replaceWith(Literal(fold(n.Children[0].Num, n.Children[1].Num)))
	},
}

var ZeroTimesAnything = Rule{
	Name: "zero-times-anything",
	Guard: func(n *Node, _ *Node) bool {
		return n.Kind == KindBinaryOp && n.Value == "*" && hasZeroChild(n)
	},
	Apply: func(n *Node, _ *Node) {
		n.replaceWith(Literal(0))
	},
}

var ZeroPlusIdentity = Rule{
	Name: "zero-plus-identity",
	Guard: func(n *Node, _ *Node) bool {
		return n.Kind == KindBinaryOp && n.Value == "+" && hasZeroChild(n)
	},
	Apply: func(n *Node, _ *Node) {
		kept := []*Node{}
		for _, child := range n.Children {
			if !child.IsLiteral(0) {
				kept = append(kept, child)
			}
		}
		switch len(kept) {
		case 0:
			n.replaceWith(Literal(0))
		case 1:
			n.replaceWith(kept[0])
		default:
			n.Children = kept
		}
	},
}

var arithmetic = map[string]func(a, b float64) float64{
	"+": func(a, b float64) float64 { return a + b },
	"-": func(a, b float64) float64 { return a - b },
	"*": func(a, b float64) float64 { return a * b },
	"/": func(a, b float64) float64 { return a / b },
	"^": math.Pow,
}

func hasZeroChild(n *Node) bool {
	for _, child := range n.Children {
		if child.IsLiteral(0) {
			return true
		}
	}
	return false
}

// Simplifier rewrites trees bottom-up with a fixed rule set.
type Simplifier struct {
	rules   *RuleSet
	onApply func(rule string, n *Node)
}

func NewSimplifier(rules *RuleSet) *Simplifier {
	return &Simplifier{rules: rules}
}

// Simplify rewrites root in place and returns it. Children are simplified
// before their parent is examined.
func (s *Simplifier) Simplify(root *Node) *Node {
	s.walk(root, []*Node{})
	return root
}

func (s *Simplifier) walk(n *Node, ancestors []*Node) {
	ancestors = append(ancestors, n)
	for _, child := range n.Children {
		s.walk(child, ancestors)
	}

	var parent *Node
	if len(ancestors) > 1 {
		parent = ancestors[len(ancestors)-2]
	}
	if name, ok := s.rules.apply(n, parent); ok && s.onApply != nil {
		s.onApply(name, n)
	}
}
