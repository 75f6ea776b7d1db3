package lib

import "fmt"

type NodeKind int

const (
	KindLiteral NodeKind = iota
	KindVariable
	KindBinaryOp
	KindFunction
)

func (k NodeKind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindVariable:
		return "Variable"
	case KindBinaryOp:
		return "BinaryOp"
	case KindFunction:
		return "Function"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// NegateFunction is the Function node name used for unary minus.
const NegateFunction = "-"

// Node is an expression tree node. Value holds the operator symbol, function
// name, variable marker or formatted number; Num holds a literal's value.
// A node owns its children.
type Node struct {
	Kind     NodeKind
	Value    string
	Num      float64
	Children []*Node
}

func Literal(num float64) *Node {
	return &Node{Kind: KindLiteral, Value: formatNumber(num), Num: num, Children: []*Node{}}
}

func Variable() *Node {
	return &Node{Kind: KindVariable, Value: varMarker, Children: []*Node{}}
}

func BinaryOp(op string, left *Node, right *Node) *Node {
	return &Node{Kind: KindBinaryOp, Value: op, Children: []*Node{left, right}}
}

func Function(name string, arg *Node) *Node {
	return &Node{Kind: KindFunction, Value: name, Children: []*Node{arg}}
}

func (n *Node) IsLiteral(num float64) bool {
	return n.Kind == KindLiteral && n.Num == num
}

// replaceWith copies other's fields into n so parents keep pointing at n.
func (n *Node) replaceWith(other *Node) {
	n.Kind = other.Kind
	n.Value = other.Value
	n.Num = other.Num
	n.Children = other.Children
}

func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.Value != other.Value || len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

func (n *Node) Clone() *Node {
	clone := &Node{Kind: n.Kind, Value: n.Value, Num: n.Num, Children: make([]*Node, len(n.Children))}
	for i, child := range n.Children {
		clone.Children[i] = child.Clone()
	}
	return clone
}

// Validate checks the arity of every node in the tree.
func (n *Node) Validate() error {
	want := 0
	switch n.Kind {
	case KindBinaryOp:
		want = 2
	case KindFunction:
		want = 1
	}
	if len(n.Children) != want {
		return fmt.Errorf("%w: %s %q has %d children, want %d", ErrMalformedExpression, n.Kind, n.Value, len(n.Children), want)
	}
	for _, child := range n.Children {
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}
