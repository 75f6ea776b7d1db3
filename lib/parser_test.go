package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T, expr string) *Node {
	tokens, err := ToPostfix(expr)
	require.NoError(t, err)
	tree, err := BuildTree(tokens)
	require.NoError(t, err)
	return tree
}

func TestBuildTreeLeaves(t *testing.T) {
	require.True(t, Literal(2.5).Equal(buildTree(t, "2.5")))
	require.True(t, Variable().Equal(buildTree(t, "x")))
}

func TestBuildTreeChildOrder(t *testing.T) {
	tree := buildTree(t, "x-1")
	require.Equal(t, KindBinaryOp, tree.Kind)
	require.Equal(t, "-", tree.Value)
	require.Len(t, tree.Children, 2)
	require.Equal(t, KindVariable, tree.Children[0].Kind)
	require.True(t, tree.Children[1].IsLiteral(1))
}

func TestBuildTreeNested(t *testing.T) {
	tree := buildTree(t, "2*sin(x^2)")
	want := BinaryOp("*", Literal(2), Function("sin", BinaryOp("^", Variable(), Literal(2))))
	require.True(t, want.Equal(tree))
}

func TestBuildTreeLeftAssociativePower(t *testing.T) {
	tree := buildTree(t, "2^3^2")
	want := BinaryOp("^", BinaryOp("^", Literal(2), Literal(3)), Literal(2))
	require.True(t, want.Equal(tree))
}

func TestBuildTreeUnaryMinus(t *testing.T) {
	tree := buildTree(t, "-x*2")
	want := BinaryOp("*", Function(NegateFunction, Variable()), Literal(2))
	require.True(t, want.Equal(tree))
}

func TestBuildTreeMalformed(t *testing.T) {
	_, err := BuildTree(nil)
	require.ErrorIs(t, err, ErrMalformedExpression)

	tokens, err := ToPostfix("xx")
	require.NoError(t, err)
	_, err = BuildTree(tokens)
	require.ErrorIs(t, err, ErrMalformedExpression)

	tokens, err = ToPostfix("*x")
	require.NoError(t, err)
	_, err = BuildTree(tokens)
	require.ErrorIs(t, err, ErrMalformedExpression)
}

func TestNodeValidate(t *testing.T) {
	require.NoError(t, buildTree(t, "sin(x)+2*x").Validate())

	broken := BinaryOp("+", Literal(1), Variable())
	broken.Children = broken.Children[:1]
	require.ErrorIs(t, broken.Validate(), ErrMalformedExpression)

	leaf := Variable()
	leaf.Children = append(leaf.Children, Literal(1))
	require.ErrorIs(t, Function("sin", leaf).Validate(), ErrMalformedExpression)
}

func TestNodeClone(t *testing.T) {
	tree := buildTree(t, "x*(x+1)")
	clone := tree.Clone()
	require.True(t, tree.Equal(clone))

	clone.Children[1].Children[1] = Literal(2)
	require.False(t, tree.Equal(clone))
	require.True(t, tree.Children[1].Children[1].IsLiteral(1))
}

func TestNodeKindString(t *testing.T) {
	require.Equal(t, "Literal", KindLiteral.String())
	require.Equal(t, "Function", KindFunction.String())
}
