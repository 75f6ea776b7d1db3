package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// A test helper that converts to postfix and renders the tokens for easier
// assertions.
func requirePostfix(t *testing.T, expr string, want string) {
	tokens, err := ToPostfix(expr)
	require.NoError(t, err, expr)
	require.Equal(t, want, PostfixString(tokens), expr)
}

func TestPostfixPrecedence(t *testing.T) {
	requirePostfix(t, "1+2*3", "1 2 3 * +")
	requirePostfix(t, "(1+2)*3", "1 2 + 3 *")
	requirePostfix(t, "2*(3*4+1)", "2 3 4 * 1 + *")
	requirePostfix(t, "x^2/4", "x 2 ^ 4 /")
}

func TestPostfixLeftAssociative(t *testing.T) {
	requirePostfix(t, "1-2-3", "1 2 - 3 -")
	requirePostfix(t, "8/4/2", "8 4 / 2 /")
	requirePostfix(t, "2^3^2", "2 3 ^ 2 ^")
}

func TestPostfixWhitespace(t *testing.T) {
	requirePostfix(t, " 2 * ( x + 1 ) ", "2 x 1 + *")
	requirePostfix(t, "sin\tx", "x sin")
}

func TestPostfixNumbers(t *testing.T) {
	requirePostfix(t, "2.5*x", "2.5 x *")
	requirePostfix(t, ".5", "0.5")
	requirePostfix(t, "2.", "2")
	requirePostfix(t, "007", "7")

	tokens, err := ToPostfix("12.25")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, TokenNumber, tokens[0].Type)
	require.Equal(t, 12.25, tokens[0].Num)
}

func TestPostfixFunctions(t *testing.T) {
	requirePostfix(t, "sinx", "x sin")
	requirePostfix(t, "sinX", "x sin")
	requirePostfix(t, "sin(x^2)", "x 2 ^ sin")
	requirePostfix(t, "sin(x)+1", "x sin 1 +")
	requirePostfix(t, "sinx^2", "x sin 2 ^")
	requirePostfix(t, "ln(sqrt(x))", "x sqrt ln")
	requirePostfix(t, "arctan(2*x)", "2 x * arctan")
}

func TestPostfixUnaryMinus(t *testing.T) {
	requirePostfix(t, "-x", "x U-")
	requirePostfix(t, "2*-x", "2 x U- *")
	requirePostfix(t, "(-x)", "x U-")
	requirePostfix(t, "--x", "x U- U-")
	requirePostfix(t, "x-1", "x 1 -")
	requirePostfix(t, "(x)-1", "x 1 -")
	requirePostfix(t, "-x^2", "x U- 2 ^")
}

func TestPostfixUnaryMinusAfterFunctionName(t *testing.T) {
	requirePostfix(t, "sin-x", "x U- sin")
	requirePostfix(t, "sinx-1", "x sin 1 -")
}

func TestPostfixTokenTypes(t *testing.T) {
	tokens, err := ToPostfix("-sin(x)*2")
	require.NoError(t, err)
	require.Len(t, tokens, 5)
	require.Equal(t, TokenVariable, tokens[0].Type)
	require.Equal(t, TokenFunction, tokens[1].Type)
	require.Equal(t, "sin", tokens[1].Value)
	require.Equal(t, TokenUnaryMinus, tokens[2].Type)
	require.Equal(t, TokenNumber, tokens[3].Type)
	require.Equal(t, TokenOperator, tokens[4].Type)
	require.Equal(t, "*", tokens[4].Value)
}

func TestPostfixColumns(t *testing.T) {
	tokens, err := ToPostfix("2 + sinx")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	require.Equal(t, 1, tokens[0].Col)
	require.Equal(t, 6, tokens[1].Col)
	require.Equal(t, 3, tokens[2].Col)
	require.Equal(t, 2, tokens[3].Col)
}

func TestPostfixMismatchedParentheses(t *testing.T) {
	_, err := ToPostfix("(2+3")
	require.ErrorIs(t, err, ErrMismatchedParentheses)

	_, err = ToPostfix("2+3)")
	require.ErrorIs(t, err, ErrMismatchedParentheses)

	_, err = ToPostfix(")")
	require.ErrorIs(t, err, ErrMismatchedParentheses)

	_, err = ToPostfix("((x)")
	require.ErrorIs(t, err, ErrMismatchedParentheses)
}

func TestPostfixInvalidNumber(t *testing.T) {
	_, err := ToPostfix("2..3")
	require.ErrorIs(t, err, ErrInvalidNumber)

	_, err = ToPostfix("1.2.3")
	require.ErrorIs(t, err, ErrInvalidNumber)

	_, err = ToPostfix("x+.")
	require.ErrorIs(t, err, ErrInvalidNumber)
}

func TestPostfixIllegalCharacter(t *testing.T) {
	_, err := ToPostfix("2#3")
	require.ErrorIs(t, err, ErrIllegalCharacter)
	require.EqualError(t, err, `Error at col 2: illegal character: '#'`)

	_, err = ToPostfix("x%2")
	require.ErrorIs(t, err, ErrIllegalCharacter)
}

func TestPostfixEmpty(t *testing.T) {
	tokens, err := ToPostfix("   ")
	require.NoError(t, err)
	require.Len(t, tokens, 0)
}

func TestClassifier(t *testing.T) {
	require.True(t, isLetter('a'))
	require.True(t, isLetter('Z'))
	require.False(t, isLetter('1'))
	require.True(t, isVar('x'))
	require.True(t, isVar('X'))
	require.False(t, isVar('y'))
	require.True(t, isDigit('0'))
	require.False(t, isDigit('.'))
	require.True(t, isOpenParen('('))
	require.True(t, isCloseParen(')'))
	for _, ch := range "+-*/^" {
		require.True(t, isOp(ch), string(ch))
	}
	require.False(t, isOp('('))
	require.False(t, isOp('%'))
}
