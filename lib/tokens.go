package lib

import (
	"strconv"
	"strings"
)

type TokenType int

const (
	TokenNumber TokenType = iota
	TokenVariable
	TokenOperator
	TokenUnaryMinus
	TokenFunction
	TokenLParen
)

// Token is one element of a postfix sequence. Col is the 1-based column of
// the token's first rune in the whitespace-stripped input.
type Token struct {
	Type  TokenType
	Value string
	Num   float64
	Col   int
}

const (
	varMarker   = "x"
	unaryMarker = "U-"
)

func numberToken(num float64, col int) Token {
	return Token{Type: TokenNumber, Value: formatNumber(num), Num: num, Col: col}
}

func variableToken(col int) Token {
	return Token{Type: TokenVariable, Value: varMarker, Col: col}
}

func operatorToken(op rune, col int) Token {
	return Token{Type: TokenOperator, Value: string(op), Col: col}
}

func unaryMinusToken(col int) Token {
	return Token{Type: TokenUnaryMinus, Value: unaryMarker, Col: col}
}

func functionToken(name string, col int) Token {
	return Token{Type: TokenFunction, Value: name, Col: col}
}

func lparenToken(col int) Token {
	return Token{Type: TokenLParen, Value: "(", Col: col}
}

func (t Token) String() string {
	return t.Value
}

// isFunctionLike reports whether the token behaves as a maximal precedence
// prefix function on the operator stack.
func (t Token) isFunctionLike() bool {
	return t.Type == TokenFunction || t.Type == TokenUnaryMinus
}

// PostfixString joins a postfix sequence with single spaces, e.g. "2 3 ^".
func PostfixString(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}

// formatNumber never uses exponent notation so the text can be scanned again.
func formatNumber(num float64) string {
	return strconv.FormatFloat(num, 'f', -1, 64)
}
