package lib

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type charInfo struct {
	ch  rune
	col int
}

// lex converts an infix expression to postfix order, handing each output
// token to emit as soon as its position in the postfix sequence is known.
func lex(expr string, precedence PrecedenceTable, emit func(Token)) error {
	l := newLexer(expr, precedence, emit)
	return l.scan()
}

type lexer struct {
	expr             []rune
	length           int
	currentCharIndex int
	prev             rune
	precedence       PrecedenceTable
	opStack          []Token
	emitCallback     func(Token)
}

func newLexer(expr string, precedence PrecedenceTable, emit func(Token)) *lexer {
	stripped := []rune(stripSpace(expr))
	return &lexer{
		expr:             stripped,
		length:           len(stripped),
		currentCharIndex: 0,
		precedence:       precedence,
		opStack:          []Token{},
		emitCallback:     emit,
	}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func (l *lexer) emit(tok Token) {
	l.emitCallback(tok)
}

func (l *lexer) push(tok Token) {
	l.opStack = append(l.opStack, tok)
}

func (l *lexer) pop() Token {
	tok := l.opStack[len(l.opStack)-1]
	l.opStack = l.opStack[:len(l.opStack)-1]
	return tok
}

func (l *lexer) top() (Token, bool) {
	if len(l.opStack) == 0 {
		return Token{}, false
	}
	return l.opStack[len(l.opStack)-1], true
}

func (l *lexer) peek(offset int) (charInfo, bool) {
	i := l.currentCharIndex + offset
	if i >= l.length {
		return charInfo{}, false
	}
	return charInfo{ch: l.expr[i], col: i + 1}, true
}

func (l *lexer) advance() (charInfo, bool) {
	info, ok := l.peek(0)
	if ok {
		l.currentCharIndex++
	}
	return info, ok
}

func (l *lexer) scan() error {
	for {
		more, err := l.next()
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return l.flush()
}

func (l *lexer) next() (bool, error) {
	chInfo, ok := l.advance()
	if !ok {
		return false, nil
	}
	ch := chInfo.ch
	var err error = nil

	switch {
	case isOpenParen(ch):
		l.push(lparenToken(chInfo.col))
	case isCloseParen(ch):
		err = l.closeParen(chInfo)
	case isOp(ch):
		err = l.operator(chInfo)
	case isVar(ch):
		l.emit(variableToken(chInfo.col))
	case isDigit(ch) || isDecimalPoint(ch):
		err = l.scanNumber(chInfo)
	case isLetter(ch):
		l.scanFunction(chInfo)
	default:
		err = l.errorf(chInfo.col, ErrIllegalCharacter, "%q", ch)
	}

	l.prev = l.expr[l.currentCharIndex-1]
	return err == nil, err
}

func (l *lexer) closeParen(info charInfo) error {
	for {
		tok, ok := l.top()
		if !ok {
			return l.errorf(info.col, ErrMismatchedParentheses, "no open paren to close")
		}
		l.pop()
		if tok.Type == TokenLParen {
			return nil
		}
		l.emit(tok)
	}
}

// isUnaryPosition reports whether a minus sign at the current position
// negates rather than subtracts.
func (l *lexer) isUnaryPosition() bool {
	if l.currentCharIndex == 1 {
		return true
	}
	return isOp(l.prev) || isOpenParen(l.prev) || (isLetter(l.prev) && !isVar(l.prev))
}

func (l *lexer) operator(info charInfo) error {
	if info.ch == '-' && l.isUnaryPosition() {
		l.push(unaryMinusToken(info.col))
		return nil
	}

	op := operatorToken(info.ch, info.col)
	for {
		top, ok := l.top()
		if !ok || top.Type == TokenLParen || !l.outranks(top, op) {
			break
		}
		l.emit(l.pop())
	}

	// Equal precedence pops one entry first, so every operator, ^ included,
	// groups left to right.
	top, ok := l.top()
	if ok && top.Type != TokenLParen && l.precedence.equal(top, op) {
		l.emit(l.pop())
	}
	l.push(op)
	return nil
}

// outranks reports whether the stacked token must be emitted before op is
// pushed. Tokens without a precedence (functions, unary minus) always do.
func (l *lexer) outranks(stacked Token, op Token) bool {
	stackedLevel, ok := l.precedence.Level(stacked.Value)
	if !ok || stacked.isFunctionLike() {
		return true
	}
	opLevel, _ := l.precedence.Level(op.Value)
	return stackedLevel > opLevel
}

func (l *lexer) scanNumber(first charInfo) error {
	start := l.currentCharIndex - 1
	hasDecimal := isDecimalPoint(first.ch)
	if hasDecimal {
		next, ok := l.peek(0)
		if !ok || !isDigit(next.ch) {
			return l.errorf(first.col, ErrInvalidNumber, "decimal point without digits")
		}
	}

	for {
		next, ok := l.peek(0)
		if !ok {
			break
		}
		if isDecimalPoint(next.ch) {
			if hasDecimal {
				return l.errorf(next.col, ErrInvalidNumber, "cannot have multiple decimals in one number")
			}
			hasDecimal = true
		} else if !isDigit(next.ch) {
			break
		}
		_, _ = l.advance()
	}

	text := string(l.expr[start:l.currentCharIndex])
	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return l.errorf(first.col, ErrInvalidNumber, "%s", text)
	}
	l.emit(numberToken(num, first.col))
	return nil
}

// scanFunction consumes a run of letters as a function name. A trailing
// variable marker is the "sinx" shorthand for sin applied to x.
func (l *lexer) scanFunction(first charInfo) {
	start := l.currentCharIndex - 1
	for {
		next, ok := l.peek(0)
		if !ok || !isLetter(next.ch) {
			break
		}
		_, _ = l.advance()
	}

	name := l.expr[start:l.currentCharIndex]
	argIsVar := isVar(name[len(name)-1])
	if argIsVar {
		name = name[:len(name)-1]
	}

	l.push(functionToken(string(name), first.col))
	if argIsVar {
		l.emit(variableToken(l.currentCharIndex))
	}
}

func (l *lexer) flush() error {
	for len(l.opStack) > 0 {
		tok := l.pop()
		if tok.Type == TokenLParen {
			return l.errorf(tok.Col, ErrMismatchedParentheses, "open paren is never closed")
		}
		l.emit(tok)
	}
	return nil
}

func (l *lexer) errorf(col int, kind error, msg string, args ...interface{}) error {
	formatted := fmt.Sprintf(msg, args...)
	return fmt.Errorf("Error at col %d: %w: %s", col, kind, formatted)
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isVar(ch rune) bool {
	return ch == 'x' || ch == 'X'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isDecimalPoint(ch rune) bool {
	return ch == '.'
}

func isOpenParen(ch rune) bool {
	return ch == '('
}

func isCloseParen(ch rune) bool {
	return ch == ')'
}

func isOp(ch rune) bool {
	switch ch {
	case '+', '-', '*', '/', '^':
		return true
	}
	return false
}
