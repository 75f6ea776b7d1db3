package lib

// tokenBuffer is a postfix sequence consumed front to back. Reading a token
// removes it; the buffer is not rewindable.
type tokenBuffer struct {
	tokens []Token
	pos    int
}

func newTokenBuffer() *tokenBuffer {
	return &tokenBuffer{
		tokens: []Token{},
		pos:    0,
	}
}

func newTokenBufferFrom(tokens []Token) *tokenBuffer {
	buf := newTokenBuffer()
	buf.tokens = append(buf.tokens, tokens...)
	return buf
}

func (tb *tokenBuffer) Next() (tok Token, done bool) {
	tok, done = tb.Peek()
	if !done {
		tb.pos++
	}
	return tok, done
}

func (tb *tokenBuffer) Peek() (Token, bool) {
	if tb.pos >= len(tb.tokens) {
		return Token{}, true
	}
	return tb.tokens[tb.pos], false
}

func (tb *tokenBuffer) Write(tok Token) {
	tb.tokens = append(tb.tokens, tok)
}

func (tb *tokenBuffer) Len() int {
	return len(tb.tokens) - tb.pos
}

// Tokens returns a copy of the unread tokens.
func (tb *tokenBuffer) Tokens() []Token {
	remaining := make([]Token, tb.Len())
	copy(remaining, tb.tokens[tb.pos:])
	return remaining
}
