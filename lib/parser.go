package lib

import "fmt"

// BuildTree builds an expression tree from a postfix sequence.
func BuildTree(tokens []Token) (*Node, error) {
	p := treeParser{reader: newTokenBufferFrom(tokens)}
	return p.scan()
}

type treeParser struct {
	reader tokenReader
	stack  []*Node
}

func (p *treeParser) push(n *Node) {
	p.stack = append(p.stack, n)
}

func (p *treeParser) pop(tok Token) (*Node, error) {
	if len(p.stack) == 0 {
		return nil, fmt.Errorf("Error at col %d: %w: %s is missing an operand", tok.Col, ErrMalformedExpression, tok.Value)
	}
	n := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return n, nil
}

func (p *treeParser) scan() (*Node, error) {
	for {
		tok, done := p.reader.Next()
		if done {
			break
		}

		switch tok.Type {
		case TokenNumber:
			p.push(Literal(tok.Num))
		case TokenVariable:
			p.push(Variable())
		case TokenOperator:
			last, err := p.pop(tok)
			if err != nil {
				return nil, err
			}
			first, err := p.pop(tok)
			if err != nil {
				return nil, err
			}
			p.push(BinaryOp(tok.Value, first, last))
		case TokenFunction, TokenUnaryMinus:
			arg, err := p.pop(tok)
			if err != nil {
				return nil, err
			}
			p.push(Function(functionName(tok), arg))
		default:
			return nil, fmt.Errorf("Error at col %d: %w: unexpected %s", tok.Col, ErrMalformedExpression, tok.Value)
		}
	}

	if len(p.stack) != 1 {
		return nil, fmt.Errorf("%w: %d nodes left after building tree", ErrMalformedExpression, len(p.stack))
	}
	return p.stack[0], nil
}

func functionName(tok Token) string {
	if tok.Type == TokenUnaryMinus {
		return NegateFunction
	}
	return tok.Value
}
