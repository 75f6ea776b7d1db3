package lib

import "fmt"

// Pair is an operand of the derivative evaluator: the text of a
// subexpression and the text of its derivative.
type Pair struct {
	Value      string
	Derivative string
}

type derivativeScanner struct {
	reader    tokenReader
	templates TemplateTable
	stack     []Pair
}

func newDerivativeScanner(reader tokenReader, templates TemplateTable) *derivativeScanner {
	return &derivativeScanner{
		reader:    reader,
		templates: templates,
		stack:     []Pair{},
	}
}

func (s *derivativeScanner) push(p Pair) {
	s.stack = append(s.stack, p)
}

func (s *derivativeScanner) pop(tok Token) (Pair, error) {
	if len(s.stack) == 0 {
		return Pair{}, fmt.Errorf("Error at col %d: %w: %s is missing an operand", tok.Col, ErrMalformedExpression, tok.Value)
	}
	p := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return p, nil
}

// scan replays the postfix sequence and returns the derivative text of the
// whole expression.
func (s *derivativeScanner) scan() (string, error) {
	for {
		tok, done := s.reader.Next()
		if done {
			break
		}

		var err error
		switch tok.Type {
		case TokenNumber:
			s.push(Pair{Value: tok.Value, Derivative: "0"})
		case TokenVariable:
			s.push(Pair{Value: varMarker, Derivative: "1"})
		case TokenOperator:
			err = s.scanOperator(tok)
		case TokenFunction, TokenUnaryMinus:
			err = s.scanFunction(tok)
		default:
			err = fmt.Errorf("Error at col %d: %w: unexpected %s", tok.Col, ErrMalformedExpression, tok.Value)
		}
		if err != nil {
			return "", err
		}
	}

	if len(s.stack) != 1 {
		return "", fmt.Errorf("%w: %d operands left after evaluation", ErrMalformedExpression, len(s.stack))
	}
	return s.stack[0].Derivative, nil
}

func (s *derivativeScanner) scanOperator(tok Token) error {
	last, err := s.pop(tok)
	if err != nil {
		return err
	}
	first, err := s.pop(tok)
	if err != nil {
		return err
	}
	s.push(combine(tok.Value, first, last))
	return nil
}

// scanFunction applies the chain rule: f'(g) * g'.
func (s *derivativeScanner) scanFunction(tok Token) error {
	arg, err := s.pop(tok)
	if err != nil {
		return err
	}
	outer, ok := s.templates.instantiate(tok.Value, arg.Value)
	if !ok {
		return fmt.Errorf("Error at col %d: %w: %s", tok.Col, ErrUnknownFunction, tok.Value)
	}
	s.push(Pair{
		Value:      applyFunction(tok, arg.Value),
		Derivative: outer + "*" + wrap(arg.Derivative),
	})
	return nil
}

func combine(op string, first Pair, last Pair) Pair {
	value := wrap(first.Value) + op + wrap(last.Value)

	var derivative string
	switch op {
	case "+", "-":
		derivative = wrap(first.Derivative) + op + wrap(last.Derivative)
	case "*":
		derivative = productRule(first, last)
	case "/":
		derivative = "(" + wrap(first.Derivative) + "*" + wrap(last.Value) + "-" +
			wrap(first.Value) + "*" + wrap(last.Derivative) + ")/" + wrap(last.Value) + "^2"
	case "^":
		derivative = powerRule(first, last)
	}
	return Pair{Value: value, Derivative: derivative}
}

func productRule(first Pair, last Pair) string {
	return wrap(first.Derivative) + "*" + wrap(last.Value) + "+" + wrap(first.Value) + "*" + wrap(last.Derivative)
}

// powerRule differentiates base^exp with both sides treated as functions of
// the variable: base^(exp-1) * (exp*base' + base*ln(base)*exp').
func powerRule(base Pair, exp Pair) string {
	return wrap(base.Value) + "^(" + wrap(exp.Value) + "-1)*(" +
		wrap(exp.Value) + "*" + wrap(base.Derivative) + "+" +
		wrap(base.Value) + "*" + applyFunction(functionToken("ln", 0), base.Value) + "*" + wrap(exp.Derivative) + ")"
}

func applyFunction(tok Token, arg string) string {
	if tok.Type == TokenUnaryMinus {
		return "-" + wrap(arg)
	}
	return tok.Value + wrap(arg)
}

// wrap parenthesizes spliced text unless it is a single character or a bare
// number.
func wrap(expr string) string {
	if len(expr) <= 1 || isNumericLiteral(expr) {
		return expr
	}
	return "(" + expr + ")"
}

func isNumericLiteral(expr string) bool {
	if expr == "" {
		return false
	}
	for _, ch := range expr {
		if !isDigit(ch) && !isDecimalPoint(ch) {
			return false
		}
	}
	return true
}
