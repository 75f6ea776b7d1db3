package lib

import "errors"

var (
	// ErrMismatchedParentheses is returned for a close paren without a
	// matching open paren, or an open paren left unclosed.
	ErrMismatchedParentheses = errors.New("mismatched parentheses")

	// ErrInvalidNumber is returned for a numeric literal with more than one
	// decimal point, or a point that does not start a number.
	ErrInvalidNumber = errors.New("invalid number")

	ErrIllegalCharacter = errors.New("illegal character")

	// ErrMalformedExpression is returned when postfix evaluation does not end
	// with exactly one operand on the stack.
	ErrMalformedExpression = errors.New("malformed expression")

	ErrUnknownFunction = errors.New("unknown function")
)
