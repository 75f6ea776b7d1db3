package lib

import (
	"log/slog"
)

// Engine runs the differentiation pipeline. Its tables and rules are built
// once by NewEngine and never modified, so one Engine may serve concurrent
// callers.
type Engine struct {
	precedence PrecedenceTable
	templates  TemplateTable
	rules      *RuleSet
	logger     *slog.Logger
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithPrecedence(precedence PrecedenceTable) Option {
	return func(e *Engine) {
		e.precedence = precedence
	}
}

func WithTemplates(templates TemplateTable) Option {
	return func(e *Engine) {
		e.templates = templates
	}
}

func WithRules(rules *RuleSet) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		precedence: DefaultPrecedence(),
		templates:  DefaultTemplates(),
		rules:      DefaultRules(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Postfix converts an infix expression to a postfix token sequence.
func (e *Engine) Postfix(expr string) ([]Token, error) {
	buffer := newTokenBuffer()
	if err := lex(expr, e.precedence, buffer.Write); err != nil {
		e.logger.Debug("postfix", "expr", expr, "error", err)
		return nil, err
	}
	tokens := buffer.Tokens()
	e.logger.Debug("postfix", "expr", expr, "postfix", PostfixString(tokens))
	return tokens, nil
}

// Differentiate returns the unsimplified derivative of expr as text.
func (e *Engine) Differentiate(expr string) (string, error) {
	tokens, err := e.Postfix(expr)
	if err != nil {
		return "", err
	}
	s := newDerivativeScanner(newTokenBufferFrom(tokens), e.templates)
	derivative, err := s.scan()
	if err != nil {
		e.logger.Debug("differentiate", "expr", expr, "error", err)
		return "", err
	}
	e.logger.Debug("differentiate", "expr", expr, "derivative", derivative)
	return derivative, nil
}

// DifferentiateAndSimplify runs the full pipeline and returns the simplified
// derivative tree.
func (e *Engine) DifferentiateAndSimplify(expr string) (*Node, error) {
	derivative, err := e.Differentiate(expr)
	if err != nil {
		return nil, err
	}
	return e.SimplifyText(derivative)
}

// SimplifyText parses expression text into a tree and simplifies it.
func (e *Engine) SimplifyText(expr string) (*Node, error) {
	tokens, err := e.Postfix(expr)
	if err != nil {
		return nil, err
	}
	tree, err := BuildTree(tokens)
	if err != nil {
		e.logger.Debug("build tree", "expr", expr, "error", err)
		return nil, err
	}
	return e.Simplify(tree), nil
}

// Simplify rewrites tree in place with the engine's rule set.
func (e *Engine) Simplify(tree *Node) *Node {
	s := NewSimplifier(e.rules)
	s.onApply = func(rule string, n *Node) {
		e.logger.Debug("simplify", "rule", rule, "result", n.Kind.String(), "value", n.Value)
	}
	return s.Simplify(tree)
}

var defaultEngine = NewEngine()

func ToPostfix(expr string) ([]Token, error) {
	return defaultEngine.Postfix(expr)
}

func Differentiate(expr string) (string, error) {
	return defaultEngine.Differentiate(expr)
}

func DifferentiateAndSimplify(expr string) (*Node, error) {
	return defaultEngine.DifferentiateAndSimplify(expr)
}

func Simplify(tree *Node) *Node {
	return defaultEngine.Simplify(tree)
}
