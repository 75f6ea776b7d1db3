package lib

import "strings"

// PrecedenceTable maps binary operator symbols to their binding strength.
// Parentheses, function names and unary minus have no entry.
type PrecedenceTable struct {
	levels map[string]int
}

func NewPrecedenceTable(levels map[string]int) PrecedenceTable {
	copied := make(map[string]int, len(levels))
	for op, level := range levels {
		copied[op] = level
	}
	return PrecedenceTable{levels: copied}
}

func DefaultPrecedence() PrecedenceTable {
	return NewPrecedenceTable(map[string]int{
		"^": 2,
		"*": 1,
		"/": 1,
		"+": 0,
		"-": 0,
	})
}

func (p PrecedenceTable) Level(op string) (int, bool) {
	level, ok := p.levels[op]
	return level, ok
}

func (p PrecedenceTable) equal(a Token, b Token) bool {
	levelA, okA := p.Level(a.Value)
	levelB, okB := p.Level(b.Value)
	return okA && okB && levelA == levelB
}

// templatePlaceholder is the variable that a derivative template is written
// in terms of. No function name in a template may contain it.
const templatePlaceholder = "x"

// TemplateTable maps a function name to the derivative of that function with
// respect to its argument, written in terms of templatePlaceholder.
type TemplateTable struct {
	templates map[string]string
}

func NewTemplateTable(templates map[string]string) TemplateTable {
	copied := make(map[string]string, len(templates))
	for name, tmpl := range templates {
		copied[name] = tmpl
	}
	return TemplateTable{templates: copied}
}

// DefaultTemplates covers every supported function. Each template is a
// product or quotient at the top level so appending "*inner'" keeps the
// chain rule grouping without extra parentheses.
func DefaultTemplates() TemplateTable {
	return NewTemplateTable(map[string]string{
		"sqrt":   "1/(2*sqrt(x))",
		"ln":     "1/x",
		"log":    "1/(x*ln(10))",
		"sin":    "cos(x)",
		"cos":    "-sin(x)",
		"tan":    "sec(x)^2",
		"sec":    "sec(x)*tan(x)",
		"csc":    "-csc(x)*cot(x)",
		"cot":    "-(csc(x)^2)",
		"arcsin": "1/sqrt(1-x^2)",
		"arccos": "-1/sqrt(1-x^2)",
		"arctan": "1/(1+x^2)",
		"arcsec": "1/(x*sqrt(x^2-1))",
		"arccsc": "-1/(x*sqrt(x^2-1))",
		"arccot": "-1/(1+x^2)",

		unaryMarker: "-1",
	})
}

func (t TemplateTable) Has(name string) bool {
	_, ok := t.templates[name]
	return ok
}

// instantiate substitutes arg for the placeholder in the named template.
func (t TemplateTable) instantiate(name string, arg string) (string, bool) {
	tmpl, ok := t.templates[name]
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(tmpl, templatePlaceholder, wrap(arg)), true
}
