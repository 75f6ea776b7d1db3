package test

// fixture pairs an expression with its unsimplified derivative.
type fixture struct {
	expr       string
	derivative string
}

var fixtures = []fixture{
	{"x", "1"},
	{"5", "0"},
	{"x*x", "1*x+x*1"},
	{"sin(x)", "cos(x)*1"},
	{"3*x+5", "(0*x+3*1)+0"},
}
