package calc

// Evaluate parses and evaluates an expression and formats the result. Errors
// are always of type *Error.
func Evaluate(expression string, opts ...Option) (result string, err error) {
	defer guard(expression, &err)
	ex, err := Compile(expression, opts...)
	if err != nil {
		return "", err
	}
	return ex.Evaluate(opts...)
}

// Compile parses an expression for repeated evaluation. Errors are always of
// type *Error, with kind SyntaxError, UnknownName, or EvaluationError.
func Compile(expression string, opts ...Option) (ex *Expr, err error) {
	defer guard(expression, &err)
	ex, err = ParseString(expression, opts...)
	if err != nil {
		return nil, classify(expression, err)
	}
	return ex, nil
}

// Evaluate evaluates the expression and formats the result. Errors are always
// of type *Error and quote the expression's source text.
func (e *Expr) Evaluate(opts ...Option) (result string, err error) {
	src := e.src
	if src == "" {
		src = e.String()
	}
	defer guard(src, &err)
	v, err := e.Eval(opts...)
	if err != nil {
		return "", classify(src, err)
	}
	return v.String(), nil
}
