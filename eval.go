package calc

import (
	"io"
	"strings"
)

// Eval evaluates the expression. Options which are not evaluation options are
// ignored. The error, if any, describes the failed operation, e.g.
// *ZeroDivisionError or *DomainError.
func (e *Expr) Eval(opts ...Option) (Value, error) {
	cfg := newConfig(opts)
	return e.n.eval(&cfg)
}

// eval computes the node's value.
func (n *node) eval(c *config) (Value, error) {
	chain, leaf := n.spine()
	acc, err := leaf.evalLeaf(c)
	if err != nil {
		return Value{}, err
	}
	for i := len(chain) - 1; i >= 0; i-- {
		b := chain[i]
		r, err := b.right.eval(c)
		if err != nil {
			return Value{}, err
		}
		acc, err = c.arith(b.kind, acc, r)
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

// evalLeaf computes the value of a node which is not a binary operation.
func (n *node) evalLeaf(c *config) (Value, error) {
	switch n.kind {
	case nodeNum:
		if n.val.i != nil {
			return c.intResult(n.val.i, "literal")
		}
		return realResult(n.val.f, "literal")
	case nodeConst:
		return n.val, nil
	case nodeName:
		// Parse resolves every name.
		return Value{}, &NameError{Name: n.name, Col: n.col}
	case nodeCall:
		args := make([]Value, len(n.args))
		for i, arg := range n.args {
			v, err := arg.eval(c)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		return n.fn.call(c, args)
	case nodeNeg:
		v, err := n.left.eval(c)
		if err != nil {
			return Value{}, err
		}
		return neg(v), nil
	case nodePos:
		return n.left.eval(c)
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner, opts ...Option) (Value, error) {
	a, err := Parse(src, opts...)
	if err != nil {
		return Value{}, err
	}
	return a.Eval(opts...)
}

// EvalString is a shortcut to parse and evaluate a string expression. Errors
// are the unclassified errors of Parse and Eval; use Evaluate for classified
// errors.
func EvalString(src string, opts ...Option) (Value, error) {
	return Eval(strings.NewReader(src), opts...)
}
