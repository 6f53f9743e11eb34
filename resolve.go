package calc

import "strconv"

// resolve binds every name in the tree to the symbol table. Names missing from
// the table are reported before any other problem, naming the first in source
// order. Otherwise, constants become nodeConst and calls are checked against
// their functions.
func resolve(n *node) error {
	err := n.walk(func(n *node) error {
		switch n.kind {
		case nodeName, nodeCall:
			if _, ok := symbols[n.name]; !ok {
				return &NameError{Name: n.name, Col: n.col}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return n.walk(func(n *node) error {
		switch n.kind {
		case nodeName:
			s := symbols[n.name]
			if s.kind == Function {
				return &CallError{Col: n.col, Func: n.name, Bare: true}
			}
			n.kind = nodeConst
			n.val = s.val
		case nodeCall:
			s := symbols[n.name]
			if s.kind != Function {
				return &NotFuncError{Col: n.col, Name: n.name}
			}
			if !s.fn.canCall(len(n.args)) {
				return &CallError{Col: n.col, Func: n.name, Len: len(n.args)}
			}
			n.fn = s.fn
		}
		return nil
	})
}

// NameError is an error indicating a name that is not in the symbol table.
// It implements InputError.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Col is the position of the name.
	Col int
}

func (err *NameError) Error() string {
	return errpos(err.Col, "undefined name "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}
