package calc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind
	// name is the literal text of a number or the name of a symbol.
	name string
	// col is the position of the token that produced the node.
	col int

	// val is the value of a number or constant.
	val Value
	// fn is the function of a call, set during resolution.
	fn function

	left  *node
	right *node
	args  []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // val is the literal
	nodeName  // unresolved name
	nodeConst // name resolved to constant val
	nodeCall  // call fn with args

	nodeNeg // evaluate left, then negate
	nodePos // evaluate left
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeName:
		return "Name"
	case nodeConst:
		return "Const"
	case nodeCall:
		return "Call"
	case nodeNeg:
		return "Neg"
	case nodePos:
		return "Pos"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodePow:
		return "Pow"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// binary reports whether the node is a binary operation.
func (n *node) binary() bool {
	return nodeAdd <= n.kind && n.kind <= nodePow
}

// symbol returns the operator text of a binary or unary node.
func (k nodeKind) symbol() string {
	switch k {
	case nodeNeg, nodeSub:
		return "-"
	case nodePos, nodeAdd:
		return "+"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodePow:
		return "**"
	default:
		return ""
	}
}

// spine collects the chain of binary nodes down the left side of n, starting
// with n. Left-associative chains can be as long as the input, so they are
// handled iteratively rather than by recursion.
func (n *node) spine() (chain []*node, leaf *node) {
	for n.binary() {
		chain = append(chain, n)
		n = n.left
	}
	return chain, n
}

// walk calls f on each node in source order. A node is visited before its
// children. If f returns an error, walk stops and returns it.
func (n *node) walk(f func(*node) error) error {
	stack := []*node{n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := f(n); err != nil {
			return err
		}
		if n.right != nil {
			stack = append(stack, n.right)
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
		for i := len(n.args) - 1; i >= 0; i-- {
			stack = append(stack, n.args[i])
		}
	}
	return nil
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	chain, leaf := n.spine()
	for range chain {
		b.WriteByte('(')
	}
	b.WriteByte('(')
	switch leaf.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteString("$#$")
	case nodeNum, nodeName, nodeConst:
		b.WriteString(leaf.name)
	case nodeCall:
		b.WriteString(leaf.name)
		b.WriteByte('(')
		for i, arg := range leaf.args {
			if i != 0 {
				b.WriteString(", ")
			}
			arg.fmt(b)
		}
		b.WriteByte(')')
	case nodeNeg, nodePos:
		b.WriteString(leaf.kind.symbol())
		leaf.left.fmt(b)
	default:
		panic("calc: invalid node kind " + leaf.kind.String() + " after writing " + b.String())
	}
	b.WriteByte(')')
	for i := len(chain) - 1; i >= 0; i-- {
		b.WriteString(" " + chain[i].kind.symbol() + " ")
		chain[i].right.fmt(b)
		b.WriteByte(')')
	}
}
