package dimcalc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind
	// pos is the column of the token that produced the node.
	pos int

	// name is the literal text of numbers, the name of identifiers and
	// calls, and the text of strings.
	name string
	num  float64
	unit string
	fn   Func

	left  *node
	right *node
	args  []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // num with unit
	nodeName // constant num, or fn if not nil
	nodeStr  // name is the text
	nodeCall // call fn with args

	nodeNeg // negate left
	nodeAdd // left + right
	nodeSub // left - right
	nodeMul // left * right
	nodeDiv // left / right
	nodePow // left ^ right
)

var nodeNames = [...]string{
	nodeNone: "None",
	nodeNum:  "Num",
	nodeName: "Name",
	nodeStr:  "Str",
	nodeCall: "Call",
	nodeNeg:  "Neg",
	nodeAdd:  "Add",
	nodeSub:  "Sub",
	nodeMul:  "Mul",
	nodeDiv:  "Div",
	nodePow:  "Pow",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeNames[k]
}

// binops maps binary node kinds to their operators.
var binops = map[nodeKind]Operator{
	nodeAdd: OpAdd,
	nodeSub: OpSub,
	nodeMul: OpMul,
	nodeDiv: OpDiv,
	nodePow: OpPow,
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes n fully parenthesized. Strings are written bare, since they
// extend to the next whitespace. A string operand gets a trailing space so
// that the following parenthesis or comma stays a separate token.
func (n *node) fmt(b *strings.Builder) {
	if n.kind == nodeStr {
		b.WriteString(n.name)
		return
	}
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteString("$$")
	case nodeNum, nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, a := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.operand(b)
		}
		b.WriteByte(')')
	case nodeNeg:
		b.WriteByte('-')
		n.left.operand(b)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(binops[n.kind].String())
		b.WriteByte(' ')
		n.right.operand(b)
	default:
		panic("dimcalc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// operand writes n where punctuation may follow it.
func (n *node) operand(b *strings.Builder) {
	n.fmt(b)
	if n.kind == nodeStr {
		b.WriteByte(' ')
	}
}
