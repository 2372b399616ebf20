// Package ast defines the abstract syntax tree for Kaleidoscope expressions.
package ast

import "fmt"

type NodeKind int

const (
	EXPR_START NodeKind = iota // expression node start delimiter

	KIND_NUMBER_EXPR
	KIND_VARIABLE_EXPR
	KIND_BINARY_EXPR
	KIND_CALL_EXPR

	EXPR_END // expression node end delimiter
)

// Node is a tagged expression. Node holds *NumberExpr, *VariableExpr,
// *BinaryExpr or *CallExpr depending on Kind.
type Node struct {
	Kind NodeKind
	Node any
}

func NewNumber(value float64) *Node {
	return &Node{Kind: KIND_NUMBER_EXPR, Node: &NumberExpr{Value: value}}
}

func NewVariable(name string) *Node {
	return &Node{Kind: KIND_VARIABLE_EXPR, Node: &VariableExpr{Name: name}}
}

func NewBinary(op OpSymbol, left, right *Node) *Node {
	return &Node{Kind: KIND_BINARY_EXPR, Node: &BinaryExpr{Op: op, Left: left, Right: right}}
}

func NewCall(callee string, args []*Node) *Node {
	return &Node{Kind: KIND_CALL_EXPR, Node: &CallExpr{Callee: callee, Args: args}}
}

func (n *Node) IsExpr() bool {
	return n.Kind > EXPR_START && n.Kind < EXPR_END
}

// String renders the tree as an s-expression, e.g. "(+ 1 (* 2 3))".
func (n *Node) String() string {
	switch n.Kind {
	case KIND_NUMBER_EXPR:
		return n.Node.(*NumberExpr).String()
	case KIND_VARIABLE_EXPR:
		return n.Node.(*VariableExpr).String()
	case KIND_BINARY_EXPR:
		return n.Node.(*BinaryExpr).String()
	case KIND_CALL_EXPR:
		return n.Node.(*CallExpr).String()
	default:
		return fmt.Sprintf("Unknown Node Kind: %v", n.Kind)
	}
}

func (kind NodeKind) String() string {
	switch kind {
	case KIND_NUMBER_EXPR:
		return "KIND_NUMBER_EXPR"
	case KIND_VARIABLE_EXPR:
		return "KIND_VARIABLE_EXPR"
	case KIND_BINARY_EXPR:
		return "KIND_BINARY_EXPR"
	case KIND_CALL_EXPR:
		return "KIND_CALL_EXPR"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(kind))
	}
}
