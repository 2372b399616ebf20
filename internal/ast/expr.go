package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/HicaroD/kaleido/internal/lexer/token"
)

type OpSymbol int

const (
	OP_ADD OpSymbol = iota
	OP_SUB
	OP_MUL
	OP_DIV
	OP_LESS
	OP_GREATER
)

var OPERATORS map[token.Kind]OpSymbol = map[token.Kind]OpSymbol{
	token.PLUS:    OP_ADD,
	token.MINUS:   OP_SUB,
	token.STAR:    OP_MUL,
	token.SLASH:   OP_DIV,
	token.LESS:    OP_LESS,
	token.GREATER: OP_GREATER,
}

// OpFromToken fails for every kind without a binary operator meaning.
func OpFromToken(kind token.Kind) (OpSymbol, bool) {
	op, ok := OPERATORS[kind]
	return op, ok
}

func (op OpSymbol) String() string {
	switch op {
	case OP_ADD:
		return "+"
	case OP_SUB:
		return "-"
	case OP_MUL:
		return "*"
	case OP_DIV:
		return "/"
	case OP_LESS:
		return "<"
	case OP_GREATER:
		return ">"
	}
	return fmt.Sprintf("OpSymbol(%d)", int(op))
}

type NumberExpr struct {
	Value float64
}

func (number *NumberExpr) String() string {
	return strconv.FormatFloat(number.Value, 'g', -1, 64)
}

type VariableExpr struct {
	Name string
}

func (variable *VariableExpr) String() string {
	return variable.Name
}

type BinaryExpr struct {
	Op    OpSymbol
	Left  *Node
	Right *Node
}

func (binExpr *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", binExpr.Op, binExpr.Left, binExpr.Right)
}

type CallExpr struct {
	Callee string
	Args   []*Node
}

func (call *CallExpr) String() string {
	args := make([]string, len(call.Args))
	for i, arg := range call.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", call.Callee, strings.Join(args, ", "))
}
