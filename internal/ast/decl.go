package ast

import (
	"fmt"
	"strings"

	"github.com/HicaroD/kaleido/internal/lexer/token"
)

// Proto is a function signature. Every parameter and the result are
// doubles, so only names are kept. An empty Name marks the anonymous
// wrapper of a top-level expression.
type Proto struct {
	Name   string
	Params []string
	Pos    token.Pos
}

func (proto *Proto) Arity() int { return len(proto.Params) }

func (proto *Proto) IsAnonymous() bool { return proto.Name == "" }

func (proto *Proto) String() string {
	return fmt.Sprintf("%s(%s)", proto.Name, strings.Join(proto.Params, " "))
}

type FnDecl struct {
	Proto *Proto
	Body  *Node
}

func (fnDecl *FnDecl) String() string {
	return fmt.Sprintf("def %s %s", fnDecl.Proto, fnDecl.Body)
}
