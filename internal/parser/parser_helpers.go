package parser

import (
	"github.com/HicaroD/kaleido/internal/ast"
	"github.com/HicaroD/kaleido/internal/lexer"
)

const defaultFilename = "test.k"

func newFromSource(src, filename string) *Parser {
	if filename == "" {
		filename = defaultFilename
	}
	return New(lexer.NewFromString(filename, src))
}

func ParseExprFrom(expr, filename string) (*ast.Node, error) {
	return newFromSource(expr, filename).ParseExpr()
}

func ParseDefinitionFrom(src, filename string) (*ast.FnDecl, error) {
	return newFromSource(src, filename).ParseDefinition()
}

func ParseExternFrom(src, filename string) (*ast.Proto, error) {
	return newFromSource(src, filename).ParseExtern()
}

func ParseTopLevelFrom(src, filename string) (*ast.FnDecl, error) {
	return newFromSource(src, filename).ParseTopLevelExpr()
}
