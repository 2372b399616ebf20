package parser

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/HicaroD/kaleido/internal/ast"
	"github.com/HicaroD/kaleido/internal/diagnostics"
	"github.com/HicaroD/kaleido/internal/lexer"
	"github.com/HicaroD/kaleido/internal/lexer/token"
)

type exprTest struct {
	input    string
	expected string
}

func TestExprPrecedence(t *testing.T) {
	filename := "test.k"

	tests := []exprTest{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"8 - 4 - 2", "(- (- 8 4) 2)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"1 + 2 * 3 - 4", "(- (+ 1 (* 2 3)) 4)"},
		{"1 + 2 * 3 * 4 + 5", "(+ (+ 1 (* (* 2 3) 4)) 5)"},
		{"a * b * c + d", "(+ (* (* a b) c) d)"},
		{"a < b + c", "(< a (+ b c))"},
		{"a + b < c", "(< (+ a b) c)"},
		{"1 < 2 > 0", "(> (< 1 2) 0)"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"((x))", "x"},
		{"42", "42"},
		{"x", "x"},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestExprPrecedence(%q)", test.input), func(t *testing.T) {
			expr, err := ParseExprFrom(test.input, filename)
			if err != nil {
				t.Fatalf("unexpected error '%v'", err)
			}
			if expr.String() != test.expected {
				t.Errorf("expected %s, got %s", test.expected, expr)
			}
		})
	}
}

func TestCallExpr(t *testing.T) {
	tests := []struct {
		input  string
		callee string
		args   []string
	}{
		{"f()", "f", nil},
		{"f(1)", "f", []string{"1"}},
		{"f(1, x + 2)", "f", []string{"1", "(+ x 2)"}},
		{"g(h(a), b * c, 3)", "g", []string{"h(a)", "(* b c)", "3"}},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestCallExpr(%q)", test.input), func(t *testing.T) {
			node, err := ParseExprFrom(test.input, "")
			if err != nil {
				t.Fatalf("unexpected error '%v'", err)
			}
			if node.Kind != ast.KIND_CALL_EXPR {
				t.Fatalf("expected KIND_CALL_EXPR, got %s", node.Kind)
			}

			call := node.Node.(*ast.CallExpr)
			if call.Callee != test.callee {
				t.Errorf("expected callee %q, got %q", test.callee, call.Callee)
			}
			var args []string
			for _, arg := range call.Args {
				args = append(args, arg.String())
			}
			if !reflect.DeepEqual(args, test.args) {
				t.Errorf("expected args %v, got %v", test.args, args)
			}
		})
	}
}

func TestTrailingTokensAreLeftAlone(t *testing.T) {
	p := New(lexer.NewFromString("", "1 2"))

	expr, err := p.ParseExpr()
	if err != nil {
		t.Fatalf("unexpected error '%v'", err)
	}
	if expr.String() != "1" {
		t.Errorf("expected 1, got %s", expr)
	}

	tok, err := p.Peek()
	if err != nil {
		t.Fatalf("unexpected error '%v'", err)
	}
	if tok.Kind != token.NUMBER || tok.Value != 2 {
		t.Errorf("expected the trailing number to still be pending, got %s", tok)
	}
}

type parseErrorTest struct {
	input string
	kind  ErrorKind
	msg   string
}

func TestExprErrors(t *testing.T) {
	tests := []parseErrorTest{
		{"f(1 2)", SYNTAX, "expected ')' or ',' in argument list"},
		{"f(1,", UNEXPECTED_TOKEN, ""},
		{"(1 + 2", SYNTAX, "expected ')'"},
		{")", UNEXPECTED_TOKEN, ""},
		{"1 +", UNEXPECTED_TOKEN, ""},
		{"1 + 'x'", UNEXPECTED_TOKEN, ""},
		{"", UNEXPECTED_TOKEN, ""},
		{"def", UNEXPECTED_TOKEN, ""},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestExprErrors(%q)", test.input), func(t *testing.T) {
			_, err := ParseExprFrom(test.input, "")
			checkParseError(t, err, test)
		})
	}
}

func TestLexerErrorsPropagate(t *testing.T) {
	_, err := ParseExprFrom("1 + \x01", "")

	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.Error, got %v", err)
	}
	if lexErr.Kind != lexer.UNSUPPORTED_SYMBOL {
		t.Errorf("expected %s, got %s", lexer.UNSUPPORTED_SYMBOL, lexErr.Kind)
	}
}

func TestDefinition(t *testing.T) {
	tests := []struct {
		input  string
		name   string
		params []string
		body   string
	}{
		{"def foo(a b) a + b", "foo", []string{"a", "b"}, "(+ a b)"},
		{"def one() 1", "one", nil, "1"},
		{"def id(x) x", "id", []string{"x"}, "x"},
		{"def dup(a a) a", "dup", []string{"a", "a"}, "a"},
		{"def f(x) g(x) * 2", "f", []string{"x"}, "(* g(x) 2)"},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestDefinition(%q)", test.input), func(t *testing.T) {
			fnDecl, err := ParseDefinitionFrom(test.input, "")
			if err != nil {
				t.Fatalf("unexpected error '%v'", err)
			}
			if fnDecl.Proto.Name != test.name {
				t.Errorf("expected name %q, got %q", test.name, fnDecl.Proto.Name)
			}
			if !reflect.DeepEqual(fnDecl.Proto.Params, test.params) {
				t.Errorf("expected params %v, got %v", test.params, fnDecl.Proto.Params)
			}
			if fnDecl.Body.String() != test.body {
				t.Errorf("expected body %s, got %s", test.body, fnDecl.Body)
			}
		})
	}
}

func TestPrototypeErrors(t *testing.T) {
	tests := []parseErrorTest{
		{"def 1(a) a", EXPECTED_FUNCTION_NAME, ""},
		{"def (a) a", EXPECTED_FUNCTION_NAME, ""},
		{"def foo a", SYNTAX, "expected '(' in prototype"},
		{"def foo(a, b) a", SYNTAX, "expected ')' in prototype"},
		{"def foo(a", SYNTAX, "expected ')' in prototype"},
		{"def foo(a)", UNEXPECTED_TOKEN, ""},
		{"foo(a) a", SYNTAX, "expected 'def'"},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestPrototypeErrors(%q)", test.input), func(t *testing.T) {
			_, err := ParseDefinitionFrom(test.input, "")
			checkParseError(t, err, test)
		})
	}
}

func TestExtern(t *testing.T) {
	proto, err := ParseExternFrom("extern sin(x)", "")
	if err != nil {
		t.Fatalf("unexpected error '%v'", err)
	}
	if proto.Name != "sin" || !reflect.DeepEqual(proto.Params, []string{"x"}) {
		t.Errorf("unexpected prototype %s", proto)
	}
	expectedPos := token.Pos{Filename: defaultFilename, Line: 1, Column: 8}
	if proto.Pos != expectedPos {
		t.Errorf("expected prototype at %s, got %s", expectedPos, proto.Pos)
	}

	_, err = ParseExternFrom("extern", "")
	checkParseError(t, err, parseErrorTest{"extern", EXPECTED_FUNCTION_NAME, ""})
}

func TestTopLevelExpr(t *testing.T) {
	tests := []exprTest{
		{"1 + 2", "(+ 1 2)"},
		{"f(3)", "f(3)"},
		{"x", "x"},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestTopLevelExpr(%q)", test.input), func(t *testing.T) {
			fnDecl, err := ParseTopLevelFrom(test.input, "")
			if err != nil {
				t.Fatalf("unexpected error '%v'", err)
			}
			if !fnDecl.Proto.IsAnonymous() {
				t.Errorf("expected anonymous prototype, got %q", fnDecl.Proto.Name)
			}
			if fnDecl.Proto.Arity() != 0 {
				t.Errorf("expected no parameters, got %v", fnDecl.Proto.Params)
			}
			if fnDecl.Body.String() != test.expected {
				t.Errorf("expected body %s, got %s", test.expected, fnDecl.Body)
			}
		})
	}
}

func checkParseError(t *testing.T, err error, test parseErrorTest) {
	t.Helper()

	var parseErr *Error
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *Error for %q, got %v", test.input, err)
	}
	if parseErr.Kind != test.kind {
		t.Errorf("expected %s, got %s (%v)", test.kind, parseErr.Kind, parseErr)
	}
	if test.msg != "" && parseErr.Msg != test.msg {
		t.Errorf("expected message %q, got %q", test.msg, parseErr.Msg)
	}
	if parseErr.Stage() != diagnostics.STAGE_PARSE {
		t.Errorf("expected parse stage, got %s", parseErr.Stage())
	}
}

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		input      string
		incomplete bool
	}{
		{"def f(x)", true},
		{"def f(x", true},
		{"def", true},
		{"1 +", true},
		{"f(1,", true},
		{"(1", true},
		{"def f(x) x", false},
		{"1 + 2", false},
		{"f(1 2)", false},
		{")", false},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestIsIncomplete(%q)", test.input), func(t *testing.T) {
			p := New(lexer.NewFromString("", test.input))
			var err error
			if tok, _ := p.Peek(); tok.Kind == token.DEF {
				_, err = p.ParseDefinition()
			} else {
				_, err = p.ParseExpr()
			}
			if got := IsIncomplete(err); got != test.incomplete {
				t.Errorf("expected %v, got %v (%v)", test.incomplete, got, err)
			}
		})
	}

	if IsIncomplete(nil) {
		t.Errorf("expected nil to be complete")
	}
}
