// Package driver feeds source lines through the lexer, parser, code
// generator and, when one is attached, the JIT.
package driver

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"

	llvmbackend "github.com/HicaroD/kaleido/internal/backend/llvm"
	"github.com/HicaroD/kaleido/internal/codegen"
	"github.com/HicaroD/kaleido/internal/diagnostics"
	"github.com/HicaroD/kaleido/internal/jit"
	"github.com/HicaroD/kaleido/internal/lexer"
	"github.com/HicaroD/kaleido/internal/lexer/token"
	"github.com/HicaroD/kaleido/internal/parser"
)

type ResultKind int

const (
	RESULT_DEFINITION ResultKind = iota
	RESULT_EXTERN
	RESULT_EXPR
	// Blank line: the whole module
	RESULT_MODULE
)

func (kind ResultKind) String() string {
	switch kind {
	case RESULT_DEFINITION:
		return "definition"
	case RESULT_EXTERN:
		return "extern"
	case RESULT_EXPR:
		return "expression"
	case RESULT_MODULE:
		return "module"
	}
	return fmt.Sprintf("ResultKind(%d)", int(kind))
}

type Result struct {
	Kind ResultKind
	IR   string
	// Set only for expressions evaluated by the JIT
	Value    float64
	HasValue bool
}

// Session is one compilation context shared by every line it handles.
// Lines are handled one at a time.
type Session struct {
	mu sync.Mutex

	filename string
	lineNo   int

	backend *llvmbackend.Backend
	codegen *codegen.Codegen
	engine  *jit.Engine
	logger  *log.Logger
}

// NewSession builds on b. Without an engine top-level expressions are only
// compiled, and a nil logger disables tracing.
func NewSession(filename string, b *llvmbackend.Backend, engine *jit.Engine, logger *log.Logger) *Session {
	return &Session{
		filename: filename,
		backend:  b,
		codegen:  codegen.New(b),
		engine:   engine,
		logger:   logger,
	}
}

// HandleLine dispatches on the first token of line: definitions, externs,
// blank lines (which render the module) and top-level expressions.
func (s *Session) HandleLine(line string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.lineNo + 1
	s.lineNo += strings.Count(line, "\n") + 1
	lex := lexer.NewAtLine(s.filename, start, strings.NewReader(line))
	p := parser.New(lex)

	tok, err := p.Peek()
	if err != nil {
		return Result{}, err
	}

	switch tok.Kind {
	case token.DEF:
		return s.handleDefinition(p)
	case token.EXTERN:
		return s.handleExtern(p)
	case token.EOF:
		return Result{Kind: RESULT_MODULE, IR: s.backend.RenderModule()}, nil
	default:
		return s.handleTopLevel(p)
	}
}

func (s *Session) handleDefinition(p *parser.Parser) (Result, error) {
	fnDecl, err := p.ParseDefinition()
	if err != nil {
		return Result{}, err
	}
	fn, err := s.codegen.GenerateFunction(fnDecl)
	if err != nil {
		return Result{}, err
	}
	s.trace("defined %s", fnDecl.Proto)
	return Result{Kind: RESULT_DEFINITION, IR: s.backend.RenderValue(fn)}, nil
}

func (s *Session) handleExtern(p *parser.Parser) (Result, error) {
	proto, err := p.ParseExtern()
	if err != nil {
		return Result{}, err
	}
	fn, err := s.codegen.GeneratePrototype(proto)
	if err != nil {
		return Result{}, err
	}
	s.trace("declared %s", proto)
	return Result{Kind: RESULT_EXTERN, IR: s.backend.RenderValue(fn)}, nil
}

func (s *Session) handleTopLevel(p *parser.Parser) (Result, error) {
	fnDecl, err := p.ParseTopLevelExpr()
	if err != nil {
		return Result{}, err
	}
	fn, err := s.codegen.GenerateFunction(fnDecl)
	if err != nil {
		return Result{}, err
	}

	result := Result{Kind: RESULT_EXPR, IR: s.backend.RenderValue(fn)}
	if s.engine == nil {
		return result, nil
	}

	// evaluated expressions do not stay in the module
	defer s.backend.EraseFunction(fn)

	value, err := s.engine.Eval(s.backend, fn)
	if err != nil {
		return Result{}, err
	}
	s.trace("evaluated %s", fnDecl.Body)

	result.Value = value
	result.HasValue = true
	return result, nil
}

// Incomplete reports whether src stops in the middle of a definition,
// extern or expression. Callers keep reading lines until it is false.
func Incomplete(src string) bool {
	p := parser.New(lexer.NewFromString("", src))

	tok, err := p.Peek()
	if err != nil {
		return false
	}

	switch tok.Kind {
	case token.DEF:
		_, err = p.ParseDefinition()
	case token.EXTERN:
		_, err = p.ParseExtern()
	case token.EOF:
		return false
	default:
		_, err = p.ParseExpr()
	}
	return parser.IsIncomplete(err)
}

// Run handles r line by line, printing evaluated values to w. A line that
// leaves a definition or expression open is joined with the following ones.
// Failing units are reported to collector and skipped. It returns
// COMPILER_ERROR_FOUND if any unit failed.
func (s *Session) Run(r io.Reader, w io.Writer, collector *diagnostics.Collector) error {
	var pending strings.Builder

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if pending.Len() > 0 {
			pending.WriteByte('\n')
		}
		pending.WriteString(scanner.Text())

		src := pending.String()
		if Incomplete(src) {
			continue
		}
		pending.Reset()
		s.runUnit(src, w, collector)
	}
	if pending.Len() > 0 {
		s.runUnit(pending.String(), w, collector)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", s.filename, err)
	}
	if collector.HasErrors() {
		return diagnostics.COMPILER_ERROR_FOUND
	}
	return nil
}

func (s *Session) runUnit(src string, w io.Writer, collector *diagnostics.Collector) {
	result, err := s.HandleLine(src)
	if err != nil {
		collector.ReportAndSave(diagnostics.FromError(err))
		return
	}
	if result.HasValue {
		fmt.Fprintln(w, FormatValue(result.Value))
	}
}

// Module renders every function compiled so far.
func (s *Session) Module() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.RenderModule()
}

func FormatValue(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

func (s *Session) trace(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Printf("[DEBUG MODE] "+format, args...)
}
