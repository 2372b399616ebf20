package lexer

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/HicaroD/kaleido/internal/lexer/token"
)

// Lexer turns a byte stream into tokens with one token of pushback.
type Lexer struct {
	Filename string

	reader *bufio.Reader
	pos    token.Pos
	last   token.Pos // position before the last byte read
	ahead  *token.Token
}

func New(filename string, r io.Reader) *Lexer {
	lexer := new(Lexer)

	lexer.Filename = filename
	lexer.reader = bufio.NewReader(r)
	lexer.pos = token.LineStart(filename, 1)
	lexer.last = lexer.pos
	lexer.ahead = nil

	return lexer
}

// NewAtLine starts counting lines at line, for sources fed one line at a
// time.
func NewAtLine(filename string, line int, r io.Reader) *Lexer {
	lexer := New(filename, r)
	lexer.pos = token.LineStart(filename, line)
	lexer.last = lexer.pos
	return lexer
}

func NewFromBytes(filename string, src []byte) *Lexer {
	return New(filename, bytes.NewReader(src))
}

func NewFromString(filename, src string) *Lexer {
	return New(filename, strings.NewReader(src))
}

func NewFromFilePath(path string) (*Lexer, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFromBytes(path, src), nil
}

// Next consumes and returns the next token.
func (lex *Lexer) Next() (token.Token, error) {
	if lex.ahead != nil {
		tok := *lex.ahead
		lex.ahead = nil
		return tok, nil
	}
	return lex.lex()
}

// Peek returns the next token without consuming it. The token is memoized
// until the next call to Next. A memoized end of input is lexed again, so a
// stream that grew in the meantime is picked up.
func (lex *Lexer) Peek() (token.Token, error) {
	if lex.ahead == nil || lex.ahead.Kind == token.EOF {
		tok, err := lex.lex()
		if err != nil {
			return token.Token{}, err
		}
		lex.ahead = &tok
	}
	return *lex.ahead, nil
}

// Useful for testing
func (lex *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, nil
}

func (lex *Lexer) lex() (token.Token, error) {
	for {
		err := lex.skipWhitespace()
		if err != nil {
			return token.Token{}, err
		}

		start := lex.pos
		ch, ok, err := lex.nextChar()
		if err != nil {
			return token.Token{}, err
		}
		if !ok {
			return token.New(token.EOF, "", start), nil
		}

		if ch == '#' {
			err := lex.skipComment()
			if err != nil {
				return token.Token{}, err
			}
			continue
		}

		return lex.getToken(ch, start)
	}
}

func (lex *Lexer) getToken(ch byte, start token.Pos) (token.Token, error) {
	if kind, ok := token.PUNCTUATION[ch]; ok {
		return token.New(kind, "", start), nil
	}

	switch ch {
	case '\'', '"':
		return lex.getStringLit(ch, start)
	case '=':
		return lex.readAhead('=', token.EQUAL_EQUAL, token.EQUAL, start)
	case '>':
		return lex.readAhead('=', token.GREATER_EQ, token.GREATER, start)
	case '<':
		return lex.readAhead('=', token.LESS_EQ, token.LESS, start)
	}

	switch {
	case isDigit(ch) || ch == '.':
		return lex.getNumberLit(ch, start)
	case unicode.IsControl(rune(ch)):
		return token.Token{}, &Error{Kind: UNSUPPORTED_SYMBOL, Pos: start, Text: string(rune(ch))}
	default:
		return lex.getIdOrKeyword(ch, start)
	}
}

func (lex *Lexer) readAhead(ahead byte, long, short token.Kind, start token.Pos) (token.Token, error) {
	ch, ok, err := lex.nextChar()
	if err != nil {
		return token.Token{}, err
	}
	if ok && ch == ahead {
		return token.New(long, "", start), nil
	}
	if ok {
		err := lex.backChar()
		if err != nil {
			return token.Token{}, err
		}
	}
	return token.New(short, "", start), nil
}

func (lex *Lexer) getStringLit(quote byte, start token.Pos) (token.Token, error) {
	var str []byte
	for {
		ch, ok, err := lex.nextChar()
		if err != nil {
			return token.Token{}, err
		}
		// end of input closes the literal
		if !ok || ch == quote {
			break
		}
		if ch == '\n' {
			return token.Token{}, &Error{
				Kind: UNCLOSED_STRING,
				Pos:  start,
				Text: string(quote) + string(str),
			}
		}
		str = append(str, ch)
	}
	return token.New(token.STRING, string(str), start), nil
}

func (lex *Lexer) getNumberLit(first byte, start token.Pos) (token.Token, error) {
	rest, err := lex.readWhile(func(ch byte) bool {
		return isDigit(ch) || ch == '.' || ch == '_'
	})
	if err != nil {
		return token.Token{}, err
	}

	number := string(first) + string(rest)
	// no digit separators
	if strings.ContainsRune(number, '_') {
		err := &strconv.NumError{Func: "ParseFloat", Num: number, Err: strconv.ErrSyntax}
		return token.Token{}, &Error{Kind: PARSE_FLOAT, Pos: start, Text: number, Err: err}
	}
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return token.Token{}, &Error{Kind: PARSE_FLOAT, Pos: start, Text: number, Err: err}
	}
	return token.NewNumber(value, number, start), nil
}

func (lex *Lexer) getIdOrKeyword(first byte, start token.Pos) (token.Token, error) {
	rest, err := lex.readWhile(func(ch byte) bool {
		return unicode.IsNumber(rune(ch)) || unicode.IsLetter(rune(ch)) || ch == '_'
	})
	if err != nil {
		return token.Token{}, err
	}

	identifier := string(first) + string(rest)
	if keyword, ok := token.KEYWORDS[identifier]; ok {
		return token.New(keyword, identifier, start), nil
	}
	return token.New(token.ID, identifier, start), nil
}

func (lex *Lexer) skipComment() error {
	for {
		ch, ok, err := lex.nextChar()
		if err != nil {
			return err
		}
		if !ok || ch == '\n' {
			return nil
		}
	}
}

func (lex *Lexer) skipWhitespace() error {
	_, err := lex.readWhile(func(ch byte) bool {
		return unicode.IsSpace(rune(ch))
	})
	return err
}

func (lex *Lexer) readWhile(isValid func(byte) bool) ([]byte, error) {
	var read []byte
	for {
		ch, ok, err := lex.nextChar()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if !isValid(ch) {
			err := lex.backChar()
			if err != nil {
				return nil, err
			}
			break
		}
		read = append(read, ch)
	}
	return read, nil
}

func (lex *Lexer) nextChar() (byte, bool, error) {
	ch, err := lex.reader.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		return 0, false, &Error{Kind: IO, Pos: lex.pos, Err: err}
	}
	lex.last = lex.pos
	lex.pos = lex.pos.Advance(ch)
	return ch, true, nil
}

// backChar rewinds the stream by the byte read last.
func (lex *Lexer) backChar() error {
	err := lex.reader.UnreadByte()
	if err != nil {
		return &Error{Kind: IO, Pos: lex.pos, Err: err}
	}
	lex.pos = lex.last
	return nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
