package token

import "fmt"

type Kind int

const (
	// EOF
	EOF Kind = iota

	// Identifier
	ID

	// Literals
	NUMBER
	STRING

	// Keywords
	DEF
	EXTERN

	// (
	OPEN_PAREN
	// )
	CLOSE_PAREN

	// {
	OPEN_CURLY
	// }
	CLOSE_CURLY

	// [
	OPEN_BRACKET
	// ]
	CLOSE_BRACKET

	// ,
	COMMA

	// =
	EQUAL
	// ==
	EQUAL_EQUAL

	// >
	GREATER
	// >=
	GREATER_EQ
	// <
	LESS
	// <=
	LESS_EQ

	// +
	PLUS
	// -
	MINUS
	// *
	STAR
	// /
	SLASH
)

var KEYWORDS map[string]Kind = map[string]Kind{
	"def":    DEF,
	"extern": EXTERN,
}

var PUNCTUATION map[byte]Kind = map[byte]Kind{
	'(': OPEN_PAREN,
	')': CLOSE_PAREN,
	'{': OPEN_CURLY,
	'}': CLOSE_CURLY,
	'[': OPEN_BRACKET,
	']': CLOSE_BRACKET,
	',': COMMA,
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
}

// Precedence returns the binding strength of kind when used as a binary
// operator, or -1 if kind is not one.
func (kind Kind) Precedence() int {
	switch kind {
	case LESS, GREATER:
		return 1
	case PLUS, MINUS:
		return 5
	case STAR, SLASH:
		return 10
	default:
		return -1
	}
}

func (kind Kind) String() string {
	switch kind {
	case EOF:
		return "end of input"
	case ID:
		return "identifier"
	case NUMBER:
		return "number"
	case STRING:
		return "string literal"
	case DEF:
		return "def"
	case EXTERN:
		return "extern"
	case OPEN_PAREN:
		return "("
	case CLOSE_PAREN:
		return ")"
	case OPEN_CURLY:
		return "{"
	case CLOSE_CURLY:
		return "}"
	case OPEN_BRACKET:
		return "["
	case CLOSE_BRACKET:
		return "]"
	case COMMA:
		return ","
	case EQUAL:
		return "="
	case EQUAL_EQUAL:
		return "=="
	case GREATER:
		return ">"
	case GREATER_EQ:
		return ">="
	case LESS:
		return "<"
	case LESS_EQ:
		return "<="
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	default:
		return fmt.Sprintf("Kind(%d)", int(kind))
	}
}
