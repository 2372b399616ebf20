package token

import "fmt"

// Pos is a 1-based line and column in a named source.
type Pos struct {
	Filename string
	Line     int
	Column   int
}

// LineStart is the first column of line.
func LineStart(filename string, line int) Pos {
	return Pos{Filename: filename, Line: line, Column: 1}
}

// Advance returns the position after ch. A newline starts the next line.
func (pos Pos) Advance(ch byte) Pos {
	if ch == '\n' {
		return LineStart(pos.Filename, pos.Line+1)
	}
	pos.Column++
	return pos
}

func (pos Pos) String() string {
	if pos.Filename == "" {
		return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Column)
}
