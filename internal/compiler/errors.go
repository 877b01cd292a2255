package compiler

import "fmt"

// SyntaxError reports malformed source text.
type SyntaxError struct {
	Line    int
	Column  int
	Msg     string
	Snippet string
}

func (e *SyntaxError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("line %d:%d: %s\n  |> %s", e.Line, e.Column, e.Msg, e.Snippet)
}
