package rules

import "fmt"

// SyntaxError reports a malformed rule string. Pos is a byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at offset %d: %s", e.Pos, e.Msg)
}
