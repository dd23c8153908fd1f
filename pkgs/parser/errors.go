package parser

import (
	"fmt"
	"strings"
)

// ParseError represents an error that occurred while parsing an
// expression string.
type ParseError struct {
	Column  int    // byte offset of the offending token
	Message string // the error message
	Input   string // the expression being parsed, for context
}

// Error formats the parse error with a visual indicator pointing at the
// offending position.
func (e *ParseError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("parse error: %s", e.Message)
	}

	pointer := strings.Repeat(" ", e.Column) + "^"

	return fmt.Sprintf("parse error at column %d: %s\n%s\n%s",
		e.Column,
		e.Message,
		e.Input,
		pointer)
}

// NewParseError creates a ParseError at the given column of input.
func NewParseError(input string, column int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Column:  column,
		Input:   input,
		Message: fmt.Sprintf(format, args...),
	}
}
