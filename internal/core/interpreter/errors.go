package interpreter

import "fmt"

// ParseError reports text that could not be mapped onto a command or one of its parameters.
type ParseError struct {
	Msg string
}

func NewParseError(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ParseError) Error() string {
	return e.Msg
}

// ValidationError reports a model whose parameters all parsed but whose combination was rejected by
// the command.
type ValidationError struct {
	Msg string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Msg
}
