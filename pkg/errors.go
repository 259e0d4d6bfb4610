package ylang

import (
	"fmt"
	"strings"
)

type LexerErrorKind int

const (
	UnexpectedCharacter LexerErrorKind = iota
	UnterminatedString
)

type LexerError struct {
	Kind LexerErrorKind
	Line int
	Char rune
}

func (e *LexerError) Error() string {
	switch e.Kind {
	case UnexpectedCharacter:
		return fmt.Sprintf("Unexpected character '%c' at line %d", e.Char, e.Line)
	case UnterminatedString:
		return fmt.Sprintf("Unterminated string at line %d", e.Line)
	default:
		return fmt.Sprintf("lexer error at line %d", e.Line)
	}
}

type ParserError struct {
	Message string
	Line    int
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
}

// ParseErrors is every error found by ParseAll, in source order.
type ParseErrors struct {
	Errors []*ParserError
}

func (e *ParseErrors) Error() string {
	var str strings.Builder
	for i, err := range e.Errors {
		if i != 0 {
			str.WriteString("\n")
		}

		str.WriteString(err.Error())
	}

	return str.String()
}

type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
}

func runtimeErrorf(line int, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	}
}

// CompileError is raised while lowering a program to LLVM IR.
type CompileError struct {
	Message string
	Line    int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
}
