package lox

import "fmt"

// ScanError is produced by the scanner for input it can not turn into a
// token. The scanner has no token to point at, only a line.
type ScanError struct {
	line    int
	message string
}

func newScanError(line int, message string) error {
	return &ScanError{line, message}
}

func (err *ScanError) Error() string {
	return fmt.Sprintf(
		"[line %d] Error: %s",
		err.line,
		err.message,
	)
}

// ParseError points at the token where the parser lost track of the grammar.
type ParseError struct {
	token   *Token
	message string
}

func NewParseError(token *Token, message string) error {
	return &ParseError{token, message}
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("[line %d] Error %s: %s",
		err.token.Line,
		describeToken(err.token),
		err.message,
	)
}

// ResolveError is produced by the static resolution pass for scoping rules
// that can be checked before the program runs.
type ResolveError struct {
	token   *Token
	message string
}

func newResolveError(token *Token, message string) error {
	return &ResolveError{token, message}
}

func (err *ResolveError) Error() string {
	return fmt.Sprintf("[line %d] Error %s: %s",
		err.token.Line,
		describeToken(err.token),
		err.message,
	)
}

// RuntimeError carries the token whose evaluation failed so the report can
// name the offending line.
type RuntimeError struct {
	token   *Token
	message string
}

func NewRuntimeError(token *Token, message string) error {
	return &RuntimeError{token, message}
}

func (err *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", err.message, err.token.Line)
}

func describeToken(token *Token) string {
	if token.Typ == EOF {
		return "at end"
	}
	return fmt.Sprintf("at '%s'", token.Lexeme)
}
