package parser

import (
	"errors"
	"fmt"
)

// ErrParse обозначает любую ошибку разбора строки, проверяется через errors.Is.
var ErrParse = errors.New("malformed log line")

// ParseError описывает, почему строка не разобрана.
// Line: номер строки с 1, либо 0, если строка разбиралась отдельно.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, ErrParse, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrParse, e.Reason)
}

// Is позволяет сравнивать *ParseError с ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func fail(reason string) error {
	return &ParseError{Reason: reason}
}
