package mei

import "fmt"

// ParseError reports a file that could not be read or parsed as XML.
type ParseError struct {
	Path string
	Line int // 1-based line of the syntax error, 0 when unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
