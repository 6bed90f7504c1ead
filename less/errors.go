package less

import (
	"errors"
	"fmt"
)

var (
	ErrOpenBraceWithoutSelector = errors.New("open brace without preceding selector")
	ErrOrphanValue              = errors.New("style property value without preceding property name")
	ErrInconsistentValue        = errors.New("style property value segments belong to different properties")
	ErrTrailingContent          = errors.New("unparsable content after the end of top level scope")
	ErrNestingTooDeep           = errors.New("rules nested too deep")
	ErrUnknownCategory          = errors.New("unknown run category")
)

// ParseError reports structural problem with the source. Line is 1-based.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if errors.Is(e.Err, ErrTrailingContent) {
		return fmt.Sprintf("%v (after line %d)", e.Err, e.Line)
	}
	return fmt.Sprintf("%v (line %d)", e.Err, e.Line)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
