// internal/script/errors.go
package script

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDirective = errors.New("unknown action")
	ErrMissingArgument  = errors.New("missing argument")
	ErrIncludeDisabled  = errors.New("include is not allowed here")
	ErrIncludeDepth     = errors.New("includes nested too deeply")
)

// Error pins a failure to the script line that caused it.
type Error struct {
	File string
	Line int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
