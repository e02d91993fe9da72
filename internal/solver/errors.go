// internal/solver/errors.go
package solver

import (
	"errors"

	"github.com/joedrago/clue/internal/registry"
)

// Every error here is fatal to the game being processed. Callers check them with errors.Is.
var (
	ErrDuplicateName       = registry.ErrDuplicateName
	ErrUnknownName         = registry.ErrNotFound
	ErrPlayerLimitExceeded = registry.ErrLimitExceeded

	ErrUnknownAxis        = errors.New("unknown axis")
	ErrMissingAxis        = errors.New("suggestion is missing an axis")
	ErrDuplicateAxis      = errors.New("suggestion repeats an axis")
	ErrOwnershipConflict  = errors.New("ownership conflict")
	ErrLogicContradiction = errors.New("logic contradiction")
	ErrPseudoPlayer       = errors.New("the answer cannot take part in a suggestion")
)
