package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when an analysis is given nothing to analyse.
	ErrEmptyInput = errors.New("empty input")
)

// ErrDuplicateID reports an identifier that appears more than once in the
// input of an analysis.
type ErrDuplicateID struct {
	ID string
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf("duplicate identifier %q", e.ID)
}

// checkUnique returns an *ErrDuplicateID for the first repeated id.
func checkUnique(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return &ErrDuplicateID{ID: id}
		}
		seen[id] = struct{}{}
	}
	return nil
}
