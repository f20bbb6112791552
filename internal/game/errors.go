package game

import (
	"errors"
	"fmt"
)

var (
	ErrUnsolvableLayout = errors.New("unsolvable layout")
	ErrInvalidCopies    = errors.New("copies per variant must be even and at least 2")
	ErrUnpairedFaces    = errors.New("remaining faces cannot be paired")
	ErrSnapshotMismatch = errors.New("saved tiles do not match layout")
)

// UnsolvableLayoutError is returned once every construction attempt dead-ended.
// It points at a broken layout definition rather than bad luck.
type UnsolvableLayoutError struct {
	Attempts int
	Tiles    int
}

func (e *UnsolvableLayoutError) Error() string {
	return fmt.Sprintf("no removal order for %d tiles after %d attempts", e.Tiles, e.Attempts)
}

func (e *UnsolvableLayoutError) Is(target error) bool {
	return target == ErrUnsolvableLayout
}
