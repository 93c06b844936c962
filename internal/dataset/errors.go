package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned when loading a dataset.
var (
	// ErrEmptyData indicates the feed body was empty.
	ErrEmptyData = errors.New("empty dataset")

	// ErrBadShape indicates the feed is missing required top-level keys.
	ErrBadShape = errors.New("dataset has unexpected shape")
)

// ShapeError reports which required top-level keys were missing from the
// feed. It is fatal to initialization and unwraps to ErrBadShape.
type ShapeError struct {
	Missing []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("dataset missing required keys: %s", strings.Join(e.Missing, ", "))
}

// Unwrap allows errors.Is(err, ErrBadShape).
func (e *ShapeError) Unwrap() error {
	return ErrBadShape
}
