package model

import (
	"errors"
	"fmt"
)

var (
	ErrAxisEmpty = errors.New("scenario axis must have at least one level")
	ErrAxisOrder = errors.New("scenario axis levels must be strictly ascending")
	ErrGridShape = errors.New("scenario grid must be rectangular")
)

// NotFoundError reports a lookup key with no matching row or level.
type NotFoundError struct {
	Kind  string // "assumption", "price level", "area level"
	Label string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Label)
}

// ConversionError reports an assumption value that could not be read as a number.
type ConversionError struct {
	Label  string
	Period int // 0-based; -1 when the whole row is malformed
	Value  string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Period < 0 {
		return fmt.Sprintf("assumption %q: %v", e.Label, e.Err)
	}
	return fmt.Sprintf("assumption %q %s: cannot convert %q to number: %v",
		e.Label, PeriodLabels[e.Period], e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
