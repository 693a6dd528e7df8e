package hashmap

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every error returned when constructing a map with invalid options
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConcurrentModification is the value iterators panic with if the map was structurally modified while
	// iterating
	ErrConcurrentModification = errors.New("map was modified during iteration")
)

// ArgumentError represents a rejected construction argument
type ArgumentError struct {
	Name   string
	Value  any
	Reason string
}

func (err *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s %v: %s", ErrInvalidArgument, err.Name, err.Value, err.Reason)
}

func (err *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
