package indicator

import (
	"errors"
	"fmt"
)

// ErrInvalidParam is wrapped by errors about out-of-range indicator parameters
var ErrInvalidParam = errors.New("invalid indicator parameter")

// ErrUndefined is wrapped when an indicator has no defined value for the window
var ErrUndefined = errors.New("indicator value is undefined")

// InsufficientDataError is returned when a series is too short for the requested window and offset
type InsufficientDataError struct {
	Indicator string
	Need      int
	Have      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: need %d bars, have %d", e.Indicator, e.Need, e.Have)
}

// UnknownIndicatorError is returned when a name does not resolve to an indicator kind
type UnknownIndicatorError struct {
	Name string
}

func (e *UnknownIndicatorError) Error() string {
	return fmt.Sprintf("unknown indicator %q", e.Name)
}

// ValueParseError is returned for malformed literal or parameter tokens
type ValueParseError struct {
	Text   string
	Reason string
}

func (e *ValueParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot parse value %q", e.Text)
	}
	return fmt.Sprintf("cannot parse value %q: %s", e.Text, e.Reason)
}
