package market

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownProfession = errors.New("no known profession")
	ErrNotPositive       = errors.New("must be a positive integer")
	ErrMissingCell       = errors.New("missing cell")
	ErrEmptyValue        = errors.New("empty value")
)

// ParseError is returned when a listing or highscores row does not have
// the expected layout or a cell cannot be converted.
type ParseError struct {
	// ex. "auction" or "highscores/magic"
	Source string
	// -1 if the error is not tied to a row
	Row   int
	Field string
	Value string
	// closest known value, if any
	Hint string
	Err  error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse")
	if e.Source != "" {
		b.WriteString(" ")
		b.WriteString(e.Source)
	}
	if e.Row >= 0 {
		fmt.Fprintf(&b, " row %d", e.Row)
	}
	fmt.Fprintf(&b, ": %s %q: %v", e.Field, e.Value, e.Err)
	if e.Hint != "" {
		fmt.Fprintf(&b, " (did you mean %s?)", e.Hint)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AtRow sets the location of the error if err is a ParseError, err is
// returned unchanged.
func AtRow(err error, source string, row int) error {
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.Source = source
		perr.Row = row
	}
	return err
}

// NavigationError is returned when a page cannot be loaded or does not
// contain the expected table.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigate %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}
