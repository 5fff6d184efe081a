package cidr

import (
	"errors"
	"fmt"
)

// ParseError is returned whenever an address or a mask can't be made sense
// of, or when their families disagree.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("couldn't parse %q: %s", e.Input, e.Reason)
}

// RangeError is returned when a prefix length exceeds the family's width.
type RangeError struct {
	Bits int
	Max  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("prefix length %d out of range [0, %d]", e.Bits, e.Max)
}

func parseErr(input, format string, a ...any) error {
	return &ParseError{Input: input, Reason: fmt.Sprintf(format, a...)}
}

// maskErr reports a bad mask against the whole input it came with.
func maskErr(text, mask string, err error) error {
	var pErr *ParseError
	if !errors.As(err, &pErr) {
		return err
	}
	return parseErr(text, "mask %q: %s", mask, pErr.Reason)
}
