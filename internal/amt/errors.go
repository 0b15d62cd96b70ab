package amt

import (
	"errors"
	"fmt"
)

var (
	// ErrLookup means a requested value has no protocol encoding, or a
	// decoded code names a known state that is not valid for the field.
	ErrLookup = errors.New("lookup error")
	// ErrUnknownState means a decoded code is not known at all.
	ErrUnknownState = errors.New("unknown state")
	// ErrValidation means an input is outside the accepted range or universe.
	ErrValidation = errors.New("validation error")
	// ErrPrecondition means the current device state forbids the change. It
	// is a kind of ErrValidation.
	ErrPrecondition = fmt.Errorf("%w: precondition failed", ErrValidation)
	// ErrUnexpectedService means a service instance did not identify itself
	// with the expected name.
	ErrUnexpectedService = errors.New("unexpected service")
)
