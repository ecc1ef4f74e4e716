package controllers

import "github.com/pkg/errors"

var ErrUnknownSession = errors.New("unknown session")

// InputError reports a request parameter that could not be used.
type InputError struct {
	Param string
	Err   error
}

func (e *InputError) Error() string {
	return "invalid " + e.Param + ": " + e.Err.Error()
}

// Unwrap serves errors.Is/As. InputError has no Cause method, so errors.Cause
// stops here.
func (e *InputError) Unwrap() error {
	return e.Err
}
