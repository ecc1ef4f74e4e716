package classifier

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrNotTrained = errors.New("classifier has no trained model")

// ModelError wraps any failure coming out of the underlying model or its
// persistence.
type ModelError struct {
	Op  string
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s: %s", e.Op, e.Err)
}

func (e *ModelError) Cause() error {
	return e.Err
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

func modelError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ModelError{Op: op, Err: err}
}
