package resolve

import (
	"errors"
	"fmt"

	"github.com/spencer-p/goldenhour/pkg/fetch"
)

// ErrNoMatches is returned by Find when nothing matched the input.
var ErrNoMatches = errors.New("no matches found")

// ServiceError is a failure of the geocoding service itself.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("geocoding failed: %v", e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Status is the HTTP status the service answered with, or 0 when it did not
// answer.
func (e *ServiceError) Status() int {
	var se *fetch.StatusError
	if errors.As(e.Err, &se) {
		return se.Code
	}
	return 0
}
