package request

import (
	"fmt"
	"net/http"
)

// TransportError is the only failure kind the tracker reports: the backend
// was unreachable, answered a non-2xx status, or sent a body that is not JSON.
type TransportError struct {
	Method string
	URL    string
	Status int // 0 when no response was received
	Reason string
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status != 0 && e.Reason != "":
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.Status, http.StatusText(e.Status), e.Reason)
	case e.Status != 0:
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Reason)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }
