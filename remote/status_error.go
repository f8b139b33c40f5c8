package remote

import (
	"fmt"
	"net/http"
)

// StatusError is returned by transports when the service answered with a
// non-success HTTP status. Message is the server-provided text, if any, and is
// shown to the user as-is.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("remote: %d %s", e.Status, http.StatusText(e.Status))
}

func (e *StatusError) HTTPStatus() int { return e.Status }

func (e *StatusError) PublicMessage() string { return e.Message }
