package predict

import (
	"errors"
	"fmt"
)

// ErrMissingBaseURL indicates the client was built without a backend URL.
var ErrMissingBaseURL = errors.New("backend URL is required")

// ServerError is returned when the backend answers with a non-2xx status.
type ServerError struct {
	Body       string
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d - %s", e.StatusCode, e.Body)
}

// TransportError wraps failures to reach the backend or to read its
// response, including bodies that are not valid JSON. Its message is the
// underlying failure's message.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsServerError reports whether err carries a backend status failure.
func IsServerError(err error) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr)
}

// IsTransportError reports whether err is a connectivity or decoding failure.
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
