package httpclient

import (
	"fmt"

	ierr "github.com/zurichjs/rewards/internal/errors"
)

// Error represents a non-2xx HTTP response
type Error struct {
	StatusCode int
	Body       []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, string(e.Body))
}

// NewError wraps a non-2xx response as an ErrHTTPClient. The raw body is
// kept on the error for server-side logging but never surfaced as a hint.
func NewError(statusCode int, body []byte) error {
	return ierr.WithError(&Error{StatusCode: statusCode, Body: body}).
		WithHint("Upstream service returned an error").
		Mark(ierr.ErrHTTPClient)
}
