package interfaces

import (
	"context"
	"io"
)

// HTTPClient performs outbound GET requests against the upstream catalog.
type HTTPClient interface {
	// Get performs an HTTP GET request. Cancellation of ctx aborts the call.
	Get(ctx context.Context, url string) (Response, error)
}

// Response is the part of an HTTP response the catalog client reads.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body. The caller closes it.
	Body() io.ReadCloser

	// Header returns the value of the specified header, or "".
	Header(key string) string
}
