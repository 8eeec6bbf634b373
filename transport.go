package tldr

import (
	"context"
	"encoding/json"
)

// Transport performs HTTP GET requests against the remote repository.
type Transport interface {
	// Get requests url and returns the full response.
	// Non-200 statuses are not errors; only transport failures are.
	Get(ctx context.Context, url string) (*Response, error)
}

// Response is the result of a Transport request.
type Response struct {
	StatusCode int
	Header     map[string]string // keys are lower case
	Body       []byte
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}
