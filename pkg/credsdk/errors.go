package credsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is any non-success response from the service.
type APIError struct {
	StatusCode int
	Message    string

	// Where is only set on 5xx responses.
	Where string
}

func (e *APIError) Error() string {
	if e.Where != "" {
		return fmt.Sprintf("credentials: %d %s (%s)", e.StatusCode, e.Message, e.Where)
	}
	return fmt.Sprintf("credentials: %d %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether the server rejected the credentials or token.
func (e *APIError) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// parseErrorResponse builds an APIError from a response body, falling back to
// the status text when the body is not one of ours.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload InternalErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
		apiErr.Where = payload.Where
		return apiErr
	}

	apiErr.Message = http.StatusText(resp.StatusCode)
	return apiErr
}
