// Package errors turns HTTP error responses into Go errors.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 4 << 10

// HTTPError is a non-2xx response from a redo endpoint.
type HTTPError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Code != "" {
		return fmt.Sprintf("http %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// errorBody matches the JSON error envelope written by the server's
// recovery and not-found handlers.
type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseHTTPError returns nil for a 2xx response. Otherwise it reads the body
// and extracts the error envelope, falling back to the raw text.
func ParseHTTPError(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	httpErr := &HTTPError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		httpErr.Message = fmt.Sprintf("read body: %v", err)
		return httpErr
	}

	var body errorBody
	if json.Unmarshal(raw, &body) == nil && (body.Error != "" || body.Message != "") {
		httpErr.Code = body.Code
		httpErr.Message = body.Error
		if httpErr.Message == "" {
			httpErr.Message = body.Message
		}
		return httpErr
	}

	httpErr.Message = strings.TrimSpace(string(raw))
	return httpErr
}

// StatusCode extracts the status of an HTTPError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}
