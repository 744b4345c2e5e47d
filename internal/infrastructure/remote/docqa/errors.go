package docqa

import (
	"encoding/json"
	"fmt"
	"strings"
)

type HTTPStatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "docqa status error"
	}
	detail := remoteMessage([]byte(e.Body))
	if detail == "" {
		detail = strings.TrimSpace(e.Body)
	}
	if detail == "" {
		return fmt.Sprintf("docqa %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("docqa %s status: %s: %s", e.Operation, e.Status, detail)
}

// RemoteError is a 2xx body that reports a failure instead of a result.
type RemoteError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("docqa %s remote error: %s: %v", e.Operation, e.Message, e.Cause)
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// remoteMessage extracts a FastAPI "detail" or an "error" field from a body.
func remoteMessage(raw []byte) string {
	var body struct {
		Detail any    `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	switch detail := body.Detail.(type) {
	case string:
		return detail
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(detail)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
