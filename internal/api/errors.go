package api

import "fmt"

// StatusError is a non-2xx response. Body is the raw response text.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	const max = 200
	body := e.Body
	if len(body) > max {
		body = body[:max] + "..."
	}
	if body == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, body)
}
