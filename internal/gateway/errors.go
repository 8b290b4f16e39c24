package gateway

import (
	"errors"
	"fmt"
)

// NetworkError reports a transport failure or a non-2xx response.
// Status is 0 when no response was received.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("gateway %s: request failed: %v", e.Op, e.Err)
	}
	if e.Err == nil {
		return fmt.Sprintf("gateway %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("gateway %s: status %d: %v", e.Op, e.Status, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError reports a response body that is not the expected JSON.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gateway %s: failed to decode response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Status
	}
	return 0
}

// outcome classifies err for the request counter.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		if ne.Status == 0 {
			return "transport_error"
		}
		return "http_error"
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return "decode_error"
	}
	return "error"
}
