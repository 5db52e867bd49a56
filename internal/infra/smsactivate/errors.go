package smsactivate

import "fmt"

// UpstreamError is returned for any failed call to the price API:
// transport failures, timeouts, non-2xx statuses and undecodable bodies.
type UpstreamError struct {
	Action     string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("smsactivate %s: status %d: %v", e.Action, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("smsactivate %s: %v", e.Action, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
