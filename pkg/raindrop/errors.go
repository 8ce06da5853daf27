package raindrop

import "fmt"

// RemoteFetchError reports a non-success HTTP status from the bookmark
// service, carrying the status code as the distinguishing value.
type RemoteFetchError struct {
	Status  int
	Snippet string
}

func (e *RemoteFetchError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("raindrop returned status %d", e.Status)
	}
	return fmt.Sprintf("raindrop returned status %d body: %s", e.Status, e.Snippet)
}

// ParseError reports a response body that violates the service contract:
// undecodable JSON or a missing items field.
type ParseError struct {
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("decode raindrop response: %s", e.Reason)
	}
	return fmt.Sprintf("decode raindrop response: %s: %v", e.Reason, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }
