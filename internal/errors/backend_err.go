package errors

import "fmt"

// BackendError carries a non-2xx PartyRock response so its status and body can be
// relayed to the caller unchanged.
type BackendError struct {
	status int
	body   string
}

func NewBackendError(status int, body string) *BackendError {
	return &BackendError{
		status: status,
		body:   body,
	}
}

func (be *BackendError) Error() string {
	return fmt.Sprintf("partyrock responded with status %d: %s", be.status, be.body)
}

func (be *BackendError) StatusCode() int {
	return be.status
}

func (be *BackendError) Body() string {
	return be.body
}

func (be *BackendError) Backend() {}
