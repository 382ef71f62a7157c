package errors

type CredentialError struct {
	message string
}

func NewCredentialError(msg string) *CredentialError {
	return &CredentialError{
		message: msg,
	}
}

func (ce *CredentialError) Error() string {
	return ce.message
}

func (ce *CredentialError) Authenticated() {}
