package credential

import (
	"encoding/base64"
	"strings"

	internal_errors "github.com/bricks-cloud/partyrock/internal/errors"
)

const (
	separator    = "|||"
	bearerPrefix = "Bearer "
)

// Credential holds the PartyRock session secrets decoded from a caller's token.
type Credential struct {
	AppId         string
	SessionCookie string
	CsrfToken     string
}

// Decode turns a base64 encoded "appId|||csrfToken|||cookie" string into a Credential.
// Note that the plaintext order differs from the field order of Credential.
func Decode(token string) (*Credential, error) {
	decoded, err := decodeBase64(strings.TrimSpace(token))
	if err != nil {
		return nil, internal_errors.NewCredentialError("credential is not valid base64")
	}

	parts := strings.Split(decoded, separator)
	if len(parts) != 3 {
		return nil, internal_errors.NewCredentialError("credential must have exactly three parts")
	}

	for _, part := range parts {
		if len(part) == 0 {
			return nil, internal_errors.NewCredentialError("credential has an empty part")
		}
	}

	return &Credential{
		AppId:         parts[0],
		SessionCookie: parts[2],
		CsrfToken:     parts[1],
	}, nil
}

// FromAuthorizationHeader decodes the value of an Authorization header. The
// "Bearer " prefix is optional.
func FromAuthorizationHeader(header string) (*Credential, error) {
	return Decode(strings.TrimPrefix(strings.TrimSpace(header), bearerPrefix))
}

func decodeBase64(s string) (string, error) {
	bs, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return string(bs), nil
	}

	bs, rawErr := base64.RawStdEncoding.DecodeString(s)
	if rawErr != nil {
		return "", err
	}

	return string(bs), nil
}
