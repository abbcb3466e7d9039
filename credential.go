package spacetraders

import (
	"github.com/cockroachdb/errors"
)

// ErrInvalidCredential is returned when a client is constructed without a
// usable account token.
var ErrInvalidCredential = errors.New("invalid credential: empty token")

// Credential holds the account bearer token used to authenticate every
// request. It is immutable after construction and its token is never
// included in log fields or error messages.
type Credential struct {
	token string
}

// NewCredential validates and wraps an account token.
func NewCredential(token string) (Credential, error) {
	if token == "" {
		return Credential{}, ErrInvalidCredential
	}
	return Credential{token: token}, nil
}

// AuthHeader returns the header name and value carrying the credential.
func (c Credential) AuthHeader() (name, value string) {
	return "Authorization", "Bearer " + c.token
}

// String implements fmt.Stringer and redacts the token.
func (c Credential) String() string {
	return "Credential(redacted)"
}
