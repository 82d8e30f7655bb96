// Package auth holds the session token carried in the Authorization header.
package auth

import (
	"strings"

	"github.com/google/uuid"
)

const tokenPrefix = "TOKEN_"

// Token is an opaque session credential. It matches a user only by exact
// equality with the value stored at login.
type Token string

// Issue returns a fresh random token.
func Issue() Token {
	return Token(tokenPrefix + uuid.NewString())
}

// FromHeader extracts the token from an Authorization header of the form
// "<scheme> <token>". The scheme is not checked. ok is false when the header
// has no non-empty second field.
func FromHeader(header string) (Token, bool) {
	parts := strings.Split(header, " ")
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}
	return Token(parts[1]), true
}

func (t Token) String() string { return string(t) }
