package auth

import "errors"

var (
	// ErrMissingToken indicates no credentials were supplied at all.
	ErrMissingToken = errors.New("access token required")
	// ErrInvalidToken means a supplied token failed signature or expiry checks.
	ErrInvalidToken = errors.New("invalid or expired access token")
	// ErrUsernameRequired indicates a token was requested without a username.
	ErrUsernameRequired = errors.New("username is required")
)

// Claims carries the identity embedded in a verified token. Absence of
// credentials and presence of bad credentials are distinct states; handlers
// map ErrMissingToken to 401 and ErrInvalidToken to 403.
type Claims struct {
	Username string `json:"username"`
}
