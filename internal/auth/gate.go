package auth

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Authorize is the admission check run before any gated effect. The presence
// check always runs first: an anonymous session is ErrUnauthenticated no
// matter what role the route wants, and the role field is never read on a
// nil identity. requiredRole == "" means "must be logged in".
func Authorize(identity *Identity, requiredRole string) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	if requiredRole != "" && identity.Role != requiredRole {
		return ErrForbidden
	}
	return nil
}
