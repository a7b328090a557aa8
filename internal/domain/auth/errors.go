package auth

import "errors"

var (
	// ErrUnauthorized - no verifiable identity on the request.
	ErrUnauthorized = errors.New("missing or invalid credentials")

	// ErrCompanyForbidden - authenticated, but the token's company does not
	// match the resource being accessed.
	ErrCompanyForbidden = errors.New("company access forbidden")
)
