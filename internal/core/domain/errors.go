package domain

import "errors"

var (
	// ErrInvalidCredentials signals a failed credential check on login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated signals a request without a valid session.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden signals a valid session whose role does not permit the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrBadRequest signals malformed or missing client input.
	ErrBadRequest = errors.New("bad request")
	// ErrMissingTarget signals a header-directed proxy request without a target URL.
	ErrMissingTarget = errors.New("missing target url")
	// ErrTargetNotAllowed signals a proxy target outside the configured host allow-list.
	ErrTargetNotAllowed = errors.New("target host not allowed")
	// ErrUpstreamUnavailable signals a proxy target that could not be reached
	// or did not answer within the forwarding timeout. Distinct from an
	// upstream that answered with an error status — those pass through.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
