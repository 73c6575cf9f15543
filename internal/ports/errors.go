package ports

import "errors"

var (
	// ErrStateNotFound is returned by StateStore.Get for unknown visitors.
	ErrStateNotFound = errors.New("view state not found")
	// ErrJobNotFound is returned by JobCatalog.Get for unknown ids.
	ErrJobNotFound = errors.New("job not found")
	// ErrInvalidCredentials is wrapped by IdentityProvider.Lookup when the
	// login input is unusable. Callers show it back to the visitor.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
