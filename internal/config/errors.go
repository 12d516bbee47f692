package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrNoTokenSignKey indicates that no JWT signing secret was supplied.
	// Without it no session token can be issued or verified, so startup
	// is aborted.
	ErrNoTokenSignKey = errors.New("no token sign key configured")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a non-positive token duration or an out-of-range
	// bcrypt cost).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings
	// (for example, a missing listen address or zero request timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates invalid hashing worker settings
	// (for example, zero workers or an empty queue).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
