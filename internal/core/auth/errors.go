package auth

import "errors"

// Authentication error types enable 5-tier error taxonomy.
// 401 for missing/invalid (doesn't confirm key existence).
// 403 for revoked (confirms key exists but blocked).
var (
	ErrMissingKey       = errors.New("admin key required in X-Admin-Key header")
	ErrInvalidKeyFormat = errors.New("invalid admin key format")
	ErrUnknownKey       = errors.New("unknown secret ID")
	ErrInvalidKey       = errors.New("invalid admin key")
	ErrKeyRevoked       = errors.New("admin key has been revoked")
)
