package types

import (
	"strings"

	"github.com/google/uuid"
)

// NewRequestID generates a UUIDv7 request correlation identifier.
// Time-ordered IDs keep request logs sortable without a clock column.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewRequestID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewSecretID generates a UUIDv7 admin-key secret identifier as 32 hex
// chars (UUID without hyphens), matching the admin key wire format.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewSecretID() string {
	return strings.ReplaceAll(uuid.Must(uuid.NewV7()).String(), "-", "")
}

// ParseRequestID validates and normalizes a request identifier.
// Rejects malformed UUIDs to prevent invalid IDs from entering logs.
func ParseRequestID(s string) (string, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
