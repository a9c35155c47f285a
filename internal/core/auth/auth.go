// Package auth provides HMAC admin key authentication and JWT actor
// extraction for the HTTP menu service.
package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// adminKeyLabelLocal is the fiber locals key carrying the authenticated
// admin key label for downstream handlers.
const adminKeyLabelLocal = "admin_key_label"

// Queries interface defines database operations needed for authentication.
// Implemented by *db.Queries to allow query loading via LoadQueries().
type Queries interface {
	Get(name string, dest interface{}, args ...interface{}) error
	Exec(name string, args ...interface{}) (sql.Result, error)
}

// Authenticator validates admin keys using HMAC-SHA256 signatures.
// Holds in-memory secret map for O(1) lookup and queries for key verification.
type Authenticator struct {
	secrets map[string][]byte
	queries Queries
}

// NewAuthenticator creates an authenticator with HMAC secrets and query interface.
func NewAuthenticator(secrets map[string][]byte, queries Queries) *Authenticator {
	return &Authenticator{
		secrets: secrets,
		queries: queries,
	}
}

// Authenticate validates an admin key and returns its label on success.
// Returns specific error for each failure mode (5-tier taxonomy).
func (a *Authenticator) Authenticate(adminKey string) (string, error) {
	secretID, _, err := ParseAdminKey(adminKey)
	if err != nil {
		return "", err
	}

	// O(1) lookup of HMAC secret using secret_id from key format
	secret, ok := a.secrets[secretID]
	if !ok {
		return "", ErrUnknownKey
	}

	computedHash := ComputeHMAC(secret, adminKey)

	// Query by key_hash; unique constraint ensures single result
	var result struct {
		AdminKeyID string       `db:"admin_key_id"`
		Label      string       `db:"label"`
		RevokedAt  sql.NullTime `db:"revoked_at"`
		LastUsedAt sql.NullTime `db:"last_used_at"`
	}

	err = a.queries.Get("get-admin-key-by-hash", &result, computedHash)
	if err == sql.ErrNoRows {
		return "", ErrInvalidKey
	}
	if err != nil {
		return "", fmt.Errorf("database error: %w", err)
	}

	if result.RevokedAt.Valid {
		return "", ErrKeyRevoked
	}

	// 1-minute throttle on last_used_at keeps write amplification down
	// for dashboards that poll the admin endpoints
	if shouldUpdateLastUsed(result.LastUsedAt) {
		_, _ = a.queries.Exec("update-admin-key-last-used", time.Now().UTC(), result.AdminKeyID)
	}

	return result.Label, nil
}

// shouldUpdateLastUsed implements 1-minute throttle to reduce write amplification.
func shouldUpdateLastUsed(lastUsed sql.NullTime) bool {
	if !lastUsed.Valid {
		return true
	}
	return time.Since(lastUsed.Time) > time.Minute
}

// Middleware returns a fiber handler that authenticates admin requests
// via the X-Admin-Key header. Revoked keys get 403, database failures
// 503, everything else 401.
func (a *Authenticator) Middleware(log *logrus.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		adminKey := c.Get("X-Admin-Key")
		if adminKey == "" {
			return fiber.NewError(fiber.StatusUnauthorized, ErrMissingKey.Error())
		}

		label, err := a.Authenticate(adminKey)
		if err != nil {
			if errors.Is(err, ErrKeyRevoked) {
				return fiber.NewError(fiber.StatusForbidden, err.Error())
			}
			if !errors.Is(err, ErrInvalidKeyFormat) && !errors.Is(err, ErrUnknownKey) && !errors.Is(err, ErrInvalidKey) {
				log.WithError(err).Error("admin key verification failed")
				return fiber.NewError(fiber.StatusServiceUnavailable, "authentication unavailable")
			}
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		c.Locals(adminKeyLabelLocal, label)
		return c.Next()
	}
}

// AdminKeyLabel returns the authenticated admin key label stored by
// Middleware, "" when the request did not pass it.
func AdminKeyLabel(c fiber.Ctx) string {
	if label, ok := c.Locals(adminKeyLabelLocal).(string); ok {
		return label
	}
	return ""
}
