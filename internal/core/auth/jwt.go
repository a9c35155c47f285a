package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/solatis/menukeeper/internal/types"
)

// actorLocal is the fiber locals key carrying the extracted actor.
const actorLocal = "actor"

// ErrInvalidToken covers malformed, mis-signed and expired actor tokens.
var ErrInvalidToken = errors.New("invalid actor token")

// ActorFromToken verifies an HS256 actor token and maps its claims onto
// an actor: sub becomes the ID, email and roles pass through.
func ActorFromToken(raw string, secret []byte) (*types.Actor, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}

	actor := &types.Actor{ID: sub}
	if email, ok := claims["email"].(string); ok {
		actor.Email = email
	}
	if rolesClaim, ok := claims["roles"].([]any); ok {
		for _, r := range rolesClaim {
			if role, ok := r.(string); ok {
				actor.Roles = append(actor.Roles, role)
			}
		}
	}
	return actor, nil
}

// ActorMiddleware returns a fiber handler extracting the actor from a
// Bearer token. Absent tokens resolve anonymously; present-but-invalid
// tokens are rejected so a caller never silently loses its identity.
// A nil secret disables extraction entirely.
func ActorMiddleware(secret []byte) fiber.Handler {
	return func(c fiber.Ctx) error {
		if secret == nil {
			return c.Next()
		}

		header := c.Get("Authorization")
		if header == "" {
			return c.Next()
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, ErrInvalidToken.Error())
		}

		actor, err := ActorFromToken(parts[1], secret)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, ErrInvalidToken.Error())
		}

		c.Locals(actorLocal, actor)
		return c.Next()
	}
}

// ActorFromContext returns the actor stored by ActorMiddleware, nil for
// anonymous requests.
func ActorFromContext(c fiber.Ctx) *types.Actor {
	if actor, ok := c.Locals(actorLocal).(*types.Actor); ok {
		return actor
	}
	return nil
}
