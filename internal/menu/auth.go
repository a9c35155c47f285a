// internal/menu/auth.go
package menu

import (
	"fmt"
	"time"

	"github.com/solatis/menukeeper/internal/types"
)

/*
 * Authorization predicates.
 *
 * A predicate is a resolvable boolean gate with an optional cache TTL.
 * Nodes without a predicate are visible by default. Predicate errors are
 * propagated out of resolution, never treated as "not visible": the host
 * decides whether to fail the request or fall back.
 *
 * As with badges, caching lives in the resolver (injected store, keyed by
 * node identity plus actor discriminator), not here.
 */

// Predicate decides node visibility for a request context. The request
// may be nil; predicates that need it must check for its presence.
type Predicate func(*types.Request) (bool, error)

// Authorization is a resolvable visibility gate attached to a node.
type Authorization struct {
	predicate Predicate
	ttl       time.Duration
}

// NewAuthorization creates an authorization gate from a predicate.
func NewAuthorization(p Predicate) Authorization {
	return Authorization{predicate: p}
}

// TTL returns the cache duration, zero when the result is uncached.
func (a Authorization) TTL() time.Duration { return a.ttl }

// Evaluate resolves visibility for the given request context. A nil
// predicate is visible by default. Predicate errors are wrapped with
// ErrAuthEvaluation and propagate to the caller.
func (a Authorization) Evaluate(req *types.Request) (bool, error) {
	if a.predicate == nil {
		return true, nil
	}
	ok, err := a.predicate(req)
	if err != nil {
		return false, fmt.Errorf("%w: %w", types.ErrAuthEvaluation, err)
	}
	return ok, nil
}

// withTTL returns a copy with the cache duration set. Applied through the
// node-level CacheAuth builders.
func (a Authorization) withTTL(ttl time.Duration) Authorization {
	a.ttl = ttl
	return a
}

// AnyRole returns a predicate that passes when the request's actor holds
// at least one of the given roles. Anonymous and request-less resolution
// never pass. Used by declarative can_see definitions.
func AnyRole(roles ...string) Predicate {
	return func(req *types.Request) (bool, error) {
		for _, role := range roles {
			if req.HasRole(role) {
				return true, nil
			}
		}
		return false, nil
	}
}
