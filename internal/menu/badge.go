// internal/menu/badge.go
package menu

import (
	"fmt"
	"time"

	"github.com/solatis/menukeeper/internal/types"
)

/*
 * Badge values.
 *
 * A badge is a resolvable display value (static or computed) with a style
 * tag, an optional cache TTL, and an optional guard predicate. Badges are
 * constructed at registration time, often holding an unevaluated callback,
 * and resolved lazily per resolution pass.
 *
 * Caching is not implemented here: the resolver injects the cache store
 * and memoizes Evaluate by node key and TTL. Keeping store access out of
 * node values lets tests substitute an in-memory fake and keeps the menu
 * package storage-free.
 *
 * Guard semantics: the guard is re-evaluated on every resolution. When the
 * badge carries a TTL the resolver memoizes the whole evaluation including
 * the guard, so a cached false-guard result is served as null until expiry
 * or explicit clear.
 */

// BadgeFunc computes a badge value for a request context. The request may
// be nil (resolution outside a request); callbacks must tolerate that.
type BadgeFunc func(*types.Request) (any, error)

// GuardFunc gates a conditional badge. Returning false yields a null
// badge regardless of the underlying value.
type GuardFunc func(*types.Request) (bool, error)

// Badge is a resolvable display value with a style tag.
type Badge struct {
	value any
	fn    BadgeFunc
	style types.BadgeType
	ttl   time.Duration
	guard GuardFunc
}

// NewBadge creates a badge holding a static scalar value.
func NewBadge(value any, style types.BadgeType) Badge {
	return Badge{value: value, style: style}
}

// NewBadgeFunc creates a badge holding an unevaluated callback.
func NewBadgeFunc(fn BadgeFunc, style types.BadgeType) Badge {
	return Badge{fn: fn, style: style}
}

// Style returns the badge's visual style tag.
func (b Badge) Style() types.BadgeType { return b.style }

// TTL returns the cache duration, zero when the badge is uncached.
func (b Badge) TTL() time.Duration { return b.ttl }

// Evaluate resolves the badge value for the given request context.
// Static values are returned unchanged; callbacks are invoked with the
// (possibly nil) request. A false guard yields nil. Callback and guard
// errors are wrapped with ErrBadgeEvaluation and propagate to the caller;
// they are never coerced to nil.
func (b Badge) Evaluate(req *types.Request) (any, error) {
	if b.guard != nil {
		ok, err := b.guard(req)
		if err != nil {
			return nil, fmt.Errorf("%w: guard: %w", types.ErrBadgeEvaluation, err)
		}
		if !ok {
			return nil, nil
		}
	}
	if b.fn != nil {
		v, err := b.fn(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrBadgeEvaluation, err)
		}
		return v, nil
	}
	return b.value, nil
}

// Validate checks the style tag against the closed badge type set.
func (b Badge) Validate() error {
	if !b.style.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownBadgeType, string(b.style))
	}
	return nil
}

// withTTL returns a copy with the cache duration set. Applied through the
// node-level CacheBadge builders.
func (b Badge) withTTL(ttl time.Duration) Badge {
	b.ttl = ttl
	return b
}

// withGuard returns a copy with the guard predicate set. Applied through
// the node-level WithBadgeIf builders.
func (b Badge) withGuard(guard GuardFunc) Badge {
	b.guard = guard
	return b
}
