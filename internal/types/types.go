// Package types provides domain models shared across MenuKeeper components.
//
// Zero-dependency design: types.go and errors.go use only the standard
// library so the menu engine can be embedded without pulling in transport
// or storage dependencies. ID utilities in ids.go import uuid but are
// isolated for selective inclusion.
package types

import "net/url"

// BadgeType is the visual style tag attached to a badge value.
// String alias keeps the serialized contract human-readable ("warning",
// not an enum ordinal) and stable across releases.
type BadgeType string

// Badge style tags. The set is closed; unknown values fail validation
// rather than falling back to a default style.
const (
	BadgePrimary   BadgeType = "primary"
	BadgeSecondary BadgeType = "secondary"
	BadgeSuccess   BadgeType = "success"
	BadgeWarning   BadgeType = "warning"
	BadgeDanger    BadgeType = "danger"
	BadgeInfo      BadgeType = "info"
)

// Valid reports whether bt is one of the closed badge style set.
func (bt BadgeType) Valid() bool {
	switch bt {
	case BadgePrimary, BadgeSecondary, BadgeSuccess, BadgeWarning, BadgeDanger, BadgeInfo:
		return true
	default:
		return false
	}
}

// Actor is the authenticated identity a menu is resolved for.
// Roles drive the declarative can_see predicates; anything richer lives
// in the host's own authorization callbacks.
type Actor struct {
	ID    string
	Email string
	Roles []string
}

// HasRole reports whether the actor carries the given role.
func (a *Actor) HasRole(role string) bool {
	if a == nil {
		return false
	}
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Request is the per-resolution environment passed into authorization
// predicates and badge callbacks. A nil *Request is legal everywhere:
// menus may be resolved outside a request (warm-up, CLI inspection),
// so predicates and callbacks must tolerate its absence.
type Request struct {
	// Actor is the authenticated identity, nil for anonymous requests.
	Actor *Actor

	// Params carries the request query parameters.
	Params url.Values

	// RequestID is a UUIDv7 correlation ID assigned by the transport.
	RequestID string
}

// ActorID returns the actor identifier, or "" for anonymous or
// request-less resolution. Used as the per-actor cache discriminator.
func (r *Request) ActorID() string {
	if r == nil || r.Actor == nil {
		return ""
	}
	return r.Actor.ID
}

// HasRole reports whether the request's actor carries the given role.
// Nil-safe: anonymous and request-less resolution never hold roles.
func (r *Request) HasRole(role string) bool {
	if r == nil {
		return false
	}
	return r.Actor.HasRole(role)
}

// Resource limits enforced by the menu engine to keep resolution cost
// bounded and serialized trees renderable.
const (
	// MaxMenuDepth prevents stack overflow during recursive resolution.
	// 8 levels is far beyond any renderable navigation nesting.
	MaxMenuDepth = 8

	// MaxFilterCount limits filter triples on a single filtered item.
	// 16 conjunctive filters keeps encoded URLs under typical limits.
	MaxFilterCount = 16

	// MaxMetaPairs limits passthrough metadata entries per node.
	// 32 pairs allows rich hints (type tags, HTTP methods) without
	// turning meta into a secondary payload channel.
	MaxMetaPairs = 32

	// MaxLabelLength bounds display text; longer labels break layouts
	// before they break the engine.
	MaxLabelLength = 128

	// MaxStateIDLength bounds state identifiers so external UI-state
	// stores can use them as fixed-width keys.
	MaxStateIDLength = 160
)
