// internal/menu/group.go
package menu

import (
	"time"
)

// Group is a non-top-level container of items, optionally collapsible
// with externally-persisted open/closed state.
type Group struct {
	label       string
	icon        string
	items       []Item
	collapsible bool
	collapsed   bool
	stateID     string
	badge       *Badge
	auth        *Authorization
	meta        Meta
}

// NewGroup creates a group containing the given items in order.
func NewGroup(label string, items ...Item) Group {
	return Group{label: label, items: items}
}

// Kind implements Node.
func (g Group) Kind() Kind { return KindGroup }

// Label implements Node.
func (g Group) Label() string { return g.label }

// Icon returns the group's icon name, "" when unset.
func (g Group) Icon() string { return g.icon }

// Items returns the child items in declaration order.
func (g Group) Items() []Item { return g.items }

// IsCollapsible reports whether the group renders as a toggle.
func (g Group) IsCollapsible() bool { return g.collapsible }

// IsCollapsed reports the initial UI state; meaningful only when the
// group is collapsible.
func (g Group) IsCollapsed() bool { return g.collapsed }

// StateID returns the explicit state identifier, or the one derived from
// the label. Stable across resolutions for identical configuration.
func (g Group) StateID() string {
	if g.stateID != "" {
		return g.stateID
	}
	return DeriveStateID(KindGroup, g.label)
}

// Badge implements Node.
func (g Group) Badge() *Badge { return g.badge }

// Auth implements Node.
func (g Group) Auth() *Authorization { return g.auth }

// Meta implements Node.
func (g Group) Meta() Meta { return g.meta }

// Collapsible returns a copy that renders as a toggle.
func (g Group) Collapsible() Group {
	g.collapsible = true
	return g
}

// Collapsed returns a copy whose toggle starts closed.
func (g Group) Collapsed() Group {
	g.collapsed = true
	return g
}

// WithStateID returns a copy with an explicit state identifier,
// overriding label derivation.
func (g Group) WithStateID(id string) Group {
	g.stateID = id
	return g
}

// WithIcon returns a copy with the icon set.
func (g Group) WithIcon(icon string) Group {
	g.icon = icon
	return g
}

// WithBadge returns a copy carrying the badge.
func (g Group) WithBadge(b Badge) Group {
	g.badge = &b
	return g
}

// WithBadgeIf returns a copy carrying the badge behind a guard predicate.
func (g Group) WithBadgeIf(guard GuardFunc, b Badge) Group {
	guarded := b.withGuard(guard)
	g.badge = &guarded
	return g
}

// CanSee returns a copy gated by the authorization predicate.
func (g Group) CanSee(p Predicate) Group {
	a := NewAuthorization(p)
	g.auth = &a
	return g
}

// CacheAuth returns a copy whose authorization result is cached for ttl.
// No-op when no predicate is configured; call after CanSee.
func (g Group) CacheAuth(ttl time.Duration) Group {
	if g.auth == nil {
		return g
	}
	a := g.auth.withTTL(ttl)
	g.auth = &a
	return g
}

// CacheBadge returns a copy whose badge value is cached for ttl.
// No-op when no badge is configured; call after WithBadge.
func (g Group) CacheBadge(ttl time.Duration) Group {
	if g.badge == nil {
		return g
	}
	b := g.badge.withTTL(ttl)
	g.badge = &b
	return g
}

// WithMeta returns a copy with the metadata pair set.
func (g Group) WithMeta(key string, value any) Group {
	g.meta = g.meta.with(key, value)
	return g
}

// WithItems returns a copy with the child list replaced. Used by the
// resolver to build pruned trees without touching the registered one.
func (g Group) WithItems(items ...Item) Group {
	g.items = items
	return g
}

// Validate implements Node.
func (g Group) Validate() error {
	if err := validateLabel(g.label); err != nil {
		return err
	}
	if err := validateMeta(g.meta); err != nil {
		return err
	}
	if g.badge != nil {
		if err := g.badge.Validate(); err != nil {
			return err
		}
	}
	return nil
}
