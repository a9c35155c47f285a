// internal/menu/section.go
package menu

import (
	"fmt"
	"time"

	"github.com/solatis/menukeeper/internal/types"
)

/*
 * Top-level sections.
 *
 * A section is either a collapsible container of groups/items or a
 * direct-navigation leaf with a path; the two are mutually exclusive.
 * Because builders are immutable value calls, the conflict cannot be
 * returned at the conflicting call without breaking chaining, so it is
 * recorded on the copy and surfaced by Validate — which the resolver runs
 * before producing any serialization output. Tests rely on detection
 * completing before serialization.
 */

// Section is a top-level container of groups and items, optionally
// collapsible, or alternatively a direct-navigation leaf.
type Section struct {
	label       string
	icon        string
	children    []Node
	path        string
	collapsible bool
	collapsed   bool
	stateID     string
	badge       *Badge
	auth        *Authorization
	meta        Meta
	confErr     error
}

// NewSection creates a section containing the given children in order.
// Valid children are groups and items; anything else fails Validate.
func NewSection(label string, children ...Node) Section {
	return Section{label: label, children: children}
}

// Kind implements Node.
func (s Section) Kind() Kind { return KindSection }

// Label implements Node.
func (s Section) Label() string { return s.label }

// Icon returns the section's icon name, "" when unset.
func (s Section) Icon() string { return s.icon }

// Children returns the child nodes in declaration order.
func (s Section) Children() []Node { return s.children }

// Path returns the direct-navigation destination, "" for containers.
func (s Section) Path() string { return s.path }

// IsCollapsible reports whether the section renders as a toggle.
func (s Section) IsCollapsible() bool { return s.collapsible }

// IsCollapsed reports the initial UI state; meaningful only when the
// section is collapsible.
func (s Section) IsCollapsed() bool { return s.collapsed }

// StateID returns the explicit state identifier, or the one derived from
// the label.
func (s Section) StateID() string {
	if s.stateID != "" {
		return s.stateID
	}
	return DeriveStateID(KindSection, s.label)
}

// Badge implements Node.
func (s Section) Badge() *Badge { return s.badge }

// Auth implements Node.
func (s Section) Auth() *Authorization { return s.auth }

// Meta implements Node.
func (s Section) Meta() Meta { return s.meta }

// WithPath returns a copy configured for direct navigation. Conflicts
// with Collapsible; the conflict is recorded and surfaced by Validate.
func (s Section) WithPath(path string) Section {
	if s.collapsible {
		s.confErr = fmt.Errorf("%w: %q", types.ErrCollapsiblePathConflict, s.label)
		return s
	}
	s.path = path
	return s
}

// Collapsible returns a copy that renders as a toggle. Conflicts with
// WithPath; the conflict is recorded and surfaced by Validate.
func (s Section) Collapsible() Section {
	if s.path != "" {
		s.confErr = fmt.Errorf("%w: %q", types.ErrCollapsiblePathConflict, s.label)
		return s
	}
	s.collapsible = true
	return s
}

// Collapsed returns a copy whose toggle starts closed.
func (s Section) Collapsed() Section {
	s.collapsed = true
	return s
}

// WithStateID returns a copy with an explicit state identifier.
func (s Section) WithStateID(id string) Section {
	s.stateID = id
	return s
}

// WithIcon returns a copy with the icon set.
func (s Section) WithIcon(icon string) Section {
	s.icon = icon
	return s
}

// WithBadge returns a copy carrying the badge.
func (s Section) WithBadge(b Badge) Section {
	s.badge = &b
	return s
}

// WithBadgeIf returns a copy carrying the badge behind a guard predicate.
func (s Section) WithBadgeIf(guard GuardFunc, b Badge) Section {
	guarded := b.withGuard(guard)
	s.badge = &guarded
	return s
}

// CanSee returns a copy gated by the authorization predicate.
func (s Section) CanSee(p Predicate) Section {
	a := NewAuthorization(p)
	s.auth = &a
	return s
}

// CacheAuth returns a copy whose authorization result is cached for ttl.
// No-op when no predicate is configured; call after CanSee.
func (s Section) CacheAuth(ttl time.Duration) Section {
	if s.auth == nil {
		return s
	}
	a := s.auth.withTTL(ttl)
	s.auth = &a
	return s
}

// CacheBadge returns a copy whose badge value is cached for ttl.
// No-op when no badge is configured; call after WithBadge.
func (s Section) CacheBadge(ttl time.Duration) Section {
	if s.badge == nil {
		return s
	}
	b := s.badge.withTTL(ttl)
	s.badge = &b
	return s
}

// WithMeta returns a copy with the metadata pair set.
func (s Section) WithMeta(key string, value any) Section {
	s.meta = s.meta.with(key, value)
	return s
}

// WithChildren returns a copy with the child list replaced. Used by the
// resolver to build pruned trees without touching the registered one.
func (s Section) WithChildren(children ...Node) Section {
	s.children = children
	return s
}

// Validate implements Node. Surfaces recorded configuration conflicts and
// rejects child kinds other than groups and items.
func (s Section) Validate() error {
	if s.confErr != nil {
		return s.confErr
	}
	if err := validateLabel(s.label); err != nil {
		return err
	}
	if err := validateMeta(s.meta); err != nil {
		return err
	}
	if s.badge != nil {
		if err := s.badge.Validate(); err != nil {
			return err
		}
	}
	for _, child := range s.children {
		switch child.Kind() {
		case KindGroup, KindItem:
		default:
			return fmt.Errorf("%w: %s in section %q", types.ErrInvalidSectionChild, child.Kind(), s.label)
		}
	}
	return nil
}
