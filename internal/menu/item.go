// internal/menu/item.go
package menu

import (
	"time"
)

/*
 * Leaf menu items.
 *
 * Items are created through factory constructors: plain links, resource
 * links, external links, filtered-resource links, and dashboard links.
 * Each factory stamps passthrough metadata (type tag, target hints) that
 * the rendering collaborator consumes unchanged.
 *
 * All builders return modified copies; see node.go for the immutability
 * contract.
 */

// Item is a leaf node: label, destination, icon, badge, authorization,
// arbitrary metadata.
type Item struct {
	label string
	url   string
	icon  string
	badge *Badge
	auth  *Authorization
	meta  Meta
}

// Link creates a basic navigation item.
func Link(label, url string) Item {
	return Item{label: label, url: url}
}

// External creates an item linking outside the application. Marked in
// meta so the renderer opens it in a new context.
func External(label, url string) Item {
	it := Link(label, url)
	it.meta = it.meta.with("external", true).with("target", "_blank")
	return it
}

// Resource creates an item linking to a registered resource index.
func Resource(label, resource string) Item {
	it := Link(label, "/resources/"+slugify(resource))
	it.meta = it.meta.with("resource", resource)
	return it
}

// Dashboard creates an item linking to a dashboard page.
func Dashboard(label, slug string) Item {
	it := Link(label, "/dashboards/"+slug)
	it.meta = it.meta.with("dashboard", slug)
	return it
}

// Filtered creates a resource item with pre-applied filters. Filters
// compose conjunctively and keep declaration order both in meta and in
// the encoded URL query.
func Filtered(label, resource string, filters ...Filter) Item {
	it := Resource(label, resource)
	if q := EncodeFilters(filters); q != "" {
		it.url += "?" + q
	}
	it.meta = it.meta.with("filters", filters)
	return it
}

// Kind implements Node.
func (i Item) Kind() Kind { return KindItem }

// Label implements Node.
func (i Item) Label() string { return i.label }

// URL returns the item's destination.
func (i Item) URL() string { return i.url }

// Icon returns the item's icon name, "" when unset.
func (i Item) Icon() string { return i.icon }

// Badge implements Node.
func (i Item) Badge() *Badge { return i.badge }

// Auth implements Node.
func (i Item) Auth() *Authorization { return i.auth }

// Meta implements Node.
func (i Item) Meta() Meta { return i.meta }

// WithIcon returns a copy with the icon set.
func (i Item) WithIcon(icon string) Item {
	i.icon = icon
	return i
}

// WithBadge returns a copy carrying the badge.
func (i Item) WithBadge(b Badge) Item {
	i.badge = &b
	return i
}

// WithBadgeIf returns a copy carrying the badge behind a guard predicate.
// A false guard resolves the badge to null.
func (i Item) WithBadgeIf(guard GuardFunc, b Badge) Item {
	guarded := b.withGuard(guard)
	i.badge = &guarded
	return i
}

// CanSee returns a copy gated by the authorization predicate.
func (i Item) CanSee(p Predicate) Item {
	a := NewAuthorization(p)
	i.auth = &a
	return i
}

// CacheAuth returns a copy whose authorization result is cached for ttl.
// No-op when no predicate is configured; call after CanSee.
func (i Item) CacheAuth(ttl time.Duration) Item {
	if i.auth == nil {
		return i
	}
	a := i.auth.withTTL(ttl)
	i.auth = &a
	return i
}

// CacheBadge returns a copy whose badge value is cached for ttl.
// No-op when no badge is configured; call after WithBadge.
func (i Item) CacheBadge(ttl time.Duration) Item {
	if i.badge == nil {
		return i
	}
	b := i.badge.withTTL(ttl)
	i.badge = &b
	return i
}

// WithMeta returns a copy with the metadata pair set, preserving entry
// order for existing keys.
func (i Item) WithMeta(key string, value any) Item {
	i.meta = i.meta.with(key, value)
	return i
}

// Validate implements Node.
func (i Item) Validate() error {
	if err := validateLabel(i.label); err != nil {
		return err
	}
	if err := validateMeta(i.meta); err != nil {
		return err
	}
	if v, ok := i.meta.Get("filters"); ok {
		if filters, ok := v.([]Filter); ok {
			if err := validateFilters(filters); err != nil {
				return err
			}
		}
	}
	if i.badge != nil {
		if err := i.badge.Validate(); err != nil {
			return err
		}
	}
	return nil
}
