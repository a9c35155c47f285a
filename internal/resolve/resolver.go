// internal/resolve/resolver.go
package resolve

import (
	"time"

	"github.com/solatis/menukeeper/internal/cache"
	"github.com/solatis/menukeeper/internal/menu"
)

/*
 * Resolver construction and caching plumbing.
 *
 * The resolver walks a registered tree for a request context: validate,
 * authorize-and-prune, then serialize. It does not own nodes and never
 * writes onto them; all outputs go into fresh serialized structures.
 *
 * Caching: the cache store is an injected collaborator, keyed by
 *   <namespace>:badge:<nodeKey>
 *   <namespace>:auth:<nodeKey>:<actorID>
 * Node keys derive from the container stateID / item label+URL, so they
 * are stable across processes of a cluster sharing a database-backed
 * store. Store failures degrade to uncached evaluation: caching is a
 * performance optimization, never a correctness requirement.
 */

// Resolver turns registered menu trees into authorized, badge-annotated,
// serialized navigation structures.
type Resolver struct {
	store cache.Store
	ns    string
}

// New creates a resolver. A nil store disables caching entirely;
// namespace scopes cache keys so multiple menus can share one store.
func New(store cache.Store, namespace string) *Resolver {
	if namespace == "" {
		namespace = "menukeeper"
	}
	return &Resolver{store: store, ns: namespace}
}

// NodeKey derives the stable cache identity for a node. Containers use
// their state identifier; items combine the derived label slug with the
// URL since leaf labels repeat across branches ("View All").
func NodeKey(n menu.Node) string {
	switch v := n.(type) {
	case menu.Section:
		return v.StateID()
	case menu.Group:
		return v.StateID()
	case menu.Item:
		return menu.DeriveStateID(menu.KindItem, v.Label()) + "@" + v.URL()
	default:
		return menu.DeriveStateID(n.Kind(), n.Label())
	}
}

// badgeKey returns the cache key for a node's badge value.
func (r *Resolver) badgeKey(n menu.Node) string {
	return r.ns + ":badge:" + NodeKey(n)
}

// authKey returns the cache key for a node's visibility, discriminated
// by actor ("" for anonymous or request-less resolution).
func (r *Resolver) authKey(n menu.Node, actorID string) string {
	return r.ns + ":auth:" + NodeKey(n) + ":" + actorID
}

// memoize returns the cached value for key, or computes it via thunk and
// stores it for ttl. Disabled caching (nil store, non-positive TTL) and
// store failures fall through to direct evaluation. Thunk errors are
// never cached.
func (r *Resolver) memoize(key string, ttl time.Duration, thunk func() (any, error)) (any, error) {
	if r.store == nil || ttl <= 0 {
		return thunk()
	}
	if v, ok, err := r.store.Get(key); err == nil && ok {
		return v, nil
	}
	v, err := thunk()
	if err != nil {
		return nil, err
	}
	// Last writer wins; concurrent misses recomputing independently is
	// acceptable (no single-flight).
	_ = r.store.Put(key, v, ttl)
	return v, nil
}

// ClearBadgeCache removes the node's cached badge value regardless of
// remaining TTL.
func (r *Resolver) ClearBadgeCache(n menu.Node) error {
	if r.store == nil {
		return nil
	}
	return r.store.Forget(r.badgeKey(n))
}

// ClearAuthCache removes the node's cached visibility for one actor
// regardless of remaining TTL. Pass "" for the anonymous entry.
func (r *Resolver) ClearAuthCache(n menu.Node, actorID string) error {
	if r.store == nil {
		return nil
	}
	return r.store.Forget(r.authKey(n, actorID))
}

// ClearBadges wipes every cached badge value in this resolver's
// namespace. Requires a store supporting prefix deletion.
func (r *Resolver) ClearBadges() error {
	return r.forgetPrefix(r.ns + ":badge:")
}

// ClearAuth wipes every cached visibility result in this resolver's
// namespace, for all actors. Requires a store supporting prefix deletion.
func (r *Resolver) ClearAuth() error {
	return r.forgetPrefix(r.ns + ":auth:")
}

func (r *Resolver) forgetPrefix(prefix string) error {
	if r.store == nil {
		return nil
	}
	pf, ok := r.store.(cache.PrefixForgetter)
	if !ok {
		return nil
	}
	return pf.ForgetPrefix(prefix)
}
