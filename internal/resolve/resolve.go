// internal/resolve/resolve.go
package resolve

import (
	"fmt"

	"github.com/solatis/menukeeper/internal/menu"
	"github.com/solatis/menukeeper/internal/types"
)

/*
 * Tree resolution: validate, authorize, prune.
 *
 * Depth-first pre-order walk in declaration order:
 *   1. Resolve the node's own authorization. Not visible -> drop the
 *      node and its entire subtree without descending; descendant
 *      predicates and badges are never invoked.
 *   2. Visible containers resolve each child recursively.
 *   3. A collapsible container whose surviving child list is empty is
 *      dropped: an empty toggle carries no information. Non-collapsible
 *      containers and direct-navigation sections are never dropped by
 *      emptiness.
 *   4. Badges are resolved later, for survivors only (serialize.go).
 *
 * Declaration order is a hard invariant: survivors keep their relative
 * order, nothing is re-sorted.
 *
 * Validation runs as a separate pre-pass in the compile-then-evaluate
 * manner: configuration errors (collapsible+path conflict, bad child
 * kinds, limit violations) surface before any authorization predicate
 * runs or serialization output is produced.
 */

// Validate walks the tree checking configuration recorded at build time.
// Returns the first configuration error found, wrapped with node context.
func (r *Resolver) Validate(nodes []menu.Node) error {
	return validateNodes(nodes, 1)
}

func validateNodes(nodes []menu.Node, depth int) error {
	if depth > types.MaxMenuDepth {
		return types.ErrMenuTooDeep
	}
	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			return fmt.Errorf("node %q: %w", n.Label(), err)
		}
		switch v := n.(type) {
		case menu.Section:
			if err := validateNodes(v.Children(), depth+1); err != nil {
				return err
			}
		case menu.Group:
			if err := validateNodes(itemNodes(v.Items()), depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// Resolve validates the tree and returns the authorized, pruned copy for
// the request context. The registered tree is left untouched.
func (r *Resolver) Resolve(nodes []menu.Node, req *types.Request) ([]menu.Node, error) {
	if err := r.Validate(nodes); err != nil {
		return nil, err
	}
	return r.resolveNodes(nodes, req)
}

// resolveNodes prunes one sibling list, preserving declaration order.
func (r *Resolver) resolveNodes(nodes []menu.Node, req *types.Request) ([]menu.Node, error) {
	out := make([]menu.Node, 0, len(nodes))
	for _, n := range nodes {
		visible, err := r.isVisible(n, req)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Label(), err)
		}
		if !visible {
			continue
		}

		switch v := n.(type) {
		case menu.Section:
			kids, err := r.resolveNodes(v.Children(), req)
			if err != nil {
				return nil, err
			}
			if v.IsCollapsible() && len(kids) == 0 {
				continue
			}
			out = append(out, v.WithChildren(kids...))
		case menu.Group:
			items, err := r.resolveItems(v.Items(), req)
			if err != nil {
				return nil, err
			}
			if v.IsCollapsible() && len(items) == 0 {
				continue
			}
			out = append(out, v.WithItems(items...))
		default:
			out = append(out, n)
		}
	}
	return out, nil
}

// resolveItems prunes a group's item list.
func (r *Resolver) resolveItems(items []menu.Item, req *types.Request) ([]menu.Item, error) {
	out := make([]menu.Item, 0, len(items))
	for _, it := range items {
		visible, err := r.isVisible(it, req)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", it.Label(), err)
		}
		if visible {
			out = append(out, it)
		}
	}
	return out, nil
}

// isVisible resolves the node's authorization, memoized per node and
// actor when the predicate carries a TTL.
func (r *Resolver) isVisible(n menu.Node, req *types.Request) (bool, error) {
	auth := n.Auth()
	if auth == nil {
		return true, nil
	}

	ttl := auth.TTL()
	if ttl <= 0 {
		return auth.Evaluate(req)
	}

	v, err := r.memoize(r.authKey(n, req.ActorID()), ttl, func() (any, error) {
		ok, err := auth.Evaluate(req)
		if err != nil {
			return nil, err
		}
		return ok, nil
	})
	if err != nil {
		return false, err
	}
	ok, isBool := v.(bool)
	if !isBool {
		// Foreign value under our key (corrupt store); fall back to
		// direct evaluation.
		return auth.Evaluate(req)
	}
	return ok, nil
}

// itemNodes widens a concrete item slice for the shared validation walk.
func itemNodes(items []menu.Item) []menu.Node {
	out := make([]menu.Node, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
