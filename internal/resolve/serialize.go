// internal/resolve/serialize.go
package resolve

import (
	"fmt"

	"github.com/solatis/menukeeper/internal/menu"
	"github.com/solatis/menukeeper/internal/types"
)

/*
 * Serialization of resolved trees.
 *
 * Survivors are emitted in declaration order into plain nested entries
 * (data only, no behavior) for JSON encoding and hand-off to the
 * rendering collaborator. Field names are a stable contract: containers
 * use name/path, leaves use label/url.
 *
 * Badges are resolved here, after pruning, so unauthorized subtrees
 * never evaluate their badge callbacks. Visibility is always true in the
 * output (pruning removed everything else); the field is included for
 * the consuming layer's convenience.
 */

// Entry is one serialized node. Containers carry Name/Path/StateID and
// nested Items; leaves carry Label/URL/Meta.
type Entry struct {
	Name        string          `json:"name,omitempty"`
	Label       string          `json:"label,omitempty"`
	Path        string          `json:"path,omitempty"`
	URL         string          `json:"url,omitempty"`
	Icon        string          `json:"icon,omitempty"`
	Badge       any             `json:"badge,omitempty"`
	BadgeType   types.BadgeType `json:"badgeType,omitempty"`
	Collapsible bool            `json:"collapsible"`
	Collapsed   bool            `json:"collapsed"`
	StateID     string          `json:"stateId,omitempty"`
	Visible     bool            `json:"visible"`
	Items       []Entry         `json:"items,omitempty"`
	Meta        menu.Meta       `json:"meta,omitempty"`
}

// Serialize resolves the tree for the request context and emits the
// serialized survivors: validate, authorize-and-prune, then serialize
// with badge resolution. Single entry point for the transport layer.
func (r *Resolver) Serialize(nodes []menu.Node, req *types.Request) ([]Entry, error) {
	resolved, err := r.Resolve(nodes, req)
	if err != nil {
		return nil, err
	}
	return r.emitNodes(resolved, req)
}

// SerializeMenu serializes a resolved actor menu: items are authorized
// and pruned, then emitted flat.
func (r *Resolver) SerializeMenu(m *menu.Menu, req *types.Request) ([]Entry, error) {
	items, err := r.resolveItems(m.Items(), req)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(items))
	for _, it := range items {
		e, err := r.emitNode(it, req)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *Resolver) emitNodes(nodes []menu.Node, req *types.Request) ([]Entry, error) {
	out := make([]Entry, 0, len(nodes))
	for _, n := range nodes {
		e, err := r.emitNode(n, req)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *Resolver) emitNode(n menu.Node, req *types.Request) (Entry, error) {
	badgeValue, badgeType, err := r.resolveBadge(n, req)
	if err != nil {
		return Entry{}, fmt.Errorf("node %q: %w", n.Label(), err)
	}

	switch v := n.(type) {
	case menu.Section:
		items, err := r.emitNodes(v.Children(), req)
		if err != nil {
			return Entry{}, err
		}
		return Entry{
			Name:        v.Label(),
			Path:        v.Path(),
			Icon:        v.Icon(),
			Badge:       badgeValue,
			BadgeType:   badgeType,
			Collapsible: v.IsCollapsible(),
			Collapsed:   v.IsCollapsed(),
			StateID:     v.StateID(),
			Visible:     true,
			Items:       items,
			Meta:        v.Meta(),
		}, nil
	case menu.Group:
		items, err := r.emitNodes(itemNodes(v.Items()), req)
		if err != nil {
			return Entry{}, err
		}
		return Entry{
			Name:        v.Label(),
			Icon:        v.Icon(),
			Badge:       badgeValue,
			BadgeType:   badgeType,
			Collapsible: v.IsCollapsible(),
			Collapsed:   v.IsCollapsed(),
			StateID:     v.StateID(),
			Visible:     true,
			Items:       items,
			Meta:        v.Meta(),
		}, nil
	case menu.Item:
		return Entry{
			Label:     v.Label(),
			URL:       v.URL(),
			Icon:      v.Icon(),
			Badge:     badgeValue,
			BadgeType: badgeType,
			Visible:   true,
			Meta:      v.Meta(),
		}, nil
	default:
		return Entry{}, fmt.Errorf("node %q: unknown kind %s", n.Label(), n.Kind())
	}
}

// resolveBadge evaluates the node's badge, memoized by node key when the
// badge carries a TTL. The style tag is only emitted alongside a
// non-nil value (a guarded-off badge yields neither).
func (r *Resolver) resolveBadge(n menu.Node, req *types.Request) (any, types.BadgeType, error) {
	b := n.Badge()
	if b == nil {
		return nil, "", nil
	}

	var value any
	var err error
	if ttl := b.TTL(); ttl > 0 {
		value, err = r.memoize(r.badgeKey(n), ttl, func() (any, error) {
			return b.Evaluate(req)
		})
	} else {
		value, err = b.Evaluate(req)
	}
	if err != nil {
		return nil, "", err
	}
	if value == nil {
		return nil, "", nil
	}
	return value, b.Style(), nil
}
