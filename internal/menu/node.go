// internal/menu/node.go
package menu

import (
	"bytes"
	"encoding/json"

	"github.com/solatis/menukeeper/internal/types"
)

/*
 * Menu node hierarchy.
 *
 * Implements a closed set of tagged variants (Item, Group, Section) plus
 * the flat actor Menu, sharing the Node capability set. No inheritance:
 * each variant carries only the fields it needs (only Section has a
 * direct-navigation path, only containers have state identifiers).
 *
 * Immutability: every builder method returns a modified copy. Registered
 * trees are shared read-only across concurrent resolutions for different
 * actors; resolution never writes back onto nodes.
 *
 * Why value types: copy-on-write builders make the shared-tree guarantee
 * structural rather than disciplinary. Slices and badge/auth pointers are
 * cloned before mutation so no two configured values alias state.
 */

// Kind identifies the concrete variant behind a Node.
type Kind int

const (
	KindItem Kind = iota
	KindGroup
	KindSection
)

// String returns the lowercase variant name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindGroup:
		return "group"
	case KindSection:
		return "section"
	default:
		return "unknown"
	}
}

// Node is the capability set shared by all menu tree elements.
// The variant set is closed; consumers type-switch on the concrete types.
type Node interface {
	Kind() Kind
	Label() string
	Badge() *Badge
	Auth() *Authorization
	Meta() Meta

	// Validate reports configuration errors recorded during building
	// (conflicting options, limit violations). Checked by the resolver
	// before any serialization output is produced.
	Validate() error
}

// MetaEntry is one ordered metadata pair.
type MetaEntry struct {
	Key   string
	Value any
}

// Meta is ordered, string-keyed passthrough metadata (type tags, filter
// definitions, HTTP-method hints). Declaration order is preserved through
// serialization; a plain map would lose it.
type Meta []MetaEntry

// Get returns the value for key and whether it was present.
func (m Meta) Get(key string) (any, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// MarshalJSON emits the entries as a JSON object in declaration order.
func (m Meta) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// with returns a copy of m with key set, replacing an existing entry in
// place to preserve declaration order.
func (m Meta) with(key string, value any) Meta {
	out := make(Meta, len(m), len(m)+1)
	copy(out, m)
	for i, e := range out {
		if e.Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, MetaEntry{Key: key, Value: value})
}

// validateLabel enforces shared label constraints for all variants.
func validateLabel(label string) error {
	if label == "" {
		return types.ErrEmptyLabel
	}
	if len(label) > types.MaxLabelLength {
		return types.ErrLabelTooLong
	}
	return nil
}

// validateMeta enforces the metadata pair limit.
func validateMeta(m Meta) error {
	if len(m) > types.MaxMetaPairs {
		return types.ErrTooManyMetaPairs
	}
	return nil
}
