// internal/menu/menu.go
package menu

import (
	"fmt"

	"github.com/solatis/menukeeper/internal/types"
)

// Menu is the flat, ordered collection backing the secondary actor menu.
// Only items are valid children; membership is validated on every insert,
// not deferred to resolution. Unlike the tree nodes, Menu is mutated in
// place: each resolution builds a fresh Menu for its callback, so no
// instance is ever shared across requests.
type Menu struct {
	items []Item
}

// NewMenu creates a menu containing the given items in order.
func NewMenu(items ...Item) *Menu {
	m := &Menu{items: make([]Item, len(items))}
	copy(m.items, items)
	return m
}

// Append adds a node to the end of the menu. Returns ErrInvalidMenuChild
// and leaves the menu unchanged when the node is not an item.
func (m *Menu) Append(n Node) error {
	it, ok := n.(Item)
	if !ok {
		return fmt.Errorf("%w: got %s", types.ErrInvalidMenuChild, n.Kind())
	}
	m.items = append(m.items, it)
	return nil
}

// Prepend adds a node to the front of the menu. Returns
// ErrInvalidMenuChild and leaves the menu unchanged when the node is not
// an item.
func (m *Menu) Prepend(n Node) error {
	it, ok := n.(Item)
	if !ok {
		return fmt.Errorf("%w: got %s", types.ErrInvalidMenuChild, n.Kind())
	}
	m.items = append([]Item{it}, m.items...)
	return nil
}

// Remove deletes the first item with the given label. Returns whether an
// item was removed. Used by callbacks that replace default entries.
func (m *Menu) Remove(label string) bool {
	for i, it := range m.items {
		if it.Label() == label {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the items in declaration order.
func (m *Menu) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of items.
func (m *Menu) Len() int { return len(m.items) }
