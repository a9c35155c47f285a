// internal/menu/stateid.go
package menu

import (
	"strings"

	"github.com/solatis/menukeeper/internal/types"
)

/*
 * State identifier derivation.
 *
 * Collapsible containers carry a stateID: the key an external UI-state
 * store uses to remember open/closed state across sessions. When not set
 * explicitly, the ID is derived deterministically from the node's label:
 * lower-cased, runs of non-alphanumeric characters collapsed to single
 * underscores, prefixed with the container type.
 *
 *   "User Management" section -> menu_section_user_management
 *
 * Derivation is label-only: two containers with identical labels in
 * different branches derive the same ID. Accepted ambiguity, documented
 * in DESIGN.md; incorporating the tree path would change serialized
 * output for every existing consumer.
 */

// DeriveStateID derives a stable state identifier from a container label.
func DeriveStateID(kind Kind, label string) string {
	id := "menu_" + kind.String() + "_" + slugify(label)
	if len(id) > types.MaxStateIDLength {
		id = id[:types.MaxStateIDLength]
	}
	return id
}

// slugify lower-cases the label and collapses runs of non-alphanumeric
// characters into single underscores.
func slugify(label string) string {
	var sb strings.Builder
	sb.Grow(len(label))
	pendingSep := false
	for _, r := range strings.ToLower(label) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			if sb.Len() > 0 {
				pendingSep = true
			}
			continue
		}
		if pendingSep {
			sb.WriteByte('_')
			pendingSep = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
