// Package registry holds the host-supplied menu registration callbacks.
//
// The registration callback owns the tree shape: it is re-invoked on
// every resolution (no implicit caching), so hosts may vary the tree by
// request. The actor-menu callback receives a fresh pre-populated Menu
// per resolution; the default sign-out entry survives unless the
// callback explicitly removes it.
package registry

import (
	"sync"

	"github.com/solatis/menukeeper/internal/menu"
	"github.com/solatis/menukeeper/internal/types"
)

// SignOutLabel is the label of the default actor-menu entry.
const SignOutLabel = "Sign Out"

// MenuFunc returns the unresolved main menu tree for a request context.
type MenuFunc func(*types.Request) []menu.Node

// UserMenuFunc amends the pre-populated actor menu for a request context.
type UserMenuFunc func(*types.Request, *menu.Menu)

// Registry stores the registered callbacks. Safe for concurrent
// registration and resolution, though hosts typically register once at
// startup.
type Registry struct {
	mu     sync.RWMutex
	menuFn MenuFunc
	userFn UserMenuFunc
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// RegisterMenu sets the main menu callback, replacing any previous one.
func (r *Registry) RegisterMenu(fn MenuFunc) {
	r.mu.Lock()
	r.menuFn = fn
	r.mu.Unlock()
}

// RegisterUserMenu sets the actor-menu callback, replacing any previous
// one.
func (r *Registry) RegisterUserMenu(fn UserMenuFunc) {
	r.mu.Lock()
	r.userFn = fn
	r.mu.Unlock()
}

// Menu invokes the main menu callback for the request context. Returns
// nil when no callback is registered.
func (r *Registry) Menu(req *types.Request) []menu.Node {
	r.mu.RLock()
	fn := r.menuFn
	r.mu.RUnlock()
	if fn == nil {
		return nil
	}
	return fn(req)
}

// UserMenu builds the actor menu for the request context: a fresh Menu
// pre-populated with the default sign-out entry, amended by the
// registered callback if any.
func (r *Registry) UserMenu(req *types.Request) *menu.Menu {
	m := menu.NewMenu(signOutItem())

	r.mu.RLock()
	fn := r.userFn
	r.mu.RUnlock()
	if fn != nil {
		fn(req, m)
	}
	return m
}

// signOutItem builds the default sign-out entry. The method hint tells
// the renderer to submit rather than navigate.
func signOutItem() menu.Item {
	return menu.Link(SignOutLabel, "/logout").
		WithIcon("sign-out").
		WithMeta("method", "POST")
}
