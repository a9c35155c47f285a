// internal/menu/section_test.go
package menu

import (
	"errors"
	"testing"

	"github.com/solatis/menukeeper/internal/types"
)

func TestSection_CollapsiblePathConflict(t *testing.T) {
	tests := []struct {
		name    string
		section Section
	}{
		{
			name:    "collapsible then path",
			section: NewSection("Admin").Collapsible().WithPath("/admin"),
		},
		{
			name:    "path then collapsible",
			section: NewSection("Admin").WithPath("/admin").Collapsible(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.section.Validate()
			if !errors.Is(err, types.ErrCollapsiblePathConflict) {
				t.Errorf("Validate() error = %v, want ErrCollapsiblePathConflict", err)
			}
		})
	}
}

func TestSection_DirectNavigationValid(t *testing.T) {
	s := NewSection("Dashboard").WithPath("/dashboard")
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if s.Path() != "/dashboard" {
		t.Errorf("Path() = %q, want /dashboard", s.Path())
	}
	if s.IsCollapsible() {
		t.Error("IsCollapsible() = true for direct-navigation section")
	}
}

func TestSection_CollapsibleContainerValid(t *testing.T) {
	s := NewSection("Users",
		NewGroup("Management", Link("All Users", "/users")),
		Link("Invites", "/invites"),
	).Collapsible().Collapsed()

	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if !s.IsCollapsible() || !s.IsCollapsed() {
		t.Error("collapsible/collapsed flags not set")
	}
	if len(s.Children()) != 2 {
		t.Errorf("len(Children()) = %d, want 2", len(s.Children()))
	}
}

func TestSection_RejectsNestedSection(t *testing.T) {
	inner := NewSection("Inner", Link("A", "/a"))
	outer := NewSection("Outer", inner)

	err := outer.Validate()
	if !errors.Is(err, types.ErrInvalidSectionChild) {
		t.Errorf("Validate() error = %v, want ErrInvalidSectionChild", err)
	}
}

func TestSection_BuildersAreImmutable(t *testing.T) {
	base := NewSection("Reports", Link("Daily", "/reports/daily"))
	collapsible := base.Collapsible()

	if base.IsCollapsible() {
		t.Error("base IsCollapsible() = true after Collapsible() on copy")
	}
	if !collapsible.IsCollapsible() {
		t.Error("copy IsCollapsible() = false")
	}

	// The conflicting configuration on one copy must not leak into the
	// other branch of the chain.
	conflicted := collapsible.WithPath("/reports")
	if err := collapsible.Validate(); err != nil {
		t.Errorf("clean copy Validate() error = %v, want nil", err)
	}
	if err := conflicted.Validate(); !errors.Is(err, types.ErrCollapsiblePathConflict) {
		t.Errorf("conflicted copy Validate() error = %v, want ErrCollapsiblePathConflict", err)
	}
}

func TestSection_WithChildrenReplaces(t *testing.T) {
	s := NewSection("Users", Link("A", "/a"), Link("B", "/b"))
	pruned := s.WithChildren(Link("B", "/b"))

	if len(s.Children()) != 2 {
		t.Errorf("original Children() = %d, want 2", len(s.Children()))
	}
	if len(pruned.Children()) != 1 {
		t.Errorf("pruned Children() = %d, want 1", len(pruned.Children()))
	}
}
