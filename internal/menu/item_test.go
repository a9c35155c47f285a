// internal/menu/item_test.go
package menu

import (
	"errors"
	"strings"
	"testing"

	"github.com/solatis/menukeeper/internal/types"
)

func TestLink_Basic(t *testing.T) {
	it := Link("Dashboard", "/dashboard")

	if it.Label() != "Dashboard" {
		t.Errorf("Label() = %q, want Dashboard", it.Label())
	}
	if it.URL() != "/dashboard" {
		t.Errorf("URL() = %q, want /dashboard", it.URL())
	}
	if it.Kind() != KindItem {
		t.Errorf("Kind() = %v, want KindItem", it.Kind())
	}
	if err := it.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestFactories_MetaTags(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantURL string
		metaKey string
		metaVal any
	}{
		{
			name:    "external link",
			item:    External("Docs", "https://example.com/docs"),
			wantURL: "https://example.com/docs",
			metaKey: "external",
			metaVal: true,
		},
		{
			name:    "resource link",
			item:    Resource("Users", "UserResource"),
			wantURL: "/resources/userresource",
			metaKey: "resource",
			metaVal: "UserResource",
		},
		{
			name:    "dashboard link",
			item:    Dashboard("Analytics", "analytics"),
			wantURL: "/dashboards/analytics",
			metaKey: "dashboard",
			metaVal: "analytics",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.item.URL() != tt.wantURL {
				t.Errorf("URL() = %q, want %q", tt.item.URL(), tt.wantURL)
			}
			v, ok := tt.item.Meta().Get(tt.metaKey)
			if !ok {
				t.Fatalf("Meta().Get(%q) not found", tt.metaKey)
			}
			if v != tt.metaVal {
				t.Errorf("meta %q = %v, want %v", tt.metaKey, v, tt.metaVal)
			}
		})
	}
}

func TestFiltered_EncodesInDeclarationOrder(t *testing.T) {
	it := Filtered("Open Orders", "OrderResource",
		Filter{Name: "status", Value: "open"},
		Filter{Name: "assignee", Value: "me", Params: []string{"include_teams"}},
	)

	url := it.URL()
	if !strings.HasPrefix(url, "/resources/orderresource?") {
		t.Fatalf("URL() = %q, want /resources/orderresource?... prefix", url)
	}

	query := strings.TrimPrefix(url, "/resources/orderresource?")
	statusIdx := strings.Index(query, "filter%5Bstatus%5D=open")
	assigneeIdx := strings.Index(query, "filter%5Bassignee%5D=me")
	paramIdx := strings.Index(query, "filter%5Bassignee%5D%5Bparams%5D%5B0%5D=include_teams")

	if statusIdx < 0 || assigneeIdx < 0 || paramIdx < 0 {
		t.Fatalf("query %q missing encoded filters", query)
	}
	if statusIdx > assigneeIdx {
		t.Errorf("filters out of declaration order in %q", query)
	}
}

func TestEncodeFilters_Empty(t *testing.T) {
	if got := EncodeFilters(nil); got != "" {
		t.Errorf("EncodeFilters(nil) = %q, want empty", got)
	}
}

func TestItem_BuildersAreImmutable(t *testing.T) {
	base := Link("Settings", "/settings")
	withIcon := base.WithIcon("cog")
	withBadge := base.WithBadge(NewBadge("3", types.BadgeInfo))

	if base.Icon() != "" {
		t.Errorf("base Icon() = %q after WithIcon on copy, want empty", base.Icon())
	}
	if base.Badge() != nil {
		t.Error("base Badge() != nil after WithBadge on copy")
	}
	if withIcon.Icon() != "cog" {
		t.Errorf("copy Icon() = %q, want cog", withIcon.Icon())
	}
	if withBadge.Badge() == nil {
		t.Error("copy Badge() = nil, want badge")
	}
}

func TestItem_WithMeta_PreservesOrderAndReplaces(t *testing.T) {
	it := Link("A", "/a").
		WithMeta("first", 1).
		WithMeta("second", 2).
		WithMeta("first", 10)

	m := it.Meta()
	if len(m) != 2 {
		t.Fatalf("len(Meta()) = %d, want 2", len(m))
	}
	if m[0].Key != "first" || m[0].Value != 10 {
		t.Errorf("meta[0] = %+v, want first=10", m[0])
	}
	if m[1].Key != "second" {
		t.Errorf("meta[1].Key = %q, want second", m[1].Key)
	}
}

func TestItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr error
	}{
		{
			name:    "empty label",
			item:    Link("", "/x"),
			wantErr: types.ErrEmptyLabel,
		},
		{
			name:    "label too long",
			item:    Link(strings.Repeat("x", types.MaxLabelLength+1), "/x"),
			wantErr: types.ErrLabelTooLong,
		},
		{
			name:    "unknown badge type",
			item:    Link("A", "/a").WithBadge(NewBadge("1", types.BadgeType("sparkly"))),
			wantErr: types.ErrUnknownBadgeType,
		},
		{
			name:    "valid",
			item:    Link("A", "/a").WithBadge(NewBadge("1", types.BadgeDanger)),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestItem_TooManyFilters(t *testing.T) {
	filters := make([]Filter, types.MaxFilterCount+1)
	for i := range filters {
		filters[i] = Filter{Name: "f", Value: "v"}
	}
	it := Filtered("Overloaded", "OrderResource", filters...)
	if !errors.Is(it.Validate(), types.ErrTooManyFilters) {
		t.Errorf("Validate() error = %v, want ErrTooManyFilters", it.Validate())
	}
}
