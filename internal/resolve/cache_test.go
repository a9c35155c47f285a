// internal/resolve/cache_test.go
package resolve

import (
	"errors"
	"testing"
	"time"

	"github.com/solatis/menukeeper/internal/cache"
	"github.com/solatis/menukeeper/internal/menu"
	"github.com/solatis/menukeeper/internal/types"
)

// failingStore simulates an unreachable cache backend.
type failingStore struct{}

func (failingStore) Get(string) (any, bool, error) {
	return nil, false, types.ErrCacheUnavailable
}

func (failingStore) Put(string, any, time.Duration) error {
	return types.ErrCacheUnavailable
}

func (failingStore) Forget(string) error {
	return types.ErrCacheUnavailable
}

func TestBadgeCaching_Idempotence(t *testing.T) {
	calls := 0
	item := menu.Link("Inbox", "/inbox").
		WithBadge(menu.NewBadgeFunc(func(*types.Request) (any, error) {
			calls++
			return calls, nil
		}, types.BadgeInfo)).
		CacheBadge(time.Minute)
	tree := []menu.Node{menu.NewSection("Main", item)}

	r := New(cache.NewMemory(), "test")

	first, err := r.Serialize(tree, nil)
	if err != nil {
		t.Fatalf("first Serialize() error = %v, want nil", err)
	}
	second, err := r.Serialize(tree, nil)
	if err != nil {
		t.Fatalf("second Serialize() error = %v, want nil", err)
	}

	if calls != 1 {
		t.Errorf("badge callback invoked %d times within TTL, want 1", calls)
	}
	if first[0].Items[0].Badge != second[0].Items[0].Badge {
		t.Errorf("badge values differ within TTL: %v vs %v",
			first[0].Items[0].Badge, second[0].Items[0].Badge)
	}

	if err := r.ClearBadgeCache(item); err != nil {
		t.Fatalf("ClearBadgeCache() error = %v, want nil", err)
	}
	if _, err := r.Serialize(tree, nil); err != nil {
		t.Fatalf("third Serialize() error = %v, want nil", err)
	}
	if calls != 2 {
		t.Errorf("badge callback invoked %d times after clear, want 2", calls)
	}
}

func TestAuthCaching_Idempotence(t *testing.T) {
	calls := 0
	item := menu.Link("Audit", "/audit").
		CanSee(func(*types.Request) (bool, error) {
			calls++
			return true, nil
		}).
		CacheAuth(time.Minute)
	tree := []menu.Node{menu.NewSection("Main", item)}

	r := New(cache.NewMemory(), "test")
	req := &types.Request{Actor: &types.Actor{ID: "u1"}}

	for i := 0; i < 2; i++ {
		entries, err := r.Serialize(tree, req)
		if err != nil {
			t.Fatalf("Serialize() #%d error = %v, want nil", i+1, err)
		}
		if len(entries[0].Items) != 1 {
			t.Fatalf("Serialize() #%d items = %d, want 1", i+1, len(entries[0].Items))
		}
	}
	if calls != 1 {
		t.Errorf("predicate invoked %d times within TTL, want 1", calls)
	}

	if err := r.ClearAuthCache(item, "u1"); err != nil {
		t.Fatalf("ClearAuthCache() error = %v, want nil", err)
	}
	if _, err := r.Serialize(tree, req); err != nil {
		t.Fatalf("Serialize() after clear error = %v, want nil", err)
	}
	if calls != 2 {
		t.Errorf("predicate invoked %d times after clear, want 2", calls)
	}
}

func TestAuthCaching_DiscriminatedByActor(t *testing.T) {
	item := menu.Link("Admin", "/admin").
		CanSee(menu.AnyRole("admin")).
		CacheAuth(time.Minute)
	tree := []menu.Node{menu.NewSection("Main", item)}

	r := New(cache.NewMemory(), "test")

	admin := &types.Request{Actor: &types.Actor{ID: "u-admin", Roles: []string{"admin"}}}
	viewer := &types.Request{Actor: &types.Actor{ID: "u-viewer", Roles: []string{"viewer"}}}

	adminEntries, err := r.Serialize(tree, admin)
	if err != nil {
		t.Fatalf("admin Serialize() error = %v, want nil", err)
	}
	viewerEntries, err := r.Serialize(tree, viewer)
	if err != nil {
		t.Fatalf("viewer Serialize() error = %v, want nil", err)
	}

	if len(adminEntries[0].Items) != 1 {
		t.Errorf("admin items = %d, want 1", len(adminEntries[0].Items))
	}
	if len(viewerEntries[0].Items) != 0 {
		t.Errorf("viewer items = %d, want 0 (cached admin result must not leak)", len(viewerEntries[0].Items))
	}
}

func TestCaching_TTLExpiry(t *testing.T) {
	store := cache.NewMemory()
	now := time.Now()
	store.SetNow(func() time.Time { return now })

	calls := 0
	item := menu.Link("Inbox", "/inbox").
		WithBadge(menu.NewBadgeFunc(func(*types.Request) (any, error) {
			calls++
			return calls, nil
		}, types.BadgeInfo)).
		CacheBadge(30 * time.Second)
	tree := []menu.Node{menu.NewSection("Main", item)}

	r := New(store, "test")
	if _, err := r.Serialize(tree, nil); err != nil {
		t.Fatalf("Serialize() error = %v, want nil", err)
	}
	if _, err := r.Serialize(tree, nil); err != nil {
		t.Fatalf("Serialize() error = %v, want nil", err)
	}
	if calls != 1 {
		t.Fatalf("badge invoked %d times before expiry, want 1", calls)
	}

	now = now.Add(31 * time.Second)
	if _, err := r.Serialize(tree, nil); err != nil {
		t.Fatalf("Serialize() after expiry error = %v, want nil", err)
	}
	if calls != 2 {
		t.Errorf("badge invoked %d times after expiry, want 2", calls)
	}
}

func TestCaching_StoreFailureDegradesToUncached(t *testing.T) {
	calls := 0
	item := menu.Link("Inbox", "/inbox").
		WithBadge(menu.NewBadgeFunc(func(*types.Request) (any, error) {
			calls++
			return calls, nil
		}, types.BadgeInfo)).
		CacheBadge(time.Minute)
	tree := []menu.Node{menu.NewSection("Main", item)}

	r := New(failingStore{}, "test")
	for i := 0; i < 2; i++ {
		entries, err := r.Serialize(tree, nil)
		if err != nil {
			t.Fatalf("Serialize() #%d error = %v, want degraded success", i+1, err)
		}
		if entries[0].Items[0].Badge == nil {
			t.Fatalf("Serialize() #%d badge = nil, want value", i+1)
		}
	}
	if calls != 2 {
		t.Errorf("badge invoked %d times with failing store, want 2 (uncached)", calls)
	}
}

func TestCaching_UncachedWithoutTTL(t *testing.T) {
	calls := 0
	item := menu.Link("Inbox", "/inbox").
		WithBadge(menu.NewBadgeFunc(func(*types.Request) (any, error) {
			calls++
			return calls, nil
		}, types.BadgeInfo))
	tree := []menu.Node{menu.NewSection("Main", item)}

	r := New(cache.NewMemory(), "test")
	for i := 0; i < 3; i++ {
		if _, err := r.Serialize(tree, nil); err != nil {
			t.Fatalf("Serialize() error = %v, want nil", err)
		}
	}
	if calls != 3 {
		t.Errorf("badge invoked %d times without TTL, want 3", calls)
	}
}

func TestClearBadges_WipesNamespace(t *testing.T) {
	calls := 0
	item := menu.Link("Inbox", "/inbox").
		WithBadge(menu.NewBadgeFunc(func(*types.Request) (any, error) {
			calls++
			return calls, nil
		}, types.BadgeInfo)).
		CacheBadge(time.Minute)
	tree := []menu.Node{menu.NewSection("Main", item)}

	r := New(cache.NewMemory(), "test")
	if _, err := r.Serialize(tree, nil); err != nil {
		t.Fatalf("Serialize() error = %v, want nil", err)
	}
	if err := r.ClearBadges(); err != nil {
		t.Fatalf("ClearBadges() error = %v, want nil", err)
	}
	if _, err := r.Serialize(tree, nil); err != nil {
		t.Fatalf("Serialize() error = %v, want nil", err)
	}
	if calls != 2 {
		t.Errorf("badge invoked %d times after namespace clear, want 2", calls)
	}
}

func TestMemoize_ErrorNotCached(t *testing.T) {
	r := New(cache.NewMemory(), "test")
	calls := 0
	thunk := func() (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient")
		}
		return "ok", nil
	}

	if _, err := r.memoize("test:key", time.Minute, thunk); err == nil {
		t.Fatal("memoize() error = nil on failing thunk, want error")
	}
	v, err := r.memoize("test:key", time.Minute, thunk)
	if err != nil {
		t.Fatalf("memoize() retry error = %v, want nil", err)
	}
	if v != "ok" {
		t.Errorf("memoize() retry = %v, want ok", v)
	}
}
