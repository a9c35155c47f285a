// internal/menudef/build.go
package menudef

import (
	"fmt"
	"sort"
	"time"

	"github.com/solatis/menukeeper/internal/menu"
	"github.com/solatis/menukeeper/internal/types"
)

// BadgeSource executes a named count query for dynamic badges.
// Implemented by *db.BadgeQueries; nil is allowed when the definition
// file uses no query badges.
type BadgeSource interface {
	Count(name string) (int64, error)
}

// Build turns a loaded definition into registrable nodes: the main menu
// tree and the actor menu amendments. Role lists become AnyRole
// predicates; query badges become callbacks against source.
func Build(file *File, source BadgeSource) ([]menu.Node, []menu.Item, error) {
	nodes := make([]menu.Node, 0, len(file.Menu))
	for _, def := range file.Menu {
		section, err := buildSection(def, source)
		if err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, section)
	}

	userItems := make([]menu.Item, 0, len(file.UserMenu))
	for _, def := range file.UserMenu {
		item, err := buildItem(def, source)
		if err != nil {
			return nil, nil, fmt.Errorf("user_menu: %w", err)
		}
		userItems = append(userItems, item)
	}

	return nodes, userItems, nil
}

func buildSection(def SectionDef, source BadgeSource) (menu.Section, error) {
	if def.Section == "" {
		return menu.Section{}, fmt.Errorf("section requires a name")
	}
	if def.Path != "" && def.Collapsible {
		// Caught here for a file/line-free but named error at load time;
		// the node itself would also fail validation.
		return menu.Section{}, fmt.Errorf("section %q: %w", def.Section, types.ErrCollapsiblePathConflict)
	}
	if len(def.Groups) > 0 && def.Path != "" {
		return menu.Section{}, fmt.Errorf("section %q: direct navigation sections cannot contain groups", def.Section)
	}

	children := make([]menu.Node, 0, len(def.Groups)+len(def.Items))
	for _, g := range def.Groups {
		group, err := buildGroup(g, source)
		if err != nil {
			return menu.Section{}, fmt.Errorf("section %q: %w", def.Section, err)
		}
		children = append(children, group)
	}
	for _, it := range def.Items {
		item, err := buildItem(it, source)
		if err != nil {
			return menu.Section{}, fmt.Errorf("section %q: %w", def.Section, err)
		}
		children = append(children, item)
	}

	section := menu.NewSection(def.Section, children...)
	if def.Collapsible {
		section = section.Collapsible()
	}
	if def.Collapsed {
		section = section.Collapsed()
	}
	if def.Path != "" {
		section = section.WithPath(def.Path)
	}
	if def.Icon != "" {
		section = section.WithIcon(def.Icon)
	}
	if def.StateID != "" {
		section = section.WithStateID(def.StateID)
	}
	if len(def.CanSee) > 0 {
		section = section.CanSee(menu.AnyRole(def.CanSee...))
		ttl, err := parseTTL("cache_auth", def.CacheAuth)
		if err != nil {
			return menu.Section{}, fmt.Errorf("section %q: %w", def.Section, err)
		}
		section = section.CacheAuth(ttl)
	}
	if def.Badge != nil {
		badge, ttl, err := buildBadge(*def.Badge, source)
		if err != nil {
			return menu.Section{}, fmt.Errorf("section %q: %w", def.Section, err)
		}
		section = section.WithBadge(badge).CacheBadge(ttl)
	}
	for _, k := range sortedMetaKeys(def.Meta) {
		section = section.WithMeta(k, def.Meta[k])
	}
	return section, nil
}

func buildGroup(def GroupDef, source BadgeSource) (menu.Group, error) {
	if def.Group == "" {
		return menu.Group{}, fmt.Errorf("group requires a name")
	}

	items := make([]menu.Item, 0, len(def.Items))
	for _, it := range def.Items {
		item, err := buildItem(it, source)
		if err != nil {
			return menu.Group{}, fmt.Errorf("group %q: %w", def.Group, err)
		}
		items = append(items, item)
	}

	group := menu.NewGroup(def.Group, items...)
	if def.Collapsible {
		group = group.Collapsible()
	}
	if def.Collapsed {
		group = group.Collapsed()
	}
	if def.Icon != "" {
		group = group.WithIcon(def.Icon)
	}
	if def.StateID != "" {
		group = group.WithStateID(def.StateID)
	}
	if len(def.CanSee) > 0 {
		group = group.CanSee(menu.AnyRole(def.CanSee...))
		ttl, err := parseTTL("cache_auth", def.CacheAuth)
		if err != nil {
			return menu.Group{}, fmt.Errorf("group %q: %w", def.Group, err)
		}
		group = group.CacheAuth(ttl)
	}
	if def.Badge != nil {
		badge, ttl, err := buildBadge(*def.Badge, source)
		if err != nil {
			return menu.Group{}, fmt.Errorf("group %q: %w", def.Group, err)
		}
		group = group.WithBadge(badge).CacheBadge(ttl)
	}
	for _, k := range sortedMetaKeys(def.Meta) {
		group = group.WithMeta(k, def.Meta[k])
	}
	return group, nil
}

func buildItem(def ItemDef, source BadgeSource) (menu.Item, error) {
	if def.Label == "" {
		return menu.Item{}, fmt.Errorf("item requires a label")
	}

	targets := 0
	for _, t := range []string{def.URL, def.Resource, def.Dashboard} {
		if t != "" {
			targets++
		}
	}
	if targets != 1 {
		return menu.Item{}, fmt.Errorf("item %q: exactly one of url, resource or dashboard required", def.Label)
	}
	if def.External && def.URL == "" {
		return menu.Item{}, fmt.Errorf("item %q: external requires url", def.Label)
	}
	if len(def.Filters) > 0 && def.Resource == "" {
		return menu.Item{}, fmt.Errorf("item %q: filters require resource", def.Label)
	}

	var item menu.Item
	switch {
	case def.External:
		item = menu.External(def.Label, def.URL)
	case def.URL != "":
		item = menu.Link(def.Label, def.URL)
	case def.Dashboard != "":
		item = menu.Dashboard(def.Label, def.Dashboard)
	case len(def.Filters) > 0:
		filters := make([]menu.Filter, len(def.Filters))
		for i, f := range def.Filters {
			filters[i] = menu.Filter{Name: f.Name, Value: f.Value, Params: f.Params}
		}
		item = menu.Filtered(def.Label, def.Resource, filters...)
	default:
		item = menu.Resource(def.Label, def.Resource)
	}

	if def.Icon != "" {
		item = item.WithIcon(def.Icon)
	}
	if len(def.CanSee) > 0 {
		item = item.CanSee(menu.AnyRole(def.CanSee...))
		ttl, err := parseTTL("cache_auth", def.CacheAuth)
		if err != nil {
			return menu.Item{}, fmt.Errorf("item %q: %w", def.Label, err)
		}
		item = item.CacheAuth(ttl)
	}
	if def.Badge != nil {
		badge, ttl, err := buildBadge(*def.Badge, source)
		if err != nil {
			return menu.Item{}, fmt.Errorf("item %q: %w", def.Label, err)
		}
		item = item.WithBadge(badge).CacheBadge(ttl)
	}

	for _, k := range sortedMetaKeys(def.Meta) {
		item = item.WithMeta(k, def.Meta[k])
	}

	return item, nil
}

// sortedMetaKeys returns the meta keys in sorted order. YAML maps are
// unordered; sorting keeps identical files producing identical
// serialized output.
func sortedMetaKeys(meta map[string]string) []string {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func buildBadge(def BadgeDef, source BadgeSource) (menu.Badge, time.Duration, error) {
	if (def.Value == "") == (def.Query == "") {
		return menu.Badge{}, 0, fmt.Errorf("badge: exactly one of value or query required")
	}

	style := types.BadgePrimary
	if def.Style != "" {
		style = types.BadgeType(def.Style)
		if !style.Valid() {
			return menu.Badge{}, 0, fmt.Errorf("badge: %w: %q", types.ErrUnknownBadgeType, def.Style)
		}
	}

	ttl, err := parseTTL("badge.ttl", def.TTL)
	if err != nil {
		return menu.Badge{}, 0, err
	}

	if def.Value != "" {
		return menu.NewBadge(def.Value, style), ttl, nil
	}

	if source == nil {
		return menu.Badge{}, 0, fmt.Errorf("badge: query %q requires a badge source (configure badge queries)", def.Query)
	}
	name := def.Query
	badge := menu.NewBadgeFunc(func(*types.Request) (any, error) {
		n, err := source.Count(name)
		if err != nil {
			return nil, fmt.Errorf("badge query %q: %w", name, err)
		}
		if n == 0 {
			// Zero counts render as no badge rather than a "0" pill.
			return nil, nil
		}
		return n, nil
	}, style)
	return badge, ttl, nil
}
