// Package menudef loads declarative menu definitions from YAML files.
//
// Hosts that prefer configuration over code describe their navigation
// tree in a YAML document; Build turns it into the same node values a
// programmatic registration would produce. Role lists become visibility
// predicates, badge queries become callbacks against a host-supplied
// count source.
package menudef

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the root of a menu definition document.
type File struct {
	Menu     []SectionDef `yaml:"menu"`
	UserMenu []ItemDef    `yaml:"user_menu"`
}

// SectionDef describes a top-level navigation section.
type SectionDef struct {
	Section     string            `yaml:"section"`
	Path        string            `yaml:"path"`
	Icon        string            `yaml:"icon"`
	Collapsible bool              `yaml:"collapsible"`
	Collapsed   bool              `yaml:"collapsed"`
	StateID     string            `yaml:"state_id"`
	CanSee      []string          `yaml:"can_see"`
	CacheAuth   string            `yaml:"cache_auth"`
	Badge       *BadgeDef         `yaml:"badge"`
	Meta        map[string]string `yaml:"meta"`
	Groups      []GroupDef        `yaml:"groups"`
	Items       []ItemDef         `yaml:"items"`
}

// GroupDef describes a group of items within a section.
type GroupDef struct {
	Group       string            `yaml:"group"`
	Icon        string            `yaml:"icon"`
	Collapsible bool              `yaml:"collapsible"`
	Collapsed   bool              `yaml:"collapsed"`
	StateID     string            `yaml:"state_id"`
	CanSee      []string          `yaml:"can_see"`
	CacheAuth   string            `yaml:"cache_auth"`
	Badge       *BadgeDef         `yaml:"badge"`
	Meta        map[string]string `yaml:"meta"`
	Items       []ItemDef         `yaml:"items"`
}

// ItemDef describes a navigation leaf. Exactly one of URL, Resource or
// Dashboard selects the target; External marks URL as leaving the app.
type ItemDef struct {
	Label     string            `yaml:"label"`
	URL       string            `yaml:"url"`
	Resource  string            `yaml:"resource"`
	Dashboard string            `yaml:"dashboard"`
	External  bool              `yaml:"external"`
	Icon      string            `yaml:"icon"`
	CanSee    []string          `yaml:"can_see"`
	CacheAuth string            `yaml:"cache_auth"`
	Badge     *BadgeDef         `yaml:"badge"`
	Filters   []FilterDef       `yaml:"filters"`
	Meta      map[string]string `yaml:"meta"`
}

// BadgeDef describes a badge. Exactly one of Value (static) or Query
// (named count query against the badge source) must be set.
type BadgeDef struct {
	Value string `yaml:"value"`
	Query string `yaml:"query"`
	Style string `yaml:"style"`
	TTL   string `yaml:"ttl"`
}

// FilterDef describes one pre-applied list filter on a resource item.
type FilterDef struct {
	Name   string   `yaml:"name"`
	Value  string   `yaml:"value"`
	Params []string `yaml:"params"`
}

// Load reads and decodes a menu definition file. Unknown fields are
// rejected so typos in definitions fail at startup instead of silently
// dropping entries.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu definition: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode decodes a menu definition document from a reader.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse menu definition: %w", err)
	}
	return &file, nil
}

// parseTTL parses an optional duration string ("30s", "5m"). Empty
// means no caching.
func parseTTL(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", field, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must not be negative, got %v", field, d)
	}
	return d, nil
}
