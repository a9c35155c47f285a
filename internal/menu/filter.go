// internal/menu/filter.go
package menu

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/solatis/menukeeper/internal/types"
)

/*
 * Resource filter encoding.
 *
 * A filtered-resource item carries an ordered list of (name, value,
 * params) triples, encoded into the URL query. Multiple filters compose
 * conjunctively and preserve declaration order.
 *
 * Encoding format (stable contract with the resource layer):
 *   filter[<name>]=<value>
 *   filter[<name>][params][<i>]=<param>
 *
 * Why not url.Values: Values.Encode sorts keys alphabetically, which
 * destroys declaration order. Encoding by hand keeps the query segment
 * byte-stable for identical filter lists.
 */

// Filter is one (name, value, params) filter triple on a resource item.
type Filter struct {
	Name   string
	Value  string
	Params []string
}

// EncodeFilters encodes filter triples into a URL query segment in
// declaration order. Returns "" for an empty list.
func EncodeFilters(filters []Filter) string {
	if len(filters) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, f := range filters {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString("filter%5B")
		sb.WriteString(url.QueryEscape(f.Name))
		sb.WriteString("%5D=")
		sb.WriteString(url.QueryEscape(f.Value))
		for j, p := range f.Params {
			sb.WriteString("&filter%5B")
			sb.WriteString(url.QueryEscape(f.Name))
			sb.WriteString("%5D%5Bparams%5D%5B")
			sb.WriteString(strconv.Itoa(j))
			sb.WriteString("%5D=")
			sb.WriteString(url.QueryEscape(p))
		}
	}
	return sb.String()
}

// validateFilters enforces the per-item filter limit.
func validateFilters(filters []Filter) error {
	if len(filters) > types.MaxFilterCount {
		return types.ErrTooManyFilters
	}
	return nil
}
