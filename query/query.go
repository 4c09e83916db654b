// Package query assembles request query strings from optional facets.
//
// A Builder keeps pairs in insertion order and allows repeated keys. List
// facets are joined with commas under a single key. Empty facets contribute
// nothing, so callers can pass optional values through unconditionally.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Well-known parameter keys.
const (
	KeyLimit   = "limit"
	KeyOffset  = "offset"
	KeyLocale  = "l"
	KeyInclude = "include"
	KeyIDs     = "ids"
	KeyTypes   = "types"
	KeyTerm    = "term"
)

type pair struct {
	key   string
	value string
}

// Builder accumulates query parameters. The zero value is ready to use.
type Builder struct {
	pairs []pair
}

// New returns an empty Builder.
func New() *Builder { return &Builder{} }

// Add appends key=value. An empty key or value is ignored.
func (b *Builder) Add(key, value string) *Builder {
	if key == "" || value == "" {
		return b
	}
	b.pairs = append(b.pairs, pair{key: key, value: value})
	return b
}

// AddList appends the non-empty values joined by commas under key.
func (b *Builder) AddList(key string, values ...string) *Builder {
	values = lo.Compact(values)
	if len(values) == 0 {
		return b
	}
	return b.Add(key, strings.Join(values, ","))
}

// Limit sets the page size. Values below 1 are ignored.
func (b *Builder) Limit(n int) *Builder {
	if n < 1 {
		return b
	}
	return b.Add(KeyLimit, strconv.Itoa(n))
}

// Offset sets the page offset. An explicit zero is written; negative values
// are ignored.
func (b *Builder) Offset(n int) *Builder {
	if n < 0 {
		return b
	}
	return b.Add(KeyOffset, strconv.Itoa(n))
}

// Page applies p's limit and offset, in that order.
func (b *Builder) Page(p Page) *Builder {
	b.Limit(p.Limit)
	if p.HasOffset() {
		b.Offset(p.Offset)
	}
	return b
}

// Locale sets the response language tag.
func (b *Builder) Locale(tag string) *Builder {
	return b.Add(KeyLocale, tag)
}

// Include requests relationships to be expanded inline. Duplicates are
// dropped, keeping first occurrence order.
func (b *Builder) Include(names ...string) *Builder {
	return b.AddList(KeyInclude, lo.Uniq(names)...)
}

// IDs selects resources by identifier.
func (b *Builder) IDs(ids ...string) *Builder {
	return b.AddList(KeyIDs, ids...)
}

// Types restricts the resource types of a search or chart.
func (b *Builder) Types(types ...string) *Builder {
	return b.AddList(KeyTypes, lo.Uniq(types)...)
}

// Filter adds a filter[name]=value selector.
func (b *Builder) Filter(name string, values ...string) *Builder {
	if name == "" {
		return b
	}
	return b.AddList(FilterKey(name), values...)
}

// Merge appends all pairs of other after the pairs of b.
func (b *Builder) Merge(other *Builder) *Builder {
	if other == nil {
		return b
	}
	b.pairs = append(b.pairs, other.pairs...)
	return b
}

// Len returns the number of pairs.
func (b *Builder) Len() int {
	if b == nil {
		return 0
	}
	return len(b.pairs)
}

// Has reports whether any pair uses key.
func (b *Builder) Has(key string) bool {
	if b == nil {
		return false
	}
	return lo.ContainsBy(b.pairs, func(p pair) bool { return p.key == key })
}

// Clone returns an independent copy of b.
func (b *Builder) Clone() *Builder {
	if b == nil {
		return New()
	}
	return &Builder{pairs: append([]pair(nil), b.pairs...)}
}

// Encode renders the pairs as key=value joined by '&', without a leading
// '?'. Keys and values are escaped independently; spaces become %20.
func (b *Builder) Encode() string {
	if b.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range b.pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(Escape(p.key))
		sb.WriteByte('=')
		sb.WriteString(Escape(p.value))
	}
	return sb.String()
}

func (b *Builder) String() string { return b.Encode() }

// Escape percent-encodes s as a URI data string.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// FilterKey returns the parameter key of a named filter.
func FilterKey(name string) string { return "filter[" + name + "]" }

// Page holds pagination options. A zero Limit is unset. A zero Offset is
// unset unless OffsetSet is true, which sends offset=0 explicitly.
type Page struct {
	Limit     int
	Offset    int
	OffsetSet bool
}

// HasOffset reports whether the offset was supplied.
func (p Page) HasOffset() bool { return p.OffsetSet || p.Offset != 0 }
