package applemusic

import (
	"github.com/sydlexius/amkit/query"
)

// Option adjusts a single call.
type Option func(*callOptions)

type callOptions struct {
	locale  string
	page    query.Page
	filters *query.Builder
}

func collect(opts []Option) callOptions {
	var o callOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// params returns the page and locale facets as a fresh builder.
func (o callOptions) params() *query.Builder {
	return query.New().Page(o.page).Locale(o.locale)
}

// WithLocale sets the l parameter, a BCP 47 language tag.
func WithLocale(tag string) Option {
	return func(o *callOptions) { o.locale = tag }
}

// WithLimit sets the page size.
func WithLimit(n int) Option {
	return func(o *callOptions) { o.page.Limit = n }
}

// WithOffset sets the page offset.
func WithOffset(n int) Option {
	return func(o *callOptions) { o.page.Offset, o.page.OffsetSet = n, true }
}

// WithPage sets limit and offset together.
func WithPage(p query.Page) Option {
	return func(o *callOptions) { o.page = p }
}

// WithFilter adds filter[name]=values to a multiple-resource fetch.
func WithFilter(name string, values ...string) Option {
	return func(o *callOptions) {
		if o.filters == nil {
			o.filters = query.New()
		}
		o.filters.Filter(name, values...)
	}
}
