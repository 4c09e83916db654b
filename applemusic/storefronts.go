package applemusic

import (
	"context"

	"github.com/sydlexius/amkit/engine"
	"github.com/sydlexius/amkit/resource"
	"github.com/sydlexius/amkit/response"
)

// Storefronts holds the storefronts endpoints, which need no storefront or
// user token.
type Storefronts struct {
	e *engine.Engine
}

// Get fetches one storefront.
func (s *Storefronts) Get(ctx context.Context, id string, opts ...Option) (*response.Storefronts, error) {
	o := collect(opts)
	return engine.FetchResource[response.Storefronts, resource.NoRelationship](ctx, s.e, engine.Global(), resource.TypeStorefronts, id, nil, o.locale)
}

// List fetches several storefronts.
func (s *Storefronts) List(ctx context.Context, ids []string, opts ...Option) (*response.Storefronts, error) {
	o := collect(opts)
	return engine.FetchMultiple[response.Storefronts, resource.NoRelationship](ctx, s.e, engine.Global(), resource.TypeStorefronts, ids, nil, o.locale, o.filters)
}

// All fetches one page of every storefront, in alphabetical order.
func (s *Storefronts) All(ctx context.Context, opts ...Option) (*response.Storefronts, error) {
	o := collect(opts)
	return engine.FetchAll[response.Storefronts, resource.NoRelationship](ctx, s.e, engine.Global(), resource.TypeStorefronts, nil, o.page, o.locale)
}
