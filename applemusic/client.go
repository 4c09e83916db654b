// Package applemusic is the endpoint catalog: typed bindings for every
// catalog, library, rating, personal and storefront endpoint, each a fixed
// instantiation of the generic engine verbs.
package applemusic

import (
	"context"
	"io"
	"log/slog"

	"github.com/sydlexius/amkit/engine"
	"github.com/sydlexius/amkit/resource"
	"github.com/sydlexius/amkit/response"
	"github.com/sydlexius/amkit/transport"
)

// Client groups the endpoint bindings. It holds no per-user state: user
// tokens are passed per call, so one Client serves many users concurrently.
type Client struct {
	Catalog     *Catalog
	Library     *Library
	Ratings     *Ratings
	Me          *Personal
	Storefronts *Storefronts

	closer io.Closer
}

// NewClient builds a Client over any engine transport.
func NewClient(t engine.Transport, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := engine.New(t, logger)
	c := &Client{
		Catalog:     newCatalog(e),
		Library:     newLibrary(e),
		Ratings:     newRatings(e),
		Me:          &Personal{e: e},
		Storefronts: &Storefronts{e: e},
	}
	if closer, ok := t.(io.Closer); ok {
		c.closer = closer
	}
	return c
}

// New builds a Client over the HTTP transport.
func New(opts transport.Options) (*Client, error) {
	t, err := transport.New(opts)
	if err != nil {
		return nil, err
	}
	return NewClient(t, opts.Logger), nil
}

// Close releases the transport's connections.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// CatalogResource binds the catalog endpoints of one resource type. R is the
// envelope the endpoints decode into and N the resource's relationship names.
type CatalogResource[R any, N ~string] struct {
	e   *engine.Engine
	typ resource.Type
}

// Type returns the bound resource type.
func (r CatalogResource[R, N]) Type() resource.Type { return r.typ }

// Get fetches catalog/{storefront}/{type}/{id}.
func (r CatalogResource[R, N]) Get(ctx context.Context, storefront, id string, include []N, opts ...Option) (*R, error) {
	o := collect(opts)
	return engine.FetchResource[R](ctx, r.e, engine.Catalog(storefront), r.typ, id, include, o.locale)
}

// List fetches several resources by id. WithFilter selectors may be added
// to or replace the ids.
func (r CatalogResource[R, N]) List(ctx context.Context, storefront string, ids []string, include []N, opts ...Option) (*R, error) {
	o := collect(opts)
	return engine.FetchMultiple[R](ctx, r.e, engine.Catalog(storefront), r.typ, ids, include, o.locale, o.filters)
}

// Related fetches one page of a named relationship. Tracks relationships
// hold both songs and music videos, so the page is a mixed envelope.
func (r CatalogResource[R, N]) Related(ctx context.Context, storefront, id string, rel N, opts ...Option) (*response.Mixed, error) {
	o := collect(opts)
	return engine.FetchResourceRelationship[response.Mixed](ctx, r.e, engine.Catalog(storefront), r.typ, id, rel, o.page, o.locale)
}

// LibraryResource binds the me/library endpoints of one resource type.
type LibraryResource[R any, N ~string] struct {
	e   *engine.Engine
	typ resource.Type
}

// Type returns the bound resource type.
func (r LibraryResource[R, N]) Type() resource.Type { return r.typ }

// Get fetches me/library/{type}/{id}.
func (r LibraryResource[R, N]) Get(ctx context.Context, userToken, id string, include []N, opts ...Option) (*R, error) {
	o := collect(opts)
	return engine.FetchResource[R](ctx, r.e, engine.Library(userToken), r.typ, id, include, o.locale)
}

// List fetches several library resources by id.
func (r LibraryResource[R, N]) List(ctx context.Context, userToken string, ids []string, include []N, opts ...Option) (*R, error) {
	o := collect(opts)
	return engine.FetchMultiple[R](ctx, r.e, engine.Library(userToken), r.typ, ids, include, o.locale, o.filters)
}

// All fetches one page of the whole library collection.
func (r LibraryResource[R, N]) All(ctx context.Context, userToken string, include []N, opts ...Option) (*R, error) {
	o := collect(opts)
	return engine.FetchAll[R](ctx, r.e, engine.Library(userToken), r.typ, include, o.page, o.locale)
}

// Related fetches a library relationship. Library relationships page by
// limit only; an offset passed through opts is rejected.
func (r LibraryResource[R, N]) Related(ctx context.Context, userToken, id string, rel N, limit int, opts ...Option) (*response.Mixed, error) {
	o := collect(opts)
	if limit != 0 {
		o.page.Limit = limit
	}
	return engine.FetchResourceRelationship[response.Mixed](ctx, r.e, engine.Library(userToken), r.typ, id, rel, o.page, o.locale)
}
