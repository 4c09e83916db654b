package applemusic

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/sydlexius/amkit/engine"
	"github.com/sydlexius/amkit/query"
	"github.com/sydlexius/amkit/resource"
	"github.com/sydlexius/amkit/response"
)

// Catalog holds the catalog/{storefront} endpoints.
type Catalog struct {
	Activities    CatalogResource[response.Activities, resource.ActivityRelationship]
	Albums        CatalogResource[response.Albums, resource.AlbumRelationship]
	AppleCurators CatalogResource[response.AppleCurators, resource.AppleCuratorRelationship]
	Artists       CatalogResource[response.Artists, resource.ArtistRelationship]
	Curators      CatalogResource[response.Curators, resource.CuratorRelationship]
	Genres        CatalogResource[response.Genres, resource.NoRelationship]
	MusicVideos   CatalogResource[response.MusicVideos, resource.MusicVideoRelationship]
	Playlists     CatalogResource[response.Playlists, resource.PlaylistRelationship]
	Songs         CatalogResource[response.Songs, resource.SongRelationship]
	Stations      CatalogResource[response.Stations, resource.NoRelationship]

	e *engine.Engine
}

func newCatalog(e *engine.Engine) *Catalog {
	return &Catalog{
		Activities:    CatalogResource[response.Activities, resource.ActivityRelationship]{e, resource.TypeActivities},
		Albums:        CatalogResource[response.Albums, resource.AlbumRelationship]{e, resource.TypeAlbums},
		AppleCurators: CatalogResource[response.AppleCurators, resource.AppleCuratorRelationship]{e, resource.TypeAppleCurators},
		Artists:       CatalogResource[response.Artists, resource.ArtistRelationship]{e, resource.TypeArtists},
		Curators:      CatalogResource[response.Curators, resource.CuratorRelationship]{e, resource.TypeCurators},
		Genres:        CatalogResource[response.Genres, resource.NoRelationship]{e, resource.TypeGenres},
		MusicVideos:   CatalogResource[response.MusicVideos, resource.MusicVideoRelationship]{e, resource.TypeMusicVideos},
		Playlists:     CatalogResource[response.Playlists, resource.PlaylistRelationship]{e, resource.TypePlaylists},
		Songs:         CatalogResource[response.Songs, resource.SongRelationship]{e, resource.TypeSongs},
		Stations:      CatalogResource[response.Stations, resource.NoRelationship]{e, resource.TypeStations},
		e:             e,
	}
}

// SongsByISRC fetches the songs carrying any of the given ISRCs.
func (c *Catalog) SongsByISRC(ctx context.Context, storefront string, isrcs []string, include []resource.SongRelationship, opts ...Option) (*response.Songs, error) {
	if err := requireAll("SongsByISRC", "isrcs", isrcs); err != nil {
		return nil, err
	}
	return c.Songs.List(ctx, storefront, nil, include, append([]Option{WithFilter("isrc", isrcs...)}, opts...)...)
}

// MusicVideosByISRC fetches the music videos carrying any of the given ISRCs.
func (c *Catalog) MusicVideosByISRC(ctx context.Context, storefront string, isrcs []string, include []resource.MusicVideoRelationship, opts ...Option) (*response.MusicVideos, error) {
	if err := requireAll("MusicVideosByISRC", "isrcs", isrcs); err != nil {
		return nil, err
	}
	return c.MusicVideos.List(ctx, storefront, nil, include, append([]Option{WithFilter("isrc", isrcs...)}, opts...)...)
}

// AlbumTracks fetches a page of an album's songs and music videos.
func (c *Catalog) AlbumTracks(ctx context.Context, storefront, id string, opts ...Option) (*response.Mixed, error) {
	return c.Albums.Related(ctx, storefront, id, resource.AlbumTracks, opts...)
}

// PlaylistTracks fetches a page of a playlist's songs and music videos.
func (c *Catalog) PlaylistTracks(ctx context.Context, storefront, id string, opts ...Option) (*response.Mixed, error) {
	return c.Playlists.Related(ctx, storefront, id, resource.PlaylistTracks, opts...)
}

// ArtistAlbums fetches a page of an artist's albums.
func (c *Catalog) ArtistAlbums(ctx context.Context, storefront, id string, opts ...Option) (*response.Albums, error) {
	return artistRelated[response.Albums](ctx, c, storefront, id, resource.ArtistAlbums, opts)
}

// ArtistSongs fetches a page of an artist's songs.
func (c *Catalog) ArtistSongs(ctx context.Context, storefront, id string, opts ...Option) (*response.Songs, error) {
	return artistRelated[response.Songs](ctx, c, storefront, id, resource.ArtistSongs, opts)
}

// ArtistPlaylists fetches a page of the playlists featuring an artist.
func (c *Catalog) ArtistPlaylists(ctx context.Context, storefront, id string, opts ...Option) (*response.Playlists, error) {
	return artistRelated[response.Playlists](ctx, c, storefront, id, resource.ArtistPlaylists, opts)
}

func artistRelated[T any](ctx context.Context, c *Catalog, storefront, id string, rel resource.ArtistRelationship, opts []Option) (*T, error) {
	o := collect(opts)
	return engine.FetchResourceRelationship[T](ctx, c.e, engine.Catalog(storefront), resource.TypeArtists, id, rel, o.page, o.locale)
}

// Charts fetches the charts of the given types. chart names a chart such as
// "most-played" and genre restricts the charts to one genre id; both may be
// empty.
func (c *Catalog) Charts(ctx context.Context, storefront string, types []resource.ChartType, chart, genre string, opts ...Option) (*response.Charts, error) {
	o := collect(opts)
	scope := engine.Catalog(storefront)
	q := query.New().
		Types(stringsOf(types)...).
		Add("chart", chart).
		Add("genre", genre).
		Merge(o.params())
	return engine.Get[response.Charts](ctx, c.e, scope, scope.Path("charts"), q)
}

// TopChartGenres fetches the genres that have top charts.
func (c *Catalog) TopChartGenres(ctx context.Context, storefront string, opts ...Option) (*response.Genres, error) {
	o := collect(opts)
	return engine.FetchAll[response.Genres, resource.NoRelationship](ctx, c.e, engine.Catalog(storefront), resource.TypeGenres, nil, o.page, o.locale)
}

// Search searches the catalog for term across the given resource types.
func (c *Catalog) Search(ctx context.Context, storefront, term string, types []resource.Type, opts ...Option) (*response.Search, error) {
	q, err := searchQuery("Search", term, types, opts)
	if err != nil {
		return nil, err
	}
	scope := engine.Catalog(storefront)
	return engine.Get[response.Search](ctx, c.e, scope, scope.Path("search"), q)
}

// SearchTop searches the catalog and returns one relevance-ranked list
// instead of per-type groups.
func (c *Catalog) SearchTop(ctx context.Context, storefront, term string, types []resource.Type, opts ...Option) (*response.TopSearch, error) {
	q, err := searchQuery("SearchTop", term, types, opts)
	if err != nil {
		return nil, err
	}
	q.Add("groups", "top").Add("with", "serverBubbles")
	scope := engine.Catalog(storefront)
	return engine.Get[response.TopSearch](ctx, c.e, scope, scope.Path("search"), q)
}

// SearchHints fetches autocomplete terms for a partial search term.
func (c *Catalog) SearchHints(ctx context.Context, storefront, term string, types []resource.Type, opts ...Option) (*response.SearchHints, error) {
	q, err := searchQuery("SearchHints", term, types, opts)
	if err != nil {
		return nil, err
	}
	scope := engine.Catalog(storefront)
	return engine.Get[response.SearchHints](ctx, c.e, scope, scope.Path("search", "hints"), q)
}

func searchQuery(op, term string, types []resource.Type, opts []Option) (*query.Builder, error) {
	if strings.TrimSpace(term) == "" {
		return nil, &engine.ErrInvalidArgument{Op: op, Arg: "term", Reason: "must not be blank"}
	}
	if bad, found := lo.Find(types, func(t resource.Type) bool { return !t.Valid() }); found {
		return nil, &engine.ErrInvalidArgument{Op: op, Arg: "types", Reason: "unknown resource type " + string(bad)}
	}
	o := collect(opts)
	return query.New().Add(query.KeyTerm, term).Types(stringsOf(types)...).Merge(o.params()), nil
}

func requireAll(op, arg string, values []string) error {
	if len(values) == 0 {
		return &engine.ErrInvalidArgument{Op: op, Arg: arg, Reason: "must not be empty"}
	}
	if lo.ContainsBy(values, func(v string) bool { return strings.TrimSpace(v) == "" }) {
		return &engine.ErrInvalidArgument{Op: op, Arg: arg, Reason: "must not contain blank values"}
	}
	return nil
}

func stringsOf[S ~string](in []S) []string {
	return lo.Map(in, func(s S, _ int) string { return string(s) })
}
