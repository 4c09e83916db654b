package applemusic

import (
	"context"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/sydlexius/amkit/engine"
	"github.com/sydlexius/amkit/query"
	"github.com/sydlexius/amkit/resource"
	"github.com/sydlexius/amkit/response"
)

// Personal holds the user endpoints that are not a plain library
// collection: history, recommendations, library search and mutation, and
// the user's storefront.
type Personal struct {
	e *engine.Engine
}

// HeavyRotation fetches the resources the user has played most recently
// and most often.
func (p *Personal) HeavyRotation(ctx context.Context, userToken string, opts ...Option) (*response.Mixed, error) {
	scope := engine.Personal(userToken)
	return engine.Get[response.Mixed](ctx, p.e, scope, scope.Path("history", "heavy-rotation"), collect(opts).params())
}

// RecentlyPlayed fetches the albums, playlists and stations played recently.
func (p *Personal) RecentlyPlayed(ctx context.Context, userToken string, opts ...Option) (*response.Mixed, error) {
	scope := engine.Personal(userToken)
	return engine.Get[response.Mixed](ctx, p.e, scope, scope.Path("recent", "played"), collect(opts).params())
}

// RecentRadioStations fetches the radio stations played recently.
func (p *Personal) RecentRadioStations(ctx context.Context, userToken string, opts ...Option) (*response.Stations, error) {
	scope := engine.Personal(userToken)
	return engine.Get[response.Stations](ctx, p.e, scope, scope.Path("recent", "radio-stations"), collect(opts).params())
}

// RecentlyAdded fetches the library resources added recently.
func (p *Personal) RecentlyAdded(ctx context.Context, userToken string, opts ...Option) (*response.Mixed, error) {
	scope := engine.Library(userToken)
	return engine.Get[response.Mixed](ctx, p.e, scope, scope.Path("recently-added"), collect(opts).params())
}

// SearchLibrary searches the user's library. types must be library types.
func (p *Personal) SearchLibrary(ctx context.Context, userToken, term string, types []resource.Type, opts ...Option) (*response.LibrarySearch, error) {
	const op = "SearchLibrary"
	if strings.TrimSpace(term) == "" {
		return nil, &engine.ErrInvalidArgument{Op: op, Arg: "term", Reason: "must not be blank"}
	}
	if bad, found := lo.Find(types, func(t resource.Type) bool { return !t.IsLibrary() }); found {
		return nil, &engine.ErrInvalidArgument{Op: op, Arg: "types", Reason: "not a library type: " + string(bad)}
	}
	scope := engine.Library(userToken)
	q := query.New().Add(query.KeyTerm, term).Types(stringsOf(types)...).Merge(collect(opts).params())
	return engine.Get[response.LibrarySearch](ctx, p.e, scope, scope.Path("search"), q)
}

// AddToLibrary adds catalog resources to the user's library, keyed by kind.
func (p *Personal) AddToLibrary(ctx context.Context, userToken string, ids map[resource.LibraryType][]string) (*response.Empty, error) {
	const op = "AddToLibrary"
	kinds := lo.Keys(ids)
	slices.Sort(kinds)
	q := query.New()
	for _, kind := range kinds {
		if !kind.Valid() {
			return nil, &engine.ErrInvalidArgument{Op: op, Arg: "ids", Reason: "unknown library type " + string(kind)}
		}
		q.AddList("ids["+string(kind)+"]", lo.Compact(ids[kind])...)
	}
	if q.Len() == 0 {
		return nil, &engine.ErrInvalidArgument{Op: op, Arg: "ids", Reason: "must not be empty"}
	}
	scope := engine.Library(userToken)
	return engine.Post[response.Empty](ctx, p.e, scope, scope.Path(), q)
}

// CreatePlaylist creates a library playlist, optionally seeded with tracks.
func (p *Personal) CreatePlaylist(ctx context.Context, userToken string, req PlaylistCreationRequest, include []resource.LibraryPlaylistRelationship, opts ...Option) (*response.LibraryPlaylists, error) {
	const op = "CreatePlaylist"
	if strings.TrimSpace(req.Attributes.Name) == "" {
		return nil, &engine.ErrInvalidArgument{Op: op, Arg: "name", Reason: "must not be blank"}
	}
	if req.Relationships != nil {
		if err := checkTracks(op, req.Relationships.Tracks.Data); err != nil {
			return nil, err
		}
	}
	q := query.New().Include(stringsOf(include)...).Locale(collect(opts).locale)
	scope := engine.Library(userToken)
	return engine.CreateResource[response.LibraryPlaylists](ctx, p.e, scope, scope.Path("playlists"), q, req)
}

// AddTracksToPlaylist appends tracks to a library playlist.
func (p *Personal) AddTracksToPlaylist(ctx context.Context, userToken, playlistID string, tracks []PlaylistTrack) (*response.Empty, error) {
	const op = "AddTracksToPlaylist"
	if strings.TrimSpace(playlistID) == "" {
		return nil, &engine.ErrInvalidArgument{Op: op, Arg: "playlistID", Reason: "must not be blank"}
	}
	if len(tracks) == 0 {
		return nil, &engine.ErrInvalidArgument{Op: op, Arg: "tracks", Reason: "must not be empty"}
	}
	if err := checkTracks(op, tracks); err != nil {
		return nil, err
	}
	scope := engine.Library(userToken)
	return engine.CreateResource[response.Empty](ctx, p.e, scope, scope.Path("playlists", playlistID, "tracks"), nil, PlaylistTracksRequest{Data: tracks})
}

func checkTracks(op string, tracks []PlaylistTrack) error {
	for _, t := range tracks {
		if strings.TrimSpace(t.ID) == "" {
			return &engine.ErrInvalidArgument{Op: op, Arg: "tracks", Reason: "must not contain blank ids"}
		}
		if !slices.Contains(trackTypes, t.Type) {
			return &engine.ErrInvalidArgument{Op: op, Arg: "tracks", Reason: "unsupported track type " + string(t.Type)}
		}
	}
	return nil
}

// Recommendation fetches one recommendation.
func (p *Personal) Recommendation(ctx context.Context, userToken, id string, opts ...Option) (*response.Recommendations, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &engine.ErrInvalidArgument{Op: "Recommendation", Arg: "id", Reason: "must not be blank"}
	}
	scope := engine.Personal(userToken)
	return engine.Get[response.Recommendations](ctx, p.e, scope, scope.Path("recommendations", id), collect(opts).params())
}

// Recommendations fetches several recommendations by id.
func (p *Personal) Recommendations(ctx context.Context, userToken string, ids []string, opts ...Option) (*response.Recommendations, error) {
	if err := requireAll("Recommendations", "ids", ids); err != nil {
		return nil, err
	}
	scope := engine.Personal(userToken)
	q := query.New().IDs(ids...).Merge(collect(opts).params())
	return engine.Get[response.Recommendations](ctx, p.e, scope, scope.Path("recommendations"), q)
}

// DefaultRecommendations fetches the user's default recommendations. An
// empty kind returns every kind.
func (p *Personal) DefaultRecommendations(ctx context.Context, userToken string, kind resource.RecommendationType, opts ...Option) (*response.Recommendations, error) {
	scope := engine.Personal(userToken)
	q := query.New().Add("type", string(kind)).Merge(collect(opts).params())
	return engine.Get[response.Recommendations](ctx, p.e, scope, scope.Path("recommendations"), q)
}

// Storefront fetches the storefront of the user's account.
func (p *Personal) Storefront(ctx context.Context, userToken string, opts ...Option) (*response.Storefronts, error) {
	scope := engine.Personal(userToken)
	return engine.Get[response.Storefronts](ctx, p.e, scope, scope.Path("storefront"), query.New().Locale(collect(opts).locale))
}
