package applemusic

import (
	"context"
	"strings"

	"github.com/sydlexius/amkit/engine"
	"github.com/sydlexius/amkit/resource"
	"github.com/sydlexius/amkit/response"
)

// RatingResource binds the me/ratings endpoints of one resource type.
type RatingResource struct {
	e   *engine.Engine
	typ resource.Type
}

// Type returns the rated resource type.
func (r RatingResource) Type() resource.Type { return r.typ }

// Get fetches the user's rating of one resource.
func (r RatingResource) Get(ctx context.Context, userToken, id string, opts ...Option) (*response.Ratings, error) {
	o := collect(opts)
	return engine.FetchResource[response.Ratings, resource.NoRelationship](ctx, r.e, engine.Ratings(userToken), r.typ, id, nil, o.locale)
}

// List fetches the user's ratings of several resources.
func (r RatingResource) List(ctx context.Context, userToken string, ids []string, opts ...Option) (*response.Ratings, error) {
	o := collect(opts)
	return engine.FetchMultiple[response.Ratings, resource.NoRelationship](ctx, r.e, engine.Ratings(userToken), r.typ, ids, nil, o.locale, o.filters)
}

// Put sets the user's rating, replacing any existing one. value must be
// resource.RatingLove or resource.RatingDislike.
func (r RatingResource) Put(ctx context.Context, userToken, id string, value int) (*response.Ratings, error) {
	if value != resource.RatingLove && value != resource.RatingDislike {
		return nil, &engine.ErrInvalidArgument{Op: "PutRating", Arg: "value", Reason: "must be 1 (love) or -1 (dislike)"}
	}
	return engine.MutateRating[response.Ratings](ctx, r.e, engine.Ratings(userToken), r.typ, id, NewRatingRequest(value))
}

// Delete removes the user's rating.
func (r RatingResource) Delete(ctx context.Context, userToken, id string) (*response.Root, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &engine.ErrInvalidArgument{Op: "DeleteRating", Arg: "id", Reason: "must not be blank"}
	}
	scope := engine.Ratings(userToken)
	return engine.DeleteResource(ctx, r.e, scope, scope.Path(scope.Collection(r.typ), id))
}

// Ratings holds the rating bindings of every ratable type.
type Ratings struct {
	Albums             RatingResource
	MusicVideos        RatingResource
	Playlists          RatingResource
	Songs              RatingResource
	Stations           RatingResource
	LibraryMusicVideos RatingResource
	LibraryPlaylists   RatingResource
	LibrarySongs       RatingResource
}

func newRatings(e *engine.Engine) *Ratings {
	return &Ratings{
		Albums:             RatingResource{e, resource.TypeAlbums},
		MusicVideos:        RatingResource{e, resource.TypeMusicVideos},
		Playlists:          RatingResource{e, resource.TypePlaylists},
		Songs:              RatingResource{e, resource.TypeSongs},
		Stations:           RatingResource{e, resource.TypeStations},
		LibraryMusicVideos: RatingResource{e, resource.TypeLibraryMusicVideos},
		LibraryPlaylists:   RatingResource{e, resource.TypeLibraryPlaylists},
		LibrarySongs:       RatingResource{e, resource.TypeLibrarySongs},
	}
}

// For returns the binding of a ratable type.
func (r *Ratings) For(t resource.Type) (RatingResource, bool) {
	for _, b := range r.all() {
		if b.typ == t {
			return b, true
		}
	}
	return RatingResource{}, false
}

func (r *Ratings) all() []RatingResource {
	return []RatingResource{
		r.Albums, r.MusicVideos, r.Playlists, r.Songs, r.Stations,
		r.LibraryMusicVideos, r.LibraryPlaylists, r.LibrarySongs,
	}
}
