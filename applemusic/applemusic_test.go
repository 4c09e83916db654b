package applemusic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/sydlexius/amkit/devtoken"
	"github.com/sydlexius/amkit/engine"
	"github.com/sydlexius/amkit/query"
	"github.com/sydlexius/amkit/resource"
	"github.com/sydlexius/amkit/transport"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("loading fixture %s: %v", name, err)
	}
	return data
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// recorded is what the fake API saw of one request.
type recorded struct {
	method    string
	path      string
	rawQuery  string
	query     map[string][]string
	userToken string
	auth      string
	body      []byte
}

// fakeAPI serves fixed replies keyed by "METHOD /path" and records every
// request it receives.
type fakeAPI struct {
	mu       sync.Mutex
	requests []recorded
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{
		method:    r.Method,
		path:      r.URL.Path,
		rawQuery:  r.URL.RawQuery,
		query:     r.URL.Query(),
		userToken: r.Header.Get(engine.HeaderUserToken),
		auth:      r.Header.Get("Authorization"),
		body:      body,
	})
	handler, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":[{"status":"404","code":"40400","title":"Resource Not Found"}]}`)) //nolint:errcheck
		return
	}
	handler(w, r)
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeAPI) last(t *testing.T) recorded {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("expected a request")
	}
	return f.requests[len(f.requests)-1]
}

func serveJSON(status int, body []byte) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(body) //nolint:errcheck
	}
}

func newTestClient(t *testing.T, routes map[string]func(http.ResponseWriter, *http.Request)) (*Client, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{routes: routes}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c, err := New(transport.Options{
		BaseURL: srv.URL + "/v1/",
		Tokens:  devtoken.Static("dev-token"),
		Logger:  testLogger(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { c.Close() }) //nolint:errcheck
	return c, api
}

func TestSongsByISRC(t *testing.T) {
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /v1/catalog/us/songs": serveJSON(http.StatusOK, loadFixture(t, "songs_isrc.json")),
	})

	resp, err := c.Catalog.SongsByISRC(context.Background(), "us", []string{"USSM19902991"},
		[]resource.SongRelationship{resource.SongAlbums}, WithLocale("en-US"))
	if err != nil {
		t.Fatalf("SongsByISRC: %v", err)
	}

	req := api.last(t)
	if req.rawQuery != "filter%5Bisrc%5D=USSM19902991&include=albums&l=en-US" {
		t.Errorf("unexpected query %s", req.rawQuery)
	}
	if req.auth != "Bearer dev-token" {
		t.Errorf("expected bearer developer token, got %q", req.auth)
	}
	if req.userToken != "" {
		t.Errorf("catalog request carried user token %q", req.userToken)
	}

	song, ok := resp.First()
	if !ok {
		t.Fatal("expected a song")
	}
	if song.Attributes.ISRC != "USSM19902991" {
		t.Errorf("expected isrc USSM19902991, got %s", song.Attributes.ISRC)
	}
	if got := song.Attributes.ReleaseDate.String(); got != "1982-11-30" {
		t.Errorf("expected release date 1982-11-30, got %s", got)
	}
}

func TestSongsByISRCRequiresValues(t *testing.T) {
	c, api := newTestClient(t, nil)
	for _, isrcs := range [][]string{nil, {"USSM19902991", " "}} {
		if _, err := c.Catalog.SongsByISRC(context.Background(), "us", isrcs, nil); !engine.IsInvalidArgument(err) {
			t.Errorf("isrcs %q: expected invalid argument, got %v", isrcs, err)
		}
	}
	if api.calls() != 0 {
		t.Errorf("expected no requests, got %d", api.calls())
	}
}

func TestAlbumTracksMixed(t *testing.T) {
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /v1/catalog/us/albums/1590511907/tracks": serveJSON(http.StatusOK, loadFixture(t, "album_tracks.json")),
	})

	resp, err := c.Catalog.AlbumTracks(context.Background(), "us", "1590511907", WithLimit(2), WithOffset(4))
	if err != nil {
		t.Fatalf("AlbumTracks: %v", err)
	}
	if got := api.last(t).rawQuery; got != "limit=2&offset=4" {
		t.Errorf("expected limit=2&offset=4, got %s", got)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(resp.Data))
	}
	if _, ok := resp.Data[0].(*resource.Song); !ok {
		t.Errorf("expected first track to be a song, got %T", resp.Data[0])
	}
	if mv, ok := resp.Data[1].(*resource.MusicVideo); !ok {
		t.Errorf("expected second track to be a music video, got %T", resp.Data[1])
	} else if mv.Attributes.Name != "Billie Jean (Official Video)" {
		t.Errorf("unexpected music video %s", mv.Attributes.Name)
	}
	if !resp.HasNext() {
		t.Error("expected a next cursor")
	}
}

func TestArtistAlbumsTyped(t *testing.T) {
	body := []byte(`{"data":[{"id":"1590511907","type":"albums","attributes":{"name":"Thriller"}}]}`)
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /v1/catalog/gb/artists/32940/albums": serveJSON(http.StatusOK, body),
	})

	resp, err := c.Catalog.ArtistAlbums(context.Background(), "gb", "32940")
	if err != nil {
		t.Fatalf("ArtistAlbums: %v", err)
	}
	if api.last(t).rawQuery != "" {
		t.Errorf("expected no query, got %s", api.last(t).rawQuery)
	}
	if len(resp.Data) != 1 || resp.Data[0].Attributes.Name != "Thriller" {
		t.Errorf("unexpected albums %+v", resp.Data)
	}
}

func TestLibraryAllPaging(t *testing.T) {
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /v1/me/library/songs": serveJSON(http.StatusOK, loadFixture(t, "library_songs.json")),
	})

	resp, err := c.Library.Songs.All(context.Background(), "user-token", nil, WithPage(query.Page{Limit: 25, Offset: 50}))
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	req := api.last(t)
	if req.rawQuery != "limit=25&offset=50" {
		t.Errorf("expected limit=25&offset=50, got %s", req.rawQuery)
	}
	if req.userToken != "user-token" {
		t.Errorf("expected user token header, got %q", req.userToken)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(resp.Data))
	}
	if resp.Data[1].Attributes.Name != "Beat It" {
		t.Errorf("expected Beat It, got %s", resp.Data[1].Attributes.Name)
	}
}

func TestLibraryRelatedLimitOnly(t *testing.T) {
	body := []byte(`{"data":[{"id":"i.PkdZbQXsPJ4DX","type":"library-songs","attributes":{"name":"Billie Jean"}}]}`)
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /v1/me/library/albums/l.dxAF6kT/tracks": serveJSON(http.StatusOK, body),
	})
	ctx := context.Background()

	resp, err := c.Library.Albums.Related(ctx, "user-token", "l.dxAF6kT", resource.LibraryAlbumTracks, 10)
	if err != nil {
		t.Fatalf("Related: %v", err)
	}
	if got := api.last(t).rawQuery; got != "limit=10" {
		t.Errorf("expected limit=10, got %s", got)
	}
	if _, ok := resp.Data[0].(*resource.LibrarySong); !ok {
		t.Errorf("expected a library song, got %T", resp.Data[0])
	}

	_, err = c.Library.Albums.Related(ctx, "user-token", "l.dxAF6kT", resource.LibraryAlbumTracks, 10, WithOffset(5))
	if !engine.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for offset, got %v", err)
	}
	if api.calls() != 1 {
		t.Errorf("expected the rejected call to send nothing, got %d requests", api.calls())
	}
}

func TestLibraryRequiresUserToken(t *testing.T) {
	c, api := newTestClient(t, nil)
	if _, err := c.Library.Playlists.Get(context.Background(), "", "p.1", nil); !engine.IsInvalidArgument(err) {
		t.Errorf("expected invalid argument, got %v", err)
	}
	if api.calls() != 0 {
		t.Errorf("expected no requests, got %d", api.calls())
	}
}

// ratingStore emulates me/ratings/songs with PUT upserts.
type ratingStore struct {
	mu     sync.Mutex
	values map[string]int
}

func (s *ratingStore) handle(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.Method {
	case http.MethodPut:
		var req RatingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Type != "rating" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.values[id] = req.Attributes.Value
	case http.MethodDelete:
		delete(s.values, id)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	v, ok := s.values[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Write([]byte(`{"data":[{"id":"` + id + `","type":"ratings","attributes":{"value":` + strconv.Itoa(v) + `}}]}`)) //nolint:errcheck
}

func TestRatingsLifecycle(t *testing.T) {
	store := &ratingStore{values: map[string]int{}}
	c, _ := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /v1/me/ratings/songs/1590512394":    store.handle,
		"PUT /v1/me/ratings/songs/1590512394":    store.handle,
		"DELETE /v1/me/ratings/songs/1590512394": store.handle,
	})
	ctx := context.Background()
	songs := c.Ratings.Songs

	for range 2 {
		resp, err := songs.Put(ctx, "user-token", "1590512394", resource.RatingLove)
		if err != nil {
			t.Fatalf("Put: %v", err)
		}
		if r, _ := resp.First(); r.Attributes.Value != resource.RatingLove {
			t.Errorf("expected love rating, got %d", r.Attributes.Value)
		}
	}
	if len(store.values) != 1 {
		t.Errorf("expected one stored rating, got %d", len(store.values))
	}

	got, err := songs.Get(ctx, "user-token", "1590512394")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if r, _ := got.First(); r.ID != "1590512394" {
		t.Errorf("unexpected rating id %s", r.ID)
	}

	if _, err := songs.Delete(ctx, "user-token", "1590512394"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := songs.Get(ctx, "user-token", "1590512394"); !engine.IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestRatingsValidation(t *testing.T) {
	c, api := newTestClient(t, nil)
	ctx := context.Background()
	if _, err := c.Ratings.Albums.Put(ctx, "user-token", "1", 5); !engine.IsInvalidArgument(err) {
		t.Errorf("expected invalid rating value, got %v", err)
	}
	if _, err := c.Ratings.Albums.Delete(ctx, "user-token", " "); !engine.IsInvalidArgument(err) {
		t.Errorf("expected invalid id, got %v", err)
	}
	if api.calls() != 0 {
		t.Errorf("expected no requests, got %d", api.calls())
	}
}

func TestRatingsFor(t *testing.T) {
	c, _ := newTestClient(t, nil)
	r, ok := c.Ratings.For(resource.TypeLibrarySongs)
	if !ok || r.Type() != resource.TypeLibrarySongs {
		t.Errorf("expected library-songs binding, got %v %v", r.Type(), ok)
	}
	if _, ok := c.Ratings.For(resource.TypeGenres); ok {
		t.Error("genres are not ratable")
	}
}

func TestSearchTop(t *testing.T) {
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /v1/catalog/us/search": serveJSON(http.StatusOK, loadFixture(t, "search_top.json")),
	})

	resp, err := c.Catalog.SearchTop(context.Background(), "us", "james brown",
		[]resource.Type{resource.TypeArtists, resource.TypeSongs}, WithLimit(5))
	if err != nil {
		t.Fatalf("SearchTop: %v", err)
	}
	want := "term=james%20brown&types=artists%2Csongs&limit=5&groups=top&with=serverBubbles"
	if got := api.last(t).rawQuery; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	items := resp.Results.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 ranked results, got %d", len(items))
	}
	if items[0].ResourceType() != resource.TypeArtists || items[1].ResourceType() != resource.TypeSongs {
		t.Errorf("unexpected order %s, %s", items[0].ResourceType(), items[1].ResourceType())
	}
}

func TestSearchValidation(t *testing.T) {
	c, api := newTestClient(t, nil)
	ctx := context.Background()
	if _, err := c.Catalog.Search(ctx, "us", "  ", nil); !engine.IsInvalidArgument(err) {
		t.Errorf("expected invalid term, got %v", err)
	}
	if _, err := c.Catalog.SearchHints(ctx, "us", "thr", []resource.Type{"podcasts"}); !engine.IsInvalidArgument(err) {
		t.Errorf("expected invalid types, got %v", err)
	}
	if _, err := c.Me.SearchLibrary(ctx, "user-token", "thriller", []resource.Type{resource.TypeSongs}); !engine.IsInvalidArgument(err) {
		t.Errorf("expected catalog type to be rejected for library search, got %v", err)
	}
	if api.calls() != 0 {
		t.Errorf("expected no requests, got %d", api.calls())
	}
}

func TestChartsQuery(t *testing.T) {
	body := []byte(`{"results":{"songs":[{"chart":"most-played","name":"Top Songs","orderId":"most-played:songs","data":[{"id":"1","type":"songs","attributes":{"name":"One"}}]}]}}`)
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /v1/catalog/us/charts": serveJSON(http.StatusOK, body),
	})

	resp, err := c.Catalog.Charts(context.Background(), "us", []resource.ChartType{resource.ChartSongs}, "most-played", "")
	if err != nil {
		t.Fatalf("Charts: %v", err)
	}
	if got := api.last(t).rawQuery; got != "types=songs&chart=most-played" {
		t.Errorf("expected types=songs&chart=most-played, got %s", got)
	}
	if len(resp.Results.Songs) != 1 || len(resp.Results.Songs[0].Data) != 1 {
		t.Fatalf("unexpected charts %+v", resp.Results)
	}
}

func TestAddToLibrary(t *testing.T) {
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /v1/me/library": serveJSON(http.StatusAccepted, nil),
	})

	_, err := c.Me.AddToLibrary(context.Background(), "user-token", map[resource.LibraryType][]string{
		resource.LibrarySongs:  {"1590512394"},
		resource.LibraryAlbums: {"1590511907", "", "269572838"},
	})
	if err != nil {
		t.Fatalf("AddToLibrary: %v", err)
	}
	req := api.last(t)
	if req.method != http.MethodPost {
		t.Errorf("expected POST, got %s", req.method)
	}
	want := "ids%5Balbums%5D=1590511907%2C269572838&ids%5Bsongs%5D=1590512394"
	if req.rawQuery != want {
		t.Errorf("expected %s, got %s", want, req.rawQuery)
	}
	if len(req.body) != 0 {
		t.Errorf("expected empty body, got %s", req.body)
	}
}

func TestAddToLibraryValidation(t *testing.T) {
	c, api := newTestClient(t, nil)
	ctx := context.Background()
	if _, err := c.Me.AddToLibrary(ctx, "user-token", nil); !engine.IsInvalidArgument(err) {
		t.Errorf("expected invalid argument for no ids, got %v", err)
	}
	if _, err := c.Me.AddToLibrary(ctx, "user-token", map[resource.LibraryType][]string{"stations": {"1"}}); !engine.IsInvalidArgument(err) {
		t.Errorf("expected invalid argument for unknown kind, got %v", err)
	}
	if api.calls() != 0 {
		t.Errorf("expected no requests, got %d", api.calls())
	}
}

func TestCreatePlaylist(t *testing.T) {
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /v1/me/library/playlists": serveJSON(http.StatusCreated, loadFixture(t, "playlist_created.json")),
	})

	req := PlaylistCreationRequest{
		Attributes: PlaylistCreationAttributes{Name: "Road Trip", Description: "Songs for the drive."},
		Relationships: &PlaylistCreationRelationships{
			Tracks: PlaylistTracksRequest{Data: []PlaylistTrack{{ID: "1590512394", Type: resource.TypeSongs}}},
		},
	}
	resp, err := c.Me.CreatePlaylist(context.Background(), "user-token", req,
		[]resource.LibraryPlaylistRelationship{resource.LibraryPlaylistTracks})
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}

	got := api.last(t)
	if got.rawQuery != "include=tracks" {
		t.Errorf("expected include=tracks, got %s", got.rawQuery)
	}
	var sent map[string]any
	if err := json.Unmarshal(got.body, &sent); err != nil {
		t.Fatalf("decoding sent body: %v", err)
	}
	attrs, _ := sent["attributes"].(map[string]any)
	if attrs["name"] != "Road Trip" {
		t.Errorf("expected name Road Trip in body, got %v", attrs["name"])
	}
	if _, ok := sent["relationships"]; !ok {
		t.Error("expected relationships in body")
	}

	playlist, ok := resp.First()
	if !ok || playlist.ID != "p.MoGJYM3CYXW09B" {
		t.Errorf("unexpected created playlist %+v", resp.Data)
	}
}

func TestCreatePlaylistValidation(t *testing.T) {
	c, api := newTestClient(t, nil)
	ctx := context.Background()
	if _, err := c.Me.CreatePlaylist(ctx, "user-token", PlaylistCreationRequest{}, nil); !engine.IsInvalidArgument(err) {
		t.Errorf("expected invalid name, got %v", err)
	}
	bad := PlaylistCreationRequest{
		Attributes:    PlaylistCreationAttributes{Name: "x"},
		Relationships: &PlaylistCreationRelationships{Tracks: PlaylistTracksRequest{Data: []PlaylistTrack{{ID: "1", Type: resource.TypeAlbums}}}},
	}
	if _, err := c.Me.CreatePlaylist(ctx, "user-token", bad, nil); !engine.IsInvalidArgument(err) {
		t.Errorf("expected invalid track type, got %v", err)
	}
	if _, err := c.Me.AddTracksToPlaylist(ctx, "user-token", "p.1", nil); !engine.IsInvalidArgument(err) {
		t.Errorf("expected invalid tracks, got %v", err)
	}
	if api.calls() != 0 {
		t.Errorf("expected no requests, got %d", api.calls())
	}
}

func TestAddTracksToPlaylist(t *testing.T) {
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /v1/me/library/playlists/p.MoGJYM3CYXW09B/tracks": serveJSON(http.StatusNoContent, nil),
	})

	_, err := c.Me.AddTracksToPlaylist(context.Background(), "user-token", "p.MoGJYM3CYXW09B", []PlaylistTrack{
		{ID: "i.PkdZbQXsPJ4DX", Type: resource.TypeLibrarySongs},
	})
	if err != nil {
		t.Fatalf("AddTracksToPlaylist: %v", err)
	}
	want := `{"data":[{"id":"i.PkdZbQXsPJ4DX","type":"library-songs"}]}`
	if got := string(api.last(t).body); got != want {
		t.Errorf("expected body %s, got %s", want, got)
	}
}

func TestRecommendations(t *testing.T) {
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /v1/me/recommendations": serveJSON(http.StatusOK, loadFixture(t, "recommendations.json")),
	})
	ctx := context.Background()

	resp, err := c.Me.DefaultRecommendations(ctx, "user-token", resource.RecommendPlaylists)
	if err != nil {
		t.Fatalf("DefaultRecommendations: %v", err)
	}
	if got := api.last(t).rawQuery; got != "type=playlists" {
		t.Errorf("expected type=playlists, got %s", got)
	}
	rec, ok := resp.First()
	if !ok {
		t.Fatal("expected a recommendation")
	}
	if rec.Attributes.Title == nil || rec.Attributes.Title.StringForDisplay != "Made for You" {
		t.Errorf("unexpected title %+v", rec.Attributes.Title)
	}
	contents := rec.Relationships.Contents
	if contents == nil || len(contents.Data) != 1 {
		t.Fatalf("expected one content item, got %+v", contents)
	}
	if p, ok := contents.Data[0].(*resource.Playlist); !ok || p.Attributes.Name != "Favourites Mix" {
		t.Errorf("unexpected content %#v", contents.Data[0])
	}

	if _, err := c.Me.Recommendations(ctx, "user-token", []string{"6-27s5hU6azhJY", "6-1"}); err != nil {
		t.Fatalf("Recommendations: %v", err)
	}
	if got := api.last(t).rawQuery; got != "ids=6-27s5hU6azhJY%2C6-1" {
		t.Errorf("expected ids query, got %s", got)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	empty := []byte(`{"data":[]}`)
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /v1/me/history/heavy-rotation":  serveJSON(http.StatusOK, empty),
		"GET /v1/me/recent/played":           serveJSON(http.StatusOK, empty),
		"GET /v1/me/recent/radio-stations":   serveJSON(http.StatusOK, empty),
		"GET /v1/me/library/recently-added":  serveJSON(http.StatusOK, empty),
		"GET /v1/me/storefront":              serveJSON(http.StatusOK, empty),
		"GET /v1/me/recommendations/6-27s5h": serveJSON(http.StatusOK, empty),
	})
	ctx := context.Background()
	tok := "user-token"

	calls := []struct {
		name string
		call func() error
	}{
		{"heavy rotation", func() error { _, err := c.Me.HeavyRotation(ctx, tok, WithLimit(3)); return err }},
		{"recently played", func() error { _, err := c.Me.RecentlyPlayed(ctx, tok); return err }},
		{"radio stations", func() error { _, err := c.Me.RecentRadioStations(ctx, tok); return err }},
		{"recently added", func() error { _, err := c.Me.RecentlyAdded(ctx, tok); return err }},
		{"storefront", func() error { _, err := c.Me.Storefront(ctx, tok); return err }},
		{"recommendation", func() error { _, err := c.Me.Recommendation(ctx, tok, "6-27s5h"); return err }},
	}
	for _, tt := range calls {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := api.last(t).userToken; got != tok {
				t.Errorf("expected user token, got %q", got)
			}
		})
	}
	if got := api.requests[0].rawQuery; got != "limit=3" {
		t.Errorf("expected limit=3 on heavy rotation, got %s", got)
	}
}

func TestStorefrontsAll(t *testing.T) {
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /v1/storefronts": serveJSON(http.StatusOK, loadFixture(t, "storefronts.json")),
	})

	resp, err := c.Storefronts.All(context.Background(), WithLimit(2))
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	req := api.last(t)
	if req.rawQuery != "limit=2" {
		t.Errorf("expected limit=2, got %s", req.rawQuery)
	}
	if req.userToken != "" {
		t.Errorf("storefronts must not carry a user token, got %q", req.userToken)
	}
	if len(resp.Data) != 2 || resp.Data[1].Attributes.DefaultLanguageTag != "en-US" {
		t.Errorf("unexpected storefronts %+v", resp.Data)
	}
}

func TestStorefrontsList(t *testing.T) {
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /v1/storefronts": serveJSON(http.StatusOK, loadFixture(t, "storefronts.json")),
	})
	if _, err := c.Storefronts.List(context.Background(), []string{"gb", "us"}, WithLocale("en-GB")); err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := api.last(t).rawQuery; got != "ids=gb%2Cus&l=en-GB" {
		t.Errorf("expected ids=gb%%2Cus&l=en-GB, got %s", got)
	}
}

func TestRequestFailedCarriesErrors(t *testing.T) {
	c, _ := newTestClient(t, nil)
	_, err := c.Catalog.Albums.Get(context.Background(), "us", "0", nil)
	if !engine.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	var failed *engine.ErrRequestFailed
	if !errors.As(err, &failed) || len(failed.Errors) != 1 || failed.Errors[0].Code != "40400" {
		t.Errorf("expected parsed API error, got %+v", failed)
	}
}

func TestConcurrentUsers(t *testing.T) {
	c, api := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /v1/me/library/songs": serveJSON(http.StatusOK, loadFixture(t, "library_songs.json")),
	})

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok := "token-" + strconv.Itoa(i)
			if _, err := c.Library.Songs.All(context.Background(), tok, nil); err != nil {
				t.Errorf("All(%s): %v", tok, err)
			}
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	api.mu.Lock()
	for _, r := range api.requests {
		seen[r.userToken] = true
	}
	api.mu.Unlock()
	if len(seen) != 20 {
		t.Errorf("expected 20 distinct user tokens, got %d", len(seen))
	}
}
