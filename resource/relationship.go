package resource

import (
	"encoding/json"

	"github.com/samber/lo"
)

// Relationship links a resource to a page of related resources. Data is nil
// when the relationship was not included in the response; an included but
// empty relationship has a non-nil, zero-length Data.
type Relationship[T Resource] struct {
	Data []T
	Href string
	Next string
	Meta map[string]any
}

// Included reports whether the relationship data was expanded.
func (r *Relationship[T]) Included() bool { return r != nil && r.Data != nil }

// HasNext reports whether the server advertised another page.
func (r *Relationship[T]) HasNext() bool { return r != nil && r.Next != "" }

type wireRelationship struct {
	Data json.RawMessage `json:"data,omitempty"`
	Href string          `json:"href,omitempty"`
	Next string          `json:"next,omitempty"`
	Meta map[string]any  `json:"meta,omitempty"`
}

// UnmarshalJSON decodes the relationship, dispatching each element of data
// on its discriminant.
func (r *Relationship[T]) UnmarshalJSON(b []byte) error {
	var w wireRelationship
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*r = Relationship[T]{Href: w.Href, Next: w.Next, Meta: w.Meta}
	if isNull(w.Data) {
		return nil
	}
	data, err := DecodeList[T](w.Data, "data")
	if err != nil {
		return err
	}
	r.Data = data
	return nil
}

// MarshalJSON writes data only when the relationship was included.
func (r Relationship[T]) MarshalJSON() ([]byte, error) {
	out := struct {
		Data []T            `json:"data,omitempty"`
		Href string         `json:"href,omitempty"`
		Next string         `json:"next,omitempty"`
		Meta map[string]any `json:"meta,omitempty"`
	}{r.Data, r.Href, r.Next, r.Meta}
	if r.Data != nil && len(r.Data) == 0 {
		// omitempty would drop an included empty page.
		return json.Marshal(struct {
			Data []T            `json:"data"`
			Href string         `json:"href,omitempty"`
			Next string         `json:"next,omitempty"`
			Meta map[string]any `json:"meta,omitempty"`
		}(out))
	}
	return json.Marshal(out)
}

// OfType returns the elements of items that are of variant T, in order.
func OfType[T Resource](items []Resource) []T {
	return lo.FilterMap(items, func(item Resource, _ int) (T, bool) {
		t, ok := item.(T)
		return t, ok
	})
}

// Tracks is the heterogeneous tracks relationship of catalog albums and
// playlists, holding songs and music videos.
type Tracks struct {
	Relationship[Resource]
}

// Songs returns the song tracks.
func (t *Tracks) Songs() []*Song {
	if t == nil {
		return nil
	}
	return OfType[*Song](t.Data)
}

// MusicVideos returns the music video tracks.
func (t *Tracks) MusicVideos() []*MusicVideo {
	if t == nil {
		return nil
	}
	return OfType[*MusicVideo](t.Data)
}

// LibraryTracks is the tracks relationship of library albums and playlists.
type LibraryTracks struct {
	Relationship[Resource]
}

// Songs returns the library song tracks.
func (t *LibraryTracks) Songs() []*LibrarySong {
	if t == nil {
		return nil
	}
	return OfType[*LibrarySong](t.Data)
}

// MusicVideos returns the library music video tracks.
func (t *LibraryTracks) MusicVideos() []*LibraryMusicVideo {
	if t == nil {
		return nil
	}
	return OfType[*LibraryMusicVideo](t.Data)
}

// Fetch limits of paged relationships.
const (
	CuratorPlaylistsDefaultLimit  = 10
	CuratorPlaylistsMaxLimit      = 10
	ActivityPlaylistsDefaultLimit = 10
	ActivityPlaylistsMaxLimit     = 10
	PlaylistTracksDefaultLimit    = 100
	PlaylistTracksMaxLimit        = 300
)

// ActivityRelationships holds the relationships of an activity.
type ActivityRelationships struct {
	Playlists *Relationship[*Playlist] `json:"playlists,omitempty"`
}

// AlbumRelationships holds the relationships of a catalog album.
type AlbumRelationships struct {
	Artists *Relationship[*Artist] `json:"artists,omitempty"`
	Genres  *Relationship[*Genre]  `json:"genres,omitempty"`
	Tracks  *Tracks                `json:"tracks,omitempty"`
}

// AppleCuratorRelationships holds the relationships of an Apple curator.
type AppleCuratorRelationships struct {
	Playlists *Relationship[*Playlist] `json:"playlists,omitempty"`
}

// ArtistRelationships holds the relationships of a catalog artist.
type ArtistRelationships struct {
	Albums      *Relationship[*Album]      `json:"albums,omitempty"`
	Genres      *Relationship[*Genre]      `json:"genres,omitempty"`
	MusicVideos *Relationship[*MusicVideo] `json:"music-videos,omitempty"`
	Playlists   *Relationship[*Playlist]   `json:"playlists,omitempty"`
	Songs       *Relationship[*Song]       `json:"songs,omitempty"`
	Station     *Relationship[*Station]    `json:"station,omitempty"`
}

// CuratorRelationships holds the relationships of a curator.
type CuratorRelationships struct {
	Playlists *Relationship[*Playlist] `json:"playlists,omitempty"`
}

// MusicVideoRelationships holds the relationships of a catalog music video.
type MusicVideoRelationships struct {
	Albums  *Relationship[*Album]  `json:"albums,omitempty"`
	Artists *Relationship[*Artist] `json:"artists,omitempty"`
	Genres  *Relationship[*Genre]  `json:"genres,omitempty"`
}

// PlaylistRelationships holds the relationships of a catalog playlist. The
// curator may be either kind of curator.
type PlaylistRelationships struct {
	Curator *Relationship[Resource] `json:"curator,omitempty"`
	Tracks  *Tracks                 `json:"tracks,omitempty"`
}

// RecommendationRelationships holds the recommended content, which mixes
// albums, playlists and stations.
type RecommendationRelationships struct {
	Contents *Relationship[Resource] `json:"contents,omitempty"`
}

// SongRelationships holds the relationships of a catalog song.
type SongRelationships struct {
	Albums  *Relationship[*Album]   `json:"albums,omitempty"`
	Artists *Relationship[*Artist]  `json:"artists,omitempty"`
	Genres  *Relationship[*Genre]   `json:"genres,omitempty"`
	Station *Relationship[*Station] `json:"station,omitempty"`
}

// LibraryAlbumRelationships holds the relationships of a library album.
type LibraryAlbumRelationships struct {
	Artists *Relationship[*LibraryArtist] `json:"artists,omitempty"`
	Tracks  *LibraryTracks                `json:"tracks,omitempty"`
}

// LibraryArtistRelationships holds the relationships of a library artist.
type LibraryArtistRelationships struct {
	Albums *Relationship[*LibraryAlbum] `json:"albums,omitempty"`
}

// LibraryMusicVideoRelationships holds the relationships of a library music
// video.
type LibraryMusicVideoRelationships struct {
	Albums  *Relationship[*LibraryAlbum]  `json:"albums,omitempty"`
	Artists *Relationship[*LibraryArtist] `json:"artists,omitempty"`
}

// LibraryPlaylistRelationships holds the relationships of a library playlist.
type LibraryPlaylistRelationships struct {
	Tracks *LibraryTracks `json:"tracks,omitempty"`
}

// LibrarySongRelationships holds the relationships of a library song.
type LibrarySongRelationships struct {
	Albums  *Relationship[*LibraryAlbum]  `json:"albums,omitempty"`
	Artists *Relationship[*LibraryArtist] `json:"artists,omitempty"`
}
