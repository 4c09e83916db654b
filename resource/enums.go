package resource

// ContentRating is the RIAA rating of content. The empty value means the
// content is unrated and is omitted on the wire.
type ContentRating string

// Content ratings.
const (
	ContentRatingNone     ContentRating = ""
	ContentRatingClean    ContentRating = "clean"
	ContentRatingExplicit ContentRating = "explicit"
)

// Valid reports whether r is a known rating.
func (r ContentRating) Valid() bool {
	switch r {
	case ContentRatingNone, ContentRatingClean, ContentRatingExplicit:
		return true
	}
	return false
}

// PlaylistType classifies a catalog playlist.
type PlaylistType string

// Playlist types.
const (
	PlaylistUserShared  PlaylistType = "user-shared"
	PlaylistEditorial   PlaylistType = "editorial"
	PlaylistExternal    PlaylistType = "external"
	PlaylistPersonalMix PlaylistType = "personal-mix"
)

// Valid reports whether p is a known playlist type.
func (p PlaylistType) Valid() bool {
	switch p {
	case PlaylistUserShared, PlaylistEditorial, PlaylistExternal, PlaylistPersonalMix:
		return true
	}
	return false
}

// ChartType selects the resource kind of a chart.
type ChartType string

// Chart types.
const (
	ChartAlbums      ChartType = "albums"
	ChartMusicVideos ChartType = "music-videos"
	ChartSongs       ChartType = "songs"
	ChartPlaylists   ChartType = "playlists"
)

// RecommendationType selects the kind of default recommendations.
type RecommendationType string

// Recommendation types.
const (
	RecommendAlbums    RecommendationType = "albums"
	RecommendPlaylists RecommendationType = "playlists"
)

// LibraryType is a resource kind that can be added to the user's library.
type LibraryType string

// Library types.
const (
	LibraryAlbums      LibraryType = "albums"
	LibraryMusicVideos LibraryType = "music-videos"
	LibraryPlaylists   LibraryType = "playlists"
	LibrarySongs       LibraryType = "songs"
)

// Valid reports whether l is a known library type.
func (l LibraryType) Valid() bool {
	switch l {
	case LibraryAlbums, LibraryMusicVideos, LibraryPlaylists, LibrarySongs:
		return true
	}
	return false
}

// NoRelationship is the relationship name type of resources without
// includable relationships.
type NoRelationship string

// Relationship names accepted by include and relationship fetches, one type
// per resource so an album relationship cannot be requested on a song.
type (
	ActivityRelationship          string
	AlbumRelationship             string
	AppleCuratorRelationship      string
	ArtistRelationship            string
	CuratorRelationship           string
	MusicVideoRelationship        string
	PlaylistRelationship          string
	SongRelationship              string
	LibraryAlbumRelationship      string
	LibraryArtistRelationship     string
	LibraryMusicVideoRelationship string
	LibraryPlaylistRelationship   string
	LibrarySongRelationship       string
)

// Activity relationships.
const ActivityPlaylists ActivityRelationship = "playlists"

// Album relationships.
const (
	AlbumArtists AlbumRelationship = "artists"
	AlbumGenres  AlbumRelationship = "genres"
	AlbumTracks  AlbumRelationship = "tracks"
)

// Apple curator relationships.
const AppleCuratorPlaylists AppleCuratorRelationship = "playlists"

// Artist relationships.
const (
	ArtistAlbums      ArtistRelationship = "albums"
	ArtistGenres      ArtistRelationship = "genres"
	ArtistMusicVideos ArtistRelationship = "musicVideos"
	ArtistPlaylists   ArtistRelationship = "playlists"
	ArtistStations    ArtistRelationship = "stations"
	ArtistSongs       ArtistRelationship = "songs"
)

// Curator relationships.
const CuratorPlaylists CuratorRelationship = "playlists"

// Music video relationships.
const (
	MusicVideoAlbums  MusicVideoRelationship = "albums"
	MusicVideoArtists MusicVideoRelationship = "artists"
	MusicVideoGenres  MusicVideoRelationship = "genres"
)

// Playlist relationships.
const (
	PlaylistCurator PlaylistRelationship = "curator"
	PlaylistTracks  PlaylistRelationship = "tracks"
)

// Song relationships.
const (
	SongAlbums  SongRelationship = "albums"
	SongArtists SongRelationship = "artists"
	SongGenres  SongRelationship = "genres"
	SongStation SongRelationship = "station"
)

// Library album relationships.
const (
	LibraryAlbumArtists LibraryAlbumRelationship = "artists"
	LibraryAlbumTracks  LibraryAlbumRelationship = "tracks"
)

// Library artist relationships.
const LibraryArtistAlbums LibraryArtistRelationship = "albums"

// Library music video relationships.
const (
	LibraryMusicVideoAlbums  LibraryMusicVideoRelationship = "albums"
	LibraryMusicVideoArtists LibraryMusicVideoRelationship = "artists"
)

// Library playlist relationships.
const LibraryPlaylistTracks LibraryPlaylistRelationship = "tracks"

// Library song relationships.
const (
	LibrarySongAlbums  LibrarySongRelationship = "albums"
	LibrarySongArtists LibrarySongRelationship = "artists"
)
