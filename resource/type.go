// Package resource models the polymorphic resource family returned by the
// Apple Music API. Every variant carries a fixed type discriminant, an
// attributes bundle and an optional relationships record. Decoding
// dispatches on the wire "type" field through a closed table.
package resource

// Type is the wire discriminant of a resource.
type Type string

// Resource type discriminants.
const (
	TypeActivities             Type = "activities"
	TypeAlbums                 Type = "albums"
	TypeAppleCurators          Type = "apple-curators"
	TypeArtists                Type = "artists"
	TypeCurators               Type = "curators"
	TypeGenres                 Type = "genres"
	TypeMusicVideos            Type = "music-videos"
	TypePlaylists              Type = "playlists"
	TypeRatings                Type = "ratings"
	TypePersonalRecommendation Type = "personal-recommendation"
	TypeSongs                  Type = "songs"
	TypeStations               Type = "stations"
	TypeStorefronts            Type = "storefronts"
	TypeLibraryAlbums          Type = "library-albums"
	TypeLibraryArtists         Type = "library-artists"
	TypeLibraryMusicVideos     Type = "library-music-videos"
	TypeLibraryPlaylists       Type = "library-playlists"
	TypeLibrarySongs           Type = "library-songs"
)

// AllTypes returns every known discriminant in declaration order.
func AllTypes() []Type {
	return []Type{
		TypeActivities,
		TypeAlbums,
		TypeAppleCurators,
		TypeArtists,
		TypeCurators,
		TypeGenres,
		TypeMusicVideos,
		TypePlaylists,
		TypeRatings,
		TypePersonalRecommendation,
		TypeSongs,
		TypeStations,
		TypeStorefronts,
		TypeLibraryAlbums,
		TypeLibraryArtists,
		TypeLibraryMusicVideos,
		TypeLibraryPlaylists,
		TypeLibrarySongs,
	}
}

// Valid reports whether t is one of the known discriminants.
func (t Type) Valid() bool {
	_, ok := constructors[t]
	return ok
}

// IsLibrary reports whether t names a user library variant.
func (t Type) IsLibrary() bool {
	switch t {
	case TypeLibraryAlbums, TypeLibraryArtists, TypeLibraryMusicVideos,
		TypeLibraryPlaylists, TypeLibrarySongs:
		return true
	}
	return false
}

func (t Type) String() string { return string(t) }

// Resource is implemented by every concrete variant. The set is closed: only
// the variants declared in this package satisfy it.
type Resource interface {
	ResourceType() Type
	ResourceID() string
	sealed()
}

// kind fixes the discriminant of an Object instantiation.
type kind interface {
	tag() Type
}

type (
	activityKind          struct{}
	albumKind             struct{}
	appleCuratorKind      struct{}
	artistKind            struct{}
	curatorKind           struct{}
	genreKind             struct{}
	musicVideoKind        struct{}
	playlistKind          struct{}
	ratingKind            struct{}
	recommendationKind    struct{}
	songKind              struct{}
	stationKind           struct{}
	storefrontKind        struct{}
	libraryAlbumKind      struct{}
	libraryArtistKind     struct{}
	libraryMusicVideoKind struct{}
	libraryPlaylistKind   struct{}
	librarySongKind       struct{}
)

func (activityKind) tag() Type          { return TypeActivities }
func (albumKind) tag() Type             { return TypeAlbums }
func (appleCuratorKind) tag() Type      { return TypeAppleCurators }
func (artistKind) tag() Type            { return TypeArtists }
func (curatorKind) tag() Type           { return TypeCurators }
func (genreKind) tag() Type             { return TypeGenres }
func (musicVideoKind) tag() Type        { return TypeMusicVideos }
func (playlistKind) tag() Type          { return TypePlaylists }
func (ratingKind) tag() Type            { return TypeRatings }
func (recommendationKind) tag() Type    { return TypePersonalRecommendation }
func (songKind) tag() Type              { return TypeSongs }
func (stationKind) tag() Type           { return TypeStations }
func (storefrontKind) tag() Type        { return TypeStorefronts }
func (libraryAlbumKind) tag() Type      { return TypeLibraryAlbums }
func (libraryArtistKind) tag() Type     { return TypeLibraryArtists }
func (libraryMusicVideoKind) tag() Type { return TypeLibraryMusicVideos }
func (libraryPlaylistKind) tag() Type   { return TypeLibraryPlaylists }
func (librarySongKind) tag() Type       { return TypeLibrarySongs }

// Concrete resource variants. Each embeds its Object instantiation, which
// supplies the fields and the JSON codec.
type (
	Activity          struct{ Object[activityKind, ActivityAttributes, ActivityRelationships] }
	Album             struct{ Object[albumKind, AlbumAttributes, AlbumRelationships] }
	AppleCurator      struct{ Object[appleCuratorKind, AppleCuratorAttributes, AppleCuratorRelationships] }
	Artist            struct{ Object[artistKind, ArtistAttributes, ArtistRelationships] }
	Curator           struct{ Object[curatorKind, CuratorAttributes, CuratorRelationships] }
	Genre             struct{ Object[genreKind, GenreAttributes, NoRelationships] }
	MusicVideo        struct{ Object[musicVideoKind, MusicVideoAttributes, MusicVideoRelationships] }
	Playlist          struct{ Object[playlistKind, PlaylistAttributes, PlaylistRelationships] }
	Rating            struct{ Object[ratingKind, RatingAttributes, NoRelationships] }
	Recommendation    struct{ Object[recommendationKind, RecommendationAttributes, RecommendationRelationships] }
	Song              struct{ Object[songKind, SongAttributes, SongRelationships] }
	Station           struct{ Object[stationKind, StationAttributes, NoRelationships] }
	Storefront        struct{ Object[storefrontKind, StorefrontAttributes, NoRelationships] }
	LibraryAlbum      struct{ Object[libraryAlbumKind, LibraryAlbumAttributes, LibraryAlbumRelationships] }
	LibraryArtist     struct{ Object[libraryArtistKind, LibraryArtistAttributes, LibraryArtistRelationships] }
	LibraryMusicVideo struct{ Object[libraryMusicVideoKind, LibraryMusicVideoAttributes, LibraryMusicVideoRelationships] }
	LibraryPlaylist   struct{ Object[libraryPlaylistKind, LibraryPlaylistAttributes, LibraryPlaylistRelationships] }
	LibrarySong       struct{ Object[librarySongKind, LibrarySongAttributes, LibrarySongRelationships] }
)

// constructors maps each discriminant to a fresh zero value of its variant.
var constructors = map[Type]func() Resource{
	TypeActivities:             func() Resource { return new(Activity) },
	TypeAlbums:                 func() Resource { return new(Album) },
	TypeAppleCurators:          func() Resource { return new(AppleCurator) },
	TypeArtists:                func() Resource { return new(Artist) },
	TypeCurators:               func() Resource { return new(Curator) },
	TypeGenres:                 func() Resource { return new(Genre) },
	TypeMusicVideos:            func() Resource { return new(MusicVideo) },
	TypePlaylists:              func() Resource { return new(Playlist) },
	TypeRatings:                func() Resource { return new(Rating) },
	TypePersonalRecommendation: func() Resource { return new(Recommendation) },
	TypeSongs:                  func() Resource { return new(Song) },
	TypeStations:               func() Resource { return new(Station) },
	TypeStorefronts:            func() Resource { return new(Storefront) },
	TypeLibraryAlbums:          func() Resource { return new(LibraryAlbum) },
	TypeLibraryArtists:         func() Resource { return new(LibraryArtist) },
	TypeLibraryMusicVideos:     func() Resource { return new(LibraryMusicVideo) },
	TypeLibraryPlaylists:       func() Resource { return new(LibraryPlaylist) },
	TypeLibrarySongs:           func() Resource { return new(LibrarySong) },
}

// New returns an empty resource of the given type, or false when t is not a
// known discriminant.
func New(t Type) (Resource, bool) {
	ctor, ok := constructors[t]
	if !ok {
		return nil, false
	}
	return ctor(), true
}
