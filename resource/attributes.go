package resource

// ActivityAttributes describes an activity such as a mood or occasion.
type ActivityAttributes struct {
	Artwork        *Artwork        `json:"artwork,omitempty"`
	EditorialNotes *EditorialNotes `json:"editorialNotes,omitempty"`
	Name           string          `json:"name"`
	URL            string          `json:"url,omitempty"`
}

// AlbumAttributes describes a catalog album.
type AlbumAttributes struct {
	ArtistName          string          `json:"artistName"`
	Artwork             *Artwork        `json:"artwork,omitempty"`
	ContentRating       ContentRating   `json:"contentRating,omitempty"`
	Copyright           string          `json:"copyright,omitempty"`
	EditorialNotes      *EditorialNotes `json:"editorialNotes,omitempty"`
	GenreNames          []string        `json:"genreNames,omitempty"`
	IsComplete          bool            `json:"isComplete"`
	IsCompilation       bool            `json:"isCompilation"`
	IsMasteredForItunes bool            `json:"isMasteredForItunes"`
	IsSingle            bool            `json:"isSingle"`
	Name                string          `json:"name"`
	PlayParams          *PlayParameters `json:"playParams,omitempty"`
	RecordLabel         string          `json:"recordLabel,omitempty"`
	ReleaseDate         Date            `json:"releaseDate,omitzero"`
	TrackCount          int             `json:"trackCount"`
	UPC                 string          `json:"upc,omitempty"`
	URL                 string          `json:"url,omitempty"`
}

// AppleCuratorAttributes describes an Apple curator.
type AppleCuratorAttributes struct {
	Artwork        *Artwork        `json:"artwork,omitempty"`
	EditorialNotes *EditorialNotes `json:"editorialNotes,omitempty"`
	Name           string          `json:"name"`
	URL            string          `json:"url,omitempty"`
}

// ArtistAttributes describes a catalog artist.
type ArtistAttributes struct {
	Artwork        *Artwork        `json:"artwork,omitempty"`
	EditorialNotes *EditorialNotes `json:"editorialNotes,omitempty"`
	GenreNames     []string        `json:"genreNames,omitempty"`
	Name           string          `json:"name"`
	URL            string          `json:"url,omitempty"`
}

// CuratorAttributes describes a third-party curator.
type CuratorAttributes struct {
	Artwork        *Artwork        `json:"artwork,omitempty"`
	EditorialNotes *EditorialNotes `json:"editorialNotes,omitempty"`
	Name           string          `json:"name"`
	URL            string          `json:"url,omitempty"`
}

// GenreAttributes describes a genre.
type GenreAttributes struct {
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
}

// MusicVideoAttributes describes a catalog music video.
type MusicVideoAttributes struct {
	AlbumName      string          `json:"albumName,omitempty"`
	ArtistName     string          `json:"artistName"`
	Artwork        *Artwork        `json:"artwork,omitempty"`
	ContentRating  ContentRating   `json:"contentRating,omitempty"`
	Duration       Millis          `json:"durationInMillis,omitempty"`
	EditorialNotes *EditorialNotes `json:"editorialNotes,omitempty"`
	GenreNames     []string        `json:"genreNames,omitempty"`
	Has4K          bool            `json:"has4K"`
	HasHDR         bool            `json:"hasHDR"`
	ISRC           string          `json:"isrc,omitempty"`
	Name           string          `json:"name"`
	PlayParams     *PlayParameters `json:"playParams,omitempty"`
	Previews       []Preview       `json:"previews,omitempty"`
	ReleaseDate    Date            `json:"releaseDate,omitzero"`
	TrackNumber    int             `json:"trackNumber,omitempty"`
	URL            string          `json:"url,omitempty"`
	VideoSubType   string          `json:"videoSubType,omitempty"`
	WorkID         string          `json:"workId,omitempty"`
	WorkName       string          `json:"workName,omitempty"`
}

// PlaylistAttributes describes a catalog playlist.
type PlaylistAttributes struct {
	Artwork          *Artwork        `json:"artwork,omitempty"`
	CuratorName      string          `json:"curatorName,omitempty"`
	Description      *Description    `json:"description,omitempty"`
	IsChart          bool            `json:"isChart"`
	LastModifiedDate Timestamp       `json:"lastModifiedDate,omitzero"`
	Name             string          `json:"name"`
	PlaylistType     PlaylistType    `json:"playlistType,omitempty"`
	PlayParams       *PlayParameters `json:"playParams,omitempty"`
	URL              string          `json:"url,omitempty"`
}

// RatingAttributes holds a user's rating: 1 for love, -1 for dislike.
type RatingAttributes struct {
	Value int `json:"value"`
}

// Rating values.
const (
	RatingLove    = 1
	RatingDislike = -1
)

// RecommendationAttributes describes a personal recommendation.
type RecommendationAttributes struct {
	IsGroupRecommendation bool         `json:"isGroupRecommendation"`
	NextUpdateDate        Timestamp    `json:"nextUpdateDate,omitzero"`
	Reason                *DisplayText `json:"reason,omitempty"`
	ResourceTypes         []Type       `json:"resourceTypes,omitempty"`
	Title                 *DisplayText `json:"title,omitempty"`
}

// SongAttributes describes a catalog song.
type SongAttributes struct {
	AlbumName      string          `json:"albumName"`
	ArtistName     string          `json:"artistName"`
	Artwork        *Artwork        `json:"artwork,omitempty"`
	ComposerName   string          `json:"composerName,omitempty"`
	ContentRating  ContentRating   `json:"contentRating,omitempty"`
	DiscNumber     int             `json:"discNumber,omitempty"`
	Duration       Millis          `json:"durationInMillis,omitempty"`
	EditorialNotes *EditorialNotes `json:"editorialNotes,omitempty"`
	GenreNames     []string        `json:"genreNames,omitempty"`
	HasLyrics      bool            `json:"hasLyrics"`
	ISRC           string          `json:"isrc,omitempty"`
	MovementCount  int             `json:"movementCount,omitempty"`
	MovementName   string          `json:"movementName,omitempty"`
	MovementNumber int             `json:"movementNumber,omitempty"`
	Name           string          `json:"name"`
	PlayParams     *PlayParameters `json:"playParams,omitempty"`
	Previews       []Preview       `json:"previews,omitempty"`
	ReleaseDate    Date            `json:"releaseDate,omitzero"`
	TrackNumber    int             `json:"trackNumber,omitempty"`
	URL            string          `json:"url,omitempty"`
	WorkName       string          `json:"workName,omitempty"`
}

// StationAttributes describes a radio station.
type StationAttributes struct {
	Artwork        *Artwork        `json:"artwork,omitempty"`
	Duration       Millis          `json:"durationInMillis,omitempty"`
	EditorialNotes *EditorialNotes `json:"editorialNotes,omitempty"`
	EpisodeNumber  string          `json:"episodeNumber,omitempty"`
	IsLive         bool            `json:"isLive"`
	Name           string          `json:"name"`
	PlayParams     *PlayParameters `json:"playParams,omitempty"`
	URL            string          `json:"url,omitempty"`
}

// StorefrontAttributes describes a storefront.
type StorefrontAttributes struct {
	DefaultLanguageTag    string   `json:"defaultLanguageTag"`
	Name                  string   `json:"name"`
	SupportedLanguageTags []string `json:"supportedLanguageTags,omitempty"`
}

// LibraryAlbumAttributes describes an album in the user's library.
type LibraryAlbumAttributes struct {
	ArtistName    string          `json:"artistName"`
	Artwork       *Artwork        `json:"artwork,omitempty"`
	ContentRating ContentRating   `json:"contentRating,omitempty"`
	DateAdded     Timestamp       `json:"dateAdded,omitzero"`
	GenreNames    []string        `json:"genreNames,omitempty"`
	Name          string          `json:"name"`
	PlayParams    *PlayParameters `json:"playParams,omitempty"`
	ReleaseDate   Date            `json:"releaseDate,omitzero"`
	TrackCount    int             `json:"trackCount"`
}

// LibraryArtistAttributes describes an artist in the user's library.
type LibraryArtistAttributes struct {
	Name string `json:"name"`
}

// LibraryMusicVideoAttributes describes a music video in the user's library.
type LibraryMusicVideoAttributes struct {
	AlbumName     string          `json:"albumName,omitempty"`
	ArtistName    string          `json:"artistName"`
	Artwork       *Artwork        `json:"artwork,omitempty"`
	ContentRating ContentRating   `json:"contentRating,omitempty"`
	Duration      Millis          `json:"durationInMillis,omitempty"`
	GenreNames    []string        `json:"genreNames,omitempty"`
	Name          string          `json:"name"`
	PlayParams    *PlayParameters `json:"playParams,omitempty"`
	ReleaseDate   Date            `json:"releaseDate,omitzero"`
	TrackNumber   int             `json:"trackNumber,omitempty"`
}

// LibraryPlaylistAttributes describes a playlist in the user's library.
type LibraryPlaylistAttributes struct {
	Artwork     *Artwork        `json:"artwork,omitempty"`
	CanEdit     bool            `json:"canEdit"`
	DateAdded   Timestamp       `json:"dateAdded,omitzero"`
	Description *Description    `json:"description,omitempty"`
	HasCatalog  bool            `json:"hasCatalog"`
	IsPublic    bool            `json:"isPublic"`
	Name        string          `json:"name"`
	PlayParams  *PlayParameters `json:"playParams,omitempty"`
}

// LibrarySongAttributes describes a song in the user's library.
type LibrarySongAttributes struct {
	AlbumName     string          `json:"albumName,omitempty"`
	ArtistName    string          `json:"artistName"`
	Artwork       *Artwork        `json:"artwork,omitempty"`
	ContentRating ContentRating   `json:"contentRating,omitempty"`
	DiscNumber    int             `json:"discNumber,omitempty"`
	Duration      Millis          `json:"durationInMillis,omitempty"`
	GenreNames    []string        `json:"genreNames,omitempty"`
	HasLyrics     bool            `json:"hasLyrics"`
	Name          string          `json:"name"`
	PlayParams    *PlayParameters `json:"playParams,omitempty"`
	ReleaseDate   Date            `json:"releaseDate,omitzero"`
	TrackNumber   int             `json:"trackNumber,omitempty"`
}
