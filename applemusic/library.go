package applemusic

import (
	"github.com/sydlexius/amkit/engine"
	"github.com/sydlexius/amkit/resource"
	"github.com/sydlexius/amkit/response"
)

// Library holds the me/library resource endpoints. Every call takes the
// user's music token.
type Library struct {
	Albums      LibraryResource[response.LibraryAlbums, resource.LibraryAlbumRelationship]
	Artists     LibraryResource[response.LibraryArtists, resource.LibraryArtistRelationship]
	MusicVideos LibraryResource[response.LibraryMusicVideos, resource.LibraryMusicVideoRelationship]
	Playlists   LibraryResource[response.LibraryPlaylists, resource.LibraryPlaylistRelationship]
	Songs       LibraryResource[response.LibrarySongs, resource.LibrarySongRelationship]
}

func newLibrary(e *engine.Engine) *Library {
	return &Library{
		Albums:      LibraryResource[response.LibraryAlbums, resource.LibraryAlbumRelationship]{e, resource.TypeLibraryAlbums},
		Artists:     LibraryResource[response.LibraryArtists, resource.LibraryArtistRelationship]{e, resource.TypeLibraryArtists},
		MusicVideos: LibraryResource[response.LibraryMusicVideos, resource.LibraryMusicVideoRelationship]{e, resource.TypeLibraryMusicVideos},
		Playlists:   LibraryResource[response.LibraryPlaylists, resource.LibraryPlaylistRelationship]{e, resource.TypeLibraryPlaylists},
		Songs:       LibraryResource[response.LibrarySongs, resource.LibrarySongRelationship]{e, resource.TypeLibrarySongs},
	}
}
