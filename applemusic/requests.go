package applemusic

import (
	"github.com/sydlexius/amkit/resource"
)

// RatingRequest is the body of a rating upsert.
type RatingRequest struct {
	Type       string                    `json:"type"`
	Attributes resource.RatingAttributes `json:"attributes"`
}

// NewRatingRequest builds a rating body for value, RatingLove or
// RatingDislike.
func NewRatingRequest(value int) RatingRequest {
	return RatingRequest{Type: "rating", Attributes: resource.RatingAttributes{Value: value}}
}

// PlaylistTrack references a song or music video, from the catalog or the
// library, to place in a playlist.
type PlaylistTrack struct {
	ID   string        `json:"id"`
	Type resource.Type `json:"type"`
}

// PlaylistTracksRequest is the body of an add-tracks call.
type PlaylistTracksRequest struct {
	Data []PlaylistTrack `json:"data"`
}

// PlaylistCreationAttributes names the new playlist.
type PlaylistCreationAttributes struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PlaylistCreationRelationships seeds the new playlist with tracks.
type PlaylistCreationRelationships struct {
	Tracks PlaylistTracksRequest `json:"tracks"`
}

// PlaylistCreationRequest is the body of a create-playlist call.
type PlaylistCreationRequest struct {
	Attributes    PlaylistCreationAttributes     `json:"attributes"`
	Relationships *PlaylistCreationRelationships `json:"relationships,omitempty"`
}

// trackTypes are the resource types a playlist can hold.
var trackTypes = []resource.Type{
	resource.TypeSongs,
	resource.TypeMusicVideos,
	resource.TypeLibrarySongs,
	resource.TypeLibraryMusicVideos,
}
