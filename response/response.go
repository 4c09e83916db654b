// Package response holds the envelopes wrapping every API result: the common
// data envelope over a homogeneous resource list, and the grouped shapes
// returned by search, library search, search hints and charts.
package response

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sydlexius/amkit/resource"
)

// Root carries the fields shared by every envelope.
type Root struct {
	Href   string         `json:"href,omitempty"`
	Next   string         `json:"next,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
	Errors []Error        `json:"errors,omitempty"`
}

// HasNext reports whether another page is available.
func (r *Root) HasNext() bool { return r.Next != "" }

// Error is a structured error object returned by the API.
type Error struct {
	ID     string         `json:"id,omitempty"`
	Title  string         `json:"title,omitempty"`
	Detail string         `json:"detail,omitempty"`
	Status string         `json:"status,omitempty"`
	Code   string         `json:"code,omitempty"`
	Source *ErrorSource   `json:"source,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
}

func (e Error) Error() string {
	parts := make([]string, 0, 3)
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	if e.Title != "" {
		parts = append(parts, e.Title)
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	return strings.Join(parts, ": ")
}

// ErrorSource locates the request part that caused an error.
type ErrorSource struct {
	Parameter string `json:"parameter,omitempty"`
	Pointer   string `json:"pointer,omitempty"`
}

// Response is the data envelope over resources of variant T. With T set to
// resource.Resource the list may mix variants.
type Response[T resource.Resource] struct {
	Root
	Data []T
}

// First returns the first element, or false when data is empty.
func (r *Response[T]) First() (T, bool) {
	var zero T
	if r == nil || len(r.Data) == 0 {
		return zero, false
	}
	return r.Data[0], true
}

// UnmarshalJSON decodes the envelope, dispatching each data element on its
// discriminant. Any element that fails decoding fails the envelope.
func (r *Response[T]) UnmarshalJSON(b []byte) error {
	var w struct {
		Root
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return &resource.DecodingError{Cause: fmt.Errorf("envelope: %w", err)}
	}
	*r = Response[T]{Root: w.Root}
	if w.Data == nil {
		return nil
	}
	data, err := resource.DecodeItems[T](w.Data, "data")
	if err != nil {
		return err
	}
	r.Data = data
	return nil
}

// MarshalJSON writes the envelope in wire form.
func (r Response[T]) MarshalJSON() ([]byte, error) {
	data := r.Data
	if data == nil {
		data = []T{}
	}
	return json.Marshal(struct {
		Root
		Data []T `json:"data"`
	}{r.Root, data})
}

// Envelopes of the catalog, library and personal endpoints.
type (
	Activities         = Response[*resource.Activity]
	Albums             = Response[*resource.Album]
	AppleCurators      = Response[*resource.AppleCurator]
	Artists            = Response[*resource.Artist]
	Curators           = Response[*resource.Curator]
	Genres             = Response[*resource.Genre]
	MusicVideos        = Response[*resource.MusicVideo]
	Playlists          = Response[*resource.Playlist]
	Ratings            = Response[*resource.Rating]
	Recommendations    = Response[*resource.Recommendation]
	Songs              = Response[*resource.Song]
	Stations           = Response[*resource.Station]
	Storefronts        = Response[*resource.Storefront]
	LibraryAlbums      = Response[*resource.LibraryAlbum]
	LibraryArtists     = Response[*resource.LibraryArtist]
	LibraryMusicVideos = Response[*resource.LibraryMusicVideo]
	LibraryPlaylists   = Response[*resource.LibraryPlaylist]
	LibrarySongs       = Response[*resource.LibrarySong]

	// Mixed is an envelope whose data may hold any variant, such as
	// heavy rotation, recently played and recently added.
	Mixed = Response[resource.Resource]
)

// Empty is the envelope of calls that return no data of interest, such as
// deletes and library additions.
type Empty struct {
	Root
}
