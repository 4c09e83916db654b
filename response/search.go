package response

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/sydlexius/amkit/resource"
)

// decodeFields unmarshals the object b into dst one member at a time so a
// failure is reported under the member's path.
func decodeFields(b []byte, dst any, prefix string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return &resource.DecodingError{Path: prefix, Cause: err}
	}
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		single, err := json.Marshal(map[string]json.RawMessage{name: fields[name]})
		if err != nil {
			return err
		}
		if err := json.Unmarshal(single, dst); err != nil {
			return resource.AtPath(err, prefix+"."+name)
		}
	}
	return nil
}

// SearchResults groups catalog search matches by resource type. Groups with
// no matches are nil.
type SearchResults struct {
	Activities    *Activities    `json:"activities,omitempty"`
	Albums        *Albums        `json:"albums,omitempty"`
	AppleCurators *AppleCurators `json:"apple-curators,omitempty"`
	Artists       *Artists       `json:"artists,omitempty"`
	Curators      *Curators      `json:"curators,omitempty"`
	MusicVideos   *MusicVideos   `json:"music-videos,omitempty"`
	Playlists     *Playlists     `json:"playlists,omitempty"`
	Songs         *Songs         `json:"songs,omitempty"`
	Stations      *Stations      `json:"stations,omitempty"`
}

// UnmarshalJSON decodes each group, reporting failures under
// results.<group>.
func (s *SearchResults) UnmarshalJSON(b []byte) error {
	type plain SearchResults
	var out plain
	if err := decodeFields(b, &out, "results"); err != nil {
		return err
	}
	*s = SearchResults(out)
	return nil
}

// Search is the envelope of a catalog search.
type Search struct {
	Root
	Results SearchResults `json:"results"`
}

// TopResults is the relevance-ranked result of a top search. Each element
// keeps its own type.
type TopResults struct {
	Top *Mixed `json:"top,omitempty"`
}

// Items returns the ranked results, or nil when there were none.
func (t TopResults) Items() []resource.Resource {
	if t.Top == nil {
		return nil
	}
	return t.Top.Data
}

// UnmarshalJSON decodes the ranked group, reporting failures under
// results.top.
func (t *TopResults) UnmarshalJSON(b []byte) error {
	type plain TopResults
	var out plain
	if err := decodeFields(b, &out, "results"); err != nil {
		return err
	}
	*t = TopResults(out)
	return nil
}

// TopSearch is the envelope of a search requested with groups=top.
type TopSearch struct {
	Root
	Results TopResults `json:"results"`
}

// SearchHintResults holds autocomplete terms.
type SearchHintResults struct {
	Terms []string `json:"terms"`
}

// SearchHints is the envelope of a search hints request.
type SearchHints struct {
	Root
	Results SearchHintResults `json:"results"`
}

// LibrarySearchResults groups library search matches by resource type.
type LibrarySearchResults struct {
	Albums      *LibraryAlbums      `json:"library-albums,omitempty"`
	Artists     *LibraryArtists     `json:"library-artists,omitempty"`
	MusicVideos *LibraryMusicVideos `json:"library-music-videos,omitempty"`
	Playlists   *LibraryPlaylists   `json:"library-playlists,omitempty"`
	Songs       *LibrarySongs       `json:"library-songs,omitempty"`
}

// UnmarshalJSON decodes each group, reporting failures under
// results.<group>.
func (s *LibrarySearchResults) UnmarshalJSON(b []byte) error {
	type plain LibrarySearchResults
	var out plain
	if err := decodeFields(b, &out, "results"); err != nil {
		return err
	}
	*s = LibrarySearchResults(out)
	return nil
}

// LibrarySearch is the envelope of a library search.
type LibrarySearch struct {
	Root
	Results LibrarySearchResults `json:"results"`
}
