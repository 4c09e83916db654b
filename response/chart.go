package response

import (
	"encoding/json"

	"github.com/sydlexius/amkit/resource"
)

// Chart is one ranked chart of resources of variant T.
type Chart[T resource.Resource] struct {
	Chart   string
	Name    string
	OrderID string
	Href    string
	Next    string
	Data    []T
}

type wireChart struct {
	Chart   string            `json:"chart"`
	Name    string            `json:"name"`
	OrderID string            `json:"orderId,omitempty"`
	Href    string            `json:"href,omitempty"`
	Next    string            `json:"next,omitempty"`
	Data    []json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes the chart entries by discriminant.
func (c *Chart[T]) UnmarshalJSON(b []byte) error {
	var w wireChart
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	data, err := resource.DecodeItems[T](w.Data, "data")
	if err != nil {
		return err
	}
	*c = Chart[T]{
		Chart:   w.Chart,
		Name:    w.Name,
		OrderID: w.OrderID,
		Href:    w.Href,
		Next:    w.Next,
		Data:    data,
	}
	return nil
}

// MarshalJSON writes the chart in wire form.
func (c Chart[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Chart   string `json:"chart"`
		Name    string `json:"name"`
		OrderID string `json:"orderId,omitempty"`
		Href    string `json:"href,omitempty"`
		Next    string `json:"next,omitempty"`
		Data    []T    `json:"data"`
	}{c.Chart, c.Name, c.OrderID, c.Href, c.Next, c.Data})
}

// ChartList is the array of charts returned for one type.
type ChartList[T resource.Resource] []Chart[T]

// UnmarshalJSON decodes each chart, reporting a failure under its index.
func (l *ChartList[T]) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	if items == nil {
		*l = nil
		return nil
	}
	out := make(ChartList[T], 0, len(items))
	for i, raw := range items {
		var c Chart[T]
		if err := json.Unmarshal(raw, &c); err != nil {
			return resource.AtPath(err, resource.IndexPath("", i))
		}
		out = append(out, c)
	}
	*l = out
	return nil
}

// ChartResults holds the charts of each requested type.
type ChartResults struct {
	Albums      ChartList[*resource.Album]      `json:"albums,omitempty"`
	MusicVideos ChartList[*resource.MusicVideo] `json:"music-videos,omitempty"`
	Songs       ChartList[*resource.Song]       `json:"songs,omitempty"`
	Playlists   ChartList[*resource.Playlist]   `json:"playlists,omitempty"`
}

// UnmarshalJSON decodes each chart list, reporting failures under
// results.<type>[<chart>].
func (r *ChartResults) UnmarshalJSON(b []byte) error {
	type plain ChartResults
	var out plain
	if err := decodeFields(b, &out, "results"); err != nil {
		return err
	}
	*r = ChartResults(out)
	return nil
}

// Charts is the envelope of a catalog charts request.
type Charts struct {
	Root
	Results ChartResults `json:"results"`
}
