package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Object is the shared shape of every resource variant. The kind parameter
// fixes the discriminant, so a value can never carry a tag that disagrees
// with its attributes.
type Object[K kind, A any, R any] struct {
	ID            string
	Href          string
	Meta          map[string]any
	Attributes    *A
	Relationships *R
}

// ResourceType returns the variant's fixed discriminant.
func (o *Object[K, A, R]) ResourceType() Type {
	var k K
	return k.tag()
}

// ResourceID returns the resource identifier.
func (o *Object[K, A, R]) ResourceID() string { return o.ID }

func (o *Object[K, A, R]) sealed() {}

// wireObject is the JSON layout shared by all variants.
type wireObject[A any] struct {
	ID            string                     `json:"id"`
	Type          Type                       `json:"type"`
	Href          string                     `json:"href,omitempty"`
	Meta          map[string]any             `json:"meta,omitempty"`
	Attributes    *A                         `json:"attributes,omitempty"`
	Relationships map[string]json.RawMessage `json:"relationships,omitempty"`
}

// MarshalJSON writes the resource with its discriminant.
func (o Object[K, A, R]) MarshalJSON() ([]byte, error) {
	var k K
	out := struct {
		ID            string         `json:"id"`
		Type          Type           `json:"type"`
		Href          string         `json:"href,omitempty"`
		Meta          map[string]any `json:"meta,omitempty"`
		Attributes    *A             `json:"attributes,omitempty"`
		Relationships *R             `json:"relationships,omitempty"`
	}{
		ID:            o.ID,
		Type:          k.tag(),
		Href:          o.Href,
		Meta:          o.Meta,
		Attributes:    o.Attributes,
		Relationships: o.Relationships,
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a resource, rejecting a discriminant that does not
// match the variant. A missing discriminant is accepted.
func (o *Object[K, A, R]) UnmarshalJSON(data []byte) error {
	var k K
	var w wireObject[A]
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type != "" && w.Type != k.tag() {
		return &DecodingError{
			Tag:   string(w.Type),
			Cause: fmt.Errorf("%w: expected %s", ErrTypeMismatch, k.tag()),
		}
	}

	*o = Object[K, A, R]{
		ID:         w.ID,
		Href:       w.Href,
		Meta:       w.Meta,
		Attributes: w.Attributes,
	}
	if w.Relationships == nil {
		return nil
	}

	// Each relationship is decoded on its own so a failure can be reported
	// under its name.
	rels := new(R)
	for _, name := range slices.Sorted(maps.Keys(w.Relationships)) {
		raw := w.Relationships[name]
		single, err := json.Marshal(map[string]json.RawMessage{name: raw})
		if err != nil {
			return err
		}
		if err := json.Unmarshal(single, rels); err != nil {
			return AtPath(err, "relationships."+name)
		}
	}
	o.Relationships = rels
	return nil
}

// NoRelationships is the relationships record of variants that have none.
type NoRelationships struct{}

// isNull reports whether a raw JSON value is absent or the literal null.
func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
