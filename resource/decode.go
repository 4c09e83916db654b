package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownType is the cause of a DecodingError for an unrecognized
// discriminant.
var ErrUnknownType = errors.New("unknown resource type")

// ErrTypeMismatch is the cause of a DecodingError when a known variant
// appears where a different one was expected.
var ErrTypeMismatch = errors.New("unexpected resource type")

// DecodingError reports a payload that does not match the resource model.
// Tag is the offending discriminant when one was read; Path locates the
// value inside the document (for example "data[3].relationships.tracks.data[0]").
type DecodingError struct {
	Tag   string
	Path  string
	Cause error
}

func (e *DecodingError) Error() string {
	msg := "decoding resource"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Tag != "" {
		msg += fmt.Sprintf(" (type %q)", e.Tag)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DecodingError) Unwrap() error { return e.Cause }

// AtPath attaches a location prefix to err, converting plain decoder
// errors to DecodingError.
func AtPath(err error, prefix string) error {
	var de *DecodingError
	if errors.As(err, &de) {
		out := *de
		out.Path = joinPath(prefix, de.Path)
		return &out
	}
	return &DecodingError{Path: prefix, Cause: err}
}

func joinPath(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	case path[0] == '[':
		return prefix + path
	default:
		return prefix + "." + path
	}
}

// IndexPath renders the location of element i of the named array.
func IndexPath(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// Decode resolves one raw resource object to its concrete variant by its
// "type" field. Missing and unknown discriminants fail with DecodingError.
func Decode(raw []byte) (Resource, error) {
	return decodeAt(raw, "")
}

func decodeAt(raw []byte, path string) (Resource, error) {
	var head struct {
		Type *Type `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, &DecodingError{Path: path, Cause: err}
	}
	if head.Type == nil {
		return nil, &DecodingError{Path: path, Cause: errors.New("missing type discriminant")}
	}

	ctor, ok := constructors[*head.Type]
	if !ok {
		return nil, &DecodingError{Tag: string(*head.Type), Path: path, Cause: ErrUnknownType}
	}

	r := ctor()
	if err := json.Unmarshal(raw, r); err != nil {
		de := AtPath(err, path).(*DecodingError)
		if de.Tag == "" {
			de.Tag = string(*head.Type)
		}
		return nil, de
	}
	return r, nil
}

// DecodeAs decodes a resource that must be of variant T.
func DecodeAs[T Resource](raw []byte) (T, error) {
	return decodeAs[T](raw, "")
}

func decodeAs[T Resource](raw []byte, path string) (T, error) {
	var zero T
	r, err := decodeAt(raw, path)
	if err != nil {
		return zero, err
	}
	t, ok := r.(T)
	if !ok {
		return zero, &DecodingError{
			Tag:   string(r.ResourceType()),
			Path:  path,
			Cause: fmt.Errorf("%w: got %T, want %T", ErrTypeMismatch, r, zero),
		}
	}
	return t, nil
}

// DecodeList decodes a JSON array of resources of variant T. The whole list
// fails on the first element that cannot be decoded; name prefixes the
// element path in the returned error.
func DecodeList[T Resource](raw []byte, name string) ([]T, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &DecodingError{Path: name, Cause: err}
	}
	return DecodeItems[T](items, name)
}

// DecodeItems is DecodeList over an already split array.
func DecodeItems[T Resource](items []json.RawMessage, name string) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		t, err := decodeAs[T](item, IndexPath(name, i))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
