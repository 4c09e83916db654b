// Package engine implements the generic request verbs every endpoint
// funnels through: fetch one, fetch a relationship page, fetch many, fetch
// all, create, rate and delete. Each verb validates its arguments before
// any I/O, builds the path and query, sends the request through a Transport
// and decodes the body into the caller's envelope type.
//
// The engine never retries and never returns a partially populated value on
// failure.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"github.com/sydlexius/amkit/query"
	"github.com/sydlexius/amkit/resource"
	"github.com/sydlexius/amkit/response"
)

// maxBodySize caps how much of a response body is read.
var maxBodySize int64 = 16 << 20

// ErrBodyTooLarge is the cause of a DecodingError for a successful reply
// whose body exceeds the read limit.
var ErrBodyTooLarge = errors.New("response body too large")

// Request is one call handed to a Transport. Path is relative to the API
// base and Query is already encoded.
type Request struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Reply is a Transport's answer. The caller closes Body.
type Reply struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// Transport sends requests. It owns base URL resolution, TLS, the default
// headers and any retry policy. Implementations must be safe for
// concurrent use.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Reply, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req *Request) (*Reply, error)

// Send calls f.
func (f TransportFunc) Send(ctx context.Context, req *Request) (*Reply, error) {
	return f(ctx, req)
}

// Engine issues requests through a Transport. It holds no per-user state
// and is safe for concurrent use.
type Engine struct {
	transport Transport
	logger    *slog.Logger
}

// New creates an Engine. A nil logger discards output.
func New(t Transport, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		transport: t,
		logger:    logger.With(slog.String("component", "engine")),
	}
}

// FetchResource gets {scope}/{type}/{id} with optional relationship
// includes.
func FetchResource[T any, N ~string](ctx context.Context, e *Engine, scope Scope, typ resource.Type, id string, include []N, locale string) (*T, error) {
	const op = "FetchResource"
	if err := checkTarget(op, scope, typ); err != nil {
		return nil, err
	}
	if blank(id) {
		return nil, &ErrInvalidArgument{Op: op, Arg: "id", Reason: "must not be blank"}
	}

	q := query.New().Include(names(include)...).Locale(locale)
	return do[T](ctx, e, http.MethodGet, scope, scope.Path(scope.Collection(typ), id), q, nil)
}

// FetchResourceRelationship gets one page of {scope}/{type}/{id}/{rel}.
// Catalog relationships page by limit and offset; library relationships
// accept a limit only, and an offset fails with ErrInvalidArgument.
func FetchResourceRelationship[T any, N ~string](ctx context.Context, e *Engine, scope Scope, typ resource.Type, id string, rel N, page query.Page, locale string) (*T, error) {
	const op = "FetchResourceRelationship"
	if err := checkTarget(op, scope, typ); err != nil {
		return nil, err
	}
	if blank(id) {
		return nil, &ErrInvalidArgument{Op: op, Arg: "id", Reason: "must not be blank"}
	}
	if blank(string(rel)) {
		return nil, &ErrInvalidArgument{Op: op, Arg: "relationship", Reason: "must not be blank"}
	}
	if err := checkPage(op, page); err != nil {
		return nil, err
	}

	q := query.New()
	if scope.IsLibrary() {
		if page.HasOffset() {
			return nil, &ErrInvalidArgument{Op: op, Arg: "offset", Reason: "library relationships page by limit only"}
		}
		q.Limit(page.Limit)
	} else {
		q.Page(page)
	}
	q.Locale(locale)
	return do[T](ctx, e, http.MethodGet, scope, scope.Path(scope.Collection(typ), id, string(rel)), q, nil)
}

// FetchMultiple gets {scope}/{type} selected by ids, by filters, or both.
// At least one selector is required.
func FetchMultiple[T any, N ~string](ctx context.Context, e *Engine, scope Scope, typ resource.Type, ids []string, include []N, locale string, filters *query.Builder) (*T, error) {
	const op = "FetchMultiple"
	if err := checkTarget(op, scope, typ); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if blank(id) {
			return nil, &ErrInvalidArgument{Op: op, Arg: "ids", Reason: "must not contain blank ids"}
		}
	}
	if len(ids) == 0 && filters.Len() == 0 {
		return nil, &ErrInvalidArgument{Op: op, Arg: "ids", Reason: "ids or a filter is required"}
	}

	q := query.New().IDs(ids...).Merge(filters).Include(names(include)...).Locale(locale)
	return do[T](ctx, e, http.MethodGet, scope, scope.Path(scope.Collection(typ)), q, nil)
}

// FetchAll gets one page of the whole {scope}/{type} collection.
func FetchAll[T any, N ~string](ctx context.Context, e *Engine, scope Scope, typ resource.Type, include []N, page query.Page, locale string) (*T, error) {
	const op = "FetchAll"
	if err := checkTarget(op, scope, typ); err != nil {
		return nil, err
	}
	if err := checkPage(op, page); err != nil {
		return nil, err
	}

	q := query.New().Page(page).Include(names(include)...).Locale(locale)
	return do[T](ctx, e, http.MethodGet, scope, scope.Path(scope.Collection(typ)), q, nil)
}

// Get issues a GET to a fixed path under scope, such as charts, search or
// history endpoints.
func Get[T any](ctx context.Context, e *Engine, scope Scope, path string, q *query.Builder) (*T, error) {
	const op = "Get"
	if err := scope.validate(op); err != nil {
		return nil, err
	}
	if blank(path) {
		return nil, &ErrInvalidArgument{Op: op, Arg: "path", Reason: "must not be blank"}
	}
	return do[T](ctx, e, http.MethodGet, scope, path, q, nil)
}

// CreateResource POSTs body as JSON to path and decodes the created
// representation. q may be nil.
func CreateResource[T any](ctx context.Context, e *Engine, scope Scope, path string, q *query.Builder, body any) (*T, error) {
	const op = "CreateResource"
	if err := scope.validate(op); err != nil {
		return nil, err
	}
	if blank(path) {
		return nil, &ErrInvalidArgument{Op: op, Arg: "path", Reason: "must not be blank"}
	}
	if isNil(body) {
		return nil, &ErrInvalidArgument{Op: op, Arg: "body", Reason: "must not be nil"}
	}
	return do[T](ctx, e, http.MethodPost, scope, path, q, body)
}

// Post issues a body-less POST whose parameters travel in the query, such
// as adding catalog items to the library.
func Post[T any](ctx context.Context, e *Engine, scope Scope, path string, q *query.Builder) (*T, error) {
	const op = "Post"
	if err := scope.validate(op); err != nil {
		return nil, err
	}
	if blank(path) {
		return nil, &ErrInvalidArgument{Op: op, Arg: "path", Reason: "must not be blank"}
	}
	if q.Len() == 0 {
		return nil, &ErrInvalidArgument{Op: op, Arg: "query", Reason: "must not be empty"}
	}
	return do[T](ctx, e, http.MethodPost, scope, path, q, nil)
}

// MutateRating PUTs a rating to {scope}/{type}/{id}. PUT makes the call an
// idempotent upsert.
func MutateRating[T any](ctx context.Context, e *Engine, scope Scope, typ resource.Type, id string, body any) (*T, error) {
	const op = "MutateRating"
	if err := checkTarget(op, scope, typ); err != nil {
		return nil, err
	}
	if blank(id) {
		return nil, &ErrInvalidArgument{Op: op, Arg: "id", Reason: "must not be blank"}
	}
	if isNil(body) {
		return nil, &ErrInvalidArgument{Op: op, Arg: "body", Reason: "must not be nil"}
	}
	return do[T](ctx, e, http.MethodPut, scope, scope.Path(scope.Collection(typ), id), nil, body)
}

// DeleteResource DELETEs path and returns the minimal envelope.
func DeleteResource(ctx context.Context, e *Engine, scope Scope, path string) (*response.Root, error) {
	const op = "DeleteResource"
	if err := scope.validate(op); err != nil {
		return nil, err
	}
	if blank(path) {
		return nil, &ErrInvalidArgument{Op: op, Arg: "path", Reason: "must not be blank"}
	}
	return do[response.Root](ctx, e, http.MethodDelete, scope, path, nil, nil)
}

// do sends one request and decodes a success body into a new T.
func do[T any](ctx context.Context, e *Engine, method string, scope Scope, path string, q *query.Builder, body any) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ErrCancelled{Cause: err}
	}

	req := &Request{
		Method: method,
		Path:   path,
		Query:  q.Encode(),
		Header: scope.header(),
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &ErrInvalidArgument{Op: method + " " + path, Arg: "body", Reason: err.Error()}
		}
		req.Body = payload
	}

	start := time.Now()
	reply, err := e.transport.Send(ctx, req)
	if err != nil {
		return nil, transportError(ctx, req, err)
	}
	defer reply.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(reply.Body, maxBodySize+1))
	if err != nil {
		return nil, transportError(ctx, req, err)
	}
	oversized := int64(len(data)) > maxBodySize
	if oversized {
		data = data[:maxBodySize]
	}

	e.logger.Debug("request complete",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", reply.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if reply.StatusCode < 200 || reply.StatusCode > 299 {
		failed := &ErrRequestFailed{
			Method:     method,
			Path:       path,
			StatusCode: reply.StatusCode,
			Body:       data,
		}
		var root response.Root
		if json.Unmarshal(data, &root) == nil {
			failed.Errors = root.Errors
		}
		return nil, failed
	}

	if oversized {
		return nil, &resource.DecodingError{
			Cause: fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxBodySize),
		}
	}

	out := new(T)
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		var de *resource.DecodingError
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, &resource.DecodingError{Cause: err}
	}
	return out, nil
}

func transportError(ctx context.Context, req *Request, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return &ErrCancelled{Cause: err}
	}
	return &ErrRequestFailed{Method: req.Method, Path: req.Path, Cause: err}
}

func checkTarget(op string, scope Scope, typ resource.Type) error {
	if err := scope.validate(op); err != nil {
		return err
	}
	if !typ.Valid() {
		return &ErrInvalidArgument{Op: op, Arg: "type", Reason: "unknown resource type " + string(typ)}
	}
	return nil
}

func checkPage(op string, page query.Page) error {
	if page.Limit < 0 {
		return &ErrInvalidArgument{Op: op, Arg: "limit", Reason: "must not be negative"}
	}
	if page.Offset < 0 {
		return &ErrInvalidArgument{Op: op, Arg: "offset", Reason: "must not be negative"}
	}
	return nil
}

func names[N ~string](in []N) []string {
	out := make([]string, len(in))
	for i, n := range in {
		out[i] = string(n)
	}
	return out
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
