package engine

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/sydlexius/amkit/resource"
)

// HeaderUserToken carries the user's music token on user-scoped calls.
const HeaderUserToken = "Media-User-Token"

type namespace int

const (
	nsGlobal namespace = iota
	nsCatalog
	nsLibrary
	nsRatings
	nsPersonal
)

// Scope is the namespace a request is issued in. User scopes carry the
// user's token, which is attached to that request only.
type Scope struct {
	ns         namespace
	storefront string
	userToken  string
}

// Global is the root namespace, used by the storefronts endpoints.
func Global() Scope { return Scope{ns: nsGlobal} }

// Catalog is the public catalog of one storefront.
func Catalog(storefront string) Scope {
	return Scope{ns: nsCatalog, storefront: storefront}
}

// Library is the user's library under me/library.
func Library(userToken string) Scope {
	return Scope{ns: nsLibrary, userToken: userToken}
}

// Ratings is the user's ratings under me/ratings.
func Ratings(userToken string) Scope {
	return Scope{ns: nsRatings, userToken: userToken}
}

// Personal is the user's namespace under me, holding history,
// recommendations and the user storefront.
func Personal(userToken string) Scope {
	return Scope{ns: nsPersonal, userToken: userToken}
}

// IsUser reports whether the scope requires a user token.
func (s Scope) IsUser() bool {
	return s.ns == nsLibrary || s.ns == nsRatings || s.ns == nsPersonal
}

// IsLibrary reports whether the scope is the user's library.
func (s Scope) IsLibrary() bool { return s.ns == nsLibrary }

// Storefront returns the catalog storefront, or "".
func (s Scope) Storefront() string { return s.storefront }

func (s Scope) prefix() string {
	switch s.ns {
	case nsCatalog:
		return "catalog/" + url.PathEscape(s.storefront)
	case nsLibrary:
		return "me/library"
	case nsRatings:
		return "me/ratings"
	case nsPersonal:
		return "me"
	default:
		return ""
	}
}

// validate checks the scope's own arguments.
func (s Scope) validate(op string) error {
	if s.ns == nsCatalog && blank(s.storefront) {
		return &ErrInvalidArgument{Op: op, Arg: "storefront", Reason: "must not be blank"}
	}
	if s.IsUser() && blank(s.userToken) {
		return &ErrInvalidArgument{Op: op, Arg: "userToken", Reason: "required for user-scoped requests"}
	}
	return nil
}

// Collection returns the path segment naming resources of type t. Library
// paths use the plain type name: library-songs live at me/library/songs.
func (s Scope) Collection(t resource.Type) string {
	if s.ns == nsLibrary {
		return strings.TrimPrefix(string(t), "library-")
	}
	return string(t)
}

// Path joins the scope prefix with the given segments. Segments are
// escaped individually, so an id cannot add path components.
func (s Scope) Path(segments ...string) string {
	parts := make([]string, 0, len(segments)+1)
	if p := s.prefix(); p != "" {
		parts = append(parts, p)
	}
	for _, seg := range segments {
		parts = append(parts, url.PathEscape(seg))
	}
	return strings.Join(parts, "/")
}

// header returns a fresh header set for one request.
func (s Scope) header() http.Header {
	h := make(http.Header)
	if s.IsUser() {
		h.Set(HeaderUserToken, s.userToken)
	}
	return h
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
