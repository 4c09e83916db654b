package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/sydlexius/amkit/applemusic"
	"github.com/sydlexius/amkit/internal/config"
	"github.com/sydlexius/amkit/resource"
)

type app struct {
	client *applemusic.Client
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

// fetchFunc fetches one resource by id under a storefront or user token.
type fetchFunc func(ctx context.Context, key, id string, opts ...applemusic.Option) (any, error)

// listFunc fetches one page of a collection for a user token.
type listFunc func(ctx context.Context, userToken string, opts ...applemusic.Option) (any, error)

func catalogGet[R any, N ~string](r applemusic.CatalogResource[R, N]) (resource.Type, fetchFunc) {
	return r.Type(), func(ctx context.Context, storefront, id string, opts ...applemusic.Option) (any, error) {
		v, err := r.Get(ctx, storefront, id, nil, opts...)
		return v, err
	}
}

func libraryAll[R any, N ~string](r applemusic.LibraryResource[R, N]) (resource.Type, listFunc) {
	return r.Type(), func(ctx context.Context, userToken string, opts ...applemusic.Option) (any, error) {
		v, err := r.All(ctx, userToken, nil, opts...)
		return v, err
	}
}

func catalogGetters(c *applemusic.Catalog) map[resource.Type]fetchFunc {
	m := make(map[resource.Type]fetchFunc)
	add := func(t resource.Type, f fetchFunc) { m[t] = f }
	add(catalogGet(c.Activities))
	add(catalogGet(c.Albums))
	add(catalogGet(c.AppleCurators))
	add(catalogGet(c.Artists))
	add(catalogGet(c.Curators))
	add(catalogGet(c.Genres))
	add(catalogGet(c.MusicVideos))
	add(catalogGet(c.Playlists))
	add(catalogGet(c.Songs))
	add(catalogGet(c.Stations))
	return m
}

// libraryListers is keyed by the short collection name used on the command
// line, such as "songs" for library-songs.
func libraryListers(l *applemusic.Library) map[string]listFunc {
	m := make(map[string]listFunc)
	add := func(t resource.Type, f listFunc) {
		m[strings.TrimPrefix(string(t), "library-")] = f
	}
	add(libraryAll(l.Albums))
	add(libraryAll(l.Artists))
	add(libraryAll(l.MusicVideos))
	add(libraryAll(l.Playlists))
	add(libraryAll(l.Songs))
	return m
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "catalog":
		return a.catalog(ctx, args)
	case "library":
		return a.library(ctx, args)
	case "ratings":
		return a.ratings(ctx, args)
	case "storefronts":
		return a.storefronts(ctx, args)
	}
	return usageError("unknown command %q", command)
}

// callFlags are the flags shared by every request-issuing command.
type callFlags struct {
	storefront string
	locale     string
	limit      int
	offset     int
}

func (a *app) newFlags(name string) (*flag.FlagSet, *callFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cf := &callFlags{}
	fs.StringVar(&cf.storefront, "storefront", a.cfg.User.Storefront, "storefront code")
	fs.StringVar(&cf.locale, "l", a.cfg.User.Locale, "response locale")
	fs.IntVar(&cf.limit, "limit", 0, "page size")
	fs.IntVar(&cf.offset, "offset", 0, "page offset")
	return fs, cf
}

func (cf *callFlags) options() []applemusic.Option {
	var opts []applemusic.Option
	if cf.locale != "" {
		opts = append(opts, applemusic.WithLocale(cf.locale))
	}
	if cf.limit > 0 {
		opts = append(opts, applemusic.WithLimit(cf.limit))
	}
	if cf.offset > 0 {
		opts = append(opts, applemusic.WithOffset(cf.offset))
	}
	return opts
}

func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, usageError("%s: %v", fs.Name(), err)
	}
	return fs.Args(), nil
}

func (a *app) userToken() (string, error) {
	if a.cfg.User.MusicToken == "" {
		return "", errors.New("a music user token is required (set AM_USER_TOKEN)")
	}
	return a.cfg.User.MusicToken, nil
}

func (a *app) catalog(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("catalog: missing subcommand")
	}
	sub, args := args[0], args[1:]

	switch sub {
	case "get":
		fs, cf := a.newFlags("catalog get")
		rest, err := parseFlags(fs, args)
		if err != nil {
			return err
		}
		if len(rest) != 2 {
			return usageError("catalog get: expected <type> <id>")
		}
		get, ok := catalogGetters(a.client.Catalog)[resource.Type(rest[0])]
		if !ok {
			return usageError("catalog get: unknown type %q", rest[0])
		}
		v, err := get(ctx, cf.storefront, rest[1], cf.options()...)
		if err != nil {
			return err
		}
		return writeJSON(a.out, v)

	case "search":
		fs, cf := a.newFlags("catalog search")
		types := fs.String("types", "songs,albums,artists", "comma separated resource types")
		rest, err := parseFlags(fs, args)
		if err != nil {
			return err
		}
		if len(rest) == 0 {
			return usageError("catalog search: missing term")
		}
		v, err := a.client.Catalog.Search(ctx, cf.storefront, strings.Join(rest, " "),
			splitList[resource.Type](*types), cf.options()...)
		if err != nil {
			return err
		}
		return writeJSON(a.out, v)

	case "charts":
		fs, cf := a.newFlags("catalog charts")
		types := fs.String("types", "songs,albums", "comma separated chart types")
		chart := fs.String("chart", "", "chart name")
		genre := fs.String("genre", "", "genre id")
		if _, err := parseFlags(fs, args); err != nil {
			return err
		}
		v, err := a.client.Catalog.Charts(ctx, cf.storefront,
			splitList[resource.ChartType](*types), *chart, *genre, cf.options()...)
		if err != nil {
			return err
		}
		return writeJSON(a.out, v)
	}
	return usageError("catalog: unknown subcommand %q", sub)
}

func (a *app) library(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "list" {
		return usageError("library: expected list <type>")
	}
	fs, cf := a.newFlags("library list")
	rest, err := parseFlags(fs, args[1:])
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return usageError("library list: expected <type>")
	}
	list, ok := libraryListers(a.client.Library)[rest[0]]
	if !ok {
		return usageError("library list: unknown type %q", rest[0])
	}
	tok, err := a.userToken()
	if err != nil {
		return err
	}
	v, err := list(ctx, tok, cf.options()...)
	if err != nil {
		return err
	}
	return writeJSON(a.out, v)
}

func (a *app) ratings(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return usageError("ratings: expected get|put|delete <type> <id>")
	}
	sub, typ, id := args[0], args[1], args[2]
	r, ok := a.client.Ratings.For(resource.Type(typ))
	if !ok {
		return usageError("ratings: %q cannot be rated", typ)
	}
	tok, err := a.userToken()
	if err != nil {
		return err
	}

	var v any
	switch sub {
	case "get":
		v, err = r.Get(ctx, tok, id)
	case "put":
		if len(args) != 4 {
			return usageError("ratings put: expected <type> <id> <1|-1>")
		}
		value, perr := strconv.Atoi(args[3])
		if perr != nil {
			return usageError("ratings put: value %q is not a number", args[3])
		}
		v, err = r.Put(ctx, tok, id, value)
	case "delete":
		v, err = r.Delete(ctx, tok, id)
	default:
		return usageError("ratings: unknown subcommand %q", sub)
	}
	if err != nil {
		return err
	}
	a.logger.Debug("rating call complete", slog.String("op", sub), slog.String("type", typ), slog.String("id", id))
	return writeJSON(a.out, v)
}

func (a *app) storefronts(ctx context.Context, args []string) error {
	fs, cf := a.newFlags("storefronts")
	ids, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		v, err := a.client.Storefronts.All(ctx, cf.options()...)
		if err != nil {
			return err
		}
		return writeJSON(a.out, v)
	}
	v, err := a.client.Storefronts.List(ctx, ids, cf.options()...)
	if err != nil {
		return err
	}
	return writeJSON(a.out, v)
}

// splitList splits a comma separated flag value, dropping blanks.
func splitList[S ~string](s string) []S {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string { return strings.TrimSpace(p) })
	return lo.Map(lo.Compact(parts), func(p string, _ int) S { return S(p) })
}
