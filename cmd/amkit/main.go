package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/term"

	"github.com/sydlexius/amkit/applemusic"
	"github.com/sydlexius/amkit/devtoken"
	"github.com/sydlexius/amkit/internal/config"
	"github.com/sydlexius/amkit/internal/logging"
	"github.com/sydlexius/amkit/internal/version"
	"github.com/sydlexius/amkit/transport"
)

const usageText = `usage: amkit <command> [flags] [args]

commands:
  catalog get <type> <id>              fetch a catalog resource
  catalog search <term>                search the catalog
  catalog charts                       fetch the storefront charts
  library list <type>                  list a library collection
  ratings get <type> <id>              read a rating
  ratings put <type> <id> <1|-1>       love or dislike a resource
  ratings delete <type> <id>           remove a rating
  storefronts [ids...]                 list storefronts
  token                                print a developer token
  version                              print the version
`

var errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("amkit %s (%s)\n", version.Version, version.Commit)
		return
	case "help", "-h", "--help":
		fmt.Print(usageText)
		return
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fail(os.Stderr, err)
		os.Exit(1)
	}
}

// fail prints err, highlighting the prefix when stderr is a terminal.
func fail(w *os.File, err error) {
	prefix := "error:"
	if term.IsTerminal(int(w.Fd())) { //nolint:gosec // fd fits in int
		prefix = errorStyle.Render(prefix)
	}
	fmt.Fprintf(w, "%s %v\n", prefix, err)
}

func run(command string, args []string) error {
	// A missing .env file is fine; values may come from the environment.
	_ = godotenv.Load()

	configPath := os.Getenv("AM_CONFIG_PATH")
	if configPath == "" {
		configPath = "amkit.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logManager, logger := logging.NewManager(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxFiles:   cfg.Logging.MaxFiles,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Console:    os.Stderr,
	})
	defer logManager.Close() //nolint:errcheck
	slog.SetDefault(logger)

	if os.Getenv("AM_DEBUG") != "" {
		logManager.SetLevel("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := tokenSource(cfg)
	if err != nil {
		return err
	}

	if command == "token" {
		return printToken(os.Stdout, tokens)
	}

	client, err := applemusic.New(transport.Options{
		BaseURL:           cfg.API.BaseURL,
		Tokens:            tokens,
		Timeout:           cfg.API.Timeout.Std(),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		MaxRetries:        cfg.API.MaxRetries,
		Protocol:          transport.Protocol(cfg.API.Protocol),
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("closing client", "error", err)
		}
	}()

	app := &app{client: client, cfg: cfg, logger: logger, out: os.Stdout}
	return app.dispatch(ctx, command, args)
}

// tokenSource returns the configured developer token, signing one locally
// when no literal token is set.
func tokenSource(cfg *config.Config) (oauth2.TokenSource, error) {
	if !cfg.SignsTokens() {
		return devtoken.Static(cfg.Auth.DeveloperToken), nil
	}
	key, err := devtoken.LoadPrivateKey(cfg.Auth.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("loading signing key: %w", err)
	}
	src, err := devtoken.NewSource(devtoken.Config{
		TeamID:     cfg.Auth.TeamID,
		KeyID:      cfg.Auth.KeyID,
		PrivateKey: key,
		TTL:        cfg.Auth.TokenTTL.Std(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating token signer: %w", err)
	}
	return src, nil
}

func printToken(w io.Writer, tokens oauth2.TokenSource) error {
	tok, err := tokens.Token()
	if err != nil {
		return fmt.Errorf("obtaining token: %w", err)
	}
	_, err = fmt.Fprintln(w, tok.AccessToken)
	return err
}

// writeJSON encodes v to w, indented when w is a terminal.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd fits in int
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

var errUsage = errors.New("invalid usage")

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s\n\n%s", errUsage, fmt.Sprintf(format, args...), usageText)
}
