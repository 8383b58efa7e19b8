package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/ganpi-go/internal/app"
	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/infrastructure/cli/helpers"
)

// Flags are the root-level switches shared by every subcommand.
type Flags struct {
	Verbose      bool
	ShowContext  bool
	Copy         bool
	Offline      bool
	SkipValidate bool
	Dialect      string
	ConfigPath   string
}

// Env is shared by all commands. The container is built lazily, after flags
// have been parsed, and at most once per process.
type Env struct {
	Flags    Flags
	In       io.Reader
	Out      io.Writer
	Renderer *helpers.Renderer
	Prompter *helpers.Prompter
	// Build defaults to app.BuildContainer.
	Build func(context.Context, app.Options) (*app.Container, error)

	container *app.Container
	validated bool
}

// NewEnv builds an environment on the given streams (nil means stdio).
func NewEnv(in io.Reader, out io.Writer) *Env {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	renderer := helpers.NewRenderer(out)
	return &Env{
		In:       in,
		Out:      out,
		Renderer: renderer,
		Prompter: helpers.NewPrompter(in, out, renderer),
		Build:    app.BuildContainer,
	}
}

// Container returns the dependency graph, building it on first use.
func (e *Env) Container(ctx context.Context) (*app.Container, error) {
	if e.container != nil {
		return e.container, nil
	}
	c, err := e.build(ctx)
	if err != nil {
		return nil, err
	}
	e.container = c
	return c, nil
}

func (e *Env) build(ctx context.Context) (*app.Container, error) {
	build := e.Build
	if build == nil {
		build = app.BuildContainer
	}
	c, err := build(ctx, app.Options{
		ConfigPath: e.Flags.ConfigPath,
		Dialect:    e.Flags.Dialect,
		Offline:    e.Flags.Offline,
		Verbose:    e.Flags.Verbose,
		Stdin:      e.In,
	})
	if err != nil {
		return nil, err
	}
	c.Confirmer.Prompter = e.Prompter
	c.QueryService.Clipboard = helpers.NewClipboard()
	c.QueryService.Reporter = e.Renderer
	return c, nil
}

// Close releases the container, if one was built.
func (e *Env) Close() error {
	if e.container == nil {
		return nil
	}
	return e.container.Close()
}

// Ready returns a container whose API key has been checked once. Without a key
// on a terminal the user is asked for one, as on first run.
func (e *Env) Ready(ctx context.Context) (*app.Container, error) {
	c, err := e.Container(ctx)
	if err != nil {
		return nil, err
	}
	if e.validated || e.Flags.Offline {
		return c, nil
	}
	if !c.Config.HasAPIKey() {
		if c, err = e.setupKey(ctx, c); err != nil {
			return nil, err
		}
	}
	if !e.Flags.SkipValidate {
		if err := c.QueryService.Validate(ctx); err != nil {
			return nil, fmt.Errorf("API key check failed: %w", err)
		}
	}
	e.validated = true
	return c, nil
}

func (e *Env) setupKey(ctx context.Context, c *app.Container) (*app.Container, error) {
	if !e.Prompter.Interactive() {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY or run `ganpi config set api_key <key>`", domain.ErrMissingAPIKey)
	}
	fmt.Fprintln(e.Out, "No API key found. Let's set up your Gemini API key:")
	fmt.Fprintln(e.Out, "   1. Go to https://aistudio.google.com/app/apikey")
	fmt.Fprintln(e.Out, "   2. Create a new API key")
	fmt.Fprintln(e.Out, "   3. Enter it below")
	key, err := e.Prompter.ReadLine("\n   API Key: ")
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, domain.ErrMissingAPIKey
	}

	cfg := c.Config
	cfg.APIKey = key
	if err := helpers.SaveConfigWithValidation(c.ConfigLoader, cfg); err != nil {
		return nil, err
	}
	fmt.Fprintf(e.Out, "API key saved to %s\n", c.ConfigLoader.Path())

	_ = c.Close()
	e.container = nil
	return e.Container(ctx)
}
