// Package commands implements the postbuilder subcommands.
package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/postbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"github.com/alecthomas/kong"
)

// DefaultConfigPath is used when -c is not given. A missing default file means built-in defaults.
const DefaultConfigPath = "postbuilder.yaml"

// Global carries process-wide state into every command.
type Global struct {
	Ctx    context.Context
	Logger *slog.Logger
	Out    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"postbuilder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Build the site: copy assets, render posts, drafts and listings"`
	Discover DiscoverCmd `cmd:"" help:"Parse posts and drafts and list them without writing output"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func (g *Global) context() context.Context {
	if g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Global) out() io.Writer {
	if g.Out == nil {
		return io.Discard
	}
	return g.Out
}

// loadConfig reads the configuration named by -c. When the default file does not
// exist the built-in defaults are used, so a bare checkout of a site builds as is.
func loadConfig(root *CLI, logger *slog.Logger) (config.Config, error) {
	path := root.Config
	if path == "" {
		path = DefaultConfigPath
	}
	if path == DefaultConfigPath {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			logger.Info("No configuration file, using defaults", "path", path)
			return config.Default(), nil
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, ferrors.ConfigError("load config").WithCause(err).
			WithContext("path", path).Build()
	}
	return cfg, nil
}
