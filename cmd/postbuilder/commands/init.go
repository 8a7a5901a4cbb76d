package commands

import (
	"fmt"

	"git.home.luguber.info/inful/postbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = DefaultConfigPath
	}
	fmt.Fprintf(g.out(), "Writing configuration to %s\n", path)
	if err := config.Init(path, i.Force); err != nil {
		return ferrors.ConfigError("initialize configuration").WithCause(err).
			WithContext("path", path).Build()
	}
	fmt.Fprintln(g.out(), "initialized successfully")
	return nil
}
