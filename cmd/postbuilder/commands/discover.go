package commands

import (
	"fmt"

	"git.home.luguber.info/inful/postbuilder/internal/build"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct{}

func (d *DiscoverCmd) Run(g *Global, root *CLI) error {
	logger := g.logger()
	cfg, err := loadConfig(root, logger)
	if err != nil {
		return err
	}

	cols, err := build.NewBuildService().WithLogger(logger).Discover(g.context(), cfg)
	if err != nil {
		return err
	}

	total := 0
	for _, c := range cols {
		fmt.Fprintf(g.out(), "%s (/%s): %d pages\n", c.Name, c.Route, len(c.Pages))
		for _, p := range c.Pages {
			fmt.Fprintf(g.out(), "  %s  %-40s %s\n", p.Matter.Date, p.Path, p.ReadingTime)
			logger.Debug("Page discovered",
				logfields.Collection(c.Name),
				logfields.Path(p.SourcePath),
				logfields.Route(p.Path))
		}
		total += len(c.Pages)
	}
	logger.Info("Discovery completed", logfields.Count(total))
	return nil
}
