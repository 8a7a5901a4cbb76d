package commands

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/postbuilder/internal/build"
	"git.home.luguber.info/inful/postbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Origin  string `help:"Override the site origin used for canonical URLs"`
	Output  string `short:"o" help:"Override the output directory"`
	Report  string `name:"report" help:"Write a JSON build report to this file"`
	Metrics string `name:"metrics" help:"Write Prometheus metrics in text format to this file"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	logger := g.logger()
	cfg, err := loadConfig(root, logger)
	if err != nil {
		return err
	}
	if err := b.apply(&cfg); err != nil {
		return err
	}

	fmt.Fprintln(g.out(), "Starting postbuilder build")
	res, err := build.NewBuildService().WithLogger(logger).Run(g.context(), build.BuildRequest{Config: cfg})
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out(), "Build completed successfully: %d pages written to %s in %s\n",
		res.Pages, res.OutputPath, res.Duration.Round(time.Millisecond))
	return nil
}

// apply layers flag overrides onto cfg and re-validates the result.
func (b *BuildCmd) apply(cfg *config.Config) error {
	if b.Origin != "" {
		cfg.Origin = strings.TrimRight(b.Origin, "/")
	}
	if b.Output != "" {
		cfg.Output = b.Output
	}
	if b.Report != "" {
		cfg.Build.ReportFile = b.Report
	}
	if b.Metrics != "" {
		cfg.Build.MetricsFile = b.Metrics
	}
	if err := config.ValidateConfig(*cfg); err != nil {
		return ferrors.ValidationError("invalid command line override").WithCause(err).Build()
	}
	return nil
}
