package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/postbuilder/internal/collection"
	"git.home.luguber.info/inful/postbuilder/internal/config"
)

// BuildService is the canonical interface for executing site builds.
type BuildService interface {
	// Run executes the complete pipeline and returns a BuildResult even on failure.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
	// Discover parses both collections without writing any output.
	Discover(ctx context.Context, cfg config.Config) ([]*collection.Collection, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	// Config is the loaded and validated configuration for this build.
	Config config.Config
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	// Status indicates overall build outcome.
	Status BuildStatus

	// BuildID identifies the build in logs and the report.
	BuildID string

	// Report contains per-stage outcomes, pages and output totals.
	Report *Report

	// OutputPath is the output root directory.
	OutputPath string

	// Pages is the number of pages written (published and draft).
	Pages int

	// Duration is the total build execution time.
	Duration time.Duration

	// StartTime is when the build started.
	StartTime time.Time

	// EndTime is when the build completed.
	EndTime time.Time
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates the build completed successfully.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusFailed indicates the build encountered an error.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusCancelled indicates the build was cancelled between stages.
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess
}
