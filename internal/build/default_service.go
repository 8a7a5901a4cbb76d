package build

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/postbuilder/internal/collection"
	"git.home.luguber.info/inful/postbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/markdown"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
	"git.home.luguber.info/inful/postbuilder/internal/output"
	"git.home.luguber.info/inful/postbuilder/internal/post"
	"git.home.luguber.info/inful/postbuilder/internal/render"
	"github.com/google/uuid"
)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	logger *slog.Logger
	newID  func() string
}

// NewBuildService creates a DefaultBuildService logging to slog.Default().
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		logger: slog.Default(),
		newID:  uuid.NewString,
	}
}

// WithLogger sets the logger used for build and stage events.
func (s *DefaultBuildService) WithLogger(l *slog.Logger) *DefaultBuildService {
	s.logger = l
	return s
}

// Run executes the full pipeline. The returned BuildResult is always non-nil.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	cfg := req.Config
	buildID := s.newID()
	logger := s.logger.With(logfields.BuildID(buildID))
	report := NewReport(buildID)
	result := &BuildResult{BuildID: buildID, StartTime: report.Start, OutputPath: cfg.Output, Report: report}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Build.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	logger.Info("Build started", logfields.Path(cfg.Output))
	st, err := s.newState(cfg, logger, recorder, report, true)
	if err == nil {
		err = RunStages(ctx, st, FullPipeline())
		report.Templates = st.Renderer.Usage()
		report.Output = st.Writer.Stats()
	} else {
		report.RecordError(err)
	}
	report.Finish()

	result.EndTime = report.End
	result.Duration = result.EndTime.Sub(result.StartTime)
	result.Pages = len(report.Pages)
	switch report.Outcome {
	case OutcomeSuccess:
		result.Status = BuildStatusSuccess
		recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	case OutcomeCanceled:
		result.Status = BuildStatusCancelled
		recorder.IncBuildOutcome(metrics.OutcomeCanceled)
	default:
		result.Status = BuildStatusFailed
		recorder.IncBuildOutcome(metrics.OutcomeFailed)
	}
	recorder.ObserveBuildDuration(result.Duration)

	if perr := s.persist(cfg, report, prom, logger); perr != nil {
		err = errors.Join(err, perr)
		if result.Status.IsSuccess() {
			result.Status = BuildStatusFailed
		}
	}

	if err != nil {
		logger.Error("Build failed", slog.String("outcome", string(report.Outcome)), logfields.Error(err))
		return result, err
	}
	logger.Info("Build completed",
		logfields.Count(result.Pages),
		logfields.DurationMS(durationMS(result.Duration)),
		slog.String("summary", report.Summary()))
	return result, nil
}

// Discover parses both collections and returns them without writing output.
func (s *DefaultBuildService) Discover(ctx context.Context, cfg config.Config) ([]*collection.Collection, error) {
	buildID := s.newID()
	logger := s.logger.With(logfields.BuildID(buildID))
	st, err := s.newState(cfg, logger, metrics.NoopRecorder{}, NewReport(buildID), false)
	if err != nil {
		return nil, err
	}
	if err := RunStages(ctx, st, DiscoverPipeline()); err != nil {
		return nil, err
	}
	return st.collections(), nil
}

// newState wires configuration into the pipeline components. The renderer and
// writer are only created when withOutput is set.
func (s *DefaultBuildService) newState(cfg config.Config, logger *slog.Logger, recorder metrics.Recorder, report *Report, withOutput bool) (*State, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, ferrors.ValidationError("invalid configuration").WithCause(err).Build()
	}
	policy, err := collection.ParsePolicy(cfg.Build.FailurePolicy)
	if err != nil {
		return nil, ferrors.ConfigError("invalid failure policy").WithCause(err).Build()
	}

	converter, err := markdown.New(markdown.Options{HighlightStyle: cfg.Markdown.HighlightStyle})
	if err != nil {
		return nil, ferrors.ConfigError("invalid markdown settings").WithCause(err).Build()
	}

	parser := post.NewParser(post.Options{
		Origin:         cfg.Origin,
		RouteBase:      cfg.Content.Base,
		Extension:      cfg.Content.Extension,
		TitlePrefix:    cfg.Site.TitlePrefix,
		SharePlatforms: cfg.Share.Platforms,
		WordsPerMinute: cfg.Reading.WordsPerMinute,
	}, converter)

	st := &State{
		Config: cfg,
		Collections: collection.NewBuilder(parser, cfg.Content.Extension,
			collection.WithPolicy(policy),
			collection.WithLogger(logger),
			collection.WithRecorder(recorder)),
		Recorder: recorder,
		Logger:   logger,
		Report:   report,
	}
	if !withOutput {
		return st, nil
	}

	if st.Renderer, err = render.New(cfg.Templates, cfg.Origin, render.WithBlogURL(cfg.Site.Published.Route)); err != nil {
		return nil, err
	}
	st.Writer = output.NewWriter(cfg.Output, output.NewMinifier(), recorder)
	return st, nil
}

func (s *DefaultBuildService) persist(cfg config.Config, report *Report, prom *metrics.PrometheusRecorder, logger *slog.Logger) error {
	var errs []error
	if cfg.Build.ReportFile != "" {
		if err := report.Persist(cfg.Build.ReportFile); err != nil {
			errs = append(errs, ferrors.FileSystemError("write build report").WithCause(err).
				WithContext("path", cfg.Build.ReportFile).Build())
		} else {
			logger.Debug("Wrote build report", logfields.Path(cfg.Build.ReportFile))
		}
	}
	if prom != nil {
		if err := prom.WriteTextfile(cfg.Build.MetricsFile); err != nil {
			errs = append(errs, ferrors.FileSystemError("write metrics file").WithCause(err).
				WithContext("path", cfg.Build.MetricsFile).Build())
		} else {
			logger.Debug("Wrote metrics", logfields.Path(cfg.Build.MetricsFile))
		}
	}
	return errors.Join(errs...)
}

var _ BuildService = (*DefaultBuildService)(nil)

func durationMS(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }
