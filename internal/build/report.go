package build

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/postbuilder/internal/collection"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
	"git.home.luguber.info/inful/postbuilder/internal/output"
	"git.home.luguber.info/inful/postbuilder/internal/render"
	"git.home.luguber.info/inful/postbuilder/internal/version"
)

// Outcome is the final result of a build.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// PageEntry records one rendered page.
type PageEntry struct {
	Collection  string `json:"collection"`
	Route       string `json:"route"`
	Source      string `json:"source"`
	Date        string `json:"date"`
	Fingerprint string `json:"fingerprint"`
}

// StageRecord is the outcome of one executed stage.
type StageRecord struct {
	Name     StageName     `json:"name"`
	Result   StageResult   `json:"result"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
}

// Report captures what a build did. It is written as JSON when build.report_file is set.
type Report struct {
	SchemaVersion  int                            `json:"schema_version"`
	BuildID        string                         `json:"build_id"`
	Version        string                         `json:"version"`
	Start          time.Time                      `json:"start"`
	End            time.Time                      `json:"end"`
	Outcome        Outcome                        `json:"outcome"`
	Stages         []StageRecord                  `json:"stages"`
	Collections    map[string]int                 `json:"collections"`
	Pages          []PageEntry                    `json:"pages"`
	Templates      map[string]render.TemplateInfo `json:"templates"`
	DuplicateSlugs map[string][]string            `json:"duplicate_slugs,omitempty"`
	Output         output.Stats                   `json:"output"`
	Errors         []string                       `json:"errors"`

	err error
}

// NewReport starts a report for the given build ID.
func NewReport(buildID string) *Report {
	return &Report{
		SchemaVersion: 1,
		BuildID:       buildID,
		Version:       version.Version,
		Start:         time.Now(),
		Stages:        []StageRecord{},
		Collections:   map[string]int{},
		Pages:         []PageEntry{},
		Templates:     map[string]render.TemplateInfo{},
		Errors:        []string{},
	}
}

// RecordStage appends a stage outcome and updates the stage result counter.
func (r *Report) RecordStage(name StageName, d time.Duration, res StageResult, err error, recorder metrics.Recorder) {
	rec := StageRecord{Name: name, Result: res, Duration: d}
	if err != nil {
		rec.Error = err.Error()
		r.RecordError(err)
	}
	r.Stages = append(r.Stages, rec)

	if recorder == nil {
		return
	}
	switch res {
	case StageResultSuccess:
		recorder.IncStageResult(string(name), metrics.ResultSuccess)
	case StageResultFatal:
		recorder.IncStageResult(string(name), metrics.ResultFatal)
	case StageResultCanceled:
		recorder.IncStageResult(string(name), metrics.ResultCanceled)
	}
}

// RecordError notes a failure; the first one decides the outcome.
func (r *Report) RecordError(err error) {
	r.Errors = append(r.Errors, err.Error())
	if r.err == nil {
		r.err = err
	}
}

// AddCollection records the page count of c.
func (r *Report) AddCollection(c *collection.Collection) {
	r.Collections[c.Name] = len(c.Pages)
}

// AddPage records a written page.
func (r *Report) AddPage(entry PageEntry) {
	r.Pages = append(r.Pages, entry)
}

// Finish stamps the end time and derives the outcome from the first recorded error.
func (r *Report) Finish() {
	r.End = time.Now()
	var se *StageError
	switch {
	case r.err == nil:
		r.Outcome = OutcomeSuccess
	case errors.As(r.err, &se) && se.Kind == StageErrorCanceled:
		r.Outcome = OutcomeCanceled
	default:
		r.Outcome = OutcomeFailed
	}
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("build=%s outcome=%s published=%d drafts=%d files=%d minified=%d duration=%s",
		r.BuildID, r.Outcome, r.Collections["published"], r.Collections["draft"],
		r.Output.Files, r.Output.Minified, r.End.Sub(r.Start).Truncate(time.Millisecond))
}

// Persist writes the report as indented JSON to path, replacing any previous file atomically.
func (r *Report) Persist(path string) error {
	if r.End.IsZero() {
		r.Finish()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("ensure directory for report: %w", err)
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o600); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename report json: %w", err)
	}
	return nil
}
