package build

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"git.home.luguber.info/inful/postbuilder/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testState() *State {
	return &State{
		Recorder: metrics.NoopRecorder{},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Report:   NewReport("runner"),
	}
}

func TestRunStages_StopsAtFirstFailure(t *testing.T) {
	var ran []StageName
	record := func(name StageName, err error) Stage {
		return func(context.Context, *State) error {
			ran = append(ran, name)
			return err
		}
	}
	boom := errors.New("boom")
	stages := NewPipeline().
		Add("one", record("one", nil)).
		Add("two", record("two", boom)).
		Add("three", record("three", nil)).
		Build()

	st := testState()
	err := RunStages(context.Background(), st, stages)
	require.ErrorIs(t, err, boom)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageName("two"), se.Stage)
	assert.Equal(t, "fatal stage two: boom", se.Error())
	assert.Equal(t, []StageName{"one", "two"}, ran)

	require.Len(t, st.Report.Stages, 2)
	assert.Equal(t, StageResultSuccess, st.Report.Stages[0].Result)
	assert.Equal(t, StageResultFatal, st.Report.Stages[1].Result)
	st.Report.Finish()
	assert.Equal(t, OutcomeFailed, st.Report.Outcome)
}

func TestRunStages_CancellationBetweenStages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stages := NewPipeline().
		Add("first", func(context.Context, *State) error { cancel(); return nil }).
		Add("second", func(context.Context, *State) error { t.Fatal("second stage must not run"); return nil }).
		Build()

	st := testState()
	err := RunStages(ctx, st, stages)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageErrorCanceled, se.Kind)
	assert.Equal(t, StageName("second"), se.Stage)
	st.Report.Finish()
	assert.Equal(t, OutcomeCanceled, st.Report.Outcome)
}

func TestPipeline_AddIf(t *testing.T) {
	noop := func(context.Context, *State) error { return nil }
	defs := NewPipeline().Add("a", noop).AddIf(false, "b", noop).AddIf(true, "c", noop).Build()

	names := make([]StageName, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	assert.Equal(t, []StageName{"a", "c"}, names)
}

func TestFullPipeline_Order(t *testing.T) {
	var names []StageName
	for _, d := range FullPipeline() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []StageName{
		StageCopyAssets, StageBuildPublished, StageBuildDrafts, StageCheckSlugs, StageWritePages, StageWriteListings,
	}, names)
}

func TestDiscoverPipeline_SkipsWriteStages(t *testing.T) {
	var names []StageName
	for _, d := range DiscoverPipeline() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []StageName{StageBuildPublished, StageBuildDrafts, StageCheckSlugs}, names)
}

func TestWriteStagesRequireCollections(t *testing.T) {
	err := stageWritePages(context.Background(), testState())
	require.ErrorIs(t, err, ErrCollectionsNotBuilt)
}
