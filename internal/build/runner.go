package build

import (
	"context"
	"log/slog"
	"time"

	ferrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
)

// RunStages executes stages in order, recording timing and stopping at the first failure.
// Cancellation is only observed between stages; a running stage always completes.
func RunStages(ctx context.Context, st *State, stages []StageDef) error {
	for _, def := range stages {
		if err := ctx.Err(); err != nil {
			se := NewCanceledStageError(def.Name, err)
			st.Report.RecordStage(def.Name, 0, StageResultCanceled, se, st.Recorder)
			st.Logger.Warn("Build canceled", logfields.Stage(string(def.Name)))
			return se
		}

		st.Logger.Info("Stage started", logfields.Stage(string(def.Name)))
		t0 := time.Now()
		err := def.Fn(ctx, st)
		dur := time.Since(t0)
		st.Recorder.ObserveStageDuration(string(def.Name), dur)

		if err != nil {
			se := NewFatalStageError(def.Name, err)
			st.Report.RecordStage(def.Name, dur, StageResultFatal, se, st.Recorder)
			st.Logger.Error("Stage failed",
				logfields.Stage(string(def.Name)),
				logfields.DurationMS(durationMS(dur)),
				slog.String("category", string(ferrors.GetCategory(err))),
				logfields.Error(err))
			return se
		}

		st.Report.RecordStage(def.Name, dur, StageResultSuccess, nil, st.Recorder)
		st.Logger.Info("Stage completed",
			logfields.Stage(string(def.Name)),
			logfields.DurationMS(durationMS(dur)))
	}
	return nil
}
