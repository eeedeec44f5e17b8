package sim

import (
	"context"
	"fmt"
	"time"

	"certbuddy/internal/model"
	"certbuddy/internal/store"
)

// Recorder converts completed sessions into simulation attempts and appends
// them to the per-exam attempt log. Existing attempts are never mutated.
type Recorder struct {
	repo store.Repository
}

func NewRecorder(repo store.Repository) *Recorder {
	return &Recorder{repo: repo}
}

// Record builds the attempt for a completed session and appends it durably.
// It fails with ErrIncompleteSession before the terminal state; nothing is
// written in that case.
func (r *Recorder) Record(ctx context.Context, s *Session, now time.Time) (model.SimulationAttempt, error) {
	attempt, err := s.Attempt(now)
	if err != nil {
		return model.SimulationAttempt{}, err
	}
	if err := r.repo.AppendAttempt(ctx, attempt); err != nil {
		return model.SimulationAttempt{}, fmt.Errorf("append attempt for %s: %w", s.ExamCode, err)
	}
	return attempt, nil
}
