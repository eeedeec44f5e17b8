// Package store provides the persistence seam for cached question sets and
// per-exam attempt logs, with SQLite and in-memory implementations.
package store

import (
	"context"

	"certbuddy/internal/model"
)

// Repository is the single access point to persisted state. Cached question
// sets are overwritten unconditionally per exam code; attempt logs are
// append-only and appends are atomic, so concurrent recorders for the same
// exam code cannot lose updates.
//
// Reads of absent state return model.ErrNotFound.
type Repository interface {
	CachedQuestions(ctx context.Context, examCode string) (model.QuestionSet, error)
	PutCachedQuestions(ctx context.Context, set model.QuestionSet) error

	TargetedQuestions(ctx context.Context, examCode string) (model.QuestionSet, error)
	PutTargetedQuestions(ctx context.Context, set model.QuestionSet) error

	Attempts(ctx context.Context, examCode string) ([]model.SimulationAttempt, error)
	AppendAttempt(ctx context.Context, attempt model.SimulationAttempt) error
	ExamCodesWithAttempts(ctx context.Context) ([]string, error)
}
