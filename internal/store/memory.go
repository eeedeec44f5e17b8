package store

import (
	"context"
	"sort"
	"sync"

	"certbuddy/internal/model"
)

// Memory is a mutex-guarded in-memory Repository, used in tests and for
// running without a database file.
type Memory struct {
	mu        sync.RWMutex
	generated map[string]model.QuestionSet
	targeted  map[string]model.QuestionSet
	attempts  map[string][]model.SimulationAttempt
}

func NewMemory() *Memory {
	return &Memory{
		generated: make(map[string]model.QuestionSet),
		targeted:  make(map[string]model.QuestionSet),
		attempts:  make(map[string][]model.SimulationAttempt),
	}
}

func (m *Memory) CachedQuestions(_ context.Context, examCode string) (model.QuestionSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.generated[examCode]
	if !ok {
		return model.QuestionSet{}, model.ErrNotFound
	}
	return set, nil
}

func (m *Memory) PutCachedQuestions(_ context.Context, set model.QuestionSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generated[set.ExamCode] = set
	return nil
}

func (m *Memory) TargetedQuestions(_ context.Context, examCode string) (model.QuestionSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.targeted[examCode]
	if !ok {
		return model.QuestionSet{}, model.ErrNotFound
	}
	return set, nil
}

func (m *Memory) PutTargetedQuestions(_ context.Context, set model.QuestionSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.targeted[set.ExamCode] = set
	return nil
}

func (m *Memory) Attempts(_ context.Context, examCode string) ([]model.SimulationAttempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	log, ok := m.attempts[examCode]
	if !ok || len(log) == 0 {
		return nil, model.ErrNotFound
	}
	out := make([]model.SimulationAttempt, len(log))
	copy(out, log)
	return out, nil
}

func (m *Memory) AppendAttempt(_ context.Context, attempt model.SimulationAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[attempt.ExamCode] = append(m.attempts[attempt.ExamCode], attempt)
	return nil
}

func (m *Memory) ExamCodesWithAttempts(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	codes := make([]string, 0, len(m.attempts))
	for code, log := range m.attempts {
		if len(log) > 0 {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes, nil
}
