// Package sim implements the exam simulation state machine and the recording
// of completed passes as immutable simulation attempts.
package sim

import (
	"strings"
	"time"

	"certbuddy/internal/model"
)

const dateLayout = "2006-01-02"

// Session drives a learner through a fixed, ordered question set exactly once
// per pass. Answers has the same length as Questions at all times; Current
// ranges over [0, N] where N is the terminal, completed state.
//
// Sessions are transient: they live in memory until an attempt is recorded or
// the session is abandoned, and are never persisted themselves.
type Session struct {
	ExamCode  string
	Questions []model.Question
	Answers   []string
	Current   int
}

// Start creates a session positioned at the first question with all answers
// empty. It fails with ErrEmptyQuestionSet when questions is empty; the caller
// must not enter simulation mode without cached questions.
func Start(examCode string, questions []model.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, model.ErrEmptyQuestionSet
	}
	return &Session{
		ExamCode:  examCode,
		Questions: questions,
		Answers:   make([]string, len(questions)),
	}, nil
}

// SubmitAnswer records a non-empty answer for the current question and
// advances to the next one. The engine accepts any non-empty string for both
// question types; whether a yes_no answer is one of Yes/No is a UI concern.
func (s *Session) SubmitAnswer(answer string) error {
	if s.IsComplete() {
		return model.ErrSessionComplete
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return model.ErrAnswerEmpty
	}
	s.Answers[s.Current] = answer
	s.Current++
	return nil
}

// GoToPrevious steps back one question, persisting the in-progress draft for
// the current question first. The draft may be empty: backing out of a
// question leaves an empty answer behind, and a learner who never returns to
// it completes the pass with that question skipped.
func (s *Session) GoToPrevious(draft string) error {
	if s.Current == 0 {
		return model.ErrAtFirstQuestion
	}
	if s.Current < len(s.Questions) {
		s.Answers[s.Current] = strings.TrimSpace(draft)
	}
	s.Current--
	return nil
}

// Reset returns the session to the first question and clears every answer,
// preserving the question set.
func (s *Session) Reset() {
	for i := range s.Answers {
		s.Answers[i] = ""
	}
	s.Current = 0
}

// IsComplete reports whether every question has been passed.
func (s *Session) IsComplete() bool {
	return s.Current == len(s.Questions)
}

// CurrentQuestion returns the question at the current position, or false when
// the session is complete.
func (s *Session) CurrentQuestion() (model.Question, bool) {
	if s.IsComplete() {
		return model.Question{}, false
	}
	return s.Questions[s.Current], true
}

// Progress describes how far the learner is through the pass.
type Progress struct {
	CurrentQuestion int  `json:"current_question"` // 1-based; N at completion
	TotalQuestions  int  `json:"total_questions"`
	Complete        bool `json:"is_complete"`
}

// Progress returns the current position in UI terms.
func (s *Session) Progress() Progress {
	p := Progress{
		CurrentQuestion: s.Current + 1,
		TotalQuestions:  len(s.Questions),
		Complete:        s.IsComplete(),
	}
	if p.Complete {
		p.CurrentQuestion = len(s.Questions)
	}
	return p
}

// SkillDistribution counts questions per skill area.
func (s *Session) SkillDistribution() map[string]int {
	dist := make(map[string]int)
	for _, q := range s.Questions {
		dist[q.SkillArea]++
	}
	return dist
}

// Attempt builds the immutable record of a completed pass. Question order is
// preserved, question_number is the 1-based position, and user_answer is
// exactly the stored answer, including empty strings for skipped questions.
// It fails with ErrIncompleteSession before the terminal state.
func (s *Session) Attempt(now time.Time) (model.SimulationAttempt, error) {
	if !s.IsComplete() {
		return model.SimulationAttempt{}, model.ErrIncompleteSession
	}
	attempted := make([]model.AttemptedQuestion, len(s.Questions))
	for i, q := range s.Questions {
		attempted[i] = model.AttemptedQuestion{
			Question:       q,
			QuestionNumber: i + 1,
			UserAnswer:     s.Answers[i],
		}
	}
	return model.SimulationAttempt{
		ExamCode:           s.ExamCode,
		Timestamp:          now.Format(dateLayout),
		QuestionsAttempted: attempted,
	}, nil
}
