package sim

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"certbuddy/internal/model"
)

func yesNoQuestion(text string) model.Question {
	return model.Question{
		Type:           model.QuestionYesNo,
		SkillArea:      "Networking",
		Text:           text,
		ExpectedAnswer: "Yes",
	}
}

func qualitativeQuestion(text string) model.Question {
	return model.Question{
		Type:            model.QuestionQualitative,
		SkillArea:       "Security",
		Text:            text,
		Purpose:         "Tests conceptual understanding",
		ScoringCriteria: []string{"Mentions the key concept", "Gives an example"},
	}
}

func newTestSession(t *testing.T, n int) *Session {
	t.Helper()
	questions := make([]model.Question, n)
	for i := range questions {
		questions[i] = yesNoQuestion(fmt.Sprintf("Question %d?", i+1))
	}
	s, err := Start("AZ-900", questions)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func TestStartEmptyQuestionSet(t *testing.T) {
	_, err := Start("AZ-900", nil)
	if !errors.Is(err, model.ErrEmptyQuestionSet) {
		t.Fatalf("expected ErrEmptyQuestionSet, got %v", err)
	}
}

func TestStartInitialState(t *testing.T) {
	s := newTestSession(t, 3)
	if s.Current != 0 {
		t.Errorf("expected position 0, got %d", s.Current)
	}
	if len(s.Answers) != 3 {
		t.Fatalf("expected 3 answer slots, got %d", len(s.Answers))
	}
	for i, a := range s.Answers {
		if a != "" {
			t.Errorf("answer %d not empty: %q", i, a)
		}
	}
	if s.IsComplete() {
		t.Error("fresh session reports complete")
	}
	q, ok := s.CurrentQuestion()
	if !ok {
		t.Fatal("fresh session has no current question")
	}
	if q.Text != "Question 1?" {
		t.Errorf("expected first question, got %q", q.Text)
	}
}

func TestSubmitAnswerAdvances(t *testing.T) {
	s := newTestSession(t, 2)

	if err := s.SubmitAnswer("Yes"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if s.Current != 1 {
		t.Errorf("expected position 1, got %d", s.Current)
	}
	if s.Answers[0] != "Yes" {
		t.Errorf("expected answer stored at slot 0, got %q", s.Answers[0])
	}
	if s.IsComplete() {
		t.Error("session complete after 1 of 2 answers")
	}
}

func TestSubmitAnswerTrimsWhitespace(t *testing.T) {
	s := newTestSession(t, 1)
	if err := s.SubmitAnswer("  Yes  "); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if s.Answers[0] != "Yes" {
		t.Errorf("expected trimmed answer, got %q", s.Answers[0])
	}
}

func TestSubmitAnswerEmpty(t *testing.T) {
	s := newTestSession(t, 2)
	for _, answer := range []string{"", "   ", "\t\n"} {
		if err := s.SubmitAnswer(answer); !errors.Is(err, model.ErrAnswerEmpty) {
			t.Errorf("SubmitAnswer(%q): expected ErrAnswerEmpty, got %v", answer, err)
		}
	}
	if s.Current != 0 {
		t.Errorf("position moved on rejected answers: %d", s.Current)
	}
}

func TestCompletionAfterLastAnswer(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			s := newTestSession(t, n)
			for i := 0; i < n; i++ {
				if s.IsComplete() {
					t.Fatalf("complete after %d of %d answers", i, n)
				}
				if err := s.SubmitAnswer("Yes"); err != nil {
					t.Fatalf("SubmitAnswer %d: %v", i+1, err)
				}
			}
			if !s.IsComplete() {
				t.Fatal("not complete after last answer")
			}
			if _, ok := s.CurrentQuestion(); ok {
				t.Error("complete session still has a current question")
			}
		})
	}
}

func TestSubmitAnswerAfterComplete(t *testing.T) {
	s := newTestSession(t, 1)
	if err := s.SubmitAnswer("Yes"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if err := s.SubmitAnswer("No"); !errors.Is(err, model.ErrSessionComplete) {
		t.Fatalf("expected ErrSessionComplete, got %v", err)
	}
}

func TestGoToPreviousAtFirstQuestion(t *testing.T) {
	s := newTestSession(t, 2)
	if err := s.GoToPrevious("draft"); !errors.Is(err, model.ErrAtFirstQuestion) {
		t.Fatalf("expected ErrAtFirstQuestion, got %v", err)
	}
}

func TestGoToPreviousPersistsDraft(t *testing.T) {
	s := newTestSession(t, 3)
	if err := s.SubmitAnswer("Yes"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	if err := s.GoToPrevious("half-written thought"); err != nil {
		t.Fatalf("GoToPrevious: %v", err)
	}
	if s.Current != 0 {
		t.Errorf("expected position 0, got %d", s.Current)
	}
	if s.Answers[1] != "half-written thought" {
		t.Errorf("draft not persisted: %q", s.Answers[1])
	}
	// The earlier answer is untouched and editable.
	if s.Answers[0] != "Yes" {
		t.Errorf("previous answer lost: %q", s.Answers[0])
	}
}

func TestGoToPreviousEmptyDraftLeavesSkippedQuestion(t *testing.T) {
	s := newTestSession(t, 2)
	if err := s.SubmitAnswer("Yes"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	// Back out of question 2 without typing anything.
	if err := s.GoToPrevious(""); err != nil {
		t.Fatalf("GoToPrevious: %v", err)
	}
	if s.Answers[1] != "" {
		t.Errorf("expected empty slot for question 2, got %q", s.Answers[1])
	}

	// Re-answer question 1 and finish without revisiting question 2's text.
	if err := s.SubmitAnswer("No"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if err := s.SubmitAnswer("Yes"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !s.IsComplete() {
		t.Fatal("session not complete")
	}
}

func TestGoToPreviousFromCompleteState(t *testing.T) {
	s := newTestSession(t, 2)
	for i := 0; i < 2; i++ {
		if err := s.SubmitAnswer("Yes"); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
	}

	// Stepping back from the terminal state must not write past the answers
	// slice; the draft is discarded because there is no current question.
	if err := s.GoToPrevious("late draft"); err != nil {
		t.Fatalf("GoToPrevious: %v", err)
	}
	if s.Current != 1 {
		t.Errorf("expected position 1, got %d", s.Current)
	}
	if s.Answers[1] != "Yes" {
		t.Errorf("terminal step back clobbered answer: %q", s.Answers[1])
	}
}

func TestReset(t *testing.T) {
	s := newTestSession(t, 3)
	for i := 0; i < 3; i++ {
		if err := s.SubmitAnswer("Yes"); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
	}

	s.Reset()
	if s.Current != 0 {
		t.Errorf("expected position 0 after reset, got %d", s.Current)
	}
	for i, a := range s.Answers {
		if a != "" {
			t.Errorf("answer %d not cleared: %q", i, a)
		}
	}
	if len(s.Questions) != 3 {
		t.Errorf("reset changed the question set: %d questions", len(s.Questions))
	}
}

func TestProgress(t *testing.T) {
	s := newTestSession(t, 2)

	p := s.Progress()
	if p.CurrentQuestion != 1 || p.TotalQuestions != 2 || p.Complete {
		t.Errorf("unexpected initial progress: %+v", p)
	}

	if err := s.SubmitAnswer("Yes"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	p = s.Progress()
	if p.CurrentQuestion != 2 || p.Complete {
		t.Errorf("unexpected mid progress: %+v", p)
	}

	if err := s.SubmitAnswer("Yes"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	p = s.Progress()
	if p.CurrentQuestion != 2 || !p.Complete {
		t.Errorf("unexpected final progress: %+v", p)
	}
}

func TestSkillDistribution(t *testing.T) {
	questions := []model.Question{
		yesNoQuestion("Q1?"),
		yesNoQuestion("Q2?"),
		qualitativeQuestion("Q3?"),
	}
	s, err := Start("AZ-900", questions)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	dist := s.SkillDistribution()
	if dist["Networking"] != 2 || dist["Security"] != 1 {
		t.Errorf("unexpected distribution: %v", dist)
	}
}

func TestAttemptIncomplete(t *testing.T) {
	s := newTestSession(t, 2)
	if err := s.SubmitAnswer("Yes"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	_, err := s.Attempt(time.Now())
	if !errors.Is(err, model.ErrIncompleteSession) {
		t.Fatalf("expected ErrIncompleteSession, got %v", err)
	}
}

func TestAttemptRecordsAnswersInOrder(t *testing.T) {
	questions := []model.Question{
		yesNoQuestion("Is TCP connection-oriented?"),
		qualitativeQuestion("Explain the purpose of a firewall."),
	}
	s, err := Start("AZ-900", questions)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Answer Q1, revise it, then answer both questions for real.
	if err := s.SubmitAnswer("Yes"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if err := s.GoToPrevious(""); err != nil {
		t.Fatalf("GoToPrevious: %v", err)
	}
	if err := s.SubmitAnswer("No"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if err := s.SubmitAnswer("My explanation"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	attempt, err := s.Attempt(now)
	if err != nil {
		t.Fatalf("Attempt: %v", err)
	}

	if attempt.ExamCode != "AZ-900" {
		t.Errorf("expected exam code AZ-900, got %q", attempt.ExamCode)
	}
	if attempt.Timestamp != "2026-03-14" {
		t.Errorf("expected date-granularity timestamp, got %q", attempt.Timestamp)
	}
	if len(attempt.QuestionsAttempted) != 2 {
		t.Fatalf("expected 2 attempted questions, got %d", len(attempt.QuestionsAttempted))
	}

	first := attempt.QuestionsAttempted[0]
	if first.QuestionNumber != 1 || first.UserAnswer != "No" {
		t.Errorf("unexpected first entry: number=%d answer=%q", first.QuestionNumber, first.UserAnswer)
	}
	if first.Text != "Is TCP connection-oriented?" {
		t.Errorf("unexpected first question text: %q", first.Text)
	}

	second := attempt.QuestionsAttempted[1]
	if second.QuestionNumber != 2 || second.UserAnswer != "My explanation" {
		t.Errorf("unexpected second entry: number=%d answer=%q", second.QuestionNumber, second.UserAnswer)
	}
	if second.Type != model.QuestionQualitative {
		t.Errorf("question metadata not carried into attempt: %q", second.Type)
	}
}
