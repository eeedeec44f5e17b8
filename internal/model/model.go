package model

import "fmt"

// QuestionType discriminates the two generated question variants.
type QuestionType string

const (
	// QuestionYesNo is a fixed-choice question with a known expected answer.
	QuestionYesNo QuestionType = "yes_no"
	// QuestionQualitative is a free-text question graded against scoring criteria.
	QuestionQualitative QuestionType = "qualitative"
)

// Question is one generated diagnostic question. The type tag decides which
// of the optional fields are meaningful: yes_no questions carry an expected
// answer, qualitative questions carry a purpose and scoring criteria.
// Questions are immutable once generated.
type Question struct {
	Type            QuestionType `json:"type"`
	SkillArea       string       `json:"skill_area"`
	Text            string       `json:"question"`
	ExpectedAnswer  string       `json:"expected_answer,omitempty"`
	Purpose         string       `json:"purpose,omitempty"`
	ScoringCriteria []string     `json:"scoring_criteria,omitempty"`
}

// Validate checks that the question matches its declared variant shape.
// It is applied at the LLM boundary before generated questions enter the core.
func (q Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("question text is empty")
	}
	if q.SkillArea == "" {
		return fmt.Errorf("question %q has no skill_area", q.Text)
	}
	switch q.Type {
	case QuestionYesNo:
		if q.ExpectedAnswer != "Yes" && q.ExpectedAnswer != "No" {
			return fmt.Errorf("yes_no question %q has expected_answer %q, want Yes or No", q.Text, q.ExpectedAnswer)
		}
	case QuestionQualitative:
		if len(q.ScoringCriteria) == 0 {
			return fmt.Errorf("qualitative question %q has no scoring_criteria", q.Text)
		}
	default:
		return fmt.Errorf("question %q has unknown type %q", q.Text, q.Type)
	}
	return nil
}

// QuestionSet is the cached set of generated questions for one exam code.
type QuestionSet struct {
	ExamCode  string     `json:"exam_code"`
	Questions []Question `json:"questions"`
}

// Validate checks the set and every question in it.
func (s QuestionSet) Validate() error {
	if s.ExamCode == "" {
		return fmt.Errorf("question set has no exam_code")
	}
	if len(s.Questions) == 0 {
		return fmt.Errorf("question set for %s is empty", s.ExamCode)
	}
	for i, q := range s.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// AttemptedQuestion is a question enriched with its 1-based position and the
// answer the learner gave (possibly empty for a skipped question).
type AttemptedQuestion struct {
	Question
	QuestionNumber int    `json:"question_number"`
	UserAnswer     string `json:"user_answer"`
}

// SimulationAttempt is one completed pass through a simulation, recorded once
// and immutable thereafter. Timestamp has calendar-date granularity; attempts
// recorded on the same date are ordered by append order only.
type SimulationAttempt struct {
	ExamCode           string              `json:"exam_code"`
	Timestamp          string              `json:"timestamp"`
	QuestionsAttempted []AttemptedQuestion `json:"questions_attempted"`
}

// ScoredQuestion is the per-question review entry of a feedback report.
type ScoredQuestion struct {
	Type            QuestionType `json:"type"`
	SkillArea       string       `json:"skill_area"`
	Text            string       `json:"question"`
	UserAnswer      string       `json:"user_answer"`
	ExpectedAnswer  string       `json:"expected_answer,omitempty"`
	ScoringCriteria []string     `json:"scoring_criteria,omitempty"`
	Score           string       `json:"score"`
	Notes           string       `json:"notes"`
}

// SkillPerformance is the aggregate score for one skill area.
type SkillPerformance struct {
	SkillArea           string  `json:"skill_area"`
	AverageScorePercent float64 `json:"average_score_percent"`
}

// FeedbackReport is the grading service's assessment of recorded attempts.
// The core treats it as opaque beyond boundary-shape validation.
type FeedbackReport struct {
	ExamCode                 string             `json:"exam_code"`
	ScoredQuestions          []ScoredQuestion   `json:"scored_questions"`
	PerformanceByCategory    []SkillPerformance `json:"performance_by_category"`
	NewQuestionsForWeakAreas *QuestionSet       `json:"new_questions_for_weak_areas,omitempty"`
}

// Validate checks the minimal report shape the rendering layer relies on.
func (r FeedbackReport) Validate() error {
	if len(r.ScoredQuestions) == 0 {
		return fmt.Errorf("feedback report has no scored_questions")
	}
	for i, p := range r.PerformanceByCategory {
		if p.SkillArea == "" {
			return fmt.Errorf("performance entry %d has no skill_area", i+1)
		}
	}
	return nil
}

// Config holds runtime parameters set via CLI flags.
type Config struct {
	DemoMode       bool     // restrict simulations to yes/no questions
	AllowedOrigins []string // CORS origins for the JSON API
}
