package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"certbuddy/internal/model"

	_ "modernc.org/sqlite"
)

// Question set kinds. Generated sets come from the question generation call;
// targeted sets are the weak-area questions returned with a feedback report.
const (
	kindGenerated = "generated"
	kindTargeted  = "targeted"
)

// Store is the SQLite-backed Repository implementation.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS question_sets (
		exam_code TEXT NOT NULL,
		kind TEXT NOT NULL,
		questions TEXT NOT NULL,
		generated_at DATETIME NOT NULL,
		PRIMARY KEY (exam_code, kind)
	);

	CREATE TABLE IF NOT EXISTS simulation_attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exam_code TEXT NOT NULL,
		attempted_on TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_exam ON simulation_attempts(exam_code, id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CachedQuestions returns the generated question set for an exam code.
func (s *Store) CachedQuestions(ctx context.Context, examCode string) (model.QuestionSet, error) {
	return s.questionSet(ctx, examCode, kindGenerated)
}

// PutCachedQuestions overwrites any prior generated set for the exam code.
// There is no merge and no versioning: regenerating discards the old set.
func (s *Store) PutCachedQuestions(ctx context.Context, set model.QuestionSet) error {
	return s.putQuestionSet(ctx, set, kindGenerated)
}

// TargetedQuestions returns the weak-area question set for an exam code.
func (s *Store) TargetedQuestions(ctx context.Context, examCode string) (model.QuestionSet, error) {
	return s.questionSet(ctx, examCode, kindTargeted)
}

// PutTargetedQuestions overwrites any prior targeted set for the exam code.
func (s *Store) PutTargetedQuestions(ctx context.Context, set model.QuestionSet) error {
	return s.putQuestionSet(ctx, set, kindTargeted)
}

func (s *Store) questionSet(ctx context.Context, examCode, kind string) (model.QuestionSet, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT questions FROM question_sets WHERE exam_code = ? AND kind = ?`,
		examCode, kind,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.QuestionSet{}, model.ErrNotFound
	}
	if err != nil {
		return model.QuestionSet{}, err
	}
	var questions []model.Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return model.QuestionSet{}, fmt.Errorf("decode %s questions for %s: %w", kind, examCode, err)
	}
	return model.QuestionSet{ExamCode: examCode, Questions: questions}, nil
}

func (s *Store) putQuestionSet(ctx context.Context, set model.QuestionSet, kind string) error {
	raw, err := json.Marshal(set.Questions)
	if err != nil {
		return fmt.Errorf("encode questions for %s: %w", set.ExamCode, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO question_sets (exam_code, kind, questions, generated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(exam_code, kind) DO UPDATE SET questions = ?, generated_at = ?`,
		set.ExamCode, kind, string(raw), time.Now(), string(raw), time.Now(),
	)
	return err
}

// Attempts returns the attempt log for an exam code in append order.
// An exam code with no recorded attempts returns model.ErrNotFound.
func (s *Store) Attempts(ctx context.Context, examCode string) ([]model.SimulationAttempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM simulation_attempts WHERE exam_code = ? ORDER BY id`, examCode,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var attempts []model.SimulationAttempt
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var a model.SimulationAttempt
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			return nil, fmt.Errorf("decode attempt for %s: %w", examCode, err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, model.ErrNotFound
	}
	return attempts, nil
}

// AppendAttempt appends one attempt to the end of its exam's log. The append
// is a single INSERT, so it stays correct with concurrent writers sharing the
// same database.
func (s *Store) AppendAttempt(ctx context.Context, attempt model.SimulationAttempt) error {
	raw, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("encode attempt for %s: %w", attempt.ExamCode, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO simulation_attempts (exam_code, attempted_on, payload, created_at)
		 VALUES (?, ?, ?, ?)`,
		attempt.ExamCode, attempt.Timestamp, string(raw), time.Now(),
	)
	return err
}

// ExamCodesWithAttempts lists exam codes that have at least one recorded
// attempt, alphabetically.
func (s *Store) ExamCodesWithAttempts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT exam_code FROM simulation_attempts ORDER BY exam_code`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
