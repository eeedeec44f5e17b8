package model

import "errors"

var (
	// ErrEmptyQuestionSet is returned when a simulation is started with no questions.
	ErrEmptyQuestionSet = errors.New("question set is empty")
	// ErrIncompleteSession is returned when an attempt is recorded before the
	// session reached its terminal state. This is a contract violation: callers
	// are expected to gate recording on completion.
	ErrIncompleteSession = errors.New("simulation session is not complete")
	// ErrSessionComplete is returned when an answer is submitted to a finished session.
	ErrSessionComplete = errors.New("simulation session is already complete")
	// ErrAnswerEmpty is returned when an empty answer is submitted.
	ErrAnswerEmpty = errors.New("answer must not be empty")
	// ErrAtFirstQuestion is returned when navigating back from the first question.
	ErrAtFirstQuestion = errors.New("already at the first question")
	// ErrNotFound indicates the requested cached questions or attempt log does
	// not exist yet; callers route the user to the prerequisite step.
	ErrNotFound = errors.New("not found")
	// ErrExternalService indicates the AI service call failed or returned a
	// malformed response. Prior cached and persisted state is left untouched.
	ErrExternalService = errors.New("external service failure")
)
