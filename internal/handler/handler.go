// Package handler exposes the JSON API: question generation, the simulation
// flow, attempt logs, feedback reports, flashcard export, and free-text Q&A.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"certbuddy/internal/exam"
	"certbuddy/internal/flashcard"
	appI18n "certbuddy/internal/i18n"
	"certbuddy/internal/model"
	"certbuddy/internal/sim"
	"certbuddy/internal/store"
)

// AIService is the external generation/grading boundary the handlers call.
type AIService interface {
	GenerateQuestions(ctx context.Context, examCode, examContext string, numYesNo, numQualitative int) (model.QuestionSet, error)
	GenerateFeedback(ctx context.Context, examCode string, attempts []model.SimulationAttempt) (model.FeedbackReport, error)
	Ask(ctx context.Context, question string) (string, error)
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	repo     store.Repository
	ai       AIService
	catalog  *exam.Catalog
	sims     *sim.Manager
	recorder *sim.Recorder
	config   model.Config
	validate *validator.Validate
	now      func() time.Time
}

// New creates a new Handler.
func New(repo store.Repository, ai AIService, catalog *exam.Catalog, cfg model.Config) *Handler {
	return &Handler{
		repo:     repo,
		ai:       ai,
		catalog:  catalog,
		sims:     sim.NewManager(),
		recorder: sim.NewRecorder(repo),
		config:   cfg,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/exams", h.handleListExams)
		r.Route("/exams/{examCode}", func(r chi.Router) {
			r.Post("/questions", h.handleGenerateQuestions)
			r.Get("/questions", h.handleGetQuestions)
			r.Get("/targeted-questions", h.handleGetTargetedQuestions)
			r.Post("/simulations", h.handleStartSimulation)
			r.Get("/attempts", h.handleListAttempts)
			r.Post("/feedback", h.handleFeedback)
			r.Get("/flashcards", h.handleFlashcards)
		})
		r.Route("/simulations/{simID}", func(r chi.Router) {
			r.Get("/", h.handleSimulationState)
			r.Post("/answer", h.handleSubmitAnswer)
			r.Post("/back", h.handleGoBack)
			r.Post("/reset", h.handleResetSimulation)
			r.Post("/complete", h.handleCompleteSimulation)
		})
		r.Post("/ask", h.handleAsk)
	})
}

func (h *Handler) handleListExams(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.AvailableExams())
}

type generateRequest struct {
	YesNoCount       int `json:"yes_no_count" validate:"min=0,max=100"`
	QualitativeCount int `json:"qualitative_count" validate:"min=0,max=100"`
}

type generateResponse struct {
	Message     string            `json:"message"`
	QuestionSet model.QuestionSet `json:"question_set"`
}

func (h *Handler) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	examCode := chi.URLParam(r, "examCode")

	var req generateRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	if req.YesNoCount+req.QualitativeCount == 0 {
		h.errorJSON(w, r, http.StatusBadRequest, "EmptyQuestionSet",
			fmt.Errorf("generate request with zero questions"))
		return
	}

	examContext, err := h.catalog.Context(examCode)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	set, err := h.ai.GenerateQuestions(r.Context(), examCode, examContext, req.YesNoCount, req.QualitativeCount)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	// Overwrites any prior cached set for this exam unconditionally.
	if err := h.repo.PutCachedQuestions(r.Context(), set); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, generateResponse{
		Message: appI18n.Td(r.Context(), "QuestionsGenerated", map[string]any{
			"Count": len(set.Questions),
			"Exam":  examCode,
		}),
		QuestionSet: set,
	})
}

func (h *Handler) handleGetQuestions(w http.ResponseWriter, r *http.Request) {
	examCode := chi.URLParam(r, "examCode")
	set, err := h.repo.CachedQuestions(r.Context(), examCode)
	if err != nil {
		h.notFoundOr(w, r, err, "NoQuestionsYet")
		return
	}
	respondJSON(w, http.StatusOK, set)
}

func (h *Handler) handleGetTargetedQuestions(w http.ResponseWriter, r *http.Request) {
	examCode := chi.URLParam(r, "examCode")
	set, err := h.repo.TargetedQuestions(r.Context(), examCode)
	if err != nil {
		h.notFoundOr(w, r, err, "NoTargetedYet")
		return
	}
	respondJSON(w, http.StatusOK, set)
}

type simulationState struct {
	SimulationID      string          `json:"simulation_id"`
	ExamCode          string          `json:"exam_code"`
	Progress          sim.Progress    `json:"progress"`
	Question          *model.Question `json:"question,omitempty"`
	SkillDistribution map[string]int  `json:"skill_distribution,omitempty"`
}

func (h *Handler) state(id string, s *sim.Session, withDistribution bool) simulationState {
	st := simulationState{
		SimulationID: id,
		ExamCode:     s.ExamCode,
		Progress:     s.Progress(),
	}
	if q, ok := s.CurrentQuestion(); ok {
		st.Question = &q
	}
	if withDistribution {
		st.SkillDistribution = s.SkillDistribution()
	}
	return st
}

func (h *Handler) handleStartSimulation(w http.ResponseWriter, r *http.Request) {
	examCode := chi.URLParam(r, "examCode")

	set, err := h.repo.CachedQuestions(r.Context(), examCode)
	if err != nil {
		h.notFoundOr(w, r, err, "NoQuestionsYet")
		return
	}

	questions := set.Questions
	if h.config.DemoMode {
		questions = filterYesNo(questions)
	}

	session, err := sim.Start(examCode, questions)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	id := h.sims.Add(session)
	respondJSON(w, http.StatusCreated, h.state(id, session, true))
}

func (h *Handler) handleSimulationState(w http.ResponseWriter, r *http.Request) {
	id, session, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.state(id, session, false))
}

type answerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

func (h *Handler) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req answerRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	if err := session.SubmitAnswer(req.Answer); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.state(id, session, false))
}

type backRequest struct {
	// Draft is the in-progress answer for the current question; it is
	// persisted, even when empty, before stepping back.
	Draft string `json:"draft"`
}

func (h *Handler) handleGoBack(w http.ResponseWriter, r *http.Request) {
	id, session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req backRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	if err := session.GoToPrevious(req.Draft); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.state(id, session, false))
}

func (h *Handler) handleResetSimulation(w http.ResponseWriter, r *http.Request) {
	id, session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.Reset()
	respondJSON(w, http.StatusOK, h.state(id, session, false))
}

type completeResponse struct {
	Message string                  `json:"message"`
	Attempt model.SimulationAttempt `json:"attempt"`
}

func (h *Handler) handleCompleteSimulation(w http.ResponseWriter, r *http.Request) {
	id, session, ok := h.session(w, r)
	if !ok {
		return
	}

	attempt, err := h.recorder.Record(r.Context(), session, h.now())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.sims.Remove(id)

	respondJSON(w, http.StatusCreated, completeResponse{
		Message: appI18n.Td(r.Context(), "ResultsSaved", map[string]any{"Exam": session.ExamCode}),
		Attempt: attempt,
	})
}

func (h *Handler) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	examCode := chi.URLParam(r, "examCode")
	attempts, err := h.repo.Attempts(r.Context(), examCode)
	if err != nil {
		h.notFoundOr(w, r, err, "NoAttemptsYet")
		return
	}
	respondJSON(w, http.StatusOK, attempts)
}

func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	examCode := chi.URLParam(r, "examCode")

	attempts, err := h.repo.Attempts(r.Context(), examCode)
	if err != nil {
		h.notFoundOr(w, r, err, "NoAttemptsYet")
		return
	}

	report, err := h.ai.GenerateFeedback(r.Context(), examCode, attempts)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if nq := report.NewQuestionsForWeakAreas; nq != nil && len(nq.Questions) > 0 {
		if err := h.repo.PutTargetedQuestions(r.Context(), *nq); err != nil {
			h.respondError(w, r, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) handleFlashcards(w http.ResponseWriter, r *http.Request) {
	examCode := chi.URLParam(r, "examCode")
	cards, err := h.catalog.StructuredContent(examCode)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", examCode+"_flashcards.csv"))
	if err := flashcard.WriteCSV(w, cards); err != nil {
		h.respondError(w, r, err)
	}
}

type askRequest struct {
	Question string `json:"question" validate:"required"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	answer, err := h.ai.Ask(r.Context(), req.Question)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, askResponse{Answer: answer})
}

// session looks up the active simulation from the URL, or renders a 404.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (string, *sim.Session, bool) {
	id := chi.URLParam(r, "simID")
	session, ok := h.sims.Get(id)
	if !ok {
		h.errorJSON(w, r, http.StatusNotFound, "SimulationNotFound",
			fmt.Errorf("simulation %s: %w", id, model.ErrNotFound))
		return "", nil, false
	}
	return id, session, true
}

// decodeValid decodes a JSON body into dst and runs struct validation,
// rendering a 400 on failure.
func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.badRequest(w, r, fmt.Errorf("decode request body: %w", err))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.badRequest(w, r, fmt.Errorf("validate request body: %w", err))
		return false
	}
	return true
}

func filterYesNo(questions []model.Question) []model.Question {
	var out []model.Question
	for _, q := range questions {
		if q.Type == model.QuestionYesNo {
			out = append(out, q)
		}
	}
	return out
}
