// Package llm is the client for the OpenAI-compatible AI service that
// generates questions, scores recorded attempts, and answers free-text
// questions. Every call is a single awaited request with no retries; failures
// and malformed responses surface as model.ErrExternalService and leave
// cached/persisted state untouched.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"certbuddy/internal/llm/prompts"
	"certbuddy/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

const (
	generateMaxTokens = 8192
	feedbackMaxTokens = 16384
	askMaxTokens      = 4096
)

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a new AI service client.
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

// Ping verifies the endpoint is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("%w: %v", model.ErrExternalService, err)
	}
	return nil
}

// GenerateQuestions asks the AI service for a fresh diagnostic question set
// for an exam. The response is validated against the question variant shape
// before it is returned; the caller stores the result verbatim.
func (c *Client) GenerateQuestions(ctx context.Context, examCode, examContext string, numYesNo, numQualitative int) (model.QuestionSet, error) {
	instructions, err := prompts.BuildGenerate(numYesNo, numQualitative)
	if err != nil {
		return model.QuestionSet{}, err
	}
	user := fmt.Sprintf("%s\n\nExam data for %s:\n%s", instructions, examCode, examContext)

	raw, err := c.chatJSON(ctx, prompts.GenerateSystem, user, 0.7, generateMaxTokens)
	if err != nil {
		return model.QuestionSet{}, err
	}
	return parseQuestionSet(raw, examCode)
}

// GenerateFeedback sends the full recorded attempt sequence for one exam and
// returns the resulting performance report unmodified.
func (c *Client) GenerateFeedback(ctx context.Context, examCode string, attempts []model.SimulationAttempt) (model.FeedbackReport, error) {
	instructions, err := prompts.BuildFeedback(examCode)
	if err != nil {
		return model.FeedbackReport{}, err
	}
	results, err := json.MarshalIndent(attempts, "", "  ")
	if err != nil {
		return model.FeedbackReport{}, fmt.Errorf("encode attempts: %w", err)
	}
	user := fmt.Sprintf("%s\n\nUser's simulation results:\n%s", instructions, results)

	raw, err := c.chatJSON(ctx, prompts.FeedbackSystem, user, 0.7, feedbackMaxTokens)
	if err != nil {
		return model.FeedbackReport{}, err
	}
	return parseFeedback(raw, examCode)
}

// Ask answers a free-text question about certifications.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.AskSystem},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		Temperature: 0.7,
		MaxTokens:   askMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrExternalService, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", model.ErrExternalService)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) chatJSON(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrExternalService, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", model.ErrExternalService)
	}
	raw := resp.Choices[0].Message.Content
	slog.Debug("AI service response", "raw", raw)
	return raw, nil
}

// parseQuestionSet decodes and validates a generated question set. The exam
// code is forced to the requested one regardless of what the service echoed.
func parseQuestionSet(raw, examCode string) (model.QuestionSet, error) {
	var set model.QuestionSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return model.QuestionSet{}, fmt.Errorf("%w: parse question set: %v", model.ErrExternalService, err)
	}
	set.ExamCode = examCode
	if err := set.Validate(); err != nil {
		return model.QuestionSet{}, fmt.Errorf("%w: %v", model.ErrExternalService, err)
	}
	return set, nil
}

// parseFeedback decodes and validates a feedback report.
func parseFeedback(raw, examCode string) (model.FeedbackReport, error) {
	var report model.FeedbackReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return model.FeedbackReport{}, fmt.Errorf("%w: parse feedback report: %v", model.ErrExternalService, err)
	}
	if report.ExamCode == "" {
		report.ExamCode = examCode
	}
	if err := report.Validate(); err != nil {
		return model.FeedbackReport{}, fmt.Errorf("%w: %v", model.ErrExternalService, err)
	}
	if nq := report.NewQuestionsForWeakAreas; nq != nil && nq.ExamCode == "" {
		nq.ExamCode = examCode
	}
	return report, nil
}
