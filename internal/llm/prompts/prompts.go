// Package prompts builds the instruction text sent to the AI service.
// Templates live in embedded files so they can be tuned without touching code.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var templateFS embed.FS

// System prompts for the three request kinds.
const (
	GenerateSystem = "You are an expert on certification exams and a question generator. Your task is to create diagnostic questions in a precise JSON format based on provided exam content. You MUST include the 'skill_area' for each generated question."
	FeedbackSystem = "You are a comprehensive examiner and question generator for certification exams. Provide detailed performance feedback, including a score for each question and per-category performance, and generate targeted new questions."
	AskSystem      = "You are an expert on certification exams. Provide concise and accurate answers."
)

var (
	loadOnce     sync.Once
	loadErr      error
	generateTmpl *template.Template
	feedbackTmpl *template.Template
)

func load() error {
	loadOnce.Do(func() {
		parse := func(name string) *template.Template {
			if loadErr != nil {
				return nil
			}
			data, err := templateFS.ReadFile("templates/" + name)
			if err != nil {
				loadErr = fmt.Errorf("read prompt template %s: %w", name, err)
				return nil
			}
			tmpl, err := template.New(name).Parse(string(data))
			if err != nil {
				loadErr = fmt.Errorf("parse prompt template %s: %w", name, err)
				return nil
			}
			return tmpl
		}
		generateTmpl = parse("generate.txt")
		feedbackTmpl = parse("feedback.txt")
	})
	return loadErr
}

// BuildGenerate renders the question generation instructions for the
// requested number of questions per type.
func BuildGenerate(numYesNo, numQualitative int) (string, error) {
	if err := load(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	err := generateTmpl.Execute(&buf, struct {
		NumYesNo       int
		NumQualitative int
	}{numYesNo, numQualitative})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BuildFeedback renders the attempt scoring instructions for an exam code.
func BuildFeedback(examCode string) (string, error) {
	if err := load(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := feedbackTmpl.Execute(&buf, struct{ ExamCode string }{examCode}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
