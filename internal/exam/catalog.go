// Package exam loads the certification catalog used for question generation
// context and flashcard content.
package exam

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"certbuddy/internal/model"
)

// Detail is one content line under a subtopic. The catalog file carries
// details either as plain strings or as objects with a description field.
type Detail string

func (d *Detail) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = Detail(s)
		return nil
	}
	var obj struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*d = Detail(obj.Description)
	return nil
}

// Subtopic is one entry under a skill area. The catalog file carries
// subtopics either as plain strings or as objects with topic and details.
type Subtopic struct {
	Topic   string   `json:"topic"`
	Details []Detail `json:"details"`
}

func (s *Subtopic) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Topic = str
		s.Details = nil
		return nil
	}
	type alias Subtopic
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*s = Subtopic(obj)
	return nil
}

// SkillArea is a named syllabus area with its exam weight.
type SkillArea struct {
	Name       string     `json:"skill_area"`
	Percentage string     `json:"percentage"`
	Subtopics  []Subtopic `json:"subtopics"`
}

// Exam is one certification's catalog entry.
type Exam struct {
	Code   string      `json:"-"`
	Name   string      `json:"name"`
	Skills []SkillArea `json:"skills_measured"`
}

// Info is the code/name pair shown in exam listings.
type Info struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Catalog holds all known certifications, keyed by exam code.
type Catalog struct {
	exams map[string]Exam
}

// Load reads the catalog from a JSON file mapping exam codes to exam entries.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var raw map[string]Exam
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	for code, e := range raw {
		e.Code = code
		raw[code] = e
	}
	return &Catalog{exams: raw}, nil
}

// AvailableExams lists all catalog entries, ordered by exam code.
func (c *Catalog) AvailableExams() []Info {
	infos := make([]Info, 0, len(c.exams))
	for code, e := range c.exams {
		infos = append(infos, Info{Code: code, Name: e.Name})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })
	return infos
}

// Exam returns the catalog entry for an exam code.
func (c *Catalog) Exam(code string) (Exam, error) {
	e, ok := c.exams[code]
	if !ok {
		return Exam{}, fmt.Errorf("exam %s: %w", code, model.ErrNotFound)
	}
	return e, nil
}

// Context renders an exam's full syllabus as the plain-text context block fed
// to the question generation prompt.
func (c *Catalog) Context(code string) (string, error) {
	e, err := c.Exam(code)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(e.Code + ": " + e.Name + "\n")
	for _, skill := range e.Skills {
		fmt.Fprintf(&sb, "  - %s (%s):\n", skill.Name, skill.Percentage)
		for _, sub := range skill.Subtopics {
			if len(sub.Details) == 0 {
				sb.WriteString(sub.Topic + "\n")
				continue
			}
			sb.WriteString(sub.Topic + ":\n")
			for _, d := range sub.Details {
				sb.WriteString("    - " + string(d) + "\n")
			}
		}
	}
	return sb.String(), nil
}

// ConceptCard is a question/answer pair for flashcard export.
type ConceptCard struct {
	Question string
	Answer   string
}

// StructuredContent flattens an exam's skill areas and subtopics into
// flashcard question/answer pairs.
func (c *Catalog) StructuredContent(code string) ([]ConceptCard, error) {
	e, err := c.Exam(code)
	if err != nil {
		return nil, err
	}

	var cards []ConceptCard
	for _, skill := range e.Skills {
		if skill.Name == "" {
			continue
		}
		names := make([]string, 0, len(skill.Subtopics))
		for _, sub := range skill.Subtopics {
			names = append(names, sub.Topic)
		}
		cards = append(cards, ConceptCard{
			Question: fmt.Sprintf("What is %q about?", skill.Name),
			Answer:   "This skill area covers: " + strings.Join(names, ", "),
		})

		for _, sub := range skill.Subtopics {
			if len(sub.Details) == 0 {
				cards = append(cards, ConceptCard{
					Question: fmt.Sprintf("What is %q?", sub.Topic),
					Answer:   fmt.Sprintf("A concept under %q.", skill.Name),
				})
				continue
			}
			lines := make([]string, 0, len(sub.Details))
			for _, d := range sub.Details {
				lines = append(lines, string(d))
			}
			cards = append(cards, ConceptCard{
				Question: fmt.Sprintf("Explain %q.", sub.Topic),
				Answer:   strings.Join(lines, "\n"),
			})
		}
	}
	return cards, nil
}
