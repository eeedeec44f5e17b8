package prompts

import (
	"strings"
	"testing"
)

func TestBuildGenerate(t *testing.T) {
	out, err := BuildGenerate(12, 8)
	if err != nil {
		t.Fatalf("BuildGenerate: %v", err)
	}
	for _, want := range []string{"12", "8", "yes_no", "qualitative", "skill_area", "scoring_criteria"} {
		if !strings.Contains(out, want) {
			t.Errorf("generate prompt missing %q", want)
		}
	}
}

func TestBuildFeedback(t *testing.T) {
	out, err := BuildFeedback("AZ-900")
	if err != nil {
		t.Fatalf("BuildFeedback: %v", err)
	}
	for _, want := range []string{"AZ-900", "scored_questions", "performance_by_category", "new_questions_for_weak_areas"} {
		if !strings.Contains(out, want) {
			t.Errorf("feedback prompt missing %q", want)
		}
	}
	// Skipped questions must be scored as zero, not dropped.
	if !strings.Contains(out, "0%") {
		t.Error("feedback prompt missing the skipped-question scoring rule")
	}
}
