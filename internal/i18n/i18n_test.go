package i18n

import (
	"context"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	loc := NewLocalizer(lang)
	return WithLocalizer(context.Background(), loc)
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "AtFirstQuestion")
	if got != "Already at the first question." {
		t.Errorf("T(AtFirstQuestion) = %q, want 'Already at the first question.'", got)
	}

	got = T(ctx, "SimulationNotFound")
	if got != "Simulation not found. It may have been completed or abandoned." {
		t.Errorf("T(SimulationNotFound) = %q", got)
	}
}

func TestTranslatePortuguese(t *testing.T) {
	ctx := initLang(t, "pt")

	got := T(ctx, "AtFirstQuestion")
	if got != "Já está na primeira pergunta." {
		t.Errorf("T(AtFirstQuestion) = %q, want 'Já está na primeira pergunta.'", got)
	}

	got = T(ctx, "AnswerRequired")
	if got != "É necessária uma resposta antes de continuar." {
		t.Errorf("T(AnswerRequired) = %q", got)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "QuestionsGenerated", map[string]any{"Count": 20, "Exam": "AZ-900"})
	if got != "Generated 20 questions for AZ-900." {
		t.Errorf("Td(QuestionsGenerated) = %q", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "NonExistentKey")
	if got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestFallbackToDefaultLanguage(t *testing.T) {
	if err := Init("en"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	// An unknown requested language falls back to the bundle default.
	loc := NewLocalizer("de", "en")
	ctx := WithLocalizer(context.Background(), loc)

	got := T(ctx, "AtFirstQuestion")
	if got != "Already at the first question." {
		t.Errorf("T(AtFirstQuestion) with de fallback = %q", got)
	}
}
