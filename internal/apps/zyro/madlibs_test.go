package zyro

import (
	"strings"
	"testing"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

func newTestMadlibs(t *testing.T) (*MadlibsService, *ProgressService) {
	t.Helper()
	store := kvstore.NewMemory()
	scoring := NewProgressService(store)
	return NewMadlibsService(store, scoring), scoring
}

func TestMadlibTemplateDifficulty(t *testing.T) {
	tests := []struct {
		blanks int
		want   string
	}{
		{3, "easy"},
		{5, "easy"},
		{6, "medium"},
		{8, "medium"},
		{9, "hard"},
	}
	for _, tt := range tests {
		tmpl := MadlibTemplate{Blanks: make([]MadlibBlank, tt.blanks)}
		if got := madlibDifficulty(tmpl); got != tt.want {
			t.Errorf("difficulty(%d blanks) = %q, want %q", tt.blanks, got, tt.want)
		}
	}
}

func TestMadlibStartUnknownTemplate(t *testing.T) {
	svc, _ := newTestMadlibs(t)
	if _, err := svc.Start("app1", "u1", "nope"); err != ErrMadlibNotFound {
		t.Fatalf("err = %v, want ErrMadlibNotFound", err)
	}
}

func TestMadlibFillBounds(t *testing.T) {
	svc, _ := newTestMadlibs(t)
	if _, err := svc.Start("app1", "u1", "origin_story"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := svc.Fill("app1", "u1", -1, "x"); err == nil {
		t.Error("negative index accepted")
	}
	if _, err := svc.Fill("app1", "u1", 6, "x"); err == nil {
		t.Error("out-of-range index accepted")
	}

	session, err := svc.Fill("app1", "u1", 0, "barista")
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if session.Blanks[0].Value != "barista" {
		t.Errorf("blank 0 = %q", session.Blanks[0].Value)
	}
}

func TestMadlibFillWithoutSession(t *testing.T) {
	svc, _ := newTestMadlibs(t)
	if _, err := svc.Fill("app1", "u1", 0, "x"); err != ErrNoActiveMadlib {
		t.Fatalf("err = %v, want ErrNoActiveMadlib", err)
	}
}

func TestMadlibFillAllCountMismatch(t *testing.T) {
	svc, _ := newTestMadlibs(t)
	if _, err := svc.Start("app1", "u1", "origin_story"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.FillAll("app1", "u1", []string{"one", "two"}); err == nil {
		t.Error("mismatched value count accepted")
	}
}

func TestMadlibCompleteRejectsEmptyBlanks(t *testing.T) {
	svc, _ := newTestMadlibs(t)
	if _, err := svc.Start("app1", "u1", "origin_story"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Fill("app1", "u1", 0, "barista"); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	result, err := svc.Complete("app1", "u1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if result.Success {
		t.Fatal("completed with empty blanks")
	}
	if len(result.EmptyBlanks) != 5 {
		t.Errorf("EmptyBlanks = %v, want the 5 unfilled indexes", result.EmptyBlanks)
	}
}

func TestMadlibRenderSubstitutesDuplicateKeys(t *testing.T) {
	tmpl := findMadlibTemplate("linkedin_flex")
	if tmpl == nil {
		t.Fatal("linkedin_flex template missing")
	}
	blanks := make([]MadlibValue, len(tmpl.Blanks))
	for i, b := range tmpl.Blanks {
		blanks[i] = MadlibValue{MadlibBlank: b, Value: "v" + string(rune('0'+i))}
	}

	text := renderMadlib(tmpl, blanks)
	if strings.Contains(text, "{") {
		t.Errorf("unreplaced placeholder in %q", text)
	}
	// The two hashtag blanks fill left to right.
	if !strings.Contains(text, "v6 v7 #Blessed") {
		t.Errorf("duplicate key order wrong: %q", text)
	}
}

func TestHumorScore(t *testing.T) {
	tests := []struct {
		name   string
		result string
		want   int
	}{
		{"plain", "a small shop", 50},
		{"funny words", "billionaire unicorn yacht", 65},
		{"enthusiasm capped", "go!!!!!!", 70},
		{"loud", "MY MEGA TURBO EMPIRE", 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := humorScore(tt.result, 0); got != tt.want {
				t.Errorf("humorScore(%q) = %d, want %d", tt.result, got, tt.want)
			}
		})
	}

	long := strings.Repeat("billionaire yacht! ", 20)
	if got := humorScore(long, 19); got != 100 {
		t.Errorf("score not capped: %d", got)
	}
}

func TestMadlibCompleteAwardsPoints(t *testing.T) {
	svc, scoring := newTestMadlibs(t)
	if _, err := svc.Start("app1", "u1", "origin_story"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	values := []string{"barista", "5,000", "a tiny stall", "confused", "2 years", "it pays rent"}
	if _, err := svc.FillAll("app1", "u1", values); err != nil {
		t.Fatalf("FillAll: %v", err)
	}

	result, err := svc.Complete("app1", "u1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !result.Success {
		t.Fatalf("Complete failed: %s", result.Message)
	}
	if result.Points != 25 {
		t.Errorf("Points = %d, want 25", result.Points)
	}
	if result.Result == "" || strings.Contains(result.Result, "{") {
		t.Errorf("bad render: %q", result.Result)
	}

	stats, err := scoring.Stats("app1", "u1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.MadlibsCompleted != 1 {
		t.Errorf("MadlibsCompleted = %d, want 1", stats.MadlibsCompleted)
	}
	if stats.TotalPoints < 25 {
		t.Errorf("TotalPoints = %d, want at least 25", stats.TotalPoints)
	}

	// Frozen session cannot be filled or completed again.
	if _, err := svc.Fill("app1", "u1", 0, "x"); err != ErrNoActiveMadlib {
		t.Errorf("Fill after completion: err = %v, want ErrNoActiveMadlib", err)
	}
	if _, err := svc.Complete("app1", "u1"); err != ErrNoActiveMadlib {
		t.Errorf("Complete twice: err = %v, want ErrNoActiveMadlib", err)
	}
}

func TestMadlibHighHumorEarnsShareBonus(t *testing.T) {
	svc, _ := newTestMadlibs(t)
	if _, err := svc.Start("app1", "u1", "origin_story"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// Eight funny words push the base score past 80 before any jitter.
	values := []string{"ninja", "1 billion", "a legendary unicorn yacht empire", "epic", "90 days", "mega turbo profits"}
	if _, err := svc.FillAll("app1", "u1", values); err != nil {
		t.Fatalf("FillAll: %v", err)
	}

	result, err := svc.Complete("app1", "u1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if result.HumorScore < 80 {
		t.Fatalf("HumorScore = %d, want >= 80", result.HumorScore)
	}
	if result.BonusPoints != 30 {
		t.Errorf("BonusPoints = %d, want 30", result.BonusPoints)
	}
}

func TestMadlibAutoFillUsesSuggestionPools(t *testing.T) {
	svc, _ := newTestMadlibs(t)
	if _, err := svc.Start("app1", "u1", "billion_dollar_pitch"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	session, err := svc.AutoFill("app1", "u1")
	if err != nil {
		t.Fatalf("AutoFill: %v", err)
	}
	for i, b := range session.Blanks {
		if strings.TrimSpace(b.Value) == "" {
			t.Errorf("blank %d (%s) left empty", i, b.Key)
		}
	}

	result, err := svc.Complete("app1", "u1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !result.Success {
		t.Fatalf("Complete failed: %s", result.Message)
	}
}

func TestMadlibStartReplacesUnfinishedSession(t *testing.T) {
	svc, _ := newTestMadlibs(t)
	if _, err := svc.Start("app1", "u1", "origin_story"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Fill("app1", "u1", 0, "barista"); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	session, err := svc.Start("app1", "u1", "linkedin_flex")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if session.TemplateID != "linkedin_flex" {
		t.Errorf("TemplateID = %q", session.TemplateID)
	}
	if filledCount(session) != 0 {
		t.Error("replacement session carried old values")
	}
}

func TestMadlibProgress(t *testing.T) {
	svc, _ := newTestMadlibs(t)

	progress, err := svc.Progress("app1", "u1")
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if progress.Active {
		t.Error("no session reported as active")
	}

	if _, err := svc.Start("app1", "u1", "origin_story"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.Fill("app1", "u1", i, "x"); err != nil {
			t.Fatalf("Fill: %v", err)
		}
	}

	progress, err = svc.Progress("app1", "u1")
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if !progress.Active || progress.Filled != 3 || progress.Total != 6 {
		t.Errorf("progress = %+v", progress)
	}
	if progress.Progress != 50 {
		t.Errorf("Progress pct = %d, want 50", progress.Progress)
	}
	if progress.CanComplete {
		t.Error("CanComplete with blanks left")
	}
}

func TestMadlibHistoryAndStatistics(t *testing.T) {
	svc, _ := newTestMadlibs(t)
	run := func(templateID string) {
		t.Helper()
		if _, err := svc.Start("app1", "u1", templateID); err != nil {
			t.Fatalf("Start: %v", err)
		}
		if _, err := svc.AutoFill("app1", "u1"); err != nil {
			t.Fatalf("AutoFill: %v", err)
		}
		if _, err := svc.Complete("app1", "u1"); err != nil {
			t.Fatalf("Complete: %v", err)
		}
	}
	run("origin_story")
	run("origin_story")
	run("linkedin_flex")

	history, err := svc.History("app1", "u1", 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history len = %d, want 3", len(history))
	}
	if history[0].TemplateID != "linkedin_flex" {
		t.Errorf("history not newest first: %q", history[0].TemplateID)
	}

	stats, err := svc.Statistics("app1", "u1")
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.TotalCompleted != 3 {
		t.Errorf("TotalCompleted = %d", stats.TotalCompleted)
	}
	if stats.FavoriteTemplateID != "origin_story" {
		t.Errorf("FavoriteTemplateID = %q", stats.FavoriteTemplateID)
	}
	if stats.AverageHumorScore < 50 || stats.HighestScore > 100 {
		t.Errorf("scores out of range: %+v", stats)
	}

	if err := svc.ClearHistory("app1", "u1"); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	stats, err = svc.Statistics("app1", "u1")
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.TotalCompleted != 0 {
		t.Errorf("TotalCompleted after clear = %d", stats.TotalCompleted)
	}
}
