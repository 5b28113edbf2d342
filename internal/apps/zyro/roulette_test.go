package zyro

import (
	"fmt"
	"testing"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

func newTestRoulette(t *testing.T) (*RouletteService, *ProgressService) {
	t.Helper()
	store := kvstore.NewMemory()
	scoring := NewProgressService(store)
	return NewRouletteService(store, scoring, nil), scoring
}

func TestAbsurdityScore(t *testing.T) {
	tests := []struct {
		parts IdeaParts
		want  int
	}{
		{IdeaParts{"Luxury", "Dog Walking", "for Billionaires"}, 100},
		{IdeaParts{"Luxury", "Dog Walking", "for Introverts"}, 90},
		{IdeaParts{"Budget", "Dog Walking", "for Introverts"}, 70},
		{IdeaParts{"Budget", "Laundry Service", "for Introverts"}, 50},
		{IdeaParts{"Online", "Consulting", "on a Budget"}, 50},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s %s", tt.parts.Prefix, tt.parts.Business, tt.parts.Suffix), func(t *testing.T) {
			if got := absurdityScore(tt.parts); got != tt.want {
				t.Errorf("absurdityScore = %d, want %d", got, tt.want)
			}
			// Pure function: repeat calls agree.
			if again := absurdityScore(tt.parts); again != tt.want {
				t.Errorf("second call = %d, want %d", again, tt.want)
			}
		})
	}
}

func TestViabilityScore(t *testing.T) {
	tests := []struct {
		parts IdeaParts
		want  int
	}{
		{IdeaParts{"Online", "Consulting", "on a Budget"}, 100},
		{IdeaParts{"Online", "Consulting", "for Small Teams"}, 80},
		{IdeaParts{"Mobile App", "Sock Matching", "for Small Teams"}, 55},
		{IdeaParts{"Luxury", "Dog Walking", "for Billionaires"}, 30},
	}

	for _, tt := range tests {
		if got := viabilityScore(tt.parts); got != tt.want {
			t.Errorf("viabilityScore(%v) = %d, want %d", tt.parts, got, tt.want)
		}
	}
}

func TestIsViralWorthy(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Luxury Dog Walking for Billionaires", true},
		{"Automated Sock Matching for Introverts", true},
		{"Budget Laundry Service via TikTok", true},
		{"Local Coaching for Small Teams", false},
	}
	for _, tt := range tests {
		if got := isViralWorthy(tt.text); got != tt.want {
			t.Errorf("isViralWorthy(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIdeaRingCapsAtFifty(t *testing.T) {
	var ring ideaRing
	for i := 0; i < 51; i++ {
		ring.Push(Idea{ID: int64(i), Text: fmt.Sprintf("idea %d", i)})
	}

	if ring.Len() != ideaHistoryCap {
		t.Fatalf("Len = %d, want %d", ring.Len(), ideaHistoryCap)
	}

	ideas := ring.Slice(0)
	if ideas[0].ID != 50 {
		t.Errorf("newest ID = %d, want 50", ideas[0].ID)
	}
	if ideas[len(ideas)-1].ID != 1 {
		t.Errorf("oldest ID = %d, want 1 (idea 0 evicted)", ideas[len(ideas)-1].ID)
	}
	if ring.Find(0) != nil {
		t.Error("evicted idea still findable")
	}
}

func TestSpinHistoryEviction(t *testing.T) {
	svc, _ := newTestRoulette(t)

	for i := 0; i < 51; i++ {
		result, err := svc.Spin("app1", "u1", "", false)
		if err != nil {
			t.Fatalf("Spin %d: %v", i, err)
		}
		if !result.Success {
			t.Fatalf("Spin %d rejected: %s", i, result.Message)
		}
	}

	history, err := svc.History("app1", "u1", 100)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != ideaHistoryCap {
		t.Errorf("history length = %d, want %d", len(history), ideaHistoryCap)
	}
}

func TestSpinRejectsWhileInFlight(t *testing.T) {
	svc, _ := newTestRoulette(t)

	svc.guard("u1").Store(true)
	result, err := svc.Spin("app1", "u1", "", false)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	if result.Success {
		t.Error("expected busy result while a spin is in flight")
	}

	// Other users are unaffected.
	other, err := svc.Spin("app1", "u2", "", false)
	if err != nil {
		t.Fatalf("Spin u2: %v", err)
	}
	if !other.Success {
		t.Errorf("other user's spin blocked: %s", other.Message)
	}

	// Releasing the guard lets the user spin again.
	svc.guard("u1").Store(false)
	result, err = svc.Spin("app1", "u1", "", false)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	if !result.Success {
		t.Errorf("spin after release failed: %s", result.Message)
	}
}

func TestSpinUnknownCategory(t *testing.T) {
	svc, _ := newTestRoulette(t)

	result, err := svc.Spin("app1", "u1", "Not A Category", false)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	if result.Success {
		t.Error("unknown category should not succeed")
	}
}

func TestSpinAwardsPoints(t *testing.T) {
	svc, scoring := newTestRoulette(t)

	result, err := svc.Spin("app1", "u1", "Absurd Combos", false)
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	if result.Points != pointsPerAction["idea_spin"] {
		t.Errorf("points = %d, want %d", result.Points, pointsPerAction["idea_spin"])
	}

	stats, err := scoring.Stats("app1", "u1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.IdeasSpun != 1 {
		t.Errorf("IdeasSpun = %d, want 1", stats.IdeasSpun)
	}
	if !stats.HasBadge("first_spin") {
		t.Error("first_spin badge not granted")
	}
}

func TestFavoriteLifecycle(t *testing.T) {
	svc, _ := newTestRoulette(t)

	result, err := svc.Spin("app1", "u1", "", false)
	if err != nil || !result.Success {
		t.Fatalf("Spin: %v %+v", err, result)
	}
	id := result.Idea.ID

	if err := svc.Favorite("app1", "u1", id, true); err != nil {
		t.Fatalf("Favorite: %v", err)
	}
	favs, err := svc.Favorites("app1", "u1")
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(favs) != 1 || favs[0].ID != id {
		t.Errorf("favorites = %+v", favs)
	}

	if err := svc.Favorite("app1", "u1", id, false); err != nil {
		t.Fatalf("Unfavorite: %v", err)
	}
	favs, _ = svc.Favorites("app1", "u1")
	if len(favs) != 0 {
		t.Errorf("favorites after removal = %+v", favs)
	}

	if err := svc.Favorite("app1", "u1", 424242, true); err != ErrIdeaNotFound {
		t.Errorf("err = %v, want ErrIdeaNotFound", err)
	}
}

func TestValidationReportBands(t *testing.T) {
	tests := []struct {
		viability int
		stars     int
		label     string
	}{
		{95, 5, "Actually Brilliant!"},
		{80, 5, "Actually Brilliant!"},
		{60, 4, "Worth Exploring"},
		{40, 3, "Needs Work"},
		{20, 2, "Pretty Absurd"},
		{10, 1, "Pure Comedy"},
	}
	for _, tt := range tests {
		stars, label := overallRating(tt.viability)
		if stars != tt.stars || label != tt.label {
			t.Errorf("overallRating(%d) = (%d, %q), want (%d, %q)", tt.viability, stars, label, tt.stars, tt.label)
		}
	}
}

func TestStatistics(t *testing.T) {
	svc, _ := newTestRoulette(t)

	for i := 0; i < 5; i++ {
		if _, err := svc.Spin("app1", "u1", "Practical Plays", false); err != nil {
			t.Fatalf("Spin: %v", err)
		}
	}

	stats, err := svc.Statistics("app1", "u1")
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.TotalSpins != 5 {
		t.Errorf("TotalSpins = %d, want 5", stats.TotalSpins)
	}
	if stats.TopCategory != "Practical Plays" {
		t.Errorf("TopCategory = %q", stats.TopCategory)
	}
	if stats.AvgViability < 30 {
		t.Errorf("AvgViability = %d, want >= 30", stats.AvgViability)
	}
}
