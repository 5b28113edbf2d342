package zyro

import (
	"testing"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

func newTestSync(t *testing.T) (*SyncService, *ProgressService, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemory()
	scoring := NewProgressService(store)
	return NewSyncService(store, scoring), scoring, store
}

func TestSyncUnknownTarget(t *testing.T) {
	svc, _, _ := newTestSync(t)
	if _, err := svc.SyncWithApp("app1", "u1", "myspace"); err != ErrUnknownSyncTarget {
		t.Errorf("err = %v, want ErrUnknownSyncTarget", err)
	}
}

func TestSyncZyraSimulatedFallback(t *testing.T) {
	svc, _, _ := newTestSync(t)

	result, err := svc.SyncWithApp("app1", "u1", "zyra")
	if err != nil {
		t.Fatalf("SyncWithApp: %v", err)
	}
	if !result.Success {
		t.Error("sync should always report success")
	}
	if result.Received == nil {
		t.Fatal("expected simulated payload when no insights exist")
	}
	if _, ok := result.Received["leadInsights"]; !ok {
		t.Errorf("simulated zyra payload missing leadInsights: %v", result.Received)
	}
	if _, ok := result.Sent["userActivity"]; !ok {
		t.Errorf("sent payload missing userActivity: %v", result.Sent)
	}
}

func TestSyncUsesStoredInsights(t *testing.T) {
	svc, _, store := newTestSync(t)

	stored := map[string]interface{}{"viralTopics": []string{"something real"}}
	if err := store.Set("app1", "benown_insights_u1", stored); err != nil {
		t.Fatalf("Set: %v", err)
	}

	result, err := svc.SyncWithApp("app1", "u1", "benown")
	if err != nil {
		t.Fatalf("SyncWithApp: %v", err)
	}
	if _, ok := result.Received["contentPerformance"]; ok {
		t.Error("got simulated payload despite stored insights")
	}
	if _, ok := result.Received["viralTopics"]; !ok {
		t.Errorf("received = %v", result.Received)
	}

	// The insight blob is mirrored into the shared data document.
	shared, err := svc.SharedData("app1", "u1")
	if err != nil {
		t.Fatalf("SharedData: %v", err)
	}
	if _, ok := shared["benown"]; !ok {
		t.Errorf("shared data missing benown: %v", shared)
	}
}

func TestSyncPlaceholderTargets(t *testing.T) {
	svc, _, _ := newTestSync(t)

	for _, target := range []string{"glowie", "manlaw"} {
		t.Run(target, func(t *testing.T) {
			result, err := svc.SyncWithApp("app1", "u1", target)
			if err != nil {
				t.Fatalf("SyncWithApp: %v", err)
			}
			if !result.Success {
				t.Error("placeholder sync should succeed")
			}
			if result.Note == "" {
				t.Error("placeholder sync should carry a pending note")
			}
			if result.Received != nil {
				t.Errorf("received = %v, want nil", result.Received)
			}
		})
	}
}

func TestFirstSyncAwardsIntegrationBonus(t *testing.T) {
	svc, scoring, _ := newTestSync(t)

	if _, err := svc.SyncWithApp("app1", "u1", "zyra"); err != nil {
		t.Fatalf("SyncWithApp: %v", err)
	}
	stats, _ := scoring.Stats("app1", "u1")
	if stats.TotalPoints != pointsPerAction["app_integration"] {
		t.Errorf("TotalPoints = %d, want %d", stats.TotalPoints, pointsPerAction["app_integration"])
	}
	if !containsString(stats.SyncedApps, "zyra") {
		t.Errorf("SyncedApps = %v", stats.SyncedApps)
	}

	// Second sync with the same target is not awarded again.
	if _, err := svc.SyncWithApp("app1", "u1", "zyra"); err != nil {
		t.Fatalf("SyncWithApp: %v", err)
	}
	stats, _ = scoring.Stats("app1", "u1")
	if stats.TotalPoints != pointsPerAction["app_integration"] {
		t.Errorf("TotalPoints after repeat = %d, want %d", stats.TotalPoints, pointsPerAction["app_integration"])
	}
}

func TestSyncAll(t *testing.T) {
	svc, scoring, _ := newTestSync(t)

	results, err := svc.SyncAll("app1", "u1")
	if err != nil {
		t.Fatalf("SyncAll: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}
	for _, r := range results {
		if !r.Success {
			t.Errorf("%s sync failed", r.App)
		}
	}

	stats, _ := scoring.Stats("app1", "u1")
	if stats.TotalPoints != 4*pointsPerAction["app_integration"] {
		t.Errorf("TotalPoints = %d, want %d", stats.TotalPoints, 4*pointsPerAction["app_integration"])
	}
}

func TestEngagementLevels(t *testing.T) {
	tests := []struct {
		name  string
		stats UserStat
		want  string
	}{
		{"new user", UserStat{}, "new"},
		{"low", UserStat{IdeasSpun: 10}, "low"},
		{"medium", UserStat{ChallengesCompleted: 25}, "medium"},
		{"high", UserStat{ChallengesCompleted: 25, BingoProgress: 20}, "high"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engagementLevel(&tt.stats); got != tt.want {
				t.Errorf("engagementLevel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInterestsExtraction(t *testing.T) {
	got := interests(&UserStat{})
	if len(got) != 1 || got[0] != "general_entrepreneur" {
		t.Errorf("default interests = %v", got)
	}

	got = interests(&UserStat{QuizzesTaken: 1, IdeasSpun: 4, ChallengesCompleted: 6, BingoProgress: 60})
	want := []string{"personal_development", "daily_habits", "consistency", "entrepreneurship", "business_ideas", "goal_achievement", "gamification"}
	if len(got) != len(want) {
		t.Fatalf("interests = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("interests[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
