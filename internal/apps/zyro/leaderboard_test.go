package zyro

import (
	"fmt"
	"testing"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

func newTestLeaderboard(t *testing.T) *LeaderboardService {
	t.Helper()
	return NewLeaderboardService(kvstore.NewMemory())
}

func seedBoard(t *testing.T, svc *LeaderboardService, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		err := svc.UpsertEntry("app1", &UserStat{
			UserID:              fmt.Sprintf("u%d", i),
			DisplayName:         fmt.Sprintf("User %d", i),
			TotalPoints:         i * 100,
			CurrentStreak:       i,
			ChallengesCompleted: n - i,
		})
		if err != nil {
			t.Fatalf("UpsertEntry: %v", err)
		}
	}
}

func TestTopOrderingAndRanks(t *testing.T) {
	svc := newTestLeaderboard(t)
	seedBoard(t, svc, 8)

	entries, err := svc.Top("app1", "total_points", 8)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(entries) != 8 {
		t.Fatalf("len = %d, want 8", len(entries))
	}

	for i, e := range entries {
		if e.Rank != i+1 {
			t.Errorf("entry %d has rank %d", i, e.Rank)
		}
		if i > 0 && entries[i-1].TotalPoints < e.TotalPoints {
			t.Errorf("order broken at %d: %d < %d", i, entries[i-1].TotalPoints, e.TotalPoints)
		}
	}
	if entries[0].UserID != "u8" {
		t.Errorf("leader = %s, want u8", entries[0].UserID)
	}
}

func TestTopByMetric(t *testing.T) {
	svc := newTestLeaderboard(t)
	seedBoard(t, svc, 5)

	entries, err := svc.Top("app1", "challenges_completed", 1)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	// u1 has the most challenges completed in the seed.
	if entries[0].UserID != "u1" {
		t.Errorf("leader by challenges = %s, want u1", entries[0].UserID)
	}

	// Unknown metric falls back to total_points.
	entries, err = svc.Top("app1", "bogus_metric", 1)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if entries[0].UserID != "u5" {
		t.Errorf("leader by fallback metric = %s, want u5", entries[0].UserID)
	}
}

func TestRankBadges(t *testing.T) {
	tests := []struct {
		rank int
		want string
	}{
		{1, "🥇"}, {2, "🥈"}, {3, "🥉"},
		{4, "⭐"}, {10, "⭐"},
		{11, "🌟"}, {50, "🌟"},
		{51, "💫"}, {500, "💫"},
	}
	for _, tt := range tests {
		if got := rankBadge(tt.rank); got != tt.want {
			t.Errorf("rankBadge(%d) = %q, want %q", tt.rank, got, tt.want)
		}
	}
}

func TestUserRankAndPercentile(t *testing.T) {
	svc := newTestLeaderboard(t)
	seedBoard(t, svc, 10)

	info, err := svc.UserRank("app1", "u10", "total_points")
	if err != nil {
		t.Fatalf("UserRank: %v", err)
	}
	if info.Rank == nil || *info.Rank != 1 {
		t.Fatalf("rank = %v, want 1", info.Rank)
	}
	if info.Percentile != 90 {
		t.Errorf("percentile = %d, want 90", info.Percentile)
	}

	info, err = svc.UserRank("app1", "u1", "total_points")
	if err != nil {
		t.Fatalf("UserRank: %v", err)
	}
	if info.Rank == nil || *info.Rank != 10 {
		t.Fatalf("rank = %v, want 10", info.Rank)
	}
	if info.Percentile != 0 {
		t.Errorf("percentile = %d, want 0", info.Percentile)
	}
}

func TestUserRankAbsentUser(t *testing.T) {
	svc := newTestLeaderboard(t)
	seedBoard(t, svc, 3)

	info, err := svc.UserRank("app1", "stranger", "total_points")
	if err != nil {
		t.Fatalf("UserRank: %v", err)
	}
	if info.Rank != nil {
		t.Errorf("rank = %v, want nil for unranked user", *info.Rank)
	}
	if info.Total != 3 {
		t.Errorf("total = %d, want 3", info.Total)
	}
	if info.Message == "" {
		t.Error("expected an encouraging message")
	}
}

func TestNearbyRivalsWindowClamped(t *testing.T) {
	svc := newTestLeaderboard(t)
	seedBoard(t, svc, 10)

	// Leader: window clamps at the top.
	rivals, err := svc.NearbyRivals("app1", "u10", "total_points", 3)
	if err != nil {
		t.Fatalf("NearbyRivals: %v", err)
	}
	if len(rivals) != 4 {
		t.Errorf("leader window = %d entries, want 4", len(rivals))
	}
	if rivals[0].UserID != "u10" {
		t.Errorf("window starts at %s, want u10", rivals[0].UserID)
	}

	// Middle: full window.
	rivals, err = svc.NearbyRivals("app1", "u5", "total_points", 2)
	if err != nil {
		t.Fatalf("NearbyRivals: %v", err)
	}
	if len(rivals) != 5 {
		t.Errorf("middle window = %d entries, want 5", len(rivals))
	}

	// Absent user: empty, no error.
	rivals, err = svc.NearbyRivals("app1", "stranger", "total_points", 3)
	if err != nil {
		t.Fatalf("NearbyRivals: %v", err)
	}
	if len(rivals) != 0 {
		t.Errorf("absent user window = %d entries, want 0", len(rivals))
	}
}

func TestUpsertReplacesExistingEntry(t *testing.T) {
	svc := newTestLeaderboard(t)

	if err := svc.UpsertEntry("app1", &UserStat{UserID: "u1", TotalPoints: 100}); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
	if err := svc.UpsertEntry("app1", &UserStat{UserID: "u1", TotalPoints: 300}); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	entries, err := svc.Top("app1", "total_points", 10)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len = %d, want 1", len(entries))
	}
	if entries[0].TotalPoints != 300 {
		t.Errorf("TotalPoints = %d, want 300", entries[0].TotalPoints)
	}
	if entries[0].WeeklyPoints != 90 || entries[0].MonthlyPoints != 150 {
		t.Errorf("weekly/monthly = %d/%d, want 90/150", entries[0].WeeklyPoints, entries[0].MonthlyPoints)
	}
}

func TestProgressReport(t *testing.T) {
	svc := newTestLeaderboard(t)
	seedBoard(t, svc, 5)

	report, err := svc.ProgressReport("app1", "u3")
	if err != nil {
		t.Fatalf("ProgressReport: %v", err)
	}
	if report.Rank == nil || *report.Rank != 3 {
		t.Fatalf("rank = %v, want 3", report.Rank)
	}
	if report.NextPlayer == nil || report.NextPlayer.UserID != "u4" {
		t.Fatalf("next player = %+v, want u4", report.NextPlayer)
	}
	if report.PointsToNext != 101 {
		t.Errorf("points to next = %d, want 101", report.PointsToNext)
	}
	if len(report.Chasers) != 2 {
		t.Errorf("chasers = %d, want 2", len(report.Chasers))
	}
}

func TestProgressListenerKeepsBoardCurrent(t *testing.T) {
	store := kvstore.NewMemory()
	scoring := NewProgressService(store)
	board := NewLeaderboardService(store)
	scoring.Subscribe(board)

	if _, _, err := scoring.Award("app1", "u1", "quiz_complete"); err != nil {
		t.Fatalf("Award: %v", err)
	}

	entries, err := board.Top("app1", "total_points", 10)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(entries) != 1 || entries[0].TotalPoints != 75 {
		t.Errorf("board entries = %+v", entries)
	}
}

func TestRankingBoundedAtThousandEntries(t *testing.T) {
	store := kvstore.NewMemory()
	svc := NewLeaderboardService(store)

	board := make([]LeaderboardEntry, 1005)
	for i := range board {
		board[i] = LeaderboardEntry{
			UserID:      fmt.Sprintf("u%d", i+1),
			TotalPoints: i + 1,
		}
	}
	if err := store.Set("app1", leaderboardKey, &board); err != nil {
		t.Fatalf("Set: %v", err)
	}

	ranked, err := svc.ranked("app1", "total_points")
	if err != nil {
		t.Fatalf("ranked: %v", err)
	}
	if len(ranked) != maxRankedEntries {
		t.Fatalf("ranked len = %d, want %d", len(ranked), maxRankedEntries)
	}

	info, err := svc.UserRank("app1", "u1005", "total_points")
	if err != nil {
		t.Fatalf("UserRank: %v", err)
	}
	if info.Rank != nil {
		t.Errorf("entry past the cap got rank %d", *info.Rank)
	}
	if info.Total != maxRankedEntries {
		t.Errorf("total = %d, want %d", info.Total, maxRankedEntries)
	}
}
