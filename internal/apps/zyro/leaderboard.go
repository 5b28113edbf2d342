package zyro

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

const leaderboardKey = "zyro_leaderboard"

// maxRankedEntries bounds every re-rank; entries past the cap stay stored
// but are not ranked.
const maxRankedEntries = 1000

// metricFns maps each supported leaderboard metric to its entry projection.
// Unknown metrics fall back to total_points.
var metricFns = map[string]func(LeaderboardEntry) int{
	"total_points":         func(e LeaderboardEntry) int { return e.TotalPoints },
	"weekly_points":        func(e LeaderboardEntry) int { return e.WeeklyPoints },
	"monthly_points":       func(e LeaderboardEntry) int { return e.MonthlyPoints },
	"current_streak":       func(e LeaderboardEntry) int { return e.CurrentStreak },
	"challenges_completed": func(e LeaderboardEntry) int { return e.ChallengesCompleted },
}

// LeaderboardService maintains a denormalized board of every user's stats.
// It subscribes to progress updates so the board tracks scoring changes
// without callers wiring anything per-operation.
type LeaderboardService struct {
	store kvstore.Store
}

func NewLeaderboardService(store kvstore.Store) *LeaderboardService {
	return &LeaderboardService{store: store}
}

// ProgressUpdated upserts the user's board entry whenever their stats change.
func (s *LeaderboardService) ProgressUpdated(appID string, stats *UserStat) {
	_ = s.UpsertEntry(appID, stats)
}

// UpsertEntry projects stats onto the board. Weekly and monthly points are
// fixed-ratio approximations of the total, not windowed sums.
func (s *LeaderboardService) UpsertEntry(appID string, stats *UserStat) error {
	var board []LeaderboardEntry
	if _, err := s.store.Get(appID, leaderboardKey, &board); err != nil {
		return err
	}

	entry := LeaderboardEntry{
		UserID:              stats.UserID,
		DisplayName:         stats.DisplayName,
		TotalPoints:         stats.TotalPoints,
		WeeklyPoints:        int(float64(stats.TotalPoints) * 0.3),
		MonthlyPoints:       int(float64(stats.TotalPoints) * 0.5),
		Level:               stats.Level,
		LevelName:           stats.LevelName,
		LevelBadge:          stats.LevelBadge,
		CurrentStreak:       stats.CurrentStreak,
		LongestStreak:       stats.LongestStreak,
		ChallengesCompleted: stats.ChallengesCompleted,
		BingoProgress:       stats.BingoProgress,
		QuizzesTaken:        stats.QuizzesTaken,
		IdeasSpun:           stats.IdeasSpun,
		MadlibsCompleted:    stats.MadlibsCompleted,
		Badges:              stats.Badges,
		UpdatedAt:           time.Now().UTC(),
	}

	replaced := false
	for i := range board {
		if board[i].UserID == stats.UserID {
			board[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		board = append(board, entry)
	}
	return s.store.Set(appID, leaderboardKey, &board)
}

// ranked returns the board sorted descending by metric, with ranks and
// badges assigned. Ties keep insertion order.
func (s *LeaderboardService) ranked(appID, metric string) ([]RankedEntry, error) {
	var board []LeaderboardEntry
	if _, err := s.store.Get(appID, leaderboardKey, &board); err != nil {
		return nil, err
	}
	if len(board) > maxRankedEntries {
		board = board[:maxRankedEntries]
	}

	fn, ok := metricFns[metric]
	if !ok {
		fn = metricFns["total_points"]
	}
	sort.SliceStable(board, func(i, j int) bool {
		return fn(board[i]) > fn(board[j])
	})

	out := make([]RankedEntry, len(board))
	for i, e := range board {
		out[i] = RankedEntry{Rank: i + 1, RankBadge: rankBadge(i + 1), LeaderboardEntry: e}
	}
	return out, nil
}

func rankBadge(rank int) string {
	switch {
	case rank == 1:
		return "🥇"
	case rank == 2:
		return "🥈"
	case rank == 3:
		return "🥉"
	case rank <= 10:
		return "⭐"
	case rank <= 50:
		return "🌟"
	default:
		return "💫"
	}
}

// Top returns the first limit entries by metric.
func (s *LeaderboardService) Top(appID, metric string, limit int) ([]RankedEntry, error) {
	ranked, err := s.ranked(appID, metric)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxRankedEntries {
		limit = 10
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}
	return ranked[:limit], nil
}

// UserRank locates one user on the board. An absent user gets a nil rank
// and an encouraging message, not an error.
func (s *LeaderboardService) UserRank(appID, userID, metric string) (*RankInfo, error) {
	ranked, err := s.ranked(appID, metric)
	if err != nil {
		return nil, err
	}
	for _, e := range ranked {
		if e.UserID == userID {
			rank := e.Rank
			percentile := int(math.Round((1 - float64(rank)/float64(len(ranked))) * 100))
			return &RankInfo{
				Rank:       &rank,
				Total:      len(ranked),
				RankBadge:  e.RankBadge,
				Percentile: percentile,
				Message:    rankMessage(rank),
			}, nil
		}
	}
	return &RankInfo{
		Total:   len(ranked),
		Message: "Not ranked yet - complete a challenge to get on the board!",
	}, nil
}

func rankMessage(rank int) string {
	switch {
	case rank == 1:
		return "👑 You're #1! Absolute legend!"
	case rank <= 3:
		return "🔥 Podium finish! Keep defending your spot!"
	case rank <= 10:
		return "⭐ Top 10! The summit is in sight!"
	case rank <= 50:
		return "💪 Top 50! Keep climbing!"
	default:
		return "🚀 Every point counts. Keep hustling!"
	}
}

// NearbyRivals returns the window of entries around the user: up to
// rivalRange above and rivalRange below their position.
func (s *LeaderboardService) NearbyRivals(appID, userID, metric string, rivalRange int) ([]RankedEntry, error) {
	if rivalRange <= 0 {
		rivalRange = 3
	}
	ranked, err := s.ranked(appID, metric)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range ranked {
		if e.UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return []RankedEntry{}, nil
	}

	start := idx - rivalRange
	if start < 0 {
		start = 0
	}
	end := idx + rivalRange + 1
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[start:end], nil
}

// CategoryLeaders returns the #1 entry for each tracked category.
func (s *LeaderboardService) CategoryLeaders(appID string) (map[string]*RankedEntry, error) {
	var board []LeaderboardEntry
	if _, err := s.store.Get(appID, leaderboardKey, &board); err != nil {
		return nil, err
	}

	leaders := map[string]*RankedEntry{}
	pick := func(name string, fn func(LeaderboardEntry) int) {
		bestIdx, best := -1, -1
		for i, e := range board {
			if fn(e) > best {
				bestIdx, best = i, fn(e)
			}
		}
		if bestIdx >= 0 && best > 0 {
			leaders[name] = &RankedEntry{Rank: 1, RankBadge: "🥇", LeaderboardEntry: board[bestIdx]}
		}
	}

	pick("points_king", func(e LeaderboardEntry) int { return e.TotalPoints })
	pick("streak_master", func(e LeaderboardEntry) int { return e.CurrentStreak })
	pick("challenge_champion", func(e LeaderboardEntry) int { return e.ChallengesCompleted })
	pick("idea_machine", func(e LeaderboardEntry) int { return e.IdeasSpun })
	pick("quiz_wizard", func(e LeaderboardEntry) int { return e.QuizzesTaken })
	pick("bingo_boss", func(e LeaderboardEntry) int { return e.BingoProgress })
	return leaders, nil
}

// ProgressReport tells a user who is directly ahead of them, how far away
// they are, and who is chasing them.
type ProgressReport struct {
	Rank            *int          `json:"rank"`
	Total           int           `json:"total"`
	NextPlayer      *RankedEntry  `json:"next_player,omitempty"`
	PointsToNext    int           `json:"points_to_next_rank,omitempty"`
	Chasers         []RankedEntry `json:"chasers"`
	Momentum        string        `json:"momentum"`
	MomentumMessage string        `json:"momentum_message"`
}

func (s *LeaderboardService) ProgressReport(appID, userID string) (*ProgressReport, error) {
	ranked, err := s.ranked(appID, "total_points")
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range ranked {
		if e.UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &ProgressReport{
			Total:           len(ranked),
			Chasers:         []RankedEntry{},
			Momentum:        "inactive",
			MomentumMessage: "Get on the board! Complete your first challenge.",
		}, nil
	}

	me := ranked[idx]
	report := &ProgressReport{Rank: &me.Rank, Total: len(ranked), Chasers: []RankedEntry{}}

	if idx > 0 {
		next := ranked[idx-1]
		report.NextPlayer = &next
		report.PointsToNext = next.TotalPoints - me.TotalPoints + 1
	}
	for i := idx + 1; i < len(ranked) && len(report.Chasers) < 3; i++ {
		report.Chasers = append(report.Chasers, ranked[i])
	}

	report.Momentum, report.MomentumMessage = momentum(me.LeaderboardEntry)
	return report, nil
}

// momentum classifies activity by the share of points treated as recent.
func momentum(e LeaderboardEntry) (string, string) {
	if e.TotalPoints == 0 {
		return "inactive", "Time to wake up! Your empire won't build itself."
	}
	ratio := float64(e.WeeklyPoints) / float64(e.TotalPoints)
	switch {
	case ratio > 0.5:
		return "rising", fmt.Sprintf("🚀 On fire! %d points this week!", e.WeeklyPoints)
	case ratio > 0.3:
		return "steady", "💪 Consistent grind. Keep it up!"
	case ratio > 0.1:
		return "slowing", "⚠️ Slowing down. Rivals are catching up!"
	default:
		return "inactive", "Time to wake up! Your empire won't build itself."
	}
}

// BoardStats summarizes the whole board.
type BoardStats struct {
	TotalPlayers  int     `json:"total_players"`
	TotalPoints   int     `json:"total_points"`
	AveragePoints int     `json:"average_points"`
	TopStreak     int     `json:"top_streak"`
	ActiveToday   int     `json:"active_today"`
	AverageLevel  float64 `json:"average_level"`
}

func (s *LeaderboardService) Stats(appID string) (*BoardStats, error) {
	var board []LeaderboardEntry
	if _, err := s.store.Get(appID, leaderboardKey, &board); err != nil {
		return nil, err
	}

	stats := &BoardStats{TotalPlayers: len(board)}
	levelSum := 0
	today := time.Now().UTC().Format("2006-01-02")
	for _, e := range board {
		stats.TotalPoints += e.TotalPoints
		if e.CurrentStreak > stats.TopStreak {
			stats.TopStreak = e.CurrentStreak
		}
		if e.UpdatedAt.Format("2006-01-02") == today {
			stats.ActiveToday++
		}
		levelSum += e.Level
	}
	if len(board) > 0 {
		stats.AveragePoints = stats.TotalPoints / len(board)
		stats.AverageLevel = math.Round(float64(levelSum)/float64(len(board))*10) / 10
	}
	return stats, nil
}

// Reset clears the board. Admin only.
func (s *LeaderboardService) Reset(appID string) error {
	return s.store.Delete(appID, leaderboardKey)
}
