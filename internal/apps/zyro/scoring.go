package zyro

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

var ErrChallengeNotFound = errors.New("challenge not found")

func progressKey(userID string) string { return "zyro_progress_" + userID }

// ProgressListener is notified after every persisted stats change. The
// leaderboard subscribes to keep its projection current.
type ProgressListener interface {
	ProgressUpdated(appID string, stats *UserStat)
}

// ProgressService owns the per-user progress document: points, level,
// streaks and badges.
type ProgressService struct {
	store     kvstore.Store
	listeners []ProgressListener
	now       func() time.Time
}

func NewProgressService(store kvstore.Store) *ProgressService {
	return &ProgressService{store: store, now: time.Now}
}

// Subscribe registers a listener for stats updates.
func (s *ProgressService) Subscribe(l ProgressListener) {
	s.listeners = append(s.listeners, l)
}

// Stats loads the user's progress, creating a fresh document on first
// activity. Missing or corrupt blobs yield the zero state.
func (s *ProgressService) Stats(appID, userID string) (*UserStat, error) {
	var stats UserStat
	found, err := s.store.Get(appID, progressKey(userID), &stats)
	if err != nil {
		return nil, err
	}
	if !found {
		now := s.now().UTC()
		stats = UserStat{
			UserID:     userID,
			LevelName:  levels[0].Name,
			LevelBadge: levels[0].Badge,
			Badges:     []string{},
			CreatedAt:  now,
			LastActive: now,
		}
	}
	return &stats, nil
}

// SetDisplayName records the name carried in the JWT so leaderboard entries
// show it. Best effort; a store failure never blocks the calling request.
func (s *ProgressService) SetDisplayName(appID, userID, name string) {
	if name == "" {
		return
	}
	stats, err := s.Stats(appID, userID)
	if err != nil || stats.DisplayName == name {
		return
	}
	stats.DisplayName = name
	if err := s.save(appID, stats); err != nil {
		slog.Warn("display name update failed", "app_id", appID, "user_id", userID, "error", err)
	}
}

func (s *ProgressService) save(appID string, stats *UserStat) error {
	stats.LastActive = s.now().UTC()
	if err := s.store.Set(appID, progressKey(stats.UserID), stats); err != nil {
		return err
	}
	for _, l := range s.listeners {
		l.ProgressUpdated(appID, stats)
	}
	return nil
}

// Award adds the static point value for the event to the user's total and
// persists. An unknown event contributes nothing and leaves the document
// untouched.
func (s *ProgressService) Award(appID, userID, event string) (*UserStat, int, error) {
	points, ok := pointsPerAction[event]
	if !ok {
		slog.Warn("unknown award event", "app_id", appID, "event", event)
		stats, err := s.Stats(appID, userID)
		return stats, 0, err
	}

	stats, err := s.Stats(appID, userID)
	if err != nil {
		return nil, 0, err
	}

	stats.TotalPoints += points
	s.applyLevel(stats)

	switch event {
	case "idea_spin":
		stats.IdeasSpun++
		s.grantBadge(stats, "first_spin")
	case "quiz_complete":
		stats.QuizzesTaken++
	case "madlib_create":
		stats.MadlibsCompleted++
	}

	if err := s.save(appID, stats); err != nil {
		return nil, 0, err
	}
	return stats, points, nil
}

// AddPoints credits an explicit amount (challenge rewards, bingo prizes).
func (s *ProgressService) AddPoints(appID string, stats *UserStat, points int) error {
	stats.TotalPoints += points
	s.applyLevel(stats)
	return s.save(appID, stats)
}

// Mutate loads the stats, applies fn and persists the result.
func (s *ProgressService) Mutate(appID, userID string, fn func(*UserStat)) (*UserStat, error) {
	stats, err := s.Stats(appID, userID)
	if err != nil {
		return nil, err
	}
	fn(stats)
	s.applyLevel(stats)
	if err := s.save(appID, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// applyLevel recomputes the level from the threshold table: highest
// threshold at or below the total.
func (s *ProgressService) applyLevel(stats *UserStat) {
	for i := len(levels) - 1; i >= 0; i-- {
		if stats.TotalPoints >= levels[i].MinPoints {
			stats.Level = i
			stats.LevelName = levels[i].Name
			stats.LevelBadge = levels[i].Badge
			break
		}
	}
}

// grantBadge appends the badge if not yet held. Returns true when newly
// granted.
func (s *ProgressService) grantBadge(stats *UserStat, id string) bool {
	if _, ok := badges[id]; !ok {
		return false
	}
	if stats.HasBadge(id) {
		return false
	}
	stats.Badges = append(stats.Badges, id)
	return true
}

// ChallengeResult reports a daily-challenge completion. Success=false covers
// the already-done-today case.
type ChallengeResult struct {
	Success       bool     `json:"success"`
	PointsEarned  int      `json:"points_earned,omitempty"`
	BasePoints    int      `json:"base_points,omitempty"`
	StreakBonus   float64  `json:"streak_bonus,omitempty"`
	CurrentStreak int      `json:"current_streak,omitempty"`
	TotalPoints   int      `json:"total_points,omitempty"`
	LeveledUp     bool     `json:"leveled_up,omitempty"`
	NewLevel      string   `json:"new_level,omitempty"`
	NewBadges     []string `json:"new_badges,omitempty"`
	Message       string   `json:"message"`
}

// TodayChallenge returns the user's deterministic challenge for the day.
func (s *ProgressService) TodayChallenge(userID string) Challenge {
	day := s.now().UTC().Unix() / 86400
	h := fnv.New32a()
	h.Write([]byte(userID))
	idx := (int(day) + int(h.Sum32())) % len(dailyChallenges)
	if idx < 0 {
		idx += len(dailyChallenges)
	}
	return dailyChallenges[idx]
}

// CompleteChallenge marks the challenge done for today, extending or
// resetting the streak and applying the streak multiplier to the base
// points.
func (s *ProgressService) CompleteChallenge(appID, userID, challengeID string) (*ChallengeResult, error) {
	var challenge *Challenge
	for i := range dailyChallenges {
		if dailyChallenges[i].ID == challengeID {
			challenge = &dailyChallenges[i]
			break
		}
	}
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}

	stats, err := s.Stats(appID, userID)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC().Format("2006-01-02")
	if stats.LastCompletedDate == today {
		return &ChallengeResult{
			Success: false,
			Message: "Challenge already completed today!",
		}, nil
	}

	// Streak: continue when yesterday's challenge was done, otherwise reset.
	yesterday := s.now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	if stats.LastCompletedDate == yesterday {
		stats.CurrentStreak++
	} else {
		if stats.LongestStreak >= 7 && stats.LastCompletedDate != "" {
			s.grantBadge(stats, "comeback_king")
		}
		stats.CurrentStreak = 1
	}
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.LastCompletedDate = today

	multiplier := streakMultiplier(stats.CurrentStreak)
	earned := int(float64(challenge.Points) * multiplier)

	oldLevel := stats.Level
	stats.TotalPoints += earned
	stats.ChallengesCompleted++
	stats.CompletedChallengeID = challenge.ID
	s.applyLevel(stats)

	var newBadges []string
	for days, badgeID := range map[int]string{3: "streak_3", 7: "streak_7", 30: "streak_30"} {
		if stats.CurrentStreak >= days && s.grantBadge(stats, badgeID) {
			newBadges = append(newBadges, badgeID)
		}
	}

	if err := s.save(appID, stats); err != nil {
		return nil, err
	}

	result := &ChallengeResult{
		Success:       true,
		PointsEarned:  earned,
		BasePoints:    challenge.Points,
		StreakBonus:   multiplier - 1,
		CurrentStreak: stats.CurrentStreak,
		TotalPoints:   stats.TotalPoints,
		LeveledUp:     stats.Level > oldLevel,
		NewBadges:     newBadges,
		Message:       fmt.Sprintf("🎉 Challenge Complete! +%d points!", earned),
	}
	if result.LeveledUp {
		result.NewLevel = stats.LevelName
	}
	return result, nil
}

// ResetProgress removes the user's progress document. Admin only.
func (s *ProgressService) ResetProgress(appID, userID string) error {
	return s.store.Delete(appID, progressKey(userID))
}
