package zyro

import (
	"errors"
	"time"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

var ErrUnknownSyncTarget = errors.New("sync target not supported")

func syncTargets() []string { return []string{"zyra", "benown", "glowie", "manlaw"} }

func sharedDataKey(userID string) string { return "zyro_shared_data_" + userID }
func insightsKey(target, userID string) string { return target + "_insights_" + userID }

// SyncService exchanges gamification data with the sibling Z2B apps. A
// sibling that has never written its insight blob gets a simulated payload,
// so a sync never fails outright.
type SyncService struct {
	store   kvstore.Store
	scoring *ProgressService
	now     func() time.Time
}

func NewSyncService(store kvstore.Store, scoring *ProgressService) *SyncService {
	return &SyncService{store: store, scoring: scoring, now: time.Now}
}

// SyncWithApp runs one exchange with a sibling app. The first successful
// sync per target awards the integration bonus.
func (s *SyncService) SyncWithApp(appID, userID, target string) (*SyncResult, error) {
	valid := false
	for _, t := range syncTargets() {
		if t == target {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrUnknownSyncTarget
	}

	stats, err := s.scoring.Stats(appID, userID)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{
		App:      target,
		Success:  true,
		Sent:     s.outboundPayload(target, stats),
		SyncedAt: s.now().UTC(),
	}

	switch target {
	case "zyra", "benown":
		received, err := s.fetchInsights(appID, userID, target)
		if err != nil {
			return nil, err
		}
		result.Received = received

		shared := map[string]interface{}{}
		if _, err := s.store.Get(appID, sharedDataKey(userID), &shared); err != nil {
			return nil, err
		}
		shared[target] = received
		if err := s.store.Set(appID, sharedDataKey(userID), shared); err != nil {
			return nil, err
		}
	case "glowie":
		result.Note = "GLOWIE integration pending"
	case "manlaw":
		result.Note = "MANLAW integration pending"
	}

	if !containsString(stats.SyncedApps, target) {
		if _, err := s.scoring.Mutate(appID, userID, func(st *UserStat) {
			if !containsString(st.SyncedApps, target) {
				st.SyncedApps = append(st.SyncedApps, target)
				st.TotalPoints += pointsPerAction["app_integration"]
			}
		}); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// SyncAll fans out over every sibling app.
func (s *SyncService) SyncAll(appID, userID string) ([]SyncResult, error) {
	results := make([]SyncResult, 0, len(syncTargets()))
	for _, target := range syncTargets() {
		result, err := s.SyncWithApp(appID, userID, target)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// fetchInsights reads the sibling's insight blob, substituting a simulated
// payload when the sibling has not written one.
func (s *SyncService) fetchInsights(appID, userID, target string) (map[string]interface{}, error) {
	var insights map[string]interface{}
	found, err := s.store.Get(appID, insightsKey(target, userID), &insights)
	if err != nil {
		return nil, err
	}
	if found && insights != nil {
		return insights, nil
	}
	switch target {
	case "zyra":
		return simulatedZyraInsights(), nil
	case "benown":
		return simulatedBenownInsights(), nil
	}
	return nil, nil
}

func simulatedZyraInsights() map[string]interface{} {
	return map[string]interface{}{
		"leadInsights": map[string]interface{}{
			"totalLeads":     0,
			"hotLeads":       0,
			"conversionRate": 0,
		},
		"commonObjections": []string{
			"Not enough time",
			"Already tried before",
			"Need more info",
		},
		"conversionTriggers": []string{
			"Success stories",
			"Limited time offers",
			"Community support",
		},
		"successStories": []string{},
	}
}

func simulatedBenownInsights() map[string]interface{} {
	return map[string]interface{}{
		"contentPerformance": map[string]interface{}{
			"totalPosts":     0,
			"avgEngagement":  0,
			"bestPerforming": nil,
		},
		"viralTopics": []string{
			"Side hustles",
			"Financial freedom",
			"Success mindset",
		},
		"trendingHashtags": []string{
			"#SideHustle",
			"#Entrepreneur",
			"#PassiveIncome",
		},
	}
}

func (s *SyncService) outboundPayload(target string, stats *UserStat) map[string]interface{} {
	switch target {
	case "zyra":
		return map[string]interface{}{
			"userActivity": map[string]interface{}{
				"engagement": engagementLevel(stats),
				"interests":  interests(stats),
			},
			"lastUpdated": s.now().UTC(),
		}
	case "benown":
		return map[string]interface{}{
			"audienceInsights": map[string]interface{}{
				"engagement": engagementLevel(stats),
				"interests":  interests(stats),
			},
			"lastUpdated": s.now().UTC(),
		}
	case "glowie":
		return map[string]interface{}{
			"gamificationData": map[string]interface{}{
				"points":       stats.TotalPoints,
				"level":        stats.LevelName,
				"achievements": stats.Badges,
			},
		}
	case "manlaw":
		return map[string]interface{}{
			"userData": map[string]interface{}{
				"streak":              stats.CurrentStreak,
				"challengesCompleted": stats.ChallengesCompleted,
			},
		}
	}
	return nil
}

// engagementLevel classifies activity from the weighted score of all
// trackable actions.
func engagementLevel(stats *UserStat) string {
	score := stats.ChallengesCompleted*2 +
		stats.IdeasSpun +
		stats.BingoProgress*3 +
		stats.QuizzesTaken*2 +
		stats.MadlibsCompleted

	switch {
	case score >= 100:
		return "high"
	case score >= 50:
		return "medium"
	case score >= 10:
		return "low"
	default:
		return "new"
	}
}

func interests(stats *UserStat) []string {
	var out []string
	if stats.QuizzesTaken > 0 {
		out = append(out, "personal_development")
	}
	if stats.ChallengesCompleted > 5 {
		out = append(out, "daily_habits", "consistency")
	}
	if stats.IdeasSpun > 3 {
		out = append(out, "entrepreneurship", "business_ideas")
	}
	if stats.BingoProgress > 50 {
		out = append(out, "goal_achievement", "gamification")
	}
	if len(out) == 0 {
		return []string{"general_entrepreneur"}
	}
	return out
}

// SharedData returns the accumulated sibling insight blobs.
func (s *SyncService) SharedData(appID, userID string) (map[string]interface{}, error) {
	shared := map[string]interface{}{}
	if _, err := s.store.Get(appID, sharedDataKey(userID), &shared); err != nil {
		return nil, err
	}
	return shared, nil
}
