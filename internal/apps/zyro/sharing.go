package zyro

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

var (
	ErrUnknownPlatform    = errors.New("platform not supported")
	ErrUnknownContentType = errors.New("content type not supported")
)

func shareHistoryKey(userID string) string { return "zyro_share_history_" + userID }

// SharingService builds platform-ready share payloads and tracks shares and
// referral conversions.
type SharingService struct {
	store   kvstore.Store
	scoring *ProgressService
	now     func() time.Time
	rng     *rand.Rand
	rngMu   sync.Mutex

	builders map[string]func(*SharingService, ShareData) ShareContent
}

func NewSharingService(store kvstore.Store, scoring *ProgressService) *SharingService {
	s := &SharingService{
		store:   store,
		scoring: scoring,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.builders = map[string]func(*SharingService, ShareData) ShareContent{
		"challenge":   (*SharingService).challengeContent,
		"idea":        (*SharingService).ideaContent,
		"bingo":       (*SharingService).bingoContent,
		"madlib":      (*SharingService).madlibContent,
		"quiz":        (*SharingService).quizContent,
		"achievement": (*SharingService).achievementContent,
		"streak":      (*SharingService).streakContent,
		"level_up":    (*SharingService).levelUpContent,
	}
	return s
}

func (s *SharingService) randomOf(items []string) string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return items[s.rng.Intn(len(items))]
}

// GenerateContent builds the share payload for a content type and platform,
// then layers on viral hooks and platform constraints.
func (s *SharingService) GenerateContent(contentType, platform string, data ShareData) (*ShareContent, error) {
	pcfg, ok := platforms[platform]
	if !ok {
		return nil, ErrUnknownPlatform
	}
	builder, ok := s.builders[contentType]
	if !ok {
		return nil, ErrUnknownContentType
	}

	content := builder(s, data)
	s.addViralHooks(&content, contentType, platform)
	optimizeForPlatform(&content, platform, pcfg)
	return &content, nil
}

func (s *SharingService) challengeContent(data ShareData) ShareContent {
	hook := s.randomOf(shareHooks)
	return ShareContent{
		Text:     fmt.Sprintf("%s\n\n✅ Today's Challenge: %s\n\n💪 Completed in record time!\n🔥 %d-day streak going strong!\n\nJoin me on ZYRO!", hook, data.ChallengeTitle, data.Streak),
		Hashtags: []string{"#DailyChallenge", "#ZYRO", "#Z2B", "#EntrepreneurLife", "#HustleMode"},
		Visual:   fmt.Sprintf("🎯 %s\n✅ COMPLETED", data.ChallengeTitle),
		CTA:      "Try the challenge yourself!",
	}
}

func (s *SharingService) ideaContent(data ShareData) ShareContent {
	hook := s.randomOf(shareHooks)
	verdict := "🤔 Wait, this might work!"
	if data.AbsurdityScore >= 80 {
		verdict = "😂 Pure comedy!"
	}
	return ShareContent{
		Text:     fmt.Sprintf("%s\n\n💡 %q\n\n%s\n\nAbsurdity: %d/100\nViability: %d/100\n\nSpin your own idea on ZYRO! 🎲", hook, data.Idea, verdict, data.AbsurdityScore, data.ViabilityScore),
		Hashtags: []string{"#IdeaRoulette", "#BusinessIdea", "#ZYRO", "#Entrepreneur", "#StartupHumor"},
		Visual:   fmt.Sprintf("🎲 IDEA ROULETTE\n\n%q\n\n%d%% Absurd | %d%% Viable", data.Idea, data.AbsurdityScore, data.ViabilityScore),
		CTA:      "Spin and find YOUR billion-dollar idea!",
	}
}

func (s *SharingService) bingoContent(data ShareData) ShareContent {
	hook := s.randomOf(shareHooks)
	status := "Almost there! 💪"
	if data.Completed >= 25 {
		status = "🎉 FULL BOARD! I'm a legend!"
	}
	return ShareContent{
		Text:     fmt.Sprintf("%s\n\n🎯 Progress: %d/25 tasks (%d%%)\n🔥 %d bingos completed!\n💰 %d points earned\n\n%s\n\nJoin the challenge!", hook, data.Completed, data.Progress, data.Bingos, data.TotalPoints, status),
		Hashtags: []string{"#SideGigBingo", "#ZYRO", "#Z2B", "#HustleBingo", "#EntrepreneurChallenge"},
		Visual:   bingoVisual(data),
		CTA:      "Start your own Bingo board!",
	}
}

func bingoVisual(data ShareData) string {
	filled := data.Progress / 10
	if filled > 10 {
		filled = 10
	}
	bar := strings.Repeat("▓", filled) + strings.Repeat("░", 10-filled)
	return fmt.Sprintf("🎯 SIDEGIG BINGO\n\n%d/25 Complete\n%d Bingos\n\n%s\n%d%%", data.Completed, data.Bingos, bar, data.Progress)
}

func (s *SharingService) madlibContent(data ShareData) ShareContent {
	hook := s.randomOf(shareHooks)
	snippet := data.Description
	if len(snippet) > 150 {
		snippet = snippet[:150] + "..."
	}
	return ShareContent{
		Text:     fmt.Sprintf("%s\n\n%q\n\n😂 Humor Score: %d/100\n\nI can't stop laughing! Try ZYRO MadLibs! 🎭", hook, data.Description, data.Score),
		Hashtags: []string{"#HustleMadLibs", "#ZYRO", "#Z2B", "#EntrepreneurHumor", "#BusinessPitch"},
		Visual:   fmt.Sprintf("🎭 HUSTLE MADLIBS\n\n%q", snippet),
		CTA:      "Create your hilarious pitch!",
	}
}

func (s *SharingService) quizContent(data ShareData) ShareContent {
	hook := s.randomOf(shareHooks)
	pct := 0
	if data.MaxScore > 0 {
		pct = data.Score * 100 / data.MaxScore
	}
	return ShareContent{
		Text:     fmt.Sprintf("%s\n\n🎯 I'm a %s!\n\n%q\n\n📊 Score: %d/%d (%d%%)\n\nWhat's YOUR entrepreneur type? 🎯", hook, strings.ToUpper(data.ResultType), data.Description, data.Score, data.MaxScore, pct),
		Hashtags: []string{"#CEOorMinion", "#ZYRO", "#Z2B", "#EntrepreneurQuiz", "#PersonalityTest"},
		Visual:   fmt.Sprintf("🎯\n\n%s\n\n%d%%", strings.ToUpper(data.ResultType), pct),
		CTA:      "Discover your entrepreneur type!",
	}
}

func (s *SharingService) achievementContent(data ShareData) ShareContent {
	return ShareContent{
		Text:     fmt.Sprintf("🏆 Achievement Unlocked!\n\n%s\n\n%s\n\nAnother milestone on my entrepreneur journey! 🚀", data.Name, data.Description),
		Hashtags: []string{"#ZYRO", "#Z2B", "#EntrepreneurWin", "#MilestoneUnlocked"},
		Visual:   fmt.Sprintf("🏆\n\n%s\n\nACHIEVED", data.Name),
		CTA:      "Unlock your achievements!",
	}
}

func (s *SharingService) streakContent(data ShareData) ShareContent {
	status := "🚀 Building momentum!"
	switch {
	case data.Streak >= 30:
		status = "🏆 LEGENDARY!"
	case data.Streak >= 7:
		status = "💪 On fire!"
	}
	return ShareContent{
		Text:     fmt.Sprintf("🔥 %d-DAY STREAK!\n\n%s\n\nConsistent action = Success!\n\nJoin me on ZYRO! 🎯", data.Streak, status),
		Hashtags: []string{"#ZYRO", "#Z2B", "#DailyHustle", "#Consistency", "#EntrepreneurLife"},
		Visual:   fmt.Sprintf("🔥\n\n%d DAYS\n\nSTREAK ACTIVE", data.Streak),
		CTA:      "Start your streak today!",
	}
}

func (s *SharingService) levelUpContent(data ShareData) ShareContent {
	return ShareContent{
		Text:     fmt.Sprintf("⬆️ LEVEL UP!\n\n%s\n\n💰 %d total points\n📈 Keep climbing!\n\nThe journey continues! 🚀", data.Name, data.TotalPoints),
		Hashtags: []string{"#ZYRO", "#Z2B", "#LevelUp", "#EntrepreneurJourney", "#Progress"},
		Visual:   fmt.Sprintf("⬆️\n\n%s\n\nLEVEL UP", data.Name),
		CTA:      "Level up with ZYRO!",
	}
}

func (s *SharingService) addViralHooks(content *ShareContent, contentType, platform string) {
	content.TrackingURL = trackingURL(contentType, platform, s.referralCode())
	content.SocialProof = s.randomOf(socialProofs)
}

func trackingURL(contentType, platform, refCode string) string {
	params := url.Values{}
	params.Set("utm_source", platform)
	params.Set("utm_medium", "social")
	params.Set("utm_campaign", "zyro_share")
	params.Set("utm_content", contentType)
	params.Set("ref", refCode)
	return shareBaseURL + "?" + params.Encode()
}

// referralCode is ZYRO plus the current millisecond timestamp in base36,
// uppercased.
func (s *SharingService) referralCode() string {
	return "ZYRO" + strings.ToUpper(strconv.FormatInt(s.now().UnixMilli(), 36))
}

// optimizeForPlatform applies character limits, hashtag caps, and tone
// rules in place.
func optimizeForPlatform(content *ShareContent, platform string, cfg platformConfig) {
	if platform == "twitter" {
		runes := []rune(content.Text)
		if len(runes) > twitterCharLimit {
			content.Text = string(runes[:twitterTruncateAt]) + "..."
			content.Truncated = true
		}
	}

	limit := cfg.HashtagLimit
	if limit <= 0 {
		limit = 10
	}
	if len(content.Hashtags) > limit {
		content.Hashtags = content.Hashtags[:limit]
	}

	content.Tone = cfg.Tone
	if platform == "linkedin" {
		kept := content.Hashtags[:0]
		for _, h := range content.Hashtags {
			lower := strings.ToLower(h)
			if strings.Contains(lower, "humor") || strings.Contains(lower, "funny") {
				continue
			}
			kept = append(kept, h)
		}
		content.Hashtags = kept
	}
	if platform == "tiktok" {
		content.CTA = "👇 Link in bio to play!"
	}
}

// ShareResult is the outcome of tracking a share.
type ShareResult struct {
	Share   ShareRecord `json:"share"`
	Points  int         `json:"points"`
	Message string      `json:"message"`
}

// TrackShare records a share, awards points, and grants the social_butterfly
// badge at ten shares.
func (s *SharingService) TrackShare(appID, userID, contentType, platform string) (*ShareResult, error) {
	if _, ok := platforms[platform]; !ok {
		return nil, ErrUnknownPlatform
	}
	if _, ok := s.builders[contentType]; !ok {
		return nil, ErrUnknownContentType
	}

	var history shareHistory
	if _, err := s.store.Get(appID, shareHistoryKey(userID), &history); err != nil {
		return nil, err
	}

	share := ShareRecord{
		ID:           s.now().UnixNano(),
		ContentType:  contentType,
		Platform:     platform,
		ReferralCode: s.referralCode(),
		SharedAt:     s.now().UTC(),
	}
	history.Shares = append(history.Shares, share)
	if err := s.store.Set(appID, shareHistoryKey(userID), &history); err != nil {
		return nil, err
	}

	_, points, err := s.scoring.Award(appID, userID, "social_share")
	if err != nil {
		return nil, err
	}
	if len(history.Shares) >= 10 {
		if _, err := s.scoring.Mutate(appID, userID, func(stats *UserStat) {
			s.scoring.grantBadge(stats, "social_butterfly")
		}); err != nil {
			return nil, err
		}
	}

	return &ShareResult{
		Share:   share,
		Points:  points,
		Message: "Shared successfully! Watch your impact grow! 🚀",
	}, nil
}

// ReferralResult is the outcome of tracking a referral conversion.
type ReferralResult struct {
	Referral    Referral `json:"referral"`
	BonusPoints int      `json:"bonus_points"`
	Message     string   `json:"message"`
}

// TrackReferral records a join via a referral code. If the code matches a
// tracked share its conversion count goes up; either way the referrer gets
// the invite bonus.
func (s *SharingService) TrackReferral(appID, userID, referralCode, joinedUserID string) (*ReferralResult, error) {
	var history shareHistory
	if _, err := s.store.Get(appID, shareHistoryKey(userID), &history); err != nil {
		return nil, err
	}

	referral := Referral{
		ID:           s.now().UnixNano(),
		ReferralCode: referralCode,
		UserID:       joinedUserID,
		JoinedAt:     s.now().UTC(),
	}
	history.Referrals = append(history.Referrals, referral)
	for i := range history.Shares {
		if history.Shares[i].ReferralCode == referralCode {
			history.Shares[i].Conversions++
			break
		}
	}
	if err := s.store.Set(appID, shareHistoryKey(userID), &history); err != nil {
		return nil, err
	}

	_, bonus, err := s.scoring.Award(appID, userID, "friend_invite")
	if err != nil {
		return nil, err
	}

	return &ReferralResult{
		Referral:    referral,
		BonusPoints: bonus,
		Message:     "Referral tracked! Bonus points awarded! 🎉",
	}, nil
}

// SharingStats summarizes sharing activity and virality.
type SharingStats struct {
	TotalShares          int            `json:"total_shares"`
	TotalReferrals       int            `json:"total_referrals"`
	TotalClicks          int            `json:"total_clicks"`
	TotalConversions     int            `json:"total_conversions"`
	ViralCoefficient     float64        `json:"viral_coefficient"`
	PlatformBreakdown    map[string]int `json:"platform_breakdown"`
	ContentTypeBreakdown map[string]int `json:"content_type_breakdown"`
	TopPlatform          string         `json:"top_platform,omitempty"`
	TopContent           string         `json:"top_content,omitempty"`
	ConversionRate       float64        `json:"conversion_rate"`
}

func (s *SharingService) Statistics(appID, userID string) (*SharingStats, error) {
	var history shareHistory
	if _, err := s.store.Get(appID, shareHistoryKey(userID), &history); err != nil {
		return nil, err
	}

	stats := &SharingStats{
		TotalShares:          len(history.Shares),
		TotalReferrals:       len(history.Referrals),
		PlatformBreakdown:    map[string]int{},
		ContentTypeBreakdown: map[string]int{},
	}
	for _, share := range history.Shares {
		stats.PlatformBreakdown[share.Platform]++
		stats.ContentTypeBreakdown[share.ContentType]++
		stats.TotalClicks += share.Clicks
		stats.TotalConversions += share.Conversions
	}
	stats.TopPlatform = topKey(stats.PlatformBreakdown)
	stats.TopContent = topKey(stats.ContentTypeBreakdown)
	stats.ViralCoefficient = viralCoefficient(len(history.Shares), len(history.Referrals))
	if stats.TotalShares > 0 {
		stats.ConversionRate = math.Round(float64(stats.TotalConversions)/float64(stats.TotalShares)*10000) / 100
	}
	return stats, nil
}

// viralCoefficient multiplies shares per user by the conversion rate. With a
// single tracked user this collapses to plain conversions; the formula is
// kept in full for when shares span users.
func viralCoefficient(shares, conversions int) float64 {
	if shares == 0 {
		return 0
	}
	avgSharesPerUser := float64(shares)
	conversionRate := float64(conversions) / float64(shares)
	return math.Round(avgSharesPerUser*conversionRate*100) / 100
}

func topKey(m map[string]int) string {
	top, best := "", 0
	for k, v := range m {
		if v > best {
			top, best = k, v
		}
	}
	return top
}

// History returns tracked shares, newest first.
func (s *SharingService) History(appID, userID string, limit int) ([]ShareRecord, error) {
	var history shareHistory
	if _, err := s.store.Get(appID, shareHistoryKey(userID), &history); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	shares := history.Shares
	out := make([]ShareRecord, 0, limit)
	for i := len(shares) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, shares[i])
	}
	return out, nil
}
