package zyro

import (
	"strings"
	"testing"
	"time"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

func newTestSharing(t *testing.T) (*SharingService, *ProgressService) {
	t.Helper()
	store := kvstore.NewMemory()
	scoring := NewProgressService(store)
	return NewSharingService(store, scoring), scoring
}

func TestGenerateContentUnknownInputs(t *testing.T) {
	svc, _ := newTestSharing(t)

	if _, err := svc.GenerateContent("idea", "myspace", ShareData{}); err != ErrUnknownPlatform {
		t.Errorf("err = %v, want ErrUnknownPlatform", err)
	}
	if _, err := svc.GenerateContent("interpretive_dance", "twitter", ShareData{}); err != ErrUnknownContentType {
		t.Errorf("err = %v, want ErrUnknownContentType", err)
	}
}

func TestTwitterTruncation(t *testing.T) {
	svc, _ := newTestSharing(t)

	data := ShareData{
		Idea:           strings.Repeat("Luxury Plant Whispering ", 20),
		AbsurdityScore: 90,
		ViabilityScore: 30,
	}
	content, err := svc.GenerateContent("idea", "twitter", data)
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}

	if !content.Truncated {
		t.Error("expected truncated flag for long text")
	}
	if n := len([]rune(content.Text)); n > twitterTruncateAt+3 {
		t.Errorf("text length = %d runes, want <= %d", n, twitterTruncateAt+3)
	}
	if !strings.HasSuffix(content.Text, "...") {
		t.Error("truncated text should end with ellipsis")
	}
	if len(content.Hashtags) > 3 {
		t.Errorf("twitter hashtags = %d, want <= 3", len(content.Hashtags))
	}
}

func TestShortTweetNotTruncated(t *testing.T) {
	svc, _ := newTestSharing(t)

	content, err := svc.GenerateContent("streak", "twitter", ShareData{Streak: 5})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if content.Truncated {
		t.Error("short text should not be truncated")
	}
}

func TestLinkedInStripsHumorHashtags(t *testing.T) {
	svc, _ := newTestSharing(t)

	// The idea builder includes #StartupHumor.
	content, err := svc.GenerateContent("idea", "linkedin", ShareData{Idea: "Local Coaching on a Budget"})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	for _, h := range content.Hashtags {
		lower := strings.ToLower(h)
		if strings.Contains(lower, "humor") || strings.Contains(lower, "funny") {
			t.Errorf("linkedin kept hashtag %q", h)
		}
	}
	if content.Tone != "professional" {
		t.Errorf("tone = %q, want professional", content.Tone)
	}
}

func TestTikTokTone(t *testing.T) {
	svc, _ := newTestSharing(t)

	content, err := svc.GenerateContent("challenge", "tiktok", ShareData{ChallengeTitle: "Trade Master", Streak: 2})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if content.Tone != "energetic" {
		t.Errorf("tone = %q, want energetic", content.Tone)
	}
	if content.CTA != "👇 Link in bio to play!" {
		t.Errorf("cta = %q", content.CTA)
	}
}

func TestTrackingURLParams(t *testing.T) {
	svc, _ := newTestSharing(t)

	content, err := svc.GenerateContent("quiz", "instagram", ShareData{ResultType: "ceo", Score: 20, MaxScore: 24})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	for _, want := range []string{"utm_source=instagram", "utm_medium=social", "utm_campaign=zyro_share", "utm_content=quiz", "ref=ZYRO"} {
		if !strings.Contains(content.TrackingURL, want) {
			t.Errorf("tracking URL %q missing %q", content.TrackingURL, want)
		}
	}
}

func TestReferralCodeFormat(t *testing.T) {
	svc, _ := newTestSharing(t)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	code := svc.referralCode()
	if !strings.HasPrefix(code, "ZYRO") {
		t.Errorf("code = %q, want ZYRO prefix", code)
	}
	if code != strings.ToUpper(code) {
		t.Errorf("code = %q, want uppercase", code)
	}
}

func TestTrackShareAwardsPoints(t *testing.T) {
	svc, scoring := newTestSharing(t)

	result, err := svc.TrackShare("app1", "u1", "idea", "instagram")
	if err != nil {
		t.Fatalf("TrackShare: %v", err)
	}
	if result.Points != pointsPerAction["social_share"] {
		t.Errorf("points = %d, want %d", result.Points, pointsPerAction["social_share"])
	}
	if result.Share.ReferralCode == "" {
		t.Error("share missing referral code")
	}

	stats, _ := scoring.Stats("app1", "u1")
	if stats.TotalPoints != pointsPerAction["social_share"] {
		t.Errorf("TotalPoints = %d", stats.TotalPoints)
	}
}

func TestSocialButterflyAtTenShares(t *testing.T) {
	svc, scoring := newTestSharing(t)

	for i := 0; i < 10; i++ {
		if _, err := svc.TrackShare("app1", "u1", "idea", "instagram"); err != nil {
			t.Fatalf("TrackShare %d: %v", i, err)
		}
	}

	stats, _ := scoring.Stats("app1", "u1")
	if !stats.HasBadge("social_butterfly") {
		t.Error("social_butterfly badge not granted at 10 shares")
	}
}

func TestTrackReferralIncrementsConversion(t *testing.T) {
	svc, scoring := newTestSharing(t)

	share, err := svc.TrackShare("app1", "u1", "idea", "instagram")
	if err != nil {
		t.Fatalf("TrackShare: %v", err)
	}

	result, err := svc.TrackReferral("app1", "u1", share.Share.ReferralCode, "newbie")
	if err != nil {
		t.Fatalf("TrackReferral: %v", err)
	}
	if result.BonusPoints != pointsPerAction["friend_invite"] {
		t.Errorf("bonus = %d, want %d", result.BonusPoints, pointsPerAction["friend_invite"])
	}

	stats, err := svc.Statistics("app1", "u1")
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.TotalConversions != 1 {
		t.Errorf("conversions = %d, want 1", stats.TotalConversions)
	}
	if stats.TotalReferrals != 1 {
		t.Errorf("referrals = %d, want 1", stats.TotalReferrals)
	}

	progress, _ := scoring.Stats("app1", "u1")
	want := pointsPerAction["social_share"] + pointsPerAction["friend_invite"]
	if progress.TotalPoints != want {
		t.Errorf("TotalPoints = %d, want %d", progress.TotalPoints, want)
	}
}

func TestViralCoefficientFormula(t *testing.T) {
	tests := []struct {
		shares      int
		conversions int
		want        float64
	}{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 1},
		{4, 1, 1},    // 4 * (1/4)
		{4, 2, 2},    // 4 * (2/4)
		{10, 3, 3},   // 10 * (3/10)
		{3, 2, 2},    // 3 * (2/3) = 2.00
		{8, 3, 3},    // 8 * (3/8)
	}
	for _, tt := range tests {
		if got := viralCoefficient(tt.shares, tt.conversions); got != tt.want {
			t.Errorf("viralCoefficient(%d, %d) = %v, want %v", tt.shares, tt.conversions, got, tt.want)
		}
	}
}

func TestStatisticsBreakdowns(t *testing.T) {
	svc, _ := newTestSharing(t)

	shares := []struct{ contentType, platform string }{
		{"idea", "instagram"},
		{"idea", "instagram"},
		{"quiz", "twitter"},
	}
	for _, s := range shares {
		if _, err := svc.TrackShare("app1", "u1", s.contentType, s.platform); err != nil {
			t.Fatalf("TrackShare: %v", err)
		}
	}

	stats, err := svc.Statistics("app1", "u1")
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.TotalShares != 3 {
		t.Errorf("TotalShares = %d, want 3", stats.TotalShares)
	}
	if stats.TopPlatform != "instagram" {
		t.Errorf("TopPlatform = %q, want instagram", stats.TopPlatform)
	}
	if stats.TopContent != "idea" {
		t.Errorf("TopContent = %q, want idea", stats.TopContent)
	}
}
