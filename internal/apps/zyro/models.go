package zyro

import "time"

// UserStat is the per-user progress document stored at zyro_progress_{userId}.
// totalPoints only ever grows; badges are append-only.
type UserStat struct {
	UserID               string    `json:"user_id"`
	DisplayName          string    `json:"display_name"`
	TotalPoints          int       `json:"total_points"`
	Level                int       `json:"level"`
	LevelName            string    `json:"level_name"`
	LevelBadge           string    `json:"level_badge"`
	CurrentStreak        int       `json:"current_streak"`
	LongestStreak        int       `json:"longest_streak"`
	LastCompletedDate    string    `json:"last_completed_date,omitempty"`
	ChallengesCompleted  int       `json:"challenges_completed"`
	CompletedChallengeID string    `json:"completed_challenge_id,omitempty"`
	IdeasSpun            int       `json:"ideas_spun"`
	QuizzesTaken         int       `json:"quizzes_taken"`
	MadlibsCompleted     int       `json:"madlibs_completed"`
	BingoProgress        int       `json:"bingo_progress"`
	Badges               []string  `json:"badges"`
	SyncedApps           []string  `json:"synced_apps,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	LastActive           time.Time `json:"last_active"`
}

// HasBadge reports whether the badge was already granted.
func (s *UserStat) HasBadge(id string) bool {
	for _, b := range s.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// IdeaParts is the prefix/business/suffix triple an idea is built from.
// Both heuristic scores are pure functions of this triple.
type IdeaParts struct {
	Prefix   string `json:"prefix"`
	Business string `json:"business"`
	Suffix   string `json:"suffix"`
}

// Enhancement is the optional AI garnish on a spun idea.
type Enhancement struct {
	Tagline string `json:"tagline"`
	Pitch   string `json:"pitch"`
	Feature string `json:"feature"`
	Insight string `json:"insight"`
	Story   string `json:"story"`
}

// Idea is one roulette spin, appended to a capped per-user history.
type Idea struct {
	ID             int64        `json:"id"`
	Text           string       `json:"text"`
	Category       string       `json:"category"`
	Parts          IdeaParts    `json:"parts"`
	GeneratedAt    time.Time    `json:"generated_at"`
	Source         string       `json:"source"`
	IsViralWorthy  bool         `json:"is_viral_worthy"`
	AbsurdityScore int          `json:"absurdity_score"`
	ViabilityScore int          `json:"viability_score"`
	AIEnhanced     bool         `json:"ai_enhanced,omitempty"`
	Enhancement    *Enhancement `json:"enhancement,omitempty"`
	Favorited      bool         `json:"favorited,omitempty"`
	FavoritedAt    *time.Time   `json:"favorited_at,omitempty"`
}

// SpinResult is returned from Spin. Success=false covers both the busy guard
// and an unknown category; it is a tagged result, never an error.
type SpinResult struct {
	Success     bool   `json:"success"`
	Idea        *Idea  `json:"idea,omitempty"`
	Points      int    `json:"points,omitempty"`
	BonusPoints int    `json:"bonus_points,omitempty"`
	Message     string `json:"message"`
}

// QuizAnswer records one answered question inside a session.
type QuizAnswer struct {
	QuestionIndex  int    `json:"question_index"`
	Question       string `json:"question"`
	SelectedOption string `json:"selected_option"`
	OptionIndex    int    `json:"option_index"`
	Points         int    `json:"points"`
	Trait          string `json:"trait"`
}

// QuizSession is one quiz attempt. Once Completed is true the score, answers
// and result type never change.
type QuizSession struct {
	ID            int64          `json:"id"`
	TemplateID    string         `json:"template_id"`
	Title         string         `json:"title"`
	QuestionIndex int            `json:"question_index"`
	Answers       []QuizAnswer   `json:"answers"`
	Score         int            `json:"score"`
	Traits        map[string]int `json:"traits"`
	Completed     bool           `json:"completed"`
	ResultType    string         `json:"result_type,omitempty"`
	StartedAt     time.Time      `json:"started_at"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
}

// QuizAnalysis is the post-completion trait breakdown.
type QuizAnalysis struct {
	TraitBreakdown  map[string]int `json:"trait_breakdown"`
	DominantTrait   string         `json:"dominant_trait,omitempty"`
	Strengths       []string       `json:"strengths"`
	Improvements    []string       `json:"improvements"`
	Recommendations []string       `json:"recommendations"`
}

// MadlibValue is one blank with whatever the user put in it.
type MadlibValue struct {
	MadlibBlank
	Value string `json:"value,omitempty"`
}

// MadlibSession is one fill-in-the-blank attempt. Once Completed is true the
// rendered result and humor score never change.
type MadlibSession struct {
	ID          int64         `json:"id"`
	TemplateID  string        `json:"template_id"`
	Title       string        `json:"title"`
	Blanks      []MadlibValue `json:"blanks"`
	Completed   bool          `json:"completed"`
	Result      string        `json:"result,omitempty"`
	HumorScore  int           `json:"humor_score,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// LeaderboardEntry is a denormalized projection of UserStat. Rank is never
// stored; it is recomputed on every read.
type LeaderboardEntry struct {
	UserID              string    `json:"user_id"`
	DisplayName         string    `json:"display_name"`
	TotalPoints         int       `json:"total_points"`
	WeeklyPoints        int       `json:"weekly_points"`
	MonthlyPoints       int       `json:"monthly_points"`
	Level               int       `json:"level"`
	LevelName           string    `json:"level_name"`
	LevelBadge          string    `json:"level_badge"`
	CurrentStreak       int       `json:"current_streak"`
	LongestStreak       int       `json:"longest_streak"`
	ChallengesCompleted int       `json:"challenges_completed"`
	BingoProgress       int       `json:"bingo_progress"`
	QuizzesTaken        int       `json:"quizzes_taken"`
	IdeasSpun           int       `json:"ideas_spun"`
	MadlibsCompleted    int       `json:"madlibs_completed"`
	Badges              []string  `json:"badges"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// RankedEntry is a LeaderboardEntry with its computed rank.
type RankedEntry struct {
	Rank      int    `json:"rank"`
	RankBadge string `json:"rank_badge"`
	LeaderboardEntry
}

// RankInfo describes a single user's position. Rank is nil for users absent
// from the board — a valid unranked state, not an error.
type RankInfo struct {
	Rank       *int   `json:"rank"`
	Total      int    `json:"total"`
	RankBadge  string `json:"rank_badge,omitempty"`
	Percentile int    `json:"percentile,omitempty"`
	Message    string `json:"message"`
}

// ShareRecord is one tracked share, keyed by referral code for conversion
// attribution.
type ShareRecord struct {
	ID           int64     `json:"id"`
	ContentType  string    `json:"content_type"`
	Platform     string    `json:"platform"`
	ReferralCode string    `json:"referral_code"`
	SharedAt     time.Time `json:"shared_at"`
	Clicks       int       `json:"clicks"`
	Conversions  int       `json:"conversions"`
}

// Referral records a user joining via a share's referral code.
type Referral struct {
	ID           int64     `json:"id"`
	ReferralCode string    `json:"referral_code"`
	UserID       string    `json:"user_id"`
	JoinedAt     time.Time `json:"joined_at"`
}

// shareHistory is the persisted zyro_share_history_{userId} document.
type shareHistory struct {
	Shares    []ShareRecord `json:"shares"`
	Referrals []Referral    `json:"referrals"`
}

// ShareContent is the platform-ready payload built by the dispatch table.
type ShareContent struct {
	Text        string   `json:"text"`
	Hashtags    []string `json:"hashtags"`
	Visual      string   `json:"visual"`
	CTA         string   `json:"cta"`
	Tone        string   `json:"tone,omitempty"`
	Truncated   bool     `json:"truncated,omitempty"`
	TrackingURL string   `json:"tracking_url"`
	SocialProof string   `json:"social_proof"`
}

// ShareData carries the values the content builders interpolate.
type ShareData struct {
	ChallengeTitle string `json:"challenge_title,omitempty"`
	Streak         int    `json:"streak,omitempty"`
	Idea           string `json:"idea,omitempty"`
	AbsurdityScore int    `json:"absurdity_score,omitempty"`
	ViabilityScore int    `json:"viability_score,omitempty"`
	Completed      int    `json:"completed,omitempty"`
	Progress       int    `json:"progress,omitempty"`
	Bingos         int    `json:"bingos,omitempty"`
	TotalPoints    int    `json:"total_points,omitempty"`
	ResultType     string `json:"result_type,omitempty"`
	Description    string `json:"description,omitempty"`
	Score          int    `json:"score,omitempty"`
	MaxScore       int    `json:"max_score,omitempty"`
	Name           string `json:"name,omitempty"`
	Emoji          string `json:"emoji,omitempty"`
	LevelName      string `json:"level_name,omitempty"`
	LevelBadge     string `json:"level_badge,omitempty"`
	Level          int    `json:"level,omitempty"`
	Result         string `json:"result,omitempty"`
}

// BingoBoard is the persisted zyro_bingo_{userId} document.
type BingoBoard struct {
	Completed     []bool    `json:"completed"`
	CompletedLine []string  `json:"completed_lines"`
	AwardedPrizes []string  `json:"awarded_prizes"`
	StartedAt     time.Time `json:"started_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SyncResult is always success=true; a missing or failing sibling app is
// replaced by its simulated payload rather than surfaced.
type SyncResult struct {
	App      string                 `json:"app"`
	Success  bool                   `json:"success"`
	Sent     map[string]interface{} `json:"sent"`
	Received map[string]interface{} `json:"received,omitempty"`
	Note     string                 `json:"note,omitempty"`
	SyncedAt time.Time              `json:"synced_at"`
}
