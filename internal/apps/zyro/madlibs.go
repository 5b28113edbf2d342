package zyro

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

var (
	ErrMadlibNotFound = errors.New("madlib template not found")
	ErrNoActiveMadlib = errors.New("no active madlib")
)

func madlibSessionKey(userID string) string { return "zyro_madlib_session_" + userID }
func madlibHistoryKey(userID string) string { return "zyro_madlib_history_" + userID }

// MadlibsService runs the Hustle MadLibs pitch generator. One session per
// user at a time; starting a new one replaces an unfinished session.
type MadlibsService struct {
	store   kvstore.Store
	scoring *ProgressService
	now     func() time.Time
	rng     *rand.Rand
	rngMu   sync.Mutex
}

func NewMadlibsService(store kvstore.Store, scoring *ProgressService) *MadlibsService {
	return &MadlibsService{
		store:   store,
		scoring: scoring,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Templates lists the available templates with their blank counts and a
// difficulty derived from how many blanks need filling.
func (s *MadlibsService) Templates() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(madlibTemplates))
	for _, t := range madlibTemplates {
		out = append(out, map[string]interface{}{
			"id":         t.ID,
			"title":      t.Title,
			"blanks":     len(t.Blanks),
			"difficulty": madlibDifficulty(t),
		})
	}
	return out
}

func madlibDifficulty(t MadlibTemplate) string {
	switch n := len(t.Blanks); {
	case n <= 5:
		return "easy"
	case n <= 8:
		return "medium"
	default:
		return "hard"
	}
}

func findMadlibTemplate(id string) *MadlibTemplate {
	for i := range madlibTemplates {
		if madlibTemplates[i].ID == id {
			return &madlibTemplates[i]
		}
	}
	return nil
}

// Start begins a new session for the template, replacing any unfinished one.
func (s *MadlibsService) Start(appID, userID, templateID string) (*MadlibSession, error) {
	tmpl := findMadlibTemplate(templateID)
	if tmpl == nil {
		return nil, ErrMadlibNotFound
	}

	blanks := make([]MadlibValue, len(tmpl.Blanks))
	for i, b := range tmpl.Blanks {
		blanks[i] = MadlibValue{MadlibBlank: b}
	}
	session := &MadlibSession{
		ID:         s.now().UnixNano(),
		TemplateID: tmpl.ID,
		Title:      tmpl.Title,
		Blanks:     blanks,
		StartedAt:  s.now().UTC(),
	}
	if err := s.store.Set(appID, madlibSessionKey(userID), session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *MadlibsService) active(appID, userID string) (*MadlibSession, error) {
	var session MadlibSession
	found, err := s.store.Get(appID, madlibSessionKey(userID), &session)
	if err != nil {
		return nil, err
	}
	if !found || session.Completed {
		return nil, ErrNoActiveMadlib
	}
	return &session, nil
}

// Fill sets the value of one blank.
func (s *MadlibsService) Fill(appID, userID string, index int, value string) (*MadlibSession, error) {
	session, err := s.active(appID, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(session.Blanks) {
		return nil, fmt.Errorf("blank index %d out of range", index)
	}
	session.Blanks[index].Value = value
	if err := s.store.Set(appID, madlibSessionKey(userID), session); err != nil {
		return nil, err
	}
	return session, nil
}

// FillAll sets every blank at once. The value count must match exactly.
func (s *MadlibsService) FillAll(appID, userID string, values []string) (*MadlibSession, error) {
	session, err := s.active(appID, userID)
	if err != nil {
		return nil, err
	}
	if len(values) != len(session.Blanks) {
		return nil, fmt.Errorf("expected %d values, got %d", len(session.Blanks), len(values))
	}
	for i := range session.Blanks {
		session.Blanks[i].Value = values[i]
	}
	if err := s.store.Set(appID, madlibSessionKey(userID), session); err != nil {
		return nil, err
	}
	return session, nil
}

// AutoFill fills every blank with a random suggestion for its key.
func (s *MadlibsService) AutoFill(appID, userID string) (*MadlibSession, error) {
	session, err := s.active(appID, userID)
	if err != nil {
		return nil, err
	}
	for i := range session.Blanks {
		session.Blanks[i].Value = s.randomSuggestion(session.Blanks[i].Key)
	}
	if err := s.store.Set(appID, madlibSessionKey(userID), session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *MadlibsService) randomSuggestion(key string) string {
	pool, ok := madlibSuggestions[key]
	if !ok {
		pool = defaultSuggestions
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return pool[s.rng.Intn(len(pool))]
}

// MadlibProgress describes the in-flight session.
type MadlibProgress struct {
	Active      bool           `json:"active"`
	Session     *MadlibSession `json:"session,omitempty"`
	Filled      int            `json:"filled"`
	Total       int            `json:"total"`
	Progress    int            `json:"progress"`
	CanComplete bool           `json:"can_complete"`
	Message     string         `json:"message,omitempty"`
}

// Progress reports how far along the current session is. No active session is
// a valid empty state, not an error.
func (s *MadlibsService) Progress(appID, userID string) (*MadlibProgress, error) {
	session, err := s.active(appID, userID)
	if errors.Is(err, ErrNoActiveMadlib) {
		return &MadlibProgress{Message: "No active MadLib. Start one!"}, nil
	}
	if err != nil {
		return nil, err
	}

	filled := filledCount(session)
	total := len(session.Blanks)
	return &MadlibProgress{
		Active:      true,
		Session:     session,
		Filled:      filled,
		Total:       total,
		Progress:    filled * 100 / total,
		CanComplete: filled == total,
	}, nil
}

func filledCount(session *MadlibSession) int {
	n := 0
	for _, b := range session.Blanks {
		if strings.TrimSpace(b.Value) != "" {
			n++
		}
	}
	return n
}

// MadlibResult reports a completion attempt. Success=false covers the
// blanks-still-empty case.
type MadlibResult struct {
	Success     bool   `json:"success"`
	Result      string `json:"result,omitempty"`
	HumorScore  int    `json:"humor_score,omitempty"`
	Points      int    `json:"points,omitempty"`
	BonusPoints int    `json:"bonus_points,omitempty"`
	EmptyBlanks []int  `json:"empty_blanks,omitempty"`
	Message     string `json:"message"`
}

// Complete renders the pitch, scores its humor, freezes the session and
// awards points. A humor score of 80+ earns the share bonus on top.
func (s *MadlibsService) Complete(appID, userID string) (*MadlibResult, error) {
	session, err := s.active(appID, userID)
	if err != nil {
		return nil, err
	}

	var empty []int
	for i, b := range session.Blanks {
		if strings.TrimSpace(b.Value) == "" {
			empty = append(empty, i)
		}
	}
	if len(empty) > 0 {
		return &MadlibResult{
			Success:     false,
			EmptyBlanks: empty,
			Message:     "Fill in all blanks first!",
		}, nil
	}

	tmpl := findMadlibTemplate(session.TemplateID)
	if tmpl == nil {
		return nil, ErrMadlibNotFound
	}
	result := renderMadlib(tmpl, session.Blanks)
	s.rngMu.Lock()
	jitter := s.rng.Intn(20)
	s.rngMu.Unlock()
	score := humorScore(result, jitter)

	now := s.now().UTC()
	session.Completed = true
	session.Result = result
	session.HumorScore = score
	session.CompletedAt = &now
	if err := s.store.Set(appID, madlibSessionKey(userID), session); err != nil {
		return nil, err
	}

	var history []MadlibSession
	if _, err := s.store.Get(appID, madlibHistoryKey(userID), &history); err != nil {
		return nil, err
	}
	history = append(history, *session)
	if err := s.store.Set(appID, madlibHistoryKey(userID), &history); err != nil {
		return nil, err
	}

	stats, points, err := s.scoring.Award(appID, userID, "madlib_create")
	if err != nil {
		return nil, err
	}
	bonus := 0
	if score >= 80 {
		bonus = pointsPerAction["social_share"]
		if err := s.scoring.AddPoints(appID, stats, bonus); err != nil {
			return nil, err
		}
	}

	return &MadlibResult{
		Success:     true,
		Result:      result,
		HumorScore:  score,
		Points:      points,
		BonusPoints: bonus,
		Message:     madlibMessage(score),
	}, nil
}

// renderMadlib substitutes each blank into its placeholder. Duplicate keys
// consume placeholders left to right.
func renderMadlib(tmpl *MadlibTemplate, blanks []MadlibValue) string {
	text := tmpl.Template
	for _, b := range blanks {
		text = strings.Replace(text, "{"+b.Key+"}", b.Value, 1)
	}
	return text
}

// humorScore rates the rendered pitch: 50 base, +5 per funny word, length
// and enthusiasm bonuses, plus a 0-19 jitter, capped at 100.
func humorScore(result string, jitter int) int {
	score := 50
	lower := strings.ToLower(result)
	for _, w := range funnyWords {
		if strings.Contains(lower, w) {
			score += 5
		}
	}

	if len(result) > 200 {
		score += 10
	}
	if len(result) > 300 {
		score += 10
	}

	exclamations := strings.Count(result, "!")
	if exclamations > 4 {
		exclamations = 4
	}
	score += exclamations * 5

	capitals := 0
	for _, r := range result {
		if r >= 'A' && r <= 'Z' {
			capitals++
		}
	}
	if capitals > 10 {
		score += 10
	}

	score += jitter
	if score > 100 {
		score = 100
	}
	return score
}

func madlibMessage(score int) string {
	switch {
	case score >= 90:
		return "🤣 COMEDY GOLD! This is absolutely hilarious!"
	case score >= 75:
		return "😂 Pretty funny! This could go viral!"
	case score >= 60:
		return "😄 Nice one! Made me chuckle!"
	default:
		return "😊 Not bad! Try another for more laughs!"
	}
}

// History returns completed madlibs, newest first.
func (s *MadlibsService) History(appID, userID string, limit int) ([]MadlibSession, error) {
	var history []MadlibSession
	if _, err := s.store.Get(appID, madlibHistoryKey(userID), &history); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	out := make([]MadlibSession, 0, limit)
	for i := len(history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

// MadlibStats summarizes madlib activity.
type MadlibStats struct {
	TotalCompleted     int            `json:"total_completed"`
	AverageHumorScore  int            `json:"average_humor_score"`
	HighestScore       int            `json:"highest_score"`
	FavoriteTemplateID string         `json:"favorite_template_id,omitempty"`
	TemplateBreakdown  map[string]int `json:"template_breakdown"`
}

func (s *MadlibsService) Statistics(appID, userID string) (*MadlibStats, error) {
	var history []MadlibSession
	if _, err := s.store.Get(appID, madlibHistoryKey(userID), &history); err != nil {
		return nil, err
	}

	stats := &MadlibStats{
		TotalCompleted:    len(history),
		TemplateBreakdown: map[string]int{},
	}
	scoreSum := 0
	for _, m := range history {
		stats.TemplateBreakdown[m.TemplateID]++
		scoreSum += m.HumorScore
		if m.HumorScore > stats.HighestScore {
			stats.HighestScore = m.HumorScore
		}
	}
	if len(history) > 0 {
		stats.AverageHumorScore = scoreSum / len(history)
	}
	stats.FavoriteTemplateID = topKey(stats.TemplateBreakdown)
	return stats, nil
}

// ClearHistory removes the session and all completed madlibs. Admin only.
func (s *MadlibsService) ClearHistory(appID, userID string) error {
	if err := s.store.Delete(appID, madlibSessionKey(userID)); err != nil {
		return err
	}
	return s.store.Delete(appID, madlibHistoryKey(userID))
}
