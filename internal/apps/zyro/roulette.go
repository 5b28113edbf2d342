package zyro

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

var ErrIdeaNotFound = errors.New("idea not found")

func ideaHistoryKey(userID string) string { return "zyro_idea_history_" + userID }

// RouletteService generates business ideas from the category word pools and
// keeps a capped per-user history.
type RouletteService struct {
	store   kvstore.Store
	scoring *ProgressService
	ai      *EnhancementClient
	rng     *rand.Rand
	rngMu   sync.Mutex

	// One guard per user: a spin in flight rejects re-entrant spins.
	spinning sync.Map // userID -> *atomic.Bool
}

func NewRouletteService(store kvstore.Store, scoring *ProgressService, ai *EnhancementClient) *RouletteService {
	return &RouletteService{
		store:   store,
		scoring: scoring,
		ai:      ai,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Categories lists the configured categories with their idea counts.
func (s *RouletteService) Categories() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(categories))
	for _, cat := range categories {
		out = append(out, map[string]interface{}{
			"name":  cat.Name,
			"count": len(cat.Prefix) * len(cat.Business) * len(cat.Suffix),
		})
	}
	return out
}

// absurdityScore rates a parts triple 0-100: 50 base, +20 per part hitting
// the absurd keyword list, capped. Pure function of the triple.
func absurdityScore(parts IdeaParts) int {
	score := 50
	if matchesAny(parts.Prefix, absurdPrefixes) {
		score += 20
	}
	if matchesAny(parts.Business, absurdBusinesses) {
		score += 20
	}
	if matchesAny(parts.Suffix, absurdSuffixes) {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}

// viabilityScore rates a parts triple 0-100: 30 base, +25 per part hitting
// the viable keyword list, capped.
func viabilityScore(parts IdeaParts) int {
	score := 30
	if matchesAny(parts.Prefix, viablePrefixes) {
		score += 25
	}
	if matchesAny(parts.Business, viableBusinesses) {
		score += 25
	}
	if matchesAny(parts.Suffix, viableSuffixes) {
		score += 25
	}
	if score > 100 {
		score = 100
	}
	return score
}

func matchesAny(part string, keywords []string) bool {
	lower := strings.ToLower(part)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isViralWorthy checks the full idea text against the viral keyword list.
func isViralWorthy(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range viralKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (s *RouletteService) randomItem(items []string) string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return items[s.rng.Intn(len(items))]
}

func (s *RouletteService) randomCategory() *Category {
	s.rngMu.Lock()
	idx := s.rng.Intn(len(categories))
	s.rngMu.Unlock()
	return &categories[idx]
}

func (s *RouletteService) guard(userID string) *atomic.Bool {
	v, _ := s.spinning.LoadOrStore(userID, &atomic.Bool{})
	return v.(*atomic.Bool)
}

// Spin picks a random part from each pool of the chosen (or random) category
// and scores the result. A spin already in flight for the same user returns
// a busy result without touching state; an AI enhancement failure falls back
// to the plain random idea and never surfaces.
func (s *RouletteService) Spin(appID, userID, categoryName string, useAI bool) (*SpinResult, error) {
	flag := s.guard(userID)
	if !flag.CompareAndSwap(false, true) {
		return &SpinResult{
			Success: false,
			Message: "Already spinning! Wait for it...",
		}, nil
	}
	defer flag.Store(false)

	var category *Category
	if categoryName == "" {
		category = s.randomCategory()
	} else {
		for i := range categories {
			if categories[i].Name == categoryName {
				category = &categories[i]
				break
			}
		}
	}
	if category == nil {
		return &SpinResult{Success: false, Message: "Category not found"}, nil
	}

	idea := s.generateIdea(category)
	if useAI && s.ai != nil {
		if enhancement := s.ai.Enhance(idea.Text); enhancement != nil {
			idea.Source = "ai"
			idea.AIEnhanced = true
			idea.Enhancement = enhancement
			idea.IsViralWorthy = true
		}
	}

	var ring ideaRing
	if _, err := s.store.Get(appID, ideaHistoryKey(userID), &ring); err != nil {
		return nil, err
	}
	ring.Push(idea)
	if err := s.store.Set(appID, ideaHistoryKey(userID), &ring); err != nil {
		return nil, err
	}

	_, points, err := s.scoring.Award(appID, userID, "idea_spin")
	if err != nil {
		return nil, err
	}
	bonus := 0
	if idea.IsViralWorthy {
		bonus = pointsPerAction["social_share"]
	}

	return &SpinResult{
		Success:     true,
		Idea:        &idea,
		Points:      points,
		BonusPoints: bonus,
		Message:     spinMessage(idea),
	}, nil
}

func (s *RouletteService) generateIdea(category *Category) Idea {
	parts := IdeaParts{
		Prefix:   s.randomItem(category.Prefix),
		Business: s.randomItem(category.Business),
		Suffix:   s.randomItem(category.Suffix),
	}
	text := parts.Prefix + " " + parts.Business + " " + parts.Suffix

	return Idea{
		ID:             time.Now().UnixNano(),
		Text:           text,
		Category:       category.Name,
		Parts:          parts,
		GeneratedAt:    time.Now().UTC(),
		Source:         "random",
		IsViralWorthy:  isViralWorthy(text),
		AbsurdityScore: absurdityScore(parts),
		ViabilityScore: viabilityScore(parts),
	}
}

func spinMessage(idea Idea) string {
	switch {
	case idea.AbsurdityScore >= 80:
		return "🤪 PEAK ABSURDITY! This is either genius or madness!"
	case idea.AbsurdityScore >= 60:
		return "😄 Pretty wild! Might go viral on TikTok!"
	case idea.ViabilityScore >= 70:
		return "🤔 Wait... this might actually work!"
	default:
		return "✨ Not bad! Give it some thought!"
	}
}

// History returns up to limit ideas, newest first.
func (s *RouletteService) History(appID, userID string, limit int) ([]Idea, error) {
	var ring ideaRing
	if _, err := s.store.Get(appID, ideaHistoryKey(userID), &ring); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	return ring.Slice(limit), nil
}

// Favorite toggles the favorited flag on an idea in the history.
func (s *RouletteService) Favorite(appID, userID string, ideaID int64, favorited bool) error {
	var ring ideaRing
	if _, err := s.store.Get(appID, ideaHistoryKey(userID), &ring); err != nil {
		return err
	}
	idea := ring.Find(ideaID)
	if idea == nil {
		return ErrIdeaNotFound
	}
	idea.Favorited = favorited
	if favorited {
		now := time.Now().UTC()
		idea.FavoritedAt = &now
	} else {
		idea.FavoritedAt = nil
	}
	return s.store.Set(appID, ideaHistoryKey(userID), &ring)
}

// Favorites returns all favorited ideas, newest first.
func (s *RouletteService) Favorites(appID, userID string) ([]Idea, error) {
	var ring ideaRing
	if _, err := s.store.Get(appID, ideaHistoryKey(userID), &ring); err != nil {
		return nil, err
	}
	var out []Idea
	for _, idea := range ring.Slice(0) {
		if idea.Favorited {
			out = append(out, idea)
		}
	}
	return out, nil
}

// ValidationReport rates an idea by its viability bands and suggests next
// steps.
type ValidationReport struct {
	Idea           string   `json:"idea"`
	AbsurdityScore int      `json:"absurdity_score"`
	ViabilityScore int      `json:"viability_score"`
	ViralScore     int      `json:"viral_score"`
	Stars          int      `json:"stars"`
	Label          string   `json:"label"`
	Recommendation string   `json:"recommendation"`
	NextSteps      []string `json:"next_steps"`
}

func (s *RouletteService) ValidationReport(appID, userID string, ideaID int64) (*ValidationReport, error) {
	var ring ideaRing
	if _, err := s.store.Get(appID, ideaHistoryKey(userID), &ring); err != nil {
		return nil, err
	}
	idea := ring.Find(ideaID)
	if idea == nil {
		return nil, ErrIdeaNotFound
	}

	viral := 50
	if idea.IsViralWorthy {
		viral = 100
	}
	stars, label := overallRating(idea.ViabilityScore)

	return &ValidationReport{
		Idea:           idea.Text,
		AbsurdityScore: idea.AbsurdityScore,
		ViabilityScore: idea.ViabilityScore,
		ViralScore:     viral,
		Stars:          stars,
		Label:          label,
		Recommendation: recommendation(idea),
		NextSteps:      nextSteps(idea),
	}, nil
}

func overallRating(viability int) (int, string) {
	switch {
	case viability >= 80:
		return 5, "Actually Brilliant!"
	case viability >= 60:
		return 4, "Worth Exploring"
	case viability >= 40:
		return 3, "Needs Work"
	case viability >= 20:
		return 2, "Pretty Absurd"
	default:
		return 1, "Pure Comedy"
	}
}

func recommendation(idea *Idea) string {
	switch {
	case idea.ViabilityScore >= 70 && idea.IsViralWorthy:
		return "💎 Hidden gem! Research this seriously."
	case idea.ViabilityScore >= 60:
		return "🤔 Could work with some tweaking."
	case idea.AbsurdityScore >= 80:
		return "😂 Share this for laughs! Might go viral."
	default:
		return "🎲 Spin again for better luck!"
	}
}

func nextSteps(idea *Idea) []string {
	switch {
	case idea.ViabilityScore >= 70:
		return []string{
			"Research existing competitors",
			"Validate with target audience",
			"Create a simple MVP",
			"Test on small scale",
			"Share with Z2B community",
		}
	case idea.IsViralWorthy:
		return []string{
			"Create a funny TikTok about it",
			"Share on social media",
			"See if anyone actually wants it",
			"If yes: build it!",
			"If no: at least you got likes!",
		}
	default:
		return []string{
			"Spin again for more ideas",
			"Combine with another idea",
			"Ask \"what if...\" questions",
			"Share with friends for feedback",
			"Keep brainstorming!",
		}
	}
}

// RouletteStats summarizes the user's spin history.
type RouletteStats struct {
	TotalSpins     int            `json:"total_spins"`
	FavoriteCount  int            `json:"favorite_count"`
	ViralIdeas     int            `json:"viral_ideas"`
	AIEnhanced     int            `json:"ai_enhanced"`
	CategoryCounts map[string]int `json:"category_counts"`
	TopCategory    string         `json:"top_category,omitempty"`
	AvgAbsurdity   int            `json:"avg_absurdity"`
	AvgViability   int            `json:"avg_viability"`
}

func (s *RouletteService) Statistics(appID, userID string) (*RouletteStats, error) {
	var ring ideaRing
	if _, err := s.store.Get(appID, ideaHistoryKey(userID), &ring); err != nil {
		return nil, err
	}

	stats := &RouletteStats{CategoryCounts: map[string]int{}}
	sumAbs, sumVia := 0, 0
	for _, idea := range ring.Slice(0) {
		stats.TotalSpins++
		if idea.Favorited {
			stats.FavoriteCount++
		}
		if idea.IsViralWorthy {
			stats.ViralIdeas++
		}
		if idea.AIEnhanced {
			stats.AIEnhanced++
		}
		stats.CategoryCounts[idea.Category]++
		sumAbs += idea.AbsurdityScore
		sumVia += idea.ViabilityScore
	}
	if stats.TotalSpins > 0 {
		stats.AvgAbsurdity = sumAbs / stats.TotalSpins
		stats.AvgViability = sumVia / stats.TotalSpins
	}
	top, best := "", 0
	for cat, n := range stats.CategoryCounts {
		if n > best {
			top, best = cat, n
		}
	}
	stats.TopCategory = top
	return stats, nil
}

// ClearHistory drops the user's spin history. Admin only.
func (s *RouletteService) ClearHistory(appID, userID string) error {
	return s.store.Delete(appID, ideaHistoryKey(userID))
}

// EnhancementClient embellishes an idea via the OpenAI chat completions API,
// falling back to canned templates when no key is configured or the call
// fails.
type EnhancementClient struct {
	apiKey  string
	model   string
	timeout time.Duration
	rng     *rand.Rand
	rngMu   sync.Mutex
}

func NewEnhancementClient(apiKey, model string, timeout time.Duration) *EnhancementClient {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &EnhancementClient{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Enhance never returns an error: every failure path degrades to a
// simulated enhancement.
func (c *EnhancementClient) Enhance(ideaText string) *Enhancement {
	if c.apiKey == "" {
		return c.simulated()
	}

	prompt := fmt.Sprintf(`You are a creative business idea generator for ZYRO, a playful app for aspiring entrepreneurs.

Given this absurd business idea: %q

Respond with JSON only (no markdown, no code fences): {"tagline": "catchy tagline, max 10 words", "pitch": "hilarious elevator pitch, max 30 words", "feature": "one genius feature", "insight": "one 'wait, this might actually work' insight", "story": "ridiculous first customer story, max 20 words"}. Keep it funny, playful, and motivational.`, ideaText)

	reqBody := openAIChatRequest{
		Model:       c.model,
		Messages:    []openAIMessage{{Role: "user", Content: prompt}},
		Temperature: 0.9,
		MaxTokens:   300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return c.simulated()
	}

	req, err := http.NewRequest("POST", "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return c.simulated()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	client := &http.Client{Timeout: c.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return c.simulated()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.simulated()
	}

	var chatResp openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return c.simulated()
	}
	if len(chatResp.Choices) == 0 {
		return c.simulated()
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 2 {
			content = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	var enhancement Enhancement
	if err := json.Unmarshal([]byte(content), &enhancement); err != nil {
		return c.simulated()
	}
	return &enhancement
}

var simulatedEnhancements = []Enhancement{
	{
		Tagline: "Because why not? 🚀",
		Pitch:   "Disrupting an industry that didn't know it needed disruption. It's like Uber, but different.",
		Feature: "AI-powered algorithm that uses blockchain... somehow",
		Insight: "Actually solves procrastination by making work feel like play",
		Story:   "First customer was a confused billionaire who thought it was brilliant",
	},
	{
		Tagline: "The future is weird. Join us. 🎉",
		Pitch:   "What if I told you that people would pay for this? Because they will.",
		Feature: "Subscription model with gamification and social proof",
		Insight: "Taps into FOMO better than any social media platform",
		Story:   "Beta tester made $500 in first week, quit their job, bought a yacht",
	},
	{
		Tagline: "Too crazy to fail 💪",
		Pitch:   "Everyone laughed at the idea. Now they're asking for equity.",
		Feature: "Viral loop built into the core experience",
		Insight: "People don't know they need it until they try it",
		Story:   "Customer testimonial: 'This changed my life. I don't know how.'",
	},
}

func (c *EnhancementClient) simulated() *Enhancement {
	c.rngMu.Lock()
	idx := c.rng.Intn(len(simulatedEnhancements))
	c.rngMu.Unlock()
	e := simulatedEnhancements[idx]
	return &e
}
