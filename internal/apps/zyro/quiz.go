package zyro

import (
	"errors"
	"fmt"
	"time"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

var (
	ErrQuizNotFound = errors.New("quiz template not found")
	ErrNoActiveQuiz = errors.New("no active quiz session")
)

func quizSessionKey(userID string) string { return "zyro_quiz_session_" + userID }
func quizHistoryKey(userID string) string { return "zyro_quiz_history_" + userID }

// QuizService runs personality quizzes. One session per user at a time;
// starting a new quiz replaces an unfinished one.
type QuizService struct {
	store   kvstore.Store
	scoring *ProgressService
	now     func() time.Time
}

func NewQuizService(store kvstore.Store, scoring *ProgressService) *QuizService {
	return &QuizService{store: store, scoring: scoring, now: time.Now}
}

// Templates lists the available quizzes without their answer keys.
func (s *QuizService) Templates() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(quizTemplates))
	for _, t := range quizTemplates {
		out = append(out, map[string]interface{}{
			"id":          t.ID,
			"title":       t.Title,
			"description": t.Description,
			"questions":   len(t.Questions),
		})
	}
	return out
}

func findTemplate(id string) *QuizTemplate {
	for i := range quizTemplates {
		if quizTemplates[i].ID == id {
			return &quizTemplates[i]
		}
	}
	return nil
}

// QuizStep is what the client sees after starting or answering: the current
// question, or the final result once the quiz is done.
type QuizStep struct {
	Session  *QuizSession  `json:"session"`
	Question *QuizQuestion `json:"question,omitempty"`
	Result   *QuizResult   `json:"result,omitempty"`
}

// QuizResult is the outcome of a completed session.
type QuizResult struct {
	Bucket       ResultBucket  `json:"bucket"`
	Score        int           `json:"score"`
	MaxScore     int           `json:"max_score"`
	Points       int           `json:"points_earned"`
	Analysis     *QuizAnalysis `json:"analysis"`
	ShareMessage string        `json:"share_message"`
}

// Start begins a new session for the template, replacing any unfinished one.
func (s *QuizService) Start(appID, userID, templateID string) (*QuizStep, error) {
	tmpl := findTemplate(templateID)
	if tmpl == nil {
		return nil, ErrQuizNotFound
	}

	session := &QuizSession{
		ID:         s.now().UnixNano(),
		TemplateID: tmpl.ID,
		Title:      tmpl.Title,
		Traits:     map[string]int{},
		StartedAt:  s.now().UTC(),
	}
	if err := s.store.Set(appID, quizSessionKey(userID), session); err != nil {
		return nil, err
	}
	return &QuizStep{Session: session, Question: &tmpl.Questions[0]}, nil
}

// Answer records the option chosen for the current question and advances the
// session. Answering the last question completes the quiz, scores it, and
// awards points. A completed session cannot be answered again.
func (s *QuizService) Answer(appID, userID string, optionIndex int) (*QuizStep, error) {
	var session QuizSession
	found, err := s.store.Get(appID, quizSessionKey(userID), &session)
	if err != nil {
		return nil, err
	}
	if !found || session.Completed {
		return nil, ErrNoActiveQuiz
	}

	tmpl := findTemplate(session.TemplateID)
	if tmpl == nil {
		return nil, ErrQuizNotFound
	}
	question := tmpl.Questions[session.QuestionIndex]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return nil, fmt.Errorf("option index %d out of range", optionIndex)
	}

	option := question.Options[optionIndex]
	session.Answers = append(session.Answers, QuizAnswer{
		QuestionIndex:  session.QuestionIndex,
		Question:       question.Question,
		SelectedOption: option.Text,
		OptionIndex:    optionIndex,
		Points:         option.Points,
		Trait:          option.Trait,
	})
	session.Score += option.Points
	session.Traits[option.Trait]++
	session.QuestionIndex++

	if session.QuestionIndex >= len(tmpl.Questions) {
		return s.complete(appID, userID, &session, tmpl)
	}

	if err := s.store.Set(appID, quizSessionKey(userID), &session); err != nil {
		return nil, err
	}
	return &QuizStep{Session: &session, Question: &tmpl.Questions[session.QuestionIndex]}, nil
}

func (s *QuizService) complete(appID, userID string, session *QuizSession, tmpl *QuizTemplate) (*QuizStep, error) {
	bucket := resolveBucket(tmpl.Results, session.Score)
	now := s.now().UTC()
	session.Completed = true
	session.ResultType = bucket.Key
	session.CompletedAt = &now

	if err := s.store.Set(appID, quizSessionKey(userID), session); err != nil {
		return nil, err
	}

	var history []QuizSession
	if _, err := s.store.Get(appID, quizHistoryKey(userID), &history); err != nil {
		return nil, err
	}
	history = append(history, *session)
	if err := s.store.Set(appID, quizHistoryKey(userID), &history); err != nil {
		return nil, err
	}

	_, points, err := s.scoring.Award(appID, userID, "quiz_complete")
	if err != nil {
		return nil, err
	}
	if bucket.Key == "ceo" {
		if _, err := s.scoring.Mutate(appID, userID, func(stats *UserStat) {
			s.scoring.grantBadge(stats, "quiz_king")
		}); err != nil {
			return nil, err
		}
	}

	maxScore := 0
	for _, q := range tmpl.Questions {
		best := 0
		for _, o := range q.Options {
			if o.Points > best {
				best = o.Points
			}
		}
		maxScore += best
	}

	result := &QuizResult{
		Bucket:       bucket,
		Score:        session.Score,
		MaxScore:     maxScore,
		Points:       points,
		Analysis:     analyze(session),
		ShareMessage: fmt.Sprintf("I just took the %s quiz on ZYRO and got: %s! What about you? 👀", tmpl.Title, bucket.Title),
	}
	return &QuizStep{Session: session, Result: result}, nil
}

// resolveBucket finds the bucket containing score. A score outside every
// range falls back to the middle bucket.
func resolveBucket(results []ResultBucket, score int) ResultBucket {
	for _, r := range results {
		if score >= r.MinScore && score <= r.MaxScore {
			return r
		}
	}
	return results[len(results)/2]
}

// analyze builds the trait percentage breakdown for a finished session.
func analyze(session *QuizSession) *QuizAnalysis {
	total := len(session.Answers)
	breakdown := map[string]int{}
	dominant, best := "", 0
	for trait, n := range session.Traits {
		pct := 0
		if total > 0 {
			pct = n * 100 / total
		}
		breakdown[trait] = pct
		if n > best {
			dominant, best = trait, n
		}
	}

	a := &QuizAnalysis{TraitBreakdown: breakdown, DominantTrait: dominant}

	if breakdown["ceo"] >= 60 {
		a.Strengths = append(a.Strengths, "Strong leadership instincts - you think like an owner")
	}
	if breakdown["hustler"] >= 40 {
		a.Strengths = append(a.Strengths, "Great balance of ambition and pragmatism")
	}
	if breakdown["minion"] >= 50 {
		a.Strengths = append(a.Strengths, "Reliability and consistency - now channel it into your own goals")
	}

	if breakdown["minion"] >= 70 {
		a.Improvements = append(a.Improvements, "Work on taking more initiative and calculated risks")
	}
	if breakdown["ceo"] >= 80 {
		a.Improvements = append(a.Improvements, "Don't forget execution - vision without action is just a dream")
	}
	if breakdown["hustler"] >= 60 {
		a.Improvements = append(a.Improvements, "Commit fully - half-hustling keeps you half-stuck")
	}

	switch session.ResultType {
	case "ceo":
		a.Recommendations = []string{
			"Start building your first income stream this week",
			"Use ZYRO's idea roulette to find your next venture",
			"Track your progress with daily challenges",
		}
	case "hustler":
		a.Recommendations = []string{
			"Pick ONE side hustle and go deep",
			"Build a daily streak to stay consistent",
			"Level up your mindset with the daily challenges",
		}
	default:
		a.Recommendations = []string{
			"Start small: complete one daily challenge today",
			"Spin the idea roulette to spark entrepreneurial thinking",
			"Take the quiz again in 30 days and watch your score climb",
		}
	}
	return a
}

// Current returns the in-flight session and its pending question, or
// ErrNoActiveQuiz.
func (s *QuizService) Current(appID, userID string) (*QuizStep, error) {
	var session QuizSession
	found, err := s.store.Get(appID, quizSessionKey(userID), &session)
	if err != nil {
		return nil, err
	}
	if !found || session.Completed {
		return nil, ErrNoActiveQuiz
	}
	tmpl := findTemplate(session.TemplateID)
	if tmpl == nil {
		return nil, ErrQuizNotFound
	}
	return &QuizStep{Session: &session, Question: &tmpl.Questions[session.QuestionIndex]}, nil
}

// History returns completed sessions, oldest first.
func (s *QuizService) History(appID, userID string) ([]QuizSession, error) {
	var history []QuizSession
	if _, err := s.store.Get(appID, quizHistoryKey(userID), &history); err != nil {
		return nil, err
	}
	return history, nil
}
