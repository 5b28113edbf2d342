package zyro

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zero2billionaires/z2b-backend/internal/config"
	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
	"gorm.io/gorm"
)

// Plugin implements the apps.Plugin interface for the ZYRO gamification app.
type Plugin struct {
	store kvstore.Store
}

// New creates a new zyro Plugin backed by the given document store.
func New(store kvstore.Store) *Plugin {
	return &Plugin{store: store}
}

func (p *Plugin) ID() string { return "zyro" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&kvstore.KVBlob{},
	}
}

func (p *Plugin) handler(cfg *config.Config) *Handler {
	scoring := NewProgressService(p.store)
	leaderboard := NewLeaderboardService(p.store)
	scoring.Subscribe(leaderboard)

	ai := NewEnhancementClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AITimeout)
	roulette := NewRouletteService(p.store, scoring, ai)
	quiz := NewQuizService(p.store, scoring)
	sharing := NewSharingService(p.store, scoring)
	syncSvc := NewSyncService(p.store, scoring)
	bingo := NewBingoService(p.store, scoring)
	madlibs := NewMadlibsService(p.store, scoring)

	return NewHandler(scoring, roulette, quiz, leaderboard, sharing, syncSvc, bingo, madlibs)
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	h := p.handler(cfg)

	router.Post("/zyro/spin", h.Spin)
	router.Get("/zyro/categories", h.Categories)
	router.Get("/zyro/ideas", h.Ideas)
	router.Post("/zyro/ideas/:id/favorite", h.Favorite)
	router.Delete("/zyro/ideas/:id/favorite", h.Unfavorite)
	router.Get("/zyro/ideas/:id/report", h.IdeaReport)

	router.Post("/zyro/quiz/start", h.QuizStart)
	router.Post("/zyro/quiz/answer", h.QuizAnswer)
	router.Get("/zyro/quiz/current", h.QuizCurrent)
	router.Get("/zyro/quiz/history", h.QuizHistory)
	router.Get("/zyro/quiz/templates", h.QuizTemplates)

	router.Get("/zyro/leaderboard", h.Leaderboard)
	router.Get("/zyro/leaderboard/me", h.MyRank)
	router.Get("/zyro/leaderboard/rivals", h.Rivals)
	router.Get("/zyro/leaderboard/report", h.Report)
	router.Get("/zyro/leaderboard/categories", h.CategoryLeaders)
	router.Get("/zyro/leaderboard/stats", h.BoardStats)

	router.Post("/zyro/share", h.Share)
	router.Post("/zyro/share/content", h.ShareContent)
	router.Post("/zyro/referral", h.Referral)
	router.Get("/zyro/share/history", h.ShareHistory)
	router.Get("/zyro/share/stats", h.ShareStats)

	router.Get("/zyro/challenges/today", h.TodayChallenge)
	router.Post("/zyro/challenges/:id/complete", h.CompleteChallenge)

	router.Get("/zyro/bingo", h.Bingo)
	router.Post("/zyro/bingo/:index", h.BingoComplete)

	router.Get("/zyro/madlibs/templates", h.MadlibTemplates)
	router.Post("/zyro/madlibs/start", h.MadlibStart)
	router.Post("/zyro/madlibs/fill", h.MadlibFill)
	router.Post("/zyro/madlibs/autofill", h.MadlibAutoFill)
	router.Post("/zyro/madlibs/complete", h.MadlibComplete)
	router.Get("/zyro/madlibs/current", h.MadlibCurrent)
	router.Get("/zyro/madlibs/history", h.MadlibHistory)
	router.Get("/zyro/madlibs/stats", h.MadlibStatistics)

	router.Get("/zyro/stats", h.Stats)
	router.Post("/zyro/sync/:target", h.Sync)
}

func (p *Plugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	h := p.handler(cfg)

	router.Post("/zyro/reset/:userId", h.ResetProgress)
	router.Post("/zyro/leaderboard/reset", h.ResetLeaderboard)
	router.Post("/zyro/award/:userId", h.AwardEvent)
}
