package zyro

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/zero2billionaires/z2b-backend/internal/tenant"
)

// Handler handles HTTP requests for the ZYRO gamification app.
type Handler struct {
	scoring     *ProgressService
	roulette    *RouletteService
	quiz        *QuizService
	leaderboard *LeaderboardService
	sharing     *SharingService
	sync        *SyncService
	bingo       *BingoService
	madlibs     *MadlibsService
}

func NewHandler(scoring *ProgressService, roulette *RouletteService, quiz *QuizService, leaderboard *LeaderboardService, sharing *SharingService, sync *SyncService, bingo *BingoService, madlibs *MadlibsService) *Handler {
	return &Handler{
		scoring:     scoring,
		roulette:    roulette,
		quiz:        quiz,
		leaderboard: leaderboard,
		sharing:     sharing,
		sync:        sync,
		bingo:       bingo,
		madlibs:     madlibs,
	}
}

func (h *Handler) ids(c *fiber.Ctx) (string, string, error) {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return appID, userID.String(), nil
}

// Spin handles POST /zyro/spin
func (h *Handler) Spin(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	var req struct {
		Category string `json:"category"`
		UseAI    bool   `json:"use_ai"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	h.scoring.SetDisplayName(appID, userID, tenant.GetDisplayName(c))
	result, err := h.roulette.Spin(appID, userID, req.Category, req.UseAI)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to spin",
		})
	}
	return c.JSON(result)
}

// Categories handles GET /zyro/categories
func (h *Handler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": h.roulette.Categories()})
}

// Ideas handles GET /zyro/ideas
func (h *Handler) Ideas(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if c.Query("favorites") == "true" {
		ideas, err := h.roulette.Favorites(appID, userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": true, "message": "Failed to load ideas",
			})
		}
		return c.JSON(fiber.Map{"ideas": ideas})
	}

	ideas, err := h.roulette.History(appID, userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load ideas",
		})
	}
	return c.JSON(fiber.Map{"ideas": ideas})
}

// Favorite handles POST /zyro/ideas/:id/favorite
func (h *Handler) Favorite(c *fiber.Ctx) error {
	return h.setFavorite(c, true)
}

// Unfavorite handles DELETE /zyro/ideas/:id/favorite
func (h *Handler) Unfavorite(c *fiber.Ctx) error {
	return h.setFavorite(c, false)
}

func (h *Handler) setFavorite(c *fiber.Ctx, favorited bool) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}
	ideaID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid idea id",
		})
	}

	if err := h.roulette.Favorite(appID, userID, ideaID, favorited); err != nil {
		if errors.Is(err, ErrIdeaNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Idea not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to update idea",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// IdeaReport handles GET /zyro/ideas/:id/report
func (h *Handler) IdeaReport(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}
	ideaID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid idea id",
		})
	}

	report, err := h.roulette.ValidationReport(appID, userID, ideaID)
	if err != nil {
		if errors.Is(err, ErrIdeaNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Idea not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to build report",
		})
	}
	return c.JSON(report)
}

// QuizStart handles POST /zyro/quiz/start
func (h *Handler) QuizStart(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	var req struct {
		TemplateID string `json:"template_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	step, err := h.quiz.Start(appID, userID, req.TemplateID)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Quiz not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to start quiz",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(step)
}

// QuizAnswer handles POST /zyro/quiz/answer
func (h *Handler) QuizAnswer(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	var req struct {
		OptionIndex int `json:"option_index"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	step, err := h.quiz.Answer(appID, userID, req.OptionIndex)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoActiveQuiz):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "No active quiz session",
			})
		case errors.Is(err, ErrQuizNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Quiz not found",
			})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
	}
	return c.JSON(step)
}

// QuizCurrent handles GET /zyro/quiz/current
func (h *Handler) QuizCurrent(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	step, err := h.quiz.Current(appID, userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveQuiz) || errors.Is(err, ErrQuizNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "No active quiz session",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load quiz",
		})
	}
	return c.JSON(step)
}

// QuizHistory handles GET /zyro/quiz/history
func (h *Handler) QuizHistory(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	history, err := h.quiz.History(appID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load quiz history",
		})
	}
	return c.JSON(fiber.Map{"sessions": history})
}

// QuizTemplates handles GET /zyro/quiz/templates
func (h *Handler) QuizTemplates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": h.quiz.Templates()})
}

// Leaderboard handles GET /zyro/leaderboard
func (h *Handler) Leaderboard(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	metric := c.Query("metric", "total_points")
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	entries, err := h.leaderboard.Top(appID, metric, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load leaderboard",
		})
	}
	return c.JSON(fiber.Map{"entries": entries, "metric": metric})
}

// MyRank handles GET /zyro/leaderboard/me
func (h *Handler) MyRank(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	info, err := h.leaderboard.UserRank(appID, userID, c.Query("metric", "total_points"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load rank",
		})
	}
	return c.JSON(info)
}

// Rivals handles GET /zyro/leaderboard/rivals
func (h *Handler) Rivals(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	rivalRange, _ := strconv.Atoi(c.Query("range", "3"))
	rivals, err := h.leaderboard.NearbyRivals(appID, userID, c.Query("metric", "total_points"), rivalRange)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load rivals",
		})
	}
	return c.JSON(fiber.Map{"rivals": rivals})
}

// Report handles GET /zyro/leaderboard/report
func (h *Handler) Report(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	report, err := h.leaderboard.ProgressReport(appID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to build report",
		})
	}
	return c.JSON(report)
}

// CategoryLeaders handles GET /zyro/leaderboard/categories
func (h *Handler) CategoryLeaders(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	leaders, err := h.leaderboard.CategoryLeaders(appID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load category leaders",
		})
	}
	return c.JSON(fiber.Map{"leaders": leaders})
}

// BoardStats handles GET /zyro/leaderboard/stats
func (h *Handler) BoardStats(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	stats, err := h.leaderboard.Stats(appID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load leaderboard stats",
		})
	}
	return c.JSON(stats)
}

// ShareContent handles POST /zyro/share/content
func (h *Handler) ShareContent(c *fiber.Ctx) error {
	var req struct {
		ContentType string    `json:"content_type"`
		Platform    string    `json:"platform"`
		Data        ShareData `json:"data"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	content, err := h.sharing.GenerateContent(req.ContentType, req.Platform, req.Data)
	if err != nil {
		if errors.Is(err, ErrUnknownPlatform) || errors.Is(err, ErrUnknownContentType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to generate content",
		})
	}
	return c.JSON(content)
}

// Share handles POST /zyro/share
func (h *Handler) Share(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	var req struct {
		ContentType string `json:"content_type"`
		Platform    string `json:"platform"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	result, err := h.sharing.TrackShare(appID, userID, req.ContentType, req.Platform)
	if err != nil {
		if errors.Is(err, ErrUnknownPlatform) || errors.Is(err, ErrUnknownContentType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to track share",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Referral handles POST /zyro/referral
func (h *Handler) Referral(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	var req struct {
		ReferralCode string `json:"referral_code"`
		JoinedUserID string `json:"joined_user_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}
	if req.ReferralCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "referral_code is required",
		})
	}

	result, err := h.sharing.TrackReferral(appID, userID, req.ReferralCode, req.JoinedUserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to track referral",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// ShareHistory handles GET /zyro/share/history
func (h *Handler) ShareHistory(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	shares, err := h.sharing.History(appID, userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load history",
		})
	}
	return c.JSON(fiber.Map{"shares": shares})
}

// ShareStats handles GET /zyro/share/stats
func (h *Handler) ShareStats(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	stats, err := h.sharing.Statistics(appID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load statistics",
		})
	}
	return c.JSON(stats)
}

// TodayChallenge handles GET /zyro/challenges/today
func (h *Handler) TodayChallenge(c *fiber.Ctx) error {
	_, userID, err := h.ids(c)
	if err != nil {
		return err
	}
	return c.JSON(h.scoring.TodayChallenge(userID))
}

// CompleteChallenge handles POST /zyro/challenges/:id/complete
func (h *Handler) CompleteChallenge(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	h.scoring.SetDisplayName(appID, userID, tenant.GetDisplayName(c))
	result, err := h.scoring.CompleteChallenge(appID, userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Challenge not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to complete challenge",
		})
	}
	return c.JSON(result)
}

// Bingo handles GET /zyro/bingo
func (h *Handler) Bingo(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	board, err := h.bingo.Board(appID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load board",
		})
	}
	return c.JSON(board)
}

// BingoComplete handles POST /zyro/bingo/:index
func (h *Handler) BingoComplete(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid task index",
		})
	}

	result, err := h.bingo.CompleteTask(appID, userID, index)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to complete task",
		})
	}
	return c.JSON(result)
}

// MadlibTemplates handles GET /zyro/madlibs/templates
func (h *Handler) MadlibTemplates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": h.madlibs.Templates()})
}

// MadlibStart handles POST /zyro/madlibs/start
func (h *Handler) MadlibStart(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	var req struct {
		TemplateID string `json:"template_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	session, err := h.madlibs.Start(appID, userID, req.TemplateID)
	if err != nil {
		if errors.Is(err, ErrMadlibNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Template not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to start madlib",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// MadlibFill handles POST /zyro/madlibs/fill — either one blank by index or
// all blanks at once.
func (h *Handler) MadlibFill(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	var req struct {
		BlankIndex *int     `json:"blank_index"`
		Value      string   `json:"value"`
		Values     []string `json:"values"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	var session *MadlibSession
	if len(req.Values) > 0 {
		session, err = h.madlibs.FillAll(appID, userID, req.Values)
	} else if req.BlankIndex != nil {
		session, err = h.madlibs.Fill(appID, userID, *req.BlankIndex, req.Value)
	} else {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "blank_index or values is required",
		})
	}
	if err != nil {
		if errors.Is(err, ErrNoActiveMadlib) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "No active madlib",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(session)
}

// MadlibAutoFill handles POST /zyro/madlibs/autofill
func (h *Handler) MadlibAutoFill(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	session, err := h.madlibs.AutoFill(appID, userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveMadlib) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "No active madlib",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to auto-fill",
		})
	}
	return c.JSON(session)
}

// MadlibComplete handles POST /zyro/madlibs/complete
func (h *Handler) MadlibComplete(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	result, err := h.madlibs.Complete(appID, userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveMadlib) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "No active madlib",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to complete madlib",
		})
	}
	return c.JSON(result)
}

// MadlibCurrent handles GET /zyro/madlibs/current
func (h *Handler) MadlibCurrent(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	progress, err := h.madlibs.Progress(appID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load madlib",
		})
	}
	return c.JSON(progress)
}

// MadlibHistory handles GET /zyro/madlibs/history
func (h *Handler) MadlibHistory(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	history, err := h.madlibs.History(appID, userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load history",
		})
	}
	return c.JSON(fiber.Map{"madlibs": history})
}

// MadlibStatistics handles GET /zyro/madlibs/stats
func (h *Handler) MadlibStatistics(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	stats, err := h.madlibs.Statistics(appID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load statistics",
		})
	}
	return c.JSON(stats)
}

// Stats handles GET /zyro/stats
func (h *Handler) Stats(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	stats, err := h.scoring.Stats(appID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load stats",
		})
	}
	spinStats, err := h.roulette.Statistics(appID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load stats",
		})
	}
	return c.JSON(fiber.Map{"progress": stats, "roulette": spinStats})
}

// Sync handles POST /zyro/sync/:target
func (h *Handler) Sync(c *fiber.Ctx) error {
	appID, userID, err := h.ids(c)
	if err != nil {
		return err
	}

	target := c.Params("target")
	if target == "all" {
		results, err := h.sync.SyncAll(appID, userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": true, "message": "Sync failed",
			})
		}
		return c.JSON(fiber.Map{"results": results})
	}

	result, err := h.sync.SyncWithApp(appID, userID, target)
	if err != nil {
		if errors.Is(err, ErrUnknownSyncTarget) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "Unknown sync target",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Sync failed",
		})
	}
	return c.JSON(result)
}

// ResetProgress handles POST /zyro/admin/reset/:userId (admin only)
func (h *Handler) ResetProgress(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID := c.Params("userId")

	if err := h.scoring.ResetProgress(appID, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to reset progress",
		})
	}
	if err := h.bingo.Reset(appID, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to reset board",
		})
	}
	if err := h.roulette.ClearHistory(appID, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to clear history",
		})
	}
	if err := h.madlibs.ClearHistory(appID, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to clear madlibs",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// AwardEvent handles POST /zyro/award/:userId (admin only). This is the
// ingestion path for events produced outside ZYRO, like the ZYRA lead funnel
// reporting opened_message or requested_info.
func (h *Handler) AwardEvent(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID := c.Params("userId")

	var req struct {
		Event string `json:"event"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}
	if _, ok := pointsPerAction[req.Event]; !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Unknown event",
		})
	}

	stats, points, err := h.scoring.Award(appID, userID, req.Event)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to award event",
		})
	}
	return c.JSON(fiber.Map{"points": points, "total_points": stats.TotalPoints})
}

// ResetLeaderboard handles POST /zyro/admin/leaderboard/reset (admin only)
func (h *Handler) ResetLeaderboard(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	if err := h.leaderboard.Reset(appID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to reset leaderboard",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
