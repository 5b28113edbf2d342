package zyro

import (
	"fmt"
	"math"
	"time"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

func bingoKey(userID string) string { return "zyro_bingo_" + userID }

// BingoService runs the 5x5 side-gig board. The center square is a free
// space, pre-completed on every fresh board.
type BingoService struct {
	store   kvstore.Store
	scoring *ProgressService
	now     func() time.Time
}

func NewBingoService(store kvstore.Store, scoring *ProgressService) *BingoService {
	return &BingoService{store: store, scoring: scoring, now: time.Now}
}

func (s *BingoService) loadBoard(appID, userID string) (*BingoBoard, error) {
	var board BingoBoard
	found, err := s.store.Get(appID, bingoKey(userID), &board)
	if err != nil {
		return nil, err
	}
	if !found || len(board.Completed) != len(bingoTasks) {
		board = BingoBoard{
			Completed: make([]bool, len(bingoTasks)),
			StartedAt: s.now().UTC(),
		}
		board.Completed[bingoFreeSpaceIndex] = true
	}
	return &board, nil
}

// BingoCell pairs a task with its completion state.
type BingoCell struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	Points    int    `json:"points"`
	Icon      string `json:"icon"`
	FreeSpace bool   `json:"free_space,omitempty"`
	Completed bool   `json:"completed"`
}

// BingoView is the board as the client sees it.
type BingoView struct {
	Cells          []BingoCell `json:"cells"`
	CompletedCount int         `json:"completed_count"`
	Lines          []string    `json:"lines"`
	Progress       int         `json:"progress"`
	AwardedPrizes  []string    `json:"awarded_prizes"`
}

// Board returns the full board with tasks and state.
func (s *BingoService) Board(appID, userID string) (*BingoView, error) {
	board, err := s.loadBoard(appID, userID)
	if err != nil {
		return nil, err
	}
	return s.view(board), nil
}

func (s *BingoService) view(board *BingoBoard) *BingoView {
	view := &BingoView{
		Cells:         make([]BingoCell, len(bingoTasks)),
		Lines:         completedLines(board.Completed),
		AwardedPrizes: board.AwardedPrizes,
	}
	for i, task := range bingoTasks {
		view.Cells[i] = BingoCell{
			Index:     i,
			Text:      task.Text,
			Points:    task.Points,
			Icon:      task.Icon,
			FreeSpace: i == bingoFreeSpaceIndex,
			Completed: board.Completed[i],
		}
		if board.Completed[i] {
			view.CompletedCount++
		}
	}
	view.Progress = progressPercent(view.CompletedCount)
	if view.AwardedPrizes == nil {
		view.AwardedPrizes = []string{}
	}
	return view
}

func progressPercent(completed int) int {
	return int(math.Round(float64(completed) / float64(len(bingoTasks)) * 100))
}

// completedLines names every fully completed row, column, and diagonal.
func completedLines(cells []bool) []string {
	lines := []string{}
	for row := 0; row < 5; row++ {
		full := true
		for col := 0; col < 5; col++ {
			if !cells[row*5+col] {
				full = false
				break
			}
		}
		if full {
			lines = append(lines, fmt.Sprintf("row-%d", row))
		}
	}
	for col := 0; col < 5; col++ {
		full := true
		for row := 0; row < 5; row++ {
			if !cells[row*5+col] {
				full = false
				break
			}
		}
		if full {
			lines = append(lines, fmt.Sprintf("col-%d", col))
		}
	}
	diag := true
	for i := 0; i < 5; i++ {
		if !cells[i*5+i] {
			diag = false
			break
		}
	}
	if diag {
		lines = append(lines, "diag-main")
	}
	diag = true
	for i := 0; i < 5; i++ {
		if !cells[i*5+(4-i)] {
			diag = false
			break
		}
	}
	if diag {
		lines = append(lines, "diag-anti")
	}
	return lines
}

// BingoCompleteResult is the outcome of completing a task. Rejections
// (out-of-range index, free space, already done) come back with Success
// false rather than an error.
type BingoCompleteResult struct {
	Success     bool       `json:"success"`
	Message     string     `json:"message"`
	TaskPoints  int        `json:"task_points,omitempty"`
	PrizePoints int        `json:"prize_points,omitempty"`
	NewLines    []string   `json:"new_lines,omitempty"`
	NewPrizes   []string   `json:"new_prizes,omitempty"`
	Progress    int        `json:"progress"`
	Board       *BingoView `json:"board,omitempty"`
}

// CompleteTask marks a cell done, awards its points, and checks lines and
// prizes. Each prize pays out at most once per board.
func (s *BingoService) CompleteTask(appID, userID string, index int) (*BingoCompleteResult, error) {
	board, err := s.loadBoard(appID, userID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(bingoTasks) {
		return &BingoCompleteResult{Success: false, Message: "Task not found"}, nil
	}
	if index == bingoFreeSpaceIndex {
		return &BingoCompleteResult{Success: false, Message: "Free space is already complete!"}, nil
	}
	if board.Completed[index] {
		return &BingoCompleteResult{Success: false, Message: "Task already completed!"}, nil
	}

	board.Completed[index] = true
	board.UpdatedAt = s.now().UTC()

	lines := completedLines(board.Completed)
	newLines := diffStrings(lines, board.CompletedLine)
	board.CompletedLine = lines

	completedCount := 0
	for _, done := range board.Completed {
		if done {
			completedCount++
		}
	}
	progress := progressPercent(completedCount)

	// Prize milestones, each at most once per board.
	var newPrizes []string
	prizePoints := 0
	award := func(key string, reached bool) {
		if !reached || containsString(board.AwardedPrizes, key) {
			return
		}
		prize := bingoPrizes[key]
		board.AwardedPrizes = append(board.AwardedPrizes, key)
		newPrizes = append(newPrizes, key)
		prizePoints += prize.Points
	}
	award("one_line", len(lines) >= 1)
	award("two_lines", len(lines) >= 2)
	award("full_bingo", len(lines) >= 12)
	award("blackout", completedCount == len(bingoTasks))

	if err := s.store.Set(appID, bingoKey(userID), board); err != nil {
		return nil, err
	}

	taskPoints := bingoTasks[index].Points
	_, err = s.scoring.Mutate(appID, userID, func(st *UserStat) {
		st.TotalPoints += taskPoints + prizePoints
		st.BingoProgress = progress
		for _, key := range newPrizes {
			if badge := bingoPrizes[key].Badge; badge != "" {
				s.scoring.grantBadge(st, badge)
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return &BingoCompleteResult{
		Success:     true,
		Message:     completionMessage(newLines, completedCount),
		TaskPoints:  taskPoints,
		PrizePoints: prizePoints,
		NewLines:    newLines,
		NewPrizes:   newPrizes,
		Progress:    progress,
		Board:       s.view(board),
	}, nil
}

func completionMessage(newLines []string, completedCount int) string {
	switch {
	case completedCount == len(bingoTasks):
		return "🎉 BLACKOUT! You completed the ENTIRE board! Legendary!"
	case len(newLines) > 0:
		return fmt.Sprintf("🎯 BINGO! You completed %d new line(s)!", len(newLines))
	default:
		return "✅ Task completed! Keep going!"
	}
}

// Reset clears the board. Admin only.
func (s *BingoService) Reset(appID, userID string) error {
	return s.store.Delete(appID, bingoKey(userID))
}

func diffStrings(current, previous []string) []string {
	var out []string
	for _, c := range current {
		if !containsString(previous, c) {
			out = append(out, c)
		}
	}
	return out
}

func containsString(list []string, item string) bool {
	for _, s := range list {
		if s == item {
			return true
		}
	}
	return false
}
