package zyro

import (
	"testing"

	"github.com/zero2billionaires/z2b-backend/internal/kvstore"
)

func newTestBingo(t *testing.T) (*BingoService, *ProgressService) {
	t.Helper()
	store := kvstore.NewMemory()
	scoring := NewProgressService(store)
	return NewBingoService(store, scoring), scoring
}

func TestFreshBoardHasFreeSpace(t *testing.T) {
	svc, _ := newTestBingo(t)

	board, err := svc.Board("app1", "u1")
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(board.Cells) != 25 {
		t.Fatalf("cells = %d, want 25", len(board.Cells))
	}
	if !board.Cells[bingoFreeSpaceIndex].Completed {
		t.Error("free space should start completed")
	}
	if board.CompletedCount != 1 {
		t.Errorf("completed count = %d, want 1", board.CompletedCount)
	}
	if board.Progress != 4 {
		t.Errorf("progress = %d, want 4 (1/25)", board.Progress)
	}
}

func TestCompleteTaskRejections(t *testing.T) {
	svc, _ := newTestBingo(t)

	tests := []struct {
		name  string
		index int
	}{
		{"negative index", -1},
		{"out of range", 25},
		{"free space", bingoFreeSpaceIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.CompleteTask("app1", "u1", tt.index)
			if err != nil {
				t.Fatalf("CompleteTask: %v", err)
			}
			if result.Success {
				t.Error("expected rejection")
			}
		})
	}
}

func TestCompleteTaskIdempotent(t *testing.T) {
	svc, _ := newTestBingo(t)

	first, err := svc.CompleteTask("app1", "u1", 0)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if !first.Success {
		t.Fatalf("first completion rejected: %s", first.Message)
	}

	second, err := svc.CompleteTask("app1", "u1", 0)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if second.Success {
		t.Error("second completion should be rejected")
	}
}

func TestRowCompletionAwardsLineAndPrize(t *testing.T) {
	svc, scoring := newTestBingo(t)

	var last *BingoCompleteResult
	for i := 0; i < 5; i++ {
		result, err := svc.CompleteTask("app1", "u1", i)
		if err != nil {
			t.Fatalf("CompleteTask %d: %v", i, err)
		}
		if !result.Success {
			t.Fatalf("task %d rejected: %s", i, result.Message)
		}
		last = result
	}

	if len(last.NewLines) != 1 || last.NewLines[0] != "row-0" {
		t.Errorf("new lines = %v, want [row-0]", last.NewLines)
	}
	if len(last.NewPrizes) != 1 || last.NewPrizes[0] != "one_line" {
		t.Errorf("new prizes = %v, want [one_line]", last.NewPrizes)
	}
	if last.PrizePoints != bingoPrizes["one_line"].Points {
		t.Errorf("prize points = %d, want %d", last.PrizePoints, bingoPrizes["one_line"].Points)
	}

	stats, _ := scoring.Stats("app1", "u1")
	if !stats.HasBadge("bingo_line") {
		t.Error("bingo_line badge not granted")
	}
	if stats.BingoProgress != 24 {
		t.Errorf("BingoProgress = %d, want 24 (6/25)", stats.BingoProgress)
	}
}

func TestPrizesAwardOnce(t *testing.T) {
	svc, _ := newTestBingo(t)

	// Complete row 0, then row 1. With the free space, row 2 would need
	// careful counting, so two clean rows keep the line math obvious.
	for i := 0; i < 5; i++ {
		if _, err := svc.CompleteTask("app1", "u1", i); err != nil {
			t.Fatalf("CompleteTask: %v", err)
		}
	}
	var last *BingoCompleteResult
	for i := 5; i < 10; i++ {
		result, err := svc.CompleteTask("app1", "u1", i)
		if err != nil {
			t.Fatalf("CompleteTask: %v", err)
		}
		last = result
	}

	if len(last.NewPrizes) != 1 || last.NewPrizes[0] != "two_lines" {
		t.Errorf("new prizes = %v, want [two_lines] only", last.NewPrizes)
	}

	board, _ := svc.Board("app1", "u1")
	count := map[string]int{}
	for _, p := range board.AwardedPrizes {
		count[p]++
	}
	for prize, n := range count {
		if n != 1 {
			t.Errorf("prize %s awarded %d times", prize, n)
		}
	}
}

func TestBlackout(t *testing.T) {
	svc, scoring := newTestBingo(t)

	var last *BingoCompleteResult
	for i := 0; i < 25; i++ {
		if i == bingoFreeSpaceIndex {
			continue
		}
		result, err := svc.CompleteTask("app1", "u1", i)
		if err != nil {
			t.Fatalf("CompleteTask %d: %v", i, err)
		}
		if !result.Success {
			t.Fatalf("task %d rejected: %s", i, result.Message)
		}
		last = result
	}

	if last.Progress != 100 {
		t.Errorf("progress = %d, want 100", last.Progress)
	}
	if !containsString(last.NewPrizes, "blackout") {
		t.Errorf("final prizes = %v, want blackout", last.NewPrizes)
	}

	board, _ := svc.Board("app1", "u1")
	if len(board.Lines) != 12 {
		t.Errorf("lines = %d, want 12 (5 rows + 5 cols + 2 diagonals)", len(board.Lines))
	}
	for _, prize := range []string{"one_line", "two_lines", "full_bingo", "blackout"} {
		if !containsString(board.AwardedPrizes, prize) {
			t.Errorf("prize %s never awarded", prize)
		}
	}

	stats, _ := scoring.Stats("app1", "u1")
	if !stats.HasBadge("bingo_master") || !stats.HasBadge("bingo_legend") {
		t.Errorf("badges = %v", stats.Badges)
	}
	if stats.BingoProgress != 100 {
		t.Errorf("BingoProgress = %d, want 100", stats.BingoProgress)
	}
}

func TestCompletedLinesDiagonals(t *testing.T) {
	cells := make([]bool, 25)
	for i := 0; i < 5; i++ {
		cells[i*5+i] = true
	}
	lines := completedLines(cells)
	if len(lines) != 1 || lines[0] != "diag-main" {
		t.Errorf("lines = %v, want [diag-main]", lines)
	}

	cells = make([]bool, 25)
	for i := 0; i < 5; i++ {
		cells[i*5+(4-i)] = true
	}
	lines = completedLines(cells)
	if len(lines) != 1 || lines[0] != "diag-anti" {
		t.Errorf("lines = %v, want [diag-anti]", lines)
	}
}
