package search

import "github.com/mcoot/connectfour/internal/model"

// Heuristic weights
const (
	// CenterWeight is awarded per own token in each vertical window of the middle column
	CenterWeight = 3

	// WindowWinScore dominates every positional term combined
	WindowWinScore  = 100000
	ThreeOpenScore  = 10
	TwoOpenScore    = 5
	OppThreePenalty = 80
	OppTwoPenalty   = 50
)

// Evaluate scores the position from player's point of view.
// The score sums every window in all four directions plus the center column bonus.
func Evaluate(board *model.Board, player model.Cell) int {
	score := centerBonus(board, player)
	board.ForEachWindow(func(w model.Window, _, _ int, _ model.Direction) {
		score += scoreWindow(w, player)
	})
	return score
}

func centerBonus(board *model.Board, player model.Cell) int {
	center := board.Cols() / 2
	score := 0
	for start := 0; start+model.WinLength <= board.Rows(); start++ {
		count := 0
		for row := start; row < start+model.WinLength; row++ {
			if board.Get(row, center) == player {
				count++
			}
		}
		score += CenterWeight * count
	}
	return score
}

func scoreWindow(w model.Window, player model.Cell) int {
	opponent := player.Opponent()
	own, opp, empty := 0, 0, 0
	for _, c := range w {
		switch c {
		case player:
			own++
		case opponent:
			opp++
		default:
			empty++
		}
	}

	score := 0
	switch {
	case own == 4:
		score += WindowWinScore
	case own == 3 && empty == 1:
		score += ThreeOpenScore
	case own == 2 && empty == 2:
		score += TwoOpenScore
	}

	switch {
	case opp == 4:
		score -= WindowWinScore
	case opp == 3 && empty == 1:
		score -= OppThreePenalty
	case opp == 2 && empty == 2:
		score -= OppTwoPenalty
	}
	return score
}
