package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/connectfour/internal/dependencies/random"
	"github.com/mcoot/connectfour/internal/model"
)

const (
	// WinScore is the base terminal score. Remaining depth is added so shallower wins rank higher.
	WinScore = 1000000
	// Infinity bounds the alpha-beta window and exceeds any reachable score
	Infinity = math.MaxInt32
)

// TieBreak controls how equally scored root moves are resolved
type TieBreak string

const (
	// TieBreakRandom picks uniformly among all best columns using the injected random source
	TieBreakRandom TieBreak = "random"
	// TieBreakLeftmost always picks the lowest column index
	TieBreakLeftmost TieBreak = "leftmost"
)

// ParseTieBreak validates a tie-break policy name
func ParseTieBreak(s string) (TieBreak, error) {
	switch t := TieBreak(s); t {
	case TieBreakRandom, TieBreakLeftmost:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tie-break policy %q", s)
	}
}

// Config holds engine behaviour settings
type Config struct {
	TieBreak TieBreak
	// Parallel searches each root move on its own board copy
	Parallel bool
	// MaxWorkers limits parallel root searches (0 means one per legal column)
	MaxWorkers int
}

// DefaultConfig returns the sequential, randomized tie-break configuration
func DefaultConfig() Config {
	return Config{
		TieBreak: TieBreakRandom,
	}
}

// ColumnScore is the exact minimax value of dropping in a column at the root
type ColumnScore struct {
	Col   int `json:"col"`
	Score int `json:"score"`
}

// Result is the outcome of a root search
type Result struct {
	Move   model.Move    `json:"move"`
	Score  int           `json:"score"`
	Tied   []int         `json:"tied"`
	Scores []ColumnScore `json:"scores"`
	Nodes  int64         `json:"nodes"`
}

// Engine selects moves with depth-limited minimax and alpha-beta pruning.
// It holds no per-search state and may be shared.
type Engine struct {
	cfg    Config
	random random.Random
	logger *slog.Logger
}

// New creates a new Engine
func New(cfg Config, rnd random.Random, logger *slog.Logger) *Engine {
	if cfg.TieBreak == "" {
		cfg.TieBreak = TieBreakRandom
	}
	return &Engine{
		cfg:    cfg,
		random: rnd,
		logger: logger.With(slog.String("component", "search-engine")),
	}
}

// Search returns the alpha-beta minimax value of the position for player.
// The board is used as scratch space and is restored before returning.
func (e *Engine) Search(board *model.Board, player model.Cell, depth int, maximizing bool, alpha, beta int) int {
	s := &searcher{board: board, player: player}
	return s.minimax(depth, maximizing, alpha, beta)
}

// BestMove picks the column for player to drop in, searching depth plies including the move itself.
// The board is left unchanged.
func (e *Engine) BestMove(ctx context.Context, board *model.Board, player model.Cell, depth int) (Result, error) {
	scores, nodes, err := e.ScoreMoves(ctx, board, player, depth)
	if err != nil {
		return Result{}, err
	}

	best := -Infinity
	var tied []int
	for _, cs := range scores {
		switch {
		case cs.Score > best:
			best = cs.Score
			tied = []int{cs.Col}
		case cs.Score == best:
			tied = append(tied, cs.Col)
		}
	}

	col := tied[0]
	if e.cfg.TieBreak == TieBreakRandom && len(tied) > 1 {
		col = tied[e.random.Intn(len(tied))]
	}

	e.logger.Debug("best move selected",
		slog.Int("col", col),
		slog.Int("score", best),
		slog.Int("tied", len(tied)),
		slog.Int("depth", depth),
		slog.Int64("nodes", nodes),
	)

	return Result{
		Move:   model.Move{Row: board.Height(col), Col: col, Player: player},
		Score:  best,
		Tied:   tied,
		Scores: scores,
		Nodes:  nodes,
	}, nil
}

// ScoreMoves returns the exact value of every legal root move, left to right.
// Each root move is searched with a full window so tied scores are genuine ties.
func (e *Engine) ScoreMoves(ctx context.Context, board *model.Board, player model.Cell, depth int) ([]ColumnScore, int64, error) {
	if depth < 1 {
		return nil, 0, fmt.Errorf("%w: got %d", model.ErrInvalidDepth, depth)
	}
	if !player.IsPlayer() {
		return nil, 0, fmt.Errorf("%w: %d", model.ErrInvalidPlayer, player)
	}
	legal := board.LegalColumns()
	if len(legal) == 0 {
		return nil, 0, model.ErrNoLegalMove
	}

	if e.cfg.Parallel {
		return e.scoreParallel(ctx, board, player, depth, legal)
	}

	s := &searcher{board: board, player: player}
	scores := make([]ColumnScore, 0, len(legal))
	for _, col := range legal {
		if err := ctx.Err(); err != nil {
			return nil, s.nodes, err
		}
		score, _ := s.child(col, player, depth-1, false, -Infinity, Infinity)
		scores = append(scores, ColumnScore{Col: col, Score: score})
	}
	return scores, s.nodes, nil
}

func (e *Engine) scoreParallel(ctx context.Context, board *model.Board, player model.Cell, depth int, legal []int) ([]ColumnScore, int64, error) {
	scores := make([]ColumnScore, len(legal))
	nodes := make([]int64, len(legal))

	g, ctx := errgroup.WithContext(ctx)
	if e.cfg.MaxWorkers > 0 {
		g.SetLimit(e.cfg.MaxWorkers)
	}
	for i, col := range legal {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := &searcher{board: board.Clone(), player: player}
			score, _ := s.child(col, player, depth-1, false, -Infinity, Infinity)
			scores[i] = ColumnScore{Col: col, Score: score}
			nodes[i] = s.nodes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var total int64
	for _, n := range nodes {
		total += n
	}
	return scores, total, nil
}

// searcher carries the scratch board and counters of one search
type searcher struct {
	board  *model.Board
	player model.Cell
	nodes  int64
}

func (s *searcher) minimax(depth int, maximizing bool, alpha, beta int) int {
	s.nodes++

	outcome := s.board.CheckOutcome()
	if depth == 0 || outcome.IsTerminal() {
		return s.leafScore(outcome, depth)
	}

	if maximizing {
		best := -Infinity
		for col := 0; col < s.board.Cols(); col++ {
			score, ok := s.child(col, s.player, depth-1, false, alpha, beta)
			if !ok {
				continue
			}
			best = max(best, score)
			alpha = max(alpha, best)
			if alpha >= beta {
				break
			}
		}
		return best
	}

	best := Infinity
	for col := 0; col < s.board.Cols(); col++ {
		score, ok := s.child(col, s.player.Opponent(), depth-1, true, alpha, beta)
		if !ok {
			continue
		}
		best = min(best, score)
		beta = min(beta, best)
		if alpha >= beta {
			break
		}
	}
	return best
}

// child plays col for mover, searches the resulting position and undoes the move.
// Returns false if the column is full.
func (s *searcher) child(col int, mover model.Cell, depth int, maximizing bool, alpha, beta int) (int, bool) {
	if _, err := s.board.Drop(col, mover); err != nil {
		return 0, false
	}
	defer func() { _, _ = s.board.UndoTop(col) }()
	return s.minimax(depth, maximizing, alpha, beta), true
}

func (s *searcher) leafScore(outcome model.Outcome, depth int) int {
	if outcome.Status == model.OutcomeWin {
		if outcome.Winner == s.player {
			return WinScore + depth
		}
		return -WinScore - depth
	}
	return Evaluate(s.board, s.player)
}
