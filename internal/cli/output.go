package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/search"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errW, string(data))
	} else {
		fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameView:
		o.printGameView(v)
	case MoveView:
		o.printMoveView(v)
	case BestMoveResult:
		o.printBestMove(v)
	case EvalResult:
		o.printEval(v)
	case SelfPlayResult:
		o.printSelfPlay(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Columns and rows are 1-based in all CLI output, rows counted from the bottom.

// GameView is the displayed form of a game session
type GameView struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	State    string    `json:"state"`
	ToMove   string    `json:"to_move"`
	Winner   string    `json:"winner,omitempty"`
	Moves    int       `json:"moves"`
	LastMove *MoveView `json:"last_move,omitempty"`
	Strategy string    `json:"strategy,omitempty"`
	Depth    int       `json:"depth,omitempty"`
	Board    []string  `json:"board"`
}

// MoveView is a single dropped token
type MoveView struct {
	Player string `json:"player"`
	Column int    `json:"column"`
	Row    int    `json:"row"`
}

// ColumnScoreView is the search value of one root column
type ColumnScoreView struct {
	Column int `json:"column"`
	Score  int `json:"score"`
}

// BestMoveResult is the output of the bestmove command
type BestMoveResult struct {
	Player string            `json:"player"`
	Depth  int               `json:"depth"`
	Column int               `json:"column"`
	Score  int               `json:"score"`
	Tied   []int             `json:"tied"`
	Scores []ColumnScoreView `json:"scores"`
	Nodes  int64             `json:"nodes"`
}

// EvalResult is the output of the eval command
type EvalResult struct {
	Player  string `json:"player"`
	Score   int    `json:"score"`
	Outcome string `json:"outcome"`
}

// SelfPlayResult is the output of the selfplay command
type SelfPlayResult struct {
	GameID  string     `json:"game_id"`
	Moves   []MoveView `json:"moves"`
	Outcome string     `json:"outcome"`
	Board   []string   `json:"board"`
}

func newGameView(g *model.Game) GameView {
	v := GameView{
		ID:     string(g.ID),
		Type:   string(g.Type),
		State:  string(g.State),
		ToMove: playerLabel(g.ToMove),
		Moves:  g.MoveCount,
		Board:  boardRows(g.Board),
	}
	if g.State == model.GameStateWon {
		v.Winner = playerLabel(g.Winner)
	}
	if g.LastMove != nil {
		mv := newMoveView(*g.LastMove)
		v.LastMove = &mv
	}
	if g.Type != model.GameTypePlayerVsPlayer {
		v.Strategy = model.BotStrategyDisplayName(g.BotStrategy)
		v.Depth = g.Depth
	}
	return v
}

func newMoveView(m model.Move) MoveView {
	return MoveView{
		Player: playerLabel(m.Player),
		Column: m.Col + 1,
		Row:    m.Row + 1,
	}
}

func newBestMoveResult(r search.Result, depth int) BestMoveResult {
	tied := make([]int, len(r.Tied))
	for i, col := range r.Tied {
		tied[i] = col + 1
	}
	scores := make([]ColumnScoreView, len(r.Scores))
	for i, cs := range r.Scores {
		scores[i] = ColumnScoreView{Column: cs.Col + 1, Score: cs.Score}
	}
	return BestMoveResult{
		Player: playerLabel(r.Move.Player),
		Depth:  depth,
		Column: r.Move.Col + 1,
		Score:  r.Score,
		Tied:   tied,
		Scores: scores,
		Nodes:  r.Nodes,
	}
}

func playerLabel(p model.Cell) string {
	if !p.IsPlayer() {
		return ""
	}
	return fmt.Sprintf("%s (%c)", p, p.Symbol())
}

func outcomeLabel(o model.Outcome) string {
	switch o.Status {
	case model.OutcomeWin:
		return "Player " + playerLabel(o.Winner) + " wins"
	case model.OutcomeDraw:
		return "Draw"
	default:
		return "In progress"
	}
}

func boardRows(b *model.Board) []string {
	return strings.Split(b.String(), "\n")
}

func (o *Output) printGameView(g GameView) {
	fmt.Fprintf(o.w, "Game: %s (%s)\n", g.ID, g.Type)
	if g.Strategy != "" {
		fmt.Fprintf(o.w, "Computer: %s (depth %d)\n", g.Strategy, g.Depth)
	}
	fmt.Fprintf(o.w, "Moves: %d\n", g.Moves)
	if g.LastMove != nil {
		fmt.Fprintf(o.w, "Last Move: %s in column %d\n", g.LastMove.Player, g.LastMove.Column)
	}
	fmt.Fprintln(o.w)
	o.printBoard(g.Board)
	fmt.Fprintln(o.w)

	switch g.State {
	case string(model.GameStateWon):
		fmt.Fprintf(o.w, "Player %s wins!\n", g.Winner)
	case string(model.GameStateDrawn):
		fmt.Fprintln(o.w, "Draw!")
	default:
		fmt.Fprintf(o.w, "To Move: %s\n", g.ToMove)
	}
}

func (o *Output) printBoard(rows []string) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return
	}

	cols := len(rows[0])

	// Print column headers
	fmt.Fprint(o.w, " ")
	for col := 1; col <= cols; col++ {
		fmt.Fprintf(o.w, "%2d ", col)
	}
	fmt.Fprintln(o.w)

	// Print rows, top first
	for _, row := range rows {
		fmt.Fprint(o.w, "|")
		for i := 0; i < len(row); i++ {
			fmt.Fprintf(o.w, " %c ", row[i])
		}
		fmt.Fprintln(o.w, "|")
	}

	// Print bottom border
	fmt.Fprint(o.w, "+")
	fmt.Fprint(o.w, strings.Repeat("---", cols))
	fmt.Fprintln(o.w, "+")
}

func (o *Output) printMoveView(m MoveView) {
	fmt.Fprintf(o.w, "Computer %s plays column %d\n", m.Player, m.Column)
}

func (o *Output) printBestMove(r BestMoveResult) {
	fmt.Fprintf(o.w, "Best column for %s: %d\n", r.Player, r.Column)
	fmt.Fprintf(o.w, "Score: %d (depth %d)\n", r.Score, r.Depth)
	if len(r.Tied) > 1 {
		tied := make([]string, len(r.Tied))
		for i, col := range r.Tied {
			tied[i] = fmt.Sprint(col)
		}
		fmt.Fprintf(o.w, "Tied: %s\n", strings.Join(tied, ", "))
	}
	fmt.Fprintln(o.w, "Scores:")
	for _, cs := range r.Scores {
		fmt.Fprintf(o.w, "  %d: %d\n", cs.Column, cs.Score)
	}
	fmt.Fprintf(o.w, "Nodes: %d\n", r.Nodes)
}

func (o *Output) printEval(e EvalResult) {
	fmt.Fprintf(o.w, "Score for %s: %d\n", e.Player, e.Score)
	fmt.Fprintf(o.w, "Outcome: %s\n", e.Outcome)
}

func (o *Output) printSelfPlay(r SelfPlayResult) {
	fmt.Fprintf(o.w, "Game: %s\n", r.GameID)
	cols := make([]string, len(r.Moves))
	for i, m := range r.Moves {
		cols[i] = fmt.Sprint(m.Column)
	}
	fmt.Fprintf(o.w, "Moves (%d): %s\n", len(r.Moves), strings.Join(cols, " "))
	fmt.Fprintln(o.w)
	o.printBoard(r.Board)
	fmt.Fprintln(o.w)
	fmt.Fprintf(o.w, "Result: %s\n", r.Outcome)
}
