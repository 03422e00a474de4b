package model

import "fmt"

// OutcomeStatus is the terminal classification of a position
type OutcomeStatus string

const (
	OutcomeOngoing OutcomeStatus = "ongoing"
	OutcomeWin     OutcomeStatus = "win"
	OutcomeDraw    OutcomeStatus = "draw"
)

// Outcome is the result of checking a board. Winner is only set for OutcomeWin.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Winner Cell          `json:"winner,omitempty"`
}

// Ongoing returns the outcome of a position with play remaining
func Ongoing() Outcome { return Outcome{Status: OutcomeOngoing} }

// Draw returns the outcome of a full board with no four in a row
func Draw() Outcome { return Outcome{Status: OutcomeDraw} }

// WinFor returns a win for the given player
func WinFor(player Cell) Outcome { return Outcome{Status: OutcomeWin, Winner: player} }

// IsTerminal returns true for wins and draws
func (o Outcome) IsTerminal() bool {
	return o.Status != OutcomeOngoing
}

func (o Outcome) String() string {
	if o.Status == OutcomeWin {
		return fmt.Sprintf("win(%s)", o.Winner)
	}
	return string(o.Status)
}
