package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
)

func newPlayCmd() *cobra.Command {
	var (
		mode       string
		humanPlays string
		gameID     string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play an interactive game",
		Long: `Play an interactive game on stdin/stdout.

Enter a column number to drop a token, "n" to start a new game or "q" to quit.
With --game an existing session is resumed (requires redis storage).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			ctrl := app.GameController

			g, err := openGame(ctx, ctrl, gameID, mode, humanPlays)
			if err != nil {
				return err
			}

			s := &playSession{ctrl: ctrl, out: out, id: g.ID}
			return s.run(ctx, bufio.NewScanner(cmd.InOrStdin()))
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(model.GameTypePlayerVsAI), "Game type: pvai, pvp, aivai")
	cmd.Flags().StringVar(&humanPlays, "human-plays", "A", "Side played by the human in pvai: A moves first, B second")
	cmd.Flags().StringVar(&gameID, "game", "", "Resume an existing game by ID")

	return cmd
}

func openGame(ctx context.Context, ctrl *game.Controller, gameID, mode, humanPlays string) (*model.Game, error) {
	if gameID != "" {
		return ctrl.GetGame(ctx, model.GameID(gameID))
	}

	gameType, err := model.ParseGameType(mode)
	if err != nil {
		return nil, err
	}
	human, err := model.ParsePlayer(humanPlays)
	if err != nil {
		return nil, err
	}
	return ctrl.CreateGame(ctx, game.GameConfig{Type: gameType, HumanPlays: human})
}

// playSession drives one interactive game over a line-oriented input
type playSession struct {
	ctrl *game.Controller
	out  *Output
	id   model.GameID
}

func (s *playSession) run(ctx context.Context, in *bufio.Scanner) error {
	for {
		moves, err := s.ctrl.PlayComputerTurns(ctx, s.id)
		if err != nil {
			return err
		}
		for _, m := range moves {
			s.out.Print(newMoveView(m))
		}

		g, err := s.ctrl.GetGame(ctx, s.id)
		if err != nil {
			return err
		}
		s.out.Print(newGameView(g))

		if g.IsComplete() {
			s.out.PrintMessage("Enter n for a new game or q to quit:")
		} else {
			s.out.PrintMessage(fmt.Sprintf("Player %s, choose a column (1-%d), n for a new game, q to quit:",
				playerLabel(g.ToMove), g.Board.Cols()))
		}

		if !in.Scan() {
			return in.Err()
		}
		input := strings.ToLower(strings.TrimSpace(in.Text()))

		switch input {
		case "q", "quit":
			return nil
		case "n", "new":
			if _, err := s.ctrl.NewGame(ctx, s.id); err != nil {
				return err
			}
			continue
		case "":
			continue
		}

		col, err := strconv.Atoi(input)
		if err != nil {
			s.out.PrintMessage(fmt.Sprintf("Not a column: %q", input))
			continue
		}

		if _, err := s.ctrl.ApplyHumanMove(ctx, s.id, col-1); err != nil {
			switch {
			case errors.Is(err, model.ErrInvalidColumn):
				s.out.PrintMessage(fmt.Sprintf("Column must be between 1 and %d", g.Board.Cols()))
			case errors.Is(err, model.ErrColumnFull):
				s.out.PrintMessage(fmt.Sprintf("Column %d is full", col))
			case errors.Is(err, model.ErrGameComplete):
				s.out.PrintMessage("The game is over")
			case errors.Is(err, model.ErrNotPlayerTurn):
				s.out.PrintMessage("It is the computer's turn")
			default:
				return err
			}
		}
	}
}
