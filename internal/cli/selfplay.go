package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
)

func newSelfPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selfplay",
		Short: "Let the computer play both sides to the end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl := app.GameController

			g, err := ctrl.CreateGame(ctx, game.GameConfig{Type: model.GameTypeAIVsAI})
			if err != nil {
				return err
			}

			moves, err := ctrl.PlayComputerTurns(ctx, g.ID)
			if err != nil {
				return err
			}

			g, err = ctrl.GetGame(ctx, g.ID)
			if err != nil {
				return err
			}

			result := SelfPlayResult{
				GameID:  string(g.ID),
				Moves:   make([]MoveView, len(moves)),
				Outcome: outcomeLabel(g.Outcome()),
				Board:   boardRows(g.Board),
			}
			for i, m := range moves {
				result.Moves[i] = newMoveView(m)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(result)
			return nil
		},
	}
}
