package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/connectfour/internal/services/search"
)

func newEvalCmd() *cobra.Command {
	var (
		boardText string
		player    string
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Print the heuristic score of a position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, side, err := parsePosition(boardText, player)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(EvalResult{
				Player:  playerLabel(side),
				Score:   search.Evaluate(board, side),
				Outcome: outcomeLabel(board.CheckOutcome()),
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&boardText, "board", "b", "", "Board text, top row first")
	cmd.Flags().StringVarP(&player, "player", "p", "A", "Side to score for: A (X) or B (O)")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}
