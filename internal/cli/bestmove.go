package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/connectfour/internal/model"
)

func newBestMoveCmd() *cobra.Command {
	var (
		boardText string
		player    string
	)

	cmd := &cobra.Command{
		Use:   "bestmove",
		Short: "Print the best move for a position",
		Long: `Search a position and print the chosen column with every root score.

The board is given top row first using . X O, rows separated by newlines or "/".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, side, err := parsePosition(boardText, player)
			if err != nil {
				return err
			}

			result, err := app.Engine.BestMove(cmd.Context(), board, side, cfg.Depth)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(newBestMoveResult(result, cfg.Depth))
			return nil
		},
	}

	cmd.Flags().StringVarP(&boardText, "board", "b", "", "Board text, top row first")
	cmd.Flags().StringVarP(&player, "player", "p", "A", "Side to move: A (X) or B (O)")
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func parsePosition(boardText, player string) (*model.Board, model.Cell, error) {
	board, err := model.ParseBoard(boardText)
	if err != nil {
		return nil, model.Empty, err
	}
	side, err := model.ParsePlayer(player)
	if err != nil {
		return nil, model.Empty, err
	}
	return board, side, nil
}
