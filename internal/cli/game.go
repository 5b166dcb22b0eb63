package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameConfirmCmd())
	cmd.AddCommand(newGameCancelCmd())

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game

			if err := client.Get("/api/v1/game", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCreateCmd() *cobra.Command {
	var buyIn, smallBlind, bigBlind int64
	var playerLimit int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"buyIn":       buyIn,
				"smallBlind":  smallBlind,
				"bigBlind":    bigBlind,
				"playerLimit": playerLimit,
			}
			var result Game

			if err := client.Post("/api/v1/game", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&buyIn, "buy-in", 0, "Buy-in in satoshis (required)")
	cmd.Flags().Int64Var(&smallBlind, "small-blind", 0, "Small blind in satoshis (required)")
	cmd.Flags().Int64Var(&bigBlind, "big-blind", 0, "Big blind in satoshis (required)")
	cmd.Flags().IntVar(&playerLimit, "player-limit", 0, "Maximum players (required)")
	_ = cmd.MarkFlagRequired("buy-in")
	_ = cmd.MarkFlagRequired("small-blind")
	_ = cmd.MarkFlagRequired("big-blind")
	_ = cmd.MarkFlagRequired("player-limit")

	return cmd
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <game-id>",
		Short: "Reserve a seat and get a Lightning invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"gameId": args[0]}
			var result JoinResult

			if err := client.Put("/api/v1/game", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <reservation-token>",
		Short: "Confirm invoice payment and claim the reserved seat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"reservation_token": args[0]}
			var result ConfirmResult

			if err := client.Post("/api/v1/game/confirm", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <reservation-token>",
		Short: "Cancel a seat reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"reservation_token": args[0]}

			if err := client.Delete("/api/v1/game/reservation", req); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Reservation %s released", args[0]))
			return nil
		},
	}
}
