package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRequestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Battle request commands",
	}

	cmd.AddCommand(newRequestsSubmitCmd())
	cmd.AddCommand(newRequestsListCmd())
	cmd.AddCommand(newRequestsShowCmd())
	cmd.AddCommand(newRequestsConfirmCmd())
	cmd.AddCommand(newRequestsRejectCmd())

	return cmd
}

func newRequestsSubmitCmd() *cobra.Command {
	var name, email, twitchName, game, notes, date, slot string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new battle request",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":            name,
				"email":           email,
				"twitch_username": twitchName,
				"game":            game,
				"requested_date":  date,
				"requested_time":  slot,
			}
			if notes != "" {
				req["notes"] = notes
			}

			var result BattleRequest
			if err := client.Post("/api/v1/battle-requests", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Contact email (required)")
	cmd.Flags().StringVar(&twitchName, "twitch", "", "Twitch username (required)")
	cmd.Flags().StringVar(&game, "game", "", "Game to battle in (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "Optional notes")
	cmd.Flags().StringVar(&date, "date", "", "Requested date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&slot, "time", "", "Requested time slot, e.g. '4:00 PM' (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("twitch")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func newRequestsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all battle requests (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []BattleRequest
			if err := client.Get("/api/v1/battle-requests", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRequestsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a battle request by id (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result BattleRequest
			if err := client.Get("/api/v1/battle-requests/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRequestsConfirmCmd() *cobra.Command {
	return newStatusCmd("confirm", "confirmed", "Confirm a battle request by token")
}

func newRequestsRejectCmd() *cobra.Command {
	return newStatusCmd("reject", "rejected", "Reject a battle request by token")
}

func newStatusCmd(use, status, short string) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return fmt.Errorf("--token is required")
			}

			req := map[string]string{
				"token":  token,
				"status": status,
			}
			var result BattleRequest
			if err := client.Post("/api/v1/battle-requests/update-status", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Request token (required)")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}
