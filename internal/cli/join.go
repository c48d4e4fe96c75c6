package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ktauqeer04/mock-interview/internal/api"
	"github.com/ktauqeer04/mock-interview/internal/negotiation"
	"github.com/ktauqeer04/mock-interview/internal/ui"
)

var joinCmd = &cobra.Command{
	Use:     "join <room-id>",
	Aliases: []string{"j"},
	Short:   "Join an existing interview room",
	Long: `Join a room created by the other participant.

Examples:
  interview join 4fz81kq2 --email you@example.com
  interview join 4fz81kq2 --email you@example.com --file solution.js`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return joinRoom(cmd.Context(), args[0])
	},
}

func joinRoom(ctx context.Context, roomID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rest := api.NewClient(cfg)

	stopSpinner := ui.RunConnectionSpinner("Joining room...")
	joined, err := rest.JoinRoom(ctx, roomID, flagEmail)
	stopSpinner()
	if err != nil {
		return NewError("join room", err)
	}
	ui.PrintSuccessf("Joined %s's room", joined.CreatorEmail)

	q, err := rest.Question(ctx, roomID)
	if err != nil {
		return NewError("fetch question", err)
	}

	return runSession(ctx, sessionParams{
		cfg:       cfg,
		rest:      rest,
		room:      joined,
		question:  q,
		email:     flagEmail,
		peerEmail: joined.CreatorEmail,
		role:      negotiation.RolePolite,
		codeFile:  flagCodeFile,
	})
}

func init() {
	rootCmd.AddCommand(joinCmd)
	registerSessionFlags(joinCmd)
}
