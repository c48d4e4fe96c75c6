package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ktauqeer04/mock-interview/internal/api"
	"github.com/ktauqeer04/mock-interview/internal/config"
	"github.com/ktauqeer04/mock-interview/internal/negotiation"
	"github.com/ktauqeer04/mock-interview/internal/room"
	"github.com/ktauqeer04/mock-interview/internal/store"
	"github.com/ktauqeer04/mock-interview/internal/ui"
)

var (
	flagEmail    string
	flagDomain   string
	flagInsecure bool
	flagSTUN     string
	flagTURN     string
	flagTURNUser string
	flagTURNPass string
	flagCodeFile string
)

// peerPollInterval is how often the waiting creator checks for the joiner.
const peerPollInterval = 2 * time.Second

var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"c"},
	Short:   "Create an interview room and wait for a peer",
	Long: `Create a new interview room and wait for the other participant.

Examples:
  interview create --email you@example.com
  interview create --email you@example.com --file solution.js
  interview create --email you@example.com --domain localhost:3001`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return createAndWait(cmd.Context())
	},
}

func createAndWait(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rest := api.NewClient(cfg)

	stopSpinner := ui.RunConnectionSpinner("Creating room...")
	created, err := rest.CreateRoom(ctx, flagEmail)
	stopSpinner()
	if err != nil {
		return NewError("create room", err)
	}

	fmt.Println(ui.NewRoomInfo(created.ID, cfg.GetRoomLink(created.ID)).View())
	ui.PrintInfof("Room expires at %s", created.ExpiresAt.Local().Format("15:04"))

	current, err := waitForPeer(ctx, rest, created.ID)
	if err != nil {
		return err
	}
	ui.PrintSuccessf("%s joined the room", current.PeerEmail)

	q, err := rest.Question(ctx, created.ID)
	if err != nil {
		return NewError("fetch question", err)
	}

	return runSession(ctx, sessionParams{
		cfg:       cfg,
		rest:      rest,
		room:      current,
		question:  q,
		email:     flagEmail,
		peerEmail: current.PeerEmail,
		role:      negotiation.RoleImpolite,
		codeFile:  flagCodeFile,
	})
}

// waitForPeer polls the room until the second participant shows up.
func waitForPeer(ctx context.Context, rest *api.Client, roomID string) (*store.Room, error) {
	fmt.Println()
	stopSpinner := ui.RunWaitingSpinner("Waiting for a peer to join...")
	defer stopSpinner()

	ticker := time.NewTicker(peerPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, WrapError("wait for peer", ErrSessionCancelled, ctx.Err().Error())
		case <-ticker.C:
		}

		current, err := rest.GetRoom(ctx, roomID)
		if err != nil {
			if errors.Is(err, room.ErrExpired) {
				return nil, WrapError("wait for peer", err, "the room expired before anyone joined")
			}
			return nil, NewError("wait for peer", err)
		}
		if current.Full() {
			return current, nil
		}
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Options{
		Domain:     flagDomain,
		Insecure:   flagInsecure,
		STUNServer: flagSTUN,
		TURNServer: flagTURN,
		TURNUser:   flagTURNUser,
		TURNPass:   flagTURNPass,
	})
	if err != nil {
		return nil, NewError("load config", err)
	}
	return cfg, nil
}

func registerSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagEmail, "email", "e", "", "Your email address (required)")
	cmd.Flags().StringVarP(&flagDomain, "domain", "d", "", "Custom server domain")
	cmd.Flags().BoolVar(&flagInsecure, "insecure", false, "Use http/ws instead of https/wss")
	cmd.Flags().StringVarP(&flagSTUN, "stun", "s", "", "Custom STUN server")
	cmd.Flags().StringVarP(&flagTURN, "turn", "t", "", "Custom TURN server")
	cmd.Flags().StringVarP(&flagTURNUser, "turn-user", "u", "", "TURN username")
	cmd.Flags().StringVarP(&flagTURNPass, "turn-pass", "p", "", "TURN password")
	cmd.Flags().StringVarP(&flagCodeFile, "file", "f", "", "Code file to share live with the peer")
	cmd.MarkFlagRequired("email")
}

func init() {
	rootCmd.AddCommand(createCmd)
	registerSessionFlags(createCmd)
}
