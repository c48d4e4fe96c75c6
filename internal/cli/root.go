// Package cli implements the interview command line client: creating and
// joining rooms, and running the live pairing session.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ktauqeer04/mock-interview/internal/ui"
	"github.com/ktauqeer04/mock-interview/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "interview",
	Short:   "Pair up for a timed mock coding interview over WebRTC",
	Long: `Interview is a command-line client for two-person mock coding interviews.
One participant creates a room and shares the room id; the other joins it.
Both get the same randomly assigned problem and a direct peer connection for
the duration of the session, with live code sharing over the room channel.`,
	Version: version.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Interrupt cancels the command context; commands unwind through it
	// instead of being killed mid-session.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(ui.FormatError(err))
		os.Exit(1)
	}
}
