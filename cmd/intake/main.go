// Package main provides the intake CLI: extract a roster from notes or a file,
// review and edit it, then send rows to the case-management webhook.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"volunteerhub/internal/domain"
)

var rootCmd = &cobra.Command{
	Use:           "intake",
	Short:         "VolunteerHub intake CLI",
	Long:          "Extract volunteer records from event notes, review them as a roster, and forward rows to a webhook through the relay.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupApp()
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		teardownApp()
	},
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// userError shows a friendly message while keeping the cause for exitCode.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// exitCode is 2 when retrying cannot help (credits, a rejected webhook URL)
// and 1 otherwise.
func exitCode(err error) int {
	if !domain.KindOf(err).Recoverable() {
		return 2
	}
	return 1
}
