// Command burialctl is the operator CLI for the burial records API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/bootstrap"
	"burialdesk/internal/config"
	"burialdesk/internal/logger"
	"burialdesk/internal/session"
)

// openState is replaced in tests to share one in-memory store across commands.
var openState = bootstrap.OpenState

// env holds the collaborators every subcommand needs.
type env struct {
	cfg      *config.AppConfig
	log      *zap.Logger
	state    *bootstrap.State
	sessions *session.Store
	api      *apiclient.Client
}

func (e *env) close() {
	if e.state != nil {
		_ = e.state.Close()
	}
	if e.log != nil {
		_ = e.log.Sync()
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose bool
		e       = &env{}
	)

	root := &cobra.Command{
		Use:   "burialctl",
		Short: "Operator CLI for burial records",
		Long: `burialctl talks to the burial records API with the same session and
draft store as the console service.

Examples:
  burialctl login --email clerk@example.com --password ...
  burialctl next-number
  burialctl submit --data form.json --attach permit.pdf
  burialctl export --format xlsx --range last30days`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e.cfg = config.Load()

			level := "warn"
			if verbose {
				level = "debug"
			}
			log, err := logger.New(level, "console", "")
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			e.log = log

			state, err := openState(cmd.Context(), e.cfg.LocalStore, e.cfg.Database, log)
			if err != nil {
				return err
			}
			e.state = state
			e.sessions = session.NewStore(state)
			e.api = apiclient.New(e.cfg.API, e.sessions, log)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.close()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log API calls")

	root.AddCommand(
		newLoginCmd(e),
		newLogoutCmd(e),
		newNextNumberCmd(e),
		newDraftCmd(e),
		newSubmitCmd(e),
		newExportCmd(e),
		newVerifyCmd(e),
		newRejectCmd(e),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
