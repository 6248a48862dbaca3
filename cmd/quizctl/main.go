package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quizgym/internal/app"
	"quizgym/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	dsn string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "quizctl",
		Short:         "Quiz bank maintenance: spreadsheet imports, templates, migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := app.LoadConfig()
			logging.SetupWriter(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if opts.dsn == "" {
				opts.dsn = cfg.DBDSN
			}
		},
	}
	cmd.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "PostgreSQL DSN (default: DB_DSN)")

	cmd.AddCommand(newImportCmd(&opts))
	cmd.AddCommand(newTemplateCmd())
	cmd.AddCommand(newMigrateCmd(&opts))
	return cmd
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
