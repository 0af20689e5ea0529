// Command ledgerctl runs schema migrations and back-office tasks against the ledger store.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SscSPs/postal_ledger/internal/app"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/core/services"
	"github.com/SscSPs/postal_ledger/internal/platform/config"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operations CLI for the postal posting ledger",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(closeCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(pendingCmd())

	return rootCmd
}

// withServices opens the configured store and runs fn with a service container.
// Shell access is trusted, so no authorizer is wired regardless of AUTH_ENABLED.
func withServices(ctx context.Context, fn func(*portssvc.ServiceContainer) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	local := *cfg
	local.AuthEnabled = false
	return fn(services.NewServiceContainer(&local, storage.Repos))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
