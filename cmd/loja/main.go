// Command loja is a terminal driver for the storefront state core. It
// stands in for the mobile screens: every subcommand maps to something a
// screen would do against the Session, Cart, and Notifications stores.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if os.Getenv("LOJA_DEBUG") != "" {
		logOpts.Level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, logOpts)))

	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "loja",
		Short: "Mock storefront state core",
		Long: `Loja drives the storefront's device-local state: a mock account
registry with OTP verification, an in-memory cart, and per-user persisted
notifications. State lives in a local SQLite file by default; pass --redis
to share it through a Redis server instead.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", envOrDefault("LOJA_DB", "loja.db"), "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&a.redisAddr, "redis", os.Getenv("LOJA_REDIS"), "Redis address (overrides --db)")

	rootCmd.AddCommand(
		registerCmd(a),
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		otpCmd(a),
		profileCmd(a),
		browseCmd(a),
		notificationsCmd(a),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
