// Package cmd contains the commands of the innoctl operator CLI.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/innohub/internal/storage"
)

const defaultDatabaseURL = "./data/innohub.db"

var (
	verbose      bool
	output       string
	databaseURL  string
	databaseName string
)

var rootCmd = &cobra.Command{
	Use:   "innoctl",
	Short: "innoctl - InnoHub operator tool",
	Long: `innoctl manages an InnoHub database directly.

It talks to the same SQLite file or MongoDB deployment the server uses,
selected by --database (or DATABASE_URL).

Examples:
  # Load demo users, mentors and grants
  innoctl seed

  # Create an admin account
  innoctl user create --username "Ada Admin" --email ada@example.com --role admin

  # Mint a token for manual API calls
  JWT_SECRET=... innoctl token issue --user-id 6f1c...`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database", envOr("DATABASE_URL", defaultDatabaseURL),
		"SQLite path or mongodb:// URI")
	rootCmd.PersistentFlags().StringVar(&databaseName, "database-name", envOr("DATABASE_NAME", "innohub"),
		"MongoDB database name")
}

// PrintVerbose prints only when --verbose is set.
func PrintVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openDatabase opens and migrates the configured store.
func openDatabase(ctx context.Context) (storage.Storage, error) {
	store, err := storage.New(storage.Options{DSN: databaseURL, Database: databaseName})
	if err != nil {
		return nil, err
	}
	PrintVerbose("Opening %s database at %s", store.Backend(), databaseURL)

	if err := store.Open(ctx); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return store, nil
}
