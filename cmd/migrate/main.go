// Command migrate applies the embedded schema migrations.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/JaimeStill/scribe/internal/config"
	"github.com/JaimeStill/scribe/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var databaseURL string

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env file: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the scribe database schema",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&databaseURL, "url", "", "Database URL (defaults to the service configuration)")

	rootCmd.AddCommand(upCmd())
	rootCmd.AddCommand(downCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := open()
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migrate up: %w", err)
			}
			return report(cmd, m)
		},
	}
}

func downCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("steps must be at least 1")
			}

			m, err := open()
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migrate down: %w", err)
			}
			return report(cmd, m)
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to roll back")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := open()
			if err != nil {
				return err
			}
			defer m.Close()
			return report(cmd, m)
		},
	}
}

func open() (*migrate.Migrate, error) {
	url := databaseURL
	if url == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		url = cfg.Database.URL("postgres")
	}
	return migrations.New(url)
}

func report(cmd *cobra.Command, m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		cmd.Println("no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}

	cmd.Printf("version %d (dirty: %t)\n", version, dirty)
	return nil
}
