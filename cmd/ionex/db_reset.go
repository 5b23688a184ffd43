package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/config"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/database"
)

func newDbResetCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "db-reset",
		Short: "Delete and recreate the SQLite database",
		Long: `Delete the existing SQLite database file and recreate it with a fresh schema.
This permanently deletes all customers, entries, tickets, and expenses.

WARNING: This operation cannot be undone!`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: This will permanently delete all billing data!")
			fmt.Print("Are you sure you want to continue? (y/N): ")

			var response string
			fmt.Scanln(&response)

			if response != "y" && response != "Y" {
				fmt.Println("Database reset cancelled.")
				return nil
			}

			dbPath := cfg.DatabaseURL
			if _, err := os.Stat(dbPath); err == nil {
				if err := os.Remove(dbPath); err != nil {
					return fmt.Errorf("failed to delete database file: %w", err)
				}
				fmt.Printf("Deleted existing database: %s\n", dbPath)
			}

			// Opening applies the schema to the fresh file.
			db, err := database.NewDB(cfg)
			if err != nil {
				return fmt.Errorf("failed to create new database: %w", err)
			}
			defer db.Close()

			fmt.Printf("Successfully recreated database: %s\n", dbPath)
			return nil
		},
	}
}
