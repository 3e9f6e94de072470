package main

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/carson-networks/finance-server/internal/storage/migrations"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the Postgres schema migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			envConfig, logger, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := sql.Open("postgres", envConfig.PostgresURL())
			if err != nil {
				return fmt.Errorf("sql.Open: %w", err)
			}
			defer db.Close()

			_, err = migrations.Up(db, logger)
			return err
		},
	}
}
