package main

import (
	"fmt"

	"smartrental/pkg/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		pool, err := connect(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := database.Migrate(cmd.Context(), pool)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(applied) == 0 {
			fmt.Fprintln(out, "Database is up to date")
			return nil
		}
		for _, v := range applied {
			fmt.Fprintf(out, "✓ %s\n", v)
		}
		return nil
	},
}
