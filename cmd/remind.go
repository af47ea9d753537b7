package main

import (
	"encoding/json"
	"fmt"

	"smartrental/internal/jobs"
	"smartrental/internal/services"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send rent reminders to this month's defaulters once",
	Long: `Run the reminder batch outside the scheduler. With --landlord only that
landlord's tenants are reminded; otherwise every landlord is processed and
a failing landlord does not stop the others.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var landlordID uuid.UUID
		if raw, _ := cmd.Flags().GetString("landlord"); raw != "" {
			if landlordID, err = uuid.Parse(raw); err != nil {
				return fmt.Errorf("invalid --landlord %q: %w", raw, err)
			}
		}

		ctx := cmd.Context()
		pool, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		dispatcher, closeDispatcher, err := newDispatcher(cfg)
		if err != nil {
			return err
		}
		defer closeDispatcher()

		r := newRepos(pool)
		notifier := services.NewNotificationService(r.notifications, dispatcher)
		job := jobs.NewReminderJob(r.users, newDefaulterService(cfg, r, notifier))

		var result any
		if landlordID != uuid.Nil {
			result, err = job.RunForLandlord(ctx, landlordID)
		} else {
			result, err = job.RunAll(ctx)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	remindCmd.Flags().String("landlord", "", "Only remind the tenants of this landlord")
}
