package jobs

import (
	"context"
	"fmt"

	"smartrental/internal/logging"
	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LandlordLister enumerates the landlords whose tenants get reminders.
type LandlordLister interface {
	ListIDsByRole(ctx context.Context, role models.Role) ([]uuid.UUID, error)
}

// ReminderJob sends the monthly rent reminders of every landlord.
type ReminderJob struct {
	landlords  LandlordLister
	defaulters services.DefaulterService
	logger     zerolog.Logger
}

// ReminderSummary totals one run over all landlords.
type ReminderSummary struct {
	Landlords int `json:"landlords"`
	Reminded  int `json:"reminded"`
	Early     int `json:"early"`
	Failed    int `json:"failed"`
}

func NewReminderJob(landlords LandlordLister, defaulters services.DefaulterService) *ReminderJob {
	return &ReminderJob{
		landlords:  landlords,
		defaulters: defaulters,
		logger:     logging.WithComponent("jobs"),
	}
}

// RunForLandlord sends the reminders of a single landlord.
func (j *ReminderJob) RunForLandlord(ctx context.Context, landlordID uuid.UUID) (*services.ReminderReport, error) {
	report, err := j.defaulters.SendReminders(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("send reminders for landlord %s: %w", landlordID, err)
	}
	return report, nil
}

// RunAll walks every landlord. A failing landlord is logged and skipped;
// only a failure to enumerate landlords aborts the run.
func (j *ReminderJob) RunAll(ctx context.Context) (*ReminderSummary, error) {
	ids, err := j.landlords.ListIDsByRole(ctx, models.RoleLandlord)
	if err != nil {
		return nil, fmt.Errorf("list landlords: %w", err)
	}

	summary := &ReminderSummary{Landlords: len(ids)}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		report, err := j.RunForLandlord(ctx, id)
		if err != nil {
			summary.Failed++
			j.logger.Error().Err(err).Str("landlord_id", id.String()).Msg("reminder batch failed")
			continue
		}
		if report.Early {
			summary.Early++
			continue
		}
		summary.Reminded += report.Count
	}

	j.logger.Info().
		Int("landlords", summary.Landlords).
		Int("reminded", summary.Reminded).
		Int("failed", summary.Failed).
		Msg("reminder run finished")
	return summary, nil
}
