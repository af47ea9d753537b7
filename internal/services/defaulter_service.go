package services

import (
	"context"
	"fmt"
	"time"

	"smartrental/internal/logging"
	"smartrental/internal/metrics"
	"smartrental/internal/models"
	"smartrental/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultDueDay = 5

	msgNoDefaultersYet  = "No defaulters yet. Due date not reached."
	msgTooEarly         = "Too early for reminders. Due date not reached."
	msgRemindersSent    = "Reminders sent to defaulters"
	defaulterScanLimit  = 16
	reminderMessageTmpl = "Hi %s, you have not paid your rent (KES %d) for house \"%s\". Please pay immediately to avoid penalties."
)

type DefaulterService interface {
	Detect(ctx context.Context, landlordID uuid.UUID) (*DefaulterReport, error)
	SendReminders(ctx context.Context, landlordID uuid.UUID) (*ReminderReport, error)
	NotifyDefaulter(ctx context.Context, landlordID, tenantID uuid.UUID) (string, error)
}

// DefaulterReport is either early (Message set, nothing scanned) or a full
// scan result.
type DefaulterReport struct {
	Early      bool               `json:"-"`
	Message    string             `json:"message,omitempty"`
	Count      int                `json:"count"`
	Defaulters []models.Defaulter `json:"defaulters"`
}

type ReminderReport struct {
	Early    bool              `json:"-"`
	Message  string            `json:"message"`
	Count    int               `json:"count"`
	Reminded []models.Reminded `json:"reminded"`
}

// DefaulterOption customizes the detector.
type DefaulterOption func(*defaulterService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) DefaulterOption {
	return func(s *defaulterService) { s.now = now }
}

// WithLocation sets the zone whose calendar month is scanned.
func WithLocation(loc *time.Location) DefaulterOption {
	return func(s *defaulterService) { s.loc = loc }
}

// WithDueDay sets the last day of the month on which detection is suppressed.
func WithDueDay(day int) DefaulterOption {
	return func(s *defaulterService) { s.dueDay = day }
}

type defaulterService struct {
	agreements repositories.AgreementRepository
	payments   repositories.PaymentRepository
	users      repositories.UserRepository
	houses     repositories.HouseRepository
	notifier   Notifier

	now    func() time.Time
	loc    *time.Location
	dueDay int
	logger zerolog.Logger
}

func NewDefaulterService(
	agreements repositories.AgreementRepository,
	payments repositories.PaymentRepository,
	users repositories.UserRepository,
	houses repositories.HouseRepository,
	notifier Notifier,
	opts ...DefaulterOption,
) DefaulterService {
	s := &defaulterService{
		agreements: agreements,
		payments:   payments,
		users:      users,
		houses:     houses,
		notifier:   notifier,
		now:        time.Now,
		loc:        time.Local,
		dueDay:     DefaultDueDay,
		logger:     logging.WithComponent("defaulters"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentMonthRange returns the first and last instant of the calendar month
// containing now, in loc. Both ends are inclusive.
func CurrentMonthRange(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

func (s *defaulterService) beforeDue() bool {
	return s.now().In(s.loc).Day() <= s.dueDay
}

func (s *defaulterService) Detect(ctx context.Context, landlordID uuid.UUID) (*DefaulterReport, error) {
	if s.beforeDue() {
		metrics.DefaulterScans.WithLabelValues("early").Inc()
		return &DefaulterReport{Early: true, Message: msgNoDefaultersYet, Defaulters: []models.Defaulter{}}, nil
	}

	defaulters, err := s.scan(ctx, landlordID)
	if err != nil {
		metrics.DefaulterScans.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.DefaulterScans.WithLabelValues("ok").Inc()
	metrics.DefaultersFound.Observe(float64(len(defaulters)))

	return &DefaulterReport{Count: len(defaulters), Defaulters: defaulters}, nil
}

// SendReminders texts every defaulter. An SMS failure is logged and the
// tenant is still listed as reminded.
func (s *defaulterService) SendReminders(ctx context.Context, landlordID uuid.UUID) (*ReminderReport, error) {
	if s.beforeDue() {
		metrics.DefaulterScans.WithLabelValues("early").Inc()
		return &ReminderReport{Early: true, Message: msgTooEarly, Reminded: []models.Reminded{}}, nil
	}

	defaulters, err := s.scan(ctx, landlordID)
	if err != nil {
		metrics.DefaulterScans.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.DefaulterScans.WithLabelValues("ok").Inc()
	metrics.DefaultersFound.Observe(float64(len(defaulters)))

	reminded := make([]models.Reminded, 0, len(defaulters))
	for _, d := range defaulters {
		message := fmt.Sprintf(reminderMessageTmpl, d.Tenant.FullName, d.MonthlyRent, d.House.Title)
		if err := s.notifier.SendSMS(ctx, d.Tenant.Phone, message); err != nil {
			s.logger.Error().Err(err).
				Str("tenant_id", d.Tenant.ID.String()).
				Msg("rent reminder SMS failed")
		} else {
			metrics.RemindersSent.Inc()
		}
		reminded = append(reminded, models.Reminded{
			Tenant: d.Tenant.FullName,
			Phone:  d.Tenant.Phone,
			House:  d.House.Title,
		})
	}

	s.logger.Info().
		Str("landlord_id", landlordID.String()).
		Int("count", len(reminded)).
		Msg("rent reminders sent")

	return &ReminderReport{Message: msgRemindersSent, Count: len(reminded), Reminded: reminded}, nil
}

// NotifyDefaulter sends one reminder to a tenant holding an agreement with the
// landlord. It does not check whether the tenant has actually paid.
func (s *defaulterService) NotifyDefaulter(ctx context.Context, landlordID, tenantID uuid.UUID) (string, error) {
	tenant, err := s.users.GetByID(ctx, tenantID)
	if err != nil {
		if isNotFound(err) {
			return "", newError(ErrNotFound, "Defaulter not found")
		}
		return "", err
	}

	agreements, err := s.agreements.ListByTenant(ctx, tenantID)
	if err != nil {
		return "", err
	}
	var agreement *models.RentalAgreement
	for _, ag := range agreements {
		if ag.LandlordID == landlordID {
			agreement = ag
			break
		}
	}
	if agreement == nil {
		return "", newError(ErrNotFound, "Defaulter not found")
	}

	title := ""
	if house, err := s.houses.GetByID(ctx, agreement.HouseID); err == nil {
		title = house.Title
	}

	message := fmt.Sprintf(reminderMessageTmpl, tenant.FullName, agreement.MonthlyRent, title)
	if err := s.notifier.Notify(ctx, tenant, models.NotificationRentDue, message); err != nil {
		s.logger.Error().Err(err).Str("tenant_id", tenantID.String()).Msg("defaulter notification failed")
	}

	return tenant.FullName, nil
}

// scan checks every agreement of the landlord concurrently. Any lookup error
// fails the whole scan. Results keep the agreement order.
func (s *defaulterService) scan(ctx context.Context, landlordID uuid.UUID) ([]models.Defaulter, error) {
	agreements, err := s.agreements.ListByLandlord(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agreements: %w", err)
	}

	start, end := CurrentMonthRange(s.now(), s.loc)
	slots := make([]*models.Defaulter, len(agreements))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaulterScanLimit)

	for i, ag := range agreements {
		g.Go(func() error {
			paid, err := s.payments.ExistsInRange(gctx, ag.ID, start, end)
			if err != nil {
				return err
			}
			if paid {
				return nil
			}

			tenant, err := s.users.GetByID(gctx, ag.TenantID)
			if err != nil {
				return fmt.Errorf("tenant %s: %w", ag.TenantID, err)
			}
			house, err := s.houses.GetByID(gctx, ag.HouseID)
			if err != nil {
				return fmt.Errorf("house %s: %w", ag.HouseID, err)
			}

			slots[i] = &models.Defaulter{
				Tenant:      tenant.Contact(),
				House:       house.Ref(),
				MonthlyRent: ag.MonthlyRent,
				LeaseStart:  ag.LeaseStart,
				LeaseEnd:    ag.LeaseEnd,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("landlord_id", landlordID.String()).Msg("defaulter scan failed")
		return nil, fmt.Errorf("defaulter scan: %w", err)
	}

	defaulters := make([]models.Defaulter, 0, len(slots))
	for _, d := range slots {
		if d != nil {
			defaulters = append(defaulters, *d)
		}
	}
	return defaulters, nil
}
