package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smartrental/internal/logging"
	"smartrental/internal/metrics"
	"smartrental/internal/models"
	"smartrental/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	receiptContentType = "application/pdf"
	receiptURLExpiry   = 15 * time.Minute
)

type PaymentService interface {
	PayRent(ctx context.Context, tenantID uuid.UUID, in *PayRentInput) (*models.RentPayment, error)
	ListMine(ctx context.Context, tenantID uuid.UUID) ([]*models.RentPayment, error)
	ListForLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.RentPayment, error)
	ListForHouse(ctx context.Context, houseID uuid.UUID) ([]*models.RentPayment, error)
	EarningsSummary(ctx context.Context, landlordID uuid.UUID) ([]models.MonthlyEarnings, error)
	Receipt(ctx context.Context, tenantID, paymentID uuid.UUID) (*ReceiptFile, error)
	ReceiptURL(ctx context.Context, tenantID, paymentID uuid.UUID) (string, error)
	EmailReceipt(ctx context.Context, tenantID, paymentID uuid.UUID) error
}

type PayRentInput struct {
	AgreementID   string `json:"agreementId"`
	AmountPaid    int64  `json:"amountPaid"`
	PaymentMethod string `json:"paymentMethod"`
}

type ReceiptFile struct {
	Name    string
	Content []byte
}

type paymentService struct {
	payments   repositories.PaymentRepository
	agreements repositories.AgreementRepository
	users      repositories.UserRepository
	houses     repositories.HouseRepository
	notifier   Notifier
	storage    ReceiptStore // optional
	now        func() time.Time
	logger     zerolog.Logger
}

// NewPaymentService wires the ledger. storage may be nil, in which case
// receipts are rendered on demand and never archived.
func NewPaymentService(
	payments repositories.PaymentRepository,
	agreements repositories.AgreementRepository,
	users repositories.UserRepository,
	houses repositories.HouseRepository,
	notifier Notifier,
	storage ReceiptStore,
) PaymentService {
	return &paymentService{
		payments:   payments,
		agreements: agreements,
		users:      users,
		houses:     houses,
		notifier:   notifier,
		storage:    storage,
		now:        time.Now,
		logger:     logging.WithComponent("payments"),
	}
}

func (s *paymentService) PayRent(ctx context.Context, tenantID uuid.UUID, in *PayRentInput) (*models.RentPayment, error) {
	if in == nil || strings.TrimSpace(in.AgreementID) == "" || in.AmountPaid <= 0 || strings.TrimSpace(in.PaymentMethod) == "" {
		return nil, newError(ErrValidation, "agreementId, amountPaid, and paymentMethod are required")
	}
	agreementID, err := uuid.Parse(strings.TrimSpace(in.AgreementID))
	if err != nil {
		return nil, newError(ErrValidation, "Invalid agreement ID")
	}

	agreement, err := s.agreements.GetByID(ctx, agreementID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if agreement == nil || agreement.TenantID != tenantID {
		return nil, newError(ErrForbidden, "Unauthorized or agreement not found")
	}

	now := s.now()
	payment := &models.RentPayment{
		ID:            uuid.New(),
		AgreementID:   agreement.ID,
		TenantID:      tenantID,
		HouseID:       agreement.HouseID,
		AmountPaid:    in.AmountPaid,
		PaymentDate:   now,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		ReceiptID:     fmt.Sprintf("RNT-%d", now.UnixMilli()),
		CreatedAt:     now,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.Inc()
	s.logger.Info().
		Str("payment_id", payment.ID.String()).
		Str("agreement_id", agreement.ID.String()).
		Int64("amount", payment.AmountPaid).
		Msg("rent payment recorded")

	return payment, nil
}

func (s *paymentService) ListMine(ctx context.Context, tenantID uuid.UUID) ([]*models.RentPayment, error) {
	return s.payments.ListByTenant(ctx, tenantID)
}

func (s *paymentService) ListForLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.RentPayment, error) {
	return s.payments.ListByLandlord(ctx, landlordID)
}

func (s *paymentService) ListForHouse(ctx context.Context, houseID uuid.UUID) ([]*models.RentPayment, error) {
	return s.payments.ListByHouse(ctx, houseID)
}

func (s *paymentService) EarningsSummary(ctx context.Context, landlordID uuid.UUID) ([]models.MonthlyEarnings, error) {
	return s.payments.MonthlyTotals(ctx, landlordID)
}

// loadOwned returns the payment with its tenant and house, collapsing
// not-found and not-owner into one denial.
func (s *paymentService) loadOwned(ctx context.Context, tenantID, paymentID uuid.UUID) (*models.RentPayment, *models.User, *models.House, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil && !isNotFound(err) {
		return nil, nil, nil, err
	}
	if payment == nil || payment.TenantID != tenantID {
		return nil, nil, nil, newError(ErrDenied, "Receipt not found or unauthorized")
	}

	tenant, err := s.users.GetByID(ctx, tenantID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	house, err := s.houses.GetByID(ctx, payment.HouseID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load house: %w", err)
	}
	return payment, tenant, house, nil
}

func receiptObjectName(payment *models.RentPayment) string {
	return fmt.Sprintf("%s/%s.pdf", payment.TenantID, payment.ReceiptID)
}

func (s *paymentService) Receipt(ctx context.Context, tenantID, paymentID uuid.UUID) (*ReceiptFile, error) {
	payment, tenant, house, err := s.loadOwned(ctx, tenantID, paymentID)
	if err != nil {
		return nil, err
	}

	content, err := RenderReceiptPDF(payment, tenant, house)
	if err != nil {
		return nil, err
	}

	if s.storage != nil {
		if err := s.archive(ctx, payment, content); err != nil {
			s.logger.Warn().Err(err).Str("payment_id", payment.ID.String()).Msg("failed to archive receipt")
		}
	}

	return &ReceiptFile{Name: receiptFileName(payment), Content: content}, nil
}

func receiptFileName(payment *models.RentPayment) string {
	return fmt.Sprintf("receipt-%s.pdf", payment.ID)
}

func (s *paymentService) archive(ctx context.Context, payment *models.RentPayment, content []byte) error {
	return s.storage.Put(ctx, receiptObjectName(payment), content, receiptContentType)
}

// ReceiptURL archives a fresh copy of the receipt and returns a short-lived
// download link.
func (s *paymentService) ReceiptURL(ctx context.Context, tenantID, paymentID uuid.UUID) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("receipt storage is not configured")
	}

	payment, tenant, house, err := s.loadOwned(ctx, tenantID, paymentID)
	if err != nil {
		return "", err
	}
	content, err := RenderReceiptPDF(payment, tenant, house)
	if err != nil {
		return "", err
	}
	if err := s.archive(ctx, payment, content); err != nil {
		return "", fmt.Errorf("failed to store receipt: %w", err)
	}

	return s.storage.SignedURL(ctx, receiptObjectName(payment), receiptFileName(payment), receiptURLExpiry)
}

// EmailReceipt mails the tenant a receipt summary, with a download link when
// storage is available.
func (s *paymentService) EmailReceipt(ctx context.Context, tenantID, paymentID uuid.UUID) error {
	payment, tenant, house, err := s.loadOwned(ctx, tenantID, paymentID)
	if err != nil {
		return err
	}
	if tenant.Email == "" {
		return newError(ErrValidation, "Tenant has no email address")
	}

	text := fmt.Sprintf(
		"Dear %s,\n\nYour rent payment receipt %s for the house %s: KES %d paid via %s on %s.",
		tenant.FullName, payment.ReceiptID, house.Title, payment.AmountPaid, payment.PaymentMethod,
		payment.PaymentDate.Format("Mon Jan 02 2006"),
	)

	if s.storage != nil {
		content, err := RenderReceiptPDF(payment, tenant, house)
		if err != nil {
			return err
		}
		if err := s.archive(ctx, payment, content); err == nil {
			if url, err := s.storage.SignedURL(ctx, receiptObjectName(payment), receiptFileName(payment), 24*time.Hour); err == nil {
				text += "\n\nDownload: " + url
			}
		} else {
			s.logger.Warn().Err(err).Str("payment_id", payment.ID.String()).Msg("failed to archive receipt")
		}
	}
	text += "\n\nRegards,\nSmart Rental Management Team"

	if err := s.notifier.SendEmail(ctx, tenant.Email, "Your Rent Payment Receipt", text); err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}
	return nil
}
