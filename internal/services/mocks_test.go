package services

import (
	"context"
	"time"

	"smartrental/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmailOrPhone(ctx context.Context, emailOrPhone string) (*models.User, error) {
	args := m.Called(ctx, emailOrPhone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	args := m.Called(ctx, email, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, role *models.Role, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, role, limit, offset)
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) ListIDsByRole(ctx context.Context, role models.Role) ([]uuid.UUID, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error {
	args := m.Called(ctx, id, suspended)
	return args.Error(0)
}

func (m *MockUserRepository) SetRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateNotificationPrefs(ctx context.Context, id uuid.UUID, prefs models.NotificationPrefs) error {
	args := m.Called(ctx, id, prefs)
	return args.Error(0)
}

type MockHouseRepository struct {
	mock.Mock
}

func (m *MockHouseRepository) Create(ctx context.Context, house *models.House) error {
	args := m.Called(ctx, house)
	return args.Error(0)
}

func (m *MockHouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.House, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.House), args.Error(1)
}

func (m *MockHouseRepository) List(ctx context.Context, status *models.HouseStatus) ([]*models.House, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*models.House), args.Error(1)
}

func (m *MockHouseRepository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.House, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).([]*models.House), args.Error(1)
}

func (m *MockHouseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.HouseStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockHouseRepository) SetCaretaker(ctx context.Context, id uuid.UUID, caretakerID *uuid.UUID) error {
	args := m.Called(ctx, id, caretakerID)
	return args.Error(0)
}

func (m *MockHouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAgreementRepository struct {
	mock.Mock
}

func (m *MockAgreementRepository) Create(ctx context.Context, agreement *models.RentalAgreement) error {
	args := m.Called(ctx, agreement)
	return args.Error(0)
}

func (m *MockAgreementRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RentalAgreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RentalAgreement), args.Error(1)
}

func (m *MockAgreementRepository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.RentalAgreement, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).([]*models.RentalAgreement), args.Error(1)
}

func (m *MockAgreementRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RentalAgreement, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.RentalAgreement), args.Error(1)
}

func (m *MockAgreementRepository) ListByHouse(ctx context.Context, houseID uuid.UUID) ([]*models.RentalAgreement, error) {
	args := m.Called(ctx, houseID)
	return args.Get(0).([]*models.RentalAgreement), args.Error(1)
}

func (m *MockAgreementRepository) ListAll(ctx context.Context) ([]*models.RentalAgreement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.RentalAgreement), args.Error(1)
}

func (m *MockAgreementRepository) SignByTenant(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAgreementRepository) SignByLandlord(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAgreementRepository) MarkDepositPaid(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAgreementRepository) UpdateTerms(ctx context.Context, id uuid.UUID, monthlyRent int64, leaseEnd time.Time) error {
	args := m.Called(ctx, id, monthlyRent, leaseEnd)
	return args.Error(0)
}

func (m *MockAgreementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.RentPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RentPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RentPayment), args.Error(1)
}

func (m *MockPaymentRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RentPayment, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.RentPayment), args.Error(1)
}

func (m *MockPaymentRepository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.RentPayment, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).([]*models.RentPayment), args.Error(1)
}

func (m *MockPaymentRepository) ListByHouse(ctx context.Context, houseID uuid.UUID) ([]*models.RentPayment, error) {
	args := m.Called(ctx, houseID)
	return args.Get(0).([]*models.RentPayment), args.Error(1)
}

func (m *MockPaymentRepository) ExistsInRange(ctx context.Context, agreementID uuid.UUID, start, end time.Time) (bool, error) {
	args := m.Called(ctx, agreementID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) MonthlyTotals(ctx context.Context, landlordID uuid.UUID) ([]models.MonthlyEarnings, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).([]models.MonthlyEarnings), args.Error(1)
}

type MockRelocationRepository struct {
	mock.Mock
}

func (m *MockRelocationRepository) Create(ctx context.Context, req *models.RelocationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRelocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RelocationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RelocationRequest), args.Error(1)
}

func (m *MockRelocationRepository) GetForTenant(ctx context.Context, id, tenantID uuid.UUID) (*models.RelocationRequest, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RelocationRequest), args.Error(1)
}

func (m *MockRelocationRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RelocationRequest, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.RelocationRequest), args.Error(1)
}

func (m *MockRelocationRepository) List(ctx context.Context, filter models.RelocationFilter) ([]*models.RelocationRequest, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.RelocationRequest), args.Error(1)
}

func (m *MockRelocationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RelocationStatus, driverID *uuid.UUID) error {
	args := m.Called(ctx, id, status, driverID)
	return args.Error(0)
}

func (m *MockRelocationRepository) AssignDriver(ctx context.Context, id, driverID uuid.UUID) error {
	args := m.Called(ctx, id, driverID)
	return args.Error(0)
}

func (m *MockRelocationRepository) Rate(ctx context.Context, id, tenantID uuid.UUID, rating int, feedback string) error {
	args := m.Called(ctx, id, tenantID, rating, feedback)
	return args.Error(0)
}

func (m *MockRelocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockMaintenanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequest, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceRepository) List(ctx context.Context, status *models.MaintenanceStatus) ([]*models.MaintenanceRequest, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*models.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MaintenanceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMaintenanceRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	args := m.Called(ctx, id, tenantID)
	return args.Error(0)
}

type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) Create(ctx context.Context, visit *models.VisitRequest) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockVisitRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.VisitRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VisitRequest), args.Error(1)
}

func (m *MockVisitRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.VisitRequest, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.VisitRequest), args.Error(1)
}

func (m *MockVisitRepository) ListByRecipient(ctx context.Context, userID uuid.UUID) ([]*models.VisitRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.VisitRequest), args.Error(1)
}

func (m *MockVisitRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.VisitStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllSeen(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuditLogsRepository struct {
	mock.Mock
}

func (m *MockAuditLogsRepository) Create(ctx context.Context, auditLog *models.AuditLog) error {
	args := m.Called(ctx, auditLog)
	return args.Error(0)
}

func (m *MockAuditLogsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AuditLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuditLog), args.Error(1)
}

func (m *MockAuditLogsRepository) List(ctx context.Context, filter models.AuditLogFilter) ([]*models.AuditLog, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogsRepository) Purge(ctx context.Context, before *time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendSMS(ctx context.Context, to, message string) error {
	args := m.Called(ctx, to, message)
	return args.Error(0)
}

func (m *MockNotifier) SendEmail(ctx context.Context, to, subject, text string) error {
	args := m.Called(ctx, to, subject, text)
	return args.Error(0)
}

func (m *MockNotifier) Notify(ctx context.Context, user *models.User, kind, message string) error {
	args := m.Called(ctx, user, kind, message)
	return args.Error(0)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, msg models.OutboundMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockReceiptStore struct {
	mock.Mock
}

func (m *MockReceiptStore) Put(ctx context.Context, key string, content []byte, contentType string) error {
	args := m.Called(ctx, key, content, contentType)
	return args.Error(0)
}

func (m *MockReceiptStore) SignedURL(ctx context.Context, key, filename string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, filename, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockReceiptStore) EnsureBucket(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReceiptStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockCacheService) SetUser(ctx context.Context, user *models.User, ttl time.Duration) error {
	args := m.Called(ctx, user, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) TakeString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Close() error {
	return m.Called().Error(0)
}
