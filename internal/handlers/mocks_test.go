package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"smartrental/internal/common"
	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

// newContext builds an echo context for a direct handler call. A nil caller
// leaves the request unauthenticated.
func newContext(method, target, body string, caller *services.Actor) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if caller != nil {
		req = req.WithContext(common.WithUser(req.Context(), caller.ID, caller.Role))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withParams(c echo.Context, pairs ...string) echo.Context {
	var names, values []string
	for i := 0; i+1 < len(pairs); i += 2 {
		names = append(names, pairs[i])
		values = append(values, pairs[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c
}

type MockRelocationService struct {
	mock.Mock
}

func (m *MockRelocationService) Request(ctx context.Context, tenantID uuid.UUID, in *services.RelocationInput) (*models.RelocationRequest, error) {
	args := m.Called(ctx, tenantID, in)
	if r := args.Get(0); r != nil {
		return r.(*models.RelocationRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRelocationService) ListMine(ctx context.Context, tenantID uuid.UUID) ([]*models.RelocationRequest, error) {
	args := m.Called(ctx, tenantID)
	if r := args.Get(0); r != nil {
		return r.([]*models.RelocationRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRelocationService) ListAll(ctx context.Context) ([]*models.RelocationRequest, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]*models.RelocationRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRelocationService) ListFiltered(ctx context.Context, filter models.RelocationFilter) ([]*models.RelocationRequest, error) {
	args := m.Called(ctx, filter)
	if r := args.Get(0); r != nil {
		return r.([]*models.RelocationRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRelocationService) Get(ctx context.Context, id uuid.UUID) (*models.RelocationRequest, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*models.RelocationRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRelocationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string, driverID *uuid.UUID) (*models.RelocationRequest, error) {
	args := m.Called(ctx, id, status, driverID)
	if r := args.Get(0); r != nil {
		return r.(*models.RelocationRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRelocationService) AssignDriver(ctx context.Context, id, driverID uuid.UUID) (*models.RelocationRequest, error) {
	args := m.Called(ctx, id, driverID)
	if r := args.Get(0); r != nil {
		return r.(*models.RelocationRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRelocationService) Complete(ctx context.Context, id uuid.UUID) (*models.RelocationRequest, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*models.RelocationRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRelocationService) Rate(ctx context.Context, tenantID, id uuid.UUID, rating int, feedback string) error {
	return m.Called(ctx, tenantID, id, rating, feedback).Error(0)
}

func (m *MockRelocationService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRelocationService) NotifyTenant(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockMaintenanceService struct {
	mock.Mock
}

func (m *MockMaintenanceService) Create(ctx context.Context, tenantID uuid.UUID, in *services.MaintenanceInput) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, tenantID, in)
	if r := args.Get(0); r != nil {
		return r.(*models.MaintenanceRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMaintenanceService) List(ctx context.Context, status string) ([]*models.MaintenanceRequest, error) {
	args := m.Called(ctx, status)
	if r := args.Get(0); r != nil {
		return r.([]*models.MaintenanceRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMaintenanceService) ListMine(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequest, error) {
	args := m.Called(ctx, tenantID)
	if r := args.Get(0); r != nil {
		return r.([]*models.MaintenanceRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMaintenanceService) Get(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*models.MaintenanceRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMaintenanceService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, id, status)
	if r := args.Get(0); r != nil {
		return r.(*models.MaintenanceRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMaintenanceService) Delete(ctx context.Context, actor services.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

type MockVisitService struct {
	mock.Mock
}

func (m *MockVisitService) Request(ctx context.Context, tenantID uuid.UUID, in *services.VisitInput) (*models.VisitRequest, error) {
	args := m.Called(ctx, tenantID, in)
	if r := args.Get(0); r != nil {
		return r.(*models.VisitRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVisitService) ListMine(ctx context.Context, tenantID uuid.UUID) ([]*models.VisitRequest, error) {
	args := m.Called(ctx, tenantID)
	if r := args.Get(0); r != nil {
		return r.([]*models.VisitRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVisitService) ListReceived(ctx context.Context, userID uuid.UUID) ([]*models.VisitRequest, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.([]*models.VisitRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVisitService) Respond(ctx context.Context, actor services.Actor, id uuid.UUID, action string) (*models.VisitRequest, error) {
	args := m.Called(ctx, actor, id, action)
	if r := args.Get(0); r != nil {
		return r.(*models.VisitRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDefaulterService struct {
	mock.Mock
}

func (m *MockDefaulterService) Detect(ctx context.Context, landlordID uuid.UUID) (*services.DefaulterReport, error) {
	args := m.Called(ctx, landlordID)
	if r := args.Get(0); r != nil {
		return r.(*services.DefaulterReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDefaulterService) SendReminders(ctx context.Context, landlordID uuid.UUID) (*services.ReminderReport, error) {
	args := m.Called(ctx, landlordID)
	if r := args.Get(0); r != nil {
		return r.(*services.ReminderReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDefaulterService) NotifyDefaulter(ctx context.Context, landlordID, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, landlordID, tenantID)
	return args.String(0), args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) PayRent(ctx context.Context, tenantID uuid.UUID, in *services.PayRentInput) (*models.RentPayment, error) {
	args := m.Called(ctx, tenantID, in)
	if r := args.Get(0); r != nil {
		return r.(*models.RentPayment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentService) ListMine(ctx context.Context, tenantID uuid.UUID) ([]*models.RentPayment, error) {
	args := m.Called(ctx, tenantID)
	if r := args.Get(0); r != nil {
		return r.([]*models.RentPayment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentService) ListForLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.RentPayment, error) {
	args := m.Called(ctx, landlordID)
	if r := args.Get(0); r != nil {
		return r.([]*models.RentPayment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentService) ListForHouse(ctx context.Context, houseID uuid.UUID) ([]*models.RentPayment, error) {
	args := m.Called(ctx, houseID)
	if r := args.Get(0); r != nil {
		return r.([]*models.RentPayment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentService) EarningsSummary(ctx context.Context, landlordID uuid.UUID) ([]models.MonthlyEarnings, error) {
	args := m.Called(ctx, landlordID)
	if r := args.Get(0); r != nil {
		return r.([]models.MonthlyEarnings), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentService) Receipt(ctx context.Context, tenantID, paymentID uuid.UUID) (*services.ReceiptFile, error) {
	args := m.Called(ctx, tenantID, paymentID)
	if r := args.Get(0); r != nil {
		return r.(*services.ReceiptFile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentService) ReceiptURL(ctx context.Context, tenantID, paymentID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID, paymentID)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentService) EmailReceipt(ctx context.Context, tenantID, paymentID uuid.UUID) error {
	return m.Called(ctx, tenantID, paymentID).Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in *services.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, in)
	if r := args.Get(0); r != nil {
		return r.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, emailOrPhone, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, emailOrPhone, password)
	if r := args.Get(0); r != nil {
		return r.(*services.LoginResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	args := m.Called(ctx, refreshToken)
	if r := args.Get(0); r != nil {
		return r.(*models.TokenResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockAuthService) ValidateToken(token string) (*services.TokenClaims, error) {
	args := m.Called(token)
	if r := args.Get(0); r != nil {
		return r.(*services.TokenClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

func (m *MockNotificationService) SendEmail(ctx context.Context, to, subject, text string) error {
	return m.Called(ctx, to, subject, text).Error(0)
}

func (m *MockNotificationService) Notify(ctx context.Context, user *models.User, kind, message string) error {
	return m.Called(ctx, user, kind, message).Error(0)
}

func (m *MockNotificationService) List(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.([]*models.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationService) MarkAllSeen(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	return m.Called(ctx, userID, notificationID).Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheService) SetUser(ctx context.Context, user *models.User, ttl time.Duration) error {
	return m.Called(ctx, user, ttl).Error(0)
}

func (m *MockCacheService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheService) TakeString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCacheService) Close() error {
	return m.Called().Error(0)
}

type MockAuditLogsService struct {
	mock.Mock
}

func (m *MockAuditLogsService) LogActivity(ctx context.Context, actionBy uuid.UUID, action string, details models.JSONB) error {
	return m.Called(ctx, actionBy, action, details).Error(0)
}

func (m *MockAuditLogsService) GetAuditLog(ctx context.Context, id uuid.UUID) (*models.AuditLog, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*models.AuditLog); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuditLogsService) ListAuditLogs(ctx context.Context, filter models.AuditLogFilter) (*models.AuditLogPage, error) {
	args := m.Called(ctx, filter)
	if p, ok := args.Get(0).(*models.AuditLogPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuditLogsService) ClearAuditLogs(ctx context.Context, before *time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }
