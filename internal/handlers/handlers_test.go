package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"smartrental/internal/jobs/background"
	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func requireHTTPError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected *echo.HTTPError, got %v", err)
	assert.Equal(t, code, he.Code)
	if msg != "" {
		assert.Equal(t, msg, he.Message)
	}
}

func decode(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func tenant() *services.Actor {
	return &services.Actor{ID: uuid.New(), Role: models.RoleTenant}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		kind error
		want int
	}{
		{services.ErrValidation, http.StatusBadRequest},
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrDenied, http.StatusNotFound},
		{services.ErrConflict, http.StatusConflict},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrAuth, http.StatusUnauthorized},
		{services.ErrTooManyRequests, http.StatusTooManyRequests},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.kind), tc.kind.Error())
	}
}

func TestServiceError_HidesInternalErrors(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/api/relocations/all", "", nil)

	err := serviceError(c, "load requests", errors.New("pq: connection refused"))
	requireHTTPError(t, err, http.StatusInternalServerError, "Failed to load requests")

	err = serviceError(c, "load requests", &services.Error{Kind: services.ErrValidation, Message: "bad input"})
	requireHTTPError(t, err, http.StatusBadRequest, "bad input")
}

func TestRequestRelocation(t *testing.T) {
	svc := new(MockRelocationService)
	h := NewRelocationHandlers(svc)
	actor := tenant()
	houseID := uuid.New()

	created := &models.RelocationRequest{
		ID:            uuid.New(),
		TenantID:      actor.ID,
		HouseID:       houseID,
		DistanceKm:    10,
		HouseSize:     models.HouseSizeSmall,
		EstimatedCost: 2000,
		Status:        models.RelocationPending,
	}
	svc.On("Request", mock.Anything, actor.ID, mock.MatchedBy(func(in *services.RelocationInput) bool {
		return in.HouseID == houseID.String() && in.DistanceKm != nil && *in.DistanceKm == 10 && in.FloorNumber == nil
	})).Return(created, nil)

	body := `{"houseId":"` + houseID.String() + `","distanceKm":10,"houseSize":"small"}`
	c, rec := newContext(http.MethodPost, "/api/relocations/request", body, actor)

	require.NoError(t, h.RequestRelocation(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	out := decode(t, rec.Body.Bytes())
	assert.Equal(t, "Relocation requested", out["message"])
	request := out["request"].(map[string]interface{})
	assert.Equal(t, "pending", request["status"])
	assert.Equal(t, float64(2000), request["estimatedCost"])
	svc.AssertExpectations(t)
}

func TestRequestRelocation_RequiresUser(t *testing.T) {
	h := NewRelocationHandlers(new(MockRelocationService))
	c, _ := newContext(http.MethodPost, "/api/relocations/request", `{}`, nil)

	requireHTTPError(t, h.RequestRelocation(c), http.StatusUnauthorized, "User not authenticated")
}

func TestRequestRelocation_ValidationError(t *testing.T) {
	svc := new(MockRelocationService)
	h := NewRelocationHandlers(svc)
	actor := tenant()

	svc.On("Request", mock.Anything, actor.ID, mock.Anything).
		Return(nil, &services.Error{Kind: services.ErrValidation, Message: "Missing required fields"})

	c, _ := newContext(http.MethodPost, "/api/relocations/request", `{"houseSize":"small"}`, actor)
	requireHTTPError(t, h.RequestRelocation(c), http.StatusBadRequest, "Missing required fields")
}

func TestListMine_EmptyListIsNotNull(t *testing.T) {
	svc := new(MockRelocationService)
	h := NewRelocationHandlers(svc)
	actor := tenant()

	svc.On("ListMine", mock.Anything, actor.ID).Return(nil, nil)

	c, rec := newContext(http.MethodGet, "/api/relocations/mine", "", actor)
	require.NoError(t, h.ListMine(c))
	assert.JSONEq(t, `{"count":0,"requests":[]}`, rec.Body.String())
}

func TestListFiltered(t *testing.T) {
	svc := new(MockRelocationService)
	h := NewRelocationHandlers(svc)

	svc.On("ListFiltered", mock.Anything, mock.MatchedBy(func(f models.RelocationFilter) bool {
		if f.Status == nil || *f.Status != models.RelocationPending {
			return false
		}
		if f.From == nil || f.To == nil {
			return false
		}
		// the upper bound covers the whole last day
		return f.From.Day() == 1 && f.To.Day() == 31 && f.To.Hour() == 23
	})).Return([]*models.RelocationRequest{{ID: uuid.New()}}, nil)

	c, rec := newContext(http.MethodGet, "/api/relocations/filtered?status=pending&from=2024-01-01&to=2024-01-31", "", nil)
	require.NoError(t, h.ListFiltered(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec.Body.Bytes())["count"])
	svc.AssertExpectations(t)
}

func TestListFiltered_BadDate(t *testing.T) {
	h := NewRelocationHandlers(new(MockRelocationService))
	c, _ := newContext(http.MethodGet, "/api/relocations/filtered?from=01-01-2024", "", nil)

	requireHTTPError(t, h.ListFiltered(c), http.StatusBadRequest, "from must be in YYYY-MM-DD format")
}

func TestUpdateStatus(t *testing.T) {
	svc := new(MockRelocationService)
	h := NewRelocationHandlers(svc)
	id := uuid.New()
	driverID := uuid.New()

	updated := &models.RelocationRequest{ID: id, Status: models.RelocationAssigned, DriverID: &driverID}
	svc.On("UpdateStatus", mock.Anything, id, "assigned", &driverID).Return(updated, nil)

	body := `{"status":"assigned","driverId":"` + driverID.String() + `"}`
	c, rec := newContext(http.MethodPatch, "/api/relocations/update/"+id.String(), body, nil)
	c = withParams(c, "requestId", id.String())

	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, "Status updated", decode(t, rec.Body.Bytes())["message"])
	svc.AssertExpectations(t)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := new(MockRelocationService)
	h := NewRelocationHandlers(svc)
	id := uuid.New()

	svc.On("UpdateStatus", mock.Anything, id, "lost", (*uuid.UUID)(nil)).
		Return(nil, &services.Error{Kind: services.ErrValidation, Message: "Invalid status"})

	c, _ := newContext(http.MethodPatch, "/api/relocations/update/"+id.String(), `{"status":"lost"}`, nil)
	c = withParams(c, "requestId", id.String())

	requireHTTPError(t, h.UpdateStatus(c), http.StatusBadRequest, "Invalid status")
}

func TestUpdateStatus_BadPathID(t *testing.T) {
	h := NewRelocationHandlers(new(MockRelocationService))
	c, _ := newContext(http.MethodPatch, "/api/relocations/update/nope", `{"status":"approved"}`, nil)
	c = withParams(c, "requestId", "nope")

	requireHTTPError(t, h.UpdateStatus(c), http.StatusBadRequest, "Invalid request ID")
}

func TestAssignDriver_NotFound(t *testing.T) {
	svc := new(MockRelocationService)
	h := NewRelocationHandlers(svc)
	id, driverID := uuid.New(), uuid.New()

	svc.On("AssignDriver", mock.Anything, id, driverID).
		Return(nil, &services.Error{Kind: services.ErrNotFound, Message: "Driver not found"})

	body := `{"requestId":"` + id.String() + `","driverId":"` + driverID.String() + `"}`
	c, _ := newContext(http.MethodPatch, "/api/relocations/assign-driver", body, nil)

	requireHTTPError(t, h.AssignDriver(c), http.StatusNotFound, "Driver not found")
}

func TestRate(t *testing.T) {
	actor := tenant()
	id := uuid.New()
	body := `{"requestId":"` + id.String() + `","rating":5,"feedback":"smooth move"}`

	t.Run("success", func(t *testing.T) {
		svc := new(MockRelocationService)
		svc.On("Rate", mock.Anything, actor.ID, id, 5, "smooth move").Return(nil)

		c, rec := newContext(http.MethodPost, "/api/relocations/rate", body, actor)
		require.NoError(t, NewRelocationHandlers(svc).Rate(c))
		assert.Equal(t, "Thank you for your feedback!", decode(t, rec.Body.Bytes())["message"])
	})

	t.Run("already rated", func(t *testing.T) {
		svc := new(MockRelocationService)
		svc.On("Rate", mock.Anything, actor.ID, id, 5, "smooth move").
			Return(&services.Error{Kind: services.ErrConflict, Message: "Already rated"})

		c, _ := newContext(http.MethodPost, "/api/relocations/rate", body, actor)
		requireHTTPError(t, NewRelocationHandlers(svc).Rate(c), http.StatusBadRequest, "Already rated")
	})

	t.Run("other tenant", func(t *testing.T) {
		svc := new(MockRelocationService)
		svc.On("Rate", mock.Anything, actor.ID, id, 5, "smooth move").
			Return(&services.Error{Kind: services.ErrDenied, Message: "Not found or unauthorized"})

		c, _ := newContext(http.MethodPost, "/api/relocations/rate", body, actor)
		requireHTTPError(t, NewRelocationHandlers(svc).Rate(c), http.StatusNotFound, "Not found or unauthorized")
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := new(MockRelocationService)
		c, _ := newContext(http.MethodPost, "/api/relocations/rate", `{"requestId":"x","rating":5}`, actor)

		requireHTTPError(t, NewRelocationHandlers(svc).Rate(c), http.StatusNotFound, "Not found or unauthorized")
		svc.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteRelocation(t *testing.T) {
	svc := new(MockRelocationService)
	h := NewRelocationHandlers(svc)
	id := uuid.New()

	svc.On("Delete", mock.Anything, id).Return(nil)

	c, rec := newContext(http.MethodDelete, "/api/relocations/"+id.String(), "", nil)
	c = withParams(c, "requestId", id.String())

	require.NoError(t, h.Delete(c))
	assert.Equal(t, "Relocation request deleted successfully", decode(t, rec.Body.Bytes())["message"])
}

func TestGetDefaulters(t *testing.T) {
	landlord := &services.Actor{ID: uuid.New(), Role: models.RoleLandlord}

	t.Run("before due day", func(t *testing.T) {
		svc := new(MockDefaulterService)
		svc.On("Detect", mock.Anything, landlord.ID).Return(&services.DefaulterReport{
			Early:   true,
			Message: "No defaulters yet. Rent is due by the 5th.",
		}, nil)

		c, rec := newContext(http.MethodGet, "/api/defaulters/rent-defaulters", "", landlord)
		require.NoError(t, NewDefaulterHandlers(svc).GetDefaulters(c))
		assert.JSONEq(t, `{"message":"No defaulters yet. Rent is due by the 5th."}`, rec.Body.String())
	})

	t.Run("after due day", func(t *testing.T) {
		svc := new(MockDefaulterService)
		svc.On("Detect", mock.Anything, landlord.ID).Return(&services.DefaulterReport{
			Count: 1,
			Defaulters: []models.Defaulter{{
				Tenant:      models.UserContact{FullName: "Jane"},
				MonthlyRent: 15000,
				LeaseStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				LeaseEnd:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			}},
		}, nil)

		c, rec := newContext(http.MethodGet, "/api/defaulters/rent-defaulters", "", landlord)
		require.NoError(t, NewDefaulterHandlers(svc).GetDefaulters(c))

		out := decode(t, rec.Body.Bytes())
		assert.Equal(t, float64(1), out["count"])
		assert.Len(t, out["defaulters"], 1)
	})
}

func TestSendReminders(t *testing.T) {
	landlord := &services.Actor{ID: uuid.New(), Role: models.RoleLandlord}
	svc := new(MockDefaulterService)
	svc.On("SendReminders", mock.Anything, landlord.ID).Return(&services.ReminderReport{
		Message:  "Reminders sent",
		Count:    1,
		Reminded: []models.Reminded{{Tenant: "Jane", Phone: "+254700000000", House: "Riverside"}},
	}, nil)

	c, rec := newContext(http.MethodPost, "/api/defaulters/send-defaulter-sms", "", landlord)
	require.NoError(t, NewDefaulterHandlers(svc).SendReminders(c))

	out := decode(t, rec.Body.Bytes())
	assert.Equal(t, "Reminders sent", out["message"])
	assert.Equal(t, float64(1), out["count"])
}

func TestNotifyDefaulter(t *testing.T) {
	landlord := &services.Actor{ID: uuid.New(), Role: models.RoleLandlord}
	tenantID := uuid.New()
	svc := new(MockDefaulterService)
	svc.On("NotifyDefaulter", mock.Anything, landlord.ID, tenantID).Return("Jane", nil)

	c, rec := newContext(http.MethodPost, "/api/defaulters/notify/"+tenantID.String(), "", landlord)
	c = withParams(c, "tenantId", tenantID.String())

	require.NoError(t, NewDefaulterHandlers(svc).NotifyDefaulter(c))
	assert.Equal(t, "Notification sent to Jane", decode(t, rec.Body.Bytes())["message"])
}

func TestDownloadReceipt(t *testing.T) {
	actor := tenant()
	paymentID := uuid.New()
	svc := new(MockPaymentService)
	svc.On("Receipt", mock.Anything, actor.ID, paymentID).Return(&services.ReceiptFile{
		Name:    "receipt-123.pdf",
		Content: []byte("%PDF-1.3"),
	}, nil)

	c, rec := newContext(http.MethodGet, "/api/payments/"+paymentID.String()+"/receipt", "", actor)
	c = withParams(c, "id", paymentID.String())

	require.NoError(t, NewPaymentHandlers(svc).DownloadReceipt(c))
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="receipt-123.pdf"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}

func TestPayRent_Forbidden(t *testing.T) {
	actor := tenant()
	svc := new(MockPaymentService)
	svc.On("PayRent", mock.Anything, actor.ID, mock.Anything).
		Return(nil, &services.Error{Kind: services.ErrForbidden, Message: "You are not the tenant on this agreement"})

	body := `{"agreementId":"` + uuid.NewString() + `","amountPaid":15000,"paymentMethod":"mpesa"}`
	c, _ := newContext(http.MethodPost, "/api/payments/pay-rent", body, actor)

	requireHTTPError(t, NewPaymentHandlers(svc).PayRent(c), http.StatusForbidden, "You are not the tenant on this agreement")
}

func TestLogin(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/api/auth/login", `{"password":"x"}`, nil)
		requireHTTPError(t, NewAuthHandlers(new(MockAuthService)).Login(c), http.StatusBadRequest, "Email or phone and password are required")
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "jane@example.com", "wrong").
			Return(nil, &services.Error{Kind: services.ErrAuth, Message: "Invalid credentials"})

		c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"jane@example.com","password":"wrong"}`, nil)
		requireHTTPError(t, NewAuthHandlers(svc).Login(c), http.StatusUnauthorized, "Invalid credentials")
	})
}

func TestDeleteNotification_OtherUsers(t *testing.T) {
	actor := tenant()
	id := uuid.New()
	svc := new(MockNotificationService)
	svc.On("Delete", mock.Anything, actor.ID, id).
		Return(&services.Error{Kind: services.ErrForbidden, Message: "Not authorized to delete this notification"})

	c, _ := newContext(http.MethodDelete, "/api/notifications/"+id.String(), "", actor)
	c = withParams(c, "id", id.String())

	requireHTTPError(t, NewNotificationHandlers(svc).Delete(c), http.StatusForbidden, "Not authorized to delete this notification")
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		cache := new(MockCacheService)
		cache.On("Ping", mock.Anything).Return(nil)

		c, rec := newContext(http.MethodGet, "/health", "", nil)
		require.NoError(t, NewHealthHandlers(stubPinger{}, cache, nil, "test").HealthCheck(c))

		out := decode(t, rec.Body.Bytes())
		assert.Equal(t, "healthy", out["status"])
		assert.Equal(t, "test", out["version"])
	})

	t.Run("degraded", func(t *testing.T) {
		cache := new(MockCacheService)
		cache.On("Ping", mock.Anything).Return(errors.New("redis down"))

		c, rec := newContext(http.MethodGet, "/health", "", nil)
		require.NoError(t, NewHealthHandlers(stubPinger{}, cache, nil, "test").HealthCheck(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		out := decode(t, rec.Body.Bytes())
		assert.Equal(t, "degraded", out["status"])
		assert.Equal(t, "unhealthy", out["services"].(map[string]interface{})["redis"])
	})
}

func TestReadinessCheck_DatabaseDown(t *testing.T) {
	cache := new(MockCacheService)
	cache.On("Ping", mock.Anything).Return(nil)

	c, rec := newContext(http.MethodGet, "/health/ready", "", nil)
	require.NoError(t, NewHealthHandlers(stubPinger{err: errors.New("db down")}, cache, nil, "test").ReadinessCheck(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not_ready", decode(t, rec.Body.Bytes())["status"])
}

type stubRunner struct {
	ran []string
}

func (s *stubRunner) GetJobStatus() []background.JobStatus {
	return []background.JobStatus{{Name: background.DefaulterRemindersJob}}
}

func (s *stubRunner) RunNow(name string) error {
	if name != background.DefaulterRemindersJob {
		return background.ErrUnknownJob
	}
	s.ran = append(s.ran, name)
	return nil
}

func TestJobHandlers(t *testing.T) {
	runner := &stubRunner{}
	h := NewJobHandlers(runner)

	c, rec := newContext(http.MethodGet, "/api/admin/jobs", "", nil)
	require.NoError(t, h.ListJobs(c))
	assert.JSONEq(t, `{"jobs":[{"name":"defaulter-reminders"}]}`, rec.Body.String())

	c, rec = newContext(http.MethodPost, "/api/admin/jobs/defaulter-reminders/run", "", nil)
	c = withParams(c, "name", background.DefaulterRemindersJob)
	require.NoError(t, h.RunJob(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{background.DefaulterRemindersJob}, runner.ran)

	c, _ = newContext(http.MethodPost, "/api/admin/jobs/nope/run", "", nil)
	c = withParams(c, "name", "nope")
	requireHTTPError(t, h.RunJob(c), http.StatusNotFound, "Job not found")
}

func TestListAuditLogs(t *testing.T) {
	svc := new(MockAuditLogsService)
	h := NewAuditLogsHandlers(svc)
	userID := uuid.New()

	svc.On("ListAuditLogs", mock.Anything, mock.MatchedBy(func(f models.AuditLogFilter) bool {
		return f.Action == "PATCH /api/relocations" && f.ActionBy != nil && *f.ActionBy == userID &&
			f.Since != nil && f.Until != nil && f.Until.Hour() == 23 && f.Limit == 10 && f.Offset == 20
	})).Return(&models.AuditLogPage{Entries: []*models.AuditLog{}, Total: 21, Limit: 10, Offset: 20}, nil)

	target := "/api/audit-logs?action=PATCH+/api/relocations&userId=" + userID.String() +
		"&from=2026-01-01&to=2026-01-31&limit=10&offset=20"
	c, rec := newContext(http.MethodGet, target, "", nil)

	require.NoError(t, h.ListAuditLogs(c))
	body := decode(t, rec.Body.Bytes())
	assert.Equal(t, float64(21), body["total"])
	assert.Equal(t, []interface{}{}, body["data"])
	svc.AssertExpectations(t)
}

func TestListAuditLogs_BadParams(t *testing.T) {
	h := NewAuditLogsHandlers(new(MockAuditLogsService))

	for target, msg := range map[string]string{
		"/api/audit-logs?userId=nope":                    "Invalid user ID",
		"/api/audit-logs?limit=many":                     "limit must be a non-negative integer",
		"/api/audit-logs?from=2026-02-01&to=2026-01-01": "from must not be after to",
	} {
		c, _ := newContext(http.MethodGet, target, "", nil)
		requireHTTPError(t, h.ListAuditLogs(c), http.StatusBadRequest, msg)
	}
}

func TestClearAuditLogs_Before(t *testing.T) {
	svc := new(MockAuditLogsService)
	h := NewAuditLogsHandlers(svc)

	svc.On("ClearAuditLogs", mock.Anything, mock.MatchedBy(func(before *time.Time) bool {
		return before != nil && before.Year() == 2026 && before.Month() == time.January && before.Day() == 1
	})).Return(int64(4), nil)

	c, rec := newContext(http.MethodDelete, "/api/audit-logs?before=2026-01-01", "", nil)
	require.NoError(t, h.ClearAuditLogs(c))
	assert.Equal(t, float64(4), decode(t, rec.Body.Bytes())["deleted"])

	c, _ = newContext(http.MethodDelete, "/api/audit-logs?before=yesterday", "", nil)
	requireHTTPError(t, h.ClearAuditLogs(c), http.StatusBadRequest, "before must be in YYYY-MM-DD format")
}
