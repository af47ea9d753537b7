package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"smartrental/internal/common"
	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/labstack/echo/v4"
)

// maxAuditBody bounds how much of a request body is copied into the log.
const maxAuditBody = 64 << 10

// AuditMiddleware provides automatic audit logging for HTTP requests
type AuditMiddleware struct {
	auditService services.AuditLogsService
}

// NewAuditMiddleware creates a new audit middleware instance
func NewAuditMiddleware(auditService services.AuditLogsService) *AuditMiddleware {
	return &AuditMiddleware{
		auditService: auditService,
	}
}

// LogAction records every authenticated non-GET request that was answered
// with a status below 400. A failing audit write never fails the request.
func (m *AuditMiddleware) LogAction() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method == http.MethodGet || req.Method == http.MethodHead || req.Method == http.MethodOptions {
				return next(c)
			}

			body := m.captureBody(c)
			err := next(c)

			if responseStatus(c, err) >= http.StatusBadRequest {
				return err
			}

			ctx := req.Context()
			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return err
			}

			details := models.JSONB{
				"params":    pathParams(c),
				"ip":        c.RealIP(),
				"userAgent": req.UserAgent(),
			}
			if body != nil {
				details["body"] = body
			}
			if len(c.QueryParams()) > 0 {
				details["query"] = c.QueryParams()
			}

			action := req.Method + " " + req.URL.Path
			if logErr := m.auditService.LogActivity(ctx, userID, action, details); logErr != nil {
				c.Logger().Errorf("Failed to log audit activity: %v", logErr)
			}

			return err
		}
	}
}

// captureBody copies a JSON body for the log and puts it back for the handler.
func (m *AuditMiddleware) captureBody(c echo.Context) map[string]interface{} {
	req := c.Request()
	if req.Body == nil || !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(req.Body, maxAuditBody+1))
	if err != nil {
		return nil
	}
	req.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), req.Body))

	if len(raw) == 0 || len(raw) > maxAuditBody {
		return nil
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	for key := range body {
		if m.isSensitiveField(key) {
			body[key] = "[REDACTED]"
		}
	}
	return body
}

// isSensitiveField checks if a body field carries a credential
func (m *AuditMiddleware) isSensitiveField(fieldName string) bool {
	sensitiveFields := []string{
		"password",
		"refreshtoken",
		"token",
		"secret",
	}

	name := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFields {
		if name == sensitive {
			return true
		}
	}

	return false
}

func pathParams(c echo.Context) map[string]string {
	names := c.ParamNames()
	params := make(map[string]string, len(names))
	for _, name := range names {
		params[name] = c.Param(name)
	}
	return params
}

func responseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
