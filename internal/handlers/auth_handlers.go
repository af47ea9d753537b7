package handlers

import (
	"net/http"
	"strings"

	"smartrental/internal/models"
	"smartrental/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles registration, login and token refresh.
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// LoginRequest accepts either an email address or a phone number.
type LoginRequest struct {
	EmailOrPhone string `json:"emailOrPhone"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
}

func (r LoginRequest) identifier() string {
	for _, v := range []string{r.EmailOrPhone, r.Email, r.Phone} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// RegisterResponse represents the signup response
type RegisterResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// Register godoc
// @Summary  Create an account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body      services.RegisterInput  true  "New user"
// @Success  201   {object}  RegisterResponse
// @Failure  400   {object}  common.ErrorResponse
// @Failure  409   {object}  common.ErrorResponse
// @Router   /auth/register [post]
func (h *AuthHandlers) Register(c echo.Context) error {
	var req services.RegisterInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.authService.Register(c.Request().Context(), &req)
	if err != nil {
		return serviceError(c, "register", err)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: "Account created successfully",
		User:    user,
	})
}

// Login godoc
// @Summary  Log in with email or phone
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body      LoginRequest  true  "Credentials"
// @Success  200   {object}  services.LoginResult
// @Failure  401   {object}  common.ErrorResponse
// @Failure  403   {object}  common.ErrorResponse
// @Failure  429   {object}  common.ErrorResponse
// @Router   /auth/login [post]
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	ident := req.identifier()
	if ident == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email or phone and password are required")
	}

	result, err := h.authService.Login(c.Request().Context(), ident, req.Password)
	if err != nil {
		return serviceError(c, "log in", err)
	}
	return c.JSON(http.StatusOK, result)
}

// Refresh exchanges a refresh token for a new token pair.
func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req models.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Refresh token is required")
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return serviceError(c, "refresh token", err)
	}
	return c.JSON(http.StatusOK, tokens)
}

// Logout revokes the presented refresh token. Access tokens simply expire.
func (h *AuthHandlers) Logout(c echo.Context) error {
	var req models.RefreshTokenRequest
	_ = c.Bind(&req)

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return serviceError(c, "revoke token", err)
	}
	return message(c, http.StatusOK, "Logged out successfully")
}
