package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"smartrental/internal/caching"
	"smartrental/internal/logging"
	"smartrental/internal/models"
	"smartrental/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "smartrental-auth"
	tokenAudience = "smartrental-api"

	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

// AuthService handles registration, login and token issuance.
type AuthService interface {
	Register(ctx context.Context, in *RegisterInput) (*models.User, error)
	Login(ctx context.Context, emailOrPhone, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateToken(token string) (*TokenClaims, error)
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginResult struct {
	*models.TokenResponse
	RedirectTo string       `json:"redirectTo"`
	User       *models.User `json:"user"`
}

type authService struct {
	users      repositories.UserRepository
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   int // seconds
	refreshTTL int // seconds
	now        func() time.Time
	logger     zerolog.Logger
}

func NewAuthService(users repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTLSeconds, refreshTTLSeconds int) AuthService {
	return &authService{
		users:      users,
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTLSeconds,
		refreshTTL: refreshTTLSeconds,
		now:        time.Now,
		logger:     logging.WithComponent("auth"),
	}
}

func (s *authService) Register(ctx context.Context, in *RegisterInput) (*models.User, error) {
	if in == nil {
		return nil, newError(ErrValidation, "All fields are required")
	}
	fullName := strings.TrimSpace(in.FullName)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.Phone)
	role := models.Role(strings.ToLower(strings.TrimSpace(in.Role)))
	if fullName == "" || email == "" || phone == "" || in.Password == "" || role == "" {
		return nil, newError(ErrValidation, "All fields are required")
	}
	if !role.IsValid() {
		return nil, newError(ErrValidation, "Invalid role")
	}
	if len(in.Password) < 6 {
		return nil, newError(ErrValidation, "Password must be at least 6 characters")
	}

	exists, err := s.users.ExistsByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newError(ErrConflict, "User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:                uuid.New(),
		FullName:          fullName,
		Email:             email,
		Phone:             phone,
		PasswordHash:      string(hash),
		Role:              role,
		Active:            true,
		NotificationPrefs: models.DefaultNotificationPrefs(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("role", string(role)).Msg("user registered")
	return user, nil
}

// Login refuses suspended and deactivated accounts and throttles repeated
// attempts per identifier.
func (s *authService) Login(ctx context.Context, emailOrPhone, password string) (*LoginResult, error) {
	ident := strings.ToLower(strings.TrimSpace(emailOrPhone))
	if ident == "" || password == "" {
		return nil, newError(ErrValidation, "emailOrPhone and password are required")
	}

	limited, err := s.cacheSvc.IsRateLimited(ctx, "login:"+ident, loginAttemptLimit, loginAttemptWindow)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login rate limiter unavailable")
	} else if limited {
		return nil, newError(ErrTooManyRequests, "Too many login attempts. Try again later.")
	}

	user, err := s.users.GetByEmailOrPhone(ctx, ident)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(ErrAuth, "Invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, newError(ErrAuth, "Invalid credentials")
	}
	if user.Suspended {
		return nil, newError(ErrForbidden, "Account suspended by admin")
	}
	if !user.Active {
		return nil, newError(ErrForbidden, "Account deactivated")
	}

	tokens, err := s.generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{TokenResponse: tokens, RedirectTo: DashboardPath(user.Role), User: user}, nil
}

// DashboardPath is where the client lands after login.
func DashboardPath(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "/admin/dashboard"
	case models.RoleLandlord:
		return "/landlord/dashboard"
	case models.RoleTenant:
		return "/tenant/dashboard"
	case models.RoleCaretaker:
		return "/caretaker/dashboard"
	}
	return "/"
}

func (s *authService) generateTokens(ctx context.Context, user *models.User) (*models.TokenResponse, error) {
	now := s.now()
	tokenID := uuid.NewString()

	claims := TokenClaims{
		UserID: user.ID.String(),
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	refreshToken, err := generateSecureToken()
	if err != nil {
		return nil, err
	}
	refreshData := fmt.Sprintf("%s:%d", user.ID, now.Unix()+int64(s.refreshTTL))
	if err := s.cacheSvc.SetString(ctx, refreshKey(refreshToken), refreshData, time.Duration(s.refreshTTL)*time.Second); err != nil {
		// Access token still works; the client will have to log in again later.
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to store refresh token")
	}

	return &models.TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.tokenTTL,
		RefreshToken: refreshToken,
		UserID:       user.ID.String(),
		Role:         user.Role,
		IssuedAt:     now,
	}, nil
}

// Refresh rotates the refresh token: the presented one is revoked whether or
// not a new pair can be issued.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	if refreshToken == "" {
		return nil, newError(ErrValidation, "refreshToken is required")
	}

	data, err := s.cacheSvc.TakeString(ctx, refreshKey(refreshToken))
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, newError(ErrAuth, "Invalid refresh token")
	}

	userIDStr, expiryStr, ok := strings.Cut(data, ":")
	if !ok {
		return nil, newError(ErrAuth, "Invalid refresh token")
	}
	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil || s.now().Unix() > expiry {
		return nil, newError(ErrAuth, "Refresh token expired")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, newError(ErrAuth, "Invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(ErrAuth, "User not found")
		}
		return nil, err
	}
	if user.Suspended {
		return nil, newError(ErrForbidden, "Account suspended by admin")
	}
	if !user.Active {
		return nil, newError(ErrForbidden, "Account deactivated")
	}

	return s.generateTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.cacheSvc.Delete(ctx, refreshKey(refreshToken))
}

// ValidateToken parses an HS256 access token issued by this service.
func (s *authService) ValidateToken(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, newError(ErrAuth, "Invalid token")
	}
	if !parsed.Valid {
		return nil, newError(ErrAuth, "Invalid token")
	}
	return claims, nil
}

func refreshKey(token string) string {
	return "refresh_token:" + hashToken(token)
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// hashToken creates a SHA-256 hash of the token for storage
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
