package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"smartrental/internal/common"
	"smartrental/internal/logging"
	"smartrental/internal/services"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// tokenContextKey is where echojwt stores the parsed *jwt.Token.
const tokenContextKey = "user"

// JWTConfig selects how bearer tokens are verified. Keyfunc wins over Secret.
type JWTConfig struct {
	Secret  string
	Keyfunc jwt.Keyfunc
}

// NewJWKSKeyfunc fetches a remote key set and keeps it refreshed until ctx
// is cancelled.
func NewJWKSKeyfunc(ctx context.Context, jwksURL string) (jwt.Keyfunc, error) {
	logger := logging.WithComponent("jwks")
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Error().Err(err).Str("url", jwksURL).Msg("failed to refresh JWKS")
		},
	})
	if err != nil {
		return nil, err
	}
	return jwks.Keyfunc, nil
}

// JWTMiddleware verifies the bearer token and then loads the caller.
func JWTMiddleware(users services.UserService, cfg JWTConfig) echo.MiddlewareFunc {
	jwtCfg := echojwt.Config{
		ContextKey: tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(services.TokenClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// err is the raw extractor or parser error here, not a TokenError.
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied: No token")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		},
	}
	if cfg.Keyfunc != nil {
		jwtCfg.KeyFunc = cfg.Keyfunc
	} else {
		jwtCfg.SigningKey = []byte(cfg.Secret)
	}

	verify := echojwt.WithConfig(jwtCfg)
	load := LoadUser(users)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(load(next))
	}
}

// LoadUser resolves the token subject to a live account and puts its id and
// role on the request context.
func LoadUser(users services.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}
			claims, ok := token.Claims.(*services.TokenClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			subject := claims.UserID
			if subject == "" {
				subject = claims.Subject
			}
			userID, err := uuid.Parse(subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user_id format")
			}

			user, err := users.Get(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, services.ErrNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
				}
				c.Logger().Errorf("failed to load user %s: %v", userID, err)
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to authenticate")
			}
			if user.Suspended {
				return echo.NewHTTPError(http.StatusForbidden, "Account suspended by admin")
			}
			if !user.Active {
				return echo.NewHTTPError(http.StatusUnauthorized, "Account deactivated")
			}

			ctx := common.WithUser(c.Request().Context(), user.ID, user.Role)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
