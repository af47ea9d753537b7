package services

import (
	"context"
	"time"

	"smartrental/internal/caching"
	"smartrental/internal/logging"
	"smartrental/internal/models"
	"smartrental/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const userCacheTTL = 5 * time.Minute

type UserService interface {
	// Get reads through the profile cache.
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, role string, limit, offset int) ([]*models.User, error)
	SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) (*models.User, error)
	ChangeRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	UpdateNotificationPrefs(ctx context.Context, id uuid.UUID, prefs models.NotificationPrefs) (*models.User, error)
}

type userService struct {
	users    repositories.UserRepository
	cacheSvc caching.CacheService
	logger   zerolog.Logger
}

func NewUserService(users repositories.UserRepository, cacheSvc caching.CacheService) UserService {
	return &userService{
		users:    users,
		cacheSvc: cacheSvc,
		logger:   logging.WithComponent("users"),
	}
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.cacheSvc != nil {
		cached, err := s.cacheSvc.GetUser(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Msg("user cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "User not found")
		}
		return nil, err
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetUser(ctx, user, userCacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("user cache write failed")
		}
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, role string, limit, offset int) ([]*models.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	if offset < 0 {
		offset = 0
	}
	if role == "" {
		return s.users.List(ctx, nil, limit, offset)
	}
	r := models.Role(role)
	if !r.IsValid() {
		return nil, newError(ErrValidation, "Invalid role")
	}
	return s.users.List(ctx, &r, limit, offset)
}

func (s *userService) SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) (*models.User, error) {
	if err := s.users.SetSuspended(ctx, id, suspended); err != nil {
		return nil, s.mapMissing(err)
	}
	s.invalidate(ctx, id)
	s.logger.Info().Str("user_id", id.String()).Bool("suspended", suspended).Msg("user suspension changed")
	return s.Get(ctx, id)
}

func (s *userService) ChangeRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	r := models.Role(role)
	if !r.IsValid() {
		return nil, newError(ErrValidation, "Invalid role")
	}
	if err := s.users.SetRole(ctx, id, r); err != nil {
		return nil, s.mapMissing(err)
	}
	s.invalidate(ctx, id)
	return s.Get(ctx, id)
}

func (s *userService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Deactivate(ctx, id); err != nil {
		return s.mapMissing(err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *userService) UpdateNotificationPrefs(ctx context.Context, id uuid.UUID, prefs models.NotificationPrefs) (*models.User, error) {
	if err := s.users.UpdateNotificationPrefs(ctx, id, prefs); err != nil {
		return nil, s.mapMissing(err)
	}
	s.invalidate(ctx, id)
	return s.Get(ctx, id)
}

func (s *userService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeleteUser(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id.String()).Msg("user cache invalidation failed")
	}
}

func (s *userService) mapMissing(err error) error {
	if isNotFound(err) {
		return newError(ErrNotFound, "User not found")
	}
	return err
}
