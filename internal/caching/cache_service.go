package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"smartrental/internal/logging"
	"smartrental/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "smartrental:"

type CacheService interface {
	// Profiles read by the JWT middleware on every request. A miss is
	// (nil, nil).
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	SetUser(ctx context.Context, user *models.User, ttl time.Duration) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	// IsRateLimited counts one hit against key in a fixed window.
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	// TakeString reads and deletes key in one step, so a refresh token can
	// only be redeemed once. A miss is ("", nil).
	TakeString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
	Close() error
}

type redisCacheService struct {
	client *redis.Client
}

// NewRedisCacheService accepts host:port or a redis:// / rediss:// URL. A URL
// may carry its own password and database, which win over the arguments.
func NewRedisCacheService(addr, password string, db int) (CacheService, error) {
	opts := &redis.Options{Addr: addr, Password: password, DB: db}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		if parsed.Password == "" {
			parsed.Password = password
		}
		opts = parsed
	}

	client := redis.NewClient(opts)

	logger := logging.WithComponent("cache")
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", opts.Addr).Msg("redis ping failed on initialization")
	} else {
		logger.Debug().Str("addr", opts.Addr).Int("db", opts.DB).Msg("redis connection established")
	}

	return &redisCacheService{client: client}, nil
}

// NewCacheServiceFromClient wraps an existing client.
func NewCacheServiceFromClient(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func userKey(userID uuid.UUID) string {
	return keyPrefix + "user:" + userID.String()
}

// cachedUser carries the fields the JSON model hides.
type cachedUser struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

func (r *redisCacheService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	data, err := r.client.Get(ctx, userKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cached cachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		// a stale shape from an older release is treated as a miss
		_ = r.client.Del(ctx, userKey(userID)).Err()
		return nil, nil
	}
	user := cached.User
	user.PasswordHash = cached.PasswordHash
	return &user, nil
}

func (r *redisCacheService) SetUser(ctx context.Context, user *models.User, ttl time.Duration) error {
	data, err := json.Marshal(cachedUser{User: *user, PasswordHash: user.PasswordHash})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, userKey(user.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return r.client.Del(ctx, userKey(userID)).Err()
}

// IsRateLimited fails closed: an unreachable Redis reports limited.
func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	counterKey := keyPrefix + "ratelimit:" + key

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, counterKey)
		pipe.ExpireNX(ctx, counterKey, window)
		return nil
	})
	if err != nil {
		return true, err
	}
	return incr.Val() > int64(limit), nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, keyPrefix+key, value, ttl).Err()
}

func (r *redisCacheService) TakeString(ctx context.Context, key string) (string, error) {
	val, err := r.client.GetDel(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, keyPrefix+key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCacheService) Close() error {
	return r.client.Close()
}
