// Package sessions реализует хранилище эфемерного состояния сессий
// пользователей на основе Redis. Каждая сессия — hash с ключами
// состояния, время жизни продлевается при каждой записи.
package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/lms-platform/internal/config"
)

// LanguageKey ключ языка интерфейса в состоянии сессии.
const LanguageKey = "language"

// Store хранилище состояния сессий.
type Store struct {
	db  *redis.Client
	ttl time.Duration
}

// New подключается к Redis и проверяет доступность сервера.
func New(ctx context.Context, cfg config.RedisConnection) (*Store, error) {
	const op = "sessions.New"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{db: db, ttl: cfg.SessionTTL}, nil
}

// Get возвращает значение ключа сессии. Второй результат false,
// если ключ в сессии не установлен.
func (s *Store) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	const op = "sessions.Get"
	val, err := s.db.HGet(ctx, sessionKey(sessionID), key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// Set записывает значение ключа сессии и продлевает её время жизни.
func (s *Store) Set(ctx context.Context, sessionID, key, value string) error {
	const op = "sessions.Set"
	if err := s.db.HSet(ctx, sessionKey(sessionID), key, value).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.db.Expire(ctx, sessionKey(sessionID), s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Invalidate удаляет состояние сессии целиком.
func (s *Store) Invalidate(ctx context.Context, sessionID string) error {
	return s.db.Del(ctx, sessionKey(sessionID)).Err()
}

// Close закрывает соединение с Redis.
func (s *Store) Close() error {
	return s.db.Close()
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
