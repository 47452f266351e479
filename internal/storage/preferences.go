package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/lms-platform/internal/models"
)

// UpsertOrgEmailPreference создаёт либо перезаписывает согласие
// пользователя на рассылку организации.
func (s *Storage) UpsertOrgEmailPreference(ctx context.Context, username, org, value string) error {
	const op = "storage.UpsertOrgEmailPreference"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_org_tags (username, org, key, value)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (username, org, key)
			  DO UPDATE SET value = EXCLUDED.value`
	if _, err := s.pool.Exec(ctx, query, username, org, models.EmailOptInKey, value); err != nil {
		return fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return nil
}

// GetOrgEmailPreference возвращает текущее значение согласия на рассылку.
func (s *Storage) GetOrgEmailPreference(ctx context.Context, username, org string) (string, error) {
	const op = "storage.GetOrgEmailPreference"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var value string
	query := `SELECT value FROM user_org_tags
			  WHERE username = $1 AND org = $2 AND key = $3`
	if err := s.pool.QueryRow(ctx, query, username, org, models.EmailOptInKey).Scan(&value); err != nil {
		return "", fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return value, nil
}

// GetUserPreference возвращает значение пользовательской настройки по ключу.
func (s *Storage) GetUserPreference(ctx context.Context, username, key string) (string, error) {
	const op = "storage.GetUserPreference"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var value string
	query := `SELECT value FROM user_preferences
			  WHERE username = $1 AND key = $2`
	if err := s.pool.QueryRow(ctx, query, username, key).Scan(&value); err != nil {
		return "", fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return value, nil
}

// SetUserPreference создаёт либо перезаписывает пользовательскую настройку.
func (s *Storage) SetUserPreference(ctx context.Context, username, key, value string) error {
	const op = "storage.SetUserPreference"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_preferences (username, key, value)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (username, key)
			  DO UPDATE SET value = EXCLUDED.value`
	if _, err := s.pool.Exec(ctx, query, username, key, value); err != nil {
		return fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return nil
}
