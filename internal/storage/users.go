package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/lms-platform/internal/models"
)

// CreateAccount сохраняет нового пользователя вместе с пустым профилем
// и регистрацией в одной транзакции. Конфликт по имени или почте
// обнаруживается на коммите и возвращается как ErrConflict.
func (s *Storage) CreateAccount(ctx context.Context, user models.User, activationKey string) (string, error) {
	const op = "storage.CreateAccount"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var newUID string
	query := `INSERT INTO users (username, email, password_hash, is_active)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := tx.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.IsActive).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, translateErr(err))
	}

	query = `INSERT INTO profiles (username) VALUES ($1);`
	if _, err := tx.Exec(ctx, query, user.Username); err != nil {
		return "", fmt.Errorf("%s: %w", op, translateErr(err))
	}

	query = `INSERT INTO registrations (username, activation_key) VALUES ($1, $2);`
	if _, err := tx.Exec(ctx, query, user.Username, activationKey); err != nil {
		return "", fmt.Errorf("%s: %w", op, translateErr(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return newUID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, is_active
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.pool.QueryRow(ctx, query, username)
	if err := row.Scan(&u.UUID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по адресу электронной почты.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, is_active
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.pool.QueryRow(ctx, query, email)
	if err := row.Scan(&u.UUID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return u, nil
}

// UsernameExists проверяет, занято ли имя пользователя.
func (s *Storage) UsernameExists(ctx context.Context, username string) (bool, error) {
	const op = "storage.UsernameExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	if err := s.pool.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// EmailExists проверяет, занят ли адрес электронной почты.
func (s *Storage) EmailExists(ctx context.Context, email string) (bool, error) {
	const op = "storage.EmailExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	if err := s.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// GetRegistrationByKey возвращает регистрацию по ключу активации.
func (s *Storage) GetRegistrationByKey(ctx context.Context, activationKey string) (*models.Registration, error) {
	const op = "storage.GetRegistrationByKey"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT username, activation_key, redeemed_at
			  FROM registrations
			  WHERE activation_key = $1`
	reg := &models.Registration{}
	row := s.pool.QueryRow(ctx, query, activationKey)
	if err := row.Scan(&reg.Username, &reg.ActivationKey, &reg.RedeemedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return reg, nil
}

// ActivateUser помечает учётную запись активной и погашает ключ
// активации. Повторный вызов безвреден.
func (s *Storage) ActivateUser(ctx context.Context, username string) error {
	const op = "storage.ActivateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET is_active = TRUE WHERE username = $1`
	if _, err := s.pool.Exec(ctx, query, username); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query = `UPDATE registrations
			 SET redeemed_at = CURRENT_TIMESTAMP
			 WHERE username = $1 AND redeemed_at IS NULL`
	if _, err := s.pool.Exec(ctx, query, username); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreatePasswordResetToken сохраняет одноразовый токен сброса пароля.
func (s *Storage) CreatePasswordResetToken(ctx context.Context, username, token string) error {
	const op = "storage.CreatePasswordResetToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO password_reset_tokens (username, token) VALUES ($1, $2)`
	if _, err := s.pool.Exec(ctx, query, username, token); err != nil {
		return fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return nil
}
