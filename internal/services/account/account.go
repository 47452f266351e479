// Package account содержит бизнес-логику управления учётными записями:
// создание, проверку занятости, активацию, вход и запрос сброса пароля.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/lms-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/lms-platform/internal/lib/password"
	"github.com/magabrotheeeer/lms-platform/internal/lib/sl"
	"github.com/magabrotheeeer/lms-platform/internal/lib/validation"
	"github.com/magabrotheeeer/lms-platform/internal/models"
	"github.com/magabrotheeeer/lms-platform/internal/storage"
)

// Ошибки операций с учётными записями. Обработчики HTTP сопоставляют
// их со статусами ответов; всё, что не входит в этот набор, считается
// внутренней ошибкой.
var (
	// ErrAccountExists имя пользователя или почта уже заняты.
	ErrAccountExists = errors.New("account already exists")
	// ErrNotFound учётная запись не найдена.
	ErrNotFound = errors.New("user not found")
	// ErrNotAuthorized ключ активации не найден.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrInvalidCredentials неверное имя пользователя или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository описывает контракт для работы с учётными записями в базе данных.
type Repository interface {
	CreateAccount(ctx context.Context, user models.User, activationKey string) (string, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetRegistrationByKey(ctx context.Context, activationKey string) (*models.Registration, error)
	ActivateUser(ctx context.Context, username string) error
	CreatePasswordResetToken(ctx context.Context, username, token string) error
}

// Sender описывает контракт отправки писем пользователям.
type Sender interface {
	SendPasswordResetLink(email, username, link string) error
}

// Service отвечает за жизненный цикл учётной записи.
type Service struct {
	repo   Repository
	maker  jwt.Maker
	sender Sender
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, maker jwt.Maker, sender Sender, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		maker:  maker,
		sender: sender,
		log:    log,
	}
}

// CreateAccount создаёт новую неактивную учётную запись вместе с пустым
// профилем и регистрацией, возвращает ключ активации.
//
// Поля проверяются в порядке username, password, email; первая
// нарушенная проверка определяет ошибку. Конфликт по имени или почте
// обнаруживается на коммите транзакции и возвращается как
// ErrAccountExists: из двух одновременных созданий с одним именем
// выигрывает ровно одно.
func (s *Service) CreateAccount(ctx context.Context, username, rawPassword, email string) (string, error) {
	const op = "services.account.CreateAccount"

	if err := validation.Username(username); err != nil {
		return "", err
	}
	if err := validation.Password(rawPassword, username); err != nil {
		return "", err
	}
	if err := validation.Email(email); err != nil {
		return "", err
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		IsActive:     false,
	}
	activationKey := uuid.NewString()

	if _, err := s.repo.CreateAccount(ctx, user, activationKey); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return "", ErrAccountExists
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return activationKey, nil
}

// CheckAccountExists возвращает подмножество полей {"email", "username"},
// которые уже заняты. Операция только читает, побочных эффектов нет.
func (s *Service) CheckAccountExists(ctx context.Context, username, email string) ([]string, error) {
	const op = "services.account.CheckAccountExists"

	var conflicts []string
	if email != "" {
		exists, err := s.repo.EmailExists(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if exists {
			conflicts = append(conflicts, "email")
		}
	}
	if username != "" {
		exists, err := s.repo.UsernameExists(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if exists {
			conflicts = append(conflicts, "username")
		}
	}
	return conflicts, nil
}

// AccountInfo возвращает краткую информацию об учётной записи
// или ErrNotFound.
func (s *Service) AccountInfo(ctx context.Context, username string) (*models.AccountInfo, error) {
	const op = "services.account.AccountInfo"

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.AccountInfo{
		Username: user.Username,
		Email:    user.Email,
		IsActive: user.IsActive,
	}, nil
}

// ActivateAccount активирует учётную запись по ключу активации.
// Неизвестный ключ — ErrNotAuthorized. Повторная активация безвредна,
// оба вызова завершаются успешно.
func (s *Service) ActivateAccount(ctx context.Context, activationKey string) error {
	const op = "services.account.ActivateAccount"

	reg, err := s.repo.GetRegistrationByKey(ctx, activationKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotAuthorized
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.ActivateUser(ctx, reg.Username); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RequestPasswordChange отправляет пользователю одноразовую ссылку
// для сброса пароля. Если адрес никому не принадлежит — ErrNotFound.
func (s *Service) RequestPasswordChange(ctx context.Context, email, originHost string, isSecure bool) error {
	const op = "services.account.RequestPasswordChange"

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	token := uuid.NewString()
	if err := s.repo.CreatePasswordResetToken(ctx, user.Username, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	scheme := "http"
	if isSecure {
		scheme = "https"
	}
	link := fmt.Sprintf("%s://%s/password_reset_confirm/%s", scheme, originHost, token)

	if err := s.sender.SendPasswordResetLink(user.Email, user.Username, link); err != nil {
		s.log.Error("failed to send password reset link", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Login проверяет пароль пользователя и выдаёт JWT токен сессии.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "services.account.Login"

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.maker.GenerateToken(user.Username, user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
