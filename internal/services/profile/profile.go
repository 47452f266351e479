// Package profile содержит бизнес-логику профилей пользователей:
// чтение и обновление профиля, пользовательские настройки и подписку
// на рассылки организаций.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/lms-platform/internal/analytics"
	"github.com/magabrotheeeer/lms-platform/internal/lib/sl"
	"github.com/magabrotheeeer/lms-platform/internal/models"
	"github.com/magabrotheeeer/lms-platform/internal/storage"
)

// ErrNotFound профиль не найден.
var ErrNotFound = errors.New("profile not found")

// Repository описывает контракт для работы с профилями и настройками в базе данных.
type Repository interface {
	GetProfile(ctx context.Context, username string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile models.Profile) error
	UpsertOrgEmailPreference(ctx context.Context, username, org, value string) error
	GetOrgEmailPreference(ctx context.Context, username, org string) (string, error)
	GetUserPreference(ctx context.Context, username, key string) (string, error)
	SetUserPreference(ctx context.Context, username, key, value string) error
}

// Tracker описывает контракт публикации событий аналитики.
type Tracker interface {
	Track(event analytics.Event) error
}

// Service отвечает за профили, настройки и подписку на рассылки.
type Service struct {
	repo       Repository
	tracker    Tracker
	minimumAge int
	log        *slog.Logger
}

// New создает новый экземпляр Service. tracker может быть nil,
// тогда события аналитики не публикуются.
func New(repo Repository, tracker Tracker, minimumAge int, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tracker:    tracker,
		minimumAge: minimumAge,
		log:        log,
	}
}

// GetProfile возвращает профиль пользователя или ErrNotFound.
func (s *Service) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	const op = "services.profile.GetProfile"

	profile, err := s.repo.GetProfile(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}

// UpdateProfile сохраняет изменённый профиль пользователя.
func (s *Service) UpdateProfile(ctx context.Context, profile models.Profile) error {
	const op = "services.profile.UpdateProfile"

	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateEmailOptIn записывает согласие пользователя на рассылки
// организации org. Несовершеннолетние (и пользователи с неуказанным
// годом рождения считаются взрослыми) подписаны быть не могут:
// запрошенное согласие принудительно понижается до отказа.
//
// Гонка двух одновременных записей не считается ошибкой: одна из них
// выигрывает, конфликт записывается в лог и подавляется. Недоступность
// аналитики также не мешает сохранению настройки.
func (s *Service) UpdateEmailOptIn(ctx context.Context, username, org string, optedIn bool) error {
	const op = "services.profile.UpdateEmailOptIn"

	profile, err := s.repo.GetProfile(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	ofAge := true
	if profile.YearOfBirth != nil {
		ofAge = time.Now().Year()-*profile.YearOfBirth > s.minimumAge
	}
	if !ofAge {
		optedIn = false
	}

	value := "False"
	if optedIn {
		value = "True"
	}

	if err := s.repo.UpsertOrgEmailPreference(ctx, username, org, value); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			s.log.Warn("concurrent email opt-in write, keeping winner",
				slog.String("username", username), slog.String("org", org))
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if s.tracker != nil {
		event := analytics.Event{
			Username: username,
			Name:     analytics.EventEmailOptedOut,
			Category: "communication",
			Label:    org,
		}
		if optedIn {
			event.Name = analytics.EventEmailOptedIn
		}
		if err := s.tracker.Track(event); err != nil {
			s.log.Error("failed to track email opt-in event", sl.Err(err))
		}
	}
	return nil
}

// GetEmailOptIn возвращает сохранённое согласие на рассылки организации
// в текстовом виде ("True" или "False") или ErrNotFound, если настройка
// ещё не записывалась.
func (s *Service) GetEmailOptIn(ctx context.Context, username, org string) (string, error) {
	const op = "services.profile.GetEmailOptIn"

	value, err := s.repo.GetOrgEmailPreference(ctx, username, org)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

// GetPreference возвращает значение произвольной настройки пользователя
// или ErrNotFound.
func (s *Service) GetPreference(ctx context.Context, username, key string) (string, error) {
	const op = "services.profile.GetPreference"

	value, err := s.repo.GetUserPreference(ctx, username, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

// SetPreference сохраняет произвольную настройку пользователя.
func (s *Service) SetPreference(ctx context.Context, username, key, value string) error {
	const op = "services.profile.SetPreference"

	if err := s.repo.SetUserPreference(ctx, username, key, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
