// Package commerce содержит бизнес-логику покупки курсов: запись на
// бесплатные курсы напрямую и оформление заказов на платные курсы
// через внешний сервис электронной коммерции.
package commerce

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/lms-platform/internal/commerceprovider"
	"github.com/magabrotheeeer/lms-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/lms-platform/internal/lib/sl"
	"github.com/magabrotheeeer/lms-platform/internal/models"
	"github.com/magabrotheeeer/lms-platform/internal/storage"
)

// Ошибки операции покупки.
var (
	// ErrCourseNotFound курс с таким идентификатором не существует.
	ErrCourseNotFound = errors.New("course not found")
	// ErrProviderUnavailable внешний сервис заказов недоступен или вернул ошибку.
	ErrProviderUnavailable = errors.New("commerce provider unavailable")
)

// Статусы результата покупки.
const (
	// StatusEnrolled пользователь записан на курс напрямую, без заказа.
	StatusEnrolled = "enrolled"
	// StatusOrderComplete заказ уже завершён на стороне сервиса заказов,
	// локальная запись не создаётся.
	StatusOrderComplete = "order_complete"
	// StatusOrderPending заказ создан и ожидает оплаты.
	StatusOrderPending = "order_pending"
)

// Result описывает итог покупки курса. OrderNumber и OrderStatus
// заполняются только когда заказ оформлялся во внешнем сервисе.
type Result struct {
	Status      string
	OrderNumber string
	OrderStatus string
}

// Repository описывает контракт для работы с курсами и записями в базе данных.
type Repository interface {
	CourseExists(ctx context.Context, courseID string) (bool, error)
	FindCourseModeWithSKU(ctx context.Context, courseID string) (*models.CourseMode, error)
	Enroll(ctx context.Context, username, courseID, modeSlug string) error
}

// OrderClient описывает контракт создания заказов во внешнем сервисе.
type OrderClient interface {
	CreateOrder(ctx context.Context, token, sku string) (*commerceprovider.CreateOrderResponse, error)
}

// Service отвечает за покупку курсов. client может быть nil, если
// внешний сервис заказов не настроен: тогда все курсы считаются
// бесплатными и запись происходит напрямую.
type Service struct {
	repo                 Repository
	client               OrderClient
	maker                jwt.Maker
	enrollOnPendingOrder bool
	log                  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, client OrderClient, maker jwt.Maker, enrollOnPendingOrder bool, log *slog.Logger) *Service {
	return &Service{
		repo:                 repo,
		client:               client,
		maker:                maker,
		enrollOnPendingOrder: enrollOnPendingOrder,
		log:                  log,
	}
}

// Purchase оформляет покупку курса пользователем.
//
// Курс без артикула (SKU), как и курс при ненастроенном сервисе
// заказов, считается бесплатным: пользователь записывается напрямую.
// Для платного курса создаётся заказ; если он уже завершён, локальная
// запись не создаётся — её оформит сервис заказов. Незавершённый заказ
// возвращается вызывающему для оплаты, при включённой политике
// enrollOnPendingOrder пользователь записывается сразу, не дожидаясь
// оплаты. Ошибка сервиса заказов не приводит к записи на курс.
func (s *Service) Purchase(ctx context.Context, username, email, courseID string) (*Result, error) {
	const op = "services.commerce.Purchase"

	exists, err := s.repo.CourseExists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	if s.client == nil {
		s.log.Warn("commerce provider is not configured, enrolling directly",
			slog.String("course_id", courseID))
		return s.enrollDirectly(ctx, username, courseID, models.DefaultModeSlug)
	}

	mode, err := s.repo.FindCourseModeWithSKU(ctx, courseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return s.enrollDirectly(ctx, username, courseID, models.DefaultModeSlug)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.maker.GenerateToken(username, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.client.CreateOrder(ctx, token, *mode.SKU)
	if err != nil {
		s.log.Error("failed to create order", sl.Err(err),
			slog.String("course_id", courseID), slog.String("sku", *mode.SKU))
		return nil, ErrProviderUnavailable
	}

	if order.Status == models.OrderStatusComplete {
		return &Result{Status: StatusOrderComplete, OrderNumber: order.Number, OrderStatus: order.Status}, nil
	}

	if s.enrollOnPendingOrder {
		if err := s.repo.Enroll(ctx, username, courseID, mode.ModeSlug); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &Result{Status: StatusOrderPending, OrderNumber: order.Number, OrderStatus: order.Status}, nil
}

func (s *Service) enrollDirectly(ctx context.Context, username, courseID, modeSlug string) (*Result, error) {
	const op = "services.commerce.enrollDirectly"

	if err := s.repo.Enroll(ctx, username, courseID, modeSlug); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Result{Status: StatusEnrolled}, nil
}
