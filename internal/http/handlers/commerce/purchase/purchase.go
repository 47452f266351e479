// Package purchase реализует HTTP-обработчик покупки курса.
//
// Handler принимает идентификатор курса, определяет по нему способ
// записи (прямая запись на бесплатный курс или заказ во внешнем сервисе)
// и возвращает результат клиенту. Клиенты этого обработчика ожидают
// ответы с полем detail, поэтому формат отличается от остальных
// обработчиков.
package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/lms-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lms-platform/internal/http/response"
	"github.com/magabrotheeeer/lms-platform/internal/lib/sl"
	"github.com/magabrotheeeer/lms-platform/internal/services/commerce"
)

// Request — входные данные для покупки курса
type Request struct {
	CourseID string `json:"course_id" validate:"required"`
}

// Service описывает интерфейс бизнес-логики покупки курса.
type Service interface {
	Purchase(ctx context.Context, username, email, courseID string) (*commerce.Result, error)
}

// Handler обрабатывает запросы на покупку курса.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Покупка курса
// @Description Записывает пользователя на бесплатный курс или создает заказ во внешнем сервисе.
// @Tags Commerce
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификатор курса"
// @Success 200 {object} response.DetailResponse "Запись выполнена или заказ завершён"
// @Success 202 {object} map[string]any "Заказ создан и ожидает оплаты"
// @Failure 400 {object} response.DetailResponse "Некорректный запрос"
// @Failure 401 {object} response.DetailResponse "Требуется аутентификация"
// @Failure 406 {object} response.DetailResponse "Курс не найден"
// @Failure 503 {object} response.DetailResponse "Сервис заказов недоступен"
// @Security BearerAuth
// @Router /purchase [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.commerce.purchase"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, _ := r.Context().Value(middlewarectx.User).(string)
	email, _ := r.Context().Value(middlewarectx.Email).(string)
	if username == "" {
		log.Error("missing username in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Detail("authentication required"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Detail("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Detail("course_id is required"))
		return
	}

	res, err := h.service.Purchase(r.Context(), username, email, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, commerce.ErrCourseNotFound):
			log.Error("course not found", slog.String("course_id", req.CourseID))
			render.Status(r, http.StatusNotAcceptable)
			render.JSON(w, r, response.Detail("course not found"))
		case errors.Is(err, commerce.ErrProviderUnavailable):
			log.Error("commerce provider unavailable", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Detail("order service is unavailable, please try again later"))
		default:
			log.Error("failed to purchase course", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Detail("failed to purchase course"))
		}
		return
	}

	switch res.Status {
	case commerce.StatusOrderPending:
		log.Info("order created", slog.String("order_number", res.OrderNumber),
			slog.String("order_status", res.OrderStatus))
		render.Status(r, http.StatusAccepted)
		render.JSON(w, r, map[string]any{
			"detail":       "order created, awaiting payment",
			"order_number": res.OrderNumber,
			"order_status": res.OrderStatus,
		})
	case commerce.StatusOrderComplete:
		log.Info("order already complete", slog.String("order_number", res.OrderNumber))
		render.JSON(w, r, map[string]any{
			"detail":       "order complete",
			"order_number": res.OrderNumber,
		})
	default:
		log.Info("user enrolled", slog.String("course_id", req.CourseID))
		render.JSON(w, r, response.Detail("enrolled"))
	}
}
