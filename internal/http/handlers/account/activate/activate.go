// Package activate реализует HTTP-обработчик активации учётной записи
// по ключу активации. Повторная активация по уже использованному ключу
// завершается успешно.
package activate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/lms-platform/internal/http/response"
	"github.com/magabrotheeeer/lms-platform/internal/lib/sl"
	"github.com/magabrotheeeer/lms-platform/internal/services/account"
)

// Request — входные данные для активации
type Request struct {
	ActivationKey string `json:"activation_key" validate:"required"`
}

// Service описывает интерфейс бизнес-логики активации учётной записи.
type Service interface {
	ActivateAccount(ctx context.Context, activationKey string) error
}

// Handler обрабатывает запросы на активацию учётной записи.
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
// @Summary Активация учётной записи
// @Description Активирует учётную запись по ключу из письма. Повторная активация не является ошибкой.
// @Tags Accounts
// @Accept  json
// @Produce  json
// @Param request body Request true "Ключ активации"
// @Success 200 {object} response.Response "Учётная запись активирована"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Неизвестный ключ активации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /accounts/activate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.activate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ActivateAccount(r.Context(), req.ActivationKey); err != nil {
		if errors.Is(err, account.ErrNotAuthorized) {
			log.Error("unknown activation key")
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("unknown activation key"))
			return
		}
		log.Error("failed to activate account", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to activate account"))
		return
	}

	log.Info("account activated")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "account activated",
	}))
}
