// Package info реализует HTTP-обработчик получения краткой информации
// об учётной записи по имени пользователя.
package info

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lms-platform/internal/http/response"
	"github.com/magabrotheeeer/lms-platform/internal/lib/sl"
	"github.com/magabrotheeeer/lms-platform/internal/models"
	"github.com/magabrotheeeer/lms-platform/internal/services/account"
)

// Service описывает интерфейс бизнес-логики чтения информации об учётной записи.
type Service interface {
	AccountInfo(ctx context.Context, username string) (*models.AccountInfo, error)
}

// Handler обрабатывает запросы на получение информации об учётной записи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Информация об учётной записи
// @Description Возвращает имя пользователя, email и статус активации.
// @Tags Accounts
// @Produce  json
// @Param username path string true "Имя пользователя"
// @Success 200 {object} map[string]any "Данные учётной записи"
// @Failure 404 {object} response.ErrorResponse "Учётная запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /accounts/{username} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.info"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	if username == "" {
		log.Error("missing username in url")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing username in url"))
		return
	}

	res, err := h.service.AccountInfo(r.Context(), username)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			log.Error("account not found", slog.String("username", username))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
			return
		}
		log.Error("failed to read account info", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read account info"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(res))
}
