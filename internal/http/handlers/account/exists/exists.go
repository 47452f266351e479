// Package exists реализует HTTP-обработчик проверки занятости имени
// пользователя и почты.
//
// Handler читает параметры запроса username и email и возвращает список
// полей, которые уже заняты существующими учётными записями. Запрос
// только читает, побочных эффектов нет.
package exists

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lms-platform/internal/http/response"
	"github.com/magabrotheeeer/lms-platform/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики проверки занятости.
type Service interface {
	CheckAccountExists(ctx context.Context, username, email string) ([]string, error)
}

// Handler обрабатывает запросы на проверку занятости имени и почты.
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
// @Summary Проверка занятости имени пользователя и email
// @Description Возвращает список полей, значения которых уже заняты.
// @Tags Accounts
// @Produce  json
// @Param username query string false "Имя пользователя"
// @Param email query string false "Email"
// @Success 200 {object} map[string]any "Список занятых полей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /accounts/exists [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.exists"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := r.URL.Query().Get("username")
	email := r.URL.Query().Get("email")

	conflicts, err := h.service.CheckAccountExists(r.Context(), username, email)
	if err != nil {
		log.Error("failed to check account existence", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to check account existence"))
		return
	}
	if conflicts == nil {
		conflicts = []string{}
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"conflicting_fields": conflicts,
	}))
}
