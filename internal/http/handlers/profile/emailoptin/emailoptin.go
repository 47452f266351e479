// Package emailoptin реализует HTTP-обработчик управления согласием
// пользователя на почтовые рассылки организации.
package emailoptin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/lms-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lms-platform/internal/http/response"
	"github.com/magabrotheeeer/lms-platform/internal/lib/sl"
	"github.com/magabrotheeeer/lms-platform/internal/services/profile"
)

// Request — входные данные для изменения согласия на рассылки
type Request struct {
	Org        string `json:"org" validate:"required"`
	EmailOptIn *bool  `json:"email_opt_in" validate:"required"`
}

// Service описывает интерфейс бизнес-логики согласия на рассылки.
type Service interface {
	UpdateEmailOptIn(ctx context.Context, username, org string, optedIn bool) error
}

// Handler обрабатывает запросы на изменение согласия на рассылки.
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
// @Summary Изменение согласия на рассылки организации
// @Description Сохраняет согласие пользователя на рассылки указанной организации. Для несовершеннолетних согласие принудительно снимается.
// @Tags Profile
// @Accept  json
// @Produce  json
// @Param username path string true "Имя пользователя"
// @Param request body Request true "Организация и флаг согласия"
// @Success 200 {object} response.Response "Согласие сохранено"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 403 {object} response.ErrorResponse "Изменение чужого профиля"
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /accounts/{username}/email_opt_in [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.emailoptin"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, _ := r.Context().Value(middlewarectx.User).(string)
	target := chi.URLParam(r, "username")
	if username == "" || target != username {
		log.Error("user tried to change another user's opt-in",
			slog.String("username", username), slog.String("target", target))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("you can only change your own email preferences"))
		return
	}

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

	if err := h.service.UpdateEmailOptIn(r.Context(), username, req.Org, *req.EmailOptIn); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			log.Error("profile not found", slog.String("username", username))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("profile not found"))
			return
		}
		log.Error("failed to update email opt-in", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update email opt-in"))
		return
	}

	log.Info("email opt-in updated",
		slog.String("org", req.Org), slog.Bool("email_opt_in", *req.EmailOptIn))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"org":          req.Org,
		"email_opt_in": *req.EmailOptIn,
	}))
}
