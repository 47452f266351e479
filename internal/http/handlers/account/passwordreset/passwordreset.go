// Package passwordreset реализует HTTP-обработчик запроса сброса пароля.
//
// Handler принимает почту пользователя и отправляет на неё одноразовую
// ссылку для смены пароля. Ссылка строится от хоста, с которого пришёл
// запрос.
package passwordreset

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

// Request — входные данные для запроса сброса пароля
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики запроса сброса пароля.
type Service interface {
	RequestPasswordChange(ctx context.Context, email, originHost string, isSecure bool) error
}

// Handler обрабатывает запросы на сброс пароля.
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
// @Summary Запрос на сброс пароля
// @Description Отправляет на указанный email письмо со ссылкой для смены пароля.
// @Tags Accounts
// @Accept  json
// @Produce  json
// @Param request body Request true "Email учётной записи"
// @Success 200 {object} response.Response "Письмо отправлено"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Учётная запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /accounts/password_reset [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.passwordreset"

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

	err := h.service.RequestPasswordChange(r.Context(), req.Email, r.Host, r.TLS != nil)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			log.Error("email is not registered", slog.String("email", req.Email))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("no account registered with this email"))
			return
		}
		log.Error("failed to request password change", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to request password change"))
		return
	}

	log.Info("password reset link sent", slog.String("email", req.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "password reset link sent",
	}))
}
