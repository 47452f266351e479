// Package upload реализует HTTP-обработчик загрузки изображения профиля.
//
// Handler принимает multipart-форму с полем file, проверяет размер,
// расширение, mimetype и сигнатуру содержимого, после чего сохраняет
// изображение. Пользователь может загрузить изображение только в свой
// профиль. Ошибки проверки возвращаются с отдельными сообщениями для
// разработчика и пользователя.
package upload

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lms-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lms-platform/internal/http/response"
	"github.com/magabrotheeeer/lms-platform/internal/lib/sl"
	"github.com/magabrotheeeer/lms-platform/internal/services/profileimage"
)

// Service описывает интерфейс проверки и сохранения изображений профиля.
type Service interface {
	Validate(file io.ReadSeeker, filename, mimetype string, size int64) (string, error)
	Store(file io.Reader, username, imageType string) (string, error)
}

// Handler обрабатывает запросы на загрузку изображения профиля.
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
// @Summary Загрузка изображения профиля
// @Description Принимает multipart-форму с полем file и сохраняет изображение профиля.
// @Tags Profile
// @Accept  mpfd
// @Produce  json
// @Param username path string true "Имя пользователя"
// @Param file formData file true "Файл изображения"
// @Success 200 {object} response.Response "Изображение сохранено"
// @Failure 400 {object} response.ImageErrorResponse "Файл не прошёл проверку"
// @Failure 403 {object} response.ErrorResponse "Загрузка в чужой профиль"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /accounts/{username}/image [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profileimage.upload"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, _ := r.Context().Value(middlewarectx.User).(string)
	target := chi.URLParam(r, "username")
	if username == "" || target != username {
		log.Error("user tried to upload image to another profile",
			slog.String("username", username), slog.String("target", target))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("you can only upload an image to your own profile"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error("failed to read uploaded file", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ImageError(
			"no file provided for profile image",
			"Выберите файл изображения.",
		))
		return
	}
	defer func() { _ = file.Close() }()

	imageType, err := h.service.Validate(file, header.Filename, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		var verr *profileimage.ValidationError
		if errors.As(err, &verr) {
			log.Error("image validation failed", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ImageError(verr.DeveloperMessage, verr.UserMessage))
			return
		}
		log.Error("failed to validate image", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to validate image"))
		return
	}

	name, err := h.service.Store(file, username, imageType)
	if err != nil {
		log.Error("failed to store image", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to store image"))
		return
	}

	log.Info("profile image uploaded", slog.String("filename", name))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"filename": name,
	}))
}
