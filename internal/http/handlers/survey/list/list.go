// Package list реализует HTTP-обработчик выдачи анкеты выходного опроса.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lms-platform/internal/http/response"
	"github.com/magabrotheeeer/lms-platform/internal/survey"
)

// Service описывает интерфейс формирования анкеты.
type Service interface {
	Questions() []survey.Question
}

// Handler обрабатывает запросы на получение анкеты.
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
// @Summary Анкета при регистрации
// @Description Возвращает общие вопросы анкеты и случайную выборку из пула дополнительных вопросов.
// @Tags Survey
// @Produce  json
// @Success 200 {object} map[string]any "Список вопросов"
// @Router /survey [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"questions": h.service.Questions(),
	}))
}
