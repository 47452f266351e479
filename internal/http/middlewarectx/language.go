package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/lms-platform/internal/lib/sl"
	"github.com/magabrotheeeer/lms-platform/internal/models"
	"github.com/magabrotheeeer/lms-platform/internal/services/profile"
	"github.com/magabrotheeeer/lms-platform/internal/sessions"
)

// SessionStore описывает интерфейс чтения и записи значений сессии.
type SessionStore interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
}

// PreferenceProvider описывает интерфейс чтения сохранённых настроек пользователя.
type PreferenceProvider interface {
	GetPreference(ctx context.Context, username, key string) (string, error)
}

// LanguagePreferenceMiddleware возвращает HTTP middleware, который
// подставляет сохранённый язык пользователя в заголовок Accept-Language.
//
// Работает только для аутентифицированных запросов. Язык, уже выбранный
// в рамках сессии, имеет приоритет над сохранённой настройкой; найденная
// настройка кэшируется в сессии, чтобы не ходить в базу на каждый запрос.
// Ошибки хранилищ записываются в лог и не мешают обработке запроса.
func LanguagePreferenceMiddleware(store SessionStore, prefs PreferenceProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.LanguagePreferenceMiddleware"

			username, okUser := r.Context().Value(User).(string)
			sessionID, okSession := r.Context().Value(SessionID).(string)
			if !okUser || !okSession || username == "" || sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			lang, found, err := store.Get(r.Context(), sessionID, sessions.LanguageKey)
			if err != nil {
				log.Error("failed to read session language", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			if found {
				r.Header.Set("Accept-Language", lang)
				next.ServeHTTP(w, r)
				return
			}

			stored, err := prefs.GetPreference(r.Context(), username, models.LanguagePreferenceKey)
			if err != nil {
				if !errors.Is(err, profile.ErrNotFound) {
					log.Error("failed to read language preference", sl.Err(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			if err := store.Set(r.Context(), sessionID, sessions.LanguageKey, stored); err != nil {
				log.Error("failed to cache language in session", sl.Err(err))
			}
			r.Header.Set("Accept-Language", stored)
			next.ServeHTTP(w, r)
		})
	}
}
