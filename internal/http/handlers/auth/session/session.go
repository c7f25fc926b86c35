// Package session реализует HTTP-обработчик восстановления сессии на старте
// приложения. Токен проверяется вместе со списком отозванных; живой токен
// без метки admin отзывается, наружу уходит 401 без сведений о пользователе.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/arqr-labs/halal-catalog/internal/http/response"
	"github.com/arqr-labs/halal-catalog/internal/lib/sl"
	"github.com/arqr-labs/halal-catalog/internal/models"
)

// Service описывает интерфейс бизнес-логики восстановления сессии.
type Service interface {
	RestoreSession(ctx context.Context, token string) (*models.User, error)
}

// SessionState хранит текущего пользователя между запросами.
type SessionState interface {
	SetUser(u *models.User)
}

// Handler обрабатывает HTTP-запросы на восстановление сессии.
type Handler struct {
	log     *slog.Logger
	service Service
	session SessionState
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, session SessionState) *Handler {
	return &Handler{
		log:     log,
		service: service,
		session: session,
	}
}

// ServeHTTP godoc
// @Summary Восстановление сессии
// @Description Проверяет существующий токен и возвращает пользователя, если сессия жива.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Сессия восстановлена"
// @Failure 401 {object} response.ErrorResponse "Нет активной сессии"
// @Router /auth/session [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.session"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Info("no session token supplied")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("no active session"))
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	user, err := h.service.RestoreSession(r.Context(), token)
	if err != nil {
		log.Info("session restore failed", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("no active session"))
		return
	}

	h.session.SetUser(user)
	log.Info("session restored", slog.String("uid", user.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": map[string]any{
			"uid":    user.UID,
			"name":   user.Name,
			"email":  user.Email,
			"labels": user.Labels,
		},
	}))
}
