// Package logout реализует HTTP-обработчик выхода из админ-панели.
//
// Локальное состояние сессии очищается всегда, даже если отзыв токена
// в хранилище не удался: пользователь не должен остаться заперт
// в интерфейсе из-за сбоя удалённого вызова.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/arqr-labs/halal-catalog/internal/http/middlewarectx"
	"github.com/arqr-labs/halal-catalog/internal/http/response"
	"github.com/arqr-labs/halal-catalog/internal/models"
)

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, token string)
}

// SessionState хранит текущего пользователя между запросами.
type SessionState interface {
	SetUser(u *models.User)
	ClearUser()
}

// Handler обрабатывает HTTP-запросы на выход.
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
// @Summary Выход из админ-панели
// @Description Отзывает сессионный токен и очищает состояние сессии.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Успешный выход"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token, ok := r.Context().Value(middlewarectx.Token).(string)
	if !ok || token == "" {
		log.Error("token not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	h.service.Logout(r.Context(), token)
	h.session.ClearUser()

	log.Info("logout success")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "signed out",
	}))
}
