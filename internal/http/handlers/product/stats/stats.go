// Package stats реализует HTTP-обработчик агрегатов каталога для плиток
// дашборда: всего, действительных, истекающих, просроченных и халяль.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/arqr-labs/halal-catalog/internal/http/response"
	"github.com/arqr-labs/halal-catalog/internal/lib/sl"
	"github.com/arqr-labs/halal-catalog/internal/models"
	"github.com/arqr-labs/halal-catalog/internal/services/catalog"
)

// Service описывает интерфейс бизнес-логики агрегатов каталога.
type Service interface {
	Load(ctx context.Context) ([]models.Product, error)
	Stats() catalog.Stats
}

// Handler обрабатывает HTTP-запросы на получение агрегатов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Агрегаты каталога
// @Description Возвращает счётчики по текущему списку продуктов.
// @Tags Products
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Агрегаты"
// @Failure 500 {object} response.ErrorResponse "Ошибка чтения каталога"
// @Router /products/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if _, err := h.service.Load(r.Context()); err != nil {
		log.Error("failed to load products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load products"))
		return
	}

	stats := h.service.Stats()
	log.Info("stats computed", slog.Int("total", stats.Total))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats": stats,
	}))
}
