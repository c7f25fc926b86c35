// Package categories реализует HTTP-обработчик списка категорий.
//
// Форма создания использует фиксированный набор допустимых категорий,
// а фильтр — категории, реально встречающиеся в сохранённых данных,
// включая свободные текстовые значения из старых записей.
package categories

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/arqr-labs/halal-catalog/internal/http/response"
	"github.com/arqr-labs/halal-catalog/internal/lib/sl"
	"github.com/arqr-labs/halal-catalog/internal/models"
)

// Service описывает интерфейс бизнес-логики категорий.
type Service interface {
	Load(ctx context.Context) ([]models.Product, error)
	Categories() []string
}

// Handler обрабатывает HTTP-запросы на получение категорий.
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
// @Summary Категории каталога
// @Description Возвращает допустимые категории формы и категории из сохранённых данных.
// @Tags Products
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Категории"
// @Failure 500 {object} response.ErrorResponse "Ошибка чтения каталога"
// @Router /categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.categories"

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

	existing := h.service.Categories()
	log.Info("categories listed", slog.Int("count", len(existing)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"allowed":  models.Categories(),
		"existing": existing,
	}))
}
