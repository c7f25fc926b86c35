// Package read реализует HTTP-обработчик карточки продукта.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/arqr-labs/halal-catalog/internal/http/response"
	"github.com/arqr-labs/halal-catalog/internal/lib/sl"
	"github.com/arqr-labs/halal-catalog/internal/models"
	"github.com/arqr-labs/halal-catalog/internal/services/catalog"
)

// Service описывает интерфейс бизнес-логики чтения продукта.
type Service interface {
	Load(ctx context.Context) ([]models.Product, error)
	Get(productID string) (*catalog.ProductView, error)
}

// Handler обрабатывает HTTP-запросы на чтение одного продукта.
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
// @Summary Карточка продукта
// @Description Возвращает продукт с производными полями: статус, дни до истечения, имя заменителя.
// @Tags Products
// @Produce  json
// @Security BearerAuth
// @Param productId path string true "Идентификатор продукта"
// @Success 200 {object} map[string]any "Продукт"
// @Failure 404 {object} response.ErrorResponse "Продукт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка чтения каталога"
// @Router /products/{productId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	productID := chi.URLParam(r, "productId")

	if _, err := h.service.Load(r.Context()); err != nil {
		log.Error("failed to load products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load products"))
		return
	}

	view, err := h.service.Get(productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			log.Error("product not found", slog.String("product_id", productID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
			return
		}
		log.Error("failed to read product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read product"))
		return
	}

	log.Info("product read", slog.String("product_id", productID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"product": view,
	}))
}
