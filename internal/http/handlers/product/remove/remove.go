// Package remove реализует HTTP-обработчик удаления продукта.
//
// Удаление требует явного подтверждения пользователя параметром confirm=true.
// Загруженные файлы и поля alternative других продуктов не трогаются.
package remove

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
	"github.com/arqr-labs/halal-catalog/internal/services/catalog"
	"github.com/arqr-labs/halal-catalog/internal/services/session"
	"github.com/arqr-labs/halal-catalog/internal/storage"
)

// Service описывает интерфейс бизнес-логики удаления продукта.
type Service interface {
	Delete(ctx context.Context, productID string, confirmed bool) error
}

// Handler обрабатывает HTTP-запросы на удаление продукта.
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
// @Summary Удалить продукт
// @Description Удаляет продукт из базы и из списка сессии. Требует confirm=true.
// @Tags Products
// @Produce  json
// @Security BearerAuth
// @Param productId path string true "Идентификатор продукта"
// @Param confirm query bool true "Подтверждение удаления"
// @Success 200 {object} map[string]any "Продукт удалён"
// @Failure 403 {object} response.ErrorResponse "Удаление не подтверждено"
// @Failure 404 {object} response.ErrorResponse "Продукт не найден"
// @Failure 409 {object} response.ErrorResponse "Другая операция ещё выполняется"
// @Failure 500 {object} response.ErrorResponse "Ошибка удаления"
// @Router /products/{productId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	productID := chi.URLParam(r, "productId")
	if productID == "" {
		log.Error("product id missing in path")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("product id is required"))
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"

	err := h.service.Delete(r.Context(), productID, confirmed)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrConfirmationRequired):
			log.Error("delete not confirmed")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("delete confirmation required"))
		case errors.Is(err, storage.ErrProductNotFound):
			log.Error("product not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
		case errors.Is(err, session.ErrOperationInProgress):
			log.Error("operation already in progress")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("another operation is in progress"))
		default:
			log.Error("failed to delete product", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not delete product"))
		}
		return
	}

	log.Info("product deleted", slog.String("product_id", productID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted": productID,
	}))
}
