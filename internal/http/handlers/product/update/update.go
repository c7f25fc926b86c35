// Package update реализует HTTP-обработчик обновления продукта.
//
// Обновление полнозаписевое: форма присылается целиком, частичных патчей нет.
// Файлы перезагружаются только если приложен новый файл, иначе сохраняются
// прежние URL. productId, createdDate, createdBy, qrCodeUrl и productUrl
// неизменяемы.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/arqr-labs/halal-catalog/internal/http/handlers/product/form"
	"github.com/arqr-labs/halal-catalog/internal/http/response"
	"github.com/arqr-labs/halal-catalog/internal/lib/sl"
	"github.com/arqr-labs/halal-catalog/internal/models"
	"github.com/arqr-labs/halal-catalog/internal/services/catalog"
	"github.com/arqr-labs/halal-catalog/internal/services/session"
	"github.com/arqr-labs/halal-catalog/internal/storage"
)

// Service описывает интерфейс бизнес-логики обновления продукта.
type Service interface {
	Update(ctx context.Context, productID string, input catalog.FormInput) (*models.Product, error)
}

// Handler обрабатывает HTTP-запросы на обновление продукта.
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
// @Summary Обновить продукт
// @Description Перезаписывает изменяемые поля продукта из multipart-формы.
// @Tags Products
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param productId path string true "Идентификатор продукта"
// @Success 200 {object} map[string]any "Обновлённый продукт"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 404 {object} response.ErrorResponse "Продукт не найден"
// @Failure 409 {object} response.ErrorResponse "Другая операция ещё выполняется"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка загрузки файлов или записи"
// @Router /products/{productId} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.update"

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

	input, err := form.ParseProductForm(r)
	if err != nil {
		log.Error("failed to parse product form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid product form"))
		return
	}
	log.Info("product form parsed", slog.String("product_id", productID))

	product, err := h.service.Update(r.Context(), productID, input)
	if err != nil {
		var verr *catalog.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.FieldErrors(verr.Fields))
		case errors.Is(err, storage.ErrProductNotFound):
			log.Error("product not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
		case errors.Is(err, session.ErrOperationInProgress):
			log.Error("operation already in progress")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("another operation is in progress"))
		default:
			log.Error("failed to update product", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update product"))
		}
		return
	}

	log.Info("product updated", slog.String("product_id", product.ProductID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"product": product,
	}))
}
