// Package create реализует HTTP-обработчик создания продукта.
//
// Handler принимает multipart-форму с полями продукта и приложенными файлами,
// извлекает пользователя из контекста и делегирует операцию контроллеру
// каталога: валидация, загрузка файлов, генерация QR-кода, запись в базу.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/arqr-labs/halal-catalog/internal/http/handlers/product/form"
	"github.com/arqr-labs/halal-catalog/internal/http/middlewarectx"
	"github.com/arqr-labs/halal-catalog/internal/http/response"
	"github.com/arqr-labs/halal-catalog/internal/lib/sl"
	"github.com/arqr-labs/halal-catalog/internal/models"
	"github.com/arqr-labs/halal-catalog/internal/services/catalog"
	"github.com/arqr-labs/halal-catalog/internal/services/session"
)

// Service описывает интерфейс бизнес-логики создания продукта.
type Service interface {
	Create(ctx context.Context, input catalog.FormInput, user *models.User) (*models.Product, error)
}

// Handler обрабатывает HTTP-запросы на создание продукта.
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
// @Summary Создать продукт
// @Description Создает продукт из multipart-формы. Генерирует QR-код с productId и загружает приложенные файлы.
// @Tags Products
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Созданный продукт"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Другая операция ещё выполняется"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка загрузки файлов или записи"
// @Router /products [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	input, err := form.ParseProductForm(r)
	if err != nil {
		log.Error("failed to parse product form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid product form"))
		return
	}
	log.Info("product form parsed", slog.String("name", input.Name))

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	product, err := h.service.Create(r.Context(), input, &models.User{UID: userUID})
	if err != nil {
		var verr *catalog.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.FieldErrors(verr.Fields))
		case errors.Is(err, session.ErrOperationInProgress):
			log.Error("operation already in progress")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("another operation is in progress"))
		default:
			log.Error("failed to create product", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create product"))
		}
		return
	}

	log.Info("product created", slog.String("product_id", product.ProductID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"product": product,
	}))
}
