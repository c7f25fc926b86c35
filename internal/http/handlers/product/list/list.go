// Package list реализует HTTP-обработчик списка продуктов.
//
// Каждый запрос перечитывает коллекцию из базы целиком и заменяет список
// сессии, затем применяет фильтры: текстовый поиск, категорию и статус.
package list

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

// Service описывает интерфейс бизнес-логики списка продуктов.
type Service interface {
	Load(ctx context.Context) ([]models.Product, error)
	List(filter catalog.Filter) []catalog.ProductView
}

// Handler обрабатывает HTTP-запросы на получение списка продуктов.
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
// @Summary Список продуктов
// @Description Возвращает продукты с производными полями, отфильтрованные по поиску, категории и статусу.
// @Tags Products
// @Produce  json
// @Security BearerAuth
// @Param search query string false "Подстрока имени или описания"
// @Param category query string false "Категория или all"
// @Param status query string false "all, valid, expiring, expired или halal"
// @Success 200 {object} map[string]any "Список продуктов"
// @Failure 500 {object} response.ErrorResponse "Ошибка чтения каталога"
// @Router /products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.list"

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

	filter := catalog.Filter{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
	}

	views := h.service.List(filter)
	log.Info("products listed", slog.Int("count", len(views)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"products": views,
		"count":    len(views),
	}))
}
