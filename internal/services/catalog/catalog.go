// Package catalog содержит контроллер жизненного цикла продукта:
// валидацию формы, загрузку файлов, генерацию QR-кода, запись в базу
// и обновление состояния сессии. Здесь же живут чистые функции фильтра
// и агрегатов каталога.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/arqr-labs/halal-catalog/internal/lib/nutrition"
	"github.com/arqr-labs/halal-catalog/internal/lib/qr"
	"github.com/arqr-labs/halal-catalog/internal/lib/sl"
	"github.com/arqr-labs/halal-catalog/internal/models"
	"github.com/arqr-labs/halal-catalog/internal/services/session"
)

// Состояния выполняющейся операции create/update/delete.
// Переход из любого состояния при ошибке — сразу в failed, без повторов.
const (
	stateValidating = "validating"
	stateUploading  = "uploading"
	statePersisting = "persisting"
	stateDone       = "done"
	stateFailed     = "failed"
)

// ProductRepository описывает контракт хранилища продуктов.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) error
	UpdateProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, productID string) error
}

// BlobStore описывает контракт хранилища бинарных файлов.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// FileUpload содержимое файла из формы. nil означает, что файл не менялся.
type FileUpload struct {
	Data        []byte
	ContentType string
}

// FormInput данные формы создания или редактирования продукта.
type FormInput struct {
	Name           string
	Description    string
	Category       string
	Price          int
	ExpirationDate time.Time
	IsHalal        bool
	Alternative    string
	Carbohydrates  float64
	Proteins       float64
	Fats           float64
	Alcohol        float64
	Image          *FileUpload
	Certificate    *FileUpload
}

// ProductView продукт вместе с производными полями для отображения.
type ProductView struct {
	models.Product
	DaysLeft        int              `json:"daysLeft"`
	Status          nutrition.Status `json:"status"`
	AlternativeName string           `json:"alternativeName,omitempty"`
}

// Controller оркестрирует операции над каталогом. Одновременно выполняется
// не больше одной операции: флаг loading в сессии гасит повторную отправку.
type Controller struct {
	log     *slog.Logger
	session *session.Session
	store   ProductRepository
	blobs   BlobStore
	qr      qr.Encoder
	baseURL string
	now     func() time.Time
}

// New создаёт контроллер каталога. baseURL — основа публичной ссылки
// на продукт, productUrl = baseURL + "/product/" + productId.
func New(log *slog.Logger, sess *session.Session, store ProductRepository, blobs BlobStore, encoder qr.Encoder, baseURL string) *Controller {
	return &Controller{
		log:     log,
		session: sess,
		store:   store,
		blobs:   blobs,
		qr:      encoder,
		baseURL: baseURL,
		now:     time.Now,
	}
}

// Validate проверяет обязательные поля формы и возвращает список
// пополевых ошибок. nil означает, что форма валидна.
func (c *Controller) Validate(input FormInput) *ValidationError {
	return c.validate(input, "")
}

func (c *Controller) validate(input FormInput, productID string) *ValidationError {
	var fields []FieldError
	add := func(field, message string) {
		fields = append(fields, FieldError{Field: field, Message: message})
	}

	if input.Name == "" {
		add("name", "required")
	}
	if input.Description == "" {
		add("description", "required")
	}
	switch {
	case input.Category == "":
		add("category", "required")
	case !models.IsValidCategory(input.Category):
		add("category", "must be one of the allowed categories")
	}
	if input.Price < 0 {
		add("price", "must not be negative")
	}
	if input.ExpirationDate.IsZero() {
		add("expirationDate", "required")
	}
	if productID != "" && input.Alternative == productID {
		add("alternative", "must not reference the product itself")
	}
	for field, v := range map[string]float64{
		"carbohydrates": input.Carbohydrates,
		"proteins":      input.Proteins,
		"fats":          input.Fats,
		"alcohol":       input.Alcohol,
	} {
		if v < 0 {
			add(field, "must not be negative")
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Create выполняет полный цикл создания продукта: валидация, загрузка
// приложенных файлов, генерация и загрузка QR-кода с productId в качестве
// полезной нагрузки, расчёт калорийности, запись в базу и добавление
// записи в список сессии.
//
// Ошибка на любом шаге прерывает операцию целиком: частичная запись
// в базу не появляется. Уже загруженные файлы прерванной попытки
// не удаляются, сборка мусора по ним — отдельная задача.
func (c *Controller) Create(ctx context.Context, input FormInput, user *models.User) (*models.Product, error) {
	const op = "catalog.Create"

	if err := c.session.Begin(); err != nil {
		return nil, err
	}
	defer c.session.End()

	log := c.log.With(slog.String("op", op))

	log.Debug("operation state changed", slog.String("state", stateValidating))
	if verr := c.Validate(input); verr != nil {
		log.Debug("operation state changed", slog.String("state", stateFailed))
		return nil, verr
	}

	now := c.now()
	productID := strconv.FormatInt(now.UnixMilli(), 10)
	log = log.With(slog.String("product_id", productID))

	product := productFromInput(input)
	product.ProductID = productID
	product.CreatedDate = now
	product.CreatedBy = user.UID
	product.ProductURL = c.baseURL + "/product/" + productID

	log.Debug("operation state changed", slog.String("state", stateUploading))
	if input.Image != nil {
		url, err := c.blobs.Upload(ctx, "product_"+productID, input.Image.Data, input.Image.ContentType)
		if err != nil {
			log.Error("product image upload failed", sl.Err(err))
			log.Debug("operation state changed", slog.String("state", stateFailed))
			return nil, fmt.Errorf("%s: %w: %w", op, ErrUpload, err)
		}
		product.ProductImage = url
	}
	if input.Certificate != nil {
		url, err := c.blobs.Upload(ctx, "cert_"+productID, input.Certificate.Data, input.Certificate.ContentType)
		if err != nil {
			log.Error("certificate upload failed", sl.Err(err))
			log.Debug("operation state changed", slog.String("state", stateFailed))
			return nil, fmt.Errorf("%s: %w: %w", op, ErrUpload, err)
		}
		product.CertificateFile = url
	}

	png, err := c.qr.EncodeToImage(productID)
	if err != nil {
		log.Error("qr code generation failed", sl.Err(err))
		log.Debug("operation state changed", slog.String("state", stateFailed))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUpload, err)
	}
	qrURL, err := c.blobs.Upload(ctx, "qr_"+productID, png, "image/png")
	if err != nil {
		log.Error("qr code upload failed", sl.Err(err))
		log.Debug("operation state changed", slog.String("state", stateFailed))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUpload, err)
	}
	product.QRCodeURL = qrURL

	log.Debug("operation state changed", slog.String("state", statePersisting))
	if err := c.store.CreateProduct(ctx, product); err != nil {
		log.Error("failed to persist product", sl.Err(err))
		log.Debug("operation state changed", slog.String("state", stateFailed))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}

	c.session.Append(product)
	log.Info("product created", slog.String("name", product.Name))
	log.Debug("operation state changed", slog.String("state", stateDone))
	return &product, nil
}

// Update перезаписывает изменяемые поля существующего продукта.
// productId, createdDate, createdBy, qrCodeUrl и productUrl неизменяемы
// и копируются из существующей записи. Файлы перезагружаются только если
// в форме приложен новый файл, иначе сохраняется прежний URL.
func (c *Controller) Update(ctx context.Context, productID string, input FormInput) (*models.Product, error) {
	const op = "catalog.Update"

	if err := c.session.Begin(); err != nil {
		return nil, err
	}
	defer c.session.End()

	log := c.log.With(slog.String("op", op), slog.String("product_id", productID))

	log.Debug("operation state changed", slog.String("state", stateValidating))
	if verr := c.validate(input, productID); verr != nil {
		log.Debug("operation state changed", slog.String("state", stateFailed))
		return nil, verr
	}

	existing, err := c.store.GetProduct(ctx, productID)
	if err != nil {
		log.Debug("operation state changed", slog.String("state", stateFailed))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	product := productFromInput(input)
	product.ProductID = existing.ProductID
	product.CreatedDate = existing.CreatedDate
	product.CreatedBy = existing.CreatedBy
	product.QRCodeURL = existing.QRCodeURL
	product.ProductURL = existing.ProductURL
	product.ProductImage = existing.ProductImage
	product.CertificateFile = existing.CertificateFile

	// без новых файлов шаг uploading пропускается целиком
	if input.Image != nil || input.Certificate != nil {
		log.Debug("operation state changed", slog.String("state", stateUploading))
	}
	if input.Image != nil {
		url, err := c.blobs.Upload(ctx, "product_"+productID, input.Image.Data, input.Image.ContentType)
		if err != nil {
			log.Error("product image upload failed", sl.Err(err))
			log.Debug("operation state changed", slog.String("state", stateFailed))
			return nil, fmt.Errorf("%s: %w: %w", op, ErrUpload, err)
		}
		product.ProductImage = url
	}
	if input.Certificate != nil {
		url, err := c.blobs.Upload(ctx, "cert_"+productID, input.Certificate.Data, input.Certificate.ContentType)
		if err != nil {
			log.Error("certificate upload failed", sl.Err(err))
			log.Debug("operation state changed", slog.String("state", stateFailed))
			return nil, fmt.Errorf("%s: %w: %w", op, ErrUpload, err)
		}
		product.CertificateFile = url
	}

	log.Debug("operation state changed", slog.String("state", statePersisting))
	if err := c.store.UpdateProduct(ctx, product); err != nil {
		log.Error("failed to persist product", sl.Err(err))
		log.Debug("operation state changed", slog.String("state", stateFailed))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}

	c.session.Replace(product)
	log.Info("product updated", slog.String("name", product.Name))
	log.Debug("operation state changed", slog.String("state", stateDone))
	return &product, nil
}

// Delete удаляет продукт из базы и из списка сессии. Требуется явное
// подтверждение пользователя. Загруженные файлы и поля alternative
// других продуктов не трогаются: висячая ссылка разрешается
// в "Unknown Product" при отображении.
func (c *Controller) Delete(ctx context.Context, productID string, confirmed bool) error {
	const op = "catalog.Delete"

	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := c.session.Begin(); err != nil {
		return err
	}
	defer c.session.End()

	log := c.log.With(slog.String("op", op), slog.String("product_id", productID))

	log.Debug("operation state changed", slog.String("state", statePersisting))
	if err := c.store.DeleteProduct(ctx, productID); err != nil {
		log.Error("failed to delete product", sl.Err(err))
		log.Debug("operation state changed", slog.String("state", stateFailed))
		return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}

	c.session.Remove(productID)
	log.Info("product deleted")
	log.Debug("operation state changed", slog.String("state", stateDone))
	return nil
}

// Load перечитывает каталог из базы и заменяет список сессии целиком.
func (c *Controller) Load(ctx context.Context) ([]models.Product, error) {
	return c.session.LoadProducts(ctx)
}

// List возвращает представления продуктов из памяти сессии, отфильтрованные
// по заданным параметрам. Порядок соответствует порядку создания записей.
func (c *Controller) List(filter Filter) []ProductView {
	now := c.now()
	products := ApplyFilter(c.session.Products(), filter, now)
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, c.view(p, now))
	}
	return views
}

// Get возвращает представление одного продукта из памяти сессии.
func (c *Controller) Get(productID string) (*ProductView, error) {
	for _, p := range c.session.Products() {
		if p.ProductID == productID {
			v := c.view(p, c.now())
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

// Stats возвращает агрегаты по текущему списку сессии.
func (c *Controller) Stats() Stats {
	return CountStats(c.session.Products(), c.now())
}

// Categories возвращает категории текущего списка в порядке первого появления.
func (c *Controller) Categories() []string {
	return DistinctCategories(c.session.Products())
}

func (c *Controller) view(p models.Product, now time.Time) ProductView {
	return ProductView{
		Product:         p,
		DaysLeft:        nutrition.DaysUntilExpiration(p.ExpirationDate, now),
		Status:          nutrition.Classify(p.ExpirationDate, now),
		AlternativeName: c.session.ResolveAlternative(p.Alternative),
	}
}

func productFromInput(input FormInput) models.Product {
	return models.Product{
		Name:           input.Name,
		Description:    input.Description,
		Category:       input.Category,
		Price:          input.Price,
		ExpirationDate: input.ExpirationDate,
		IsHalal:        input.IsHalal,
		Alternative:    input.Alternative,
		Carbohydrates:  input.Carbohydrates,
		Proteins:       input.Proteins,
		Fats:           input.Fats,
		Alcohol:        input.Alcohol,
		TotalKcal: nutrition.TotalCalories(
			input.Carbohydrates, input.Proteins, input.Fats, input.Alcohol),
	}
}
