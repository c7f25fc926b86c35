// Package form разбирает multipart-форму продукта в структуру для
// контроллера каталога. Используется обработчиками создания и обновления.
package form

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/arqr-labs/halal-catalog/internal/services/catalog"
)

// MaxFormMemory предел памяти при разборе multipart-формы.
const MaxFormMemory = 32 << 20

// Имена полей multipart-формы продукта.
const (
	FieldName           = "name"
	FieldDescription    = "description"
	FieldCategory       = "category"
	FieldPrice          = "price"
	FieldExpirationDate = "expiration_date"
	FieldIsHalal        = "is_halal"
	FieldAlternative    = "alternative"
	FieldCarbohydrates  = "carbohydrates"
	FieldProteins       = "proteins"
	FieldFats           = "fats"
	FieldAlcohol        = "alcohol"
	FileProductImage    = "product_image"
	FileCertificate     = "certificate_file"
)

// ParseProductForm разбирает multipart-форму запроса в FormInput.
// Отсутствующие числовые поля трактуются как ноль, отсутствующие файлы —
// как "файл не менялся". Ошибка разбора означает некорректный запрос.
func ParseProductForm(r *http.Request) (catalog.FormInput, error) {
	var input catalog.FormInput

	if err := r.ParseMultipartForm(MaxFormMemory); err != nil {
		return input, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	input.Name = r.FormValue(FieldName)
	input.Description = r.FormValue(FieldDescription)
	input.Category = r.FormValue(FieldCategory)
	input.Alternative = r.FormValue(FieldAlternative)
	input.IsHalal = r.FormValue(FieldIsHalal) == "true"

	var err error
	if input.Price, err = parseInt(r.FormValue(FieldPrice)); err != nil {
		return input, fmt.Errorf("invalid price: %w", err)
	}
	if input.Carbohydrates, err = parseFloat(r.FormValue(FieldCarbohydrates)); err != nil {
		return input, fmt.Errorf("invalid carbohydrates: %w", err)
	}
	if input.Proteins, err = parseFloat(r.FormValue(FieldProteins)); err != nil {
		return input, fmt.Errorf("invalid proteins: %w", err)
	}
	if input.Fats, err = parseFloat(r.FormValue(FieldFats)); err != nil {
		return input, fmt.Errorf("invalid fats: %w", err)
	}
	if input.Alcohol, err = parseFloat(r.FormValue(FieldAlcohol)); err != nil {
		return input, fmt.Errorf("invalid alcohol: %w", err)
	}
	if input.ExpirationDate, err = parseDate(r.FormValue(FieldExpirationDate)); err != nil {
		return input, fmt.Errorf("invalid expiration_date: %w", err)
	}

	if input.Image, err = readFile(r, FileProductImage); err != nil {
		return input, err
	}
	if input.Certificate, err = readFile(r, FileCertificate); err != nil {
		return input, err
	}

	return input, nil
}

func parseInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func parseFloat(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

// parseDate принимает календарную дату и нормализует её к полуночи UTC.
func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC().Truncate(24 * time.Hour), nil
}

func readFile(r *http.Request, field string) (*catalog.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read file %s: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", field, err)
	}
	return &catalog.FileUpload{
		Data:        data,
		ContentType: contentType(header),
	}, nil
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
