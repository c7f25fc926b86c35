package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUpload хранилище файлов отклонило загрузку, операция прервана целиком.
	ErrUpload = errors.New("file upload failed")
	// ErrPersistence ошибка записи или удаления в базе данных.
	ErrPersistence = errors.New("persistence failed")
	// ErrConfirmationRequired удаление без явного подтверждения пользователя.
	ErrConfirmationRequired = errors.New("delete confirmation required")
	// ErrNotFound запрошенный продукт отсутствует в списке сессии.
	ErrNotFound = errors.New("product not found")
)

// FieldError ошибка валидации одного поля формы.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError список пополевых ошибок валидации формы.
// Контракт — именно список, склейка в одну строку остаётся на усмотрение
// отображающей стороны.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}
