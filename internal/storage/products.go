package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arqr-labs/halal-catalog/internal/models"
)

// ErrProductNotFound возвращается, когда продукт отсутствует в базе.
var ErrProductNotFound = errors.New("product not found")

const productColumns = `product_id, name, description, category, price,
			      expiration_date, created_date, is_halal, alternative,
			      carbohydrates, proteins, fats, alcohol, total_kcal,
			      product_image, certificate_file, qr_code_url, product_url, created_by`

// ListProducts возвращает весь каталог целиком в порядке создания записей.
// Пагинации нет: приложение всегда забирает полный список и заменяет
// им состояние в памяти.
func (s *Storage) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "storage.ListProducts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + productColumns + `
			  FROM products
			  ORDER BY created_date, product_id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetProduct возвращает продукт по его productId.
func (s *Storage) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	const op = "storage.GetProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + productColumns + `
			  FROM products
			  WHERE product_id = $1`
	p, err := scanProduct(s.DB.QueryRowContext(ctx, query, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrProductNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// CreateProduct сохраняет новую запись каталога.
func (s *Storage) CreateProduct(ctx context.Context, p models.Product) error {
	const op = "storage.CreateProduct"

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		p.ProductID, p.Name, p.Description, p.Category, p.Price,
		p.ExpirationDate, p.CreatedDate, p.IsHalal, p.Alternative,
		p.Carbohydrates, p.Proteins, p.Fats, p.Alcohol, p.TotalKcal,
		p.ProductImage, p.CertificateFile, p.QRCodeURL, p.ProductURL, p.CreatedBy)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProduct целиком заменяет изменяемые поля записи.
// product_id, created_date, created_by, qr_code_url и product_url
// неизменяемы и в запрос не входят.
func (s *Storage) UpdateProduct(ctx context.Context, p models.Product) error {
	const op = "storage.UpdateProduct"

	commandTag, err := s.DB.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, category = $3, price = $4,
		    expiration_date = $5, is_halal = $6, alternative = $7,
		    carbohydrates = $8, proteins = $9, fats = $10, alcohol = $11,
		    total_kcal = $12, product_image = $13, certificate_file = $14
		WHERE product_id = $15`,
		p.Name, p.Description, p.Category, p.Price,
		p.ExpirationDate, p.IsHalal, p.Alternative,
		p.Carbohydrates, p.Proteins, p.Fats, p.Alcohol,
		p.TotalKcal, p.ProductImage, p.CertificateFile, p.ProductID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := commandTag.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrProductNotFound)
	}
	return nil
}

// DeleteProduct удаляет запись каталога. Загруженные файлы и висячие
// ссылки alternative в других продуктах не трогаются.
func (s *Storage) DeleteProduct(ctx context.Context, productID string) error {
	const op = "storage.DeleteProduct"

	commandTag, err := s.DB.ExecContext(ctx, `
		DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := commandTag.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrProductNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(&p.ProductID, &p.Name, &p.Description, &p.Category, &p.Price,
		&p.ExpirationDate, &p.CreatedDate, &p.IsHalal, &p.Alternative,
		&p.Carbohydrates, &p.Proteins, &p.Fats, &p.Alcohol, &p.TotalKcal,
		&p.ProductImage, &p.CertificateFile, &p.QRCodeURL, &p.ProductURL, &p.CreatedBy); err != nil {
		return nil, err
	}
	return &p, nil
}
