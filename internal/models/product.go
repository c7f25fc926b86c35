// Package models содержит доменные структуры каталога продуктов,
// а также вспомогательные типы для приёма данных из HTTP-запросов.
package models

import "time"

// Product представляет собой запись каталога, хранимую в базе данных.
// ProductID генерируется из метки времени создания и после создания не меняется:
// он зашит в QR-код и в ссылку на продукт.
type Product struct {
	ProductID       string    `json:"productId"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Price           int       `json:"price"`
	ExpirationDate  time.Time `json:"expirationDate"` // полночь UTC календарной даты
	CreatedDate     time.Time `json:"createdDate"`
	IsHalal         bool      `json:"isHalal"`
	Alternative     string    `json:"alternative"` // productId заменителя, пустая строка — нет
	Carbohydrates   float64   `json:"carbohydrates"`
	Proteins        float64   `json:"proteins"`
	Fats            float64   `json:"fats"`
	Alcohol         float64   `json:"alcohol"`
	TotalKcal       float64   `json:"totalKcal"`
	ProductImage    string    `json:"productImage"`    // URL, пустая строка — нет
	CertificateFile string    `json:"certificateFile"` // URL, пустая строка — нет
	QRCodeURL       string    `json:"qrCodeUrl"`
	ProductURL      string    `json:"productUrl"`
	CreatedBy       string    `json:"createdBy"`
}

// Categories возвращает фиксированный набор категорий, допустимых при
// создании и обновлении продукта. Фильтр при этом строит свой список
// категорий по фактически сохранённым данным, поэтому старые записи со
// свободным текстом в категории продолжают отображаться.
func Categories() []string {
	return []string{"food", "beverage", "snack", "dairy", "meat", "bakery", "other"}
}

// IsValidCategory проверяет принадлежность категории допустимому набору.
func IsValidCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}
