package catalog

import (
	"strings"
	"time"

	"github.com/arqr-labs/halal-catalog/internal/lib/nutrition"
	"github.com/arqr-labs/halal-catalog/internal/models"
)

// Значения селекторов фильтра помимо точных категорий и статусов.
const (
	FilterAll   = "all"
	FilterHalal = "halal"
)

// Filter параметры отбора продуктов: текстовый поиск, категория и статус.
// Пустой поиск, категория "all" и статус "all" пропускают всё.
type Filter struct {
	Search   string
	Category string
	Status   string
}

// Stats агрегированные счётчики по каталогу для плиток дашборда.
type Stats struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
	Halal    int `json:"halal"`
}

// ApplyFilter возвращает подпоследовательность products, удовлетворяющую
// фильтру. Чистая функция: вход не мутируется, порядок сохраняется,
// повторный вызов с теми же аргументами даёт тот же результат.
// Поиск — регистронезависимое вхождение в имя или описание.
func ApplyFilter(products []models.Product, f Filter, now time.Time) []models.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var result []models.Product
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if f.Category != "" && f.Category != FilterAll && p.Category != f.Category {
			continue
		}
		if !matchStatus(p, f.Status, now) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func matchStatus(p models.Product, status string, now time.Time) bool {
	switch status {
	case "", FilterAll:
		return true
	case FilterHalal:
		return p.IsHalal
	default:
		return string(nutrition.Classify(p.ExpirationDate, now)) == status
	}
}

// DistinctCategories возвращает категории, реально встречающиеся в списке,
// в порядке первого появления. Список строится по сохранённым данным,
// а не по фиксированному набору допустимых категорий, поэтому сюда
// попадают и свободные текстовые значения из старых записей.
func DistinctCategories(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	var result []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		result = append(result, p.Category)
	}
	return result
}

// CountStats считает агрегаты по каталогу. Граница "скоро истекает"
// та же, что и в статусе отдельной карточки: ровно 30 дней — expiring.
func CountStats(products []models.Product, now time.Time) Stats {
	stats := Stats{Total: len(products)}
	for _, p := range products {
		switch nutrition.Classify(p.ExpirationDate, now) {
		case nutrition.StatusValid:
			stats.Valid++
		case nutrition.StatusExpiring:
			stats.Expiring++
		case nutrition.StatusExpired:
			stats.Expired++
		}
		if p.IsHalal {
			stats.Halal++
		}
	}
	return stats
}
