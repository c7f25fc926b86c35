// Package nutrition содержит чистые функции расчёта производных полей продукта:
// калорийности по макронутриентам и статуса по дате истечения срока годности.
package nutrition

import (
	"math"
	"time"
)

// Энергетические коэффициенты, ккал на грамм.
const (
	KcalPerGramCarbohydrate = 4
	KcalPerGramProtein      = 4
	KcalPerGramFat          = 9
	KcalPerGramAlcohol      = 7
)

// ExpiringWindowDays размер окна "скоро истекает": продукт со сроком
// в диапазоне [0, 30] дней включительно считается expiring. Ровно 30 дней —
// это ещё expiring, а не valid; правило едино для агрегатов и карточек.
const ExpiringWindowDays = 30

// Status статус продукта по сроку годности.
type Status string

const (
	// StatusValid срок годности дальше окна "скоро истекает".
	StatusValid Status = "valid"
	// StatusExpiring срок годности в пределах окна, включая сегодняшний день.
	StatusExpiring Status = "expiring"
	// StatusExpired срок годности уже прошёл.
	StatusExpired Status = "expired"
	// StatusUnknown дата не задана или не сравнима, расчёт невозможен.
	StatusUnknown Status = "unknown"
)

// TotalCalories считает калорийность по граммам макронутриентов:
// 4*углеводы + 4*белки + 9*жиры + 7*алкоголь.
// Отрицательные и NaN значения трактуются как ноль, функция не падает.
func TotalCalories(carbohydrates, proteins, fats, alcohol float64) float64 {
	return KcalPerGramCarbohydrate*grams(carbohydrates) +
		KcalPerGramProtein*grams(proteins) +
		KcalPerGramFat*grams(fats) +
		KcalPerGramAlcohol*grams(alcohol)
}

func grams(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// DaysUntilExpiration возвращает ceil((expiration - now) / сутки).
// Отрицательное значение — срок уже истёк, 0 — истекает сегодня.
// Округление вверх: продукт, истекающий через несколько часов,
// сообщает 1 день, а не 0.
func DaysUntilExpiration(expiration, now time.Time) int {
	diff := expiration.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// Classify возвращает статус продукта для момента времени now.
// Нулевая дата не приводит к панике и даёт StatusUnknown.
func Classify(expiration, now time.Time) Status {
	if expiration.IsZero() {
		return StatusUnknown
	}
	return ClassifyDays(DaysUntilExpiration(expiration, now))
}

// ClassifyDays классифицирует уже посчитанное количество дней до истечения.
func ClassifyDays(days int) Status {
	switch {
	case days < 0:
		return StatusExpired
	case days <= ExpiringWindowDays:
		return StatusExpiring
	default:
		return StatusValid
	}
}
