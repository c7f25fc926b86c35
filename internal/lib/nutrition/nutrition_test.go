package nutrition_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arqr-labs/halal-catalog/internal/lib/nutrition"
)

func TestTotalCalories(t *testing.T) {
	tests := []struct {
		name          string
		carbohydrates float64
		proteins      float64
		fats          float64
		alcohol       float64
		want          float64
	}{
		{
			name: "all zero",
			want: 0,
		},
		{
			name:          "typical product",
			carbohydrates: 10,
			proteins:      5,
			fats:          2,
			alcohol:       0,
			want:          78,
		},
		{
			name:          "alcohol counted at seven per gram",
			carbohydrates: 1,
			proteins:      1,
			fats:          1,
			alcohol:       1,
			want:          24,
		},
		{
			name:          "negative values treated as zero",
			carbohydrates: -10,
			proteins:      5,
			want:          20,
		},
		{
			name:          "nan treated as zero",
			carbohydrates: math.NaN(),
			fats:          2,
			want:          18,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nutrition.TotalCalories(tt.carbohydrates, tt.proteins, tt.fats, tt.alcohol)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDaysUntilExpiration(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiration time.Time
		want       int
	}{
		{
			name:       "partial day rounds up",
			expiration: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
			want:       2,
		},
		{
			name:       "few hours ahead reports one day",
			expiration: time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC),
			want:       1,
		},
		{
			name:       "expires right now",
			expiration: now,
			want:       0,
		},
		{
			name:       "already expired",
			expiration: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			want:       -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nutrition.DaysUntilExpiration(tt.expiration, now)
			assert.Equal(t, tt.want, got)
			// результат не зависит от повторного вызова с тем же now
			assert.Equal(t, got, nutrition.DaysUntilExpiration(tt.expiration, now))
		})
	}
}

func TestClassify(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiration time.Time
		want       nutrition.Status
	}{
		{
			name:       "forty five days ahead is valid",
			expiration: now.AddDate(0, 0, 45),
			want:       nutrition.StatusValid,
		},
		{
			name:       "exactly thirty days is expiring",
			expiration: now.AddDate(0, 0, 30),
			want:       nutrition.StatusExpiring,
		},
		{
			name:       "thirty one days is valid",
			expiration: now.AddDate(0, 0, 31),
			want:       nutrition.StatusValid,
		},
		{
			name:       "one day past is expired",
			expiration: now.AddDate(0, 0, -1),
			want:       nutrition.StatusExpired,
		},
		{
			name:       "expires today is expiring",
			expiration: now,
			want:       nutrition.StatusExpiring,
		},
		{
			name: "zero time is unknown",
			want: nutrition.StatusUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nutrition.Classify(tt.expiration, now))
		})
	}
}
