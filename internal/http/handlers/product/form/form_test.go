package form_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqr-labs/halal-catalog/internal/http/handlers/product/form"
)

func newMultipartRequest(t *testing.T, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for name, data := range files {
		part, err := writer.CreateFormFile(name, name+".bin")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/products", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestParseProductForm(t *testing.T) {
	req := newMultipartRequest(t, map[string]string{
		form.FieldName:           "Halal Chicken",
		form.FieldDescription:    "fresh poultry",
		form.FieldCategory:       "meat",
		form.FieldPrice:          "250",
		form.FieldExpirationDate: "2024-08-01",
		form.FieldIsHalal:        "true",
		form.FieldAlternative:    "1700000000000",
		form.FieldCarbohydrates:  "10",
		form.FieldProteins:       "5.5",
		form.FieldFats:           "2",
	}, map[string][]byte{
		form.FileProductImage: []byte("image-bytes"),
	})

	input, err := form.ParseProductForm(req)
	require.NoError(t, err)

	assert.Equal(t, "Halal Chicken", input.Name)
	assert.Equal(t, "meat", input.Category)
	assert.Equal(t, 250, input.Price)
	assert.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), input.ExpirationDate)
	assert.True(t, input.IsHalal)
	assert.Equal(t, "1700000000000", input.Alternative)
	assert.Equal(t, 10.0, input.Carbohydrates)
	assert.Equal(t, 5.5, input.Proteins)
	// alcohol не передан, трактуется как ноль
	assert.Zero(t, input.Alcohol)

	require.NotNil(t, input.Image)
	assert.Equal(t, []byte("image-bytes"), input.Image.Data)
	// файл сертификата не приложен — "не менялся"
	assert.Nil(t, input.Certificate)
}

func TestParseProductForm_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{name: "bad price", field: form.FieldPrice, value: "abc"},
		{name: "bad fats", field: form.FieldFats, value: "x"},
		{name: "bad date", field: form.FieldExpirationDate, value: "01/08/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newMultipartRequest(t, map[string]string{tt.field: tt.value}, nil)

			_, err := form.ParseProductForm(req)
			assert.Error(t, err)
		})
	}
}

func TestParseProductForm_EmptyFieldsDefaultToZero(t *testing.T) {
	req := newMultipartRequest(t, map[string]string{form.FieldName: "Milk"}, nil)

	input, err := form.ParseProductForm(req)
	require.NoError(t, err)
	assert.Zero(t, input.Price)
	assert.True(t, input.ExpirationDate.IsZero())
	assert.False(t, input.IsHalal)
}
