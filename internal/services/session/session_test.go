package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/arqr-labs/halal-catalog/internal/models"
	"github.com/arqr-labs/halal-catalog/internal/services/session"
)

type ProductStoreMock struct {
	mock.Mock
}

func (m *ProductStoreMock) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func TestSession_LoadProducts_ReplacesListWholesale(t *testing.T) {
	store := new(ProductStoreMock)
	sess := session.New(store)

	first := []models.Product{{ProductID: "1", Name: "Milk"}, {ProductID: "2", Name: "Dates"}}
	second := []models.Product{{ProductID: "3", Name: "Honey"}}

	store.On("ListProducts", mock.Anything).Return(first, nil).Once()
	store.On("ListProducts", mock.Anything).Return(second, nil).Once()

	got, err := sess.LoadProducts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = sess.LoadProducts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, second, got)
	assert.Equal(t, second, sess.Products())

	store.AssertExpectations(t)
}

func TestSession_LoadProducts_StoreError(t *testing.T) {
	store := new(ProductStoreMock)
	sess := session.New(store)

	store.On("ListProducts", mock.Anything).Return(nil, errors.New("db error")).Once()

	_, err := sess.LoadProducts(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestSession_AppendReplaceRemove(t *testing.T) {
	sess := session.New(new(ProductStoreMock))

	sess.Append(models.Product{ProductID: "1", Name: "Milk"})
	sess.Append(models.Product{ProductID: "2", Name: "Dates"})
	sess.Append(models.Product{ProductID: "3", Name: "Honey"})

	// замена сохраняет позицию в списке
	sess.Replace(models.Product{ProductID: "2", Name: "Fresh Dates"})
	products := sess.Products()
	assert.Equal(t, "Fresh Dates", products[1].Name)

	sess.Remove("1")
	products = sess.Products()
	assert.Len(t, products, 2)
	assert.Equal(t, "2", products[0].ProductID)
	assert.Equal(t, "3", products[1].ProductID)

	// удаление несуществующего productId ничего не меняет
	sess.Remove("999")
	assert.Len(t, sess.Products(), 2)
}

func TestSession_ResolveAlternative(t *testing.T) {
	sess := session.New(new(ProductStoreMock))
	sess.Append(models.Product{ProductID: "1", Name: "Milk"})
	sess.Append(models.Product{ProductID: "2", Name: "Dates", Alternative: "1"})

	tests := []struct {
		name      string
		productID string
		want      string
	}{
		{name: "existing reference resolves to name", productID: "1", want: "Milk"},
		{name: "empty reference resolves to empty string", productID: "", want: ""},
		{name: "dangling reference resolves to placeholder", productID: "42", want: session.UnknownProductName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sess.ResolveAlternative(tt.productID))
		})
	}
}

func TestSession_ResolveAlternative_AfterRemove(t *testing.T) {
	sess := session.New(new(ProductStoreMock))
	sess.Append(models.Product{ProductID: "1", Name: "Milk"})
	sess.Append(models.Product{ProductID: "2", Name: "Dates", Alternative: "1"})

	sess.Remove("1")

	// ссылка alternative второго продукта не тронута, но стала висячей
	products := sess.Products()
	assert.Equal(t, "1", products[0].Alternative)
	assert.Equal(t, session.UnknownProductName, sess.ResolveAlternative(products[0].Alternative))
}

func TestSession_User(t *testing.T) {
	sess := session.New(new(ProductStoreMock))
	assert.Nil(t, sess.User())

	user := &models.User{UID: "u1", Name: "Admin", Labels: []string{"admin"}}
	sess.SetUser(user)
	assert.Equal(t, user, sess.User())

	sess.ClearUser()
	assert.Nil(t, sess.User())
}

func TestSession_BeginEnd(t *testing.T) {
	sess := session.New(new(ProductStoreMock))

	assert.False(t, sess.Loading())
	assert.NoError(t, sess.Begin())
	assert.True(t, sess.Loading())

	// повторная отправка формы отклоняется, пока операция идёт
	err := sess.Begin()
	assert.ErrorIs(t, err, session.ErrOperationInProgress)

	sess.End()
	assert.False(t, sess.Loading())
	assert.NoError(t, sess.Begin())
}
