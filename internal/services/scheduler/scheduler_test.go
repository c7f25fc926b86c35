package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/arqr-labs/halal-catalog/internal/models"
	"github.com/arqr-labs/halal-catalog/internal/rabbitmq"
)

type ProductRepoMock struct {
	mock.Mock
}

func (m *ProductRepoMock) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(exchange, routingKey string, message any) error {
	args := m.Called(exchange, routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSchedulerService_PublishesOnlyExpiringProducts(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	repo := new(ProductRepoMock)
	publisher := new(PublisherMock)
	svc := NewSchedulerService(repo, publisher, "admin@example.com", newNoopLogger())
	svc.now = func() time.Time { return now }

	products := []models.Product{
		{ProductID: "1", Name: "Fresh Milk", Category: "dairy", ExpirationDate: now.AddDate(0, 0, 45)},
		{ProductID: "2", Name: "Old Dates", Category: "food", ExpirationDate: now.AddDate(0, 0, 10)},
		{ProductID: "3", Name: "Expired Juice", Category: "beverage", ExpirationDate: now.AddDate(0, 0, -5)},
	}
	repo.On("ListProducts", mock.Anything).Return(products, nil).Once()

	publisher.On("Publish", rabbitmq.Exchange, rabbitmq.ExpiringRoutingKey,
		mock.MatchedBy(func(msg any) bool {
			notice, ok := msg.(models.ExpiringProductNotice)
			return ok &&
				notice.ProductID == "2" &&
				notice.Email == "admin@example.com" &&
				notice.DaysLeft == 10
		})).Return(nil).Once()

	svc.runFindExpiringProducts(context.Background())

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSchedulerService_NoExpiringProducts(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	repo := new(ProductRepoMock)
	publisher := new(PublisherMock)
	svc := NewSchedulerService(repo, publisher, "admin@example.com", newNoopLogger())
	svc.now = func() time.Time { return now }

	repo.On("ListProducts", mock.Anything).Return([]models.Product{
		{ProductID: "1", ExpirationDate: now.AddDate(0, 0, 45)},
	}, nil).Once()

	svc.runFindExpiringProducts(context.Background())

	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestSchedulerService_RepositoryError(t *testing.T) {
	repo := new(ProductRepoMock)
	publisher := new(PublisherMock)
	svc := NewSchedulerService(repo, publisher, "admin@example.com", newNoopLogger())

	repo.On("ListProducts", mock.Anything).Return(nil, errors.New("db error")).Once()

	svc.runFindExpiringProducts(context.Background())

	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
