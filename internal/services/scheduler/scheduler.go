// Package scheduler содержит воркер, который раз в сутки находит продукты
// с истекающим сроком годности и публикует уведомления о них в очередь.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/arqr-labs/halal-catalog/internal/lib/nutrition"
	"github.com/arqr-labs/halal-catalog/internal/lib/sl"
	"github.com/arqr-labs/halal-catalog/internal/models"
	"github.com/arqr-labs/halal-catalog/internal/rabbitmq"
	"github.com/streadway/amqp"
)

// ProductRepository описывает контракт чтения каталога для планировщика.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// Publisher описывает публикацию сообщения в брокер.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// ChannelPublisher публикует сообщения через канал RabbitMQ.
type ChannelPublisher struct {
	Channel *amqp.Channel
}

// Publish отправляет message в exchange с заданным ключом маршрутизации.
func (p *ChannelPublisher) Publish(exchange, routingKey string, message any) error {
	return rabbitmq.PublishMessage(p.Channel, exchange, routingKey, message)
}

// SchedulerService находит истекающие продукты и публикует уведомления.
type SchedulerService struct {
	repo        ProductRepository
	publisher   Publisher
	notifyEmail string
	log         *slog.Logger
	now         func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
// notifyEmail — адрес администратора, получающего уведомления.
func NewSchedulerService(repo ProductRepository, publisher Publisher, notifyEmail string, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:        repo,
		publisher:   publisher,
		notifyEmail: notifyEmail,
		log:         log,
		now:         time.Now,
	}
}

// FindExpiringProducts запускает цикл поиска: первый проход сразу,
// дальше раз в сутки до отмены контекста.
func (s *SchedulerService) FindExpiringProducts(ctx context.Context) {
	s.runFindExpiringProducts(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindExpiringProducts(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindExpiringProducts(ctx context.Context) {
	s.log.Info("starting service to find expiring products")
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.log.Error("failed to list products", sl.Err(err))
		return
	}

	now := s.now()
	var notices []models.ExpiringProductNotice
	for _, p := range products {
		if nutrition.Classify(p.ExpirationDate, now) != nutrition.StatusExpiring {
			continue
		}
		notices = append(notices, models.ExpiringProductNotice{
			Email:          s.notifyEmail,
			ProductID:      p.ProductID,
			Name:           p.Name,
			Category:       p.Category,
			ExpirationDate: p.ExpirationDate,
			DaysLeft:       nutrition.DaysUntilExpiration(p.ExpirationDate, now),
		})
	}

	if len(notices) == 0 {
		s.log.Info("no expiring products found")
		return
	}
	s.log.Info("found expiring products", "count", len(notices))
	for _, notice := range notices {
		err = s.publisher.Publish(rabbitmq.Exchange, rabbitmq.ExpiringRoutingKey, notice)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
