// Package session содержит состояние каталога на время работы приложения:
// текущего аутентифицированного пользователя, полный список продуктов
// в памяти и флаг выполняющейся операции. Все мутации списка проходят
// через этот пакет.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/arqr-labs/halal-catalog/internal/models"
)

// UnknownProductName отображаемое имя для висячей ссылки alternative.
const UnknownProductName = "Unknown Product"

// ErrOperationInProgress возвращается из Begin, пока не завершена
// предыдущая операция create/update/delete. Защита от повторной отправки
// формы: одна логическая нить управления на взаимодействие.
var ErrOperationInProgress = errors.New("another operation is in progress")

// ProductStore описывает контракт полного чтения каталога из хранилища.
type ProductStore interface {
	// ListProducts возвращает весь каталог в порядке создания записей.
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// Session хранит пользователя и список продуктов, охраняемые одним мьютексом.
type Session struct {
	store ProductStore

	mu       sync.RWMutex
	user     *models.User
	products []models.Product
	loading  bool
}

// New создаёт сессию каталога поверх хранилища продуктов.
func New(store ProductStore) *Session {
	return &Session{store: store}
}

// LoadProducts забирает коллекцию целиком и заменяет список в памяти.
// Инкрементальной синхронизации и пагинации нет: каждый вызов — полная выборка.
func (s *Session) LoadProducts(ctx context.Context) ([]models.Product, error) {
	const op = "session.LoadProducts"

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	return s.Products(), nil
}

// Products возвращает копию текущего списка в исходном порядке.
func (s *Session) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Append добавляет созданный продукт в конец списка.
func (s *Session) Append(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

// Replace заменяет запись с тем же productId, сохраняя позицию в списке.
func (s *Session) Replace(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ProductID == p.ProductID {
			s.products[i] = p
			return
		}
	}
}

// Remove удаляет запись по productId. Поля alternative других продуктов
// не трогаются: висячая ссылка допустима и разрешается в "Unknown Product".
func (s *Session) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ProductID == productID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}

// ResolveAlternative возвращает имя продукта-заменителя по его productId.
// Пустая ссылка даёт пустую строку, висячая — "Unknown Product".
func (s *Session) ResolveAlternative(productID string) string {
	if productID == "" {
		return ""
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ProductID == productID {
			return s.products[i].Name
		}
	}
	return UnknownProductName
}

// SetUser сохраняет текущего аутентифицированного пользователя.
func (s *Session) SetUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// User возвращает текущего пользователя или nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// ClearUser сбрасывает пользователя. Вызывается на signOut всегда,
// даже если удалённый вызов завершился с ошибкой.
func (s *Session) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Begin взводит флаг выполняющейся операции. Возвращает
// ErrOperationInProgress, если операция уже идёт.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrOperationInProgress
	}
	s.loading = true
	return nil
}

// End снимает флаг выполняющейся операции.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

// Loading сообщает, выполняется ли сейчас операция.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
