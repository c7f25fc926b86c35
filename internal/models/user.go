// Package models содержит доменную модель пользователя админ-панели.
// Доступ к каталогу открыт только пользователям с меткой "admin":
// наличие любой другой валидной учётной записи недостаточно.
package models

import "time"

// AdminLabel метка, дающая право держать сессию в этом приложении.
const AdminLabel = "admin"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная)
	Name         string    // Отображаемое имя
	PasswordHash string    // Хэш пароля пользователя
	Labels       []string  // Набор меток-ролей, авторизация только по метке admin
	CreatedAt    time.Time // Дата регистрации
}

// IsAdmin сообщает, есть ли у пользователя метка admin.
func (u *User) IsAdmin() bool {
	for _, label := range u.Labels {
		if label == AdminLabel {
			return true
		}
	}
	return false
}
