// Package password содержит функции хэширования и проверки паролей на bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash возвращает bcrypt-хэш пароля со стандартной стоимостью.
func GetHash(rawPassword string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CompareHash сверяет пароль с хэшем, возвращает ошибку при несовпадении.
func CompareHash(hash, rawPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(rawPassword))
}
