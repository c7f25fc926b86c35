// Package jwt реализует генерацию и парсинг JWT токенов сессии админ-панели.
//
// CustomClaims расширяет стандартные claims JWT, добавляя идентификатор
// пользователя, отображаемое имя и метки-роли.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserUID              string   `json:"user_uid"` // Идентификатор пользователя
	Name                 string   `json:"name"`     // Отображаемое имя
	Labels               []string `json:"labels"`   // Метки-роли пользователя
	jwt.RegisteredClaims          // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// GenerateToken выпускает подписанный HS256 токен с данными пользователя.
func (m *MakerImpl) GenerateToken(userUID, name string, labels []string) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		UserUID: userUID,
		Name:    name,
		Labels:  labels,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// ParseToken разбирает токен, проверяет подпись и срок действия.
func (m *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
