// Package qr кодирует строку в PNG-изображение QR-кода.
// Полезная нагрузка QR-кода продукта — ровно строка productId.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Encoder описывает интерфейс генератора QR-кодов.
type Encoder interface {
	EncodeToImage(payload string) ([]byte, error)
}

// PNGEncoder реализует Encoder поверх go-qrcode.
type PNGEncoder struct {
	size int
}

// NewPNGEncoder создаёт генератор PNG-изображений заданного размера в пикселях.
func NewPNGEncoder(size int) *PNGEncoder {
	return &PNGEncoder{size: size}
}

// EncodeToImage кодирует payload в PNG со средним уровнем коррекции ошибок.
func (e *PNGEncoder) EncodeToImage(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, e.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
