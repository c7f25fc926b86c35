// Package blob реализует объектное хранилище файлов каталога поверх MinIO.
// Сюда загружаются изображения продуктов, халяль-сертификаты и PNG QR-кодов;
// наружу отдаются публичные URL для просмотра.
package blob

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/arqr-labs/halal-catalog/internal/config"
)

// Store хранилище бинарных объектов с публичными URL на чтение.
type Store struct {
	mc        *minio.Client
	bucket    string
	publicURL string
}

// New создаёт клиент MinIO и гарантирует существование бакета.
func New(ctx context.Context, cfg config.Blob) (*Store, error) {
	const op = "blob.New"

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return &Store{
		mc:        mc,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
	}, nil
}

// Upload загружает объект под ключом key и возвращает его публичный URL.
func (s *Store) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	const op = "blob.Upload"

	_, err := s.mc.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return s.ViewURL(key), nil
}

// ViewURL возвращает публичный URL объекта по ключу.
func (s *Store) ViewURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key)
}
