package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/arqr-labs/halal-catalog/internal/blob"
	"github.com/arqr-labs/halal-catalog/internal/cache"
	"github.com/arqr-labs/halal-catalog/internal/config"
	"github.com/arqr-labs/halal-catalog/internal/lib/jwt"
	"github.com/arqr-labs/halal-catalog/internal/lib/qr"
	"github.com/arqr-labs/halal-catalog/internal/migrations"
	authservice "github.com/arqr-labs/halal-catalog/internal/services/auth"
	catalogservice "github.com/arqr-labs/halal-catalog/internal/services/catalog"
	"github.com/arqr-labs/halal-catalog/internal/services/session"
	"github.com/arqr-labs/halal-catalog/internal/storage"
)

// Размер стороны PNG QR-кода в пикселях.
const qrCodeSize = 256

// App приложение админ-панели каталога.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

// New собирает все зависимости приложения: базу, миграции, Redis,
// объектное хранилище, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	tokenStore, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	blobStore, err := blob.New(ctx, cfg.Blob)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker, tokenStore, logger)

	sess := session.New(db)
	// первичное наполнение списка: карточки и агрегаты должны отвечать
	// сразу после старта, не дожидаясь первого запроса списка
	if _, err = sess.LoadProducts(ctx); err != nil {
		return nil, err
	}
	encoder := qr.NewPNGEncoder(qrCodeSize)
	catalogService := catalogservice.New(logger, sess, db, blobStore, encoder, cfg.ProductBaseURL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, catalogService, sess)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
