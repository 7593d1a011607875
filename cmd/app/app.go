package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mucyuneje/asamfxproduction/internal/api"
	"github.com/mucyuneje/asamfxproduction/internal/config"
	"github.com/mucyuneje/asamfxproduction/internal/db"
	"github.com/mucyuneje/asamfxproduction/internal/events"
	"github.com/mucyuneje/asamfxproduction/internal/logger"
	"github.com/mucyuneje/asamfxproduction/internal/observability"
	"github.com/mucyuneje/asamfxproduction/internal/repository"
	"github.com/mucyuneje/asamfxproduction/internal/repository/dao"
	"github.com/mucyuneje/asamfxproduction/internal/service"
	"github.com/mucyuneje/asamfxproduction/internal/storage"
	"github.com/mucyuneje/asamfxproduction/internal/videohost"
)

const shutdownTimeout = 15 * time.Second

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := observability.InitTracing(ctx, conf.Tracing, conf.API.Environment)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			zap.L().Warn("failed to flush traces", zap.Error(err))
		}
	}()

	postgresDB, err := openDatabase(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = ensureAdmin(ctx, conf.Admin, postgresDB); err != nil {
		return fmt.Errorf("failed to ensure admin account -> %w", err)
	}

	store, err := storage.New(ctx, conf.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage -> %w", err)
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	publisher, err := newPublisher(ctx, conf.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize event publisher -> %w", err)
	}
	defer publisher.Close()

	s := api.NewServer(conf, api.Deps{
		DB:        postgresDB,
		Store:     store,
		VideoHost: videohost.NewMux(conf.Mux),
		Publisher: publisher,
	})

	return serve(ctx, s)
}

// DATABASE_URL wins over the postgres block.
func openDatabase(conf *config.AppConfig) (*gorm.DB, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return db.OpenPostgresWithURL(dbURL)
	}

	return db.OpenPostgres(conf.Postgres)
}

func ensureAdmin(ctx context.Context, conf *config.AdminConfig, conn *gorm.DB) error {
	if !conf.Enabled() {
		return nil
	}

	svc := service.NewAuthService(repository.NewUserRepository(dao.NewUserDAO(conn)))
	_, err := svc.EnsureAdmin(ctx, conf.Name, conf.Email, conf.Password)

	return err
}

func newPublisher(ctx context.Context, conf *config.RedisConfig) (events.Publisher, error) {
	if !conf.Enabled() {
		zap.L().Info("redis not configured, payment events are dropped")
		return events.Nop{}, nil
	}

	publisher, err := events.NewRedis(ctx, conf)
	if err != nil {
		return nil, err
	}

	return publisher, nil
}

func serve(ctx context.Context, s *api.Server) error {
	srv := &http.Server{
		Addr:              ":" + s.Config.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown -> %w", err)
	}

	return nil
}
