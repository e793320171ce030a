package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/alexanderramin/kanban/internal/cache"
	"github.com/alexanderramin/kanban/internal/cli"
	"github.com/alexanderramin/kanban/internal/config"
	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/httpapi"
	"github.com/alexanderramin/kanban/internal/imagestore"
	"github.com/alexanderramin/kanban/internal/repository"
	"github.com/alexanderramin/kanban/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg)

	var traceOpts []sdktrace.TracerProviderOption
	if cfg.TraceLog {
		traceOpts = append(traceOpts, sdktrace.WithSyncer(service.NewLogSpanExporter(logger)))
	}
	tp := sdktrace.NewTracerProvider(traceOpts...)
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(ctx) }()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	images, err := openImageStore(ctx, cfg, database)
	if err != nil {
		return err
	}

	// Board views are cached only when a Redis address is configured.
	var boardCache service.BoardCache
	var redisCache *cache.BoardCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		redisCache = cache.NewBoardCache(redisClient, cfg.BoardCacheTTL)
		boardCache = redisCache
		logger.WithField("addr", cfg.RedisAddr).Debug("board cache enabled")
	}

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	app := &cli.App{
		Boards:      service.NewBoardService(repository.NewSQLiteBoardRepo(database), uow, boardCache, observer),
		Columns:     service.NewColumnService(repository.NewSQLiteColumnRepo(database), uow, boardCache, observer),
		Tasks:       service.NewTaskService(repository.NewSQLiteTaskRepo(database), uow, images, boardCache, observer),
		Users:       service.NewUserService(repository.NewSQLiteUserRepo(database), uow, boardCache, observer),
		DefaultUser: cfg.DefaultUser,
		DefaultAddr: cfg.HTTPAddr,
	}

	// Detect interactive terminal for confirmation prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	handlers := &httpapi.Handlers{
		Boards:  app.Boards,
		Columns: app.Columns,
		Tasks:   app.Tasks,
		Users:   app.Users,
		Images:  images,
		Logger:  logger,
		Health: func(ctx context.Context) error {
			if err := database.PingContext(ctx); err != nil {
				return err
			}
			if redisCache != nil {
				return redisCache.Ping(ctx)
			}
			return nil
		},
	}
	app.Serve = func(ctx context.Context, addr string) error {
		return serve(ctx, logger, addr, httpapi.NewRouter(handlers, cfg.CORSOrigins))
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

func openImageStore(ctx context.Context, cfg config.Config, database db.DBTX) (imagestore.Store, error) {
	if cfg.ImageStore == config.ImageStoreS3 {
		return imagestore.NewS3Store(ctx, imagestore.S3Config{
			Bucket: cfg.S3Bucket,
			Region: cfg.S3Region,
			Prefix: cfg.S3Prefix,
		})
	}
	return imagestore.NewSQLiteStore(database), nil
}

// serve runs the API until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, logger log.FieldLogger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
