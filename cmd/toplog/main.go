package main

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

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Totarae/TopLogURLs/internal/config"
	"github.com/Totarae/TopLogURLs/internal/database"
	"github.com/Totarae/TopLogURLs/internal/handlers"
	"github.com/Totarae/TopLogURLs/internal/metrics"
	"github.com/Totarae/TopLogURLs/internal/output"
	"github.com/Totarae/TopLogURLs/internal/repositories"
	"github.com/Totarae/TopLogURLs/internal/router"
	"github.com/Totarae/TopLogURLs/internal/service"
	"github.com/Totarae/TopLogURLs/internal/source"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Инициализация конфигурации
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Fatal("Ошибка конфигурации", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Fatal("Анализ не выполнен", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, stdin io.Reader, stdout io.Writer) error {
	m := metrics.New()

	repo, closeRepo, err := newRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	svc := service.NewAnalyzerService(repo, logger, m)

	if cfg.Serve {
		return serve(ctx, cfg, svc, logger, m)
	}

	src, err := newSource(ctx, cfg, stdin, stdout)
	if err != nil {
		return err
	}

	report, err := svc.Analyze(ctx, src, cfg.TopN)
	if err != nil {
		return err
	}

	if err := output.WriteText(stdout, report.Entries, cfg.TopN); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if cfg.ParquetOut != "" {
		if err := output.NewParquetSink(cfg.ParquetOut).Write(report.Entries, cfg.TopN); err != nil {
			return fmt.Errorf("write parquet: %w", err)
		}
		logger.Info("Рейтинг сохранён в Parquet", zap.String("path", cfg.ParquetOut))
	}
	return nil
}

// newRepository выбирает хранилище отчётов по режиму конфигурации
func newRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Repository, func(), error) {
	switch cfg.Mode {
	case config.ModeDatabase:
		if err := database.RunMigrations(cfg.DatabaseDSN, cfg.PgMigrationsPath, logger); err != nil {
			return nil, nil, err
		}
		db, err := database.NewDB(ctx, cfg.DatabaseDSN, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Отчёты хранятся в PostgreSQL")
		return repositories.NewPostgresReportRepository(db), db.Close, nil
	case config.ModeFile:
		logger.Info("Отчёты хранятся в файле", zap.String("path", cfg.ReportsFile))
		return repositories.NewFileReportRepository(cfg.ReportsFile, logger), func() {}, nil
	default:
		return repositories.NewMemoryReportRepository(logger), func() {}, nil
	}
}

// newSource: файл, объект S3 или имя файла из stdin
func newSource(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer) (service.Source, error) {
	switch {
	case cfg.LogFile != "":
		return source.NewFileSource(cfg.LogFile), nil
	case cfg.S3URI != "":
		src, err := source.NewS3Source(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Key)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return source.NewPromptSource(stdin, stdout), nil
	}
}

func serve(ctx context.Context, cfg *config.Config, svc *service.AnalyzerService, logger *zap.Logger, m *metrics.Metrics) error {
	handler := handlers.NewHandler(svc, logger, cfg.TopN, cfg.MaxBodyBytes)
	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router.NewRouter(handler, logger, m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Ошибка остановки сервера", zap.Error(err))
		}
	}()

	logger.Info("Сервер запущен", zap.String("address", cfg.ServerAddress))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	}
	return nil
}
