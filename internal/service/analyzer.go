package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Totarae/TopLogURLs/internal/metrics"
	"github.com/Totarae/TopLogURLs/internal/model"
	"github.com/Totarae/TopLogURLs/internal/parser"
	"github.com/Totarae/TopLogURLs/internal/ranker"
	"github.com/Totarae/TopLogURLs/internal/repositories"
)

//go:generate mockgen -destination=../mocks/mock_repository.go -package=mocks github.com/Totarae/TopLogURLs/internal/service Repository

// Repository хранит отчёты анализа.
type Repository interface {
	SaveReport(ctx context.Context, report *model.Report) error
	GetReport(ctx context.Context, id string) (*model.Report, error)
	Ping(ctx context.Context) error
}

// Source отдаёт сырой текст лога.
type Source interface {
	Read(ctx context.Context) (string, error)
	Name() string
}

type AnalyzerService struct {
	Repo    Repository
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

func NewAnalyzerService(repo Repository, logger *zap.Logger, m *metrics.Metrics) *AnalyzerService {
	return &AnalyzerService{
		Repo:    repo,
		Logger:  logger,
		Metrics: m,
	}
}

// Analyze читает лог из src и строит отчёт. Ошибка чтения возвращается
// как есть, разбор в этом случае не запускается.
func (s *AnalyzerService) Analyze(ctx context.Context, src Source, n int) (*model.Report, error) {
	text, err := src.Read(ctx)
	if err != nil {
		s.Logger.Error("Не удалось прочитать лог", zap.String("source", src.Name()), zap.Error(err))
		if s.Metrics != nil {
			s.Metrics.AnalysisFailed()
		}
		return nil, err
	}
	return s.AnalyzeText(ctx, src.Name(), text, n)
}

// AnalyzeText разбирает текст, строит рейтинг из n лучших URL и сохраняет отчёт.
// Битые строки пропускаются; пустой рейтинг ошибкой не считается.
func (s *AnalyzerService) AnalyzeText(ctx context.Context, name, text string, n int) (*model.Report, error) {
	start := time.Now()

	records, stats, errs := parser.ParseText(text)
	for _, err := range errs {
		s.Logger.Debug("skipping malformed line", zap.String("source", name), zap.Error(err))
	}

	totals := ranker.Aggregate(records)
	report := &model.Report{
		ID:      uuid.NewString(),
		Source:  name,
		Created: time.Now().UTC(),
		TopN:    n,
		Stats:   stats,
		Entries: ranker.SelectTop(totals, n),
	}

	duration := time.Since(start)
	if s.Metrics != nil {
		s.Metrics.ObserveAnalysis(stats.Parsed, stats.Skipped, len(totals), duration)
	}
	s.Logger.Info("Лог проанализирован",
		zap.String("source", name),
		zap.Int("lines", stats.Lines),
		zap.Int("skipped", stats.Skipped),
		zap.Int("urls", len(totals)),
		zap.Duration("duration", duration),
	)

	if s.Repo != nil {
		if err := s.Repo.SaveReport(ctx, report); err != nil {
			s.Logger.Error("failed to save report", zap.String("id", report.ID), zap.Error(err))
			return nil, fmt.Errorf("save report: %w", err)
		}
	}
	return report, nil
}

// GetReport возвращает сохранённый отчёт. На некорректный ID отвечает ErrNotFound.
func (s *AnalyzerService) GetReport(ctx context.Context, id string) (*model.Report, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repositories.ErrNotFound
	}
	if s.Repo == nil {
		return nil, repositories.ErrNotFound
	}
	return s.Repo.GetReport(ctx, id)
}

func (s *AnalyzerService) Ping(ctx context.Context) error {
	if s.Repo == nil {
		return nil
	}
	return s.Repo.Ping(ctx)
}
