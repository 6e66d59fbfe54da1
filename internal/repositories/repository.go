package repositories

import (
	"context"
	"errors"

	"github.com/Totarae/TopLogURLs/internal/model"
)

// ErrNotFound возвращается, если отчёта с таким ID нет.
var ErrNotFound = errors.New("report not found")

// ReportRepository определяет методы хранилища отчётов.
type ReportRepository interface {
	SaveReport(ctx context.Context, report *model.Report) error
	GetReport(ctx context.Context, id string) (*model.Report, error)
	Ping(ctx context.Context) error
}

var (
	_ ReportRepository = (*PostgresReportRepository)(nil)
	_ ReportRepository = (*FileReportRepository)(nil)
)
