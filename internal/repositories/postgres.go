package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Totarae/TopLogURLs/internal/database"
	"github.com/Totarae/TopLogURLs/internal/model"
)

// PostgresReportRepository реализует ReportRepository с использованием PostgreSQL.
type PostgresReportRepository struct {
	DB *database.DB
}

// NewPostgresReportRepository создаёт новый экземпляр репозитория.
func NewPostgresReportRepository(db *database.DB) *PostgresReportRepository {
	return &PostgresReportRepository{DB: db}
}

// SaveReport сохраняет отчёт и его записи в одной транзакции.
func (r *PostgresReportRepository) SaveReport(ctx context.Context, report *model.Report) error {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO reports (id, source, created, top_n, lines, parsed, skipped)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		report.ID, report.Source, report.Created, report.TopN,
		report.Stats.Lines, report.Stats.Parsed, report.Stats.Skipped,
	)
	if err != nil {
		return fmt.Errorf("database insert error: %w", err)
	}

	batch := &pgx.Batch{}
	for i, e := range report.Entries {
		batch.Queue(`INSERT INTO report_entries (report_id, rank, url, total_bytes) VALUES ($1, $2, $3, $4)`,
			report.ID, i+1, e.URL, e.TotalBytes)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert report entries: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetReport извлекает отчёт по ID вместе с рейтингом.
func (r *PostgresReportRepository) GetReport(ctx context.Context, id string) (*model.Report, error) {
	report := &model.Report{}
	err := r.DB.Pool.QueryRow(ctx,
		`SELECT id::text, source, created, top_n, lines, parsed, skipped FROM reports WHERE id = $1`, id,
	).Scan(&report.ID, &report.Source, &report.Created, &report.TopN,
		&report.Stats.Lines, &report.Stats.Parsed, &report.Stats.Skipped)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	rows, err := r.DB.Pool.Query(ctx,
		`SELECT url, total_bytes FROM report_entries WHERE report_id = $1 ORDER BY rank`, report.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query report entries: %w", err)
	}
	defer rows.Close()

	report.Entries = model.RankedResult{}
	for rows.Next() {
		var e model.RankedEntry
		if err := rows.Scan(&e.URL, &e.TotalBytes); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		report.Entries = append(report.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report entries: %w", err)
	}
	return report, nil
}

// Ping проверяет доступность базы данных.
func (r *PostgresReportRepository) Ping(ctx context.Context) error {
	return r.DB.Ping(ctx)
}
