package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/Totarae/TopLogURLs/internal/model"
	"github.com/Totarae/TopLogURLs/internal/ranker"
)

// RankRow описывает одну строку Parquet-файла с рейтингом
type RankRow struct {
	Rank       int32  `parquet:"name=rank, type=INT32"`
	URL        string `parquet:"name=url, type=BYTE_ARRAY, convertedtype=UTF8"`
	TotalBytes int64  `parquet:"name=total_bytes, type=INT64"`
}

// ParquetSink writes rankings to a Parquet file.
type ParquetSink struct {
	Path string
	// Parallelism of the parquet writer.
	Parallel int64
}

func NewParquetSink(path string) *ParquetSink {
	return &ParquetSink{Path: path, Parallel: 4}
}

// Write записывает первые n записей рейтинга, перезаписывая файл.
func (s *ParquetSink) Write(result model.RankedResult, n int) error {
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := local.NewLocalFileWriter(s.Path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}

	pw, err := writer.NewParquetWriter(file, new(RankRow), s.Parallel)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	for i, e := range ranker.Top(result, n) {
		row := RankRow{Rank: int32(i + 1), URL: e.URL, TotalBytes: e.TotalBytes}
		if err := pw.Write(row); err != nil {
			file.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		file.Close()
		return fmt.Errorf("failed to stop parquet writer: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close parquet file: %w", err)
	}
	return nil
}
