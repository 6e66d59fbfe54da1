// Package source достаёт сырой текст access-лога: из файла, из S3 или по
// имени файла, введённому пользователем.
package source

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bitfield/script"
)

// Source отдаёт весь лог одной строкой.
type Source interface {
	Read(ctx context.Context) (string, error)
	// Name описывает источник для отчёта и логов.
	Name() string
}

var (
	_ Source = (*FileSource)(nil)
	_ Source = (*S3Source)(nil)
	_ Source = (*PromptSource)(nil)
)

func isGzip(name string) bool {
	return strings.HasSuffix(name, ".gz")
}

// readAll читает r целиком, распаковывая gzip при необходимости.
func readAll(r io.Reader, gz bool) (string, error) {
	if gz {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return "", fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}
	return script.NewPipe().WithReader(r).String()
}
