package source

import (
	"context"
	"fmt"
	"os"

	"github.com/bitfield/script"
)

// FileSource читает локальный файл; *.gz распаковывается.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return s.Path
}

func (s *FileSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !isGzip(s.Path) {
		data, err := script.File(s.Path).String()
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", s.Path, err)
		}
		return data, nil
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	defer f.Close()

	data, err := readAll(f, true)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return data, nil
}
