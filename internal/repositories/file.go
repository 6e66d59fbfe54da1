package repositories

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/Totarae/TopLogURLs/internal/model"
)

// FileReportRepository хранит отчёты в памяти и дописывает их в
// JSON-lines файл. С пустым путём работает только в памяти.
type FileReportRepository struct {
	data   map[string]*model.Report
	mutex  sync.RWMutex
	file   string
	logger *zap.Logger
}

// NewFileReportRepository загружает ранее сохранённые отчёты из файла.
func NewFileReportRepository(file string, logger *zap.Logger) *FileReportRepository {
	repo := &FileReportRepository{
		data:   make(map[string]*model.Report),
		file:   file,
		logger: logger,
	}

	if err := repo.loadFromFile(); err != nil {
		logger.Error("Ошибка загрузки из файла", zap.String("file", file), zap.Error(err))
	}
	return repo
}

// NewMemoryReportRepository создаёт хранилище без файла.
func NewMemoryReportRepository(logger *zap.Logger) *FileReportRepository {
	return NewFileReportRepository("", logger)
}

func (r *FileReportRepository) SaveReport(_ context.Context, report *model.Report) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.appendToFile(report); err != nil {
		return err
	}
	r.data[report.ID] = report
	return nil
}

func (r *FileReportRepository) GetReport(_ context.Context, id string) (*model.Report, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	report, ok := r.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	return report, nil
}

// Ping всегда успешен: файл открывается на каждую запись.
func (r *FileReportRepository) Ping(context.Context) error {
	return nil
}

// loadFromFile загружает отчёты при старте.
func (r *FileReportRepository) loadFromFile() error {
	if r.file == "" {
		return nil
	}
	file, err := os.Open(r.file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Файл ещё не создан, это не ошибка
		}
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	for decoder.More() {
		var report model.Report
		if err := decoder.Decode(&report); err != nil {
			return err
		}
		r.data[report.ID] = &report
	}

	r.logger.Info("Загружены отчёты", zap.Int("count", len(r.data)), zap.String("file", r.file))
	return nil
}

// appendToFile добавляет отчёт новой строкой в файл
func (r *FileReportRepository) appendToFile(report *model.Report) error {
	if r.file == "" {
		return nil
	}
	file, err := os.OpenFile(r.file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	_, err = file.Write(append(data, '\n'))
	return err
}
