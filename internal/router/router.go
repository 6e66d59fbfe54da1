package router

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Totarae/TopLogURLs/internal/handlers"
	"github.com/Totarae/TopLogURLs/internal/metrics"
	"github.com/Totarae/TopLogURLs/internal/middleware"
)

// NewRouter создаёт и настраивает маршрутизатор
func NewRouter(handler *handlers.Handler, logger *zap.Logger, m *metrics.Metrics) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.LoggingMiddleware(logger)) // Подключаем логирование
	if m != nil {
		r.Use(middleware.MetricsMiddleware(m))
	}
	r.Use(middleware.GzipMiddleware) // Gzip: сжатые логи на входе и сжатие ответа

	r.Post("/", handler.TopText)
	r.Post("/api/top", handler.TopJSON)
	r.Get("/api/reports/{id}", handler.GetReport)
	r.Get("/ping", handler.Ping)
	if m != nil {
		r.Method("GET", "/metrics", m.Handler())
	}
	return r
}
