package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Totarae/TopLogURLs/internal/model"
	"github.com/Totarae/TopLogURLs/internal/output"
	"github.com/Totarae/TopLogURLs/internal/repositories"
	"github.com/Totarae/TopLogURLs/internal/service"
)

// имя источника для отчётов, присланных через API
const httpSource = "http"

type Handler struct {
	Service *service.AnalyzerService
	Logger  *zap.Logger
	TopN    int

	// MaxBodyBytes ограничивает тело запроса уже после распаковки gzip.
	MaxBodyBytes int64
}

func NewHandler(svc *service.AnalyzerService, logger *zap.Logger, topN int, maxBodyBytes int64) *Handler {
	return &Handler{
		Service:      svc,
		Logger:       logger,
		TopN:         topN,
		MaxBodyBytes: maxBodyBytes,
	}
}

// readLog читает тело запроса и параметр n. При ошибке ответ уже записан.
func (h *Handler) readLog(res http.ResponseWriter, req *http.Request) (string, int, bool) {
	n := h.TopN
	if raw := req.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(res, "n must be a positive integer", http.StatusBadRequest)
			return "", 0, false
		}
		n = parsed
	}

	body, err := io.ReadAll(http.MaxBytesReader(res, req.Body, h.MaxBodyBytes))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Logger.Warn("Тело запроса слишком большое", zap.Int64("limit", tooLarge.Limit))
		http.Error(res, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
		return "", 0, false
	}
	if err != nil {
		h.Logger.Warn("Не удалось прочитать тело запроса", zap.Error(err))
		http.Error(res, "BadRequest", http.StatusBadRequest)
		return "", 0, false
	}
	text := string(body)
	if strings.TrimSpace(text) == "" {
		http.Error(res, "Log empty", http.StatusBadRequest)
		return "", 0, false
	}
	return text, n, true
}

// TopText отдаёт рейтинг в консольном формате "URL BYTES"
func (h *Handler) TopText(res http.ResponseWriter, req *http.Request) {
	text, n, ok := h.readLog(res, req)
	if !ok {
		return
	}

	report, err := h.Service.AnalyzeText(req.Context(), httpSource, text, n)
	if err != nil {
		http.Error(res, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "text/plain")
	res.WriteHeader(http.StatusOK)
	if err := output.WriteText(res, report.Entries, n); err != nil {
		h.Logger.Error("Ошибка записи ответа", zap.Error(err))
	}
}

// TopJSON строит и сохраняет отчёт, отвечает 201 с JSON
func (h *Handler) TopJSON(res http.ResponseWriter, req *http.Request) {
	text, n, ok := h.readLog(res, req)
	if !ok {
		return
	}

	report, err := h.Service.AnalyzeText(req.Context(), httpSource, text, n)
	if err != nil {
		http.Error(res, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.Header().Set("Location", fmt.Sprintf("/api/reports/%s", report.ID))
	res.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(res).Encode(model.NewTopResponse(report)); err != nil {
		h.Logger.Error("Ошибка кодирования ответа", zap.Error(err))
	}
}

func (h *Handler) GetReport(res http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	if id == "" {
		http.Error(res, "Bad Request: Missing ID in URL", http.StatusBadRequest)
		return
	}

	report, err := h.Service.GetReport(req.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(res, req)
		return
	}
	if err != nil {
		h.Logger.Error("Ошибка чтения отчёта", zap.String("id", id), zap.Error(err))
		http.Error(res, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(res).Encode(report); err != nil {
		h.Logger.Error("Ошибка кодирования ответа", zap.Error(err))
	}
}

// Ping проверяет доступность хранилища отчётов
func (h *Handler) Ping(res http.ResponseWriter, req *http.Request) {
	if err := h.Service.Ping(req.Context()); err != nil {
		h.Logger.Error("Хранилище недоступно", zap.Error(err))
		http.Error(res, "Storage unavailable", http.StatusInternalServerError)
		return
	}
	res.WriteHeader(http.StatusOK)
}
