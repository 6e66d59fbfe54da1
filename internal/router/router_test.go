package router

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Totarae/TopLogURLs/internal/handlers"
	"github.com/Totarae/TopLogURLs/internal/metrics"
	"github.com/Totarae/TopLogURLs/internal/repositories"
	"github.com/Totarae/TopLogURLs/internal/service"
)

func TestRouter_GzipUploadAndMetrics(t *testing.T) {
	logger := zap.NewNop()
	m := metrics.New()
	svc := service.NewAnalyzerService(repositories.NewMemoryReportRepository(logger), logger, m)
	srv := httptest.NewServer(NewRouter(handlers.NewHandler(svc, logger, 10, 1<<20), logger, m))
	defer srv.Close()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`1.2.3.4 - - [d] "GET /x HTTP/1.1" 200 42` + "\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Encoding", "gzip")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/x 42\n", string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), `toplog_lines_total{result="parsed"} 1`)
	assert.Contains(t, string(body), `toplog_http_requests_total{method="POST",route="/",status="200"} 1`)
}

func TestRouter_GzipUploadLimitAppliesAfterDecompression(t *testing.T) {
	logger := zap.NewNop()
	svc := service.NewAnalyzerService(repositories.NewMemoryReportRepository(logger), logger, nil)
	r := NewRouter(handlers.NewHandler(svc, logger, 10, 1<<20), logger, nil)

	// 8 MiB нулей сжимаются в несколько килобайт
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(make([]byte, 8<<20))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.Less(t, buf.Len(), 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRouter_WithoutMetrics(t *testing.T) {
	logger := zap.NewNop()
	svc := service.NewAnalyzerService(repositories.NewMemoryReportRepository(logger), logger, nil)
	r := NewRouter(handlers.NewHandler(svc, logger, 10, 1<<20), logger, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
