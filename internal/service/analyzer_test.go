package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/Totarae/TopLogURLs/internal/metrics"
	"github.com/Totarae/TopLogURLs/internal/mocks"
	"github.com/Totarae/TopLogURLs/internal/model"
	"github.com/Totarae/TopLogURLs/internal/repositories"
)

const sampleLog = `a [10/Oct/2023:13:55:36 -0700] "GET /x HTTP/1.1" 200 100
a [10/Oct/2023:13:55:37 -0700] "GET /x HTTP/1.1" 200 50
a [10/Oct/2023:13:55:38 -0700] "GET /y HTTP/1.1" 404 9999
broken line without request
`

type stubSource struct {
	text string
	err  error
}

func (s stubSource) Read(context.Context) (string, error) { return s.text, s.err }
func (s stubSource) Name() string                         { return "stub.log" }

func TestAnalyzeText_SavesReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	var saved *model.Report
	repo.EXPECT().SaveReport(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *model.Report) error {
			saved = r
			return nil
		})

	svc := NewAnalyzerService(repo, zap.NewNop(), metrics.New())
	report, err := svc.AnalyzeText(context.Background(), "access.log", sampleLog, 10)
	require.NoError(t, err)

	assert.Same(t, saved, report)
	assert.Equal(t, model.RankedResult{{URL: "/x", TotalBytes: 150}}, report.Entries)
	assert.Equal(t, model.ParseStats{Lines: 4, Parsed: 3, Skipped: 1}, report.Stats)
	assert.Equal(t, "access.log", report.Source)
	assert.Equal(t, 10, report.TopN)
	_, err = uuid.Parse(report.ID)
	assert.NoError(t, err)
}

func TestAnalyzeText_EmptyRanking(t *testing.T) {
	svc := NewAnalyzerService(nil, zap.NewNop(), nil)

	report, err := svc.AnalyzeText(context.Background(), "empty", "", 10)
	require.NoError(t, err)
	assert.NotNil(t, report.Entries)
	assert.Empty(t, report.Entries)
}

func TestAnalyzeText_SaveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	boom := errors.New("disk full")
	repo.EXPECT().SaveReport(gomock.Any(), gomock.Any()).Return(boom)

	svc := NewAnalyzerService(repo, zap.NewNop(), nil)
	_, err := svc.AnalyzeText(context.Background(), "access.log", sampleLog, 10)
	assert.ErrorIs(t, err, boom)
}

func TestAnalyze_ReadErrorSkipsParsing(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl) // SaveReport не ожидается

	readErr := errors.New("no such file")
	svc := NewAnalyzerService(repo, zap.NewNop(), metrics.New())
	_, err := svc.Analyze(context.Background(), stubSource{err: readErr}, 10)
	assert.ErrorIs(t, err, readErr)
}

func TestAnalyze_TopN(t *testing.T) {
	svc := NewAnalyzerService(repositories.NewMemoryReportRepository(zap.NewNop()), zap.NewNop(), nil)
	text := `h [d] "GET /a HTTP/1.1" 200 1
h [d] "GET /b HTTP/1.1" 200 2
h [d] "GET /c HTTP/1.1" 200 3
`
	report, err := svc.Analyze(context.Background(), stubSource{text: text}, 2)
	require.NoError(t, err)
	assert.Equal(t, model.RankedResult{{URL: "/c", TotalBytes: 3}, {URL: "/b", TotalBytes: 2}}, report.Entries)
	assert.Equal(t, "stub.log", report.Source)

	got, err := svc.GetReport(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, report, got)
}

func TestAnalyzeText_RankedURLsGaugeCountsAllURLs(t *testing.T) {
	m := metrics.New()
	svc := NewAnalyzerService(nil, zap.NewNop(), m)
	text := `h [d] "GET /a HTTP/1.1" 200 1
h [d] "GET /b HTTP/1.1" 200 2
h [d] "GET /c HTTP/1.1" 200 3
`
	report, err := svc.AnalyzeText(context.Background(), "access.log", text, 1)
	require.NoError(t, err)
	assert.Equal(t, model.RankedResult{{URL: "/c", TotalBytes: 3}}, report.Entries)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	resp := rec.Result()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "toplog_ranked_urls 3")
}

func TestGetReport_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	svc := NewAnalyzerService(repo, zap.NewNop(), nil)

	_, err := svc.GetReport(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPing(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().Ping(gomock.Any()).Return(errors.New("down"))

	svc := NewAnalyzerService(repo, zap.NewNop(), nil)
	assert.Error(t, svc.Ping(context.Background()))

	assert.NoError(t, NewAnalyzerService(nil, zap.NewNop(), nil).Ping(context.Background()))
}
