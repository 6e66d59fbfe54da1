package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
	"go.uber.org/zap"

	"github.com/Totarae/TopLogURLs/internal/config"
	"github.com/Totarae/TopLogURLs/internal/output"
)

const accessLog = `127.0.0.1 - - [10/Oct/2023:13:55:36 -0700] "GET /index.html HTTP/1.1" 200 2326
127.0.0.1 - - [10/Oct/2023:13:55:37 -0700] "GET /big.iso HTTP/1.1" 200 900000
127.0.0.1 - - [10/Oct/2023:13:55:38 -0700] "GET /index.html HTTP/1.1" 404 10
not a log line
127.0.0.1 - - [10/Oct/2023:13:55:39 -0700] "GET /about HTTP/1.1" 200 2326
`

func writeLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "access.log")
	require.NoError(t, os.WriteFile(path, []byte(accessLog), 0o644))
	return path
}

func testConfig() *config.Config {
	return &config.Config{TopN: 10, Mode: config.ModeMemory}
}

func TestRun_File(t *testing.T) {
	cfg := testConfig()
	cfg.LogFile = writeLog(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, zap.NewNop(), strings.NewReader(""), &out))
	assert.Equal(t, "/big.iso 900000\n/about 2326\n/index.html 2326\n", out.String())
}

func TestRun_TopN(t *testing.T) {
	cfg := testConfig()
	cfg.LogFile = writeLog(t)
	cfg.TopN = 1

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, zap.NewNop(), strings.NewReader(""), &out))
	assert.Equal(t, "/big.iso 900000\n", out.String())
}

func TestRun_Prompt(t *testing.T) {
	path := writeLog(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testConfig(), zap.NewNop(), strings.NewReader(path+"\n"), &out))
	assert.True(t, strings.HasPrefix(out.String(), "Please enter a filename: /big.iso 900000\n"))
}

func TestRun_MissingFile(t *testing.T) {
	cfg := testConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "nope.log")

	var out bytes.Buffer
	err := run(context.Background(), cfg, zap.NewNop(), strings.NewReader(""), &out)
	require.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRun_ReportsFileAndParquet(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.LogFile = writeLog(t)
	cfg.Mode = config.ModeFile
	cfg.ReportsFile = filepath.Join(dir, "reports.jsonl")
	cfg.ParquetOut = filepath.Join(dir, "top.parquet")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, zap.NewNop(), strings.NewReader(""), &out))

	stored, err := os.ReadFile(cfg.ReportsFile)
	require.NoError(t, err)
	assert.Contains(t, string(stored), `"url":"/big.iso"`)

	fr, err := local.NewLocalFileReader(cfg.ParquetOut)
	require.NoError(t, err)
	defer fr.Close()
	pr, err := reader.NewParquetReader(fr, new(output.RankRow), 1)
	require.NoError(t, err)
	defer pr.ReadStop()
	assert.Equal(t, int64(3), pr.GetNumRows())
}
