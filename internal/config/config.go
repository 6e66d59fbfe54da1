package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Режимы хранения отчётов
const (
	ModeDatabase = "database"
	ModeFile     = "file"
	ModeMemory   = "in-memory"
)

// Config хранит конфигурацию утилиты и сервера
type Config struct {
	ServerAddress    string `json:"server_address"`
	LogFile          string `json:"log_file"`
	S3URI            string `json:"s3_uri"`
	S3Bucket         string `json:"-"`
	S3Key            string `json:"-"`
	AWSRegion        string `json:"aws_region"`
	TopN             int    `json:"top_n"`
	ParquetOut       string `json:"parquet_out"`
	Serve            bool   `json:"serve"`
	DatabaseDSN      string `json:"database_dsn"`
	PgMigrationsPath string `json:"pg_migrations_path"`
	ReportsFile      string `json:"reports_file"`
	MaxBodyBytes     int64  `json:"max_body_bytes"`
	Mode             string `json:"-"`
}

// Load собирает конфигурацию. Приоритет: флаги, переменные окружения,
// .env, JSON-файл (-c / CONFIG), значения по умолчанию.
func Load(args []string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server_address", "localhost:8080") // Значения по умолчанию
	v.SetDefault("log_file", "")
	v.SetDefault("s3_uri", "")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("top_n", 10)
	v.SetDefault("parquet_out", "")
	v.SetDefault("serve", false)
	v.SetDefault("database_dsn", "")
	v.SetDefault("pg_migrations_path", "internal/migrations")
	v.SetDefault("reports_file", "")
	v.SetDefault("max_body_bytes", 32<<20) // 32 MiB распакованного лога на запрос

	v.AutomaticEnv()

	fs := pflag.NewFlagSet("toplog", pflag.ContinueOnError)
	fs.StringP("address", "a", "", "HTTP server address")
	fs.StringP("file", "f", "", "access log file (.gz is decompressed)")
	fs.String("s3-uri", "", "access log object, s3://bucket/key")
	fs.String("aws-region", "", "AWS region for --s3-uri")
	fs.IntP("top", "n", 0, "number of URLs to report")
	fs.String("parquet-out", "", "write the ranking to this Parquet file")
	fs.Bool("serve", false, "run the HTTP API instead of a single analysis")
	fs.StringP("database-dsn", "d", "", "PostgreSQL DSN for stored reports")
	fs.String("migrations", "", "path to PostgreSQL migrations")
	fs.String("reports-file", "", "JSON-lines file for stored reports")
	fs.Int64("max-body-bytes", 0, "max size of a decompressed log upload")
	fs.StringP("config", "c", "", "path to JSON config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	bindings := map[string]string{
		"server_address":     "address",
		"log_file":           "file",
		"s3_uri":             "s3-uri",
		"aws_region":         "aws-region",
		"top_n":              "top",
		"parquet_out":        "parquet-out",
		"serve":              "serve",
		"database_dsn":       "database-dsn",
		"pg_migrations_path": "migrations",
		"reports_file":       "reports-file",
		"max_body_bytes":     "max-body-bytes",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	// Читаем .env, если есть (не переопределяет переменные окружения!)
	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		if err := v.MergeInConfig(); err != nil {
			log.Printf("Не удалось прочитать .env: %v", err)
		}
	}

	configPath, _ := fs.GetString("config")
	if configPath == "" {
		configPath = os.Getenv("CONFIG")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("json")
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", configPath, err)
		}
	}

	cfg := &Config{
		ServerAddress:    v.GetString("server_address"),
		LogFile:          v.GetString("log_file"),
		S3URI:            v.GetString("s3_uri"),
		AWSRegion:        v.GetString("aws_region"),
		TopN:             v.GetInt("top_n"),
		ParquetOut:       v.GetString("parquet_out"),
		Serve:            v.GetBool("serve"),
		DatabaseDSN:      v.GetString("database_dsn"),
		PgMigrationsPath: v.GetString("pg_migrations_path"),
		ReportsFile:      v.GetString("reports_file"),
		MaxBodyBytes:     v.GetInt64("max_body_bytes"),
	}

	// Определяем режим работы
	if cfg.DatabaseDSN != "" {
		cfg.Mode = ModeDatabase
	} else if cfg.ReportsFile != "" {
		cfg.Mode = ModeFile
	} else {
		cfg.Mode = ModeMemory
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}
	return cfg, nil
}

// Validate проверяет корректность конфигурации и раскладывает S3URI
func (cfg *Config) Validate() error {
	if cfg.TopN <= 0 {
		return errors.New("top N must be positive")
	}
	if cfg.MaxBodyBytes <= 0 {
		return errors.New("max body size must be positive")
	}
	if cfg.Serve && cfg.ServerAddress == "" {
		return errors.New("адрес сервера не может быть пустым")
	}
	if cfg.LogFile != "" && cfg.S3URI != "" {
		return errors.New("use either a log file or an S3 URI, not both")
	}
	if cfg.S3URI != "" {
		bucket, key, err := ParseS3URI(cfg.S3URI)
		if err != nil {
			return err
		}
		cfg.S3Bucket, cfg.S3Key = bucket, key
	}
	return nil
}

// ParseS3URI разбирает s3://bucket/key
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("invalid S3 URI %q: want s3://bucket/key", uri)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 URI %q: want s3://bucket/key", uri)
	}
	return bucket, key, nil
}
