package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hupe1980/nvram"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "NVRAM_"

// Backend names.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendS3       = "s3"
	BackendMinIO    = "minio"
	BackendDynamoDB = "dynamodb"
	BackendSQLite   = "sqlite"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every setting of the tool.
type Config struct {
	Backend   string `yaml:"backend" env:"BACKEND"`
	Name      string `yaml:"name" env:"NAME"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`

	File     FileConfig     `yaml:"file" envPrefix:"FILE_"`
	S3       S3Config       `yaml:"s3" envPrefix:"S3_"`
	MinIO    MinIOConfig    `yaml:"minio" envPrefix:"MINIO_"`
	DynamoDB DynamoDBConfig `yaml:"dynamodb" envPrefix:"DYNAMODB_"`
	SQLite   SQLiteConfig   `yaml:"sqlite" envPrefix:"SQLITE_"`
}

// FileConfig configures the local file backend.
type FileConfig struct {
	Dir    string `yaml:"dir" env:"DIR"`
	Atomic bool   `yaml:"atomic" env:"ATOMIC"`
	Mmap   bool   `yaml:"mmap" env:"MMAP"`
}

// S3Config configures the Amazon S3 backend.
type S3Config struct {
	Bucket          string `yaml:"bucket" env:"BUCKET"`
	Prefix          string `yaml:"prefix" env:"PREFIX"`
	Region          string `yaml:"region" env:"REGION"`
	Endpoint        string `yaml:"endpoint" env:"ENDPOINT"`
	DisableChecksum bool   `yaml:"disable_checksum" env:"DISABLE_CHECKSUM"`
}

// MinIOConfig configures the MinIO backend.
type MinIOConfig struct {
	Endpoint     string `yaml:"endpoint" env:"ENDPOINT"`
	AccessKey    string `yaml:"access_key" env:"ACCESS_KEY"`
	SecretKey    string `yaml:"secret_key" env:"SECRET_KEY"`
	Region       string `yaml:"region" env:"REGION"`
	Bucket       string `yaml:"bucket" env:"BUCKET"`
	Prefix       string `yaml:"prefix" env:"PREFIX"`
	Secure       bool   `yaml:"secure" env:"SECURE"`
	CreateBucket bool   `yaml:"create_bucket" env:"CREATE_BUCKET"`
}

// DynamoDBConfig configures the DynamoDB backend.
type DynamoDBConfig struct {
	Table    string `yaml:"table" env:"TABLE"`
	Prefix   string `yaml:"prefix" env:"PREFIX"`
	Region   string `yaml:"region" env:"REGION"`
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`
}

// SQLiteConfig configures the SQLite backend.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"PATH"`
}

// Default returns the built-in defaults: a local file named nvram.blk in the
// working directory, text logs at warn level.
func Default() *Config {
	return &Config{
		Backend:   BackendFile,
		Name:      nvram.DefaultName,
		LogLevel:  "warn",
		LogFormat: "text",
		File:      FileConfig{Dir: "."},
		SQLite:    SQLiteConfig{Path: "nvram.db"},
	}
}

// Load resolves the configuration. path may be empty to skip the YAML file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := decodeYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if _, err := c.level(); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}

	switch c.Backend {
	case BackendFile:
		if c.File.Dir == "" {
			return fmt.Errorf("%w: file.dir is required", ErrInvalidConfig)
		}
	case BackendMemory:
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("%w: s3.bucket is required", ErrInvalidConfig)
		}
	case BackendMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return fmt.Errorf("%w: minio.endpoint and minio.bucket are required", ErrInvalidConfig)
		}
	case BackendDynamoDB:
		if c.DynamoDB.Table == "" {
			return fmt.Errorf("%w: dynamodb.table is required", ErrInvalidConfig)
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("%w: sqlite.path is required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	return nil
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

// Logger builds the logger described by LogLevel and LogFormat, writing to stderr.
func (c *Config) Logger() *nvram.Logger {
	return c.LoggerTo(os.Stderr)
}

// LoggerTo is Logger with an explicit destination.
func (c *Config) LoggerTo(w io.Writer) *nvram.Logger {
	level, err := c.level()
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return nvram.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return nvram.NewLogger(slog.NewTextHandler(w, opts))
}
