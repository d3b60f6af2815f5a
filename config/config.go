package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/kevinaaaquil/locallibrary/logger"
)

// Store backends selectable through STORE_BACKEND.
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	ServiceName   string
	Port          string
	LogLevel      string
	StoreBackend  string
	MongoURI      string
	DBName        string
	S3Bucket      string
	S3Region      string
	S3AccessKeyID string
	S3SecretKey   string
	MaxUploadMB   int64
}

func Load() (*Config, error) {
	maxMB := int64(5)
	if v := getEnv("MAX_UPLOAD_MB", ""); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MAX_UPLOAD_MB: %w", err)
		}
		maxMB = n
	}

	cfg := &Config{
		ServiceName:   getEnv("SERVICE_NAME", "locallibrary"),
		Port:          getEnv("PORT", "8080"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", BackendMongo)),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:        getEnv("MONGODB_DB", "locallibrary"),
		S3Bucket:      getEnv("AWS_S3_BUCKET", ""),
		S3Region:      getEnv("AWS_REGION", "us-east-1"),
		S3AccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		MaxUploadMB:   maxMB,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used to start the server.
func (c *Config) Validate() error {
	if c.StoreBackend != BackendMongo && c.StoreBackend != BackendMemory {
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendMongo, BackendMemory, c.StoreBackend)
	}
	if c.StoreBackend == BackendMongo && (c.MongoURI == "" || c.DBName == "") {
		return fmt.Errorf("MONGODB_URI and MONGODB_DB are required for the mongo backend")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if !slices.Contains(logger.Levels, c.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of %s, got %q", strings.Join(logger.Levels, ", "), c.LogLevel)
	}
	return nil
}

// CoversEnabled reports whether book cover uploads have a bucket to go to.
func (c *Config) CoversEnabled() bool {
	return c.S3Bucket != ""
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
