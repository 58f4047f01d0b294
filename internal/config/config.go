// Package config reads process settings from the environment and dataset
// definitions from the built-in presets plus an optional datasets.yaml.
package config

import (
	"os"
	"strconv"
	"time"

	"choromap/internal/logger"
)

// Config holds process-level settings.
type Config struct {
	DatasetsFile string
	Dataset      string
	StatePath    string
	RedisAddr    string
	RedisPass    string
	RedisDB      int
	MetricsAddr  string
	HTTPTimeout  time.Duration
}

// FromEnv reads CHOROMAP_* and the shared REDIS_*, METRICS_ADDR and
// HTTP_TIMEOUT variables. Unparseable numbers fall back to defaults.
func FromEnv() Config {
	c := Config{
		DatasetsFile: os.Getenv("CHOROMAP_DATASETS"),
		Dataset:      os.Getenv("CHOROMAP_DATASET"),
		StatePath:    os.Getenv("CHOROMAP_STATE"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisPass:    os.Getenv("REDIS_PASS"),
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
		HTTPTimeout:  30 * time.Second,
	}
	if c.DatasetsFile == "" {
		if _, err := os.Stat("datasets.yaml"); err == nil {
			c.DatasetsFile = "datasets.yaml"
		}
	}
	if c.Dataset == "" {
		c.Dataset = "romania"
	}
	if c.StatePath == "" {
		c.StatePath = "choromap.db"
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.HTTPTimeout = d
		}
	}
	logger.L().Debug("config_env", "dataset", c.Dataset, "datasets_file", c.DatasetsFile, "redis", c.RedisAddr != "")
	return c
}
