package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port            int              `json:"port"`
	Backend         BackendConfig    `json:"backend"`
	CacheDBPath     string           `json:"cache_db_path"`
	CacheTTLMinutes int              `json:"cache_ttl_minutes"`
	CorpusPageSize  int              `json:"corpus_page_size"`
	LoadMoreDelayMs int              `json:"load_more_delay_ms"`
	RateLimitMs     int              `json:"rate_limit_ms"`
	PurgeCron       string           `json:"purge_cron"`
	CORSAllowlist   []string         `json:"cors_allowlist"`
	LogConfig       logger.LogConfig `json:"log_config"`
}

type BackendConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend.base_url is required")
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = 15
	}
	if cfg.CacheDBPath == "" {
		cfg.CacheDBPath = "chunkview_cache.db"
	}
	if cfg.CacheTTLMinutes == 0 {
		cfg.CacheTTLMinutes = 60
	}
	if cfg.CorpusPageSize == 0 {
		cfg.CorpusPageSize = 200
	}
	if cfg.PurgeCron == "" {
		cfg.PurgeCron = "0 * * * *"
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	return &cfg, nil
}
