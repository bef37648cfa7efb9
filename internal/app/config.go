package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/utils"
)

type Config struct {
	Port           int
	AllowOrigins   []string
	MetricsEnabled bool
}

// fileConfig mirrors the optional CONFIG_FILE yaml. Fields left out of the
// file keep their environment/default values.
type fileConfig struct {
	Port           *int     `yaml:"port"`
	AllowOrigins   []string `yaml:"allow_origins"`
	MetricsEnabled *bool    `yaml:"metrics_enabled"`
}

func LoadConfig(log *logger.Logger) (Config, error) {
	port := utils.GetEnvAsInt("PORT", 8080, log)
	origins := utils.GetEnv("ALLOW_ORIGINS", "", log)
	if strings.TrimSpace(origins) == "" {
		origins = "http://localhost:3000,http://localhost:5174"
	}
	metricsEnabled := utils.GetEnvAsBool("METRICS_ENABLED", true, log)

	cfg := Config{
		Port:           port,
		AllowOrigins:   splitOrigins(origins),
		MetricsEnabled: metricsEnabled,
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}
	var overrides fileConfig
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if overrides.Port != nil {
		cfg.Port = *overrides.Port
	}
	if len(overrides.AllowOrigins) > 0 {
		cfg.AllowOrigins = overrides.AllowOrigins
	}
	if overrides.MetricsEnabled != nil {
		cfg.MetricsEnabled = *overrides.MetricsEnabled
	}
	log.Info("Applied config file overrides", "path", path)
	return cfg, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
