package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment. When envFiles are given,
// each existing file is loaded first without overriding variables already set.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default()
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using system environment")
		}
	}
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil {
			logger.Warn("skipping environment file", "path", path, "error", err)
		}
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("configuration loaded",
		"env", cfg.Env,
		"server_port", cfg.Server.Port,
		"db", maskValue(cfg.DB.Url),
		"jwt_expiry", cfg.Jwt.Expiry,
		"statement_default_size", cfg.Statement.DefaultSize,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
	)
	return &cfg, nil
}

// maskValue hides secrets in startup logs, keeping a short prefix for
// recognizability.
func maskValue(v string) string {
	if len(v) <= 8 {
		return "****"
	}
	return v[:8] + "****"
}
