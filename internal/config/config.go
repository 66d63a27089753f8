package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type HttpCfg struct {
	Port            int           `env:"HTTP_PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type LogCfg struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

type SeedCfg struct {
	File string `env:"SEED_FILE" envDefault:""`
}

type Config struct {
	HttpCfg HttpCfg
	LogCfg  LogCfg
	SeedCfg SeedCfg
}

func Build() (Config, error) {
	var cfg Config
	opts := env.Options{RequiredIfNoDef: true}

	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	if cfg.LogCfg.Format != "text" && cfg.LogCfg.Format != "json" {
		return cfg, fmt.Errorf("unsupported log format %s, expected text or json", cfg.LogCfg.Format)
	}
	return cfg, nil
}
