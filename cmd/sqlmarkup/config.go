package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/leporo/sqlmarkup"
)

// config holds CLI settings read from flags, SQLMARKUP_* environment
// variables and .sqlmarkup.yaml, in that order of priority.
type config struct {
	Driver      string
	DSN         string
	Dialect     string
	KeepFirst   bool
	DetectTypes bool
	CacheSize   int
	Debug       bool
}

func loadConfig(v *viper.Viper, file string) (*config, error) {
	// A missing .env is fine
	_ = godotenv.Load()

	v.SetEnvPrefix("SQLMARKUP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("driver", "sqlite3")
	v.SetDefault("cache-size", 0)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".sqlmarkup")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return &config{
		Driver:      v.GetString("driver"),
		DSN:         v.GetString("dsn"),
		Dialect:     v.GetString("dialect"),
		KeepFirst:   v.GetBool("keep-first"),
		DetectTypes: v.GetBool("detect-types"),
		CacheSize:   v.GetInt("cache-size"),
		Debug:       v.GetBool("debug"),
	}, nil
}

func (cfg *config) dialect() (*sqlmarkup.Dialect, error) {
	switch cfg.Dialect {
	case "":
		return sqlmarkup.DialectFor(cfg.Driver), nil
	case "named":
		return sqlmarkup.Named, nil
	case "postgres":
		return sqlmarkup.PostgreSQL, nil
	case "question":
		return sqlmarkup.Question, nil
	}
	return nil, fmt.Errorf("unknown dialect: %s", cfg.Dialect)
}

func (cfg *config) compiler() (*sqlmarkup.Compiler, error) {
	d, err := cfg.dialect()
	if err != nil {
		return nil, err
	}
	opts := []sqlmarkup.Option{
		sqlmarkup.WithDialect(d),
		sqlmarkup.WithOverride(!cfg.KeepFirst),
		sqlmarkup.WithTypeDetection(cfg.DetectTypes),
		sqlmarkup.WithCacheSize(cfg.CacheSize),
	}
	if cfg.Debug {
		opts = append(opts, sqlmarkup.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}
	return sqlmarkup.New(opts...), nil
}
