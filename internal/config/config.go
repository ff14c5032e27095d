package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	applog "storekeeper/internal/log"
)

// EnvPrefix prefixes every variable, e.g. STOREKEEPER_PORT.
const EnvPrefix = "STOREKEEPER"

type Config struct {
	Port           string `envconfig:"PORT" default:"8081"`
	DataDir        string `envconfig:"DATA_DIR" default:"."`
	MediaDir       string `envconfig:"MEDIA_DIR" default:"./media"`
	LogFile        string `envconfig:"LOG_FILE"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogMaxSizeMB   int    `envconfig:"LOG_MAX_SIZE_MB" default:"10"`
	LogMaxBackups  int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`
	Seed           bool   `envconfig:"SEED" default:"false"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"8388608"`
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("parsing config: %s_MAX_UPLOAD_BYTES must be positive", EnvPrefix)
	}
	applog.Info(nil, "config.load", map[string]any{
		"port":      cfg.Port,
		"data_dir":  cfg.DataDir,
		"media_dir": cfg.MediaDir,
		"log_file":  cfg.LogFile,
		"seed":      cfg.Seed,
	})
	return cfg, nil
}
