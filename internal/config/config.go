package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "petd.db"
)

type Config struct {
	DBPath        string `toml:"db_path"`
	HorizonMonths int    `toml:"horizon_months"`
	AlertBuffer   int    `toml:"alert_buffer"`
	DefaultPet    string `toml:"default_pet"`
}

func Default() Config {
	return Config{
		DBPath:        DefaultDBName,
		HorizonMonths: 3,
		AlertBuffer:   64,
	}
}

// DefaultPath resolves the config location under the user's config dir,
// falling back to the working directory when none is available.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, "petd", DefaultConfigFileName)
}

// LoadOrCreate reads the TOML config at path, writing the defaults there
// first if the file does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return applyEnv(cfg), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.HorizonMonths <= 0 {
		cfg.HorizonMonths = 3
	}
	if cfg.AlertBuffer <= 0 {
		cfg.AlertBuffer = 64
	}
	return applyEnv(cfg), nil
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func applyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv("PETD_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v, ok := getEnvInt("PETD_HORIZON_MONTHS"); ok && v > 0 {
		cfg.HorizonMonths = v
	}
	if v, ok := getEnvInt("PETD_ALERT_BUFFER"); ok && v > 0 {
		cfg.AlertBuffer = v
	}
	if v := strings.TrimSpace(os.Getenv("PETD_DEFAULT_PET")); v != "" {
		cfg.DefaultPet = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
