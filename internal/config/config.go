package config

import (
	"fmt"
	"os"

	"guild-tracker/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath      string `validate:"required"`
	ServerPort  string `validate:"required,numeric"`
	LogLevel    string
	LogFormat   string `validate:"oneof=json console"`
	OCRAPIURL   string `validate:"omitempty,url"`
	OCRAPIKey   string
	OCRLanguage string `validate:"required"`

	DefaultsFile string

	// Defaults seed the settings row of a fresh database.
	Defaults domain.Settings
}

// defaultsFile is the optional YAML file named by DEFAULTS_FILE. Absent
// keys leave the built-in defaults alone.
type defaultsFile struct {
	Days1       *int                   `yaml:"days1"`
	Days2       *int                   `yaml:"days2"`
	Mode        *string                `yaml:"mode"`
	Language    *string                `yaml:"language"`
	BossMaxHP   *int64                 `yaml:"boss_max_hp"`
	OCRKeywords *string                `yaml:"ocr_keywords"`
	Tiers       *domain.TierThresholds `yaml:"tiers"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:       getEnv("DB_PATH", "guild.db"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		OCRAPIURL:    getEnv("OCR_API_URL", ""),
		OCRAPIKey:    getEnv("OCR_API_KEY", ""),
		OCRLanguage:  getEnv("OCR_LANGUAGE", "eng+tha"),
		DefaultsFile: getEnv("DEFAULTS_FILE", ""),
		Defaults:     domain.DefaultSettings(),
	}

	if cfg.DefaultsFile != "" {
		if err := loadDefaults(cfg.DefaultsFile, &cfg.Defaults); err != nil {
			return nil, err
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Bool("ocr_enabled", cfg.OCRAPIURL != "").
		Str("defaults_file", cfg.DefaultsFile).
		Msg("configuration loaded")

	return cfg, nil
}

func loadDefaults(path string, s *domain.Settings) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read defaults file: %w", err)
	}

	var f defaultsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("failed to parse defaults file: %w", err)
	}

	if f.Days1 != nil {
		s.Days1 = *f.Days1
	}
	if f.Days2 != nil {
		s.Days2 = *f.Days2
	}
	if f.Mode != nil {
		s.Mode = domain.Mode(*f.Mode)
	}
	if f.Language != nil {
		s.Language = domain.Language(*f.Language)
	}
	if f.BossMaxHP != nil {
		s.Config.BossMaxHP = *f.BossMaxHP
	}
	if f.OCRKeywords != nil {
		s.Config.OCRKeywords = *f.OCRKeywords
	}
	if f.Tiers != nil {
		s.Config.Tiers = *f.Tiers
	}

	switch {
	case s.Days1 < 0 || s.Days2 < 0:
		return fmt.Errorf("defaults file: days must not be negative")
	case !s.Mode.Valid():
		return fmt.Errorf("defaults file: unknown mode %q", s.Mode)
	case !s.Language.Valid():
		return fmt.Errorf("defaults file: unknown language %q", s.Language)
	}
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("defaults file: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
