// Package config centralizes environment-driven settings: log level,
// server port, and CSV delimiter.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the runtime settings for the converter.
type Config struct {
	LogLevel     string
	Port         int
	CSVDelimiter string
}

// LoadEnv loads a .env file when one is present. Missing files are not an
// error; real environment variables always win.
func LoadEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// Load reads settings from the environment with sensible defaults.
func Load() Config {
	v := viper.New()
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", 8080)
	v.SetDefault("CSV_DELIMITER", ",")
	v.AutomaticEnv()

	return Config{
		LogLevel:     v.GetString("LOG_LEVEL"),
		Port:         v.GetInt("PORT"),
		CSVDelimiter: v.GetString("CSV_DELIMITER"),
	}
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c Config) Delimiter() rune {
	if c.CSVDelimiter == "" {
		return ','
	}
	return []rune(c.CSVDelimiter)[0]
}

// ConfigureLogging builds a logger honoring the configured level.
func ConfigureLogging(cfg Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
