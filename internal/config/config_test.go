package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ",", cfg.CSVDelimiter)
	assert.Equal(t, ',', cfg.Delimiter())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9090")
	t.Setenv("CSV_DELIMITER", ";")

	cfg := Load()

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, ';', cfg.Delimiter())
}

func TestConfigureLogging(t *testing.T) {
	logger := ConfigureLogging(Config{LogLevel: "debug"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	// Unknown levels fall back to info rather than failing startup.
	logger = ConfigureLogging(Config{LogLevel: "noisy"})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
