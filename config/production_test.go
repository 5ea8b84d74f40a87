package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *ProductionConfig {
	return &ProductionConfig{
		Database: DatabaseConfig{Driver: "postgres", Host: "localhost", Port: 5432, Name: "jasado", User: "postgres"},
		Server:   ServerConfig{Port: 8080, ReadTimeout: time.Second, WriteTimeout: time.Second},
		Security: SecurityConfig{BcryptCost: 12},
		JWT: JWTConfig{
			SecretKey:       "0123456789abcdef0123456789abcdef",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Logging:   LoggingConfig{Level: "info", Output: "stdout"},
		Scheduler: SchedulerConfig{Enabled: true, Interval: time.Hour},
		Pricing:   DefaultPricingConfig(),
	}
}

func TestValidateProductionConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *ProductionConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(cfg *ProductionConfig) {}},
		{
			name:    "unknown driver",
			mutate:  func(cfg *ProductionConfig) { cfg.Database.Driver = "sqlite" },
			wantErr: "DB_DRIVER",
		},
		{
			name:    "mysql accepted",
			mutate:  func(cfg *ProductionConfig) { cfg.Database.Driver = "mysql" },
			wantErr: "",
		},
		{
			name:    "short jwt secret",
			mutate:  func(cfg *ProductionConfig) { cfg.JWT.SecretKey = "short" },
			wantErr: "JWT_SECRET_KEY",
		},
		{
			name:    "half configured admin",
			mutate:  func(cfg *ProductionConfig) { cfg.Admin.Username = "root" },
			wantErr: "ADMIN_USERNAME and ADMIN_PASSWORD",
		},
		{
			name:    "file output without path",
			mutate:  func(cfg *ProductionConfig) { cfg.Logging.Output = "file" },
			wantErr: "LOG_FILE_PATH",
		},
		{
			name:    "zero retention",
			mutate:  func(cfg *ProductionConfig) { cfg.Pricing.HistoryRetentionDays = 0 },
			wantErr: "PRICING_HISTORY_RETENTION_DAYS",
		},
		{
			name:    "zero batch size",
			mutate:  func(cfg *ProductionConfig) { cfg.Pricing.UpdateBatchSize = 0 },
			wantErr: "batch sizes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := ValidateProductionConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateProductionConfigCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Host = ""
	cfg.Pricing.OwnVendorID = ""

	err := ValidateProductionConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "PRICING_OWN_VENDOR_ID")
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("JASADO_TEST_INT", "42")
	t.Setenv("JASADO_TEST_BAD_INT", "forty")
	t.Setenv("JASADO_TEST_DURATION", "90s")
	t.Setenv("JASADO_TEST_SLICE", " a, b ,,c ")

	assert.Equal(t, 42, getEnvInt("JASADO_TEST_INT", 1))
	assert.Equal(t, 1, getEnvInt("JASADO_TEST_BAD_INT", 1))
	assert.Equal(t, 90*time.Second, getEnvDuration("JASADO_TEST_DURATION", time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, getEnvStringSlice("JASADO_TEST_SLICE", nil))
	assert.Equal(t, "fallback", getEnvString("JASADO_TEST_MISSING", "fallback"))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("JASADO_TEST_FROM_FILE=file\nJASADO_TEST_PRESET=file\n"), 0o600))

	t.Setenv("JASADO_TEST_PRESET", "env")
	t.Setenv("JASADO_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("JASADO_TEST_FROM_FILE"))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "file", os.Getenv("JASADO_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("JASADO_TEST_PRESET"))

	assert.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "warn", Output: "stdout"})
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	_, err = NewLogger(LoggingConfig{Level: "loud", Output: "stdout"})
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err = NewLogger(LoggingConfig{Level: "info", Output: "file", FilePath: path, MaxSize: 1})
	require.NoError(t, err)
	logger.Info("written")
	assert.FileExists(t, path)
}
