package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestConfig_DefaultAnalysisThresholds(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 0.5, cfg.Analysis.Risk.HHIHigh)
	assert.Equal(t, 0.25, cfg.Analysis.Risk.HHIMedium)
	assert.Equal(t, 0.1, cfg.Analysis.Sentiment.NeutralBand)
	assert.Equal(t, 3, cfg.Analysis.Events.MaxEventsPerSymbol)
	assert.Equal(t, 10, cfg.Analysis.Events.LookbackDays)
	assert.Len(t, cfg.Analysis.Forecast.Scenarios, 3)
	assert.Equal(t, 30, cfg.Reports.LookbackDays)
	require.NoError(t, cfg.Validate())
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_InvalidPortEnvIgnored(t *testing.T) {
	t.Setenv("FOLIO_PORT", "not-a-port")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestConfig_AnalysisEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_NEUTRAL_BAND", "0.2")
	t.Setenv("FOLIO_LOOKBACK_DAYS", "14")
	t.Setenv("FOLIO_DATA_PATH", "/tmp/folio-data")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, 0.2, cfg.Analysis.Sentiment.NeutralBand)
	assert.Equal(t, 14, cfg.Reports.LookbackDays)
	assert.Equal(t, "/tmp/folio-data", cfg.Storage.Path)
}

func TestLoadConfig_MergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	override := filepath.Join(dir, "override.toml")

	require.NoError(t, os.WriteFile(base, []byte(`
[server]
port = 7000

[analysis.risk]
hhi_high = 0.6
hhi_medium = 0.3
`), 0o644))
	require.NoError(t, os.WriteFile(override, []byte(`
[server]
port = 7100

[analysis.events]
lookback_days = 7
`), 0o644))

	cfg, err := LoadConfig(base, override, filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, 7100, cfg.Server.Port)
	assert.Equal(t, 0.6, cfg.Analysis.Risk.HHIHigh)
	assert.Equal(t, 0.3, cfg.Analysis.Risk.HHIMedium)
	assert.Equal(t, 7, cfg.Analysis.Events.LookbackDays)
	assert.Equal(t, 3, cfg.Analysis.Events.MaxEventsPerSymbol)
	// untouched sections keep defaults
	assert.Equal(t, 0.1, cfg.Analysis.Sentiment.NeutralBand)
}

func TestLoadConfig_RejectsInvertedThresholds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[analysis.risk]
hhi_high = 0.2
hhi_medium = 0.4
`), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hhi_medium")
}

func TestConfig_ValidateScenarioReturn(t *testing.T) {
	tests := []struct {
		name   string
		ret    float64
		wantOK bool
	}{
		{"total loss", -100, false},
		{"beyond total loss", -150, false},
		{"deep loss", -99.5, true},
		{"growth", 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.Analysis.Forecast.Scenarios[0].AnnualReturn = tt.ret
			err := cfg.Validate()
			if tt.wantOK {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "annual_return")
		})
	}
}

func TestLoadConfig_RejectsTotalLossScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[analysis.forecast.scenarios]]
name = "wipeout"
annual_return = -100
`), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wipeout")
}

func TestLoadConfig_ParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport = "), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestServerConfig_GetRequestTimeout(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"5s", 5 * time.Second},
		{"", 30 * time.Second},
		{"garbage", 30 * time.Second},
		{"-1s", 30 * time.Second},
	}
	for _, tt := range tests {
		c := ServerConfig{RequestTimeout: tt.in}
		if got := c.GetRequestTimeout(); got != tt.want {
			t.Errorf("GetRequestTimeout(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.False(t, cfg.IsProduction())
	cfg.Environment = " PROD "
	assert.True(t, cfg.IsProduction())
}
