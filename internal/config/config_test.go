package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mafiabot/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.PlayersMin)
	assert.Equal(t, 20, cfg.PlayersMax)
	assert.Equal(t, 10*time.Minute, cfg.LobbyTTL)
	assert.Equal(t, 5*time.Second, cfg.SweepInterval)
	assert.Empty(t, cfg.Stages)
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadLimits(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("PLAYERS_MIN", "8")
	t.Setenv("PLAYERS_MAX", "6")

	_, err := Load()
	assert.ErrorContains(t, err, "PLAYERS_MAX")
}

func TestLoadRejectsTableTooLargeForKeyboard(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("PLAYERS_MAX", "25")

	_, err := Load()
	assert.ErrorContains(t, err, "PLAYERS_MAX must be at most 24")

	t.Setenv("PLAYERS_MAX", "24")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadWithStagesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.toml")
	require.NoError(t, os.WriteFile(path, []byte("[stages]\nday = \"3m\"\nsheriff_check = \"45s\"\n"), 0o600))

	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("STAGES_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, map[models.Stage]time.Duration{
		models.StageDay:          3 * time.Minute,
		models.StageSheriffCheck: 45 * time.Second,
	}, cfg.Stages)
}

func TestLoadStagesRejectsUnknownStage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.toml")
	require.NoError(t, os.WriteFile(path, []byte("[stages]\nnight = \"1m\"\n"), 0o600))

	_, err := LoadStages(path)
	assert.ErrorContains(t, err, "night")
}

func TestLoadStagesRejectsNonPositiveDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.toml")
	require.NoError(t, os.WriteFile(path, []byte("[stages]\nvote = \"0s\"\n"), 0o600))

	_, err := LoadStages(path)
	assert.Error(t, err)
}
