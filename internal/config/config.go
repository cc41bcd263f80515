package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/mafiabot/internal/models"
)

// Config is the process configuration read from the environment
type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required,notEmpty"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	PlayersMin    int           `env:"PLAYERS_MIN" envDefault:"4"`
	PlayersMax    int           `env:"PLAYERS_MAX" envDefault:"20"`
	LobbyTTL      time.Duration `env:"LOBBY_TTL" envDefault:"10m"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"5s"`

	// AdminID may reset every game; empty disables the reset command
	AdminID string `env:"ADMIN_ID"`

	// StagesFile is an optional TOML file overriding stage durations
	StagesFile string `env:"STAGES_FILE"`

	// Stages holds the durations read from StagesFile
	Stages map[models.Stage]time.Duration `env:"-"`
}

// Load reads an optional .env file, the environment and the stages file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.StagesFile != "" {
		stages, err := LoadStages(cfg.StagesFile)
		if err != nil {
			return nil, err
		}
		cfg.Stages = stages
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseEnv loads configuration from environment variables
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// maxPlayers keeps every vote keyboard within one chat message
const maxPlayers = 24

// Validate checks the limits the services rely on
func (c *Config) Validate() error {
	if c.PlayersMin < 4 {
		return fmt.Errorf("PLAYERS_MIN must be at least 4, got %d", c.PlayersMin)
	}
	if c.PlayersMax < c.PlayersMin {
		return fmt.Errorf("PLAYERS_MAX (%d) must not be below PLAYERS_MIN (%d)", c.PlayersMax, c.PlayersMin)
	}
	if c.PlayersMax > maxPlayers {
		return fmt.Errorf("PLAYERS_MAX must be at most %d, got %d", maxPlayers, c.PlayersMax)
	}
	if c.LobbyTTL <= 0 {
		return errors.New("LOBBY_TTL must be positive")
	}
	if c.SweepInterval <= 0 {
		return errors.New("SWEEP_INTERVAL must be positive")
	}
	for stage, d := range c.Stages {
		if d <= 0 {
			return fmt.Errorf("duration of stage %s must be positive", stage)
		}
	}
	return nil
}

type stagesFile struct {
	Stages map[string]string `toml:"stages"`
}

// LoadStages decodes the [stages] table of a TOML file. Keys are stage names
// such as "day" or "sheriff_check", values are durations such as "90s".
func LoadStages(path string) (map[models.Stage]time.Duration, error) {
	var raw stagesFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("load stages file: %w", err)
	}

	stages := make(map[models.Stage]time.Duration, len(raw.Stages))
	for name, value := range raw.Stages {
		stage, err := models.ParseStage(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("stages file: %w", err)
		}
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("parse duration of %s: %w", name, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("duration of %s must be positive", name)
		}
		stages[stage] = d
	}

	return stages, nil
}
