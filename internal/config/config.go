package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the bot reads from the environment.
type Config struct {
	DiscordToken  string        `env:"DISCORD_TOKEN,required"`
	CommandPrefix string        `env:"COMMAND_PREFIX" envDefault:"j/"`
	ReplyTimeout  time.Duration `env:"REPLY_TIMEOUT" envDefault:"60s"`
	StoragePath   string        `env:"STORAGE_PATH" envDefault:"datastore.json"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
}

// New loads .env (if present) and parses the environment into a Config.
func New() (*Config, error) {
	// Missing .env is fine; system environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
