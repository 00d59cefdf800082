package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

// Config is read from the environment, after .env has been loaded.
type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	GinMode      string `env:"GIN_MODE"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"portfolio.db"`
	ContentPath  string `env:"CONTENT_PATH"`
	StaticDir    string `env:"STATIC_DIR" envDefault:"./static"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`

	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// HashSalt keeps hashed visitor addresses stable across restarts. When
	// empty a random salt is generated at startup.
	HashSalt       string        `env:"HASH_SALT"`
	VisitRetention time.Duration `env:"VISIT_RETENTION" envDefault:"8760h"`

	SMTP SMTPConfig
}

// SMTPConfig configures the contact form mailer.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     string `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	To       string `env:"TO_EMAIL"`
}

// Configured reports whether mail can be sent.
func (c SMTPConfig) Configured() bool {
	return c.User != "" && c.Password != "" && c.To != ""
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
