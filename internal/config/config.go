package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	DriverSMTP = "smtp"
	DriverLog  = "log"
)

type Config struct {
	Port        int           `env:"PORT" envDefault:"3007"`
	EmailUser   string        `env:"EMAIL_USER"`
	EmailPass   string        `env:"EMAIL_PASS"`
	SMTPHost    string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort    int           `env:"SMTP_PORT" envDefault:"587"`
	MailDriver  string        `env:"MAIL_DRIVER" envDefault:"smtp"`
	SendTimeout time.Duration `env:"SEND_TIMEOUT" envDefault:"30s"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.MailDriver {
	case DriverSMTP:
		if c.EmailUser == "" {
			return errors.New("EMAIL_USER is required for the smtp mail driver")
		}
	case DriverLog:
	default:
		return fmt.Errorf("unknown MAIL_DRIVER %q", c.MailDriver)
	}
	if c.SendTimeout <= 0 {
		return errors.New("SEND_TIMEOUT must be positive")
	}
	return nil
}

// Level maps LOG_LEVEL onto a slog level, falling back to info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
