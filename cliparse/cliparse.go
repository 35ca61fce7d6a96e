package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	IPHashSalt        string
	ShareBaseURL      string
	VoteCooldown      time.Duration
	KeepAliveInterval time.Duration
}

// ParseFlags validates flags and fills in defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("livepoll", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres, or memory)")
	fs.StringVar(&cfg.ShareBaseURL, "share-base", "", "Base URL for shareable poll links")

	// Abuse-control tuning
	fs.DurationVar(&cfg.VoteCooldown, "cooldown", 0, "Per-origin vote cooldown window")
	fs.DurationVar(&cfg.KeepAliveInterval, "keepalive", 0, "Live stream keep-alive interval")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Origin hash salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	switch cfg.DatabaseType {
	case "sqlite", "postgres", "memory":
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType != "memory" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.ShareBaseURL == "" {
		cfg.ShareBaseURL = os.Getenv("SHARE_BASE_URL")
		if cfg.ShareBaseURL == "" {
			cfg.ShareBaseURL = "http://localhost:" + strconv.Itoa(cfg.Port)
		}
	}

	// The enforced cooldown is the one that counts; make it explicit config
	// rather than a literal buried in the admission path.
	if cfg.VoteCooldown == 0 {
		if s := os.Getenv("VOTE_COOLDOWN"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid VOTE_COOLDOWN env variable")
			}
			cfg.VoteCooldown = d
		} else {
			cfg.VoteCooldown = 60 * time.Second
		}
	}
	if cfg.VoteCooldown < 0 {
		return Config{}, errors.New("cooldown must not be negative")
	}

	if cfg.KeepAliveInterval == 0 {
		if s := os.Getenv("KEEPALIVE_INTERVAL"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid KEEPALIVE_INTERVAL env variable")
			}
			cfg.KeepAliveInterval = d
		} else {
			cfg.KeepAliveInterval = 30 * time.Second
		}
	}
	if cfg.KeepAliveInterval <= 0 {
		return Config{}, errors.New("keepalive interval must be positive")
	}

	// Secrets - MUST be provided
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	return cfg, nil
}
