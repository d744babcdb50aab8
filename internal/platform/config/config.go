package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"genpi/internal/namecache"
	"genpi/internal/namesource/namegen"
)

// ErrInvalidConfig marks a configuration the process refuses to start with.
var ErrInvalidConfig = errors.New("invalid configuration")

const defaultPort = 3000

// Server captures process level configuration.
type Server struct {
	Port     uint16
	BasePath string
	LogLevel slog.Level

	// NamegenURL is the upstream page the name lists are scraped from.
	NamegenURL string
	// NamegenTimeout bounds the upstream HTTP call; zero means no client timeout.
	NamegenTimeout time.Duration
	CacheTTL       time.Duration
}

// Addr is the listen address derived from Port.
func (s Server) Addr() string {
	return ":" + strconv.FormatUint(uint64(s.Port), 10)
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Server, error) {
	cfg := Server{
		Port:       defaultPort,
		LogLevel:   slog.LevelInfo,
		NamegenURL: namegen.DefaultBaseURL,
		CacheTTL:   namecache.DefaultTTL,
	}

	if v, ok := lookup("PORT"); ok {
		port, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return Server{}, fmt.Errorf("%w: PORT range is (0..=65535): %q", ErrInvalidConfig, v)
		}
		cfg.Port = uint16(port)
	}

	if v, ok := lookup("BASE_PATH"); ok && v != "" {
		if !strings.HasPrefix(v, "/") {
			return Server{}, fmt.Errorf("%w: BASE_PATH must start with '/': %q", ErrInvalidConfig, v)
		}
		cfg.BasePath = strings.TrimRight(v, "/")
	}

	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Server{}, fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalidConfig, err)
		}
	}

	if v, ok := lookup("NAMEGEN_URL"); ok && v != "" {
		cfg.NamegenURL = v
	}

	var err error
	if cfg.NamegenTimeout, err = durationVar(lookup, "NAMEGEN_TIMEOUT", 0); err != nil {
		return Server{}, err
	}
	if cfg.CacheTTL, err = durationVar(lookup, "CACHE_TTL", cfg.CacheTTL); err != nil {
		return Server{}, err
	}

	return cfg, nil
}

func durationVar(lookup func(string) (string, bool), name string, def time.Duration) (time.Duration, error) {
	v, ok := lookup(name)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative duration: %q", ErrInvalidConfig, name, v)
	}
	return d, nil
}
