package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/oops"
)

// Random source names accepted by RANDOM_SOURCE.
const (
	RandomSourceCrypto = "crypto"
	RandomSourceMath   = "math"
)

type Config struct {
	Port            string
	Env             string
	CORSOrigins     []string
	RandomSource    string
	RandomSeed      string
	MetricsEnabled  bool
	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		Port:            getEnv("PORT", "8000"),
		Env:             getEnv("ENV", "development"),
		CORSOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RandomSource:    getEnv("RANDOM_SOURCE", RandomSourceCrypto),
		RandomSeed:      getEnv("RANDOM_SEED", "0"),
		MetricsEnabled:  getBool(getEnv("METRICS_ENABLED", "true")),
		ShutdownTimeout: getDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
	}
}

// Validate reports the first setting that cannot be used to start the server.
func (c Config) Validate() error {
	errb := oops.In("config")

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 0 || port > 65535 {
		return errb.With("port", c.Port).Errorf("invalid port %q", c.Port)
	}

	switch c.RandomSource {
	case RandomSourceCrypto, RandomSourceMath:
	default:
		return errb.With("random_source", c.RandomSource).
			Errorf("unknown random source %q (want %q or %q)", c.RandomSource, RandomSourceCrypto, RandomSourceMath)
	}

	if _, err := c.Seed(); err != nil {
		return errb.With("random_seed", c.RandomSeed).Errorf("invalid random seed %q: %v", c.RandomSeed, err)
	}

	if c.Env == "production" && c.RandomSource == RandomSourceMath {
		return errb.Errorf("random source %q is not allowed in production", RandomSourceMath)
	}

	if c.ShutdownTimeout <= 0 {
		return errb.With("shutdown_timeout", c.ShutdownTimeout).Errorf("shutdown timeout must be positive")
	}

	return nil
}

// Seed parses RandomSeed. An empty seed is 0, which asks for a time-based seed.
func (c Config) Seed() (uint64, error) {
	if c.RandomSeed == "" {
		return 0, nil
	}
	return strconv.ParseUint(c.RandomSeed, 10, 64)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func getDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
