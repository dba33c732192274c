// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	DBMigrate    bool   // apply the embedded schema at startup
	DBSeed       bool   // load the demo catalog into an empty database
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing

	// Optional integrations. Empty values disable them.
	PusherAppID   string
	PusherKey     string
	PusherSecret  string
	PusherCluster string
	RabbitURL     string // RABBITMQ_URL, falling back to AMQP_URL
	SeatLogDir    string // directory of the seat event audit log

	CORSOrigins []string // allowed origins for CORS and WebSocket upgrades
}

// Load reads configuration from the environment. Every missing or malformed
// required variable is reported in the returned error, not just the first.
func Load() (Config, error) {
	var r reader
	cfg := Config{
		Env:          r.must("APP_ENV"),
		Port:         r.must("APP_PORT"),
		DBUser:       r.must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       r.must("DB_HOST"),
		DBPort:       r.must("DB_PORT"),
		DBName:       r.must("DB_NAME"),
		DBMigrate:    envBool("DB_MIGRATE", false),
		DBSeed:       envBool("DB_SEED", false),
		JWTSecret:    r.must("JWT_SECRET"),
		AccessTTLMin: r.mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   r.mustInt("BCRYPT_COST"),

		PusherAppID:   os.Getenv("PUSHER_APP_ID"),
		PusherKey:     os.Getenv("PUSHER_KEY"),
		PusherSecret:  os.Getenv("PUSHER_SECRET"),
		PusherCluster: envStr("PUSHER_CLUSTER", "mt1"),
		RabbitURL:     envStr("RABBITMQ_URL", os.Getenv("AMQP_URL")),
		SeatLogDir:    envStr("SEAT_EVENTS_LOG_DIR", "logs"),
		CORSOrigins:   splitList(envStr("CORS_ORIGINS", "*")),
	}
	if len(r.errs) > 0 {
		return Config{}, fmt.Errorf("config: %w", errors.Join(r.errs...))
	}
	return cfg, nil
}

// reader collects errors for required variables.
type reader struct{ errs []error }

func (r *reader) must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		r.errs = append(r.errs, fmt.Errorf("missing required env var: %s", key))
	}
	return v
}

func (r *reader) mustInt(key string) int {
	s := r.must(key)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid int for %s: %q", key, s))
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
