package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"academy-service/internal/logx"
)

// DB holds PostgreSQL connection settings.
type DB struct {
	Host    string
	Port    string
	User    string
	Pass    string
	Name    string
	SSLMode string
	// ConnectRetries is the number of connection attempts made at startup.
	ConnectRetries int
	// Seed applies the reference data migration.
	Seed bool
	// TxAttempts bounds how often a unit of work is run when PostgreSQL aborts it
	// with a serialization failure or deadlock.
	TxAttempts int
}

// DSN builds a postgres connection URL.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// Service holds business layer settings.
type Service struct {
	OperationTimeout time.Duration
}

// RateLimit holds the per-client limit applied to write requests.
type RateLimit struct {
	// RPS is the sustained rate per client; 0 disables the limit.
	RPS   float64
	Burst int
}

// Log holds logging settings.
type Log struct {
	Level string
}

// Config stores HTTP service settings.
type Config struct {
	Port    int
	DB      DB
	Service   Service
	RateLimit RateLimit
	Log       Log
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Service:   DefaultService(),
		RateLimit: DefaultRateLimit(),
		Log:       Log{Level: defaultLogLevel},
	}

	if err := fromEnv(cfg); err != nil {
		return nil, err
	}

	fs := pflag.CommandLine
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.DB.Host, "db-host", cfg.DB.Host, "postgres host")
	fs.StringVar(&cfg.DB.Port, "db-port", cfg.DB.Port, "postgres port")
	fs.StringVar(&cfg.DB.Name, "db-name", cfg.DB.Name, "postgres database")
	fs.BoolVar(&cfg.DB.Seed, "seed", cfg.DB.Seed, "apply reference data on startup")
	fs.DurationVar(&cfg.Service.OperationTimeout, "operation-timeout", cfg.Service.OperationTimeout, "timeout of one service operation")
	fs.Float64Var(&cfg.RateLimit.RPS, "rate-limit", cfg.RateLimit.RPS, "write requests per second per client, 0 disables")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug, info, warn, error")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = p
	}

	setString(&cfg.DB.Host, "POSTGRES_HOST")
	setString(&cfg.DB.Port, "POSTGRES_PORT")
	setString(&cfg.DB.User, "POSTGRES_USER")
	setString(&cfg.DB.Pass, "POSTGRES_PASSWORD")
	setString(&cfg.DB.Name, "POSTGRES_DB")
	setString(&cfg.DB.SSLMode, "POSTGRES_SSLMODE")
	setString(&cfg.Log.Level, "LOG_LEVEL")

	if v := os.Getenv("DB_CONNECT_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_CONNECT_RETRIES %q: %w", v, err)
		}
		cfg.DB.ConnectRetries = n
	}
	if v := os.Getenv("DB_TX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_TX_ATTEMPTS %q: %w", v, err)
		}
		cfg.DB.TxAttempts = n
	}
	if v := os.Getenv("DB_SEED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DB_SEED %q: %w", v, err)
		}
		cfg.DB.Seed = b
	}
	if v := os.Getenv("OPERATION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid OPERATION_TIMEOUT %q: %w", v, err)
		}
		cfg.Service.OperationTimeout = d
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", v, err)
		}
		cfg.RateLimit.RPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", v, err)
		}
		cfg.RateLimit.Burst = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid postgres port: %q", c.DB.Port)
	}
	if c.DB.ConnectRetries <= 0 {
		return fmt.Errorf("invalid db connect retries: %d", c.DB.ConnectRetries)
	}
	if c.DB.TxAttempts <= 0 {
		return fmt.Errorf("invalid db tx attempts: %d", c.DB.TxAttempts)
	}
	if c.Service.OperationTimeout <= 0 {
		return fmt.Errorf("invalid operation timeout: %s", c.Service.OperationTimeout)
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("invalid rate limit: %v", c.RateLimit.RPS)
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("invalid rate limit burst: %d", c.RateLimit.Burst)
	}
	if _, err := logx.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
