package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/pema-project/pema/internal/logger"
)

const (
	defaultListenAddr     = "localhost:8080"
	defaultLogLevel       = logger.LevelInfo
	defaultEnvironment    = logger.EnvProduction
	defaultRequestTimeout = 30 * time.Second
)

// Config is shared by every service binary. Values are resolved in
// order: defaults, .env file, environment, command line flags.
type Config struct {
	// Name of the service, used in logs and health responses
	ServiceName string

	// Address the HTTP server binds to
	ListenAddr string

	// Database to connect to
	DatabaseDSN string

	// Key used to sign and verify tokens (symmetric)
	SecretKey string

	// Logging level and environment (dev, prod)
	LogLevel    string
	Environment string

	// Origins allowed by the admin front end; empty means any
	CORSOrigins []string

	// Upper bound on a single request's lifetime
	RequestTimeout time.Duration
}

func New(serviceName string) *Config {
	return &Config{
		ServiceName:    serviceName,
		ListenAddr:     defaultListenAddr,
		LogLevel:       defaultLogLevel,
		Environment:    defaultEnvironment,
		RequestTimeout: defaultRequestTimeout,
	}
}

// Load variables from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}

	envMap := map[string]func(string){
		"RUN_ADDRESS":  setString(&c.ListenAddr),
		"DATABASE_URI": setString(&c.DatabaseDSN),
		"SECRET_KEY":   setString(&c.SecretKey),
		"LOG_LEVEL":    setString(&c.LogLevel),
		"ENVIRONMENT":  setString(&c.Environment),
		"CORS_ORIGINS": func(value string) {
			if value != "" {
				c.CORSOrigins = splitOrigins(value)
			}
		},
		"REQUEST_TIMEOUT": func(value string) {
			if d, err := time.ParseDuration(value); err == nil && d > 0 {
				c.RequestTimeout = d
			}
		},
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet(c.ServiceName, pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.DatabaseDSN, "database", "d", c.DatabaseDSN, "Database connection string")
	fs.StringVarP(&c.SecretKey, "secret-key", "s", c.SecretKey, "Token signing key")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.DurationVarP(&c.RequestTimeout, "request-timeout", "t", c.RequestTimeout, "Per request deadline")

	return fs.Parse(args)
}

func splitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
