package internal

import (
	"fmt"
	"time"
)

type Config struct {
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	SessionTTL      time.Duration `env:"SESSION_TTL,default=1h"`
	JWTSecret       string        `env:"JWT_SECRET,required=true"`
	JWTIssuer       string        `env:"JWT_ISSUER,default=messenger"`
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL,default=1m"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=5s"`
	MetricInterval  time.Duration `env:"METRIC_INTERVAL,default=15s"`
	MetricsAddr     string        `env:"METRICS_ADDR,default=:9090"`

	ArgonMemoryKB    int `env:"ARGON_MEMORY_KB,default=65536"`
	ArgonIterations  int `env:"ARGON_ITERATIONS,default=3"`
	ArgonParallelism int `env:"ARGON_PARALLELISM,default=2"`
}

// Validate rejects values go-env accepts but the services cannot run with.
func (c Config) Validate() error {
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes, got %d", len(c.JWTSecret))
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.SweepInterval)
	}
	if c.RestartInterval <= 0 {
		return fmt.Errorf("RESTART_INTERVAL must be positive, got %s", c.RestartInterval)
	}
	if c.MetricInterval <= 0 {
		return fmt.Errorf("METRIC_INTERVAL must be positive, got %s", c.MetricInterval)
	}
	if c.ArgonMemoryKB < 8*c.ArgonParallelism || c.ArgonIterations < 1 || c.ArgonParallelism < 1 || c.ArgonParallelism > 255 {
		return fmt.Errorf("invalid argon2 parameters m=%d t=%d p=%d",
			c.ArgonMemoryKB, c.ArgonIterations, c.ArgonParallelism)
	}
	return nil
}
