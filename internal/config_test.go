package internal

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	// BADGER_FILEPATH and JWT_SECRET are required
	req.Error(err)

	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	config = Config{}
	_, err = env.UnmarshalFromEnviron(&config)
	req.NoError(err)
	req.Equal(time.Hour, config.SessionTTL)
	req.Equal(time.Minute, config.SweepInterval)
	req.Equal(15*time.Second, config.MetricInterval)
	req.Equal("messenger", config.JWTIssuer)
	req.Equal(65536, config.ArgonMemoryKB)
	req.Equal(2, config.ArgonParallelism)
	req.NoError(config.Validate())
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		JWTSecret:        "0123456789abcdef0123456789abcdef",
		SessionTTL:       time.Hour,
		SweepInterval:    time.Minute,
		RestartInterval:  time.Second,
		MetricInterval:   time.Second,
		ArgonMemoryKB:    1024,
		ArgonIterations:  1,
		ArgonParallelism: 1,
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"short secret", func(c *Config) { c.JWTSecret = "short" }},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }},
		{"negative sweep", func(c *Config) { c.SweepInterval = -time.Second }},
		{"zero restart", func(c *Config) { c.RestartInterval = 0 }},
		{"zero metric interval", func(c *Config) { c.MetricInterval = 0 }},
		{"no iterations", func(c *Config) { c.ArgonIterations = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			tt.mutate(&config)
			require.Error(t, config.Validate())
		})
	}
	require.NoError(t, valid.Validate())
}
