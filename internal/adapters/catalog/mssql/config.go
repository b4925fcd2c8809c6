package mssql

import "time"

const (
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = time.Second
	DefaultConnectTimeout = 30 * time.Second
	DefaultQueryTimeout   = 60 * time.Second
)

// Config tunes connection establishment and catalog queries.
type Config struct {
	MaxRetries     int           `yaml:"max_retries" mapstructure:"max_retries" validate:"min=1"`
	RetryDelay     time.Duration `yaml:"retry_delay" mapstructure:"retry_delay" validate:"min=0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout" validate:"min=0"`
	QueryTimeout   time.Duration `yaml:"query_timeout" mapstructure:"query_timeout" validate:"min=0"`
	// QueriesPerSecond throttles catalog queries per client; zero disables throttling.
	QueriesPerSecond int `yaml:"queries_per_second" mapstructure:"queries_per_second" validate:"min=0,max=1000"`
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:     DefaultMaxRetries,
		RetryDelay:     DefaultRetryDelay,
		ConnectTimeout: DefaultConnectTimeout,
		QueryTimeout:   DefaultQueryTimeout,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	return c
}
