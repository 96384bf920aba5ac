package kafka

import "time"

// Config holds Kafka producer parameters.
type Config struct {
	Brokers []string

	// BatchTimeout bounds how long the writer waits to fill a batch.
	// Defaults to 10ms, which keeps request latency low for single events.
	BatchTimeout time.Duration

	// PublishTimeout caps a single Publish call, retries included, so a
	// broker outage cannot hold up the request that raised the events.
	// Defaults to 5s.
	PublishTimeout time.Duration

	// MaxAttempts is how many times the writer tries a batch. Defaults to 3.
	MaxAttempts int
}

func (c Config) withDefaults() Config {
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = 10 * time.Millisecond
	}
	if c.PublishTimeout <= 0 {
		c.PublishTimeout = 5 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	return c
}
