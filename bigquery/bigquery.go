package bigquery

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/kris48k/gcloud-node/backoff"
	"github.com/kris48k/gcloud-node/common"
)

// basePath is the versioned API root all request paths hang off.
const basePath = "/bigquery/v2"

// DefaultEndpoint is the production API endpoint.
const DefaultEndpoint = "https://bigquery.googleapis.com"

// Config holds configuration for a Client.
type Config struct {
	// ProjectID is the cloud project requests are issued against.
	ProjectID string

	// Endpoint is the API endpoint (scheme and host).
	Endpoint string

	// PollInterval is the delay between job status polls.
	PollInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:     DefaultEndpoint,
		PollInterval: backoff.DefaultPollInterval,
	}
}

// envConfig mirrors Config for environment-driven setup.
type envConfig struct {
	ProjectID    string        `envconfig:"GCLOUD_PROJECT"`
	Endpoint     string        `envconfig:"BIGQUERY_ENDPOINT"`
	PollInterval time.Duration `envconfig:"BIGQUERY_POLL_INTERVAL"`
}

// ConfigFromEnv returns DefaultConfig overlaid with values from the
// GCLOUD_PROJECT, BIGQUERY_ENDPOINT, and BIGQUERY_POLL_INTERVAL
// environment variables.
func ConfigFromEnv() (Config, error) {
	var ec envConfig
	if err := envconfig.Process("", &ec); err != nil {
		return Config{}, fmt.Errorf("bigquery: read environment: %w", err)
	}

	cfg := DefaultConfig()
	if ec.ProjectID != "" {
		cfg.ProjectID = ec.ProjectID
	}
	if ec.Endpoint != "" {
		cfg.Endpoint = ec.Endpoint
	}
	if ec.PollInterval > 0 {
		cfg.PollInterval = ec.PollInterval
	}
	return cfg, nil
}

// Option configures a Client.
type Option func(*Client) error

// WithConfig replaces the client's entire configuration.
func WithConfig(cfg Config) Option {
	return func(c *Client) error {
		c.config = cfg
		return nil
	}
}

// WithEndpoint overrides the API endpoint. Useful for emulators and tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) error {
		c.config.Endpoint = endpoint
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithTransport replaces the HTTP transport. Tests use this to inject
// a fake.
func WithTransport(t common.Transport) Option {
	return func(c *Client) error {
		c.transport = t
		return nil
	}
}

// WithInterceptors appends client-level request interceptors, applied to
// every request after the built-in logging and tracing interceptors.
func WithInterceptors(ics ...common.Interceptor) Option {
	return func(c *Client) error {
		c.interceptors = append(c.interceptors, ics...)
		return nil
	}
}

// WithPollStrategy sets the delay strategy between job status polls,
// overriding Config.PollInterval.
func WithPollStrategy(s backoff.Strategy) Option {
	return func(c *Client) error {
		c.poll = s
		return nil
	}
}

// WithScheduler replaces the timer used to reschedule status polls.
// Tests use this to drive the poll loop deterministically.
func WithScheduler(s Scheduler) Option {
	return func(c *Client) error {
		c.scheduler = s
		return nil
	}
}

// Client is the parent context for BigQuery service objects. It owns the
// request pipeline and issues query operations on behalf of job handles.
type Client struct {
	config Config
	logger *slog.Logger

	transport    common.Transport
	interceptors []common.Interceptor
	pipeline     *common.Pipeline

	poll      backoff.Strategy
	scheduler Scheduler
}

// NewClient creates a Client for the given project.
func NewClient(projectID string, opts ...Option) (*Client, error) {
	c := &Client{
		config:    DefaultConfig(),
		logger:    slog.Default(),
		scheduler: TimerScheduler{},
	}
	c.config.ProjectID = projectID

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.config.ProjectID == "" {
		return nil, ErrNoProjectID
	}
	if c.transport == nil {
		c.transport = common.NewRestyTransport(c.config.Endpoint,
			common.WithTransportLogger(c.logger),
		)
	}
	if c.poll == nil {
		c.poll = backoff.NewConstant(c.config.PollInterval)
	}

	ics := append([]common.Interceptor{
		common.Logging(c.logger),
		common.Tracing(),
	}, c.interceptors...)
	c.pipeline = common.NewPipeline(c.transport, ics...)

	return c, nil
}

// ProjectID returns the project this client issues requests against.
func (c *Client) ProjectID() string { return c.config.ProjectID }

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger { return c.logger }

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config { return c.config }

// projectPath returns the versioned path root for this client's project.
func (c *Client) projectPath() string {
	return basePath + "/projects/" + c.config.ProjectID
}
