package steam

import (
	"time"

	"steamy/lib/steam/request"
	"steamy/lib/telemetry"
)

const (
	// DefaultAppID is Counter-Strike.
	DefaultAppID              = 730
	DefaultTimeout            = 10 * time.Second
	DefaultMaxCollectionDepth = 3
	DefaultUserAgent          = "steamy/1.0"
)

// Config is shared by every client, it is passed by value and never mutated
// after construction.
type Config struct {
	AppID   int
	APIKey  string
	Retry   request.Policy
	Timeout time.Duration
	// Strict makes ItemPrice and ListItems return errors instead of degrading to
	// empty values.
	Strict             bool
	Proxy              string
	RequestsPerSecond  float64
	UserAgent          string
	MaxCollectionDepth int

	Routes    Routes
	Selectors Selectors
	Patterns  Patterns
}

func DefaultConfig() Config {
	return Config{
		AppID:              DefaultAppID,
		Retry:              request.DefaultPolicy(),
		Timeout:            DefaultTimeout,
		UserAgent:          DefaultUserAgent,
		MaxCollectionDepth: DefaultMaxCollectionDepth,
		Routes:             DefaultRoutes(),
		Selectors:          DefaultSelectors(),
		Patterns:           DefaultPatterns(),
	}
}

// FileConfig is the on-disk form of Config, zero values fall back to defaults.
type FileConfig struct {
	AppID              int     `json:"app_id" yaml:"app_id"`
	APIKey             string  `json:"api_key" yaml:"api_key"`
	Retries            int     `json:"retries" yaml:"retries"`
	RetryDelaySeconds  float64 `json:"retry_delay_seconds" yaml:"retry_delay_seconds"`
	TimeoutSeconds     float64 `json:"timeout_seconds" yaml:"timeout_seconds"`
	Strict             bool    `json:"strict" yaml:"strict"`
	Proxy              string  `json:"proxy" yaml:"proxy"`
	RequestsPerSecond  float64 `json:"requests_per_second" yaml:"requests_per_second"`
	UserAgent          string  `json:"user_agent" yaml:"user_agent"`
	CommunityURL       string  `json:"community_url" yaml:"community_url"`
	WebAPIURL          string  `json:"web_api_url" yaml:"web_api_url"`
	MaxCollectionDepth int     `json:"max_collection_depth" yaml:"max_collection_depth"`

	Telemetry telemetry.Config `json:"telemetry" yaml:"telemetry"`
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func (f FileConfig) ToConfig() Config {
	cfg := DefaultConfig()
	if f.AppID != 0 {
		cfg.AppID = f.AppID
	}
	cfg.APIKey = f.APIKey
	if f.Retries > 0 {
		cfg.Retry.MaxAttempts = f.Retries
	}
	if f.RetryDelaySeconds > 0 {
		cfg.Retry.Delay = seconds(f.RetryDelaySeconds)
	}
	if f.TimeoutSeconds > 0 {
		cfg.Timeout = seconds(f.TimeoutSeconds)
	}
	cfg.Strict = f.Strict
	cfg.Proxy = f.Proxy
	cfg.RequestsPerSecond = f.RequestsPerSecond
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.CommunityURL != "" {
		cfg.Routes.Community = f.CommunityURL
	}
	if f.WebAPIURL != "" {
		cfg.Routes.WebAPI = f.WebAPIURL
	}
	if f.MaxCollectionDepth > 0 {
		cfg.MaxCollectionDepth = f.MaxCollectionDepth
	}
	return cfg
}
