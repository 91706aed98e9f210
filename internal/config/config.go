// Package config defines the global configuration structure for the relay.
// Configuration is loaded once at process initialization and is immutable
// thereafter. It follows 12-Factor App principles by strictly separating
// code from configuration.
//
// Values are resolved from the OS environment, optionally seeded from a
// dotenv file. Any missing required value or invalid format causes startup
// to fail immediately (fail fast); in particular the relay refuses to serve
// requests without a complete Slack destination table.
package config

import (
	"time"

	"matchrelay/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret type used
// throughout configuration to prevent accidental logging of sensitive values.
type SecretString = types.SecretString

// Config is the top-level configuration struct for the relay.
// It is populated once during process initialization and never modified.
// Sub-components receive only the specific config subsets they require.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Domain Configurations
	Server ServerConfig
	Feed   FeedConfig
	Slack  SlackConfig

	// Build Metadata (injected via ldflags, not env)
	Build BuildInfo
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
}

// FeedConfig holds settings for the inbound TBA webhook feed.
type FeedConfig struct {
	// Secret is the shared key for the X-TBA-HMAC header. Empty disables
	// authenticity checking (local/dev mode).
	Secret SecretString `envconfig:"TBA_SECRET"`

	// OwnTeam is the operator's team number (after the frc prefix is
	// stripped). Matching team labels are emphasized in rendered messages.
	OwnTeam string `envconfig:"OWN_TEAM"`

	// Timezone names the IANA location used for the human-readable fallback
	// inside Slack date tokens. It affects only the fallback rendering;
	// clients that understand the token localize the timestamp themselves.
	Timezone string `envconfig:"TARGET_TZ" default:"UTC"`
}

// Location resolves the configured timezone name. Called once at startup;
// an unknown name is a configuration error, not a per-request concern.
func (f FeedConfig) Location() (*time.Location, error) {
	return time.LoadLocation(f.Timezone)
}

// SlackConfig holds the outbound Slack webhook destinations and client tuning.
// The destination URLs are Host + path suffix; the suffixes double as the
// webhook secrets, hence SecretString.
type SlackConfig struct {
	Host     string       `envconfig:"SLACK_HOST" default:"https://hooks.slack.com" validate:"required,url"`
	ProdPath SecretString `envconfig:"SLACK_PROD_PATH" validate:"required"`
	TestPath SecretString `envconfig:"SLACK_TEST_PATH" validate:"required"`

	Timeout   time.Duration `envconfig:"SLACK_TIMEOUT" default:"10s"`
	UserAgent string        `envconfig:"RELAY_USER_AGENT" default:"matchrelay/1.0"`
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)

// BuildInfo holds build-time metadata injected via ldflags.
// These values are NOT populated from environment variables.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}
