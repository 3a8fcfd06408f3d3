package core

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultAPIVersion is the API version used when none is configured.
const DefaultAPIVersion = "v2"

// Credentials holds the endpoint and key pair used to sign every request.
type Credentials struct {
	// BaseURL is the service root, e.g. "http://opensearch-cn-hangzhou.aliyuncs.com".
	BaseURL string `json:"base_url" validate:"required"`
	// AccessKeyID is the public key identifier sent as AccessKeyId.
	AccessKeyID string `json:"access_key_id" validate:"required"`
	// AccessKeySecret is the private key used for HMAC signing.
	AccessKeySecret string `json:"access_key_secret" validate:"required"`
	// APIVersion is sent as the Version public parameter.
	APIVersion string `json:"api_version" validate:"required"`
}

// Config contains all configuration options for a search client.
type Config struct {
	Credentials `json:"credentials"`

	// AppName is the default application (index) used by resource methods.
	AppName string `json:"app_name"`

	// Timeout is the maximum duration for HTTP requests. Zero disables it.
	Timeout time.Duration `json:"timeout" validate:"min=0"`

	UserAgent string `json:"user_agent,omitempty"`

	LogLevel string `json:"log_level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	// Debug traces request bodies at debug level.
	Debug bool `json:"debug"`
}

// DefaultConfig returns a Config without credentials.
// Default values: API version v2, 10s timeout, info log level.
func DefaultConfig() *Config {
	return &Config{
		Credentials: Credentials{
			APIVersion: DefaultAPIVersion,
		},
		Timeout:  10 * time.Second,
		LogLevel: "info",
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	return validate.Struct(c)
}

// WithCredentials sets the base URL and key pair and returns the config for chaining.
func (c *Config) WithCredentials(baseURL, accessKeyID, accessKeySecret string) *Config {
	c.BaseURL = baseURL
	c.AccessKeyID = accessKeyID
	c.AccessKeySecret = accessKeySecret
	return c
}

// WithAPIVersion sets the API version and returns the config for chaining.
func (c *Config) WithAPIVersion(version string) *Config {
	c.APIVersion = version
	return c
}

// WithAppName sets the default application name and returns the config for chaining.
func (c *Config) WithAppName(name string) *Config {
	c.AppName = name
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithDebug enables or disables body tracing and returns the config for chaining.
func (c *Config) WithDebug(debug bool) *Config {
	c.Debug = debug
	return c
}
