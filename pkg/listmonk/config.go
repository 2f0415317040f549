package listmonk

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Defaults applied by DefaultParams.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
)

// ErrInvalidConfig is matched by every ConfigError via errors.Is.
var ErrInvalidConfig = errors.New("listmonk: invalid configuration")

// ConfigError reports invalid connection parameters. It is fatal at startup
// and never retried.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("listmonk: invalid configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// Params holds the raw connection parameters a Config is built from.
type Params struct {
	URL        string
	Username   string
	Password   string
	Timeout    time.Duration
	MaxRetries int

	// MaxElapsedTime caps the wall-clock time spent retrying one call.
	// Zero disables the ceiling; only MaxRetries bounds the loop.
	MaxElapsedTime time.Duration
}

// DefaultParams returns Params carrying the default timeout and retry budget.
func DefaultParams() Params {
	return Params{
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
	}
}

// Config holds validated connection parameters. It is immutable once built;
// use NewConfig to construct one.
type Config struct {
	baseURL        string
	username       string
	password       string
	timeout        time.Duration
	maxRetries     int
	maxElapsedTime time.Duration
}

// NewConfig validates p and returns an immutable Config. The URL must carry an
// http:// or https:// scheme and a host; trailing slashes are stripped.
func NewConfig(p Params) (*Config, error) {
	if err := p.validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}
	return &Config{
		baseURL:        strings.TrimRight(strings.TrimSpace(p.URL), "/"),
		username:       p.Username,
		password:       p.Password,
		timeout:        p.Timeout,
		maxRetries:     p.MaxRetries,
		maxElapsedTime: p.MaxElapsedTime,
	}, nil
}

func (p Params) validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.URL, validation.Required, validation.By(httpURL)),
		validation.Field(&p.Username, validation.Required),
		validation.Field(&p.Password, validation.Required),
		validation.Field(&p.Timeout,
			validation.Required.Error("must be positive"),
			validation.Min(time.Nanosecond).Error("must be positive")),
		validation.Field(&p.MaxRetries, validation.Min(0).Error("must be non-negative")),
		validation.Field(&p.MaxElapsedTime, validation.Min(time.Duration(0)).Error("must be non-negative")),
	)
}

// httpURL accepts absolute http(s) URLs with a host.
func httpURL(value interface{}) error {
	s, _ := value.(string)
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return errors.New("must start with http:// or https://")
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("must be a valid URL: %v", err)
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

// BaseURL returns the server URL without a trailing slash.
func (c *Config) BaseURL() string { return c.baseURL }

// Username returns the API user name.
func (c *Config) Username() string { return c.username }

// Timeout returns the per-attempt request timeout.
func (c *Config) Timeout() time.Duration { return c.timeout }

// MaxRetries returns the number of additional attempts made after a
// connectivity failure.
func (c *Config) MaxRetries() int { return c.maxRetries }

// MaxElapsedTime returns the wall-clock retry ceiling, zero when disabled.
func (c *Config) MaxElapsedTime() time.Duration { return c.maxElapsedTime }

// authorization returns the value of the Authorization header.
func (c *Config) authorization() string {
	return "token " + c.username + ":" + c.password
}

// String masks the credential.
func (c *Config) String() string {
	return fmt.Sprintf("listmonk.Config{url=%s user=%s password=***** timeout=%s max_retries=%d}",
		c.baseURL, c.username, c.timeout, c.maxRetries)
}
