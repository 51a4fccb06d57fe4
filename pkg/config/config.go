// Package config turns viper settings into a validated Config and builds the
// incident Source it describes.
package config

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/clcollins/hero/pkg/deprecation"
	"github.com/clcollins/hero/pkg/incidents"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	SourceREST      = "rest"
	SourcePagerDuty = "pagerduty"

	DefaultAPIURL         = "http://localhost:3333"
	DefaultRequestTimeout = 10 * time.Second
)

var validate = validator.New()

type Config struct {
	Source         string        `mapstructure:"source" validate:"oneof=rest pagerduty"`
	APIURL         string        `mapstructure:"api_url" validate:"required_if=Source rest"`
	Token          string        `mapstructure:"token" validate:"required_if=Source pagerduty"`
	Teams          []string      `mapstructure:"teams"`
	PageSize       int           `mapstructure:"page_size" validate:"gte=0,lte=100"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gte=0"`
	Browser        string        `mapstructure:"browser"`
	DetailURL      string        `mapstructure:"detail_url"`
}

// SetDefaults registers the default for every key. A key viper has no
// default for is not read from the environment by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source", SourceREST)
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("token", "")
	v.SetDefault("teams", []string{})
	v.SetDefault("page_size", 0)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("browser", defaultBrowser(runtime.GOOS))
	v.SetDefault("detail_url", "")
}

func defaultBrowser(goos string) string {
	switch goos {
	case "darwin":
		return "open"
	case "windows":
		return "rundll32 url.dll,FileProtocolHandler"
	default:
		return "xdg-open"
	}
}

// Load reads and validates the config held by v. Deprecated keys are copied
// to their replacement when the replacement is not set.
func Load(v *viper.Viper) (*Config, error) {
	for _, k := range v.AllKeys() {
		if !deprecation.Deprecated(k) {
			continue
		}
		r, ok := deprecation.Replacement(k)
		if !ok {
			log.Warn("config.Load", "msg", "ignoring deprecated key", "key", k)
			continue
		}
		if !v.InConfig(r) {
			log.Warn("config.Load", "msg", "deprecated key; rename it", "key", k, "replacement", r)
			v.Set(r, v.Get(k))
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config.Load(): %w", err)
	}

	if err := c.Validate(); err != nil {
		return &c, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config.Validate(): %w", err)
	}
	if c.Source == SourceREST {
		if err := validate.Var(c.APIURL, "url"); err != nil {
			return fmt.Errorf("config.Validate(): api_url %q is not a valid url: %w", c.APIURL, err)
		}
	}
	return nil
}

// NewSource builds the incident source named by c.Source
func (c *Config) NewSource() (incidents.Source, error) {
	switch c.Source {
	case SourcePagerDuty:
		return incidents.NewPagerDutyClient(c.Token, c.Teams, c.PageSize), nil
	case SourceREST, "":
		timeout := c.RequestTimeout
		if timeout == 0 {
			timeout = DefaultRequestTimeout
		}
		return incidents.NewRESTClient(c.APIURL, &http.Client{Timeout: timeout})
	}
	return nil, fmt.Errorf("config.NewSource(): unknown source %q", c.Source)
}
