package conf

import (
	"reflect"
	"time"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/log"
	"github.com/txix-open/isp-kit/rc/schema"
	"github.com/txix-open/jsonschema"
)

const (
	defaultKlaviyoUrl     = "https://a.klaviyo.com"
	defaultKlaviyoTimeout = 10 * time.Second
	defaultSource         = "Coming Soon Waitlist"

	defaultMaxRequestsPerWindow = 5
	defaultWindow               = 60 * time.Second

	defaultWaitlistPath = "/api/waitlist"
)

func init() {
	schema.CustomGenerators.Register("logLevel", func(field reflect.StructField, t *jsonschema.Schema) {
		t.Type = "string"
		t.Enum = []any{"debug", "info", "error", "fatal"}
	})
}

type Remote struct {
	Klaviyo   Klaviyo   `schema:"Klaviyo settings,credentials and endpoint of the marketing API"`
	RateLimit RateLimit `schema:"Rate limit settings,fixed window counter per client"`
	Redis     *Redis    `schema:"Redis settings,required to share rate limit state between several instances"`
	Http      Http      `schema:"HTTP settings"`
	Logging   Logging   `schema:"Logging settings"`
}

type Klaviyo struct {
	ApiKey              string `schema:"Private API key,subscriptions fail until both the key and the list id are set"`
	ListId              string `schema:"Identifier of the waitlist list"`
	Url                 string `schema:"API base url,by default https://a.klaviyo.com"`
	Source              string `schema:"Value of the source property written to new profiles"`
	RequestTimeoutInSec int    `schema:"Timeout for outbound API calls,in seconds, by default 10"`
}

func (k Klaviyo) BaseUrl() string {
	if k.Url == "" {
		return defaultKlaviyoUrl
	}
	return k.Url
}

func (k Klaviyo) SourceName() string {
	if k.Source == "" {
		return defaultSource
	}
	return k.Source
}

func (k Klaviyo) RequestTimeout() time.Duration {
	if k.RequestTimeoutInSec <= 0 {
		return defaultKlaviyoTimeout
	}
	return time.Duration(k.RequestTimeoutInSec) * time.Second
}

type RateLimit struct {
	MaxRequestsPerWindow int `schema:"Requests allowed per window,by default 5"`
	WindowInSec          int `schema:"Window length,in seconds, by default 60"`
	SweepIntervalInSec   int `schema:"Interval of expired window cleanup,in seconds, 0 disables cleanup"`
}

func (r RateLimit) Max() int {
	if r.MaxRequestsPerWindow <= 0 {
		return defaultMaxRequestsPerWindow
	}
	return r.MaxRequestsPerWindow
}

func (r RateLimit) Window() time.Duration {
	if r.WindowInSec <= 0 {
		return defaultWindow
	}
	return time.Duration(r.WindowInSec) * time.Second
}

func (r RateLimit) SweepInterval() time.Duration {
	return time.Duration(r.SweepIntervalInSec) * time.Second
}

type Http struct {
	WaitlistPath           string `schema:"Path of the waitlist endpoint,by default /api/waitlist"`
	MaxRequestBodySizeInKb int64  `valid:"required" schema:"Maximum request body size,in kilobytes"`
}

func (h Http) Path() string {
	if h.WaitlistPath == "" {
		return defaultWaitlistPath
	}
	return h.WaitlistPath
}

type Logging struct {
	LogLevel         log.Level `schemaGen:"logLevel" schema:"Log level,requests are logged at debug level"`
	RequestLogEnable bool      `schema:"Enable request logging"`
	DevMode          bool      `schema:"Log upstream response bodies on failures,bodies are redacted otherwise"`
}

type Redis struct {
	Address  string         `schema:"Address,required if sentinel is not specified"`
	Username string         `schema:"Username"`
	Password string         `schema:"Password"`
	Sentinel *RedisSentinel `schema:"Sentinel settings,required if address is not specified"`
}

type RedisSentinel struct {
	Addresses  []string `valid:"required" schema:"Addresses of cluster nodes"`
	MasterName string   `valid:"required" schema:"Master name"`
	Username   string   `schema:"Username in sentinel"`
	Password   string   `schema:"Password in sentinel"`
}

func (r Remote) Validate() error {
	if r.Redis != nil && r.Redis.Sentinel == nil && r.Redis.Address == "" {
		return errors.New("invalid redis config. sentinel or address are required")
	}
	return nil
}
