package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
)

const EnvPrefix = "FEEDSYNC"

// DefaultFiles are read in order; later files override earlier ones and
// missing files are skipped.
var DefaultFiles = []string{"./feedsync.hcl", "./feedsync.local.hcl"}

type Config struct {
	BaseURL           string        `hcl:"base_url" env:"BASE_URL" default:"http://localhost:8000"`
	SyncURL           string        `hcl:"sync_url" env:"SYNC_URL"`
	Addr              string        `hcl:"addr" env:"ADDR" default:":8080"`
	StaticDir         string        `hcl:"static_dir" env:"STATIC_DIR"`
	LogLevel          string        `hcl:"log_level" env:"LOG_LEVEL" default:"info"`
	TimeZone          string        `hcl:"time_zone" env:"TIME_ZONE"`
	TimestampUnit     string        `hcl:"timestamp_unit" env:"TIMESTAMP_UNIT" default:"s"`
	RequestTimeout    time.Duration `hcl:"request_timeout" env:"REQUEST_TIMEOUT" default:"20s"`
	SyncTimeout       time.Duration `hcl:"sync_timeout" env:"SYNC_TIMEOUT" default:"10m"`
	RequestsPerSecond float64       `hcl:"requests_per_second" env:"REQUESTS_PER_SECOND" default:"0"`
	MaxInFlight       int64         `hcl:"max_in_flight" env:"MAX_IN_FLIGHT" default:"8"`
	ProxyURL          string        `hcl:"proxy_url" env:"PROXY_URL"`
	IPStack           string        `hcl:"ip_stack" env:"IP_STACK" default:"default"`
	AutoSyncSchedule  string        `hcl:"auto_sync_schedule" env:"AUTO_SYNC_SCHEDULE"`
	NodeID            int64         `hcl:"node_id" env:"NODE_ID" default:"0"`
}

// Load reads DefaultFiles and FEEDSYNC_* environment variables.
func Load() (Config, error) {
	return LoadFiles(DefaultFiles...)
}

// LoadFiles is Load with an explicit file list. Environment variables win
// over files, files win over defaults.
func LoadFiles(files ...string) (Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix:  EnvPrefix,
		SkipFlags:  true,
		MergeFiles: true,
		Files:      files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}
	if c.SyncURL != "" {
		s, err := url.Parse(c.SyncURL)
		if err != nil || (s.Scheme != "ws" && s.Scheme != "wss") {
			return fmt.Errorf("invalid sync_url %q", c.SyncURL)
		}
	}
	switch strings.ToLower(c.TimestampUnit) {
	case "s", "ms":
	default:
		return fmt.Errorf("invalid timestamp_unit %q: want s or ms", c.TimestampUnit)
	}
	switch c.IPStack {
	case "default", "ipv4", "ipv6":
	default:
		return fmt.Errorf("invalid ip_stack %q", c.IPStack)
	}
	if c.RequestTimeout <= 0 || c.SyncTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.MaxInFlight <= 0 {
		return fmt.Errorf("max_in_flight must be positive")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	if c.NodeID < 0 || c.NodeID > 1023 {
		return fmt.Errorf("node_id %d out of range 0..1023", c.NodeID)
	}
	if c.TimeZone != "" {
		if _, err := time.LoadLocation(c.TimeZone); err != nil {
			return fmt.Errorf("invalid time_zone %q: %w", c.TimeZone, err)
		}
	}
	return nil
}
