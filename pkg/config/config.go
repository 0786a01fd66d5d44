// Package config loads vouch-js settings from a TOML file.
//
// Lookup order: an explicit path (the --config flag), ./.vouch-js.toml,
// then $XDG_CONFIG_HOME/vouch-js/config.toml (falling back to
// ~/.config/vouch-js/config.toml). No file means [Defaults].
//
// Defaults leave caching, retries and timeouts off.
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	verrors "github.com/matzehuels/vouchjs/pkg/errors"
)

// LocalFileName is the per-project configuration file.
const LocalFileName = ".vouch-js.toml"

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Trace exporters.
const (
	TraceNone   = "none"
	TraceStdout = "stdout"
	TraceFile   = "file"
)

// Config is the complete configuration.
type Config struct {
	Registry RegistryConfig `toml:"registry"`
	Npm      NpmConfig      `toml:"npm"`
	HTTP     HTTPConfig     `toml:"http"`
	Cache    CacheConfig    `toml:"cache"`
	Tracing  TracingConfig  `toml:"tracing"`
}

// RegistryConfig selects the npm registry. Templates may reference {host},
// {name} and {version}.
type RegistryConfig struct {
	Host     string `toml:"host"`
	APIURL   string `toml:"api_url"`
	HumanURL string `toml:"human_url"`
}

// NpmConfig controls the npm subprocess.
type NpmConfig struct {
	Binary  string   `toml:"binary"`
	Timeout Duration `toml:"timeout"`
}

// HTTPConfig controls registry requests.
type HTTPConfig struct {
	Timeout   Duration `toml:"timeout"`
	Retries   int      `toml:"retries"`
	UserAgent string   `toml:"user_agent"`
}

// CacheConfig selects where registry documents are cached.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	TTL      Duration `toml:"ttl"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
}

// TracingConfig selects where spans are exported.
type TracingConfig struct {
	Exporter string `toml:"exporter"`
	File     string `toml:"file"`
}

// Duration is a time.Duration written as a string ("30s", "24h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns the configuration used when no file is found.
func Defaults() Config {
	return Config{
		Registry: RegistryConfig{
			Host:     "npmjs.com",
			APIURL:   "https://registry.{host}/{name}",
			HumanURL: "https://www.{host}/package/{name}/v/{version}",
		},
		Npm:     NpmConfig{Binary: "npm"},
		HTTP:    HTTPConfig{UserAgent: "vouch-js"},
		Cache:   CacheConfig{Backend: CacheNone, TTL: Duration{24 * time.Hour}},
		Tracing: TracingConfig{Exporter: TraceNone},
	}
}

// Load reads the configuration. A non-empty path must exist; otherwise the
// first existing candidate from [SearchPaths] is used. The returned source
// is the file read, or "" when defaults apply.
func Load(path string) (cfg Config, source string, err error) {
	cfg = Defaults()

	if path == "" {
		for _, candidate := range SearchPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return cfg, "", nil
		}
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, "", verrors.Wrap(verrors.ErrCodeInvalidConfig, err, "config file %s not found", path)
	}
	if err != nil {
		return cfg, "", verrors.Wrap(verrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, "", verrors.New(verrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, "", verrors.Wrap(verrors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, path, nil
}

// SearchPaths returns the implicit config locations in lookup order.
func SearchPaths() []string {
	paths := []string{LocalFileName}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "vouch-js", "config.toml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "vouch-js", "config.toml"))
	}
	return paths
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return verrors.New(verrors.ErrCodeInvalidConfig, format, args...)
	}

	if c.Registry.Host == "" {
		return invalid("registry.host must not be empty")
	}
	if !strings.Contains(c.Registry.APIURL, "{name}") {
		return invalid("registry.api_url must contain {name}")
	}
	if err := verrors.ValidateURL(c.Registry.APIURL); err != nil {
		return verrors.Wrap(verrors.ErrCodeInvalidConfig, err, "registry.api_url")
	}
	for _, p := range []string{"{name}", "{version}"} {
		if !strings.Contains(c.Registry.HumanURL, p) {
			return invalid("registry.human_url must contain %s", p)
		}
	}
	if err := verrors.ValidateURL(c.Registry.HumanURL); err != nil {
		return verrors.Wrap(verrors.ErrCodeInvalidConfig, err, "registry.human_url")
	}

	if c.Npm.Binary == "" {
		return invalid("npm.binary must not be empty")
	}
	if c.Npm.Timeout.Duration < 0 || c.HTTP.Timeout.Duration < 0 || c.Cache.TTL.Duration < 0 {
		return invalid("durations must not be negative")
	}
	if c.HTTP.Retries < 0 {
		return invalid("http.retries must not be negative, got %d", c.HTTP.Retries)
	}

	if !slices.Contains([]string{CacheNone, CacheFile, CacheRedis}, c.Cache.Backend) {
		return invalid("cache.backend must be one of none, file, redis; got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisURL == "" {
		return invalid("cache.redis_url is required for the redis backend")
	}

	if !slices.Contains([]string{TraceNone, TraceStdout, TraceFile}, c.Tracing.Exporter) {
		return invalid("tracing.exporter must be one of none, stdout, file; got %q", c.Tracing.Exporter)
	}
	if c.Tracing.Exporter == TraceFile && c.Tracing.File == "" {
		return invalid("tracing.file is required for the file exporter")
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
