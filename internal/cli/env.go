package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vouchjs/pkg/cache"
	"github.com/matzehuels/vouchjs/pkg/config"
	"github.com/matzehuels/vouchjs/pkg/deps/javascript"
	"github.com/matzehuels/vouchjs/pkg/errors"
	"github.com/matzehuels/vouchjs/pkg/integrations"
	"github.com/matzehuels/vouchjs/pkg/integrations/npm"
	"github.com/matzehuels/vouchjs/pkg/observability"
)

// cacheNamespace prefixes every registry document key.
const cacheNamespace = "npm:"

// env is everything a command needs, built from the loaded configuration.
type env struct {
	cfg     config.Config
	cache   cache.Cache
	tracing *observability.Provider
	ext     *javascript.Extension
}

// loadConfig reads the configuration selected by --config.
func (c *CLI) loadConfig(logger *log.Logger) (config.Config, string, error) {
	cfg, source, err := config.Load(c.configPath)
	if err != nil {
		return cfg, "", err
	}
	if source != "" {
		logger.Debugf("Loaded config from %s", source)
	} else {
		logger.Debug("No config file found, using defaults")
	}
	return cfg, source, nil
}

// newEnv wires the cache, tracing and extension from the configuration.
// Close must be called when the command finishes.
func (c *CLI) newEnv(ctx context.Context) (*env, error) {
	logger := loggerFromContext(ctx)
	cfg, _, err := c.loadConfig(logger)
	if err != nil {
		return nil, err
	}

	// Spans go to stderr so stdout stays parseable.
	provider, err := observability.NewProvider(observability.TracingConfig{
		Exporter: cfg.Tracing.Exporter,
		FilePath: cfg.Tracing.File,
		Stdout:   os.Stderr,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "tracing")
	}
	if provider.Enabled() {
		observability.NewTracingHooks(provider.Tracer()).Install()
		logger.Debugf("Tracing to %s", cfg.Tracing.Exporter)
	}

	store, err := newCache(ctx, cfg.Cache)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}
	logger.Debugf("Cache backend: %s", cfg.Cache.Backend)

	hc := integrations.NewClient(store, cacheNamespace, cfg.Cache.TTL.Duration,
		map[string]string{"User-Agent": cfg.HTTP.UserAgent},
		integrations.WithTimeout(cfg.HTTP.Timeout.Duration),
		integrations.WithRetries(cfg.HTTP.Retries),
	)
	registry := npm.NewClient(hc, npm.Options{
		Host:     cfg.Registry.Host,
		APIURL:   cfg.Registry.APIURL,
		HumanURL: cfg.Registry.HumanURL,
	})

	materializer := c.materializer
	if materializer == nil {
		materializer = &javascript.NpmMaterializer{
			Binary:  cfg.Npm.Binary,
			Timeout: cfg.Npm.Timeout.Duration,
		}
	}

	return &env{
		cfg:     cfg,
		cache:   store,
		tracing: provider,
		ext: javascript.New(
			javascript.WithRegistry(registry),
			javascript.WithMaterializer(materializer),
			javascript.WithLogger(logger.Debugf),
		),
	}, nil
}

// withEnv runs fn with a fresh env and closes it afterwards.
func (c *CLI) withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	ctx := cmd.Context()
	e, err := c.newEnv(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := e.Close(context.WithoutCancel(ctx)); err != nil {
			loggerFromContext(ctx).Warnf("Shutdown: %v", err)
		}
	}()
	return fn(ctx, e)
}

// Close flushes spans and releases the cache.
func (e *env) Close(ctx context.Context) error {
	defer observability.Reset()
	cerr := e.cache.Close()
	if err := e.tracing.Shutdown(ctx); err != nil {
		return err
	}
	return cerr
}

// newCache opens the configured cache backend.
func newCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheFile:
		dir, err := cacheDir(cfg)
		if err != nil {
			return nil, err
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "open file cache")
		}
		return fc, nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "open redis cache")
		}
		return rc, nil
	default:
		return cache.NewNullCache(), nil
	}
}

// cacheDir returns the file cache directory: cache.dir, else
// $XDG_CACHE_HOME/vouch-js (~/.cache/vouch-js).
func cacheDir(cfg config.CacheConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate cache directory")
	}
	return dir, nil
}
