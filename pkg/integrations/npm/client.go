package npm

import (
	"context"
	"net/url"
	"strings"

	"github.com/matzehuels/vouchjs/pkg/cache"
	"github.com/matzehuels/vouchjs/pkg/errors"
	"github.com/matzehuels/vouchjs/pkg/integrations"
)

// Defaults for the public npm registry.
const (
	DefaultHost     = "npmjs.com"
	DefaultAPIURL   = "https://registry.{host}/{name}"
	DefaultHumanURL = "https://www.{host}/package/{name}/v/{version}"
)

// Options configures the registry a Client resolves against. Templates may
// reference {host}, {name} and {version}.
type Options struct {
	Host     string
	APIURL   string
	HumanURL string
}

// WithDefaults returns a copy of Options with empty fields replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.APIURL == "" {
		opts.APIURL = DefaultAPIURL
	}
	if opts.HumanURL == "" {
		opts.HumanURL = DefaultHumanURL
	}
	return opts
}

// Client resolves package versions and URLs against one npm registry.
type Client struct {
	*integrations.Client
	opts Options
}

// NewClient creates a Client that fetches through hc. A nil hc
// gets an uncached, no-retry default.
func NewClient(hc *integrations.Client, opts Options) *Client {
	if hc == nil {
		hc = integrations.NewClient(nil, "", 0, nil)
	}
	return &Client{Client: hc, opts: opts.WithDefaults()}
}

// Host returns the registry host name.
func (c *Client) Host() string { return c.opts.Host }

// DocumentURL renders the API template for name.
func (c *Client) DocumentURL(name string) string {
	return render(c.opts.APIURL, c.opts.Host, name, "")
}

// FetchDocument retrieves and decodes the registry document for name.
// Set refresh to bypass any configured cache.
func (c *Client) FetchDocument(ctx context.Context, name string, refresh bool) (*Document, error) {
	docURL := c.DocumentURL(name)
	key := cache.Key("registry", c.opts.Host, name)

	body, err := c.Cached(ctx, key, refresh, func(ctx context.Context) ([]byte, error) {
		body, err := c.GetBytes(ctx, docURL)
		if err != nil {
			return nil, err
		}
		// Reject unparsable bodies before they reach the cache.
		if _, err := ParseDocument(name, body); err != nil {
			return nil, err
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "npm package %s", name)
		}
		return nil, err
	}
	return ParseDocument(name, body)
}

// ResolveVersion returns version unchanged when it is non-empty, otherwise
// the latest version listed in the registry document.
func (c *Client) ResolveVersion(ctx context.Context, name, version string) (string, error) {
	if version != "" {
		return version, nil
	}
	doc, err := c.FetchDocument(ctx, name, false)
	if err != nil {
		return "", err
	}
	return doc.LatestVersion()
}

// HumanURL renders the human-facing page URL for name@version.
func (c *Client) HumanURL(name, version string) (*url.URL, error) {
	raw := render(c.opts.HumanURL, c.opts.Host, name, version)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeURLFailure, err, "invalid package url %q", raw)
	}
	if !u.IsAbs() {
		return nil, errors.New(errors.ErrCodeURLFailure, "package url %q is not absolute", raw)
	}
	return u, nil
}

func render(tmpl, host, name, version string) string {
	return strings.NewReplacer(
		"{host}", host,
		"{name}", name,
		"{version}", version,
	).Replace(tmpl)
}
