package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// UserAgent is sent with every probe and handed to the media engine
const UserAgent = "Mozilla/5.0 (Linux; Android 9; IPTV) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/88.0.4324.93 Safari/537.36"

// DefaultTimeout bounds each probe attempt
const DefaultTimeout = 3 * time.Second

var errNoHost = errors.New("url has no host")

// Prober checks whether a stream server answers HTTP requests
type Prober struct {
	Client    *http.Client
	UserAgent string
	Timeout   time.Duration
	logger    zerolog.Logger
}

// NewProber creates a prober with the default timeout and user agent
func NewProber(logger zerolog.Logger) *Prober {
	return &Prober{
		Client:    &http.Client{},
		UserAgent: UserAgent,
		Timeout:   DefaultTimeout,
		logger:    logger.With().Str("component", "probe").Logger(),
	}
}

// Origin returns scheme://host[:port] of rawURL
func Origin(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Host == "" {
		return "", errNoHost
	}
	return u.Scheme + "://" + u.Host, nil
}

// IsReachable reports whether the origin of rawURL answers 200 to a HEAD
// request, or failing that to a GET. It never returns an error.
func (p *Prober) IsReachable(ctx context.Context, rawURL string) bool {
	origin, err := Origin(rawURL)
	if err != nil {
		p.logger.Debug().Err(err).Str("url", rawURL).Msg("cannot derive origin")
		return false
	}

	if p.attempt(ctx, http.MethodHead, origin) {
		return true
	}
	return p.attempt(ctx, http.MethodGet, origin)
}

// attempt issues a single request and reports whether it returned 200
func (p *Prober) attempt(ctx context.Context, method, origin string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, origin, nil)
	if err != nil {
		p.logger.Debug().Err(err).Str("method", method).Msg("build request failed")
		return false
	}
	req.Header.Set("User-Agent", p.userAgent())

	resp, err := p.client().Do(req)
	if err != nil {
		p.logger.Debug().Err(err).Str("method", method).Str("origin", origin).Msg("probe failed")
		return false
	}
	// GET is streamed: the body is closed without being read
	resp.Body.Close()

	p.logger.Debug().
		Str("method", method).
		Str("origin", origin).
		Int("status", resp.StatusCode).
		Msg("probe answered")
	return resp.StatusCode == http.StatusOK
}

func (p *Prober) client() *http.Client {
	if p.Client == nil {
		return http.DefaultClient
	}
	return p.Client
}

func (p *Prober) timeout() time.Duration {
	if p.Timeout <= 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

func (p *Prober) userAgent() string {
	if p.UserAgent == "" {
		return UserAgent
	}
	return p.UserAgent
}
