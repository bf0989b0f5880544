package steam

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"steamy/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/proxy"
	"golang.org/x/time/rate"
)

// NewHTTPClient creates the resty client shared by every accessor.
func NewHTTPClient(cfg Config, tel telemetry.API) (*resty.Client, error) {
	client := resty.New()
	client.SetTimeout(cfg.Timeout)
	if cfg.UserAgent != "" {
		client.SetHeader("user-agent", cfg.UserAgent)
	}

	if cfg.Proxy != "" {
		err := configureProxy(client, cfg.Proxy)
		if err != nil {
			return nil, err
		}
	}

	if cfg.RequestsPerSecond > 0 {
		// burst >= 1 so a fractional rate still lets requests through
		burst := int(math.Max(1, math.Ceil(cfg.RequestsPerSecond)))
		rateLimiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(client, tel)
	return client, nil
}

func configureProxy(client *resty.Client, proxyURL string) error {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return fmt.Errorf("parse proxy url: %w", err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		client.SetProxy(proxyURL)
	case "socks", "socks5":
		var auth *proxy.Auth
		if parsed.User != nil {
			password, _ := parsed.User.Password()
			auth = &proxy.Auth{
				User:     parsed.User.Username(),
				Password: password,
			}
		}
		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return fmt.Errorf("create socks5 dialer: %w", err)
		}
		transport := &http.Transport{}
		if contextDialer, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = contextDialer.DialContext
		} else {
			transport.Dial = dialer.Dial
		}
		client.SetTransport(transport)
	default:
		return fmt.Errorf("unsupported proxy type: %s", parsed.Scheme)
	}
	return nil
}
