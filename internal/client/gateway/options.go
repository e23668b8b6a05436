package gateway

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/assocportal/internal/logging"
)

// DefaultEntryRoute is where users are sent after an authorization failure
// unless configured otherwise.
const DefaultEntryRoute = "/login"

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		g.client = c
	}
}

// WithTimeout bounds each HTTP round trip. Combined with WithHTTPClient the
// timeout is applied to a copy of the supplied client.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = d
	}
}

// WithEntryRoute sets the route passed to the Navigator on authorization
// failure.
func WithEntryRoute(route string) Option {
	return func(g *Gateway) {
		if route != "" {
			g.entryRoute = route
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) {
		g.logger = l
	}
}

func WithObserver(o Observer) Option {
	return func(g *Gateway) {
		if o != nil {
			g.observer = o
		}
	}
}

// WithPreflightExpiry makes the gateway treat a credential whose embedded
// expiry has passed as rejected without contacting the server.
func WithPreflightExpiry(enabled bool) Option {
	return func(g *Gateway) {
		g.preflight = enabled
	}
}

func withClock(now func() time.Time) Option {
	return func(g *Gateway) {
		g.now = now
	}
}
