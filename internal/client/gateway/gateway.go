package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
	"github.com/dmitrijs2005/assocportal/internal/client/session"
	"github.com/dmitrijs2005/assocportal/internal/common"
	"github.com/dmitrijs2005/assocportal/internal/logging"
	"github.com/google/uuid"
)

const maxErrorBody = 1 << 20

// Credentials is the part of the session store the gateway depends on.
type Credentials interface {
	Token() string
	Clear(ctx context.Context) error
}

// Navigator moves the user interface to route.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, route string)

func (f NavigatorFunc) Navigate(ctx context.Context, route string) {
	f(ctx, route)
}

// Observer receives one call per completed request and one per forced
// sign-out.
type Observer interface {
	ObserveRequest(method, outcome string, elapsed time.Duration)
	ObserveSessionCleared()
}

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, string, time.Duration) {}
func (nopObserver) ObserveSessionCleared()                       {}

type Gateway struct {
	baseURL    *url.URL
	client     *http.Client
	timeout    time.Duration
	creds      Credentials
	nav        Navigator
	entryRoute string
	preflight  bool
	logger     logging.Logger
	observer   Observer
	now        func() time.Time
}

// New returns a gateway sending requests relative to baseURL with the
// credential held by creds.
func New(baseURL string, creds Credentials, nav Navigator, opts ...Option) (*Gateway, error) {
	if creds == nil {
		return nil, errors.New("gateway: nil credentials")
	}
	if nav == nil {
		return nil, errors.New("gateway: nil navigator")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", baseURL)
	}

	g := &Gateway{
		baseURL:    u,
		creds:      creds,
		nav:        nav,
		entryRoute: DefaultEntryRoute,
		logger:     logging.NewDiscardLogger(),
		observer:   nopObserver{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	switch {
	case g.client == nil:
		g.client = &http.Client{Timeout: g.timeout}
	case g.timeout > 0:
		c := *g.client
		c.Timeout = g.timeout
		g.client = &c
	}
	g.logger = g.logger.With("module", "gateway")

	return g, nil
}

// BaseURL returns the API root requests are resolved against.
func (g *Gateway) BaseURL() string {
	return g.baseURL.String()
}

// Do sends req with the current credential attached. On KindOK the caller
// owns the response body. On every other outcome the body has already been
// consumed and a *Failure is returned.
func (g *Gateway) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := g.now()
	resp, err := g.do(ctx, req)
	g.observer.ObserveRequest(req.Method, KindOf(err).String(), g.now().Sub(start))
	return resp, err
}

func (g *Gateway) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	r := req.Clone(ctx)
	r.Header.Del(common.AuthorizationHeaderName)

	if token := g.creds.Token(); token != "" {
		if g.expiredLocally(token) {
			g.expire(ctx, "credential expired before sending")
			return nil, &Failure{Kind: KindUnauthorized, Err: common.ErrTokenExpired}
		}
		r.Header.Set(common.AuthorizationHeaderName, common.BearerValue(token))
	}
	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	resp, err := g.client.Do(r)
	if err != nil {
		g.logger.Debug(ctx, "request failed", "method", r.Method, "url", r.URL.Redacted(), "error", err)
		return nil, &Failure{Kind: KindRequestFailed, Err: err}
	}

	return g.inspect(ctx, resp)
}

func (g *Gateway) inspect(ctx context.Context, resp *http.Response) (*http.Response, error) {
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()

	payload := decodePayload(body, resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		g.expire(ctx, "server rejected credential")
		return nil, &Failure{Kind: KindUnauthorized, StatusCode: resp.StatusCode, Payload: payload}
	}

	f := &Failure{Kind: KindRequestFailed, StatusCode: resp.StatusCode, Payload: payload}
	if payload == nil {
		switch {
		case readErr != nil:
			f.Err = fmt.Errorf("request failed with status %d: %w", resp.StatusCode, readErr)
		case len(bytes.TrimSpace(body)) > 0:
			f.Err = fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		default:
			f.Err = fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
	}
	g.logger.Debug(ctx, "request rejected", "status", resp.StatusCode, "error", f)
	return nil, f
}

// expire runs the authorization-failure policy: clear the session, then
// navigate once. It ignores cancellation of ctx so an abandoned request can
// not leave a rejected credential behind.
func (g *Gateway) expire(ctx context.Context, reason string) {
	ctx = context.WithoutCancel(ctx)

	if err := g.creds.Clear(ctx); err != nil {
		g.logger.Error(ctx, "failed to clear session", "error", err)
	}
	g.observer.ObserveSessionCleared()
	g.logger.Info(ctx, "session ended", "reason", reason, "route", g.entryRoute)
	g.nav.Navigate(ctx, g.entryRoute)
}

func (g *Gateway) expiredLocally(token string) bool {
	if !g.preflight {
		return false
	}
	claims, err := session.DecodeToken(token)
	if err != nil {
		return false
	}
	return claims.Expired(g.now())
}

// decodePayload returns the normalized error body, or nil when body is not
// one. A payload without statusCode inherits the response status.
func decodePayload(body []byte, status int) *models.ErrorResponse {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var p models.ErrorResponse
	if err := json.Unmarshal(body, &p); err != nil || p.Message == "" {
		return nil
	}
	if p.StatusCode == 0 {
		p.StatusCode = status
	}
	return &p
}

// NewRequest builds a request for path relative to the API root, encoding
// in as a JSON body when it is not nil.
func (g *Gateway) NewRequest(ctx context.Context, method, path string, in any) (*http.Request, error) {
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	base := *g.baseURL
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	target := base.ResolveReference(ref)

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Send performs a JSON round trip. out may be nil when the response body is
// not needed.
func (g *Gateway) Send(ctx context.Context, method, path string, in, out any) error {
	req, err := g.NewRequest(ctx, method, path, in)
	if err != nil {
		return err
	}

	resp, err := g.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			// empty body on success
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
