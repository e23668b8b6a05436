package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/dmitrijs2005/assocportal/internal/client/api"
	"github.com/dmitrijs2005/assocportal/internal/client/config"
	"github.com/dmitrijs2005/assocportal/internal/client/gateway"
	"github.com/dmitrijs2005/assocportal/internal/client/metrics"
	"github.com/dmitrijs2005/assocportal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/assocportal/internal/client/services"
	"github.com/dmitrijs2005/assocportal/internal/client/session"
	"github.com/dmitrijs2005/assocportal/internal/client/storage"
	"github.com/dmitrijs2005/assocportal/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	auth    services.AuthService
	api     *api.Client
	router  *Router
	checker healthpb.HealthClient
	metrics *http.Server
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.Mutex
	mode Mode

	closers []func() error
}

// NewApp wires the local store, the gateway and the API client described by
// c. The returned App owns the database and connections it opened; release
// them with Close.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	store := session.NewStore(
		session.NewMetadataSlot(metadata.NewSQLiteRepository(db)),
		logger.With("module", "session"),
	)

	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)
	router := NewRouter(logger.With("module", "router"))

	gw, err := gateway.New(c.APIURL, store, router,
		gateway.WithTimeout(c.RequestTimeout),
		gateway.WithEntryRoute(c.EntryRoute),
		gateway.WithPreflightExpiry(c.PreflightExpiry),
		gateway.WithLogger(logger),
		gateway.WithObserver(recorder),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	client := api.New(gw)
	app := newApp(c, logger, services.NewAuthService(client, store), client, router,
		bufio.NewReader(os.Stdin), os.Stdout)
	app.closers = append(app.closers, db.Close)

	if c.GRPCAddr != "" {
		conn, err := grpc.NewClient(c.GRPCAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithUnaryInterceptor(gw.UnaryClientInterceptor()),
		)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("grpc client: %w", err)
		}
		app.checker = healthpb.NewHealthClient(conn)
		app.closers = append(app.closers, conn.Close)
	}

	if c.MetricsAddr != "" {
		app.metrics = &http.Server{Addr: c.MetricsAddr, Handler: metrics.Handler(registry)}
	}

	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, auth services.AuthService, client *api.Client,
	router *Router, reader *bufio.Reader, out io.Writer) *App {
	return &App{
		config: c,
		logger: logger,
		auth:   auth,
		api:    client,
		router: router,
		reader: reader,
		out:    out,
	}
}

// Run restores the previous session and serves the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	unsubscribe := a.auth.Subscribe(func(s session.Session) {
		a.onSessionChange(ctx, s)
	})
	defer unsubscribe()

	if err := a.auth.Bootstrap(ctx); err != nil {
		a.logger.Error(ctx, "failed to restore session", "error", err)
	}

	if a.metrics != nil {
		go a.serveMetrics(ctx)
	}
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Fprintln(a.out, "Welcome to assocportal CLI (type 'help' for commands)")
	if !a.isLoggedIn() {
		a.router.Navigate(ctx, a.config.EntryRoute)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// Close releases everything NewApp opened, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().Authenticated()
}

func (a *App) takePendingRoute() (string, bool) {
	return a.router.TakePending()
}

// enterRoute renders route. The entry route is the sign-in prompt; other
// routes have no terminal page and are only logged.
func (a *App) enterRoute(ctx context.Context, route string) {
	if route != a.config.EntryRoute {
		a.logger.Debug(ctx, "no page for route", "route", route)
		return
	}
	if a.isLoggedIn() {
		return
	}
	fmt.Fprintln(a.out, "Please sign in (or type 'register' at the prompt).")
	_ = a.Login(ctx)
}

func (a *App) onSessionChange(ctx context.Context, s session.Session) {
	if s.User == nil {
		a.logger.Info(ctx, "session changed", "authenticated", false)
		return
	}
	a.logger.Info(ctx, "session changed", "authenticated", true, "user_id", s.User.ID)
}

func (a *App) getStatus() string {
	s := ""
	if st := a.auth.State(); st.User != nil {
		s = fmt.Sprintf("%s %s ", st.User.DisplayName(), st.User.Role)
	}
	if m := a.getMode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "switched mode", "mode", string(mode))
	}
}

// report prints err for the user. Normalized API payloads are shown by
// message; authorization failures get a fixed hint since the session is
// already gone.
func (a *App) report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, gateway.ErrUnauthorized) {
		fmt.Fprintln(a.out, "Your session has ended. Please sign in again.")
		return
	}
	if p, ok := gateway.PayloadOf(err); ok {
		fmt.Fprintf(a.out, "Error: %s (%d)\n", p.Message, p.StatusCode)
		return
	}
	fmt.Fprintf(a.out, "Error: %v\n", err)
}
