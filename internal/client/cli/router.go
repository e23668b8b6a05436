package cli

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/assocportal/internal/logging"
)

// Router is the terminal rendition of page navigation. The gateway calls
// Navigate; the REPL consumes the pending route before its next prompt.
type Router struct {
	logger logging.Logger

	mu      sync.Mutex
	current string
	pending string
}

func NewRouter(logger logging.Logger) *Router {
	return &Router{logger: logger}
}

// Navigate records route as the current and pending destination.
func (r *Router) Navigate(ctx context.Context, route string) {
	r.mu.Lock()
	r.current = route
	r.pending = route
	r.mu.Unlock()

	r.logger.Debug(ctx, "navigate", "route", route)
}

// Current returns the last route navigated to.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// TakePending returns the route navigated to since the last call, if any.
func (r *Router) TakePending() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	route := r.pending
	r.pending = ""
	return route, route != ""
}
