package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/assocportal/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestRouter_PendingIsConsumedOnce(t *testing.T) {
	r := NewRouter(logging.NewDiscardLogger())

	_, ok := r.TakePending()
	assert.False(t, ok)

	r.Navigate(context.Background(), "/login")
	assert.Equal(t, "/login", r.Current())

	route, ok := r.TakePending()
	assert.True(t, ok)
	assert.Equal(t, "/login", route)

	_, ok = r.TakePending()
	assert.False(t, ok)
	assert.Equal(t, "/login", r.Current(), "current survives consumption")
}

func TestRouter_LastNavigationWins(t *testing.T) {
	r := NewRouter(logging.NewDiscardLogger())
	r.Navigate(context.Background(), "/a")
	r.Navigate(context.Background(), "/login")

	route, ok := r.TakePending()
	assert.True(t, ok)
	assert.Equal(t, "/login", route)
}
