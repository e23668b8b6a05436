// Package services contains application services for the assocportal client.
// This file defines the authentication service: bootstrap, sign-in, sign-up,
// sign-out, password reset and the liveness probe.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
	"github.com/dmitrijs2005/assocportal/internal/client/session"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidInput wraps validation failures of user-supplied fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyToken is returned when the server answers an authentication
	// request without a credential.
	ErrEmptyToken = errors.New("server returned no access token")
)

// AuthAPI is the remote half of authentication.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Register(ctx context.Context, reg models.Registration) (*models.AuthResponse, error)
	ForgotPassword(ctx context.Context, req models.PasswordResetRequest) error
	ResetPassword(ctx context.Context, req models.PasswordReset) error
	Health(ctx context.Context) error
}

// AuthService is the surface session consumers talk to.
//
// Contract:
//   - State: current {User, Bootstrapping}; never exposes the token.
//   - SignIn / SignUp: remote exchange, then the session is established.
//   - SignOut: local only, no network round trip.
//   - ForgotPassword / ResetPassword: remote only, the session is untouched.
//   - Ping: server liveness.
type AuthService interface {
	Bootstrap(ctx context.Context) error
	State() session.Session
	Subscribe(fn func(session.Session)) (unsubscribe func())
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	SignUp(ctx context.Context, email, password string, role models.Role) (*models.User, error)
	SignOut(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, password string) error
	Ping(ctx context.Context) error
}

type authService struct {
	api      AuthAPI
	store    *session.Store
	validate *validator.Validate
}

// NewAuthService binds the remote API to the session store.
func NewAuthService(api AuthAPI, store *session.Store) AuthService {
	return &authService{api: api, store: store, validate: validator.New()}
}

func (a *authService) check(v any) error {
	if err := a.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func (a *authService) Bootstrap(ctx context.Context) error {
	return a.store.Bootstrap(ctx)
}

func (a *authService) State() session.Session {
	return a.store.Snapshot()
}

func (a *authService) Subscribe(fn func(session.Session)) func() {
	return a.store.Subscribe(fn)
}

// SignIn exchanges credentials for a session. Nothing is stored unless the
// server answered with a usable token.
func (a *authService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	creds := models.Credentials{Email: email, Password: password}
	if err := a.check(creds); err != nil {
		return nil, err
	}

	resp, err := a.api.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	return a.establish(ctx, resp)
}

// SignUp registers a new account and signs it in. An empty role lets the
// server pick its default.
func (a *authService) SignUp(ctx context.Context, email, password string, role models.Role) (*models.User, error) {
	reg := models.Registration{Email: email, Password: password, Role: role}
	if err := a.check(reg); err != nil {
		return nil, err
	}

	resp, err := a.api.Register(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	return a.establish(ctx, resp)
}

func (a *authService) establish(ctx context.Context, resp *models.AuthResponse) (*models.User, error) {
	if resp == nil || resp.AccessToken == "" {
		return nil, ErrEmptyToken
	}
	if err := a.store.Establish(ctx, resp.User, resp.AccessToken); err != nil {
		return nil, fmt.Errorf("session error: %w", err)
	}
	return a.store.Snapshot().User, nil
}

// SignOut discards the local session.
func (a *authService) SignOut(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	req := models.PasswordResetRequest{Email: email}
	if err := a.check(req); err != nil {
		return err
	}
	return a.api.ForgotPassword(ctx, req)
}

func (a *authService) ResetPassword(ctx context.Context, email, code, password string) error {
	req := models.PasswordReset{Email: email, Code: code, Password: password}
	if err := a.check(req); err != nil {
		return err
	}
	return a.api.ResetPassword(ctx, req)
}

// Ping proxies a liveness check to the API.
func (a *authService) Ping(ctx context.Context) error {
	return a.api.Health(ctx)
}
