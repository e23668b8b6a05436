package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
	"github.com/dmitrijs2005/assocportal/internal/client/session"
	"github.com/dmitrijs2005/assocportal/internal/client/session/sessiontest"
	"github.com/dmitrijs2005/assocportal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake api ----

type fakeAPI struct {
	LoginRet    *models.AuthResponse
	LoginErr    error
	RegisterRet *models.AuthResponse
	RegisterErr error
	ForgotErr   error
	ResetErr    error
	HealthErr   error

	LastCreds  models.Credentials
	LastReg    models.Registration
	LastForgot models.PasswordResetRequest
	LastReset  models.PasswordReset
	Calls      int
}

func (f *fakeAPI) Login(_ context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	f.Calls++
	f.LastCreds = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeAPI) Register(_ context.Context, reg models.Registration) (*models.AuthResponse, error) {
	f.Calls++
	f.LastReg = reg
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeAPI) ForgotPassword(_ context.Context, req models.PasswordResetRequest) error {
	f.Calls++
	f.LastForgot = req
	return f.ForgotErr
}

func (f *fakeAPI) ResetPassword(_ context.Context, req models.PasswordReset) error {
	f.Calls++
	f.LastReset = req
	return f.ResetErr
}

func (f *fakeAPI) Health(context.Context) error {
	f.Calls++
	return f.HealthErr
}

func newService(t *testing.T, api *fakeAPI) (AuthService, *session.Store, *session.MemorySlot) {
	t.Helper()
	slot := &session.MemorySlot{}
	store := session.NewStore(slot, logging.NewDiscardLogger())
	svc := NewAuthService(api, store)
	require.NoError(t, svc.Bootstrap(context.Background()))
	return svc, store, slot
}

func authResponse(t *testing.T, id string, role models.Role) *models.AuthResponse {
	user := sessiontest.User(id, role)
	return &models.AuthResponse{AccessToken: sessiontest.MintToken(t, user, time.Hour), User: user}
}

// ---- SignIn ----

func TestSignIn_EstablishesSession(t *testing.T) {
	resp := authResponse(t, "u1", models.RoleHabitant)
	api := &fakeAPI{LoginRet: resp}
	svc, store, slot := newService(t, api)

	user, err := svc.SignIn(context.Background(), "u1@example.org", "password1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, models.Credentials{Email: "u1@example.org", Password: "password1"}, api.LastCreds)

	state := svc.State()
	require.NotNil(t, state.User)
	assert.Equal(t, "u1", state.User.ID)
	assert.False(t, state.Bootstrapping)
	assert.Equal(t, resp.AccessToken, store.Token())

	persisted, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, resp.AccessToken, persisted)
}

func TestSignIn_ResponseWithoutUser_IdentityFromToken(t *testing.T) {
	resp := authResponse(t, "u3", models.RoleAssociation)
	resp.User = models.User{}
	svc, _, _ := newService(t, &fakeAPI{LoginRet: resp})

	user, err := svc.SignIn(context.Background(), "u3@example.org", "password1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u3", user.ID)
	assert.Equal(t, models.RoleAssociation, user.Role)
	assert.Equal(t, "u3", svc.State().User.ID)
}

func TestSignIn_ThenReloadRestoresIdentityWithoutNetwork(t *testing.T) {
	api := &fakeAPI{LoginRet: authResponse(t, "u1", models.RoleAssociation)}
	svc, _, slot := newService(t, api)
	_, err := svc.SignIn(context.Background(), "u1@example.org", "password1")
	require.NoError(t, err)
	callsBefore := api.Calls

	// a new process reusing the same slot
	reloaded := NewAuthService(api, session.NewStore(slot, logging.NewDiscardLogger()))
	assert.True(t, reloaded.State().Bootstrapping)
	require.NoError(t, reloaded.Bootstrap(context.Background()))

	state := reloaded.State()
	require.NotNil(t, state.User)
	assert.Equal(t, "u1", state.User.ID)
	assert.Equal(t, models.RoleAssociation, state.User.Role)
	assert.Equal(t, callsBefore, api.Calls)
}

func TestSignIn_InvalidInput_NoNetwork(t *testing.T) {
	api := &fakeAPI{}
	svc, _, _ := newService(t, api)

	tests := []struct {
		name, email, password string
	}{
		{"empty email", "", "password1"},
		{"bad email", "not-an-email", "password1"},
		{"short password", "a@b.co", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignIn(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Zero(t, api.Calls)
}

func TestSignIn_RemoteError_StaysAnonymous(t *testing.T) {
	remote := errors.New("invalid credentials")
	svc, store, _ := newService(t, &fakeAPI{LoginErr: remote})

	_, err := svc.SignIn(context.Background(), "a@b.co", "password1")
	require.ErrorIs(t, err, remote)
	assert.Nil(t, svc.State().User)
	assert.Empty(t, store.Token())
}

func TestSignIn_EmptyToken(t *testing.T) {
	svc, _, _ := newService(t, &fakeAPI{LoginRet: &models.AuthResponse{User: sessiontest.User("u", models.RoleHabitant)}})

	_, err := svc.SignIn(context.Background(), "a@b.co", "password1")
	require.ErrorIs(t, err, ErrEmptyToken)
	assert.Nil(t, svc.State().User)
}

func TestSignIn_UndecodableToken(t *testing.T) {
	svc, _, _ := newService(t, &fakeAPI{LoginRet: &models.AuthResponse{AccessToken: "opaque", User: sessiontest.User("u", models.RoleHabitant)}})

	_, err := svc.SignIn(context.Background(), "a@b.co", "password1")
	require.ErrorIs(t, err, session.ErrMalformedToken)
	assert.Nil(t, svc.State().User)
}

// ---- SignUp ----

func TestSignUp_SendsRoleAndEstablishes(t *testing.T) {
	api := &fakeAPI{RegisterRet: authResponse(t, "new", models.RoleAssociation)}
	svc, _, _ := newService(t, api)

	user, err := svc.SignUp(context.Background(), "new@example.org", "password1", models.RoleAssociation)
	require.NoError(t, err)
	assert.Equal(t, "new", user.ID)
	assert.Equal(t, models.RoleAssociation, api.LastReg.Role)
	assert.True(t, svc.State().Authenticated())
}

func TestSignUp_DefaultRoleLeftToServer(t *testing.T) {
	api := &fakeAPI{RegisterRet: authResponse(t, "new", models.RoleHabitant)}
	svc, _, _ := newService(t, api)

	_, err := svc.SignUp(context.Background(), "new@example.org", "password1", "")
	require.NoError(t, err)
	assert.Equal(t, models.Role(""), api.LastReg.Role)
}

func TestSignUp_AdminRoleRejected(t *testing.T) {
	api := &fakeAPI{}
	svc, _, _ := newService(t, api)

	_, err := svc.SignUp(context.Background(), "x@example.org", "password1", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, api.Calls)
}

// ---- SignOut ----

func TestSignOut_ClearsLocallyWithoutNetwork(t *testing.T) {
	api := &fakeAPI{LoginRet: authResponse(t, "u1", models.RoleHabitant)}
	svc, store, slot := newService(t, api)
	_, err := svc.SignIn(context.Background(), "u1@example.org", "password1")
	require.NoError(t, err)
	calls := api.Calls

	require.NoError(t, svc.SignOut(context.Background()))
	assert.Nil(t, svc.State().User)
	assert.Empty(t, store.Token())
	persisted, _ := slot.Load(context.Background())
	assert.Empty(t, persisted)
	assert.Equal(t, calls, api.Calls)
}

func TestSignOut_Anonymous_NoOp(t *testing.T) {
	api := &fakeAPI{}
	svc, _, _ := newService(t, api)

	var notified int
	svc.Subscribe(func(session.Session) { notified++ })

	require.NoError(t, svc.SignOut(context.Background()))
	assert.Nil(t, svc.State().User)
	assert.Zero(t, notified)
	assert.Zero(t, api.Calls)
}

// ---- password reset ----

func TestForgotAndResetPassword(t *testing.T) {
	api := &fakeAPI{}
	svc, _, _ := newService(t, api)

	require.NoError(t, svc.ForgotPassword(context.Background(), "a@b.co"))
	assert.Equal(t, "a@b.co", api.LastForgot.Email)

	require.NoError(t, svc.ResetPassword(context.Background(), "a@b.co", "c0de", "newpassword"))
	assert.Equal(t, models.PasswordReset{Email: "a@b.co", Code: "c0de", Password: "newpassword"}, api.LastReset)
	assert.False(t, svc.State().Authenticated(), "password reset never signs in")

	assert.ErrorIs(t, svc.ForgotPassword(context.Background(), "nope"), ErrInvalidInput)
	assert.ErrorIs(t, svc.ResetPassword(context.Background(), "a@b.co", "", "newpassword"), ErrInvalidInput)
	assert.Equal(t, 2, api.Calls)
}

func TestPing(t *testing.T) {
	down := errors.New("down")
	svc, _, _ := newService(t, &fakeAPI{HealthErr: down})
	assert.ErrorIs(t, svc.Ping(context.Background()), down)
}
