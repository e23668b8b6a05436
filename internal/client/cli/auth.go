package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
	"github.com/dmitrijs2005/assocportal/internal/common"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register prompts for email, password and role, creates the account and
// signs it in.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role, err := getSimpleText(a.reader, "Role (HABITANT or ASSOCIATION, empty for default)", a.out)
	if err != nil {
		return err
	}

	user, err := a.auth.SignUp(ctx, email, string(password), models.Role(strings.ToUpper(role)))
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s! You are signed in as %s.\n", user.DisplayName(), user.Role)
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.SignIn(ctx, email, string(password))
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s (%s).\n", user.DisplayName(), user.Role)
	return nil
}

// Logout discards the local session. The server is not contacted.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.SignOut(ctx); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// WhoAmI prints the identity held locally.
func (a *App) WhoAmI(ctx context.Context) error {
	state := a.auth.State()
	if state.User == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	u := state.User
	fmt.Fprintf(a.out, "%s <%s>\nrole: %s\nid: %s\nmember since: %s\n",
		u.DisplayName(), u.Email, u.Role, u.ID, u.CreatedAt.Format("2006-01-02"))
	return nil
}

// Forgot asks the server to send a password reset code.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if err := a.auth.ForgotPassword(ctx, email); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "If the account exists, a reset code is on its way.")
	return nil
}

// Reset sets a new password with a previously received code.
func (a *App) Reset(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter reset code", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.ResetPassword(ctx, email, code, string(password)); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Password changed. You can sign in now.")
	return nil
}

// Verify asks the gRPC session endpoint whether the held credential is still
// accepted. A rejection ends the session like any other authorization
// failure.
func (a *App) Verify(ctx context.Context) error {
	if a.checker == nil {
		fmt.Fprintln(a.out, "gRPC session endpoint is not configured.")
		return nil
	}
	resp, err := a.checker.Check(ctx, &healthpb.HealthCheckRequest{Service: common.SessionHealthService})
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintf(a.out, "Session accepted by server (%s).\n", resp.GetStatus())
	return nil
}
