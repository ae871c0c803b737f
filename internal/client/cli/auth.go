package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sweetshop/internal/client/app"
)

// getSimpleText, getPassword and confirm are indirections used to
// facilitate testing. They point to the interactive input helpers.
var (
	getSimpleText  = GetSimpleText
	getPassword    = GetPassword
	confirm        = Confirm
	getWithDefault = GetWithDefault
)

func validationMessage(err error) (string, bool) {
	var verr *app.ValidationError
	if errors.As(err, &verr) {
		return verr.Message, true
	}
	return "", false
}

// Login prompts for credentials, offering the previous username as the
// default. Validation and server errors are shown by the store as an inline
// banner on the login form.
func (a *App) Login(ctx context.Context) error {
	var (
		username string
		err      error
	)
	if last := a.store.LastUsername(ctx); last != "" {
		username, err = getWithDefault(a.reader, "Enter username", last, a.out)
	} else {
		username, err = getSimpleText(a.reader, "Enter username", a.out)
	}
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	return a.store.Login(ctx, app.LoginForm{Username: username, Password: password})
}

func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	return a.store.Register(ctx, app.RegisterForm{Username: username, Email: email, Password: password})
}

// Logout asks for confirmation first.
func (a *App) Logout(ctx context.Context) error {
	ok, err := confirm(a.reader, "Are you sure you want to logout?", a.out)
	if err != nil || !ok {
		return err
	}
	return a.store.Logout(ctx)
}

func (a *App) ToggleAdmin(_ context.Context) error {
	return a.report(a.store.ToggleAdminPanel())
}
