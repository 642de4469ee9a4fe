package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ignitegym/internal/client/models"
	"github.com/dmitrijs2005/ignitegym/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// readSecret reads a password and returns it as a string, wiping the
// terminal buffer.
func (a *App) readSecret(prompt string) (string, error) {
	pw, err := getPassword(prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Register prompts for the account fields, creates the account and signs in
// with the same credentials.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readSecret("Enter password")
	if err != nil {
		return err
	}
	confirm, err := a.readSecret("Confirm password")
	if err != nil {
		return err
	}

	form := models.SignUpForm{Name: name, Email: email, Password: password, PasswordConfirm: confirm}
	if err := a.session.SignUp(ctx, form); err != nil {
		printFieldErrors(a.out, err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", a.session.User().Name)
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readSecret("Enter password")
	if err != nil {
		return err
	}

	if err := a.session.SignIn(ctx, email, password); err != nil {
		printFieldErrors(a.out, err)
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s\n", a.session.User().Name)
	return nil
}

// Logout signs out and drops the pending avatar.
func (a *App) Logout(ctx context.Context) error {
	a.avatars.Clear()
	if err := a.session.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// WhoAmI prints the signed-in user.
func (a *App) WhoAmI(context.Context) error {
	u := a.session.User()
	if !u.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	if u.AvatarRef != "" {
		fmt.Fprintf(a.out, "avatar: %s\n", u.AvatarRef)
	}
	return nil
}
