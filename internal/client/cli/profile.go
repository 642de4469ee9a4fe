package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ignitegym/internal/client/models"
)

// Profile edits the signed-in user's name and, optionally, password. A
// pending avatar picked with Avatar is submitted with the same update and
// dropped once the update commits.
func (a *App) Profile(ctx context.Context) error {
	current := a.session.User()

	name, err := getSimpleText(a.reader, fmt.Sprintf("Enter name (empty keeps %q)", current.Name), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = current.Name
	}

	oldPassword, err := a.readSecret("Enter current password")
	if err != nil {
		return err
	}
	newPassword, err := a.readSecret("Enter new password (empty keeps the current one)")
	if err != nil {
		return err
	}
	var confirm string
	if newPassword != "" {
		if confirm, err = a.readSecret("Confirm new password"); err != nil {
			return err
		}
	}

	form := models.ProfileEditForm{
		Name:               name,
		Email:              current.Email,
		OldPassword:        oldPassword,
		NewPassword:        newPassword,
		ConfirmNewPassword: confirm,
	}

	if _, err := a.profile.UpdateProfile(ctx, form, a.avatars.Pending()); err != nil {
		printFieldErrors(a.out, err)
		return err
	}
	a.avatars.Clear()
	return nil
}

// Avatar picks the image at path for the next profile update.
func (a *App) Avatar(ctx context.Context, path string) error {
	p, err := a.avatars.SelectFile(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Avatar %s selected (%d bytes). Run 'profile' to save it.\n", p.Ref, p.Size)
	return nil
}
