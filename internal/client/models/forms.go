package models

// SignUpForm holds the values typed on the account creation screen.
type SignUpForm struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// SignInForm holds the values typed on the sign-in screen.
type SignInForm struct {
	Email    string
	Password string
}

// ProfileEditForm holds the values typed on the profile screen. Email is
// displayed read-only and never submitted.
type ProfileEditForm struct {
	Name               string
	Email              string
	OldPassword        string
	NewPassword        string
	ConfirmNewPassword string
}

// ChangesPassword reports whether the form asks for a new password.
// An empty NewPassword means "absent".
func (f ProfileEditForm) ChangesPassword() bool {
	return f.NewPassword != ""
}

// PendingAvatar is an accepted avatar candidate that has not been committed
// to the session yet.
type PendingAvatar struct {
	// Ref is the local reference of the picked image (path or URI).
	Ref string
	// Size is the image size in bytes.
	Size int64
}
