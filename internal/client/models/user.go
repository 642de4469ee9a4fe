// Package models defines client-side data models used by the IgniteGym client:
// the authenticated user record, wire DTOs of the remote API and transient
// form values held by the presentation layer.
package models

// User is the identity record of the signed-in account.
//
// ID is assigned by the server and stays stable for the account lifetime.
// An empty ID means there is no authenticated session.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarRef string `json:"avatar,omitempty"`
}

// IsAuthenticated reports whether u represents a signed-in account.
func (u User) IsAuthenticated() bool {
	return u.ID != ""
}

// SignInRequest is the body of POST /sessions.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by POST /sessions.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// SignUpRequest is the body of POST /users.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the body of PUT /users.
// Password fields are only sent when the user asked to change the password.
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	OldPassword string `json:"old_password"`
	Password    string `json:"password,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// UpdateProfileResponse is returned by PUT /users. User may be empty when the
// server does not echo the record back.
type UpdateProfileResponse struct {
	User User `json:"user"`
}

// ErrorResponse is the error envelope of the remote API.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
