package client

import (
	"context"

	"github.com/dmitrijs2005/ignitegym/internal/client/models"
)

// AuthClient is the authentication and profile part of the remote API.
type AuthClient interface {
	// SignIn calls POST /sessions. The returned token is not installed;
	// the caller decides whether the result is still wanted (see SetToken).
	SignIn(ctx context.Context, email, password string) (models.AuthResponse, error)
	// SignUp calls POST /users; it only provisions the account.
	SignUp(ctx context.Context, req models.SignUpRequest) error
	// UpdateProfile calls PUT /users. The returned user is empty when the
	// server does not echo the record.
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error)
	// SetToken replaces the auth token sent with requests; "" removes it.
	SetToken(token string)
}

// CatalogClient covers the exercise and history endpoints.
type CatalogClient interface {
	Groups(ctx context.Context) ([]string, error)
	ExercisesByGroup(ctx context.Context, group string) ([]models.Exercise, error)
	Exercise(ctx context.Context, id string) (models.Exercise, error)
	RegisterHistory(ctx context.Context, exerciseID string) error
	History(ctx context.Context) ([]models.HistoryDay, error)
}

// Client is the full remote API used by the application.
type Client interface {
	AuthClient
	CatalogClient
	Close() error
}
