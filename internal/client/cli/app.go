package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/ignitegym/internal/client/models"
	"github.com/dmitrijs2005/ignitegym/internal/client/services"
	"github.com/dmitrijs2005/ignitegym/internal/logging"
)

// Session is the part of the session store the CLI drives.
type Session interface {
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, form models.SignUpForm) error
	SignOut(ctx context.Context) error
	User() models.User
}

// AvatarPicker holds the avatar chosen for the next profile update.
type AvatarPicker interface {
	SelectFile(ctx context.Context, path string) (models.PendingAvatar, error)
	Pending() *models.PendingAvatar
	Clear()
}

// Deps are the collaborators an App is built from.
type Deps struct {
	Session Session
	Profile services.ProfileService
	Catalog services.CatalogService
	Avatars AvatarPicker
	Log     logging.Logger
}

type App struct {
	session Session
	profile services.ProfileService
	catalog services.CatalogService
	avatars AvatarPicker
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(d Deps) *App {
	return &App{
		session: d.Session,
		profile: d.Profile,
		catalog: d.Catalog,
		avatars: d.Avatars,
		log:     d.Log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	a.log.Info(ctx, "repl started")
	a.Root(ctx)
	a.log.Info(ctx, "repl stopped")
}

func (a *App) isLoggedIn() bool {
	return a.session.User().IsAuthenticated()
}
