package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/ignitegym/internal/client/apperr"
	"github.com/dmitrijs2005/ignitegym/internal/client/models"
)

// stubInputs replaces input: lines for getSimpleText and passwords for getPassword, in order.
// Passwords are returned as copies; the originals stay available to check wiping.
func stubInputs(t *testing.T, texts []string, passwords [][]byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(string, io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		p := passwords[0]
		passwords = passwords[1:]
		return p, nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeSession struct {
	user      models.User
	signInErr error
	signUpErr error
	signOut   int

	email, password string
	signUpForm      models.SignUpForm
}

func (f *fakeSession) SignIn(_ context.Context, email, password string) error {
	f.email, f.password = email, password
	if f.signInErr != nil {
		return f.signInErr
	}
	f.user = models.User{ID: "1", Name: "A", Email: email}
	return nil
}

func (f *fakeSession) SignUp(ctx context.Context, form models.SignUpForm) error {
	f.signUpForm = form
	if f.signUpErr != nil {
		return f.signUpErr
	}
	return f.SignIn(ctx, form.Email, form.Password)
}

func (f *fakeSession) SignOut(context.Context) error {
	f.signOut++
	f.user = models.User{}
	return nil
}

func (f *fakeSession) User() models.User { return f.user }

type fakeProfile struct {
	form    models.ProfileEditForm
	pending *models.PendingAvatar
	err     error
	calls   int
}

func (f *fakeProfile) UpdateProfile(_ context.Context, form models.ProfileEditForm, pending *models.PendingAvatar) (models.User, error) {
	f.calls++
	f.form, f.pending = form, pending
	if f.err != nil {
		return models.User{}, f.err
	}
	return models.User{ID: "1", Name: form.Name}, nil
}

type fakePicker struct {
	pending *models.PendingAvatar
	err     error
	cleared int
}

func (f *fakePicker) SelectFile(_ context.Context, path string) (models.PendingAvatar, error) {
	if f.err != nil {
		return models.PendingAvatar{}, f.err
	}
	p := models.PendingAvatar{Ref: path, Size: 42}
	f.pending = &p
	return p, nil
}

func (f *fakePicker) Pending() *models.PendingAvatar { return f.pending }

func (f *fakePicker) Clear() {
	f.cleared++
	f.pending = nil
}

type fakeCatalog struct {
	groups     []string
	exercises  []models.Exercise
	exercise   models.Exercise
	history    []models.HistoryDay
	err        error
	registered []string
	group      string
}

func (f *fakeCatalog) Groups(context.Context) ([]string, error) { return f.groups, f.err }

func (f *fakeCatalog) ExercisesByGroup(_ context.Context, group string) ([]models.Exercise, error) {
	f.group = group
	return f.exercises, f.err
}

func (f *fakeCatalog) Exercise(context.Context, string) (models.Exercise, error) {
	return f.exercise, f.err
}

func (f *fakeCatalog) RegisterHistory(_ context.Context, id string) error {
	f.registered = append(f.registered, id)
	return f.err
}

func (f *fakeCatalog) History(context.Context) ([]models.HistoryDay, error) {
	return f.history, f.err
}

type testApp struct {
	*App
	session *fakeSession
	profile *fakeProfile
	picker  *fakePicker
	catalog *fakeCatalog
	out     *bytes.Buffer
}

func newTestApp() *testApp {
	ta := &testApp{
		session: &fakeSession{},
		profile: &fakeProfile{},
		picker:  &fakePicker{},
		catalog: &fakeCatalog{},
		out:     &bytes.Buffer{},
	}
	ta.App = &App{
		session: ta.session,
		profile: ta.profile,
		catalog: ta.catalog,
		avatars: ta.picker,
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     ta.out,
	}
	return ta
}

func validationErr(fields map[string]string) error {
	return apperr.Validation(fields)
}
