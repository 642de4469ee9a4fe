package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/ignitegym/internal/client/models"
)

var errNotImplemented = errors.New("not implemented")

// fakeAPI implements client.Client; catalog and profile results are set through fields.
type fakeAPI struct {
	mu sync.Mutex

	user models.User

	updateResp  models.User
	updateErr   error
	updateCalls int
	lastUpdate  models.UpdateProfileRequest
	block       chan struct{}
	entered     chan struct{}

	groups     []string
	exercises  []models.Exercise
	exercise   models.Exercise
	history    []models.HistoryDay
	catalogErr error
	registered []string
}

func (f *fakeAPI) SignIn(context.Context, string, string) (models.AuthResponse, error) {
	return models.AuthResponse{User: f.user, Token: "tkn"}, nil
}

func (f *fakeAPI) SignUp(context.Context, models.SignUpRequest) error { return errNotImplemented }

func (f *fakeAPI) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	f.mu.Lock()
	f.updateCalls++
	f.lastUpdate = req
	block, entered := f.block, f.entered
	f.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return models.User{}, ctx.Err()
		}
	}
	return f.updateResp, f.updateErr
}

func (f *fakeAPI) SetToken(string) {}

func (f *fakeAPI) Groups(context.Context) ([]string, error) { return f.groups, f.catalogErr }

func (f *fakeAPI) ExercisesByGroup(_ context.Context, group string) ([]models.Exercise, error) {
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	var out []models.Exercise
	for _, e := range f.exercises {
		if e.Group == group {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAPI) Exercise(context.Context, string) (models.Exercise, error) {
	return f.exercise, f.catalogErr
}

func (f *fakeAPI) RegisterHistory(_ context.Context, id string) error {
	if f.catalogErr != nil {
		return f.catalogErr
	}
	f.registered = append(f.registered, id)
	return nil
}

func (f *fakeAPI) History(context.Context) ([]models.HistoryDay, error) {
	return f.history, f.catalogErr
}

func (f *fakeAPI) Close() error { return nil }

func (f *fakeAPI) calls() (int, models.UpdateProfileRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateCalls, f.lastUpdate
}

type memStorage struct {
	mu      sync.Mutex
	user    *models.User
	saveErr error
}

func (m *memStorage) Save(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.user = &u
	return nil
}

func (m *memStorage) SaveSession(ctx context.Context, u models.User, _ string) error {
	return m.Save(ctx, u)
}

func (m *memStorage) Load(context.Context) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

func (m *memStorage) LoadToken(context.Context) (string, bool) { return "", false }

func (m *memStorage) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	return nil
}

func (m *memStorage) saved() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

type fakeUploader struct {
	ref   string
	err   error
	calls []string
}

func (u *fakeUploader) Upload(_ context.Context, userID, ref string) (string, error) {
	u.calls = append(u.calls, userID+":"+ref)
	return u.ref, u.err
}
