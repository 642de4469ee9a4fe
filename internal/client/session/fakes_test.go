package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/ignitegym/internal/client/models"
)

// fakeClient implements client.AuthClient for Store tests.
type fakeClient struct {
	mu sync.Mutex

	signInResp models.AuthResponse
	signInErr  error
	signUpErr  error
	updateResp models.User
	updateErr  error

	// when non-nil, SignIn waits until it is closed
	block chan struct{}
	// closed once SignIn has started
	entered chan struct{}

	signInCalls int
	signUpCalls int
	lastSignIn  models.SignInRequest
	lastSignUp  models.SignUpRequest
	token       string
}

func (f *fakeClient) SignIn(ctx context.Context, email, password string) (models.AuthResponse, error) {
	f.mu.Lock()
	f.signInCalls++
	f.lastSignIn = models.SignInRequest{Email: email, Password: password}
	block, entered := f.block, f.entered
	f.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return models.AuthResponse{}, ctx.Err()
		}
	}
	return f.signInResp, f.signInErr
}

func (f *fakeClient) SignUp(_ context.Context, req models.SignUpRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUpCalls++
	f.lastSignUp = req
	return f.signUpErr
}

func (f *fakeClient) UpdateProfile(context.Context, models.UpdateProfileRequest) (models.User, error) {
	return f.updateResp, f.updateErr
}

func (f *fakeClient) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeClient) calls() (signIn, signUp int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signInCalls, f.signUpCalls
}

func (f *fakeClient) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// memStorage is an in-memory storage.SessionStorage.
type memStorage struct {
	mu sync.Mutex

	user     *models.User
	token    string
	saveErr  error
	clearErr error

	saves  int
	clears int
}

func (m *memStorage) Save(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.user = &u
	return nil
}

func (m *memStorage) SaveSession(ctx context.Context, u models.User, token string) error {
	if err := m.Save(ctx, u); err != nil {
		return err
	}
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *memStorage) Load(context.Context) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

func (m *memStorage) LoadToken(context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *memStorage) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.user = nil
	m.token = ""
	return nil
}
