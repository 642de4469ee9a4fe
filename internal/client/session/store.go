package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/ignitegym/internal/client/apperr"
	"github.com/dmitrijs2005/ignitegym/internal/client/client"
	"github.com/dmitrijs2005/ignitegym/internal/client/models"
	"github.com/dmitrijs2005/ignitegym/internal/client/notify"
	"github.com/dmitrijs2005/ignitegym/internal/client/storage"
	"github.com/dmitrijs2005/ignitegym/internal/client/validation"
	"github.com/dmitrijs2005/ignitegym/internal/logging"
)

// Status is the state of the session state machine.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticating  Status = "authenticating"
	StatusAuthenticated   Status = "authenticated"
	StatusAuthError       Status = "auth_error"
)

const (
	messageSignOutNotSaved = "Signed out, but the saved session could not be removed from this device."
	messageNotSignedIn     = "You are not signed in."
)

// ErrSessionChanged is returned when the session was signed out or replaced
// while an operation was in flight; the operation's result was discarded.
var ErrSessionChanged = errors.New("session changed while the operation was in flight")

// State is an immutable snapshot delivered to listeners.
type State struct {
	Status Status
	User   models.User
	// Err is the failure of the last operation (StatusAuthError), or a
	// warning attached to a successful one.
	Err *apperr.Error
}

// Store is the session state machine. Create it with NewStore and call
// Restore once at start-up.
type Store struct {
	client   client.AuthClient
	storage  storage.SessionStorage
	notifier notify.Notifier
	log      logging.Logger
	now      func() time.Time

	mu    sync.Mutex
	state State
	seq   uint64
	// generation changes on every sign-in commit and sign-out; operations
	// started under an older generation are stale.
	generation uint64
	busy       string

	// writeMu serializes storage writes so that a late write cannot land
	// after a sign-out cleared the store.
	writeMu sync.Mutex

	emitMu    sync.Mutex
	delivered uint64
	listeners map[int]func(State)
	nextID    int
}

func NewStore(c client.AuthClient, s storage.SessionStorage, n notify.Notifier, log logging.Logger) *Store {
	return &Store{
		client:    c,
		storage:   s,
		notifier:  n,
		log:       log,
		now:       time.Now,
		state:     State{Status: StatusUnauthenticated},
		listeners: make(map[int]func(State)),
	}
}

// Restore loads the persisted user, if any, and enters Authenticated without
// contacting the server. Missing or corrupt data leaves Unauthenticated.
func (s *Store) Restore(ctx context.Context) State {
	user, ok := s.storage.Load(ctx)
	if !ok {
		s.log.Info(ctx, "no saved session")
		return s.Current()
	}

	token, _ := s.storage.LoadToken(ctx)
	s.checkToken(ctx, token)
	s.client.SetToken(token)

	snap := s.set(func(st *State) {
		*st = State{Status: StatusAuthenticated, User: user}
	})
	s.log.Info(ctx, "session restored", "user_id", user.ID)
	return snap
}

// Current returns the latest state.
func (s *Store) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the current user; an empty user means no session.
func (s *Store) User() models.User {
	return s.Current().User
}

// Subscribe registers fn for every later state change and returns a function
// that removes it. Listeners are called in order, one at a time, and must not
// call mutating Store methods synchronously.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.emitMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.emitMu.Unlock()

	return func() {
		s.emitMu.Lock()
		delete(s.listeners, id)
		s.emitMu.Unlock()
	}
}

// SignIn authenticates with email and password.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	if err := validation.SignIn(models.SignInForm{Email: email, Password: password}).Err(); err != nil {
		return err
	}

	lease, err := s.Acquire(ctx, "sign in")
	if err != nil {
		return err
	}
	defer lease.Release()

	prev := s.beginAuth()
	return s.signIn(ctx, lease, prev, email, password)
}

// SignUp provisions a new account and then signs in with the same
// credentials. Account creation alone does not authenticate.
func (s *Store) SignUp(ctx context.Context, form models.SignUpForm) error {
	if err := validation.SignUp(form).Err(); err != nil {
		return err
	}

	lease, err := s.Acquire(ctx, "sign up")
	if err != nil {
		return err
	}
	defer lease.Release()

	prev := s.beginAuth()

	err = s.client.SignUp(ctx, models.SignUpRequest{Name: form.Name, Email: form.Email, Password: form.Password})
	if ctx.Err() != nil {
		s.abandon(ctx, lease, prev, "sign up")
		return apperr.Unknown(ctx.Err(), apperr.FallbackSignUp)
	}
	if err != nil {
		return s.fail(ctx, lease, prev, apperr.Classify(err, apperr.FallbackSignUp))
	}
	s.log.Info(ctx, "account created", "email", form.Email)

	return s.signIn(ctx, lease, prev, form.Email, form.Password)
}

// SignOut clears the session in memory and in storage. It is safe to call
// at any time, repeatedly.
func (s *Store) SignOut(ctx context.Context) error {
	s.set(func(st *State) {
		s.generation++
		s.client.SetToken("")
		*st = State{Status: StatusUnauthenticated}
	})

	s.writeMu.Lock()
	err := s.storage.Clear(ctx)
	s.writeMu.Unlock()

	if err != nil {
		s.log.Error(ctx, "failed to clear saved session", "error", err)
		w := apperr.Warning(err, messageSignOutNotSaved)
		notify.Error(ctx, s.notifier, w)
		return w
	}
	s.log.Info(ctx, "signed out")
	return nil
}

// UpdateUser replaces the current user with user. The new record is written
// to storage first; if that fails the in-memory user is left untouched.
// The user id must match the signed-in account.
func (s *Store) UpdateUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()
	return s.updateUser(ctx, gen, user)
}

func (s *Store) updateUser(ctx context.Context, gen uint64, user models.User) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	current := s.state.User
	stale := s.generation != gen
	s.mu.Unlock()

	if stale {
		return ErrSessionChanged
	}
	if !current.IsAuthenticated() {
		return apperr.Domain(messageNotSignedIn)
	}
	if user.ID != current.ID {
		return fmt.Errorf("update user %q: %w", user.ID, ErrSessionChanged)
	}

	if err := s.storage.Save(ctx, user); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}

	committed := false
	snap := s.setIf(func(st *State) bool {
		if s.generation != gen {
			return false
		}
		st.User = user
		committed = true
		return true
	})
	if !committed {
		return ErrSessionChanged
	}
	s.log.Info(ctx, "user updated", "user_id", snap.User.ID)
	return nil
}

func (s *Store) signIn(ctx context.Context, lease *Lease, prev State, email, password string) error {
	resp, err := s.client.SignIn(ctx, email, password)
	if ctx.Err() != nil {
		s.abandon(ctx, lease, prev, "sign in")
		return apperr.Unknown(ctx.Err(), apperr.FallbackSignIn)
	}
	if err != nil {
		return s.fail(ctx, lease, prev, apperr.Classify(err, apperr.FallbackSignIn))
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	committed := false
	s.setIf(func(st *State) bool {
		if s.generation != lease.gen {
			return false
		}
		s.generation++
		lease.gen = s.generation
		s.client.SetToken(resp.Token)
		*st = State{Status: StatusAuthenticated, User: resp.User}
		committed = true
		return true
	})
	if !committed {
		s.log.Info(ctx, "sign in result discarded, session changed meanwhile")
		return ErrSessionChanged
	}

	s.checkToken(ctx, resp.Token)
	s.log.Info(ctx, "signed in", "user_id", resp.User.ID)

	if err := s.storage.SaveSession(ctx, resp.User, resp.Token); err != nil {
		s.log.Error(ctx, "failed to save session", "error", err)
		w := apperr.Warning(err, apperr.FallbackSessionSave)
		s.setIf(func(st *State) bool {
			if s.generation != lease.gen {
				return false
			}
			st.Err = w
			return true
		})
		notify.Error(ctx, s.notifier, w)
	}
	return nil
}

// beginAuth moves to Authenticating and returns the state before it.
func (s *Store) beginAuth() State {
	var prev State
	s.set(func(st *State) {
		prev = *st
		st.Status = StatusAuthenticating
		st.Err = nil
	})
	return prev
}

// fail moves to AuthError keeping the user the session had before the attempt.
func (s *Store) fail(ctx context.Context, lease *Lease, prev State, e *apperr.Error) error {
	applied := s.setIf(func(st *State) bool {
		if s.generation != lease.gen {
			return false
		}
		*st = State{Status: StatusAuthError, User: prev.User, Err: e}
		return true
	})
	s.log.Warn(ctx, "authentication failed", "kind", e.Kind, "error", e)
	if applied.Err == e {
		notify.Error(ctx, s.notifier, e)
	}
	return e
}

// abandon restores prev after the caller went away.
func (s *Store) abandon(ctx context.Context, lease *Lease, prev State, op string) {
	s.setIf(func(st *State) bool {
		if s.generation != lease.gen {
			return false
		}
		*st = prev
		return true
	})
	s.log.Info(ctx, "operation abandoned by caller", "op", op)
}

func (s *Store) checkToken(ctx context.Context, token string) {
	if token == "" {
		return
	}
	info, err := client.InspectToken(token)
	if err != nil {
		s.log.Debug(ctx, "auth token is not a JWT", "error", err)
		return
	}
	if info.Expired(s.now()) {
		s.log.Warn(ctx, "auth token has expired", "expired_at", info.ExpiresAt)
	}
}

func (s *Store) set(fn func(*State)) State {
	return s.setIf(func(st *State) bool {
		fn(st)
		return true
	})
}

// setIf applies fn under the state lock and publishes the new snapshot when
// fn reports a change. It returns the latest snapshot either way.
func (s *Store) setIf(fn func(*State) bool) State {
	s.mu.Lock()
	changed := fn(&s.state)
	if changed {
		s.seq++
	}
	snap, seq := s.state, s.seq
	s.mu.Unlock()

	if changed {
		s.publish(snap, seq)
	}
	return snap
}

func (s *Store) publish(snap State, seq uint64) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	if seq <= s.delivered {
		return
	}
	s.delivered = seq

	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			fn(snap)
		}
	}
}
