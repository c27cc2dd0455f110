// Package identity manages the signed-in user against a local account store.
package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Glooskovint/TesisAssistantMVP/internal/domain"
	"github.com/Glooskovint/TesisAssistantMVP/internal/logging"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrEmailTaken         = errors.New("email already registered")
)

// Store is the persistence the provider needs. *storage.Storage satisfies it.
type Store interface {
	CreateUser(ctx context.Context, user domain.User, passwordHash string) error
	GetUserByEmail(ctx context.Context, email string) (domain.User, string, error)
	UpdateUser(ctx context.Context, user domain.User) error
}

// Provider authenticates and tracks the current user.
type Provider interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	Register(ctx context.Context, name, email, password string) (domain.User, error)
	Logout()
	CurrentUser() (domain.User, bool)
	UpdateUser(ctx context.Context, user domain.User) error
	OnChange(fn func()) (remove func())
}

// LocalProvider keeps accounts in the local store with sha256 password
// hashing. Good enough for a single-user desktop profile; not a server.
type LocalProvider struct {
	mu        sync.Mutex
	store     Store
	log       *logging.Logger
	current   *domain.User
	listeners map[int]func()
	nextID    int
}

func NewLocal(store Store) *LocalProvider {
	return &LocalProvider{
		store:     store,
		log:       logging.New("identity"),
		listeners: make(map[int]func()),
	}
}

func (p *LocalProvider) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, hash, err := p.store.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}
	if hashPassword(password) != hash {
		return domain.User{}, ErrInvalidCredentials
	}

	p.mu.Lock()
	p.current = &user
	p.mu.Unlock()

	p.log.WithUser(user.ID).Info("login", nil)
	p.notify()
	return user, nil
}

func (p *LocalProvider) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	if _, _, err := p.store.GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	user := domain.User{ID: uuid.NewString(), Email: email, Name: name}
	if err := p.store.CreateUser(ctx, user, hashPassword(password)); err != nil {
		return domain.User{}, err
	}

	p.mu.Lock()
	p.current = &user
	p.mu.Unlock()

	p.log.WithUser(user.ID).Info("registered", nil)
	p.notify()
	return user, nil
}

func (p *LocalProvider) Logout() {
	p.mu.Lock()
	signedIn := p.current != nil
	p.current = nil
	p.mu.Unlock()

	if signedIn {
		p.log.Info("logout", nil)
		p.notify()
	}
}

func (p *LocalProvider) CurrentUser() (domain.User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return domain.User{}, false
	}
	return *p.current, true
}

// UpdateUser persists profile edits for the signed-in user.
func (p *LocalProvider) UpdateUser(ctx context.Context, user domain.User) error {
	p.mu.Lock()
	if p.current == nil || p.current.ID != user.ID {
		p.mu.Unlock()
		return ErrNotSignedIn
	}
	p.mu.Unlock()

	if err := p.store.UpdateUser(ctx, user); err != nil {
		return err
	}

	p.mu.Lock()
	p.current = &user
	p.mu.Unlock()

	p.notify()
	return nil
}

// OnChange registers a listener invoked after every auth state change. The
// returned func removes it.
func (p *LocalProvider) OnChange(fn func()) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

func (p *LocalProvider) notify() {
	p.mu.Lock()
	fns := make([]func(), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
