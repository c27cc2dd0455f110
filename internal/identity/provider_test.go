package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/Glooskovint/TesisAssistantMVP/internal/storage"
)

var _ Provider = (*LocalProvider)(nil)

func newTestProvider(t *testing.T) *LocalProvider {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return NewLocal(store)
}

func TestRegisterSignsIn(t *testing.T) {
	p := newTestProvider(t)

	user, err := p.Register(context.Background(), "María", "maria@example.com", "secreta")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID == "" {
		t.Error("expected generated user id")
	}

	current, ok := p.CurrentUser()
	if !ok {
		t.Fatal("no current user after register")
	}
	if current.Email != "maria@example.com" {
		t.Errorf("email = %q", current.Email)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	if _, err := p.Register(ctx, "A", "x@example.com", "pw"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Register(ctx, "B", "x@example.com", "pw2"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	p := newTestProvider(t)
	if _, err := p.Register(context.Background(), " ", "x@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	if _, err := p.Register(ctx, "María", "maria@example.com", "secreta"); err != nil {
		t.Fatal(err)
	}
	p.Logout()
	if _, ok := p.CurrentUser(); ok {
		t.Fatal("still signed in after logout")
	}

	user, err := p.Login(ctx, "  MARIA@example.com ", "secreta")
	if err != nil {
		t.Fatal(err)
	}
	if user.Name != "María" {
		t.Errorf("name = %q", user.Name)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	p.Register(ctx, "María", "maria@example.com", "secreta")
	p.Logout()

	if _, err := p.Login(ctx, "maria@example.com", "incorrecta"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := p.Login(ctx, "nadie@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateUser(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	user, err := p.Register(ctx, "María", "maria@example.com", "secreta")
	if err != nil {
		t.Fatal(err)
	}

	user.Name = "María González"
	user.AvatarRef = "avatar.png"
	if err := p.UpdateUser(ctx, user); err != nil {
		t.Fatal(err)
	}
	current, _ := p.CurrentUser()
	if current.Name != "María González" {
		t.Errorf("name = %q", current.Name)
	}

	p.Logout()
	if err := p.UpdateUser(ctx, user); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("err = %v, want ErrNotSignedIn", err)
	}
}

func TestOnChange(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	var events int
	remove := p.OnChange(func() { events++ })

	p.Register(ctx, "María", "maria@example.com", "secreta") // 1
	p.Logout()                                               // 2
	p.Logout()                                               // no-op, already out
	if events != 2 {
		t.Fatalf("events = %d, want 2", events)
	}

	remove()
	p.Login(ctx, "maria@example.com", "secreta")
	if events != 2 {
		t.Errorf("removed listener still fired, events = %d", events)
	}
}

func TestCurrentUserIsCopy(t *testing.T) {
	p := newTestProvider(t)
	p.Register(context.Background(), "María", "maria@example.com", "secreta")

	current, _ := p.CurrentUser()
	current.Name = "tampered"
	again, _ := p.CurrentUser()
	if again.Name != "María" {
		t.Error("CurrentUser leaked internal state")
	}
}
