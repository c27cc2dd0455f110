package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/Glooskovint/TesisAssistantMVP/internal/schedule"
)

var validCard = Card{
	Number: "4242 4242 4242 4242",
	Name:   "María González",
	Expiry: "12/27",
	CVV:    "123",
}

func TestRequestSucceedsAfterDelay(t *testing.T) {
	p := New(WithDelay(10 * time.Millisecond))

	start := time.Now()
	out, err := p.Request(context.Background(), validCard, "$50/hora", "agendar sesión")
	if err != nil {
		t.Fatal(err)
	}
	if out != Succeeded {
		t.Errorf("outcome = %s, want %s", out, Succeeded)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Error("request returned before the processing delay")
	}
}

func TestRequestCanceledByContext(t *testing.T) {
	mock := clock.NewMock()
	p := New(WithScheduler(schedule.New(mock)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := p.Request(ctx, validCard, "$25 USD", "revisión de documento")
	if err != nil {
		t.Fatal(err)
	}
	if out != Canceled {
		t.Errorf("outcome = %s, want %s", out, Canceled)
	}
}

func TestRequestRejectsIncompleteCard(t *testing.T) {
	p := New()
	cards := []Card{
		{},
		{Number: "4242", Name: "X", Expiry: "12/27"},
		{Number: "4242", Name: "  ", Expiry: "12/27", CVV: "123"},
	}
	for _, card := range cards {
		if _, err := p.Request(context.Background(), card, "$25 USD", "test"); !errors.Is(err, ErrIncomplete) {
			t.Errorf("card %+v: err = %v, want ErrIncomplete", card, err)
		}
	}
}

func TestFormatCardNumber(t *testing.T) {
	cases := map[string]string{
		"":                     "",
		"4242":                 "4242",
		"42424":                "4242 4",
		"4242424242424242":     "4242 4242 4242 4242",
		"4242-4242-4242-4242":  "4242 4242 4242 4242",
		"42424242424242424242": "4242 4242 4242 4242",
	}
	for in, want := range cases {
		if got := FormatCardNumber(in); got != want {
			t.Errorf("FormatCardNumber(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatExpiry(t *testing.T) {
	cases := map[string]string{
		"":      "",
		"1":     "1",
		"12":    "12",
		"122":   "12/2",
		"1227":  "12/27",
		"12/27": "12/27",
		"12279": "12/27",
	}
	for in, want := range cases {
		if got := FormatExpiry(in); got != want {
			t.Errorf("FormatExpiry(%q) = %q, want %q", in, got, want)
		}
	}
}
