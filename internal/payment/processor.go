// Package payment simulates the checkout step that gates advisor scheduling
// and document review. No gateway is contacted; the processor validates the
// form, waits a fixed processing delay, and reports success.
package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Glooskovint/TesisAssistantMVP/internal/logging"
	"github.com/Glooskovint/TesisAssistantMVP/internal/schedule"
)

// Outcome is the terminal state of a payment attempt.
type Outcome string

const (
	Succeeded Outcome = "succeeded"
	Canceled  Outcome = "canceled"
)

// Card is the checkout form. Every field must be non-empty.
type Card struct {
	Number string
	Name   string
	Expiry string
	CVV    string
}

// ErrIncomplete is returned when a card field is missing.
var ErrIncomplete = errors.New("incomplete card details")

const defaultProcessingDelay = 2 * time.Second

// Processor runs simulated charges.
type Processor struct {
	sched *schedule.Scheduler
	log   *logging.Logger
	delay time.Duration
}

// Option configures a Processor.
type Option func(*Processor)

// WithScheduler sets the scheduler whose clock paces the processing delay.
func WithScheduler(s *schedule.Scheduler) Option {
	return func(p *Processor) { p.sched = s }
}

// WithDelay overrides the simulated processing delay.
func WithDelay(d time.Duration) Option {
	return func(p *Processor) { p.delay = d }
}

// New creates a Processor.
func New(opts ...Option) *Processor {
	p := &Processor{
		sched: schedule.NewSystem(),
		log:   logging.New("payment"),
		delay: defaultProcessingDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Request charges the card for the labelled amount. It blocks for the
// processing delay and returns Succeeded, or Canceled if ctx ends first.
// Validation errors return before any delay.
func (p *Processor) Request(ctx context.Context, card Card, amountLabel, description string) (Outcome, error) {
	if strings.TrimSpace(card.Number) == "" ||
		strings.TrimSpace(card.Name) == "" ||
		strings.TrimSpace(card.Expiry) == "" ||
		strings.TrimSpace(card.CVV) == "" {
		return "", ErrIncomplete
	}

	p.log.Info("payment_requested", map[string]interface{}{
		"amount": amountLabel, "for": description,
	})

	select {
	case <-ctx.Done():
		p.log.Info("payment_canceled", map[string]interface{}{"amount": amountLabel})
		return Canceled, nil
	case <-p.sched.Clock().After(p.delay):
		p.log.Info("payment_succeeded", map[string]interface{}{
			"amount": amountLabel, "for": description,
		})
		return Succeeded, nil
	}
}

// FormatCardNumber groups digits in blocks of four for display, dropping any
// non-digit input.
func FormatCardNumber(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) > 16 {
		d = d[:16]
	}

	var out strings.Builder
	for i, r := range d {
		if i > 0 && i%4 == 0 {
			out.WriteByte(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

// FormatExpiry renders digits as MM/YY while typing.
func FormatExpiry(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) > 4 {
		d = d[:4]
	}
	if len(d) <= 2 {
		return d
	}
	return d[:2] + "/" + d[2:]
}
