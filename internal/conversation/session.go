// Package conversation implements the simulated advisor chat: an append-only
// message log plus one scheduled, randomized auto-reply per unanswered turn.
package conversation

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Glooskovint/TesisAssistantMVP/internal/domain"
	"github.com/Glooskovint/TesisAssistantMVP/internal/logging"
	"github.com/Glooskovint/TesisAssistantMVP/internal/schedule"
)

// Canned advisor replies, picked uniformly at random. They carry no semantic
// relation to the user's message; this is a simulation, not an assistant.
var defaultReplies = []string{
	"Perfecto, puedo ayudarte con eso. ¿Podrías contarme más detalles?",
	"Excelente pregunta. Te recomiendo que primero revisemos la estructura.",
	"Claro, ese es un tema muy importante en las tesis. ¿Ya tienes definida tu metodología?",
	"Me parece muy bien. ¿Te gustaría agendar una consulta para profundizar más?",
	"Entiendo tu preocupación. Es normal en esta etapa del proceso.",
}

const (
	defaultMinReplyDelay = 1 * time.Second
	defaultMaxReplyDelay = 3 * time.Second
)

// Session owns the message log for one advisor conversation and simulates the
// advisor's side with a delayed reply. Methods are safe for concurrent use;
// state changes only inside the session lock, so a reply timer can never
// mutate a log the caller has already reset or dismissed.
type Session struct {
	mu          sync.Mutex
	sched       *schedule.Scheduler
	rng         *rand.Rand
	log         *logging.Logger
	counterpart domain.Counterpart
	messages    []domain.Message
	pending     *schedule.Task
	replyGen    uint64
	replies     []string
	minDelay    time.Duration
	maxDelay    time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler sets the scheduler driving reply timers.
func WithScheduler(s *schedule.Scheduler) Option {
	return func(sess *Session) { sess.sched = s }
}

// WithRand sets the random source used for reply choice and delay.
// Pass a seeded source to make the conversation deterministic.
func WithRand(r *rand.Rand) Option {
	return func(sess *Session) { sess.rng = r }
}

// WithReplies replaces the canned reply set.
func WithReplies(replies ...string) Option {
	return func(sess *Session) { sess.replies = replies }
}

// WithReplyDelay sets the [min, max) window a reply is drawn from.
func WithReplyDelay(min, max time.Duration) Option {
	return func(sess *Session) {
		sess.minDelay = min
		sess.maxDelay = max
	}
}

// New creates a Session opened on the given advisor, seeded with the
// advisor's greeting.
func New(counterpart domain.Counterpart, opts ...Option) *Session {
	s := &Session{
		sched:    schedule.NewSystem(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      logging.New("conversation"),
		replies:  defaultReplies,
		minDelay: defaultMinReplyDelay,
		maxDelay: defaultMaxReplyDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Open(counterpart)
	return s
}

// Open resets the log to the advisor's single greeting message. Any reply
// still pending from the previous conversation is cancelled first.
func (s *Session) Open(counterpart domain.Counterpart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.counterpart = counterpart
	s.messages = []domain.Message{{
		ID:        uuid.NewString(),
		Text:      "¡Hola! Soy " + counterpart.Name + ". ¿En qué puedo ayudarte con tu tesis?",
		Sender:    domain.SenderAdvisor,
		Timestamp: s.sched.Now(),
	}}
}

// Send appends a user message and schedules the advisor's reply.
// Whitespace-only text is ignored without error, mirroring the disabled send
// button. Sending again while a reply is already pending does not stack a
// second timer; the one pending reply answers the accumulated turn.
func (s *Session) Send(text string) (domain.Message, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.Message{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := domain.Message{
		ID:        uuid.NewString(),
		Text:      trimmed,
		Sender:    domain.SenderUser,
		Timestamp: s.sched.Now(),
	}
	s.messages = append(s.messages, msg)

	if s.pending == nil {
		delay := s.minDelay
		if s.maxDelay > s.minDelay {
			delay += time.Duration(s.rng.Int63n(int64(s.maxDelay - s.minDelay)))
		}
		s.replyGen++
		gen := s.replyGen
		s.pending = s.sched.After(delay, func() { s.reply(gen) })
		s.log.Debug("reply_scheduled", map[string]interface{}{
			"advisor":  s.counterpart.Name,
			"delay_ms": delay.Milliseconds(),
		})
	}

	return msg, true
}

// reply appends the advisor's canned response. The generation check makes it
// a no-op when the session was reset or the reply cancelled after scheduling.
func (s *Session) reply(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil || gen != s.replyGen {
		return
	}
	s.pending = nil
	s.messages = append(s.messages, domain.Message{
		ID:        uuid.NewString(),
		Text:      s.replies[s.rng.Intn(len(s.replies))],
		Sender:    domain.SenderAdvisor,
		Timestamp: s.sched.Now(),
	})
}

// Cancel drops any pending reply. Safe to call repeatedly or when nothing is
// pending.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *Session) cancelLocked() {
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
}

// Close dismisses the conversation. Equivalent to Cancel; the log is simply
// discarded with the session.
func (s *Session) Close() {
	s.Cancel()
}

// Pending reports whether an advisor reply is currently scheduled.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Messages returns a snapshot of the log in append order.
func (s *Session) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the log.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Counterpart returns the advisor identity this conversation is held with.
func (s *Session) Counterpart() domain.Counterpart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counterpart
}
