// Package upload tracks document submissions through a simulated, tick-driven
// upload lifecycle. No bytes move anywhere; progress is a scheduled animation
// of the state the review service would report.
package upload

import (
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Glooskovint/TesisAssistantMVP/internal/domain"
	"github.com/Glooskovint/TesisAssistantMVP/internal/logging"
	"github.com/Glooskovint/TesisAssistantMVP/internal/schedule"
)

const (
	defaultTick = 200 * time.Millisecond
	defaultStep = 10
)

// Policy validates a descriptor before a submission is created. The session
// itself checks nothing; size and type rules belong to the caller.
type Policy func(domain.Descriptor) error

type entry struct {
	sub  domain.Submission
	task *schedule.Task
}

// Session tracks zero or more document submissions. Each uploading submission
// owns at most one live progress task; removing a submission cancels its task
// before the entry is dropped, so no tick ever lands on a removed id.
type Session struct {
	mu       sync.Mutex
	sched    *schedule.Scheduler
	log      *logging.Logger
	tick     time.Duration
	step     int
	policy   Policy
	onChange func()
	order    []string
	entries  map[string]*entry
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler sets the scheduler driving progress ticks.
func WithScheduler(s *schedule.Scheduler) Option {
	return func(sess *Session) { sess.sched = s }
}

// WithTick sets the progress tick interval.
func WithTick(d time.Duration) Option {
	return func(sess *Session) { sess.tick = d }
}

// WithStep sets the progress added per tick.
func WithStep(n int) Option {
	return func(sess *Session) { sess.step = n }
}

// WithPolicy sets an acceptance policy applied in Add.
func WithPolicy(p Policy) Option {
	return func(sess *Session) { sess.policy = p }
}

// WithOnChange registers a hook invoked after every committed state change,
// outside the session lock. The UI uses it to repaint.
func WithOnChange(fn func()) Option {
	return func(sess *Session) { sess.onChange = fn }
}

// New creates an empty Session.
func New(opts ...Option) *Session {
	s := &Session{
		sched:   schedule.NewSystem(),
		log:     logging.New("upload"),
		tick:    defaultTick,
		step:    defaultStep,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add accepts a picked document and starts its simulated upload. The
// submission begins at progress 0 in StatusUploading and is appended after
// existing entries.
func (s *Session) Add(desc domain.Descriptor) (domain.Submission, error) {
	if s.policy != nil {
		if err := s.policy(desc); err != nil {
			return domain.Submission{}, fmt.Errorf("document rejected: %w", err)
		}
	}

	s.mu.Lock()
	id := ulid.Make().String()
	e := &entry{sub: domain.Submission{
		ID:        id,
		FileName:  desc.FileName,
		MimeType:  desc.MimeType,
		SizeBytes: desc.SizeBytes,
		SourceRef: desc.SourceRef,
		Status:    domain.StatusUploading,
		Progress:  0,
		CreatedAt: s.sched.Now(),
	}}
	s.entries[id] = e
	s.order = append(s.order, id)
	e.task = s.sched.Every(s.tick, func() bool { return s.advance(id) })
	sub := e.sub
	s.mu.Unlock()

	s.log.Info("upload_started", map[string]interface{}{
		"id": id, "file": desc.FileName, "size": desc.SizeBytes,
	})
	s.notify()
	return sub, nil
}

// advance commits one progress tick. It stops the tick loop once the
// submission is gone or no longer uploading.
func (s *Session) advance(id string) bool {
	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok || e.sub.Status != domain.StatusUploading {
		s.mu.Unlock()
		return false
	}

	e.sub.Progress += s.step
	cont := true
	if e.sub.Progress >= 100 {
		e.sub.Progress = 100
		e.sub.Status = domain.StatusSucceeded
		e.task = nil
		cont = false
	}
	file := e.sub.FileName
	done := !cont
	s.mu.Unlock()

	if done {
		s.log.Info("upload_succeeded", map[string]interface{}{"id": id, "file": file})
	}
	s.notify()
	return cont
}

// Remove drops a submission at any status. Unknown ids are ignored. The
// progress task is cancelled before the entry disappears, so no further tick
// fires for the id.
func (s *Session) Remove(id string) bool {
	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	if e.task != nil {
		e.task.Cancel()
		e.task = nil
	}
	delete(s.entries, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notify()
	return true
}

// Fail marks a submission failed on an externally reported error, stopping
// its progress. There is no internal failure path and no retry.
func (s *Session) Fail(id, reason string) bool {
	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	if e.task != nil {
		e.task.Cancel()
		e.task = nil
	}
	e.sub.Status = domain.StatusFailed
	e.sub.Reason = reason
	file := e.sub.FileName
	s.mu.Unlock()

	s.log.Warn("upload_failed", map[string]interface{}{"id": id, "file": file, "reason": reason}, nil)
	s.notify()
	return true
}

// Submissions returns a snapshot of all submissions in insertion order.
func (s *Session) Submissions() []domain.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Submission, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id].sub)
	}
	return out
}

// Get returns a submission by id.
func (s *Session) Get(id string) (domain.Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return domain.Submission{}, false
	}
	return e.sub, true
}

// Uploading reports whether any submission is still in flight.
func (s *Session) Uploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.sub.Status == domain.StatusUploading {
			return true
		}
	}
	return false
}

// Len returns the number of tracked submissions.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Close cancels every live progress task. Submissions keep their last state;
// the session is expected to be discarded afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.task != nil {
			e.task.Cancel()
			e.task = nil
		}
	}
}

func (s *Session) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
