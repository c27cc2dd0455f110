package upload

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/Glooskovint/TesisAssistantMVP/internal/domain"
	"github.com/Glooskovint/TesisAssistantMVP/internal/schedule"
)

func newTestSession(t *testing.T, opts ...Option) (*Session, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	opts = append([]Option{WithScheduler(schedule.New(mock))}, opts...)
	return New(opts...), mock
}

func testDoc(name string) domain.Descriptor {
	return domain.Descriptor{
		FileName:  name,
		MimeType:  "application/pdf",
		SizeBytes: 2048,
		SourceRef: "/tmp/" + name,
	}
}

func TestAddStartsAtZeroUploading(t *testing.T) {
	s, _ := newTestSession(t)

	sub, err := s.Add(testDoc("tesis.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if sub.Status != domain.StatusUploading {
		t.Errorf("status = %s, want %s", sub.Status, domain.StatusUploading)
	}
	if sub.Progress != 0 {
		t.Errorf("progress = %d, want 0", sub.Progress)
	}
	if sub.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestProgressAdvancesPerTick(t *testing.T) {
	s, mock := newTestSession(t)
	sub, _ := s.Add(testDoc("tesis.pdf"))

	mock.Add(time.Second) // 5 ticks at 200ms
	got, ok := s.Get(sub.ID)
	if !ok {
		t.Fatal("submission vanished")
	}
	if got.Progress != 50 {
		t.Errorf("progress after 5 ticks = %d, want 50", got.Progress)
	}
	if got.Status != domain.StatusUploading {
		t.Errorf("status = %s, want %s", got.Status, domain.StatusUploading)
	}
}

func TestCompletesAtHundred(t *testing.T) {
	s, mock := newTestSession(t)
	sub, _ := s.Add(testDoc("tesis.pdf"))

	mock.Add(2 * time.Second) // 10 ticks
	got, _ := s.Get(sub.ID)
	if got.Progress != 100 {
		t.Errorf("progress = %d, want 100", got.Progress)
	}
	if got.Status != domain.StatusSucceeded {
		t.Errorf("status = %s, want %s", got.Status, domain.StatusSucceeded)
	}

	// Further time never moves a finished submission.
	mock.Add(10 * time.Second)
	got, _ = s.Get(sub.ID)
	if got.Progress != 100 || got.Status != domain.StatusSucceeded {
		t.Errorf("finished submission changed: %+v", got)
	}
}

func TestProgressNeverExceedsHundred(t *testing.T) {
	s, mock := newTestSession(t, WithStep(30))
	sub, _ := s.Add(testDoc("tesis.pdf"))

	for i := 0; i < 10; i++ {
		mock.Add(200 * time.Millisecond)
		got, _ := s.Get(sub.ID)
		if got.Progress > 100 {
			t.Fatalf("progress overshot: %d", got.Progress)
		}
	}
	got, _ := s.Get(sub.ID)
	if got.Progress != 100 || got.Status != domain.StatusSucceeded {
		t.Errorf("submission did not finish cleanly: %+v", got)
	}
}

func TestRemoveMidUploadStopsTicks(t *testing.T) {
	s, mock := newTestSession(t)
	sub, _ := s.Add(testDoc("tesis.pdf"))

	mock.Add(600 * time.Millisecond) // 3 ticks, 30%
	if !s.Remove(sub.ID) {
		t.Fatal("remove failed")
	}
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}

	// No tick may land after removal.
	mock.Add(10 * time.Second)
	if _, ok := s.Get(sub.ID); ok {
		t.Error("removed submission came back")
	}
	if s.Len() != 0 {
		t.Errorf("len after idle time = %d, want 0", s.Len())
	}
}

func TestRemoveUnknownID(t *testing.T) {
	s, _ := newTestSession(t)
	if s.Remove("nope") {
		t.Error("remove of unknown id reported true")
	}
}

func TestFailStopsProgressAndRecordsReason(t *testing.T) {
	s, mock := newTestSession(t)
	sub, _ := s.Add(testDoc("tesis.pdf"))

	mock.Add(400 * time.Millisecond)
	if !s.Fail(sub.ID, "revisión rechazada") {
		t.Fatal("fail did not find the submission")
	}
	got, _ := s.Get(sub.ID)
	if got.Status != domain.StatusFailed {
		t.Errorf("status = %s, want %s", got.Status, domain.StatusFailed)
	}
	if got.Reason != "revisión rechazada" {
		t.Errorf("reason = %q", got.Reason)
	}
	before := got.Progress

	mock.Add(5 * time.Second)
	got, _ = s.Get(sub.ID)
	if got.Progress != before {
		t.Errorf("failed submission kept progressing: %d -> %d", before, got.Progress)
	}
}

func TestPolicyRejection(t *testing.T) {
	wantErr := errors.New("demasiado grande")
	s, _ := newTestSession(t, WithPolicy(func(d domain.Descriptor) error {
		if d.SizeBytes > 1024 {
			return wantErr
		}
		return nil
	}))

	_, err := s.Add(testDoc("tesis.pdf"))
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped %v", err, wantErr)
	}
	if s.Len() != 0 {
		t.Errorf("rejected document was tracked, len = %d", s.Len())
	}
}

func TestSubmissionsKeepInsertionOrder(t *testing.T) {
	s, mock := newTestSession(t)
	for i := 0; i < 3; i++ {
		if _, err := s.Add(testDoc(fmt.Sprintf("doc%d.pdf", i))); err != nil {
			t.Fatal(err)
		}
	}
	mock.Add(2 * time.Second)

	subs := s.Submissions()
	if len(subs) != 3 {
		t.Fatalf("len = %d, want 3", len(subs))
	}
	for i, sub := range subs {
		want := fmt.Sprintf("doc%d.pdf", i)
		if sub.FileName != want {
			t.Errorf("subs[%d] = %s, want %s", i, sub.FileName, want)
		}
	}
}

func TestIndependentProgress(t *testing.T) {
	s, mock := newTestSession(t)
	a, _ := s.Add(testDoc("a.pdf"))

	mock.Add(time.Second) // a at 50
	b, _ := s.Add(testDoc("b.pdf"))
	mock.Add(400 * time.Millisecond)

	gotA, _ := s.Get(a.ID)
	gotB, _ := s.Get(b.ID)
	if gotA.Progress != 70 {
		t.Errorf("a progress = %d, want 70", gotA.Progress)
	}
	if gotB.Progress != 20 {
		t.Errorf("b progress = %d, want 20", gotB.Progress)
	}
}

func TestUploading(t *testing.T) {
	s, mock := newTestSession(t)
	if s.Uploading() {
		t.Error("empty session reports uploading")
	}
	s.Add(testDoc("tesis.pdf"))
	if !s.Uploading() {
		t.Error("active session reports idle")
	}
	mock.Add(2 * time.Second)
	if s.Uploading() {
		t.Error("finished session reports uploading")
	}
}

func TestOnChangeFiresPerCommit(t *testing.T) {
	var events int
	s, mock := newTestSession(t, WithOnChange(func() { events++ }))

	s.Add(testDoc("tesis.pdf"))
	if events != 1 {
		t.Fatalf("events after add = %d, want 1", events)
	}
	mock.Add(2 * time.Second)
	if events != 11 { // add + 10 ticks
		t.Errorf("events after completion = %d, want 11", events)
	}
}

func TestCloseStopsAllTasks(t *testing.T) {
	s, mock := newTestSession(t)
	a, _ := s.Add(testDoc("a.pdf"))
	b, _ := s.Add(testDoc("b.pdf"))
	mock.Add(400 * time.Millisecond)

	s.Close()
	mock.Add(5 * time.Second)

	gotA, _ := s.Get(a.ID)
	gotB, _ := s.Get(b.ID)
	if gotA.Progress != 20 || gotB.Progress != 20 {
		t.Errorf("progress moved after close: a=%d b=%d", gotA.Progress, gotB.Progress)
	}
}
