package checkin

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tecnosoft/academy/internal/model"
	"github.com/tecnosoft/academy/internal/store"
)

// Default sampling parameters. The interval stands in for the display
// refresh cadence of the original kiosk; the window is the debounce
// duration after accepting a payload.
const (
	DefaultSuppressionWindow = 3 * time.Second
	DefaultSampleInterval    = 33 * time.Millisecond
)

// Options configures a Session. Zero values select the system clock, the
// default suppression window, and no announcer.
type Options struct {
	Clock     Clock
	Window    time.Duration
	Announcer Announcer
}

// Session is the check-in state machine.
//
// A session is Idle until Run is called with an open payload source, and
// returns to Idle when Run returns. While scanning, each polled payload is
// compared against the last-accepted value: within the suppression window
// an identical payload is ignored; anything else is accepted, restarts the
// window, and goes through reconciliation. Reconciliation silently
// discards payloads that don't parse as a student reference or that name
// an unknown student - foreign barcodes are expected noise, not errors.
//
// Stop halts the session synchronously: no further sampling iterations are
// scheduled and the source is closed before Stop returns. An in-flight
// iteration may still complete.
type Session struct {
	store     *store.Store
	clock     Clock
	window    time.Duration
	announcer Announcer

	mu            sync.Mutex
	students      map[int64]model.Student
	lastPayload   string
	suppressUntil time.Time
	src           PayloadSource
	stopped       bool

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewSession creates a session over the shared record store.
func NewSession(st *store.Store, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Window <= 0 {
		opts.Window = DefaultSuppressionWindow
	}
	if opts.Announcer == nil {
		opts.Announcer = NopAnnouncer{}
	}
	return &Session{
		store:     st,
		clock:     opts.Clock,
		window:    opts.Window,
		announcer: opts.Announcer,
		students:  map[int64]model.Student{},
		stopCh:    make(chan struct{}),
	}
}

// LoadStudents snapshots the student roster that scanned identities are
// resolved against. Call before Run; identities inserted afterwards are
// not visible to the running session until the next LoadStudents.
func (s *Session) LoadStudents(ctx context.Context) error {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return err
	}

	roster := make(map[int64]model.Student, len(students))
	for _, st := range students {
		roster[st.StudentID] = st
	}

	s.mu.Lock()
	s.students = roster
	s.mu.Unlock()
	return nil
}

// ResolveStudent looks up an identity in the loaded roster.
func (s *Session) ResolveStudent(id int64) (model.Student, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	return st, ok
}

// HandlePayload processes one decoded payload: debounce, parse, resolve,
// record. Returns true when an attendance record was created. Malformed
// and unknown payloads return (false, nil) - they are dropped without
// surfacing anything to the operator.
func (s *Session) HandlePayload(ctx context.Context, payload string) (bool, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return false, nil
	}

	now := s.clock.Now()

	s.mu.Lock()
	if payload == s.lastPayload && now.Before(s.suppressUntil) {
		s.mu.Unlock()
		return false, nil
	}
	// New event: remember it and restart the suppression window, whether
	// or not it reconciles to a student.
	s.lastPayload = payload
	s.suppressUntil = now.Add(s.window)
	s.mu.Unlock()

	id, ok := ParsePayload(payload)
	if !ok {
		return false, nil
	}
	student, ok := s.ResolveStudent(id)
	if !ok {
		return false, nil
	}

	if _, err := s.RecordAttendance(ctx, student); err != nil {
		return false, err
	}
	return true, nil
}

// RecordAttendance creates a check-in record for the student dated today,
// then announces the student by name. Shared by the scan path and manual
// selection; deliberately not idempotent - checking in the same student
// twice in one day creates two records.
func (s *Session) RecordAttendance(ctx context.Context, student model.Student) (model.AttendanceRecord, error) {
	rec := model.NewAttendanceRecord(student, s.clock.Now())
	if err := s.store.InsertAttendance(ctx, &rec); err != nil {
		return model.AttendanceRecord{}, err
	}
	s.announcer.Announce(student.Name)
	return rec, nil
}

// Run drives the sampling loop: once per interval, poll the source for a
// decoded payload and hand it to HandlePayload. Run owns src and closes it
// on every exit path. It returns nil when stopped or when the source is
// exhausted, ctx.Err() on cancellation, and the underlying error when the
// source or the store fails.
func (s *Session) Run(ctx context.Context, src PayloadSource, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return src.Close()
	}
	s.src = src
	s.mu.Unlock()
	defer src.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			payload, ok, err := src.Poll()
			if err != nil {
				if errors.Is(err, ErrSourceClosed) {
					return nil
				}
				return err
			}
			if !ok {
				continue
			}
			if _, err := s.HandlePayload(ctx, payload); err != nil {
				return err
			}
		}
	}
}

// Stop halts the session synchronously. No further iterations are
// scheduled after Stop returns, and the capture source is released before
// returning. Safe to call more than once, and before Run.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		src := s.src
		s.mu.Unlock()

		close(s.stopCh)
		if src != nil {
			src.Close()
		}
	})
}
