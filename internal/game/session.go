// internal/game/session.go
package game

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joedrago/clue/internal/cache"
	"github.com/joedrago/clue/internal/render"
	"github.com/joedrago/clue/internal/script"
	"github.com/joedrago/clue/internal/solver"
	"github.com/sirupsen/logrus"
)

// Publisher receives one record per journaled step. *cache.Queue satisfies it.
type Publisher interface {
	Publish(ctx context.Context, record cache.DeductionRecord) error
}

// Store keeps the final snapshot of a session. *database.Store satisfies it.
type Store interface {
	SaveSession(ctx context.Context, id uuid.UUID, solved bool, snapshot []byte) error
}

type Options struct {
	MaxPlayers int
	Logger     logrus.FieldLogger
	Publisher  Publisher
	Store      Store
}

// Session is one deduction run: a solver with an ID, plus whatever observes it.
type Session struct {
	ID     uuid.UUID
	Solver *solver.Solver

	log       logrus.FieldLogger
	publisher Publisher
	store     Store
	describe  *render.Renderer

	listeners []func(solver.Event)
	seq       int
	publishWg sync.WaitGroup
}

func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	id := uuid.New()
	log := opts.Logger.WithField("session", id)

	s := &Session{
		ID:        id,
		log:       log,
		publisher: opts.Publisher,
		store:     opts.Store,
	}
	s.Solver = solver.New(solver.Config{MaxPlayers: opts.MaxPlayers, Logger: log})
	s.describe = render.New(io.Discard, render.Plain, s.Solver)
	s.Solver.OnEvent = s.dispatch
	return s
}

// Listen registers fn to be called, in order, for every solver event.
func (s *Session) Listen(fn func(solver.Event)) {
	s.listeners = append(s.listeners, fn)
}

// LoadFile runs a script from disk. Includes are honoured.
func (s *Session) LoadFile(path string) error {
	return script.NewLoader(s.Solver, s.log).LoadFile(path)
}

// LoadScript runs a script from r. Includes are refused, since r does not come from
// a file the include path could be relative to.
func (s *Session) LoadScript(name string, r io.Reader) error {
	l := script.NewLoader(s.Solver, s.log)
	l.DisableInclude = true
	return l.Load(name, r)
}

func (s *Session) dispatch(ev solver.Event) {
	if s.publisher != nil {
		s.logEvent(ev)
	}
	for _, fn := range s.listeners {
		fn(ev)
	}
}

// logEvent publishes a record of ev without blocking the solver.
func (s *Session) logEvent(ev solver.Event) {
	record := cache.DeductionRecord{
		SessionID: s.ID,
		Seq:       s.seq,
		Type:      string(ev.Type),
		Subject:   Subject(ev),
		Detail:    s.describe.Describe(ev),
		Timestamp: time.Now().UnixMilli(),
	}
	s.seq++

	s.publishWg.Add(1)
	go func(rec cache.DeductionRecord) {
		defer s.publishWg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.publisher.Publish(ctx, rec); err != nil {
			s.log.WithError(err).WithField("seq", rec.Seq).Warn("publish deduction")
		}
	}(record)
}

// Subject names the card or player an event is about.
func Subject(ev solver.Event) string {
	if ev.Card != nil {
		return ev.Card.Name
	}
	if ev.Player != nil {
		return ev.Player.Name
	}
	return ""
}

// Finish waits for queued records to be published and stores the snapshot.
func (s *Session) Finish(ctx context.Context) error {
	s.publishWg.Wait()
	if s.store == nil {
		return nil
	}
	snap := s.Snapshot()
	data, err := snap.JSON()
	if err != nil {
		return err
	}
	if err := s.store.SaveSession(ctx, s.ID, snap.Solved, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
