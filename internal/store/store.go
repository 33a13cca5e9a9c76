package store

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/metrics"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/repositories"
	"github.com/jonboulle/clockwork"
)

const saveTimeout = 15 * time.Second

// Store owns the in-memory application state and its persistence. All
// mutations go through Update, which serializes admin actions under one lock
// and schedules an asynchronous save of a snapshot.
//
// Saves are coalesced: one write in flight, at most one pending snapshot, and
// a newer snapshot replaces the pending one. A slow write can therefore never
// clobber the result of a later fast one.
type Store struct {
	repo  repositories.StateRepository
	clock clockwork.Clock

	mu    sync.Mutex
	state *models.AppState

	saveCh  chan *models.AppState
	quit    chan struct{}
	stopped chan struct{}

	syncErr atomic.Bool
}

// Open loads the persisted state and starts the background saver. A missing
// or unreadable store degrades to the fresh-install state; a load error is
// reported through SyncError, never fatal.
func Open(ctx context.Context, repo repositories.StateRepository, clock clockwork.Clock) *Store {
	s := &Store{
		repo:    repo,
		clock:   clock,
		saveCh:  make(chan *models.AppState, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	state, err := repo.Load(ctx)
	if err != nil {
		slog.Error("Failed to load persisted state, starting from defaults", "error", err)
		s.syncErr.Store(true)
	}
	if state == nil {
		state = models.NewAppState(clock.Now())
	}
	state.Normalize()
	s.state = state

	go s.saver()
	return s
}

// View runs fn with read access to the state.
func (s *Store) View(fn func(state *models.AppState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Update runs fn with write access to the state. When fn succeeds a snapshot
// is queued for persistence; when it fails the state is assumed untouched and
// nothing is written.
func (s *Store) Update(fn func(state *models.AppState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.state); err != nil {
		return err
	}
	s.schedule(s.state.Clone())
	return nil
}

// SyncError reports whether the most recent load or save failed. The next
// successful save clears it.
func (s *Store) SyncError() bool {
	return s.syncErr.Load()
}

// schedule queues a snapshot, replacing any pending one.
func (s *Store) schedule(snap *models.AppState) {
	for {
		select {
		case s.saveCh <- snap:
			return
		default:
			// Slot occupied by an older snapshot; drop it and retry.
			select {
			case <-s.saveCh:
			default:
			}
		}
	}
}

func (s *Store) saver() {
	defer close(s.stopped)
	for {
		select {
		case snap := <-s.saveCh:
			s.write(snap)
		case <-s.quit:
			// Flush a possibly pending snapshot before exiting.
			select {
			case snap := <-s.saveCh:
				s.write(snap)
			default:
			}
			return
		}
	}
}

func (s *Store) write(snap *models.AppState) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.repo.Save(ctx, snap); err != nil {
		slog.Error("Failed to persist state", "error", err)
		metrics.SaveErrors.Inc()
		s.syncErr.Store(true)
		return
	}
	s.syncErr.Store(false)
}

// Close stops the saver after flushing any pending snapshot.
func (s *Store) Close() {
	close(s.quit)
	<-s.stopped
}
