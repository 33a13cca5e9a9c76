package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
	"github.com/jonboulle/clockwork"
)

type fakeRepo struct {
	mu      sync.Mutex
	state   *models.AppState
	loadErr error
	saveErr error
	saved   chan *models.AppState
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{saved: make(chan *models.AppState, 16)}
}

func (r *fakeRepo) Load(ctx context.Context) (*models.AppState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.loadErr
}

func (r *fakeRepo) Save(ctx context.Context, state *models.AppState) error {
	r.mu.Lock()
	err := r.saveErr
	r.mu.Unlock()
	if err != nil {
		return err
	}
	r.saved <- state
	return nil
}

func (r *fakeRepo) setSaveErr(err error) {
	r.mu.Lock()
	r.saveErr = err
	r.mu.Unlock()
}

func waitForSave(t *testing.T, repo *fakeRepo) *models.AppState {
	t.Helper()
	select {
	case snap := <-repo.saved:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for a save")
		return nil
	}
}

func TestOpen_FreshInstall(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s := Open(context.Background(), newFakeRepo(), clock)
	defer s.Close()

	s.View(func(state *models.AppState) {
		if len(state.Assignments) != 0 || len(state.MatchHistory) != 0 || len(state.CycleHistory) != 0 {
			t.Fatalf("fresh install must start empty")
		}
		if !state.LastResetTime.Equal(clock.Now()) {
			t.Fatalf("fresh install must stamp the current instant")
		}
	})
	if s.SyncError() {
		t.Fatalf("fresh install is not a sync error")
	}
}

func TestOpen_LoadErrorDegradesToDefaults(t *testing.T) {
	repo := newFakeRepo()
	repo.loadErr = errors.New("connection refused")
	s := Open(context.Background(), repo, clockwork.NewFakeClock())
	defer s.Close()

	if !s.SyncError() {
		t.Fatalf("a failed load must raise the sync flag")
	}
	s.View(func(state *models.AppState) {
		if state == nil || state.Assignments == nil {
			t.Fatalf("state must degrade to usable defaults")
		}
	})
}

func TestOpen_NormalizesPartialState(t *testing.T) {
	repo := newFakeRepo()
	repo.state = &models.AppState{
		ActiveRaffle: &models.ActiveRaffle{MatchName: "Dépor - Racing"},
	}
	s := Open(context.Background(), repo, clockwork.NewFakeClock())
	defer s.Close()

	s.View(func(state *models.AppState) {
		if state.Assignments == nil || state.CycleHistory == nil || state.MatchHistory == nil {
			t.Fatalf("nil collections must be normalized")
		}
		if state.ActiveRaffle.WinnersStatus == nil {
			t.Fatalf("raffle status map must be normalized")
		}
	})
}

func TestUpdate_PersistsSnapshot(t *testing.T) {
	repo := newFakeRepo()
	s := Open(context.Background(), repo, clockwork.NewFakeClock())
	defer s.Close()

	err := s.Update(func(state *models.AppState) error {
		state.CycleHistory = append(state.CycleHistory, "7")
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	snap := waitForSave(t, repo)
	if len(snap.CycleHistory) != 1 || snap.CycleHistory[0] != "7" {
		t.Fatalf("saved snapshot misses the mutation: %v", snap.CycleHistory)
	}

	// The snapshot is a copy: post-save mutations must not alias it.
	_ = s.Update(func(state *models.AppState) error {
		state.CycleHistory[0] = "changed"
		return nil
	})
	if snap.CycleHistory[0] != "7" {
		t.Fatalf("snapshot aliases the live state")
	}
}

func TestUpdate_ErrorSkipsSave(t *testing.T) {
	repo := newFakeRepo()
	s := Open(context.Background(), repo, clockwork.NewFakeClock())
	defer s.Close()

	boom := errors.New("validation failed")
	if err := s.Update(func(state *models.AppState) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected the callback error back, got %v", err)
	}

	select {
	case <-repo.saved:
		t.Fatalf("a failed update must not be persisted")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSaveFailureIsNonFatal(t *testing.T) {
	repo := newFakeRepo()
	repo.setSaveErr(errors.New("write concern timeout"))
	s := Open(context.Background(), repo, clockwork.NewFakeClock())
	defer s.Close()

	_ = s.Update(func(state *models.AppState) error {
		state.CycleHistory = append(state.CycleHistory, "7")
		return nil
	})

	deadline := time.After(2 * time.Second)
	for !s.SyncError() {
		select {
		case <-deadline:
			t.Fatalf("failed save must raise the sync flag")
		case <-time.After(10 * time.Millisecond):
		}
	}

	// Admin actions keep working against the in-memory state.
	err := s.Update(func(state *models.AppState) error {
		state.CycleHistory = append(state.CycleHistory, "8")
		return nil
	})
	if err != nil {
		t.Fatalf("updates must keep working in degraded mode: %v", err)
	}

	// The next successful save clears the flag.
	repo.setSaveErr(nil)
	_ = s.Update(func(state *models.AppState) error { return nil })
	waitForSave(t, repo)
	deadline = time.After(2 * time.Second)
	for s.SyncError() {
		select {
		case <-deadline:
			t.Fatalf("a successful save must clear the sync flag")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestClose_FlushesPendingSnapshot(t *testing.T) {
	repo := newFakeRepo()
	s := Open(context.Background(), repo, clockwork.NewFakeClock())

	_ = s.Update(func(state *models.AppState) error {
		state.CycleHistory = append(state.CycleHistory, "7")
		return nil
	})
	s.Close()

	select {
	case snap := <-repo.saved:
		if len(snap.CycleHistory) != 1 {
			t.Fatalf("flushed snapshot misses the mutation")
		}
	default:
		t.Fatalf("close must flush the pending snapshot")
	}
}
