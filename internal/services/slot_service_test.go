package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/store"
	"github.com/jonboulle/clockwork"
)

func newSlotFixture(t *testing.T, roster *rosterStub) (*SlotServiceImpl, *store.Store, clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	st := store.Open(context.Background(), &memRepo{}, clock)
	t.Cleanup(st.Close)
	cfg := passConfig()
	cfg.WhatsApp.CountryCode = "34"
	return NewSlotService(st, roster, clock, cfg), st, clock
}

func TestSlots_SharedExpiration(t *testing.T) {
	svc, _, clock := newSlotFixture(t, &rosterStub{})

	views := svc.Slots()
	if len(views) != models.PassCount {
		t.Fatalf("expected %d slots, got %d", models.PassCount, len(views))
	}
	want := clock.Now().Add(96 * time.Hour)
	for _, v := range views {
		if v.Member != nil {
			t.Fatalf("fresh install must have empty slots")
		}
		if !v.ExpiresAt.Equal(want) {
			t.Fatalf("slot %d expires at %v, want shared %v", v.SlotID, v.ExpiresAt, want)
		}
	}
}

func TestAssign(t *testing.T) {
	roster := &rosterStub{members: []models.Member{
		{ID: "1", Name: "Ana", Paid: true},
		{ID: "2", Name: "Breixo", Paid: true},
	}}
	svc, st, _ := newSlotFixture(t, roster)

	if err := svc.Assign(99, "1"); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
	if err := svc.Assign(1, "404"); !errors.Is(err, ErrUnknownMember) {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}

	if err := svc.Assign(1, "1"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	// One member, one slot.
	if err := svc.Assign(2, "1"); !errors.Is(err, ErrMemberAlreadyAssigned) {
		t.Fatalf("expected ErrMemberAlreadyAssigned, got %v", err)
	}
	// Re-assigning the same slot is a no-op, not a conflict.
	if err := svc.Assign(1, "1"); err != nil {
		t.Fatalf("re-assign same slot: %v", err)
	}

	if err := svc.Assign(2, "2"); err != nil {
		t.Fatalf("Assign second: %v", err)
	}
	st.View(func(s *models.AppState) {
		if s.Assignments[1].ID != "1" || s.Assignments[2].ID != "2" {
			t.Fatalf("unexpected assignments: %+v", s.Assignments)
		}
	})

	if err := svc.Unassign(1); err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	st.View(func(s *models.AppState) {
		if _, ok := s.Assignments[1]; ok {
			t.Fatalf("slot 1 should be empty")
		}
	})
}

func TestFullReset(t *testing.T) {
	roster := &rosterStub{members: []models.Member{{ID: "1", Name: "Ana", Paid: true}}}
	svc, st, clock := newSlotFixture(t, roster)

	if err := svc.Assign(1, "1"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	clock.Advance(48 * time.Hour)

	if err := svc.FullReset(context.Background()); err != nil {
		t.Fatalf("FullReset: %v", err)
	}
	st.View(func(s *models.AppState) {
		if len(s.Assignments) != 0 {
			t.Fatalf("full reset must clear every slot")
		}
		if !s.LastResetTime.Equal(clock.Now()) {
			t.Fatalf("full reset must restamp the expiration reference")
		}
	})
}

func TestFullReset_ClearsEvenWhenRosterDown(t *testing.T) {
	roster := &rosterStub{
		members:    []models.Member{{ID: "1", Name: "Ana", Paid: true}},
		refreshErr: ErrRosterUnavailable,
	}
	svc, st, _ := newSlotFixture(t, roster)

	if err := svc.Assign(1, "1"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := svc.FullReset(context.Background()); !errors.Is(err, ErrRosterUnavailable) {
		t.Fatalf("expected the refresh error to surface, got %v", err)
	}
	st.View(func(s *models.AppState) {
		if len(s.Assignments) != 0 {
			t.Fatalf("slots must be cleared even when the roster fetch fails")
		}
	})
}

func TestShare(t *testing.T) {
	roster := &rosterStub{members: []models.Member{
		{ID: "1", Name: "GARCÍA LÓPEZ ANA", Phone: "612 345 678", Paid: true},
	}}
	svc, _, _ := newSlotFixture(t, roster)

	if _, err := svc.Share(1); !errors.Is(err, ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty, got %v", err)
	}

	if err := svc.Assign(1, "1"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	info, err := svc.Share(1)
	if err != nil {
		t.Fatalf("Share: %v", err)
	}
	if !strings.Contains(info.PassLink, "id=1") || !strings.Contains(info.PassLink, "slot=1") {
		t.Fatalf("pass link misses parameters: %s", info.PassLink)
	}
	if !strings.Contains(info.WhatsAppLink, "phone=34612345678") {
		t.Fatalf("whatsapp link must carry the normalized phone: %s", info.WhatsAppLink)
	}
	if !strings.Contains(info.Message, "ANA") {
		t.Fatalf("message must greet the member by first name: %s", info.Message)
	}

	if _, err := svc.Share(42); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
}
