package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/config"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
	"github.com/jonboulle/clockwork"
)

func passConfig() *config.Config {
	return &config.Config{
		Passes: config.PassConfig{
			BaseURL:  "https://berberecho.example",
			TTLHours: 96,
		},
	}
}

func TestBuildPassLink(t *testing.T) {
	ref := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	link := BuildPassLink("https://berberecho.example", "42", ref, 3)

	if !strings.HasPrefix(link, "https://berberecho.example#/view?") {
		t.Fatalf("unexpected link shape: %s", link)
	}
	if !strings.Contains(link, "id=42") {
		t.Fatalf("link misses the member id: %s", link)
	}
	if !strings.Contains(link, "t="+strconv.FormatInt(ref.UnixMilli(), 10)) {
		t.Fatalf("link misses the reference timestamp: %s", link)
	}
	if !strings.Contains(link, "slot=3") {
		t.Fatalf("link misses the slot id: %s", link)
	}

	// A zero reference produces a link that never expires.
	link = BuildPassLink("https://berberecho.example", "42", time.Time{}, 0)
	if strings.Contains(link, "t=") || strings.Contains(link, "slot=") {
		t.Fatalf("zero reference must omit t and slot: %s", link)
	}
}

func TestResolve_MissingMemberID(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	svc := NewPassService(&rosterStub{}, clock, passConfig())

	if _, err := svc.Resolve(context.Background(), "", "", ""); !errors.Is(err, ErrMissingMemberID) {
		t.Fatalf("expected ErrMissingMemberID, got %v", err)
	}
}

func TestResolve_Expired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)
	roster := &rosterStub{members: []models.Member{{ID: "7", Name: "Ana", Paid: true}}}
	svc := NewPassService(roster, clock, passConfig())

	// Stamped 100 hours ago, four past the 96-hour window.
	stale := strconv.FormatInt(now.Add(-100*time.Hour).UnixMilli(), 10)
	if _, err := svc.Resolve(context.Background(), "7", stale, ""); !errors.Is(err, ErrPassExpired) {
		t.Fatalf("expected ErrPassExpired, got %v", err)
	}

	// Expiration wins even when the member does not exist.
	if _, err := svc.Resolve(context.Background(), "404", stale, ""); !errors.Is(err, ErrPassExpired) {
		t.Fatalf("expired link must not leak member lookup, got %v", err)
	}
}

func TestResolve_ValidWithinWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)
	roster := &rosterStub{members: []models.Member{{ID: "7", Name: "Ana", Paid: true, ImageURL: "https://img/ana"}}}
	svc := NewPassService(roster, clock, passConfig())

	fresh := strconv.FormatInt(now.Add(-1*time.Hour).UnixMilli(), 10)
	view, err := svc.Resolve(context.Background(), "7", fresh, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if view.MemberName != "Ana" || view.ImageURL != "https://img/ana" {
		t.Fatalf("unexpected pass view: %+v", view)
	}
	if view.ExpiresAt == nil || !view.ExpiresAt.After(now) {
		t.Fatalf("expected a future expiration, got %v", view.ExpiresAt)
	}
}

func TestResolve_NoTimestampNeverExpires(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	roster := &rosterStub{members: []models.Member{{ID: "7", Name: "Ana"}}}
	svc := NewPassService(roster, clock, passConfig())

	view, err := svc.Resolve(context.Background(), "7", "", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if view.ExpiresAt != nil {
		t.Fatalf("link without timestamp must not expire, got %v", view.ExpiresAt)
	}
}

func TestResolve_SlotForcesImage(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	roster := &rosterStub{members: []models.Member{{ID: "7", Name: "Ana", ImageURL: "https://img/ana"}}}
	svc := NewPassService(roster, clock, passConfig())

	view, err := svc.Resolve(context.Background(), "7", "", "2")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	slot, _ := models.SlotByID(2)
	if view.ImageURL != slot.ImageURL {
		t.Fatalf("slot param must pin the slot background, got %s", view.ImageURL)
	}
}

func TestResolve_UnknownMember(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	svc := NewPassService(&rosterStub{}, clock, passConfig())

	if _, err := svc.Resolve(context.Background(), "404", "", ""); !errors.Is(err, ErrUnknownMember) {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}
}

func TestResolve_RosterDownWithoutCache(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	roster := &rosterStub{refreshErr: ErrRosterUnavailable}
	svc := NewPassService(roster, clock, passConfig())

	if _, err := svc.Resolve(context.Background(), "7", "", ""); !errors.Is(err, ErrRosterUnavailable) {
		t.Fatalf("expected the fetch error to surface, got %v", err)
	}
}
