package services

import (
	"context"
	"errors"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
)

// Validation errors surfaced to the admin. Handlers map these to 4xx
// responses; none of them mutate state.
var (
	ErrEmptyMatchName        = errors.New("match name is required")
	ErrNoEligibleMembers     = errors.New("no paid members available for the draw")
	ErrNoActiveRaffle        = errors.New("no active raffle")
	ErrUnknownWinner         = errors.New("member is not a drawn winner")
	ErrInvalidTransition     = errors.New("status change must pass through pending")
	ErrNoSpotsNeeded         = errors.New("all passes are already confirmed")
	ErrEmptyReserveList      = errors.New("reserve list is empty")
	ErrNothingToTransfer     = errors.New("no confirmed or reserve winners to transfer")
	ErrMatchdayNotCloseable  = errors.New("matchday needs a match name and at least one winner")
	ErrUnknownMember         = errors.New("member not found")
	ErrUnknownSlot           = errors.New("slot not found")
	ErrMemberAlreadyAssigned = errors.New("member already holds another slot")
	ErrSlotEmpty             = errors.New("slot has no assigned member")
	ErrMissingMemberID       = errors.New("pass link is missing the member id")
	ErrPassExpired           = errors.New("pass link has expired")
	ErrRosterUnavailable     = errors.New("could not reach the roster spreadsheet")
)

// RosterProvider is the external roster contract: one immutable member
// snapshot per fetch, no side effects from the core's perspective.
type RosterProvider interface {
	FetchMembers(ctx context.Context) ([]models.Member, error)
}

// RosterService caches the latest roster snapshot and serves lookups
type RosterService interface {
	// Refresh replaces the cached snapshot with a fresh fetch. On failure the
	// previous snapshot is kept and the error returned.
	Refresh(ctx context.Context) error
	Members() []models.Member
	MemberByID(id string) (models.Member, bool)
	Search(query string, limit int) []models.Member
}

// RaffleService defines the raffle lifecycle: primary draw, winner
// confirmation, reserve backfill, transfer to slots and archiving.
type RaffleService interface {
	// DrawPrimary draws up to ten winners for the named match, advancing or
	// resetting the exclusion cycle as needed. An existing active raffle is
	// replaced (repeat raffle).
	DrawPrimary(matchName string) (*models.ActiveRaffle, error)

	// Active returns the live raffle and its current reserve shortfall.
	Active() (*models.ActiveRaffle, int, error)

	// ToggleWinnerStatus applies confirm/reject toggle semantics to a drawn
	// winner and returns the recomputed reserve shortfall.
	ToggleWinnerStatus(memberID string, action models.WinnerStatus) (int, error)

	// SetReserveList replaces the manually curated waitlist.
	SetReserveList(memberIDs []string) (*models.ActiveRaffle, error)

	// DrawReserve draws as many reserve winners as seats are still unconfirmed.
	DrawReserve() (*models.ActiveRaffle, error)

	// Transfer commits confirmed and reserve winners to the pass slots and
	// stamps a fresh shared expiration window.
	Transfer() error

	// CloseMatchday archives the raffle into permanent history.
	CloseMatchday() (*models.MatchHistoryRecord, error)

	// Discard drops the active raffle without archiving it and restores the
	// cycle from history so the discarded winners are not burned.
	Discard() error

	MatchHistory() []models.MatchHistoryRecord
	CycleHistory() []string

	// RebuildCycleHistory recomputes the cycle by replaying match history.
	// Repair tool only; the stored cycle is the steady-state source of truth.
	RebuildCycleHistory() []string
}

// SlotService manages the ten fixed pass slots
type SlotService interface {
	Slots() []models.SlotView
	Assign(slotID int, memberID string) error
	Unassign(slotID int) error
	// FullReset clears every slot, stamps a new expiration reference and
	// refetches the roster. Cycle and match history are untouched.
	FullReset(ctx context.Context) error
	Share(slotID int) (*models.ShareInfo, error)
}

// PassService resolves public pass links for the gatekeeper view
type PassService interface {
	Resolve(ctx context.Context, memberID, timestampParam, slotParam string) (*models.PassView, error)
}
