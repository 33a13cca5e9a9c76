package services

import (
	"log/slog"
	"math/rand"
	"strconv"
	"strings"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/metrics"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/store"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Compile-time check to ensure RaffleServiceImpl implements RaffleService
var _ RaffleService = (*RaffleServiceImpl)(nil)

// RaffleServiceImpl implements the raffle lifecycle on top of the state
// store. The store's lock serializes every mutation, so a double-tapped draw
// button cannot interleave two draws.
type RaffleServiceImpl struct {
	store  *store.Store
	roster RosterService
	rng    *rand.Rand
	clock  clockwork.Clock
	season string
}

// NewRaffleService creates a new RaffleServiceImpl
func NewRaffleService(st *store.Store, roster RosterService, rng *rand.Rand, clock clockwork.Clock, season string) *RaffleServiceImpl {
	return &RaffleServiceImpl{
		store:  st,
		roster: roster,
		rng:    rng,
		clock:  clock,
		season: season,
	}
}

// DrawPrimary draws up to ten winners for the named match.
//
// Normal path: ten or more members are eligible (paid, not in the open cycle,
// no prior recorded win) and ten are drawn uniformly. Reset path: fewer than
// ten are eligible, so every remaining eligible member wins a seat, the cycle
// is wiped, and the remaining seats are drawn from the whole paid pool minus
// the forced winners. That guarantees nobody wins twice before everyone had a
// turn while never leaving seats unfilled.
func (s *RaffleServiceImpl) DrawPrimary(matchName string) (*models.ActiveRaffle, error) {
	matchName = strings.TrimSpace(matchName)
	if matchName == "" {
		return nil, ErrEmptyMatchName
	}

	paid := paidMembers(s.roster.Members())
	if len(paid) == 0 {
		return nil, ErrNoEligibleMembers
	}

	var drawn *models.ActiveRaffle
	err := s.store.Update(func(st *models.AppState) error {
		if st.ActiveRaffle != nil {
			// Repeat raffle: the discarded draw was never archived, so its
			// winners must not stay burned into the cycle.
			st.CycleHistory = replayCycle(st.MatchHistory)
		}

		eligible := eligibleMembers(paid, st)

		var winners []models.Member
		isReset := len(eligible) < models.PassCount
		if !isReset {
			winners = s.draw(eligible, models.PassCount)
		} else {
			// Every remaining eligible member auto-wins, the slate is wiped,
			// and the rest of the seats go to the refreshed paid pool.
			winners = append(winners, eligible...)
			st.CycleHistory = []string{}

			pot := excludeMembers(paid, winners)
			winners = append(winners, s.draw(pot, models.PassCount-len(winners))...)
		}

		for _, w := range winners {
			st.AddToCycle(w.ID)
		}

		st.ActiveRaffle = &models.ActiveRaffle{
			MatchName:      matchName,
			Winners:        winners,
			WinnersStatus:  make(map[string]models.WinnerStatus),
			ReserveList:    []models.Member{},
			ReserveWinners: []models.Member{},
			IsCycleReset:   isReset,
			Timestamp:      s.clock.Now(),
		}
		drawn = st.ActiveRaffle.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RafflesDrawn.WithLabelValues(strconv.FormatBool(drawn.IsCycleReset)).Inc()
	slog.Info("Primary raffle drawn",
		"match", matchName, "winners", len(drawn.Winners), "cycleReset", drawn.IsCycleReset)
	return drawn, nil
}

// Active returns the live raffle and its reserve shortfall
func (s *RaffleServiceImpl) Active() (*models.ActiveRaffle, int, error) {
	var raffle *models.ActiveRaffle
	spots := 0
	s.store.View(func(st *models.AppState) {
		if st.ActiveRaffle != nil {
			raffle = st.ActiveRaffle.Clone()
			spots = raffle.SpotsNeeded()
		}
	})
	if raffle == nil {
		return nil, 0, ErrNoActiveRaffle
	}
	return raffle, spots, nil
}

// ToggleWinnerStatus moves a winner between pending and confirmed/rejected.
// Re-applying the current status toggles back to pending; switching directly
// between confirmed and rejected is refused.
func (s *RaffleServiceImpl) ToggleWinnerStatus(memberID string, action models.WinnerStatus) (int, error) {
	if action != models.WinnerStatusConfirmed && action != models.WinnerStatusRejected {
		return 0, ErrInvalidTransition
	}

	spots := 0
	err := s.store.Update(func(st *models.AppState) error {
		raffle := st.ActiveRaffle
		if raffle == nil {
			return ErrNoActiveRaffle
		}
		if !isWinner(raffle, memberID) {
			return ErrUnknownWinner
		}

		switch raffle.Status(memberID) {
		case action:
			delete(raffle.WinnersStatus, memberID)
		case models.WinnerStatusPending:
			raffle.WinnersStatus[memberID] = action
		default:
			return ErrInvalidTransition
		}

		spots = raffle.SpotsNeeded()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return spots, nil
}

// SetReserveList replaces the manually curated waitlist
func (s *RaffleServiceImpl) SetReserveList(memberIDs []string) (*models.ActiveRaffle, error) {
	reserves := make([]models.Member, 0, len(memberIDs))
	for _, id := range memberIDs {
		m, ok := s.roster.MemberByID(id)
		if !ok {
			return nil, ErrUnknownMember
		}
		reserves = append(reserves, m)
	}

	var updated *models.ActiveRaffle
	err := s.store.Update(func(st *models.AppState) error {
		if st.ActiveRaffle == nil {
			return ErrNoActiveRaffle
		}
		st.ActiveRaffle.ReserveList = reserves
		updated = st.ActiveRaffle.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DrawReserve backfills unconfirmed seats from the waitlist. Reserve
// eligibility is purely "on the list": the cycle and prior wins are not
// consulted. A redraw replaces the previous reserve winners.
func (s *RaffleServiceImpl) DrawReserve() (*models.ActiveRaffle, error) {
	var updated *models.ActiveRaffle
	err := s.store.Update(func(st *models.AppState) error {
		raffle := st.ActiveRaffle
		if raffle == nil {
			return ErrNoActiveRaffle
		}
		spots := raffle.SpotsNeeded()
		if spots <= 0 {
			return ErrNoSpotsNeeded
		}
		if len(raffle.ReserveList) == 0 {
			return ErrEmptyReserveList
		}

		raffle.ReserveWinners = s.draw(raffle.ReserveList, spots)
		updated = raffle.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ReserveDraws.Inc()
	slog.Info("Reserve raffle drawn", "match", updated.MatchName, "reserves", len(updated.ReserveWinners))
	return updated, nil
}

// Transfer commits the finalized roster to the pass slots: confirmed primary
// winners in draw order, then reserve winners, truncated to ten. Slots not
// covered keep their previous occupant; the shared expiration window restarts.
func (s *RaffleServiceImpl) Transfer() error {
	return s.store.Update(func(st *models.AppState) error {
		raffle := st.ActiveRaffle
		if raffle == nil {
			return ErrNoActiveRaffle
		}

		final := append(raffle.ConfirmedWinners(), raffle.ReserveWinners...)
		if len(final) == 0 {
			return ErrNothingToTransfer
		}
		if len(final) > models.PassCount {
			final = final[:models.PassCount]
		}

		for i, m := range final {
			st.Assignments[i+1] = m
		}
		st.LastResetTime = s.clock.Now()

		slog.Info("Raffle transferred to slots", "match", raffle.MatchName, "assigned", len(final))
		return nil
	})
}

// CloseMatchday archives the raffle into permanent history and clears the
// active raffle. Slot assignments are untouched; transferring and archiving
// are independent actions.
func (s *RaffleServiceImpl) CloseMatchday() (*models.MatchHistoryRecord, error) {
	var record models.MatchHistoryRecord
	err := s.store.Update(func(st *models.AppState) error {
		raffle := st.ActiveRaffle
		if raffle == nil {
			return ErrNoActiveRaffle
		}
		if strings.TrimSpace(raffle.MatchName) == "" || len(raffle.Winners) == 0 {
			return ErrMatchdayNotCloseable
		}

		record = models.MatchHistoryRecord{
			ID:           uuid.NewString(),
			Date:         s.clock.Now(),
			MatchName:    raffle.MatchName,
			Season:       s.season,
			IsCycleReset: raffle.IsCycleReset,
			Winners:      append([]models.Member{}, raffle.Winners...),
			Reserves:     append([]models.Member{}, raffle.ReserveList...),
		}
		st.MatchHistory = append([]models.MatchHistoryRecord{record}, st.MatchHistory...)
		st.ActiveRaffle = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.MatchdaysArchived.Inc()
	slog.Info("Matchday archived", "match", record.MatchName, "season", record.Season, "cycleReset", record.IsCycleReset)

	// Return a copy so the caller cannot reach into the archived record.
	out := record
	out.Winners = append([]models.Member{}, record.Winners...)
	out.Reserves = append([]models.Member{}, record.Reserves...)
	return &out, nil
}

// Discard drops the active raffle without archiving. The cycle is rebuilt
// from history so the discarded winners can be drawn again.
func (s *RaffleServiceImpl) Discard() error {
	return s.store.Update(func(st *models.AppState) error {
		if st.ActiveRaffle == nil {
			return ErrNoActiveRaffle
		}
		st.ActiveRaffle = nil
		st.CycleHistory = replayCycle(st.MatchHistory)
		return nil
	})
}

// MatchHistory returns the archived matchdays, newest first. Records are
// deep-copied: the archive is immutable once written.
func (s *RaffleServiceImpl) MatchHistory() []models.MatchHistoryRecord {
	var history []models.MatchHistoryRecord
	s.store.View(func(st *models.AppState) {
		history = make([]models.MatchHistoryRecord, len(st.MatchHistory))
		for i, rec := range st.MatchHistory {
			rec.Winners = append([]models.Member{}, rec.Winners...)
			rec.Reserves = append([]models.Member{}, rec.Reserves...)
			history[i] = rec
		}
	})
	return history
}

// CycleHistory returns the ids that already won within the open cycle
func (s *RaffleServiceImpl) CycleHistory() []string {
	var cycle []string
	s.store.View(func(st *models.AppState) {
		cycle = append([]string{}, st.CycleHistory...)
	})
	return cycle
}

// RebuildCycleHistory recomputes the cycle from match history
func (s *RaffleServiceImpl) RebuildCycleHistory() []string {
	var cycle []string
	_ = s.store.Update(func(st *models.AppState) error {
		st.CycleHistory = replayCycle(st.MatchHistory)
		cycle = append([]string{}, st.CycleHistory...)
		return nil
	})
	return cycle
}

// draw returns up to n members picked uniformly without replacement,
// in draw order.
func (s *RaffleServiceImpl) draw(pool []models.Member, n int) []models.Member {
	shuffled := append([]models.Member{}, pool...)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	if n < 0 {
		n = 0
	}
	return shuffled[:n]
}

func paidMembers(members []models.Member) []models.Member {
	var paid []models.Member
	for _, m := range members {
		if m.Paid {
			paid = append(paid, m)
		}
	}
	return paid
}

// eligibleMembers filters the paid pool against the open cycle and the
// spreadsheet's prior-win records.
func eligibleMembers(paid []models.Member, st *models.AppState) []models.Member {
	var eligible []models.Member
	for _, m := range paid {
		if st.InCycle(m.ID) || m.HasPriorWins() {
			continue
		}
		eligible = append(eligible, m)
	}
	return eligible
}

func excludeMembers(pool, exclude []models.Member) []models.Member {
	excluded := make(map[string]struct{}, len(exclude))
	for _, m := range exclude {
		excluded[m.ID] = struct{}{}
	}
	var rest []models.Member
	for _, m := range pool {
		if _, ok := excluded[m.ID]; !ok {
			rest = append(rest, m)
		}
	}
	return rest
}

func isWinner(raffle *models.ActiveRaffle, memberID string) bool {
	for _, w := range raffle.Winners {
		if w.ID == memberID {
			return true
		}
	}
	return false
}

// replayCycle folds the archived matchdays, oldest first: a cycle-reset
// record clears the set, then every record's winner ids are unioned in.
func replayCycle(history []models.MatchHistoryRecord) []string {
	cycle := []string{}
	seen := make(map[string]struct{})
	// History is stored newest first.
	for i := len(history) - 1; i >= 0; i-- {
		rec := history[i]
		if rec.IsCycleReset {
			cycle = cycle[:0]
			seen = make(map[string]struct{})
		}
		for _, w := range rec.Winners {
			if _, ok := seen[w.ID]; !ok {
				seen[w.ID] = struct{}{}
				cycle = append(cycle, w.ID)
			}
		}
	}
	return cycle
}
