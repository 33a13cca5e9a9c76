package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/config"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/store"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/pkg/whatsapp"
	"github.com/jonboulle/clockwork"
)

// Compile-time check to ensure SlotServiceImpl implements SlotService
var _ SlotService = (*SlotServiceImpl)(nil)

// SlotServiceImpl manages occupancy of the ten fixed pass slots
type SlotServiceImpl struct {
	store  *store.Store
	roster RosterService
	clock  clockwork.Clock
	cfg    *config.Config
}

// NewSlotService creates a new SlotServiceImpl
func NewSlotService(st *store.Store, roster RosterService, clock clockwork.Clock, cfg *config.Config) *SlotServiceImpl {
	return &SlotServiceImpl{
		store:  st,
		roster: roster,
		clock:  clock,
		cfg:    cfg,
	}
}

func (s *SlotServiceImpl) ttl() time.Duration {
	return time.Duration(s.cfg.Passes.TTLHours) * time.Hour
}

// Slots returns the ten fixed slots with their occupants and the shared
// expiration instant.
func (s *SlotServiceImpl) Slots() []models.SlotView {
	views := make([]models.SlotView, 0, len(models.PassSlots))
	s.store.View(func(st *models.AppState) {
		expires := st.LastResetTime.Add(s.ttl())
		for _, slot := range models.PassSlots {
			view := models.SlotView{PassSlot: slot, ExpiresAt: expires}
			if m, ok := st.Assignments[slot.SlotID]; ok {
				member := m
				view.Member = &member
			}
			views = append(views, view)
		}
	})
	return views
}

// Assign puts a member into a slot, replacing any previous occupant. A member
// can hold at most one slot at a time.
func (s *SlotServiceImpl) Assign(slotID int, memberID string) error {
	if _, ok := models.SlotByID(slotID); !ok {
		return ErrUnknownSlot
	}
	member, ok := s.roster.MemberByID(memberID)
	if !ok {
		return ErrUnknownMember
	}

	return s.store.Update(func(st *models.AppState) error {
		if held := st.SlotHeldBy(memberID); held != 0 && held != slotID {
			return ErrMemberAlreadyAssigned
		}
		st.Assignments[slotID] = member
		return nil
	})
}

// Unassign empties a slot
func (s *SlotServiceImpl) Unassign(slotID int) error {
	if _, ok := models.SlotByID(slotID); !ok {
		return ErrUnknownSlot
	}
	return s.store.Update(func(st *models.AppState) error {
		delete(st.Assignments, slotID)
		return nil
	})
}

// FullReset clears every slot, restarts the shared expiration window and
// refetches the roster. Raffle bookkeeping (cycle and match history) is not
// touched: a full reset is about pass occupancy, not fairness.
//
// The slots are cleared even when the roster refetch fails, matching the
// degraded-mode contract: the admin sees empty slots plus a roster error.
func (s *SlotServiceImpl) FullReset(ctx context.Context) error {
	err := s.store.Update(func(st *models.AppState) error {
		st.Assignments = make(map[int]models.Member)
		st.LastResetTime = s.clock.Now()
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Full reset: slots cleared, expiration window restarted")
	return s.roster.Refresh(ctx)
}

// Share builds the pass link and WhatsApp deep link for a slot's occupant.
func (s *SlotServiceImpl) Share(slotID int) (*models.ShareInfo, error) {
	slot, ok := models.SlotByID(slotID)
	if !ok {
		return nil, ErrUnknownSlot
	}

	var (
		member    models.Member
		reference time.Time
		assigned  bool
	)
	s.store.View(func(st *models.AppState) {
		member, assigned = st.Assignments[slot.SlotID]
		reference = st.LastResetTime
	})
	if !assigned {
		return nil, ErrSlotEmpty
	}

	passLink := BuildPassLink(s.cfg.Passes.BaseURL, member.ID, reference, slot.SlotID)
	message := whatsapp.ShareMessage(member.Name, passLink)
	return &models.ShareInfo{
		Member:       member,
		PassLink:     passLink,
		WhatsAppLink: whatsapp.Link(member.Phone, s.cfg.WhatsApp.CountryCode, message),
		Message:      message,
	}, nil
}
