package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/config"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
	"github.com/jonboulle/clockwork"
)

// Compile-time check to ensure PassServiceImpl implements PassService
var _ PassService = (*PassServiceImpl)(nil)

// PassServiceImpl resolves pass links for the gatekeeper viewer. Expiration
// is a plain timestamp comparison against the shared reference instant; there
// is no cryptographic protection behind the link.
type PassServiceImpl struct {
	roster RosterService
	clock  clockwork.Clock
	cfg    *config.Config
}

// NewPassService creates a new PassServiceImpl
func NewPassService(roster RosterService, clock clockwork.Clock, cfg *config.Config) *PassServiceImpl {
	return &PassServiceImpl{
		roster: roster,
		clock:  clock,
		cfg:    cfg,
	}
}

// BuildPassLink encodes a pass as a viewer URL. The reference timestamp rides
// along in milliseconds; the slot id pins the card to the slot's fixed
// background so the gatekeeper always sees the right seat.
func BuildPassLink(baseURL, memberID string, reference time.Time, slotID int) string {
	params := url.Values{}
	params.Set("id", memberID)
	if !reference.IsZero() {
		params.Set("t", strconv.FormatInt(reference.UnixMilli(), 10))
	}
	if slotID > 0 {
		params.Set("slot", strconv.Itoa(slotID))
	}
	return fmt.Sprintf("%s#/view?%s", baseURL, params.Encode())
}

// Resolve validates a pass link and returns the card to render.
//
// A link without a reference timestamp never expires by time; that mirrors
// how admin preview links have always behaved. Expiration supersedes every
// other outcome, including member lookup.
func (s *PassServiceImpl) Resolve(ctx context.Context, memberID, timestampParam, slotParam string) (*models.PassView, error) {
	if memberID == "" {
		return nil, ErrMissingMemberID
	}

	var expiresAt *time.Time
	if timestampParam != "" {
		ms, err := strconv.ParseInt(timestampParam, 10, 64)
		if err == nil {
			exp := time.UnixMilli(ms).Add(time.Duration(s.cfg.Passes.TTLHours) * time.Hour)
			expiresAt = &exp
			if s.clock.Now().After(exp) {
				return nil, ErrPassExpired
			}
		}
	}

	var forcedImage string
	if slotParam != "" {
		if slotID, err := strconv.Atoi(slotParam); err == nil {
			if slot, ok := models.SlotByID(slotID); ok {
				forcedImage = slot.ImageURL
			}
		}
	}

	// The viewer always checks against fresh roster data so a member removed
	// from the sheet stops validating. A failed fetch falls back to the
	// cached snapshot; with nothing cached the connection error surfaces.
	refreshErr := s.roster.Refresh(ctx)
	member, ok := s.roster.MemberByID(memberID)
	if !ok {
		if refreshErr != nil {
			return nil, refreshErr
		}
		return nil, ErrUnknownMember
	}

	imageURL := member.ImageURL
	if forcedImage != "" {
		imageURL = forcedImage
	}

	return &models.PassView{
		MemberID:   member.ID,
		MemberName: member.Name,
		ImageURL:   imageURL,
		ExpiresAt:  expiresAt,
	}, nil
}
