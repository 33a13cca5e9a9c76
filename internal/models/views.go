package models

import "time"

// SlotView is one slot as shown on the admin dashboard: the fixed seat plus
// its current occupant, if any.
type SlotView struct {
	PassSlot
	Member    *Member   `json:"member,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ShareInfo carries everything needed to hand a pass to a member.
type ShareInfo struct {
	Member       Member `json:"member"`
	PassLink     string `json:"passLink"`
	WhatsAppLink string `json:"whatsappLink"`
	Message      string `json:"message"`
}

// PassView is the resolved card shown by the secure viewer. A nil ExpiresAt
// means the link carries no reference timestamp and never expires by time.
type PassView struct {
	MemberID   string     `json:"memberId"`
	MemberName string     `json:"memberName"`
	ImageURL   string     `json:"imageUrl"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}
