package models

import "time"

// WinnerStatus represents the confirmation state of a drawn winner
type WinnerStatus string

const (
	WinnerStatusPending   WinnerStatus = "pending"
	WinnerStatusConfirmed WinnerStatus = "confirmed"
	WinnerStatusRejected  WinnerStatus = "rejected"
)

// PassCount is the number of season passes the club owns. Every primary draw
// targets exactly this many seats.
const PassCount = 10

// ActiveRaffle is the single live raffle, from the primary draw until the
// matchday is archived or the draw is repeated. Winners keep draw order; the
// order has no meaning beyond display.
type ActiveRaffle struct {
	MatchName      string                  `bson:"matchName" json:"matchName"`
	Winners        []Member                `bson:"winners" json:"winners"`
	WinnersStatus  map[string]WinnerStatus `bson:"winnersStatus" json:"winnersStatus"`
	ReserveList    []Member                `bson:"reserveList" json:"reserveList"`
	ReserveWinners []Member                `bson:"reserveWinners" json:"reserveWinners"`
	IsCycleReset   bool                    `bson:"isCycleReset" json:"isCycleReset"`
	Timestamp      time.Time               `bson:"timestamp" json:"timestamp"`
}

// Status returns the state of a drawn winner. Winners without an explicit
// entry are pending.
func (r *ActiveRaffle) Status(memberID string) WinnerStatus {
	if s, ok := r.WinnersStatus[memberID]; ok {
		return s
	}
	return WinnerStatusPending
}

// ConfirmedWinners returns the confirmed primary winners in draw order.
func (r *ActiveRaffle) ConfirmedWinners() []Member {
	var confirmed []Member
	for _, w := range r.Winners {
		if r.Status(w.ID) == WinnerStatusConfirmed {
			confirmed = append(confirmed, w)
		}
	}
	return confirmed
}

// SpotsNeeded is the number of reserve seats still required to fill all
// passes. Derived from the status map on every call, never stored.
func (r *ActiveRaffle) SpotsNeeded() int {
	needed := PassCount - len(r.ConfirmedWinners())
	if needed < 0 {
		return 0
	}
	return needed
}

// Clone returns a deep copy, used to hand raffle snapshots out of the state
// lock without aliasing the live maps and slices.
func (r *ActiveRaffle) Clone() *ActiveRaffle {
	cp := *r
	cp.Winners = append([]Member{}, r.Winners...)
	cp.ReserveList = append([]Member{}, r.ReserveList...)
	cp.ReserveWinners = append([]Member{}, r.ReserveWinners...)
	cp.WinnersStatus = make(map[string]WinnerStatus, len(r.WinnersStatus))
	for id, st := range r.WinnersStatus {
		cp.WinnersStatus[id] = st
	}
	return &cp
}

// MatchHistoryRecord is an archived matchday. Records are append-only, newest
// first, and never mutated after creation: winners and reserves are snapshots
// taken at close time.
type MatchHistoryRecord struct {
	ID           string    `bson:"id" json:"id"`
	Date         time.Time `bson:"date" json:"date"`
	MatchName    string    `bson:"matchName" json:"matchName"`
	Season       string    `bson:"season" json:"season"`
	IsCycleReset bool      `bson:"isCycleReset" json:"isCycleReset"`
	Winners      []Member  `bson:"winners" json:"winners"`
	Reserves     []Member  `bson:"reserves" json:"reserves"`
}
