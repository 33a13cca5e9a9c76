package models

import "time"

// AppState is the whole application state of record: slot occupancy, the
// exclusion cycle, the archived matchdays and the live raffle, if any. It is
// persisted as a single document, last writer wins.
type AppState struct {
	Assignments   map[int]Member       `bson:"assignments" json:"assignments"`
	MatchHistory  []MatchHistoryRecord `bson:"matchHistory" json:"matchHistory"`
	CycleHistory  []string             `bson:"cycleHistory" json:"cycleHistory"`
	LastResetTime time.Time            `bson:"lastResetTime" json:"lastResetTime"`
	ActiveRaffle  *ActiveRaffle        `bson:"activeRaffle,omitempty" json:"activeRaffle,omitempty"`
}

// NewAppState returns the fresh-install state.
func NewAppState(now time.Time) *AppState {
	return &AppState{
		Assignments:   make(map[int]Member),
		MatchHistory:  []MatchHistoryRecord{},
		CycleHistory:  []string{},
		LastResetTime: now,
	}
}

// Normalize fills nil collections after deserialization so callers never have
// to nil-check. Malformed or partial stored state degrades to empty defaults.
func (s *AppState) Normalize() {
	if s.Assignments == nil {
		s.Assignments = make(map[int]Member)
	}
	if s.MatchHistory == nil {
		s.MatchHistory = []MatchHistoryRecord{}
	}
	if s.CycleHistory == nil {
		s.CycleHistory = []string{}
	}
	if s.ActiveRaffle != nil && s.ActiveRaffle.WinnersStatus == nil {
		s.ActiveRaffle.WinnersStatus = make(map[string]WinnerStatus)
	}
}

// InCycle reports whether the member already won within the open cycle.
func (s *AppState) InCycle(memberID string) bool {
	for _, id := range s.CycleHistory {
		if id == memberID {
			return true
		}
	}
	return false
}

// AddToCycle records a primary winner in the open cycle. Duplicates are
// ignored so the slice keeps set semantics.
func (s *AppState) AddToCycle(memberID string) {
	if !s.InCycle(memberID) {
		s.CycleHistory = append(s.CycleHistory, memberID)
	}
}

// SlotHeldBy returns the slot currently occupied by the member, or 0.
func (s *AppState) SlotHeldBy(memberID string) int {
	for slotID, m := range s.Assignments {
		if m.ID == memberID {
			return slotID
		}
	}
	return 0
}

// Clone returns a deep copy, used to snapshot the state for persistence
// without holding the state lock during the write.
func (s *AppState) Clone() *AppState {
	cp := &AppState{
		Assignments:   make(map[int]Member, len(s.Assignments)),
		MatchHistory:  make([]MatchHistoryRecord, len(s.MatchHistory)),
		CycleHistory:  append([]string{}, s.CycleHistory...),
		LastResetTime: s.LastResetTime,
	}
	for slotID, m := range s.Assignments {
		cp.Assignments[slotID] = m
	}
	for i, rec := range s.MatchHistory {
		rec.Winners = append([]Member{}, rec.Winners...)
		rec.Reserves = append([]Member{}, rec.Reserves...)
		cp.MatchHistory[i] = rec
	}
	if s.ActiveRaffle != nil {
		cp.ActiveRaffle = s.ActiveRaffle.Clone()
	}
	return cp
}
