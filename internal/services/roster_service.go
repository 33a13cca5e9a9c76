package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/metrics"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Compile-time check to ensure RosterServiceImpl implements RosterService
var _ RosterService = (*RosterServiceImpl)(nil)

// RosterServiceImpl caches the latest roster fetch. The spreadsheet stays
// the data of record; the cache only avoids refetching on every lookup.
type RosterServiceImpl struct {
	provider RosterProvider

	mu      sync.RWMutex
	members []models.Member
}

// NewRosterService creates a new RosterServiceImpl
func NewRosterService(provider RosterProvider) *RosterServiceImpl {
	return &RosterServiceImpl{provider: provider}
}

// Refresh replaces the cached snapshot with a fresh fetch. A failed fetch
// keeps the previous snapshot so the admin can keep working offline.
func (s *RosterServiceImpl) Refresh(ctx context.Context) error {
	members, err := s.provider.FetchMembers(ctx)
	if err != nil {
		slog.Error("Roster fetch failed, keeping previous snapshot", "error", err)
		metrics.RosterFetchErrors.Inc()
		return fmt.Errorf("%w: %v", ErrRosterUnavailable, err)
	}

	s.mu.Lock()
	s.members = members
	s.mu.Unlock()

	slog.Info("Roster refreshed", "members", len(members))
	return nil
}

// Members returns the cached snapshot
func (s *RosterServiceImpl) Members() []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Member{}, s.members...)
}

// MemberByID finds a member in the cached snapshot
func (s *RosterServiceImpl) MemberByID(id string) (models.Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.ID == id {
			return m, true
		}
	}
	return models.Member{}, false
}

// Search returns up to limit members matching the query by fuzzy name match
// or id substring, best matches first.
func (s *RosterServiceImpl) Search(query string, limit int) []models.Member {
	query = strings.TrimSpace(query)
	s.mu.RLock()
	defer s.mu.RUnlock()

	if query == "" {
		if len(s.members) <= limit {
			return append([]models.Member{}, s.members...)
		}
		return append([]models.Member{}, s.members[:limit]...)
	}

	names := make([]string, len(s.members))
	for i, m := range s.members {
		names[i] = m.Name
	}

	var results []models.Member
	seen := make(map[string]struct{})
	add := func(m models.Member) {
		if _, ok := seen[m.ID]; ok {
			return
		}
		seen[m.ID] = struct{}{}
		results = append(results, m)
	}

	for _, m := range s.members {
		if strings.Contains(strings.ToLower(m.ID), strings.ToLower(query)) {
			add(m)
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)
	for _, r := range ranks {
		add(s.members[r.OriginalIndex])
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
