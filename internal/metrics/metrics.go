package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RafflesDrawn counts primary draws, labelled by whether they reset the cycle.
	RafflesDrawn = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "abonos_raffles_drawn_total",
		Help: "Primary raffle draws executed.",
	}, []string{"cycle_reset"})

	// ReserveDraws counts reserve draws.
	ReserveDraws = promauto.NewCounter(prometheus.CounterOpts{
		Name: "abonos_reserve_draws_total",
		Help: "Reserve raffle draws executed.",
	})

	// MatchdaysArchived counts closed matchdays.
	MatchdaysArchived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "abonos_matchdays_archived_total",
		Help: "Matchdays archived into history.",
	})

	// SaveErrors counts failed state persistence attempts.
	SaveErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "abonos_state_save_errors_total",
		Help: "Failed whole-state persistence writes.",
	})

	// RosterFetchErrors counts failed roster refreshes.
	RosterFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "abonos_roster_fetch_errors_total",
		Help: "Failed roster fetches from the spreadsheet export.",
	})
)
