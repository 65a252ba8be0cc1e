package achievements

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	unlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vivafit_achievement_unlocks_total",
		Help: "Total achievement unlocks by rarity",
	}, []string{"rarity"})

	challengeCompletionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vivafit_challenge_completions_total",
		Help: "Total challenge completions",
	})

	xpAwardedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vivafit_xp_awarded_total",
		Help: "Total XP awarded across all users",
	})

	levelUpsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vivafit_level_ups_total",
		Help: "Total level-up events",
	})
)
