// Package ranking scores a candidate item set against a user state and
// produces the final, explained, ordered recommendation list.
package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
	"github.com/lowkeylabs/mindful-recs/internal/explain"
)

const (
	// How many results a ranking call returns at most.
	topN = 10

	// Popularity-ranked candidate pool size when the caller supplies none.
	candidatePoolSize = 20

	// Fatigue score above which repeated categories are penalized.
	repetitionFatigueThreshold = 0.4

	// Fatigue and popularity levels that trigger binge dampening.
	bingeFatigueThreshold    = 0.6
	bingePopularityThreshold = 0.8

	// Multipliers for the soft-break/diversify adjustment.
	repeatDamp   = 0.3
	noveltyBonus = 1.5
)

// Catalog is the read-only item source the engine ranks against.
type Catalog interface {
	ItemByID(id string) (domain.Item, bool)
	ItemsByCategory(category string) []domain.Item
	TopByPopularity(n int) []domain.Item
}

// Booster supplies the learned personalization multiplier.
type Booster interface {
	PersonalizationBoost(userID, itemGenre, currentEmotion, currentTime string) float64
}

type Engine struct {
	catalog Catalog
	booster Booster
	logger  zerolog.Logger
}

func NewEngine(catalog Catalog, booster Booster, logger zerolog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		booster: booster,
		logger:  logger.With().Str("component", "ranking").Logger(),
	}
}

// Rank scores candidates through the fatigue/mood/time/personalization
// pipeline and returns the ordered top results with explanations.
//
// Candidate selection modes are mutually exclusive: an active genre filter
// wins, then explicitly supplied candidates, then the popularity-ranked
// pool. A hard-break intervention short-circuits everything and returns the
// single break pseudo-item. Ties keep the candidate input order; that is an
// implementation detail, not a contract.
func (e *Engine) Rank(userID string, st domain.UserState, candidates []string, genreFilter string) []domain.RankedRecommendation {
	if st.Fatigue.Intervention == domain.InterventionHardBreak {
		return []domain.RankedRecommendation{breakActivity(st)}
	}

	pool := e.selectCandidates(st, candidates, genreFilter)
	if len(pool) == 0 {
		return []domain.RankedRecommendation{}
	}

	recentCats := e.recentCategories(st.RecentItems)
	fatigueScore := st.Fatigue.Score
	intervention := st.Fatigue.Intervention

	ranked := make([]domain.RankedRecommendation, 0, len(pool))
	for _, item := range pool {
		category := strings.ToLower(item.Category)
		repeats := recentCats[category]

		// 1. Popularity base.
		score := 0.5 + 0.5*item.Popularity

		// 2. Repetition penalty, steeper as fatigue rises.
		if fatigueScore > repetitionFatigueThreshold && repeats {
			score /= 0.5 * (fatigueScore + 0.5)
		}

		// 3. Soft-break/diversify: damp repeats, reward novelty.
		if intervention == domain.InterventionSoftBreak || intervention == domain.InterventionDiversify {
			if repeats {
				score *= repeatDamp
			} else {
				score *= noveltyBonus
			}
		}

		// 4. Binge prevention: a fatigued user does not get the most
		// addictive items pushed at them.
		if fatigueScore > bingeFatigueThreshold && item.Popularity > bingePopularityThreshold {
			score *= 1.1 - fatigueScore
		}

		// 5-7. Mood, time-of-day and learned-preference multipliers.
		score *= moodMultiplier(st.Emotion.Label, category)
		score *= timeMultiplier(st.Context.TimeOfDay, category)
		score *= e.booster.PersonalizationBoost(userID, category, st.Emotion.Label, st.Context.TimeOfDay)

		ranked = append(ranked, domain.RankedRecommendation{
			ItemID:      item.ID,
			Title:       item.Title,
			Category:    item.Category,
			Score:       math.Round(score*1000) / 1000,
			Explanation: explain.Generate(st, &item, explain.ContextRecommendation),
			Type:        domain.RecTypeRecommendation,
			ExternalRef: item.ExternalRef,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func (e *Engine) selectCandidates(st domain.UserState, candidates []string, genreFilter string) []domain.Item {
	if genreFilter != "" && !strings.EqualFold(genreFilter, "all") {
		// Explicit exploration overrides personalized selection entirely.
		return e.catalog.ItemsByCategory(genreFilter)
	}
	if len(candidates) > 0 {
		pool := make([]domain.Item, 0, len(candidates))
		for _, id := range candidates {
			if item, ok := e.catalog.ItemByID(id); ok {
				pool = append(pool, item)
			}
		}
		return pool
	}
	return e.catalog.TopByPopularity(candidatePoolSize)
}

// recentCategories returns the lowercase category set of the recent-history
// items. Ids missing from the catalog are skipped.
func (e *Engine) recentCategories(recentItems []string) map[string]bool {
	cats := make(map[string]bool, len(recentItems))
	for _, id := range recentItems {
		if item, ok := e.catalog.ItemByID(id); ok {
			cats[strings.ToLower(item.Category)] = true
		}
	}
	return cats
}

func breakActivity(st domain.UserState) domain.RankedRecommendation {
	return domain.RankedRecommendation{
		ItemID:      domain.BreakActivityID,
		Title:       "Time for a break!",
		Category:    "wellness",
		Score:       100.0,
		Explanation: explain.Generate(st, nil, explain.ContextIntervention),
		Type:        domain.RecTypeIntervention,
	}
}
