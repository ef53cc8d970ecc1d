package ranking

// Scoring multipliers are data, not branching logic, so they can be tuned
// and tested in isolation.

const (
	moodBoost = 3.0
	moodGood  = 1.8
	moodAvoid = 0.3
)

type moodAffinity struct {
	boost map[string]bool
	good  map[string]bool
	avoid map[string]bool
}

var moodGenres = map[string]moodAffinity{
	"happy": {
		boost: set("action", "adventure"),
		good:  set("comedy", "animation", "musical"),
	},
	"sad": {
		boost: set("comedy", "romance"),
		good:  set("animation", "drama"),
		avoid: set("horror", "thriller"),
	},
	"anxious": {
		boost: set("doc", "animation"),
		good:  set("romance", "comedy"),
		avoid: set("horror", "thriller", "crime"),
	},
	"bored": {
		boost: set("thriller", "sci-fi"),
		good:  set("mystery", "horror", "action"),
	},
}

var timeGenres = map[string]map[string]float64{
	"morning": {
		"doc":       1.6,
		"animation": 1.6,
	},
	"afternoon": {
		"comedy":  1.5,
		"romance": 1.5,
	},
	"night": {
		"thriller": 1.8,
		"horror":   1.8,
		"mystery":  1.8,
	},
}

func set(genres ...string) map[string]bool {
	m := make(map[string]bool, len(genres))
	for _, g := range genres {
		m[g] = true
	}
	return m
}

// moodMultiplier returns the score factor for a genre under the current
// emotion label. Unmatched genres are unaffected.
func moodMultiplier(emotionLabel, genre string) float64 {
	affinity, ok := moodGenres[emotionLabel]
	if !ok {
		return 1.0
	}
	switch {
	case affinity.boost[genre]:
		return moodBoost
	case affinity.good[genre]:
		return moodGood
	case affinity.avoid[genre]:
		return moodAvoid
	default:
		return 1.0
	}
}

// timeMultiplier returns the score factor for a genre at the current time
// of day.
func timeMultiplier(timeOfDay, genre string) float64 {
	if factors, ok := timeGenres[timeOfDay]; ok {
		if f, ok := factors[genre]; ok {
			return f
		}
	}
	return 1.0
}
