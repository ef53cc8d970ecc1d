// Package explain generates the natural-language rationale attached to every
// recommendation or intervention. Rule-table driven and deterministic: the
// same state and item always produce the same string.
package explain

import (
	"fmt"
	"strings"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
)

// Context selects which rule table applies.
type Context string

const (
	ContextRecommendation Context = "recommendation"
	ContextIntervention   Context = "intervention"
)

var interventionTemplates = map[domain.Intervention]string{
	domain.InterventionHardBreak: "It looks like you've been watching for a while. We suggest taking a short break to refresh!",
	domain.InterventionSoftBreak: "You've been enjoying a lot of similar content. Here are some shorter or different options to keep things fresh.",
	domain.InterventionDiversify: "We noticed you've been watching a lot of the same genre. How about trying something different?",
}

const wellbeingFallback = "We suggest this for your well-being."

type pairKey struct {
	first    string
	category string
}

// Exact (emotion, category) matches take priority over time-of-day matches.
// Templates with a %s slot receive the item title.
var emotionTemplates = map[pairKey]string{
	{domain.EmotionSad, "comedy"}:       "Since you might be feeling a bit down, we picked %s to cheer you up.",
	{domain.EmotionSad, "romance"}:      "A warm romance like %s can help on a low day.",
	{domain.EmotionHappy, "action"}:     "To match your high energy, here is an exciting action movie: %s.",
	{domain.EmotionHappy, "adventure"}:  "Riding that good mood? %s is an adventure worth taking.",
	{domain.EmotionBored, "thriller"}:   "To wake you up, we found this engaging thriller: %s.",
	{domain.EmotionBored, "sci-fi"}:     "To wake you up, we found this engaging sci-fi movie: %s.",
	{domain.EmotionAnxious, "doc"}:      "Something calm and grounding: %s might be just right now.",
	{domain.EmotionAnxious, "animation"}: "Something light and soothing: %s might be just right now.",
}

var timeTemplates = map[pairKey]string{
	{domain.TimeMorning, "doc"}:       "A documentary like %s is a great way to start the day.",
	{domain.TimeMorning, "animation"}: "An easy morning watch: %s.",
	{domain.TimeAfternoon, "comedy"}:  "A comedy like %s fits a relaxed afternoon.",
	{domain.TimeAfternoon, "romance"}: "An afternoon classic: %s.",
	{domain.TimeNight, "thriller"}:    "Late-night viewing at its best: %s.",
	{domain.TimeNight, "horror"}:      "If you're up for a scare tonight, try %s.",
	{domain.TimeNight, "mystery"}:     "A mystery like %s suits the late hour.",
}

const genericFallback = "Recommended for you."

// Generate produces the explanation for a recommendation or intervention.
// item may be nil for interventions.
func Generate(state domain.UserState, item *domain.Item, ctx Context) string {
	if ctx == ContextIntervention {
		if tmpl, ok := interventionTemplates[state.Fatigue.Intervention]; ok {
			return tmpl
		}
		return wellbeingFallback
	}

	if item == nil {
		return genericFallback
	}
	category := strings.ToLower(item.Category)

	if tmpl, ok := emotionTemplates[pairKey{state.Emotion.Label, category}]; ok {
		return fmt.Sprintf(tmpl, item.Title)
	}
	if tmpl, ok := timeTemplates[pairKey{state.Context.TimeOfDay, category}]; ok {
		return fmt.Sprintf(tmpl, item.Title)
	}
	return fmt.Sprintf("Because you enjoy %s movies.", item.Category)
}
