// Package preference blends an offline-trained genre-affinity table with
// real-time watch events into a personalization multiplier.
package preference

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
)

const (
	// Watched fraction beyond which a partial watch counts as completed.
	completionFraction = 0.8

	// Assumed item length when an event does not carry one.
	defaultItemMinutes = 120.0

	minBoost = 0.3
	maxBoost = 2.5
)

// OfflineTable is the output of the offline training job. User keys are the
// numeric part of the user id, as decimal strings.
type OfflineTable struct {
	UserPreferences   map[string]map[string]float64 `json:"user_preferences"`
	GlobalPreferences map[string]float64            `json:"global_preferences"`
}

// WatchEvent is one entry of the learner's append-only log. It records the
// mood and time context of a watch alongside the completion signal.
type WatchEvent struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	ItemID          string    `json:"item_id"`
	Emotion         string    `json:"emotion"`
	TimeOfDay       string    `json:"time_of_day"`
	Completed       bool      `json:"completed"`
	DurationWatched float64   `json:"duration_watched"`
	ItemDuration    float64   `json:"item_duration"`
	LoggedAt        time.Time `json:"logged_at"`
}

func (e WatchEvent) completed() bool {
	if e.Completed {
		return true
	}
	d := e.ItemDuration
	if d <= 0 {
		d = defaultItemMinutes
	}
	return e.DurationWatched/d > completionFraction
}

// Preferences is the blended view of a user's tastes.
type Preferences struct {
	FavoriteGenres map[string]float64
	EmotionGenre   map[string]map[string]float64
	TimeGenre      map[string]map[string]float64
	TotalWatches   int
	CompletionRate float64
}

// Learner owns the offline table and the watch-event log. The log file is
// JSON Lines; appends are serialized through a single mutex so concurrent
// writers cannot interleave.
type Learner struct {
	mu      sync.Mutex
	logPath string
	events  []WatchEvent
	offline OfflineTable
	logger  zerolog.Logger
}

// NewLearner loads the offline affinity table and any previously logged
// watch events. A missing file for either is not fatal: the learner starts
// empty and logs a warning.
func NewLearner(offlinePath, logPath string, logger zerolog.Logger) *Learner {
	l := &Learner{
		logPath: logPath,
		logger:  logger.With().Str("component", "preference").Logger(),
	}
	l.loadOffline(offlinePath)
	l.loadEvents()
	return l
}

func (l *Learner) loadOffline(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn().Str("path", path).Err(err).
			Msg("offline affinity table unavailable, starting with empty preferences")
		return
	}
	var table OfflineTable
	if err := json.Unmarshal(data, &table); err != nil {
		l.logger.Warn().Str("path", path).Err(err).
			Msg("offline affinity table unreadable, starting with empty preferences")
		return
	}
	l.offline = table
	l.logger.Info().Int("users", len(table.UserPreferences)).
		Int("global_genres", len(table.GlobalPreferences)).
		Msg("offline affinity table loaded")
}

func (l *Learner) loadEvents() {
	f, err := os.Open(l.logPath)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn().Str("path", l.logPath).Err(err).Msg("watch log unreadable")
		}
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev WatchEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			l.logger.Warn().Err(err).Msg("skipping malformed watch log line")
			continue
		}
		l.events = append(l.events, ev)
	}
	if err := scanner.Err(); err != nil {
		l.logger.Warn().Err(err).Msg("watch log scan stopped early")
	}
	l.logger.Info().Int("events", len(l.events)).Msg("watch log loaded")
}

// LogWatch appends a watch event to the log file and the in-memory view.
// Returns the total number of recorded events.
func (l *Learner) LogWatch(ev WatchEvent) (int, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.LoggedAt.IsZero() {
		ev.LoggedAt = time.Now().UTC()
	}
	if ev.Emotion == "" {
		ev.Emotion = domain.EmotionNeutral
	}
	if ev.TimeOfDay == "" {
		ev.TimeOfDay = domain.TimeEvening
	}

	line, err := json.Marshal(ev)
	if err != nil {
		return 0, fmt.Errorf("marshal watch event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open watch log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return 0, fmt.Errorf("append watch event: %w", err)
	}

	l.events = append(l.events, ev)
	return len(l.events), nil
}

// UserPreferences blends the offline affinity for a user with their local
// watch history. A malformed numeric suffix in the user id silently falls
// back to global and local data.
func (l *Learner) UserPreferences(userID string) Preferences {
	prefs := Preferences{
		FavoriteGenres: map[string]float64{},
		EmotionGenre:   map[string]map[string]float64{},
		TimeGenre:      map[string]map[string]float64{},
	}

	// 1. Offline per-user affinity, falling back to the global table.
	if n, ok := numericSuffix(userID); ok {
		if userPrefs, found := l.offline.UserPreferences[strconv.Itoa(n)]; found {
			for g, a := range userPrefs {
				prefs.FavoriteGenres[g] = a
			}
		}
	}
	if len(prefs.FavoriteGenres) == 0 {
		for g, a := range l.offline.GlobalPreferences {
			prefs.FavoriteGenres[g] = a
		}
	}

	// 2. Overlay real-time statistics.
	l.mu.Lock()
	events := make([]WatchEvent, 0, len(l.events))
	for _, ev := range l.events {
		if ev.UserID == userID {
			events = append(events, ev)
		}
	}
	l.mu.Unlock()

	if len(events) == 0 {
		return prefs
	}

	watches := map[string]int{}
	completions := map[string]int{}
	emotionGenre := map[string]map[string]int{}
	timeGenre := map[string]map[string]int{}
	totalCompleted := 0

	for _, ev := range events {
		genre := GenreFromItemID(ev.ItemID)
		watches[genre]++
		if ev.completed() {
			completions[genre]++
			totalCompleted++
		}
		if emotionGenre[ev.Emotion] == nil {
			emotionGenre[ev.Emotion] = map[string]int{}
		}
		emotionGenre[ev.Emotion][genre]++
		if timeGenre[ev.TimeOfDay] == nil {
			timeGenre[ev.TimeOfDay] = map[string]int{}
		}
		timeGenre[ev.TimeOfDay][genre]++
	}

	// 3. Blend: 50/50 between offline affinity and local completion rate
	// where both exist, local completion rate alone otherwise.
	for genre, count := range watches {
		local := float64(completions[genre]) / float64(count)
		if offline, ok := prefs.FavoriteGenres[genre]; ok {
			prefs.FavoriteGenres[genre] = (offline + local) / 2.0
		} else {
			prefs.FavoriteGenres[genre] = local
		}
	}

	// 4. Emotion and time affinities are pure local frequencies.
	for emo, genres := range emotionGenre {
		total := 0
		for _, c := range genres {
			total += c
		}
		dist := make(map[string]float64, len(genres))
		for g, c := range genres {
			dist[g] = float64(c) / float64(total)
		}
		prefs.EmotionGenre[emo] = dist
	}
	for tod, genres := range timeGenre {
		total := 0
		for _, c := range genres {
			total += c
		}
		dist := make(map[string]float64, len(genres))
		for g, c := range genres {
			dist[g] = float64(c) / float64(total)
		}
		prefs.TimeGenre[tod] = dist
	}

	prefs.TotalWatches = len(events)
	prefs.CompletionRate = float64(totalCompleted) / float64(len(events))
	return prefs
}

// PersonalizationBoost returns the multiplicative score adjustment for a
// candidate genre under the current emotion and time of day. Neutral (1.0)
// for users with no recorded watches; otherwise clamped to [0.3, 2.5].
func (l *Learner) PersonalizationBoost(userID, itemGenre, currentEmotion, currentTime string) float64 {
	prefs := l.UserPreferences(userID)
	if prefs.TotalWatches == 0 {
		return 1.0
	}

	boost := 1.0

	// Completion-rate affinity: range 0.5 to 2.0.
	if affinity, ok := prefs.FavoriteGenres[itemGenre]; ok {
		boost *= 0.5 + affinity*1.5
	}

	// Watched this genre in this mood before: up to 2x.
	if genres, ok := prefs.EmotionGenre[currentEmotion]; ok {
		if f, ok := genres[itemGenre]; ok {
			boost *= 1.0 + f
		}
	}

	// Watched this genre at this time before: up to 1.5x.
	if genres, ok := prefs.TimeGenre[currentTime]; ok {
		if f, ok := genres[itemGenre]; ok {
			boost *= 1.0 + f*0.5
		}
	}

	if boost < minBoost {
		return minBoost
	}
	if boost > maxBoost {
		return maxBoost
	}
	return boost
}
