package domain

// Time-of-day buckets used across fatigue, ranking and explanations.
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeNight     = "night"
)

// ContextFeatures describes the request context supplied by the caller.
// SessionMinutes of zero means "unknown"; the state builder substitutes a
// default session length.
type ContextFeatures struct {
	TimeOfDay      string  `json:"time_of_day"`
	DeviceType     string  `json:"device_type"`
	Location       string  `json:"location,omitempty"`
	SessionMinutes float64 `json:"session_minutes"`
}
