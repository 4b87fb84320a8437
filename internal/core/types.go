// Package core defines the fundamental types for MoodTracker.
package core

// -----------------------------------------------------------------------------
// MOOD ENTRY - One logged emotional-state observation
// -----------------------------------------------------------------------------

// EntryID is a type-safe identifier for mood entries
type EntryID string

// MoodEntry is one mood observation for a given date. Multiple entries may
// exist for the same date; date-keyed lookups return the newest by timestamp.
type MoodEntry struct {
	ID        EntryID  `json:"id"`
	Date      string   `json:"date"`      // YYYY-MM-DD, local calendar date
	Timestamp int64    `json:"timestamp"` // epoch milliseconds
	Emoji     string   `json:"emoji"`
	MoodType  string   `json:"mood_type"`
	Intensity int      `json:"intensity"` // 1..10
	Note      string   `json:"note,omitempty"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"created_at"` // epoch milliseconds
	UpdatedAt int64    `json:"updated_at"` // epoch milliseconds
}

// Field limits for mood entries.
const (
	IntensityMin  = 1
	IntensityMax  = 10
	NoteMaxLength = 200
	TagsMax       = 10
)

// -----------------------------------------------------------------------------
// INSIGHT - A short observation about recent mood patterns
// -----------------------------------------------------------------------------

// InsightID is a type-safe identifier for insights
type InsightID string

// Insight is a short natural-language observation about recent mood
// patterns, either AI-generated or produced by the local fallback.
type Insight struct {
	ID        InsightID `json:"id"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`   // e.g. "weekly"
	DateRange string    `json:"date_range"` // e.g. "2024-01-01 to 2024-01-07"
	CreatedAt int64     `json:"created_at"` // epoch milliseconds
	IsRead    bool      `json:"is_read"`
}

// InsightCategoryWeekly tags insights derived from the trailing week.
const InsightCategoryWeekly = "weekly"

// -----------------------------------------------------------------------------
// STATS
// -----------------------------------------------------------------------------

// MoodStats aggregates the dashboard numbers over all stored entries.
type MoodStats struct {
	TotalEntries     int     `json:"total_entries"`
	CurrentStreak    int     `json:"current_streak"`
	MostCommonMood   string  `json:"most_common_mood"`
	AverageIntensity float64 `json:"average_intensity"`
}

// -----------------------------------------------------------------------------
// MOOD VOCABULARY
// -----------------------------------------------------------------------------

// MoodOption is one selectable mood category with its display glyph.
type MoodOption struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// MoodOptions is the fixed set of 10 mood categories.
var MoodOptions = []MoodOption{
	{Emoji: "😊", Label: "Happy", Type: "happy"},
	{Emoji: "😔", Label: "Sad", Type: "sad"},
	{Emoji: "😰", Label: "Anxious", Type: "anxious"},
	{Emoji: "😴", Label: "Tired", Type: "tired"},
	{Emoji: "😡", Label: "Angry", Type: "angry"},
	{Emoji: "😐", Label: "Neutral", Type: "neutral"},
	{Emoji: "😌", Label: "Calm", Type: "calm"},
	{Emoji: "🤔", Label: "Confused", Type: "confused"},
	{Emoji: "💪", Label: "Energetic", Type: "energetic"},
	{Emoji: "🥳", Label: "Excited", Type: "excited"},
}

// ActivityTags is the suggested tag vocabulary. Free-form tags are accepted
// too; this list exists for UI pickers.
var ActivityTags = []string{
	"Work",
	"Exercise",
	"Social",
	"Sleep",
	"Weather",
	"Health",
	"Family",
	"Food",
	"Travel",
	"Hobbies",
}

// IntensityBucket names the display bucket for an intensity value.
func IntensityBucket(intensity int) string {
	switch {
	case intensity >= 8:
		return "high"
	case intensity >= 6:
		return "medium"
	case intensity >= 4:
		return "low"
	default:
		return "very_low"
	}
}
