package models

// Followup is a reflection prompt generated for an entry.
type Followup struct {
	ID        int64     `json:"id"`
	Prompt    string    `json:"prompt"`
	CreatedAt Timestamp `json:"created_at"`
}

type FollowupRequest struct {
	EntryID int64 `json:"entry_id"`
}

// Companion is the full AI companion reading of a single entry.
type Companion struct {
	DetectedEmotions []string `json:"detected_emotions"`
	Themes           []string `json:"themes"`
	YourNeeds        []string `json:"your_needs"`
	Reflection       string   `json:"reflection"`
	FollowupQuestion string   `json:"followup_question"`
	Encouragement    string   `json:"encouragement"`
	Timestamp        string   `json:"timestamp"`
}

// PatternAnalysis summarizes what recurs across all of the user's entries.
type PatternAnalysis struct {
	RecurringEmotions []string `json:"recurring_emotions"`
	RecurringThemes   []string `json:"recurring_themes"`
	RecurringNeeds    []string `json:"recurring_needs"`
	Insight           string   `json:"insight"`
}
