package models

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinMood     = 1
	MaxMood     = 10
	DefaultMood = 5
)

var ErrInvalidMood = fmt.Errorf("mood level must be between %d and %d", MinMood, MaxMood)

// Entry is a journal entry as scored by the backend.
type Entry struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	SentimentScore float64   `json:"sentiment_score"`
	Keywords       string    `json:"keywords"`
	MoodLevel      int       `json:"mood_level"`
	CreatedAt      Timestamp `json:"created_at"`
}

// KeywordList splits the backend's comma separated keyword string.
func (e Entry) KeywordList() []string {
	if strings.TrimSpace(e.Keywords) == "" {
		return nil
	}
	parts := strings.Split(e.Keywords, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EntryInput is the body of POST /entries/.
type EntryInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	MoodLevel int    `json:"mood_level"`
}

func (in EntryInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return errors.New("content is required")
	}
	return ValidateMood(in.MoodLevel)
}

// EntryUpdate is the body of PUT /entries/{id}. Nil fields are left unchanged.
type EntryUpdate struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	MoodLevel *int    `json:"mood_level,omitempty"`
}

func (u EntryUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.MoodLevel == nil
}

func ValidateMood(level int) error {
	if level < MinMood || level > MaxMood {
		return ErrInvalidMood
	}
	return nil
}
