package models

import (
	"sort"
	"strconv"
)

type Pattern struct {
	Trigger            string  `json:"trigger"`
	Confidence         float64 `json:"confidence"`
	Frequency          int     `json:"frequency"`
	AvgSentimentImpact float64 `json:"avg_sentiment_impact"`
}

// Summary is the aggregate returned by /analytics/summary.
type Summary struct {
	AvgSentiment       float64        `json:"avg_sentiment"`
	MoodDistribution   map[string]int `json:"mood_distribution"`
	TotalEntries       int            `json:"total_entries"`
	MostCommonKeywords []string       `json:"most_common_keywords"`
	Patterns           []Pattern      `json:"patterns"`
}

// MoodCount is one bucket of the mood distribution.
type MoodCount struct {
	Mood  int
	Count int
}

// MoodBuckets returns the distribution ordered by mood level. Keys that are
// not integers are skipped.
func (s Summary) MoodBuckets() []MoodCount {
	out := make([]MoodCount, 0, len(s.MoodDistribution))
	for k, v := range s.MoodDistribution {
		mood, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out = append(out, MoodCount{Mood: mood, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mood < out[j].Mood })
	return out
}

type TrendPoint struct {
	Date      Timestamp `json:"date"`
	Sentiment float64   `json:"sentiment"`
	MoodLevel int       `json:"mood_level"`
	Title     string    `json:"title"`
}

// Trends is the body of /analytics/trends.
type Trends struct {
	Trends []TrendPoint `json:"trends"`
}
