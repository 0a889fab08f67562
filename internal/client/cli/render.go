package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
	"github.com/dmitrijs2005/moodjournal/internal/client/services"
)

const previewLength = 60

func renderSentiment(score float64) string {
	label := "neutral"
	switch {
	case score > 0.1:
		label = "positive"
	case score < -0.1:
		label = "negative"
	}
	return fmt.Sprintf("%+.2f %s", score, label)
}

func renderWhen(ts models.Timestamp) string {
	if ts.IsZero() {
		return "unknown time"
	}
	return humanize.Time(ts.Time)
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= previewLength {
		return s
	}
	return string(r[:previewLength-1]) + "…"
}

func renderEntryLine(e models.Entry) string {
	return fmt.Sprintf("#%d  %s  mood %d/%d  %s  (%s)",
		e.ID, e.Title, e.MoodLevel, models.MaxMood, preview(e.Content), renderWhen(e.CreatedAt))
}

func renderEntry(e models.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s\n", e.ID, e.Title)
	fmt.Fprintf(&b, "Written %s, mood %d/%d, sentiment %s\n",
		renderWhen(e.CreatedAt), e.MoodLevel, models.MaxMood, renderSentiment(e.SentimentScore))
	if kw := e.KeywordList(); len(kw) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(kw, ", "))
	}
	b.WriteString("\n")
	b.WriteString(e.Content)
	return b.String()
}

func renderFollowup(f models.Followup) string {
	return fmt.Sprintf("  ? %s (%s)", f.Prompt, renderWhen(f.CreatedAt))
}

func renderSummaryLine(s *models.Summary) string {
	return fmt.Sprintf("%s %s, average sentiment %s",
		humanize.Comma(int64(s.TotalEntries)), plural(s.TotalEntries, "entry", "entries"), renderSentiment(s.AvgSentiment))
}

func renderCompanion(c models.Companion) string {
	var b strings.Builder
	writeList(&b, "Emotions", c.DetectedEmotions)
	writeList(&b, "Themes", c.Themes)
	writeList(&b, "Your needs", c.YourNeeds)
	if c.Reflection != "" {
		fmt.Fprintf(&b, "\n%s\n", c.Reflection)
	}
	if c.FollowupQuestion != "" {
		fmt.Fprintf(&b, "\n? %s\n", c.FollowupQuestion)
	}
	if c.Encouragement != "" {
		fmt.Fprintf(&b, "\n%s\n", c.Encouragement)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPatternAnalysis(p models.PatternAnalysis) string {
	var b strings.Builder
	writeList(&b, "Recurring emotions", p.RecurringEmotions)
	writeList(&b, "Recurring themes", p.RecurringThemes)
	writeList(&b, "Recurring needs", p.RecurringNeeds)
	if p.Insight != "" {
		fmt.Fprintf(&b, "\n%s\n", p.Insight)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderAnalytics(v *services.Analytics, days int) string {
	var b strings.Builder
	b.WriteString(renderSummaryLine(v.Summary))
	b.WriteString("\n")

	if buckets := v.Summary.MoodBuckets(); len(buckets) > 0 {
		b.WriteString("Mood distribution:\n")
		for _, mc := range buckets {
			fmt.Fprintf(&b, "  %2d %s %d\n", mc.Mood, strings.Repeat("#", mc.Count), mc.Count)
		}
	}
	writeList(&b, "Common keywords", v.Summary.MostCommonKeywords)

	if len(v.Summary.Patterns) > 0 {
		b.WriteString("Patterns:\n")
		for _, p := range v.Summary.Patterns {
			fmt.Fprintf(&b, "  %s (confidence %.0f%%, seen %s, impact %+.2f)\n",
				p.Trigger, p.Confidence*100, humanize.Comma(int64(p.Frequency)), p.AvgSentimentImpact)
		}
	}

	if days <= 0 {
		days = services.DefaultTrendDays
	}
	fmt.Fprintf(&b, "Trend, last %d days:\n", days)
	if len(v.Trends) == 0 {
		b.WriteString("  no entries\n")
	}
	for _, t := range v.Trends {
		fmt.Fprintf(&b, "  %s  mood %2d  sentiment %+.2f  %s\n",
			t.Date.Format("2006-01-02"), t.MoodLevel, t.Sentiment, t.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(items, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
