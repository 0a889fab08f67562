package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
	"github.com/dmitrijs2005/moodjournal/internal/client/router"
)

func TestDashboard(t *testing.T) {
	out := captureOutput(t)
	ta := newTestApp(t, true, monday)

	require.NoError(t, ta.Dashboard(context.Background()))
	printed := out.String()
	assert.Contains(t, printed, "1 entry, average sentiment +0.30 positive")
	assert.Contains(t, printed, "#3  Monday  mood 6/10")
	assert.Contains(t, printed, "hours ago")
	assert.Equal(t, 6, ta.entries.lastLimit)
}

func TestDashboard_Empty(t *testing.T) {
	out := captureOutput(t)
	ta := newTestApp(t, true)

	require.NoError(t, ta.Dashboard(context.Background()))
	assert.Contains(t, out.String(), "No entries yet.")
}

func TestJournal_DefaultMood(t *testing.T) {
	out := captureOutput(t)
	ta := newTestApp(t, true)
	stubInputs(t, []string{"Tuesday", ""}, nil, []string{"Quiet evening."})

	require.NoError(t, ta.Journal(context.Background()))
	require.Len(t, ta.entries.created, 1)
	assert.Equal(t, models.EntryInput{Title: "Tuesday", Content: "Quiet evening.", MoodLevel: models.DefaultMood}, ta.entries.created[0])
	assert.Contains(t, out.String(), "Entry saved successfully! (#100")
	assert.Equal(t, router.Dashboard, ta.router.Current())
}

func TestJournal_InvalidMood(t *testing.T) {
	out := captureOutput(t)
	ta := newTestApp(t, true)
	stubInputs(t, []string{"Tuesday", "11"}, nil, []string{"Quiet evening."})

	require.ErrorIs(t, ta.Journal(context.Background()), models.ErrInvalidMood)
	assert.Empty(t, ta.entries.created)
	assert.Contains(t, out.String(), "mood level must be between 1 and 10")
	assert.Equal(t, router.Journal, ta.router.Current())
}

func TestList_Args(t *testing.T) {
	captureOutput(t)
	ta := newTestApp(t, true, monday)
	ctx := context.Background()

	require.NoError(t, ta.List(ctx, nil))
	assert.Equal(t, 50, ta.entries.lastLimit)
	assert.Equal(t, 0, ta.entries.lastOff)

	require.NoError(t, ta.List(ctx, []string{"5", "10"}))
	assert.Equal(t, 5, ta.entries.lastLimit)
	assert.Equal(t, 10, ta.entries.lastOff)

	require.ErrorIs(t, ta.List(ctx, []string{"many"}), errUsage)
}

func TestShowEntry(t *testing.T) {
	out := captureOutput(t)
	ta := newTestApp(t, true, monday)
	ta.agent.followups = []models.Followup{{ID: 1, Prompt: "What helped?"}}

	require.NoError(t, ta.ShowEntry(context.Background(), []string{"3"}))
	printed := out.String()
	assert.Contains(t, printed, "#3 Monday")
	assert.Contains(t, printed, "Keywords: work, day")
	assert.Contains(t, printed, "? What helped?")
	assert.Equal(t, router.Entry(3), ta.router.Current())
}

func TestShowEntry_Errors(t *testing.T) {
	out := captureOutput(t)
	ta := newTestApp(t, true, monday)
	ctx := context.Background()

	require.ErrorIs(t, ta.ShowEntry(ctx, nil), errUsage)
	require.ErrorIs(t, ta.ShowEntry(ctx, []string{"abc"}), errUsage)
	require.Error(t, ta.ShowEntry(ctx, []string{"99"}))

	printed := out.String()
	assert.Contains(t, printed, "Usage: entry <id>")
	assert.Contains(t, printed, `Invalid entry id "abc"`)
	assert.Contains(t, printed, "Entry not found")
}

func TestEditEntry_OnlyChangedFields(t *testing.T) {
	captureOutput(t)
	ta := newTestApp(t, true, monday)
	stubInputs(t, []string{"", "8"}, nil, []string{""})

	require.NoError(t, ta.EditEntry(context.Background(), []string{"3"}))

	upd := ta.entries.updated[3]
	assert.Nil(t, upd.Title)
	assert.Nil(t, upd.Content)
	require.NotNil(t, upd.MoodLevel)
	assert.Equal(t, 8, *upd.MoodLevel)
}

func TestEditEntry_NothingToChange(t *testing.T) {
	out := captureOutput(t)
	ta := newTestApp(t, true, monday)
	stubInputs(t, []string{"Monday", ""}, nil, []string{""})

	require.NoError(t, ta.EditEntry(context.Background(), []string{"3"}))
	assert.Empty(t, ta.entries.updated)
	assert.Contains(t, out.String(), "Nothing to change.")
}

func TestDeleteEntry(t *testing.T) {
	out := captureOutput(t)
	ta := newTestApp(t, true, monday)
	ctx := context.Background()

	stubInputs(t, []string{"n"}, nil, nil)
	require.NoError(t, ta.DeleteEntry(ctx, []string{"3"}))
	assert.Empty(t, ta.entries.deleted)
	assert.Contains(t, out.String(), "Cancelled.")

	stubInputs(t, []string{"y"}, nil, nil)
	require.NoError(t, ta.DeleteEntry(ctx, []string{"3"}))
	assert.Equal(t, []int64{3}, ta.entries.deleted)
	assert.Equal(t, router.Dashboard, ta.router.Current())
}

func TestAgentCommands(t *testing.T) {
	out := captureOutput(t)
	ta := newTestApp(t, true, monday)
	ctx := context.Background()

	require.NoError(t, ta.Followup(ctx, []string{"3"}))
	require.NoError(t, ta.Companion(ctx, []string{"3"}))
	require.NoError(t, ta.Patterns(ctx))

	assert.Equal(t, []int64{3}, ta.agent.requested)
	printed := out.String()
	assert.Contains(t, printed, "What made today different?")
	assert.Contains(t, printed, "Emotions: calm")
	assert.Contains(t, printed, "Work shapes your week.")
}

func TestAnalytics(t *testing.T) {
	out := captureOutput(t)
	ta := newTestApp(t, true, monday)
	ta.analytics.summary.MoodDistribution = map[string]int{"6": 2}
	ta.analytics.summary.Patterns = []models.Pattern{{Trigger: "work", Confidence: 0.8, Frequency: 3}}

	require.NoError(t, ta.Analytics(context.Background(), []string{"7"}))
	assert.Equal(t, 7, ta.analytics.lastDays)

	printed := out.String()
	assert.Contains(t, printed, "Mood distribution:")
	assert.Contains(t, printed, "work (confidence 80%")
	assert.Contains(t, printed, "Trend, last 7 days:")
	assert.Contains(t, printed, "Monday")
}
