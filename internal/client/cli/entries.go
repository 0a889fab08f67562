package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
	"github.com/dmitrijs2005/moodjournal/internal/client/router"
	"github.com/dmitrijs2005/moodjournal/internal/client/services"
)

// getMultiline is a test seam like getSimpleText.
var getMultiline = GetMultiline

// Dashboard shows the summary and the most recent entries.
func (a *App) Dashboard(ctx context.Context) error {
	if !a.enter(ctx, router.Dashboard) {
		return nil
	}

	d, err := a.views.Dashboard(ctx)
	if err != nil {
		return report("Failed to load dashboard", err)
	}

	printlnFn(renderSummaryLine(d.Summary))
	if len(d.Recent) == 0 {
		printlnFn("No entries yet. Type 'journal' to write your first one.")
		return nil
	}
	printlnFn("Recent entries:")
	for _, e := range d.Recent {
		printlnFn(renderEntryLine(e))
	}
	return nil
}

// Journal prompts for a new entry and saves it.
func (a *App) Journal(ctx context.Context) error {
	if !a.enter(ctx, router.Journal) {
		return nil
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "How are you feeling today?", a.out)
	if err != nil {
		return err
	}
	moodText, err := getSimpleText(a.reader, fmt.Sprintf("Mood level %d-%d [%d]", models.MinMood, models.MaxMood, models.DefaultMood), a.out)
	if err != nil {
		return err
	}
	mood, err := parseMood(moodText, models.DefaultMood)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	in := models.EntryInput{Title: strings.TrimSpace(title), Content: content, MoodLevel: mood}
	if err := in.Validate(); err != nil {
		printlnFn("Error:", err)
		return err
	}

	e, err := a.entries.Create(ctx, in)
	if err != nil {
		return report("Failed to create entry", err)
	}

	printlnFn(fmt.Sprintf("Entry saved successfully! (#%d, sentiment %s)", e.ID, renderSentiment(e.SentimentScore)))
	a.navigate(ctx, router.Dashboard)
	return nil
}

// List prints a page of entries, newest first.
func (a *App) List(ctx context.Context, args []string) error {
	if !a.enter(ctx, router.Dashboard) {
		return nil
	}

	limit, err := optionalInt(args, 0, services.DefaultPageSize, "limit")
	if err != nil {
		return err
	}
	offset, err := optionalInt(args, 1, 0, "offset")
	if err != nil {
		return err
	}

	list, err := a.entries.GetAll(ctx, limit, offset)
	if err != nil {
		return report("Failed to load entries", err)
	}
	if len(list) == 0 {
		printlnFn("No entries.")
		return nil
	}
	for _, e := range list {
		printlnFn(renderEntryLine(e))
	}
	return nil
}

// ShowEntry prints one entry with its follow-up questions.
func (a *App) ShowEntry(ctx context.Context, args []string) error {
	id, err := parseID("entry", args)
	if err != nil {
		return err
	}
	if !a.enter(ctx, router.Entry(id)) {
		return nil
	}

	d, err := a.views.EntryDetail(ctx, id)
	if err != nil {
		return report("Failed to load entry", err)
	}

	printlnFn(renderEntry(*d.Entry))
	if len(d.Followups) == 0 {
		printlnFn("No follow-ups yet. Type 'followup " + fmt.Sprint(id) + "' to ask for one.")
		return nil
	}
	printlnFn("Follow-ups:")
	for _, f := range d.Followups {
		printlnFn(renderFollowup(f))
	}
	return nil
}

// EditEntry prompts for new values; empty input keeps the current one.
func (a *App) EditEntry(ctx context.Context, args []string) error {
	id, err := parseID("edit", args)
	if err != nil {
		return err
	}
	if !a.enter(ctx, router.Entry(id)) {
		return nil
	}

	cur, err := a.entries.GetByID(ctx, id)
	if err != nil {
		return report("Failed to load entry", err)
	}

	var upd models.EntryUpdate

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", cur.Title), a.out)
	if err != nil {
		return err
	}
	if t := strings.TrimSpace(title); t != "" && t != cur.Title {
		upd.Title = &t
	}

	content, err := getMultiline(a.reader, "Content (empty keeps the current text)", a.out)
	if err != nil {
		return err
	}
	if content != "" && content != cur.Content {
		upd.Content = &content
	}

	moodText, err := getSimpleText(a.reader, fmt.Sprintf("Mood level %d-%d [%d]", models.MinMood, models.MaxMood, cur.MoodLevel), a.out)
	if err != nil {
		return err
	}
	mood, err := parseMood(moodText, cur.MoodLevel)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	if mood != cur.MoodLevel {
		if err := models.ValidateMood(mood); err != nil {
			printlnFn("Error:", err)
			return err
		}
		upd.MoodLevel = &mood
	}

	if upd.IsEmpty() {
		printlnFn("Nothing to change.")
		return nil
	}

	e, err := a.entries.Update(ctx, id, upd)
	if err != nil {
		return report("Failed to update entry", err)
	}
	printlnFn("Entry updated.")
	printlnFn(renderEntryLine(*e))
	return nil
}

// DeleteEntry removes an entry after confirmation.
func (a *App) DeleteEntry(ctx context.Context, args []string) error {
	id, err := parseID("delete", args)
	if err != nil {
		return err
	}
	if !a.enter(ctx, router.Entry(id)) {
		return nil
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete entry #%d? [y/N]", id), a.out)
	if err != nil {
		return err
	}
	if ans := strings.ToLower(strings.TrimSpace(answer)); ans != "y" && ans != "yes" {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.entries.Delete(ctx, id); err != nil {
		return report("Failed to delete entry", err)
	}
	printlnFn("Entry deleted.")
	a.navigate(ctx, router.Dashboard)
	return nil
}
