package cli

import (
	"context"

	"github.com/dmitrijs2005/moodjournal/internal/client/router"
)

// Followup asks the AI agent for a new reflection question on an entry.
func (a *App) Followup(ctx context.Context, args []string) error {
	id, err := parseID("followup", args)
	if err != nil {
		return err
	}
	if !a.enter(ctx, router.Entry(id)) {
		return nil
	}

	f, err := a.agent.RequestFollowup(ctx, id)
	if err != nil {
		return report("Failed to get followup", err)
	}
	printlnFn(renderFollowup(*f))
	return nil
}

// Companion prints the AI companion reading of an entry.
func (a *App) Companion(ctx context.Context, args []string) error {
	id, err := parseID("companion", args)
	if err != nil {
		return err
	}
	if !a.enter(ctx, router.Entry(id)) {
		return nil
	}

	c, err := a.agent.Companion(ctx, id)
	if err != nil {
		return report("Failed to get companion response", err)
	}
	printlnFn(renderCompanion(*c))
	return nil
}

// Patterns prints what recurs across all entries.
func (a *App) Patterns(ctx context.Context) error {
	if !a.enter(ctx, router.Analytics) {
		return nil
	}

	p, err := a.agent.Patterns(ctx)
	if err != nil {
		return report("Failed to analyze patterns", err)
	}
	printlnFn(renderPatternAnalysis(*p))
	return nil
}
