package cli

import (
	"context"

	"github.com/dmitrijs2005/moodjournal/internal/client/router"
	"github.com/dmitrijs2005/moodjournal/internal/client/services"
)

// Analytics prints mood statistics and the trend for the last [days] days.
func (a *App) Analytics(ctx context.Context, args []string) error {
	if !a.enter(ctx, router.Analytics) {
		return nil
	}

	days, err := optionalInt(args, 0, services.DefaultTrendDays, "days")
	if err != nil {
		return err
	}

	v, err := a.views.Analytics(ctx, days)
	if err != nil {
		return report("Failed to load analytics", err)
	}
	printlnFn(renderAnalytics(v, days))
	return nil
}
