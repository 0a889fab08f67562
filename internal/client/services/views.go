package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
)

type Dashboard struct {
	Summary *models.Summary
	Recent  []models.Entry
}

type Analytics struct {
	Summary *models.Summary
	Trends  []models.TrendPoint
}

type EntryDetail struct {
	Entry     *models.Entry
	Followups []models.Followup
}

// Views loads the data behind each screen. The parts of a view are fetched
// concurrently; the first failure cancels the rest and fails the load.
type Views struct {
	entries   EntryService
	agent     AgentService
	analytics AnalyticsService
}

func NewViews(entries EntryService, agent AgentService, analytics AnalyticsService) *Views {
	return &Views{entries: entries, agent: agent, analytics: analytics}
}

func (v *Views) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Summary, err = v.analytics.Summary(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Recent, err = v.entries.GetAll(gctx, RecentEntries, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	return &d, nil
}

func (v *Views) Analytics(ctx context.Context, days int) (*Analytics, error) {
	var a Analytics
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		a.Summary, err = v.analytics.Summary(gctx)
		return err
	})
	g.Go(func() (err error) {
		a.Trends, err = v.analytics.Trends(gctx, days)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load analytics: %w", err)
	}
	return &a, nil
}

func (v *Views) EntryDetail(ctx context.Context, id int64) (*EntryDetail, error) {
	var d EntryDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Entry, err = v.entries.GetByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Followups, err = v.agent.GetFollowups(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load entry %d: %w", id, err)
	}
	return &d, nil
}
