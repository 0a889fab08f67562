package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
)

const DefaultTrendDays = 30

type AnalyticsService interface {
	Summary(ctx context.Context) (*models.Summary, error)
	// Trends returns per-entry points for the last days days. days <= 0
	// means DefaultTrendDays.
	Trends(ctx context.Context, days int) ([]models.TrendPoint, error)
}

type analyticsService struct {
	api API
}

func NewAnalyticsService(api API) AnalyticsService {
	return &analyticsService{api: api}
}

func (s *analyticsService) Summary(ctx context.Context) (*models.Summary, error) {
	var sum models.Summary
	if err := s.api.Get(ctx, "/analytics/summary", nil, &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

func (s *analyticsService) Trends(ctx context.Context, days int) ([]models.TrendPoint, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))

	var out models.Trends
	if err := s.api.Get(ctx, "/analytics/trends", q, &out); err != nil {
		return nil, err
	}
	return out.Trends, nil
}
