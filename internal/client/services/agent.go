package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
)

// AgentService wraps the AI agent endpoints.
type AgentService interface {
	RequestFollowup(ctx context.Context, entryID int64) (*models.Followup, error)
	GetFollowups(ctx context.Context, entryID int64) ([]models.Followup, error)
	Companion(ctx context.Context, entryID int64) (*models.Companion, error)
	Patterns(ctx context.Context) (*models.PatternAnalysis, error)
}

type agentService struct {
	api API
}

func NewAgentService(api API) AgentService {
	return &agentService{api: api}
}

func (s *agentService) RequestFollowup(ctx context.Context, entryID int64) (*models.Followup, error) {
	var f models.Followup
	if err := s.api.Post(ctx, "/agent/followup", models.FollowupRequest{EntryID: entryID}, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *agentService) GetFollowups(ctx context.Context, entryID int64) ([]models.Followup, error) {
	var out []models.Followup
	if err := s.api.Get(ctx, fmt.Sprintf("/agent/followups/%d", entryID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *agentService) Companion(ctx context.Context, entryID int64) (*models.Companion, error) {
	var c models.Companion
	if err := s.api.Get(ctx, fmt.Sprintf("/agent/companion/%d", entryID), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *agentService) Patterns(ctx context.Context) (*models.PatternAnalysis, error) {
	var p models.PatternAnalysis
	if err := s.api.Get(ctx, "/agent/patterns", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
