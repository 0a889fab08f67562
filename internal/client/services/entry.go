package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
)

const (
	DefaultPageSize = 50
	RecentEntries   = 6
)

type EntryService interface {
	Create(ctx context.Context, in models.EntryInput) (*models.Entry, error)
	// GetAll lists entries newest first. limit <= 0 means DefaultPageSize.
	GetAll(ctx context.Context, limit, offset int) ([]models.Entry, error)
	GetByID(ctx context.Context, id int64) (*models.Entry, error)
	Update(ctx context.Context, id int64, upd models.EntryUpdate) (*models.Entry, error)
	Delete(ctx context.Context, id int64) error
}

type entryService struct {
	api API
}

func NewEntryService(api API) EntryService {
	return &entryService{api: api}
}

func (s *entryService) Create(ctx context.Context, in models.EntryInput) (*models.Entry, error) {
	var e models.Entry
	if err := s.api.Post(ctx, "/entries/", in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *entryService) GetAll(ctx context.Context, limit, offset int) ([]models.Entry, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var out []models.Entry
	if err := s.api.Get(ctx, "/entries/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *entryService) GetByID(ctx context.Context, id int64) (*models.Entry, error) {
	var e models.Entry
	if err := s.api.Get(ctx, entryPath(id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *entryService) Update(ctx context.Context, id int64, upd models.EntryUpdate) (*models.Entry, error) {
	var e models.Entry
	if err := s.api.Put(ctx, entryPath(id), upd, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *entryService) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, entryPath(id), nil)
}

func entryPath(id int64) string {
	return fmt.Sprintf("/entries/%d", id)
}
