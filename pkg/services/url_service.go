package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"

	"url-admin/pkg/models"
	"url-admin/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrURLNotFound  = errors.New("url not found")
	ErrInvalidURL   = errors.New("url must start with http:// or https://")
	ErrNoActiveURLs = errors.New("no active url")
)

// URLStore is the record storage behind the HTTP handlers. Implementations
// return ErrURLNotFound, ErrInvalidURL and ErrNoActiveURLs so handlers can
// map them to status codes.
type URLStore interface {
	ListURLs(ctx context.Context) ([]models.URLRecord, error)
	CreateURL(ctx context.Context, create models.URLCreate) (*models.URLRecord, error)
	UpdateURL(ctx context.Context, id string, update models.URLUpdate) (*models.URLRecord, error)
	DeleteURL(ctx context.Context, id string) error
	PickActive(ctx context.Context) (*models.URLRecord, error)
}

// URLService keeps URL records in memory in insertion order.
type URLService struct {
	mu      sync.RWMutex
	records []models.URLRecord
	pick    func(n int) int
}

// NewURLService creates an empty store
func NewURLService() *URLService {
	return &URLService{pick: rand.IntN}
}

// ListURLs returns all records in insertion order
func (s *URLService) ListURLs(ctx context.Context) ([]models.URLRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.URLRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// CreateURL validates and stores a new record with a fresh id
func (s *URLService) CreateURL(ctx context.Context, create models.URLCreate) (*models.URLRecord, error) {
	url := strings.TrimSpace(create.URL)
	if !utils.IsHTTPURL(url) {
		return nil, ErrInvalidURL
	}

	rec := models.URLRecord{
		ID:     uuid.NewString(),
		URL:    url,
		Active: create.Active,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return &rec, nil
}

// UpdateURL applies the non-nil fields of update
func (s *URLService) UpdateURL(ctx context.Context, id string, update models.URLUpdate) (*models.URLRecord, error) {
	if update.URL != nil && !utils.IsHTTPURL(strings.TrimSpace(*update.URL)) {
		return nil, ErrInvalidURL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrURLNotFound
	}
	if update.URL != nil {
		s.records[i].URL = strings.TrimSpace(*update.URL)
	}
	if update.Active != nil {
		s.records[i].Active = *update.Active
	}
	rec := s.records[i]
	return &rec, nil
}

// DeleteURL removes a record
func (s *URLService) DeleteURL(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrURLNotFound
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return nil
}

// PickActive returns one active record chosen uniformly at random
func (s *URLService) PickActive(ctx context.Context) (*models.URLRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []models.URLRecord
	for _, rec := range s.records {
		if rec.Active {
			active = append(active, rec)
		}
	}
	if len(active) == 0 {
		return nil, ErrNoActiveURLs
	}
	rec := active[s.pick(len(active))]
	return &rec, nil
}

func (s *URLService) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

var _ URLStore = (*URLService)(nil)
