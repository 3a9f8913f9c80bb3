package flow

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"url-admin/pkg/models"
	"url-admin/pkg/session"
)

// fakeAPI keeps records in memory and fails on demand.
type fakeAPI struct {
	mu      sync.Mutex
	records []models.URLRecord
	nextID  int

	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
	PublicErr error
	LoginErr  error

	PublicURL string
	Token     string

	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
	PublicCalls int
	LoginCalls  int

	LastUpdateID string
	LastUpdate   models.URLUpdate
	LastCreate   models.URLCreate
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (*models.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return &models.LoginResponse{Token: f.Token}, nil
}

func (f *fakeAPI) ListURLs(context.Context) ([]models.URLRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]models.URLRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeAPI) CreateURL(_ context.Context, create models.URLCreate) (*models.URLRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.LastCreate = create
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.nextID++
	rec := models.URLRecord{ID: strconv.Itoa(f.nextID), URL: create.URL, Active: create.Active}
	f.records = append(f.records, rec)
	return &rec, nil
}

func (f *fakeAPI) UpdateURL(_ context.Context, id string, update models.URLUpdate) (*models.URLRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	f.LastUpdateID = id
	f.LastUpdate = update
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	for i := range f.records {
		if f.records[i].ID == id {
			if update.URL != nil {
				f.records[i].URL = *update.URL
			}
			if update.Active != nil {
				f.records[i].Active = *update.Active
			}
			rec := f.records[i]
			return &rec, nil
		}
	}
	return nil, &clientNotFound{}
}

func (f *fakeAPI) DeleteURL(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return &clientNotFound{}
}

func (f *fakeAPI) GetOnePublic(context.Context) (*models.PublicURL, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PublicCalls++
	if f.PublicErr != nil {
		return nil, f.PublicErr
	}
	return &models.PublicURL{URL: f.PublicURL}, nil
}

func (f *fakeAPI) seed(records ...models.URLRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, records...)
	f.nextID += len(records)
}

type clientNotFound struct{}

func (*clientNotFound) Error() string { return "url not found" }

func newSession(t *testing.T, token string) *session.Session {
	t.Helper()
	s, err := session.New(context.Background(), session.NewMemoryBackend())
	require.NoError(t, err)
	if token != "" {
		require.NoError(t, s.SetToken(token))
	}
	return s
}
