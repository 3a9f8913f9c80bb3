package tui

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"url-admin/pkg/cli/client"
	"url-admin/pkg/cli/tui/urllist"
	"url-admin/pkg/models"
	"url-admin/pkg/session"
)

type fakeAPI struct {
	mu      sync.Mutex
	records []models.URLRecord
	nextID  int
	listErr error
	creates []models.URLCreate
	deletes []string
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (*models.LoginResponse, error) {
	if username != "alice" || password != "secret" {
		return nil, errors.New("Invalid credentials")
	}
	return &models.LoginResponse{Token: "tok"}, nil
}

func (f *fakeAPI) ListURLs(context.Context) ([]models.URLRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.URLRecord{}, f.records...), nil
}

func (f *fakeAPI) CreateURL(_ context.Context, create models.URLCreate) (*models.URLRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	rec := models.URLRecord{ID: strconv.Itoa(f.nextID), URL: create.URL, Active: create.Active}
	f.records = append(f.records, rec)
	f.creates = append(f.creates, create)
	return &rec, nil
}

func (f *fakeAPI) UpdateURL(_ context.Context, id string, update models.URLUpdate) (*models.URLRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
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
	return nil, &client.RequestError{Message: "url not found", StatusCode: 404}
}

func (f *fakeAPI) DeleteURL(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeAPI) GetOnePublic(context.Context) (*models.PublicURL, error) {
	return nil, errors.New("no url")
}

func newTestSession(t *testing.T, token string) *session.Session {
	t.Helper()
	s, err := session.New(context.Background(), session.NewMemoryBackend())
	require.NoError(t, err)
	if token != "" {
		require.NoError(t, s.SetToken(token))
	}
	return s
}

// collect runs cmd and returns the messages it produced. Commands that
// block (cursor blink timers) are abandoned.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// settle feeds the results of our own commands back into m until none remain
func settle(m tea.Model, cmd tea.Cmd) tea.Model {
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case loginDoneMsg, urllist.ActionDoneMsg:
			var next tea.Cmd
			m, next = m.Update(msg)
			m = settle(m, next)
		}
	}
	return m
}

func press(m tea.Model, msg tea.KeyMsg) tea.Model {
	m, cmd := m.Update(msg)
	return settle(m, cmd)
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func start(t *testing.T, api *fakeAPI, sess *session.Session) tea.Model {
	t.Helper()
	m, err := NewRootModel(context.Background(), api, sess)
	require.NoError(t, err)
	return settle(m, m.Init())
}

func TestRoot_LoginShowsDashboard(t *testing.T) {
	api := &fakeAPI{records: []models.URLRecord{{ID: "1", URL: "https://a.test", Active: true}}}
	sess := newTestSession(t, "")

	m := start(t, api, sess)
	assert.IsType(t, &loginModel{}, m.(*rootModel).current)
	assert.Contains(t, m.View(), "Username")

	m = typeText(m, "alice")
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "secret")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	tok, ok := sess.Token()
	require.True(t, ok)
	assert.Equal(t, "tok", tok)

	assert.IsType(t, &ViewportWrapper{}, m.(*rootModel).current)
	assert.Contains(t, m.View(), "https://a.test")
}

func TestRoot_WrongPasswordStaysOnLogin(t *testing.T) {
	sess := newTestSession(t, "")
	m := start(t, &fakeAPI{}, sess)

	m = typeText(m, "alice")
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "nope")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	_, ok := sess.Token()
	assert.False(t, ok)
	assert.IsType(t, &loginModel{}, m.(*rootModel).current)
	assert.Contains(t, m.View(), "Invalid credentials")
}

func TestRoot_ExpiredSessionReturnsToLogin(t *testing.T) {
	api := &fakeAPI{listErr: client.ErrUnauthorized}
	sess := newTestSession(t, "stale")

	m := start(t, api, sess)

	_, ok := sess.Token()
	assert.False(t, ok)
	assert.IsType(t, &loginModel{}, m.(*rootModel).current)
}

func TestRoot_CtrlLLogsOut(t *testing.T) {
	sess := newTestSession(t, "tok")
	m := start(t, &fakeAPI{}, sess)
	require.IsType(t, &ViewportWrapper{}, m.(*rootModel).current)

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlL})

	_, ok := sess.Token()
	assert.False(t, ok)
	assert.IsType(t, &loginModel{}, m.(*rootModel).current)
}

func TestDashboard_AddToggleDelete(t *testing.T) {
	api := &fakeAPI{}
	sess := newTestSession(t, "tok")
	m := start(t, api, sess)

	m = press(m, keyRune('a'))
	m = typeText(m, "https://new.test?q=1")
	m = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, api.creates, 1)
	assert.Equal(t, models.URLCreate{URL: "https://new.test?q=1", Active: false}, api.creates[0])
	assert.Contains(t, m.View(), "https://new.test?q=1")

	m = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	recs, err := api.ListURLs(context.Background())
	require.NoError(t, err)
	assert.True(t, recs[0].Active)

	m = press(m, keyRune('d'))
	m = press(m, keyRune('y'))
	_ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"1"}, api.deletes)
}

func TestDashboard_DeleteUsesRecordChosenAtPrompt(t *testing.T) {
	api := &fakeAPI{records: []models.URLRecord{
		{ID: "1", URL: "https://a.test", Active: true},
		{ID: "2", URL: "https://b.test", Active: true},
		{ID: "3", URL: "https://c.test", Active: true},
	}}
	m := start(t, api, newTestSession(t, "tok"))

	m = press(m, keyRune('j'))
	m = press(m, keyRune('d'))
	dash := m.(*rootModel).current.(*ViewportWrapper).model.(*dashboardModel)
	require.Equal(t, urllist.ModeDeleteConfirm, dash.mode)
	assert.Contains(t, dash.View(), "Delete https://b.test?")

	// the selection moves while the prompt is open
	dash.selected = 2
	assert.Contains(t, dash.View(), "Delete https://b.test?")

	m = press(m, keyRune('y'))
	_ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"2"}, api.deletes)
}

func TestDashboard_DeleteCancelled(t *testing.T) {
	api := &fakeAPI{records: []models.URLRecord{{ID: "1", URL: "https://a.test", Active: true}}}
	m := start(t, api, newTestSession(t, "tok"))

	m = press(m, keyRune('d'))
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	m = press(m, keyRune('y'))
	_ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, api.deletes)
}

func TestDashboard_InvalidDraftIsNotSubmitted(t *testing.T) {
	api := &fakeAPI{}
	m := start(t, api, newTestSession(t, "tok"))

	m = press(m, keyRune('a'))
	m = typeText(m, "example.com")
	_ = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, api.creates)
}

func TestDashboard_EditSavesBothFields(t *testing.T) {
	api := &fakeAPI{records: []models.URLRecord{{ID: "1", URL: "https://a.test", Active: true}}}
	m := start(t, api, newTestSession(t, "tok"))

	m = press(m, keyRune('e'))
	m = typeText(m, "/x")
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	recs, err := api.ListURLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.URLRecord{ID: "1", URL: "https://a.test/x", Active: false}, recs[0])
	assert.NotContains(t, m.View(), "✎")
}

func TestViewportWrapper_HelpToggle(t *testing.T) {
	m := start(t, &fakeAPI{}, newTestSession(t, "tok"))

	m = press(m, keyRune('?'))
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, m.View(), "Keyboard Shortcuts")

	// '?' is text while the add input has focus
	m = press(m, keyRune('a'))
	m = press(m, keyRune('?'))
	assert.NotContains(t, m.View(), "Keyboard Shortcuts")
}
