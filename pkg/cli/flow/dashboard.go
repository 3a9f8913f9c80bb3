package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"url-admin/pkg/cli/client"
	"url-admin/pkg/cli/logger"
	"url-admin/pkg/models"
	"url-admin/pkg/utils"
)

type ListState int

const (
	ListLoading ListState = iota
	ListLoaded
	ListLoadError
)

func (s ListState) String() string {
	switch s {
	case ListLoading:
		return "loading"
	case ListLoaded:
		return "loaded"
	case ListLoadError:
		return "load error"
	default:
		return fmt.Sprintf("ListState(%d)", int(s))
	}
}

type EditState int

const (
	EditViewing EditState = iota
	EditEditing
	EditSaving
)

// Draft is the unsaved add form.
type Draft struct {
	URL    string
	Active bool
}

// EditDraft is the unsaved inline edit of one record.
type EditDraft struct {
	ID     string
	URL    string
	Active bool
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	List       ListState
	Records    []models.URLRecord
	Draft      Draft
	Edit       EditState
	Editing    EditDraft
	TestResult string
	Err        string
	CanAdd     bool
	CanSave    bool
}

// Dashboard is the URL list controller. Network calls run without holding
// the lock; when two refreshes overlap the last response to arrive wins.
type Dashboard struct {
	api      URLAPI
	session  SessionStore
	onLogout func()

	mu         sync.Mutex
	list       ListState
	records    []models.URLRecord
	draft      Draft
	edit       EditState
	editing    EditDraft
	testResult string
	errMsg     string
}

// NewDashboard requires onLogout: it is called after an Unauthorized
// response has cleared the session.
func NewDashboard(api URLAPI, session SessionStore, onLogout func()) (*Dashboard, error) {
	if api == nil || session == nil {
		return nil, errors.New("dashboard needs an API client and a session")
	}
	if onLogout == nil {
		return nil, errors.New("dashboard needs an onLogout callback")
	}
	return &Dashboard{
		api:      api,
		session:  session,
		onLogout: onLogout,
		list:     ListLoading,
		records:  []models.URLRecord{},
		draft:    Draft{Active: true},
	}, nil
}

// Snapshot returns a copy of the current state.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	records := make([]models.URLRecord, len(d.records))
	copy(records, d.records)

	return Snapshot{
		List:       d.list,
		Records:    records,
		Draft:      d.draft,
		Edit:       d.edit,
		Editing:    d.editing,
		TestResult: d.testResult,
		Err:        d.errMsg,
		CanAdd:     d.canAddLocked(),
		CanSave:    d.canSaveLocked(),
	}
}

func (d *Dashboard) canAddLocked() bool {
	return d.list != ListLoading && utils.IsHTTPURL(strings.TrimSpace(d.draft.URL))
}

func (d *Dashboard) canSaveLocked() bool {
	return d.edit == EditEditing && utils.IsHTTPURL(d.editing.URL)
}

// CanAdd reports whether the add control is enabled.
func (d *Dashboard) CanAdd() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.canAddLocked()
}

// CanSave reports whether the save control is enabled.
func (d *Dashboard) CanSave() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.canSaveLocked()
}

// handleErr routes err: Unauthorized clears the session and signals logout,
// anything else becomes the displayed message.
func (d *Dashboard) handleErr(op string, err error) error {
	if client.IsUnauthorized(err) {
		logger.Info("%s: unauthorized, clearing session", op)
		if clearErr := d.session.Clear(); clearErr != nil {
			logger.LogError(clearErr, "%s: failed to clear session", op)
		}
		d.onLogout()
		return err
	}

	logger.LogError(err, "%s failed", op)
	d.mu.Lock()
	d.errMsg = err.Error()
	d.mu.Unlock()
	return err
}

// Refresh reloads the whole list. On failure the previous list is kept.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.list = ListLoading
	d.errMsg = ""
	d.mu.Unlock()

	records, err := d.api.ListURLs(ctx)
	if err != nil {
		d.mu.Lock()
		d.list = ListLoadError
		d.mu.Unlock()
		return d.handleErr("refresh", err)
	}

	logger.Log("refresh: loaded %d records", len(records))
	d.mu.Lock()
	d.records = records
	d.list = ListLoaded
	d.mu.Unlock()
	return nil
}

// SetDraftURL updates the add form URL.
func (d *Dashboard) SetDraftURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draft.URL = url
}

// SetDraftActive updates the add form active flag.
func (d *Dashboard) SetDraftActive(active bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draft.Active = active
}

// Add submits the add draft. An empty draft is a no-op. On failure other
// than Unauthorized the draft is kept so the user can retry.
func (d *Dashboard) Add(ctx context.Context) error {
	d.mu.Lock()
	draft := d.draft
	d.mu.Unlock()

	url := strings.TrimSpace(draft.URL)
	if url == "" {
		return nil
	}
	if !utils.IsHTTPURL(url) {
		return ErrInvalidURL
	}

	d.mu.Lock()
	d.errMsg = ""
	d.mu.Unlock()

	created, err := d.api.CreateURL(ctx, models.URLCreate{URL: url, Active: draft.Active})
	if err != nil {
		return d.handleErr("add", err)
	}
	logger.Info("add: created %s", created.ID)

	d.mu.Lock()
	d.draft = Draft{Active: true}
	d.mu.Unlock()

	return d.Refresh(ctx)
}

// BeginEdit puts record in edit mode, replacing any other edit in progress.
func (d *Dashboard) BeginEdit(record models.URLRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.edit == EditSaving {
		return
	}
	d.edit = EditEditing
	d.editing = EditDraft{ID: record.ID, URL: record.URL, Active: record.Active}
}

// SetEditURL updates the edit draft URL.
func (d *Dashboard) SetEditURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.edit == EditEditing {
		d.editing.URL = url
	}
}

// SetEditActive updates the edit draft active flag.
func (d *Dashboard) SetEditActive(active bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.edit == EditEditing {
		d.editing.Active = active
	}
}

// CancelEdit discards the edit draft.
func (d *Dashboard) CancelEdit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.edit == EditSaving {
		return
	}
	d.edit = EditViewing
	d.editing = EditDraft{}
}

// SaveEdit sends the edit draft. On failure other than Unauthorized the
// record stays in edit mode.
func (d *Dashboard) SaveEdit(ctx context.Context) error {
	d.mu.Lock()
	if d.edit == EditSaving {
		d.mu.Unlock()
		return ErrBusy
	}
	if d.edit != EditEditing {
		d.mu.Unlock()
		return nil
	}
	if !utils.IsHTTPURL(d.editing.URL) {
		d.mu.Unlock()
		return ErrInvalidURL
	}
	editing := d.editing
	d.edit = EditSaving
	d.errMsg = ""
	d.mu.Unlock()

	_, err := d.api.UpdateURL(ctx, editing.ID, models.URLUpdate{URL: &editing.URL, Active: &editing.Active})
	if err != nil {
		d.mu.Lock()
		if client.IsUnauthorized(err) {
			d.edit, d.editing = EditViewing, EditDraft{}
		} else {
			d.edit = EditEditing
		}
		d.mu.Unlock()
		return d.handleErr("save", err)
	}
	logger.Info("save: updated %s", editing.ID)

	d.mu.Lock()
	d.edit, d.editing = EditViewing, EditDraft{}
	d.mu.Unlock()

	return d.Refresh(ctx)
}

// ToggleActive flips the active flag of record without touching its URL.
func (d *Dashboard) ToggleActive(ctx context.Context, record models.URLRecord) error {
	d.mu.Lock()
	d.errMsg = ""
	d.mu.Unlock()

	active := !record.Active
	if _, err := d.api.UpdateURL(ctx, record.ID, models.URLUpdate{Active: &active}); err != nil {
		return d.handleErr("toggle", err)
	}
	logger.Info("toggle: %s active=%v", record.ID, active)

	return d.Refresh(ctx)
}

// Remove deletes the record and reloads the list.
func (d *Dashboard) Remove(ctx context.Context, id string) error {
	d.mu.Lock()
	d.errMsg = ""
	d.mu.Unlock()

	if err := d.api.DeleteURL(ctx, id); err != nil {
		return d.handleErr("delete", err)
	}
	logger.Info("delete: removed %s", id)

	d.mu.Lock()
	if d.edit == EditEditing && d.editing.ID == id {
		d.edit, d.editing = EditViewing, EditDraft{}
	}
	d.mu.Unlock()

	return d.Refresh(ctx)
}

// TestRandom fetches one public URL for display. The call carries no
// session, so no failure here logs the user out.
func (d *Dashboard) TestRandom(ctx context.Context) error {
	d.mu.Lock()
	d.errMsg = ""
	d.mu.Unlock()

	resp, err := d.api.GetOnePublic(ctx)
	if err != nil {
		logger.LogError(err, "test random failed")
		d.mu.Lock()
		d.errMsg = err.Error()
		d.mu.Unlock()
		return err
	}

	d.mu.Lock()
	d.testResult = resp.URL
	d.mu.Unlock()
	return nil
}

// DismissError clears the displayed message.
func (d *Dashboard) DismissError() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errMsg = ""
}
