package tui

import (
	"context"
	"fmt"
	"strings"

	"url-admin/pkg/cli/flow"
	"url-admin/pkg/cli/logger"
	"url-admin/pkg/cli/tui/urllist"
	"url-admin/pkg/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// dashboardModel drives the URL list controller from the keyboard. All
// state lives in the controller; this model only keeps what is needed to
// draw it (selection, mode and the text inputs).
type dashboardModel struct {
	ctx  context.Context
	flow *flow.Dashboard

	selected int
	mode     int
	pending  int

	addInput  textinput.Model
	editInput textinput.Model
	confirm   textinput.Model

	// deleteTarget is the record chosen when the confirm prompt opened
	deleteTarget models.URLRecord

	width int
}

// listHeaderLines is the number of lines renderList writes before the first row
const listHeaderLines = 2

func newDashboardModel(ctx context.Context, api flow.URLAPI, session flow.SessionStore, onLogout func()) (*dashboardModel, error) {
	d, err := flow.NewDashboard(api, session, onLogout)
	if err != nil {
		return nil, err
	}

	addInput := textinput.New()
	addInput.Placeholder = "https://example.com"
	addInput.CharLimit = 2048
	addInput.Width = 60

	editInput := textinput.New()
	editInput.CharLimit = 2048
	editInput.Width = 60

	confirm := textinput.New()
	confirm.Placeholder = "y/N"
	confirm.CharLimit = 1
	confirm.Width = 10

	return &dashboardModel{
		ctx:       ctx,
		flow:      d,
		mode:      urllist.ModeList,
		addInput:  addInput,
		editInput: editInput,
		confirm:   confirm,
	}, nil
}

// NewDashboardModel wraps the URL list in a scrolling viewport with help.
func NewDashboardModel(ctx context.Context, api flow.URLAPI, session flow.SessionStore, onLogout func()) (tea.Model, error) {
	model, err := newDashboardModel(ctx, api, session, onLogout)
	if err != nil {
		return nil, err
	}
	return NewViewportWrapper(model, ViewportConfig{
		Title:       "URL Admin",
		ShowHeader:  true,
		ShowFooter:  true,
		UseViewport: true,
		EnableHelp:  true,
		HelpContent: DashboardHelpContent,
		MinWidth:    60,
		MinHeight:   10,
	}), nil
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.run(urllist.ActionRefresh, m.flow.Refresh)
}

// run executes one controller action off the UI goroutine
func (m *dashboardModel) run(action string, fn func(ctx context.Context) error) tea.Cmd {
	m.pending++
	ctx := m.ctx
	return func() tea.Msg {
		return urllist.ActionDoneMsg{Action: action, Err: fn(ctx)}
	}
}

// CapturesInput reports whether keys are going to a text input
func (m *dashboardModel) CapturesInput() bool {
	return m.mode == urllist.ModeAdd || m.mode == urllist.ModeEdit || m.mode == urllist.ModeDeleteConfirm
}

// SelectedLine returns the content line of the selected row
func (m *dashboardModel) SelectedLine() int {
	if len(m.flow.Snapshot().Records) == 0 {
		return -1
	}
	return listHeaderLines + m.selected
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width == 0 {
			m.width = urllist.DefaultWidth
		}
		return m, nil

	case urllist.ActionDoneMsg:
		if m.pending > 0 {
			m.pending--
		}
		logger.Log("dashboardModel.Update: %s done, err=%v", msg.Action, msg.Err)
		snap := m.flow.Snapshot()
		m.selected = clampSelection(m.selected, len(snap.Records))

		switch msg.Action {
		case urllist.ActionAdd:
			if msg.Err == nil && m.mode == urllist.ModeAdd {
				m.addInput.Reset()
				m.addInput.Blur()
				m.mode = urllist.ModeList
			}
		case urllist.ActionSave:
			if snap.Edit == flow.EditViewing && m.mode == urllist.ModeEdit {
				m.editInput.Blur()
				m.mode = urllist.ModeList
			}
		case urllist.ActionDelete:
			if m.mode == urllist.ModeEdit && snap.Edit == flow.EditViewing {
				m.mode = urllist.ModeList
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case urllist.ModeAdd:
			return m.handleAddKeys(msg)
		case urllist.ModeEdit:
			return m.handleEditKeys(msg)
		case urllist.ModeDeleteConfirm:
			return m.handleDeleteConfirmKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}

	return m, nil
}

func (m *dashboardModel) selectedRecord() (models.URLRecord, bool) {
	records := m.flow.Snapshot().Records
	if m.selected < 0 || m.selected >= len(records) {
		return models.URLRecord{}, false
	}
	return records[m.selected], true
}

func (m *dashboardModel) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	total := len(m.flow.Snapshot().Records)
	if newSelected, handled := handleListNavigation(key, m.selected, total); handled {
		m.selected = newSelected
		return m, nil
	}

	switch {
	case key == "a":
		m.mode = urllist.ModeAdd
		m.addInput.SetValue(m.flow.Snapshot().Draft.URL)
		return m, m.addInput.Focus()

	case key == "e":
		rec, ok := m.selectedRecord()
		if !ok {
			return m, nil
		}
		m.flow.BeginEdit(rec)
		if m.flow.Snapshot().Edit != flow.EditEditing {
			return m, nil
		}
		m.mode = urllist.ModeEdit
		m.editInput.SetValue(rec.URL)
		m.editInput.CursorEnd()
		return m, m.editInput.Focus()

	case isSpaceKey(key):
		rec, ok := m.selectedRecord()
		if !ok {
			return m, nil
		}
		return m, m.run(urllist.ActionToggle, func(ctx context.Context) error {
			return m.flow.ToggleActive(ctx, rec)
		})

	case key == "d":
		rec, ok := m.selectedRecord()
		if !ok {
			return m, nil
		}
		m.deleteTarget = rec
		m.mode = urllist.ModeDeleteConfirm
		m.confirm.Reset()
		return m, m.confirm.Focus()

	case key == "t":
		return m, m.run(urllist.ActionTest, m.flow.TestRandom)

	case key == "r":
		return m, m.run(urllist.ActionRefresh, m.flow.Refresh)

	case key == "x":
		m.flow.DismissError()
		return m, nil
	}
	return m, nil
}

func (m *dashboardModel) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case key == "esc":
		// The draft stays in the controller for the next 'a'
		m.addInput.Blur()
		m.mode = urllist.ModeList
		return m, nil
	case isSpaceKey(key):
		m.flow.SetDraftActive(!m.flow.Snapshot().Draft.Active)
		return m, nil
	case key == "enter":
		if !m.flow.CanAdd() {
			return m, nil
		}
		return m, m.run(urllist.ActionAdd, m.flow.Add)
	}

	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	m.flow.SetDraftURL(m.addInput.Value())
	return m, cmd
}

func (m *dashboardModel) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.flow.CancelEdit()
		if m.flow.Snapshot().Edit == flow.EditViewing {
			m.editInput.Blur()
			m.mode = urllist.ModeList
		}
		return m, nil
	case "tab":
		m.flow.SetEditActive(!m.flow.Snapshot().Editing.Active)
		return m, nil
	case "enter":
		if !m.flow.CanSave() {
			return m, nil
		}
		return m, m.run(urllist.ActionSave, m.flow.SaveEdit)
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.flow.SetEditURL(m.editInput.Value())
	return m, cmd
}

func (m *dashboardModel) handleDeleteConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.confirm.Blur()
		m.mode = urllist.ModeList
		m.deleteTarget = models.URLRecord{}
		return m, nil
	case "enter":
		answer := strings.ToLower(strings.TrimSpace(m.confirm.Value()))
		m.confirm.Blur()
		m.mode = urllist.ModeList
		id := m.deleteTarget.ID
		m.deleteTarget = models.URLRecord{}
		if id == "" || (answer != "y" && answer != "yes") {
			return m, nil
		}
		return m, m.run(urllist.ActionDelete, func(ctx context.Context) error {
			return m.flow.Remove(ctx, id)
		})
	default:
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}
}

// getMaxWidth returns the maximum width for rendering, using DefaultWidth as fallback
func (m *dashboardModel) getMaxWidth() int {
	if m.width > 0 {
		return m.width
	}
	return urllist.DefaultWidth
}

func (m *dashboardModel) View() string {
	snap := m.flow.Snapshot()
	maxWidth := m.getMaxWidth()

	var b strings.Builder
	b.WriteString(m.renderList(snap, maxWidth))
	b.WriteString("\n")

	switch m.mode {
	case urllist.ModeAdd:
		b.WriteString(m.renderAddForm(snap))
	case urllist.ModeDeleteConfirm:
		b.WriteString(boldStyle.Render("Delete "+truncateURL(m.deleteTarget.URL, maxWidth-20)+"?") + " ")
		b.WriteString(m.confirm.View() + "\n")
	}

	b.WriteString(m.renderStatus(snap))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.hint()) + "\n")
	return b.String()
}

func (m *dashboardModel) renderList(snap flow.Snapshot, maxWidth int) string {
	var b strings.Builder

	header := fmt.Sprintf("URLs (%d)", len(snap.Records))
	if snap.List == flow.ListLoading {
		header += "  " + infoStyle.Render("loading...")
	}
	b.WriteString(boldStyle.Render(header) + "\n\n")

	if len(snap.Records) == 0 {
		if snap.List == flow.ListLoaded {
			b.WriteString(mutedStyle.Render("No URLs yet. Press 'a' to add one.") + "\n")
		}
		return b.String()
	}

	for i, rec := range snap.Records {
		if m.mode == urllist.ModeEdit && snap.Editing.ID == rec.ID {
			b.WriteString(m.renderEditRow(snap))
			continue
		}
		b.WriteString(renderURLRow(rec, i == m.selected, maxWidth))
	}
	return b.String()
}

func (m *dashboardModel) renderEditRow(snap flow.Snapshot) string {
	row := selectedMarkerStyle.Render("✎") + " " + renderActiveBadge(snap.Editing.Active) + " " + m.editInput.View()
	if snap.Edit == flow.EditSaving {
		row += " " + infoStyle.Render("saving...")
	} else if !snap.CanSave {
		row += " " + mutedStyle.Render("(must start with http:// or https://)")
	}
	return row + "\n"
}

func (m *dashboardModel) renderAddForm(snap flow.Snapshot) string {
	var b strings.Builder
	b.WriteString(renderDivider(min(m.getMaxWidth(), 60)) + "\n")
	b.WriteString(fieldLabelStyle.Render("New URL:") + " " + m.addInput.View() + "\n")
	b.WriteString(fieldLabelStyle.Render("Active:") + " " + yesNo(snap.Draft.Active) + "\n")
	if !snap.CanAdd {
		b.WriteString(mutedStyle.Render("Enter a URL starting with http:// or https://") + "\n")
	}
	return b.String()
}

func (m *dashboardModel) renderStatus(snap flow.Snapshot) string {
	var b strings.Builder
	if m.pending > 0 && snap.List != flow.ListLoading {
		b.WriteString(renderLoadingState("Working..."))
	}
	if snap.TestResult != "" {
		b.WriteString(fieldLabelStyle.Render("Random URL:") + " " + snap.TestResult + "\n")
	}
	if snap.Err != "" {
		b.WriteString(renderInlineError(snap.Err) + " " + helpStyle.Render("(x to dismiss)") + "\n")
	}
	return b.String()
}

func (m *dashboardModel) hint() string {
	switch m.mode {
	case urllist.ModeAdd:
		return "(Space toggles active, Enter to add, Esc to close)"
	case urllist.ModeEdit:
		return "(Tab toggles active, Enter to save, Esc to cancel)"
	case urllist.ModeDeleteConfirm:
		return "(y + Enter to delete, Esc to cancel)"
	default:
		return "(a add, e edit, space toggle, d delete, t test, r refresh)"
	}
}
