package tui

import (
	"context"

	"url-admin/pkg/cli/flow"
	"url-admin/pkg/cli/logger"

	tea "github.com/charmbracelet/bubbletea"
)

// API is everything the console needs from the backend client.
type API interface {
	flow.LoginAPI
	flow.URLAPI
}

// rootModel is the Bubble Tea model that acts as the app shell. It shows the
// login form or the URL list depending on the shell state, and rebuilds the
// current screen whenever that state flips.
type rootModel struct {
	ctx     context.Context
	api     API
	session flow.SessionStore
	shell   *flow.Shell

	current       tea.Model
	authenticated bool
	size          *tea.WindowSizeMsg
}

// NewRootModel constructs the root app-shell model.
func NewRootModel(ctx context.Context, api API, session flow.SessionStore) (tea.Model, error) {
	m := &rootModel{
		ctx:     ctx,
		api:     api,
		session: session,
		shell:   flow.NewShell(session),
	}
	if err := m.switchScreen(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *rootModel) Init() tea.Cmd {
	return m.current.Init()
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = &msg
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			if m.authenticated {
				if err := m.shell.Logout(); err != nil {
					logger.LogError(err, "logout: failed to clear session")
				}
				if err := m.switchScreen(); err != nil {
					logger.LogError(err, "logout: failed to build login screen")
					return m, tea.Quit
				}
				return m, m.current.Init()
			}
		}
	}

	var cmd tea.Cmd
	m.current, cmd = m.current.Update(msg)

	// Login success and session expiry both arrive through the shell
	if m.shell.Authenticated() != m.authenticated {
		if err := m.switchScreen(); err != nil {
			logger.LogError(err, "failed to switch screen")
			return m, tea.Quit
		}
		return m, tea.Batch(cmd, m.current.Init())
	}
	return m, cmd
}

// switchScreen builds a fresh login form or URL list for the shell state
func (m *rootModel) switchScreen() error {
	m.authenticated = m.shell.Authenticated()

	var (
		next tea.Model
		err  error
	)
	if m.authenticated {
		logger.Info("showing URL list")
		next, err = NewDashboardModel(m.ctx, m.api, m.session, m.shell.SessionExpired)
	} else {
		logger.Info("showing login form")
		next, err = newLoginModel(m.ctx, m.api, m.session, m.shell.LoggedIn)
	}
	if err != nil {
		return err
	}

	m.current = next
	if m.size != nil {
		m.current, _ = m.current.Update(*m.size)
	}
	return nil
}

func (m *rootModel) View() string {
	return m.current.View()
}
