package tui

import (
	"context"
	"strings"

	"url-admin/pkg/cli/flow"
	"url-admin/pkg/cli/logger"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldUsername = iota
	fieldPassword
)

// loginModel is the username/password form. Submitting hands the
// credentials to the login flow; the shell notices the new session.
type loginModel struct {
	ctx    context.Context
	flow   *flow.LoginFlow
	inputs []textinput.Model
	focus  int
}

func newLoginModel(ctx context.Context, api flow.LoginAPI, session flow.SessionStore, onSuccess func()) (*loginModel, error) {
	lf, err := flow.NewLoginFlow(api, session, onSuccess)
	if err != nil {
		return nil, err
	}

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 128
	username.Width = 40
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &loginModel{
		ctx:    ctx,
		flow:   lf,
		inputs: []textinput.Model{username, password},
		focus:  fieldUsername,
	}, nil
}

func (m *loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		if msg.err != nil {
			// Keep the username, make the user retype the password
			m.inputs[fieldPassword].Reset()
			return m, m.setFocus(fieldPassword)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % len(m.inputs))
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
		case "enter":
			if m.focus == fieldUsername && m.inputs[fieldPassword].Value() == "" {
				return m, m.setFocus(fieldPassword)
			}
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *loginModel) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m *loginModel) submit() tea.Cmd {
	if state, _ := m.flow.State(); state == flow.LoginSubmitting {
		return nil
	}
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	password := m.inputs[fieldPassword].Value()
	logger.Log("loginModel.submit: username=%q", username)

	return func() tea.Msg {
		return loginDoneMsg{err: m.flow.Submit(m.ctx, username, password)}
	}
}

func (m *loginModel) View() string {
	var b strings.Builder
	b.WriteString(renderTitle("URL Admin"))
	b.WriteString(renderDivider(40))
	b.WriteString("\n\n")

	b.WriteString(fieldLabelStyle.Render("Username:") + "\n")
	b.WriteString(m.inputs[fieldUsername].View() + "\n\n")
	b.WriteString(fieldLabelStyle.Render("Password:") + "\n")
	b.WriteString(m.inputs[fieldPassword].View() + "\n\n")

	state, errMsg := m.flow.State()
	switch state {
	case flow.LoginSubmitting:
		b.WriteString(renderLoadingState("Logging in..."))
	case flow.LoginFailed:
		b.WriteString(renderInlineError(errMsg) + "\n")
	case flow.LoginSuccess:
		b.WriteString(renderSuccess("Logged in") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("(Tab to switch fields, Enter to log in, Ctrl+C to quit)") + "\n")
	return b.String()
}
