package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"til-cli/internal/api"
)

type loginMode int

const (
	loginModeLogin loginMode = iota
	loginModeSignup
)

const (
	loginFieldUsername = iota
	loginFieldEmail
	loginFieldPassword
	loginFieldCount
)

// loginModel is the unauthenticated gate: a login form that can flip
// into a signup form. Nothing past this view is reachable without a
// token.
type loginModel struct {
	mode    loginMode
	inputs  [loginFieldCount]textinput.Model
	focus   int
	errText string
}

func newLoginModel() loginModel {
	var m loginModel

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 60

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120

	m.inputs[loginFieldUsername] = username
	m.inputs[loginFieldEmail] = email
	m.inputs[loginFieldPassword] = password

	m.focus = loginFieldEmail
	m.inputs[loginFieldEmail].Focus()
	return m
}

func (m loginModel) fields() []int {
	if m.mode == loginModeSignup {
		return []int{loginFieldUsername, loginFieldEmail, loginFieldPassword}
	}
	return []int{loginFieldEmail, loginFieldPassword}
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *loginModel) cycleFocus(delta int) {
	fields := m.fields()
	cur := 0
	for i, f := range fields {
		if f == m.focus {
			cur = i
			break
		}
	}
	next := (cur + delta + len(fields)) % len(fields)

	m.inputs[m.focus].Blur()
	m.focus = fields[next]
	m.inputs[m.focus].Focus()
}

func (m *loginModel) toggleMode() {
	if m.mode == loginModeLogin {
		m.mode = loginModeSignup
		m.inputs[m.focus].Blur()
		m.focus = loginFieldUsername
		m.inputs[m.focus].Focus()
	} else {
		m.mode = loginModeLogin
		if m.focus == loginFieldUsername {
			m.inputs[m.focus].Blur()
			m.focus = loginFieldEmail
			m.inputs[m.focus].Focus()
		}
	}
	m.errText = ""
}

func (m loginModel) view(width int) string {
	if width < 40 {
		width = 40
	}

	title := "Log in"
	if m.mode == loginModeSignup {
		title = "Sign up"
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title), ""}
	for _, f := range m.fields() {
		label := [loginFieldCount]string{"username", "email", "password"}[f]
		lines = append(lines, styleMuted().Render(label), m.inputs[f].View())
	}
	if m.errText != "" {
		lines = append(lines, "", styleError().Render(m.errText))
	}
	return strings.Join(lines, "\n")
}

func (m loginModel) footer() string {
	if m.mode == loginModeSignup {
		return "enter: sign up  tab: next field  ctrl+s: back to login  ctrl+c: quit"
	}
	return "enter: log in  tab: next field  ctrl+s: sign up  ctrl+c: quit"
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.login.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.login.cycleFocus(-1)
		return m, nil
	case "ctrl+s":
		m.login.toggleMode()
		return m, nil
	case "enter":
		email := strings.TrimSpace(m.login.inputs[loginFieldEmail].Value())
		password := m.login.inputs[loginFieldPassword].Value()
		if m.login.mode == loginModeSignup {
			username := strings.TrimSpace(m.login.inputs[loginFieldUsername].Value())
			if username == "" || email == "" || password == "" {
				m.login.errText = "all fields are required"
				return m, nil
			}
			m.loading = true
			return m, m.signup(username, email, password)
		}
		if email == "" || password == "" {
			m.login.errText = "email and password are required"
			return m, nil
		}
		m.loading = true
		return m, m.doLogin(email, password)
	}

	var cmd tea.Cmd
	m.login, cmd = m.login.update(msg)
	return m, cmd
}

func (m appModel) doLogin(email, password string) tea.Cmd {
	sess, client := m.sess, m.client
	return func() tea.Msg {
		return loginDoneMsg{err: sess.Login(context.Background(), client, email, password)}
	}
}

func (m appModel) signup(username, email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.Signup(context.Background(), api.SignupRequest{
			Username: username,
			Email:    email,
			Password: password,
		})
		return signupDoneMsg{err: err}
	}
}
