package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"til-cli/internal/api"
	"til-cli/internal/board"
	"til-cli/internal/directory"
	"til-cli/internal/session"
	"til-cli/internal/store"
)

type view int

const (
	viewLogin view = iota
	viewProjects
	viewBoard
	viewDetail
)

type (
	projectsLoadedMsg struct{ err error }
	projectCreatedMsg struct{ err error }
	boardLoadedMsg    struct {
		fromCache bool
		err       error
	}
	cardCreatedMsg   struct{ err error }
	columnCreatedMsg struct{ err error }
	moveDoneMsg    struct{ res board.MoveResult }
	reorderDoneMsg struct{ res board.MoveResult }
	loginDoneMsg   struct{ err error }
	signupDoneMsg  struct{ err error }
)

type appModel struct {
	client *api.Client
	sess   *session.Session
	logger *log.Logger

	dir  *directory.Directory
	ctrl *board.Controller

	width  int
	height int

	view view

	login loginModel

	projectsList    list.Model
	creatingProject bool
	projectInput    textinput.Model

	sel            boardSelection
	creatingCard   bool
	cardInput      textinput.Model
	creatingColumn bool
	columnInput    textinput.Model

	banner  string
	loading bool
}

func newAppModel(client *api.Client, sess *session.Session, cache *store.Cache, logger *log.Logger) appModel {
	if logger == nil {
		logger = log.Default()
	}
	m := appModel{
		client: client,
		sess:   sess,
		logger: logger,
		dir:    directory.New(client, logger),
		ctrl:   board.NewController(client, cache, logger),
		login:  newLoginModel(),
	}

	m.projectsList = newList("Projects")

	m.projectInput = textinput.New()
	m.projectInput.Placeholder = "Project title"
	m.projectInput.CharLimit = 120

	m.cardInput = textinput.New()
	m.cardInput.Placeholder = "Card title"
	m.cardInput.CharLimit = 200

	m.columnInput = textinput.New()
	m.columnInput.Placeholder = "Column title"
	m.columnInput.CharLimit = 120

	if sess.State() == session.Authenticated {
		m.view = viewProjects
		m.loading = true
	} else {
		m.view = viewLogin
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.view == viewProjects {
		return m.loadProjects()
	}
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case loginDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.login.errText = api.UserMessage(msg.err, "login failed: check your account details")
			return m, nil
		}
		m.login.errText = ""
		m.view = viewProjects
		m.loading = true
		return m, m.loadProjects()

	case signupDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.login.errText = api.UserMessage(msg.err, "signup failed: check the submitted fields")
			return m, nil
		}
		m.login.mode = loginModeLogin
		m.login.errText = ""
		m.banner = "account created, log in"
		return m, nil

	case projectsLoadedMsg:
		m.loading = false
		if m.expireOnAuth(msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.banner = api.UserMessage(msg.err, "could not load projects")
			return m, nil
		}
		m.banner = ""
		m.refreshProjects()
		return m, nil

	case projectCreatedMsg:
		m.loading = false
		if m.expireOnAuth(msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.banner = api.UserMessage(msg.err, "could not create project")
			return m, nil
		}
		m.banner = ""
		m.refreshProjects()
		return m, nil

	case boardLoadedMsg:
		m.loading = false
		if m.expireOnAuth(msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.banner = api.UserMessage(msg.err, "could not load board")
			m.view = viewProjects
			return m, nil
		}
		m.sel = m.clampSelection(m.sel)
		if msg.fromCache {
			// Cached paint first, authoritative state right behind it.
			m.banner = "showing cached board, refreshing"
			m.loading = true
			return m, m.loadBoard()
		}
		m.banner = ""
		return m, nil

	case cardCreatedMsg:
		m.loading = false
		if m.expireOnAuth(msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.banner = api.UserMessage(msg.err, "could not create card")
			return m, nil
		}
		// Reload so the server-assigned card id and position land in the
		// working set.
		m.loading = true
		return m, m.loadBoard()

	case columnCreatedMsg:
		m.loading = false
		if m.expireOnAuth(msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.banner = api.UserMessage(msg.err, "could not create column")
			return m, nil
		}
		m.loading = true
		return m, m.loadBoard()

	case moveDoneMsg:
		if m.expireOnAuth(msg.res.Err) {
			return m, nil
		}
		switch msg.res.Outcome {
		case board.OutcomeRolledBack:
			m.banner = "move failed: " + api.UserMessage(msg.res.Err, "the board was restored")
		case board.OutcomeApplied:
			m.banner = ""
		}
		m.sel = m.clampSelection(m.sel)
		return m, nil

	case reorderDoneMsg:
		if m.expireOnAuth(msg.res.Err) {
			return m, nil
		}
		if msg.res.Outcome == board.OutcomeRolledBack {
			m.banner = "reorder failed: " + api.UserMessage(msg.res.Err, "the board was restored")
		}
		m.sel = m.clampSelection(m.sel)
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m.routeToActiveControl(msg)
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case viewLogin:
		return m.updateLogin(msg)
	case viewProjects:
		return m.updateProjects(msg)
	case viewBoard:
		return m.updateBoard(msg)
	case viewDetail:
		switch msg.String() {
		case "esc", "backspace", "q":
			m.view = viewBoard
			return m, nil
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) routeToActiveControl(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.view == viewLogin:
		m.login, cmd = m.login.update(msg)
	case m.view == viewProjects && m.creatingProject:
		m.projectInput, cmd = m.projectInput.Update(msg)
	case m.view == viewProjects:
		m.projectsList, cmd = m.projectsList.Update(msg)
	case m.view == viewBoard && m.creatingCard:
		m.cardInput, cmd = m.cardInput.Update(msg)
	case m.view == viewBoard && m.creatingColumn:
		m.columnInput, cmd = m.columnInput.Update(msg)
	}
	return m, cmd
}

// expireOnAuth routes auth failures back to the login gate: the token
// has expired server-side and retrying with it is pointless.
func (m *appModel) expireOnAuth(err error) bool {
	if err == nil || !api.IsAuth(err) {
		return false
	}
	if err := m.sess.ExpireLocally(); err != nil {
		m.logger.Warn("clearing expired token", "err", err)
	}
	m.view = viewLogin
	m.login.errText = "session expired, log in again"
	m.loading = false
	return true
}

func (m *appModel) resize() {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.projectsList.SetSize(w, h)
}

func (m appModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(m.headerLine())

	var body string
	switch m.view {
	case viewLogin:
		body = m.login.view(m.width)
	case viewProjects:
		body = m.viewProjects()
	case viewBoard:
		body = m.viewBoard()
	case viewDetail:
		body = m.viewDetail()
	}

	parts := []string{header}
	if m.banner != "" {
		parts = append(parts, styleError().Render(m.banner))
	}
	parts = append(parts, body, styleMuted().Render(m.footerLine()))
	return strings.Join(parts, "\n\n")
}

func (m appModel) headerLine() string {
	title := "til"
	if p := m.dir.Selected(); p != nil && (m.view == viewBoard || m.view == viewDetail) {
		title += "  " + p.Title
	}
	if m.loading {
		title += "  (loading)"
	}
	return title
}

func (m appModel) footerLine() string {
	switch m.view {
	case viewLogin:
		return m.login.footer()
	case viewProjects:
		if m.creatingProject {
			return "enter: create  esc: cancel"
		}
		return "enter: open board  n: new project  r: reload  q: quit"
	case viewBoard:
		if m.creatingCard {
			return "enter: create card  esc: cancel"
		}
		if m.creatingColumn {
			return "enter: create column  esc: cancel"
		}
		return "h/j/k/l: select  H/L: move card  J/K: move in column  </>: move column  enter: detail  n: new card  N: new column  r: reload  esc: projects  q: quit"
	case viewDetail:
		return "esc: back"
	}
	return ""
}

func (m appModel) loadProjects() tea.Cmd {
	dir := m.dir
	return func() tea.Msg {
		return projectsLoadedMsg{err: dir.Refresh(context.Background())}
	}
}

func (m appModel) createProject(title string) tea.Cmd {
	dir := m.dir
	return func() tea.Msg {
		_, err := dir.Create(context.Background(), title)
		return projectCreatedMsg{err: err}
	}
}

// loadBoard refetches the selected project's board from the server.
func (m appModel) loadBoard() tea.Cmd {
	ctrl := m.ctrl
	project := m.dir.Selected()
	if project == nil {
		return nil
	}
	p := *project
	return func() tea.Msg {
		return boardLoadedMsg{err: ctrl.Load(context.Background(), p)}
	}
}

func (m appModel) createCard(columnID int64, title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.CreateCard(context.Background(), columnID, api.CardCreate{Title: title})
		return cardCreatedMsg{err: err}
	}
}

func (m appModel) createColumn(title string) tea.Cmd {
	client := m.client
	project := m.dir.Selected()
	if project == nil {
		return nil
	}
	boardID := project.MainBoardID
	return func() tea.Msg {
		_, err := client.CreateColumn(context.Background(), boardID, api.ColumnCreate{Title: title})
		return columnCreatedMsg{err: err}
	}
}

func (m appModel) moveCard(req board.MoveRequest) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return moveDoneMsg{res: ctrl.Move(context.Background(), req)}
	}
}

func (m appModel) reorderColumn(columnID int64, newIndex int) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return reorderDoneMsg{res: ctrl.ReorderColumn(context.Background(), columnID, newIndex)}
	}
}
