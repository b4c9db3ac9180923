package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"til-cli/internal/board"
	"til-cli/internal/model"
)

type projectItem struct {
	project  model.Project
	selected bool
}

func (i projectItem) Title() string {
	if i.selected {
		return "* " + i.project.Title
	}
	return i.project.Title
}

func (i projectItem) Description() string {
	desc := strings.TrimSpace(i.project.Description)
	if desc == "" {
		desc = i.project.Category
	}
	return fmt.Sprintf("#%d  %s", i.project.ID, desc)
}

func (i projectItem) FilterValue() string { return i.project.Title }

func newList(title string) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	// Bubble list defaults to quitting on ESC; here ESC is "back".
	l.KeyMap.Quit.SetKeys("q")
	return l
}

func (m *appModel) refreshProjects() {
	curID := int64(0)
	if it, ok := m.projectsList.SelectedItem().(projectItem); ok {
		curID = it.project.ID
	}
	selectedID := int64(0)
	if p := m.dir.Selected(); p != nil {
		selectedID = p.ID
	}
	items := make([]list.Item, 0, len(m.dir.Projects()))
	for _, p := range m.dir.Projects() {
		items = append(items, projectItem{project: p, selected: p.ID == selectedID})
	}
	m.projectsList.SetItems(items)
	if curID != 0 {
		for i, it := range m.projectsList.Items() {
			if pi, ok := it.(projectItem); ok && pi.project.ID == curID {
				m.projectsList.Select(i)
				break
			}
		}
	}
}

func (m appModel) updateProjects(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.creatingProject {
		switch msg.String() {
		case "esc":
			m.creatingProject = false
			m.projectInput.Blur()
			m.projectInput.SetValue("")
			return m, nil
		case "enter":
			title := strings.TrimSpace(m.projectInput.Value())
			if title == "" {
				return m, nil
			}
			m.creatingProject = false
			m.projectInput.Blur()
			m.projectInput.SetValue("")
			m.loading = true
			return m, m.createProject(title)
		}
		var cmd tea.Cmd
		m.projectInput, cmd = m.projectInput.Update(msg)
		return m, cmd
	}

	// While the list filter is open, every key belongs to the filter.
	if m.projectsList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.projectsList, cmd = m.projectsList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "n":
		m.creatingProject = true
		m.projectInput.Focus()
		return m, nil
	case "r":
		m.loading = true
		return m, m.loadProjects()
	case "enter":
		if it, ok := m.projectsList.SelectedItem().(projectItem); ok {
			m.view = viewBoard
			m.sel = boardSelection{}
			m.loading = true
			return m, m.openProject(it.project.ID)
		}
	}

	var cmd tea.Cmd
	m.projectsList, cmd = m.projectsList.Update(msg)
	return m, cmd
}

// openProject selects the project and seeds the board, preferring the
// snapshot cache so the previous board paints instantly. A cache hit is
// followed by a fresh fetch (see the boardLoadedMsg handling).
func (m appModel) openProject(id int64) tea.Cmd {
	dir, ctrl := m.dir, m.ctrl
	return func() tea.Msg {
		ctx := context.Background()
		if err := dir.Select(ctx, id); err != nil {
			return boardLoadedMsg{err: err}
		}
		p := dir.Selected()
		if p == nil {
			return boardLoadedMsg{err: board.ErrNoBoard}
		}
		if ok, err := ctrl.LoadCached(ctx, *p); err == nil && ok {
			return boardLoadedMsg{fromCache: true}
		}
		return boardLoadedMsg{err: ctrl.Load(ctx, *p)}
	}
}

func (m appModel) viewProjects() string {
	if m.creatingProject {
		return strings.Join([]string{
			styleMuted().Render("new project"),
			m.projectInput.View(),
		}, "\n")
	}
	if len(m.projectsList.Items()) == 0 && !m.loading {
		return styleMuted().Render("No projects yet. Press n to create one.")
	}
	return m.projectsList.View()
}
