package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"til-cli/internal/board"
	"til-cli/internal/model"
)

// boardSelection is a cursor over the rendered board: column index in
// position order, card index within that column's filter order.
type boardSelection struct {
	Col int
	Row int
}

func (m appModel) clampSelection(sel boardSelection) boardSelection {
	cols := m.ctrl.Columns()
	if len(cols) == 0 {
		return boardSelection{}
	}
	if sel.Col < 0 {
		sel.Col = 0
	}
	if sel.Col >= len(cols) {
		sel.Col = len(cols) - 1
	}
	n := len(m.ctrl.CardsFor(cols[sel.Col].ID))
	if n == 0 {
		sel.Row = -1
		return sel
	}
	if sel.Row < 0 {
		sel.Row = 0
	}
	if sel.Row >= n {
		sel.Row = n - 1
	}
	return sel
}

func (m appModel) selectedCard() (model.Card, model.Column, bool) {
	cols := m.ctrl.Columns()
	sel := m.clampSelection(m.sel)
	if len(cols) == 0 || sel.Row < 0 {
		return model.Card{}, model.Column{}, false
	}
	cards := m.ctrl.CardsFor(cols[sel.Col].ID)
	if sel.Row >= len(cards) {
		return model.Card{}, model.Column{}, false
	}
	return cards[sel.Row], cols[sel.Col], true
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.creatingCard {
		switch msg.String() {
		case "esc":
			m.creatingCard = false
			m.cardInput.Blur()
			m.cardInput.SetValue("")
			return m, nil
		case "enter":
			title := strings.TrimSpace(m.cardInput.Value())
			if title == "" {
				return m, nil
			}
			cols := m.ctrl.Columns()
			sel := m.clampSelection(m.sel)
			if len(cols) == 0 {
				return m, nil
			}
			m.creatingCard = false
			m.cardInput.Blur()
			m.cardInput.SetValue("")
			m.loading = true
			return m, m.createCard(cols[sel.Col].ID, title)
		}
		var cmd tea.Cmd
		m.cardInput, cmd = m.cardInput.Update(msg)
		return m, cmd
	}

	if m.creatingColumn {
		switch msg.String() {
		case "esc":
			m.creatingColumn = false
			m.columnInput.Blur()
			m.columnInput.SetValue("")
			return m, nil
		case "enter":
			title := strings.TrimSpace(m.columnInput.Value())
			if title == "" {
				return m, nil
			}
			m.creatingColumn = false
			m.columnInput.Blur()
			m.columnInput.SetValue("")
			m.loading = true
			return m, m.createColumn(title)
		}
		var cmd tea.Cmd
		m.columnInput, cmd = m.columnInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewProjects
		m.banner = ""
		return m, nil
	case "r":
		m.loading = true
		return m, m.loadBoard()
	case "n":
		if len(m.ctrl.Columns()) == 0 {
			m.banner = "no column to create the card in"
			return m, nil
		}
		m.creatingCard = true
		m.cardInput.Focus()
		return m, nil
	case "N":
		m.creatingColumn = true
		m.columnInput.Focus()
		return m, nil
	case "enter":
		if _, _, ok := m.selectedCard(); ok {
			m.view = viewDetail
		}
		return m, nil

	case "h", "left":
		m.sel = m.clampSelection(boardSelection{Col: m.sel.Col - 1, Row: m.sel.Row})
		return m, nil
	case "l", "right":
		m.sel = m.clampSelection(boardSelection{Col: m.sel.Col + 1, Row: m.sel.Row})
		return m, nil
	case "j", "down":
		m.sel = m.clampSelection(boardSelection{Col: m.sel.Col, Row: m.sel.Row + 1})
		return m, nil
	case "k", "up":
		m.sel = m.clampSelection(boardSelection{Col: m.sel.Col, Row: m.sel.Row - 1})
		return m, nil

	case "H", "shift+left":
		return m.moveSelected(-1, 0)
	case "L", "shift+right":
		return m.moveSelected(1, 0)
	case "J", "shift+down":
		return m.moveSelected(0, 1)
	case "K", "shift+up":
		return m.moveSelected(0, -1)

	case "<":
		return m.reorderSelected(-1)
	case ">":
		return m.reorderSelected(1)
	}
	return m, nil
}

// moveSelected translates an arrow gesture into a move request for the
// selected card and fires it. The controller mutates the working set
// before the request leaves, so the very next render shows the card in
// its new slot.
func (m appModel) moveSelected(dCol, dRow int) (tea.Model, tea.Cmd) {
	card, col, ok := m.selectedCard()
	if !ok {
		return m, nil
	}
	cols := m.ctrl.Columns()
	sel := m.clampSelection(m.sel)

	destCol := sel.Col + dCol
	if destCol < 0 || destCol >= len(cols) {
		return m, nil
	}

	var destIdx int
	if dCol != 0 {
		// Cross-column: keep the row, clamped past the destination's end.
		destIdx = sel.Row
		if n := len(m.ctrl.CardsFor(cols[destCol].ID)); destIdx > n {
			destIdx = n
		}
	} else {
		destIdx = sel.Row + dRow
		if destIdx < 0 || destIdx >= len(m.ctrl.CardsFor(col.ID)) {
			return m, nil
		}
	}

	req := board.MoveRequest{
		CardID: card.ID,
		From:   board.Slot{ColumnID: col.ID, Index: sel.Row},
		To:     &board.Slot{ColumnID: cols[destCol].ID, Index: destIdx},
	}
	// Cursor follows the card.
	m.sel = boardSelection{Col: destCol, Row: destIdx}
	return m, m.moveCard(req)
}

func (m appModel) reorderSelected(delta int) (tea.Model, tea.Cmd) {
	cols := m.ctrl.Columns()
	sel := m.clampSelection(m.sel)
	if len(cols) == 0 {
		return m, nil
	}
	newIdx := sel.Col + delta
	if newIdx < 0 || newIdx >= len(cols) {
		return m, nil
	}
	m.sel.Col = newIdx
	return m, m.reorderColumn(cols[sel.Col].ID, newIdx)
}

func (m appModel) viewBoard() string {
	if m.creatingCard {
		return strings.Join([]string{
			styleMuted().Render("new card"),
			m.cardInput.View(),
		}, "\n")
	}
	if m.creatingColumn {
		return strings.Join([]string{
			styleMuted().Render("new column"),
			m.columnInput.View(),
		}, "\n")
	}

	cols := m.ctrl.Columns()
	if len(cols) == 0 {
		return styleMuted().Render("The board has no columns.")
	}

	width := m.width
	if width < 40 {
		width = 80
	}
	height := m.height - 6
	if height < 8 {
		height = 8
	}
	sel := m.clampSelection(m.sel)

	snapshot := make([]boardColumn, 0, len(cols))
	for _, col := range cols {
		snapshot = append(snapshot, boardColumn{column: col, cards: m.ctrl.CardsFor(col.ID)})
	}
	return renderBoard(snapshot, sel, width, height)
}

type boardColumn struct {
	column model.Column
	cards  []model.Card
}

func renderBoard(cols []boardColumn, sel boardSelection, width, height int) string {
	n := len(cols)
	if n == 0 {
		return normalizePane("", width, height)
	}

	gap := 2
	avail := width - gap*(n-1)
	if avail < n {
		avail = n
	}
	colW := avail / n
	if colW < 12 {
		colW = 12
	}
	innerW := colW - 2
	if innerW < 1 {
		innerW = 1
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Background(colorControlBg)
	headerSelectedStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
	cardStyle := lipgloss.NewStyle().Width(colW).Padding(0, 1)
	cardSelectedStyle := cardStyle.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)

	renderCard := func(card model.Card, selected bool) string {
		lines := wrapPlainText(card.Title, innerW)
		if len(card.Tags) > 0 {
			chips := make([]string, 0, len(card.Tags))
			for _, t := range card.Tags {
				chips = append(chips, tagChip(t.Name, t.Color))
			}
			lines = append(lines, truncateText(strings.Join(chips, " "), innerW))
		}
		inner := normalizePane(strings.Join(lines, "\n"), innerW, 0)
		if selected {
			return cardSelectedStyle.Render(inner)
		}
		return cardStyle.Render(inner)
	}

	renderCol := func(colIdx int, c boardColumn) string {
		head := truncateText(fmt.Sprintf("%s (%d)", c.column.Title, len(c.cards)), colW)
		hs := headerStyle
		if colIdx == sel.Col {
			hs = headerSelectedStyle
		}
		lines := []string{hs.Width(colW).Render(head)}

		if len(c.cards) == 0 {
			lines = append(lines, styleMuted().Render("(empty)"))
			return normalizePane(strings.Join(lines, "\n"), colW, height)
		}

		lines = append(lines, "")
		for i, card := range c.cards {
			rendered := renderCard(card, colIdx == sel.Col && i == sel.Row)
			lines = append(lines, strings.Split(rendered, "\n")...)
			if i < len(c.cards)-1 {
				sepW := colW - 2
				if sepW < 0 {
					sepW = 0
				}
				lines = append(lines, styleMuted().Render(" "+strings.Repeat("─", sepW)+" "))
			}
		}
		return normalizePane(strings.Join(lines, "\n"), colW, height)
	}

	rendered := make([]string, 0, n)
	for i, c := range cols {
		rendered = append(rendered, renderCol(i, c))
	}

	out := rendered[0]
	sep := strings.Repeat(" ", gap)
	for i := 1; i < len(rendered); i++ {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, sep, rendered[i])
	}
	return normalizePane(out, width, height)
}
