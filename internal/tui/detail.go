package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"til-cli/internal/model"
)

func (m appModel) viewDetail() string {
	card, col, ok := m.selectedCard()
	if !ok {
		return styleMuted().Render("No card selected.")
	}
	width := m.width
	if width < 40 {
		width = 80
	}
	return renderCardDetail(card, col, width)
}

func renderCardDetail(card model.Card, col model.Column, width int) string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(truncateText(card.Title, width)),
		styleMuted().Render(truncateText("in "+col.Title, width)),
	}

	if len(card.Tags) > 0 {
		chips := make([]string, 0, len(card.Tags))
		for _, t := range card.Tags {
			chips = append(chips, tagChip(t.Name, t.Color))
		}
		lines = append(lines, "", truncateText(strings.Join(chips, " "), width))
	}

	var meta []string
	if !card.CreatedAt.IsZero() {
		meta = append(meta, "created "+humanize.Time(card.CreatedAt))
	}
	if !card.UpdatedAt.IsZero() && !card.UpdatedAt.Equal(card.CreatedAt) {
		meta = append(meta, "updated "+humanize.Time(card.UpdatedAt))
	}
	if len(meta) > 0 {
		lines = append(lines, styleMuted().Render(truncateText(strings.Join(meta, ", "), width)))
	}

	if body := strings.TrimSpace(card.Content); body != "" {
		lines = append(lines, "", renderMarkdown(body, width-2))
	} else {
		lines = append(lines, "", styleMuted().Render("(no description)"))
	}

	return strings.Join(lines, "\n")
}
