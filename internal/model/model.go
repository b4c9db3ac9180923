package model

import (
	"strings"
	"time"
)

type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	MainBoardID int64     `json:"mainBoardId"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

type Board struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	ProjectID int64  `json:"projectId"`
}

// Column is a lane on a board. Position defines left-to-right order;
// the server keeps positions unique within a board after a reorder.
type Column struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
	BoardID  int64  `json:"boardId,omitempty"`
}

// Card belongs to exactly one column via KanbanColumnID. Content is the
// card body (markdown). Position is the server-assigned slot within the
// column; the client also maintains it optimistically after a move.
type Card struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content,omitempty"`
	KanbanColumnID int64     `json:"kanbanColumnId"`
	Position       int       `json:"position,omitempty"`
	Tags           []Tag     `json:"tags,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}

type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TagColor is one entry of the fixed pastel palette the backend
// accepts. Create and update requests carry the color name; the server
// resolves it and stores the hex, so tags read back with Hex in their
// Color field.
type TagColor struct {
	Name string
	Hex  string
}

var TagColors = []TagColor{
	{"red", "#FFADAD"},
	{"orange", "#FFD6A5"},
	{"yellow", "#FDFFB6"},
	{"green", "#CAFFBF"},
	{"blue", "#9BF6FF"},
	{"navy", "#A0C4FF"},
	{"purple", "#BDB2FF"},
	{"pink", "#FFC6FF"},
	{"gray", "#EAEAEA"},
}

// TagColorByName resolves a palette color name case-insensitively.
func TagColorByName(name string) (TagColor, bool) {
	name = strings.TrimSpace(name)
	for _, c := range TagColors {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return TagColor{}, false
}

// TagColorNames lists the accepted color names in palette order.
func TagColorNames() []string {
	names := make([]string, len(TagColors))
	for i, c := range TagColors {
		names[i] = c.Name
	}
	return names
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
