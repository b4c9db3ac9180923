// Package directory tracks the projects visible to the session and the
// current selection.
package directory

import (
	"context"

	"github.com/charmbracelet/log"

	"til-cli/internal/api"
	"til-cli/internal/model"
)

// Directory holds an in-memory mirror of the server's project list.
// Records are only replaced after a server round trip; nothing is
// mutated locally.
type Directory struct {
	client *api.Client
	logger *log.Logger

	projects []model.Project
	selected *model.Project
}

func New(client *api.Client, logger *log.Logger) *Directory {
	if logger == nil {
		logger = log.Default()
	}
	return &Directory{client: client, logger: logger}
}

func (d *Directory) Projects() []model.Project { return d.projects }

// Selected returns the active project, or nil when none is selected.
func (d *Directory) Selected() *model.Project { return d.selected }

// Refresh re-fetches the project list. If the previous selection is
// still present it is kept; otherwise the first project becomes
// selected, or none when the list is empty.
func (d *Directory) Refresh(ctx context.Context) error {
	projects, err := d.client.Projects(ctx)
	if err != nil {
		d.logger.Error("fetching projects", "err", err)
		return err
	}
	d.projects = projects

	if len(projects) == 0 {
		d.selected = nil
		return nil
	}
	if d.selected != nil {
		for _, p := range projects {
			if p.ID == d.selected.ID {
				return nil
			}
		}
	}
	return d.Select(ctx, projects[0].ID)
}

// Select fetches the project by id and makes it the active selection.
// id 0 clears the selection.
func (d *Directory) Select(ctx context.Context, id int64) error {
	if id == 0 {
		d.selected = nil
		return nil
	}
	p, err := d.client.Project(ctx, id)
	if err != nil {
		d.logger.Error("fetching project", "id", id, "err", err)
		return err
	}
	d.selected = &p
	return nil
}

// Create creates a project with the given title, appends the
// server-assigned record to the list and selects it. No optimistic id:
// nothing is shown until the server answers.
func (d *Directory) Create(ctx context.Context, title string) (model.Project, error) {
	p, err := d.client.CreateProject(ctx, api.ProjectCreate{
		Title:       title,
		Description: "",
		Category:    "Default",
	})
	if err != nil {
		d.logger.Error("creating project", "title", title, "err", err)
		return model.Project{}, err
	}
	d.projects = append(d.projects, p)
	if err := d.Select(ctx, p.ID); err != nil {
		return p, err
	}
	return p, nil
}
