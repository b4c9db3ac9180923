// Package board maintains the visible state of one board's columns and
// cards and executes card moves with an optimistic-update /
// reconcile-on-failure protocol. Local state is a cache: the server is
// authoritative, the controller mutates its copy first and reverts when
// the server disagrees.
package board

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"til-cli/internal/api"
	"til-cli/internal/model"
	"til-cli/internal/store"
)

// ErrMoveInFlight rejects a second move of a card whose previous shift
// has not resolved yet. Moves are serialized per card; moves of
// different cards may overlap (see Move).
var ErrMoveInFlight = errors.New("a move for this card is still in flight")

// ErrReorderInFlight rejects a column reorder while a previous reorder
// has not resolved. Reorders touch the whole column order, so only one
// may be outstanding.
var ErrReorderInFlight = errors.New("a column reorder is still in flight")

// ErrNoBoard means Load has not succeeded yet (or the project has no
// main board).
var ErrNoBoard = errors.New("no board loaded")

// Controller owns the columns/cards working set exclusively. All
// accessors and mutations are safe for concurrent use; TUI commands run
// in goroutines.
type Controller struct {
	client *api.Client
	cache  *store.Cache // optional; nil disables snapshot persistence
	logger *log.Logger

	mu         sync.Mutex
	boardID    int64
	projectID  int64
	columns    []model.Column
	cards      []model.Card
	pending    map[int64]struct{} // card ids with a shift in flight
	reordering bool               // a column reorder is in flight
}

func NewController(client *api.Client, cache *store.Cache, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		client:  client,
		cache:   cache,
		logger:  logger,
		pending: map[int64]struct{}{},
	}
}

// Load replaces the full working set with fresh server state for the
// project's main board. There is no incremental loading: every project
// switch refetches everything. On success the snapshot cache is updated
// (best effort).
func (c *Controller) Load(ctx context.Context, project model.Project) error {
	if project.MainBoardID == 0 {
		return ErrNoBoard
	}
	cols, err := c.client.ColumnsByBoard(ctx, project.MainBoardID)
	if err != nil {
		c.logger.Error("fetching columns", "board", project.MainBoardID, "err", err)
		return err
	}
	cards, err := c.client.CardsByProject(ctx, project.ID)
	if err != nil {
		c.logger.Error("fetching cards", "project", project.ID, "err", err)
		return err
	}

	c.mu.Lock()
	c.boardID = project.MainBoardID
	c.projectID = project.ID
	c.columns = cols
	c.cards = cards
	c.pending = map[int64]struct{}{}
	c.mu.Unlock()

	if c.cache != nil {
		if err := c.cache.SaveSnapshot(ctx, project.MainBoardID, cols, cards); err != nil {
			c.logger.Warn("caching board snapshot", "board", project.MainBoardID, "err", err)
		}
	}
	return nil
}

// LoadCached seeds the working set from the snapshot cache without
// touching the network. Returns ok=false when the board was never
// cached.
func (c *Controller) LoadCached(ctx context.Context, project model.Project) (bool, error) {
	if c.cache == nil || project.MainBoardID == 0 {
		return false, nil
	}
	cols, cards, _, ok, err := c.cache.LoadSnapshot(ctx, project.MainBoardID)
	if err != nil || !ok {
		return false, err
	}
	c.mu.Lock()
	c.boardID = project.MainBoardID
	c.projectID = project.ID
	c.columns = cols
	c.cards = cards
	c.pending = map[int64]struct{}{}
	c.mu.Unlock()
	return true, nil
}

func (c *Controller) BoardID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.boardID
}

// Columns returns the loaded columns ascending by position. Ties keep
// fetch order.
func (c *Controller) Columns() []model.Column {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Column, len(c.columns))
	copy(out, c.columns)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// CardsFor returns exactly the cards whose KanbanColumnID matches, in
// working-set order. Rendering iterates loaded columns and calls this,
// so a card pointing at an unloaded column is never shown.
func (c *Controller) CardsFor(columnID int64) []model.Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []model.Card
	for _, card := range c.cards {
		if card.KanbanColumnID == columnID {
			out = append(out, card)
		}
	}
	return out
}

// Cards returns the whole working set in fetch order.
func (c *Controller) Cards() []model.Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Card, len(c.cards))
	copy(out, c.cards)
	return out
}

func cloneCards(cards []model.Card) []model.Card {
	out := make([]model.Card, len(cards))
	copy(out, cards)
	return out
}

// Move executes the card-move protocol:
//
//  1. no destination (cancelled gesture) or destination == source: no-op,
//     zero mutation;
//  2. apply the local mutation synchronously, before any network I/O, so
//     the UI reflects the move instantly;
//  3. issue the shift request;
//  4. success leaves local state as-is; failure restores the snapshot
//     taken in step 2 wholesale and reports OutcomeRolledBack.
//
// Moves are serialized per card: a second Move for a card whose shift is
// in flight returns ErrMoveInFlight without mutating anything. Moves of
// different cards may overlap; a rollback restores the snapshot taken at
// its own move's start, so a concurrent move of another card that landed
// in between is discarded locally until the next reload (last writer
// wins). Callers that need stronger ordering should wait for each
// result before starting the next move.
func (c *Controller) Move(ctx context.Context, req MoveRequest) MoveResult {
	if req.To == nil {
		return MoveResult{Outcome: OutcomeNoop}
	}
	if req.To.ColumnID == req.From.ColumnID && req.To.Index == req.From.Index {
		return MoveResult{Outcome: OutcomeNoop}
	}

	c.mu.Lock()
	if _, busy := c.pending[req.CardID]; busy {
		c.mu.Unlock()
		return MoveResult{Outcome: OutcomeNoop, Err: ErrMoveInFlight}
	}
	found := false
	for _, card := range c.cards {
		if card.ID == req.CardID {
			found = true
			break
		}
	}
	if !found {
		c.mu.Unlock()
		return MoveResult{Outcome: OutcomeNoop, Err: errors.New("card not in working set")}
	}

	snapshot := cloneCards(c.cards)
	c.cards = spliceCard(c.cards, req.CardID, req.To.ColumnID, req.To.Index)
	c.pending[req.CardID] = struct{}{}
	c.mu.Unlock()

	err := c.client.ShiftCard(ctx, req.CardID, api.CardShift{
		NewColumnID: req.To.ColumnID,
		NewPosition: req.To.Index,
	})

	c.mu.Lock()
	delete(c.pending, req.CardID)
	if err != nil {
		// Full rollback, not a merge.
		c.cards = snapshot
		c.mu.Unlock()
		c.logger.Error("moving card", "card", req.CardID, "to", req.To.ColumnID, "err", err)
		return MoveResult{Outcome: OutcomeRolledBack, Err: err}
	}
	c.mu.Unlock()
	// The server's authoritative per-card positions are not re-synced
	// here; the next full Load reconciles them.
	return MoveResult{Outcome: OutcomeApplied}
}

// spliceCard returns a new working set with the card reassigned to
// column toColumn and placed at index toIndex among that column's cards.
// Filter order over the slice is the render order, so the optimistic
// intra-column position matches what the server will return on the next
// reload.
func spliceCard(cards []model.Card, cardID, toColumn int64, toIndex int) []model.Card {
	moved := model.Card{}
	rest := make([]model.Card, 0, len(cards))
	for _, card := range cards {
		if card.ID == cardID {
			moved = card
			continue
		}
		rest = append(rest, card)
	}
	moved.KanbanColumnID = toColumn
	moved.Position = toIndex

	// Find the slice index of the toIndex-th card of the destination
	// column; insert the moved card there. Past-the-end lands after the
	// column's last card (or at the very end when the column is empty).
	insertAt := len(rest)
	seen := 0
	lastOfColumn := -1
	for i, card := range rest {
		if card.KanbanColumnID != toColumn {
			continue
		}
		if seen == toIndex {
			insertAt = i
			break
		}
		seen++
		lastOfColumn = i
	}
	if insertAt == len(rest) && lastOfColumn >= 0 && seen <= toIndex {
		insertAt = lastOfColumn + 1
	}

	out := make([]model.Card, 0, len(cards))
	out = append(out, rest[:insertAt]...)
	out = append(out, moved)
	out = append(out, rest[insertAt:]...)
	return out
}

// ReorderColumn moves a column to newIndex in the position order, using
// the same optimistic protocol as card moves: mutate locally, PATCH the
// full id order, roll back on failure. Reorders are serialized: a second
// call while one is in flight returns ErrReorderInFlight without
// mutating anything.
func (c *Controller) ReorderColumn(ctx context.Context, columnID int64, newIndex int) MoveResult {
	c.mu.Lock()
	if c.boardID == 0 {
		c.mu.Unlock()
		return MoveResult{Outcome: OutcomeNoop, Err: ErrNoBoard}
	}
	if c.reordering {
		c.mu.Unlock()
		return MoveResult{Outcome: OutcomeNoop, Err: ErrReorderInFlight}
	}
	ordered := make([]model.Column, len(c.columns))
	copy(ordered, c.columns)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	cur := -1
	for i, col := range ordered {
		if col.ID == columnID {
			cur = i
			break
		}
	}
	if cur == -1 {
		c.mu.Unlock()
		return MoveResult{Outcome: OutcomeNoop, Err: errors.New("column not in working set")}
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex >= len(ordered) {
		newIndex = len(ordered) - 1
	}
	if newIndex == cur {
		c.mu.Unlock()
		return MoveResult{Outcome: OutcomeNoop}
	}

	snapshot := make([]model.Column, len(c.columns))
	copy(snapshot, c.columns)

	moved := ordered[cur]
	ordered = append(ordered[:cur], ordered[cur+1:]...)
	ordered = append(ordered[:newIndex], append([]model.Column{moved}, ordered[newIndex:]...)...)
	ids := make([]int64, len(ordered))
	for i := range ordered {
		ordered[i].Position = i
		ids[i] = ordered[i].ID
	}
	c.columns = ordered
	c.reordering = true
	boardID := c.boardID
	c.mu.Unlock()

	err := c.client.ReorderColumns(ctx, boardID, ids)

	c.mu.Lock()
	c.reordering = false
	if err != nil {
		c.columns = snapshot
		c.mu.Unlock()
		c.logger.Error("reordering columns", "board", boardID, "err", err)
		return MoveResult{Outcome: OutcomeRolledBack, Err: err}
	}
	c.mu.Unlock()
	return MoveResult{Outcome: OutcomeApplied}
}
