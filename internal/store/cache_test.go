package store

import (
	"context"
	"path/filepath"
	"testing"

	"til-cli/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_RoundTripPreservesOrder(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	cols := []model.Column{
		{ID: 2, Title: "Doing", Position: 1},
		{ID: 1, Title: "Todo", Position: 0},
	}
	cards := []model.Card{
		{ID: 7, Title: "Write tests", KanbanColumnID: 1},
		{ID: 8, Title: "Ship", KanbanColumnID: 2, Tags: []model.Tag{{ID: 1, Name: "go", Color: "#CAFFBF"}}},
	}
	if err := c.SaveSnapshot(ctx, 10, cols, cards); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	gotCols, gotCards, fetchedAt, ok, err := c.LoadSnapshot(ctx, 10)
	if err != nil || !ok {
		t.Fatalf("LoadSnapshot: ok=%v err=%v", ok, err)
	}
	if fetchedAt.IsZero() {
		t.Fatal("expected a fetch timestamp")
	}
	if len(gotCols) != 2 || gotCols[0].ID != 2 || gotCols[1].ID != 1 {
		t.Fatalf("column order not preserved: %+v", gotCols)
	}
	if len(gotCards) != 2 || gotCards[0].ID != 7 || gotCards[1].Tags[0].Name != "go" {
		t.Fatalf("cards mismatch: %+v", gotCards)
	}
}

func TestCache_SaveReplacesSnapshot(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	first := []model.Card{{ID: 1, KanbanColumnID: 1}, {ID: 2, KanbanColumnID: 1}}
	if err := c.SaveSnapshot(ctx, 10, []model.Column{{ID: 1}}, first); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	second := []model.Card{{ID: 3, KanbanColumnID: 1}}
	if err := c.SaveSnapshot(ctx, 10, []model.Column{{ID: 1}}, second); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	_, cards, _, ok, err := c.LoadSnapshot(ctx, 10)
	if err != nil || !ok {
		t.Fatalf("LoadSnapshot: ok=%v err=%v", ok, err)
	}
	if len(cards) != 1 || cards[0].ID != 3 {
		t.Fatalf("expected replaced snapshot, got %+v", cards)
	}
}

func TestCache_UnknownBoard(t *testing.T) {
	c := openTestCache(t)

	_, _, _, ok, err := c.LoadSnapshot(context.Background(), 99)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for a board never cached")
	}
}
