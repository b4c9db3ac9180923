package docs

import (
	"strings"
	"testing"
)

func TestTopicsListsEmbeddedContent(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatal("no topics embedded")
	}
	found := false
	for _, topic := range topics {
		if topic == "board" {
			found = true
		}
	}
	if !found {
		t.Errorf("topics = %v, want board included", topics)
	}
}

func TestGetKnownTopic(t *testing.T) {
	body, ok := Get("board")
	if !ok {
		t.Fatal("board topic missing")
	}
	if !strings.Contains(body, "optimistic") {
		t.Error("board topic lost its move protocol section")
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	if _, ok := Get("  Board "); !ok {
		t.Error("trimmed mixed-case lookup failed")
	}
}

func TestGetUnknownTopic(t *testing.T) {
	if _, ok := Get("nope"); ok {
		t.Error("unknown topic should miss")
	}
}
