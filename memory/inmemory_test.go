package memory

import (
	"context"
	"testing"
)

func TestWorkingMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	w := NewInMemoryStore().Working()

	if _, err := w.Get(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if err := w.Set(ctx, "", "x"); err != ErrInvalidKey {
		t.Fatalf("Set(\"\") error = %v, want ErrInvalidKey", err)
	}
	if err := w.Set(ctx, "k", 42); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := w.Get(ctx, "k")
	if err != nil || v != 42 {
		t.Fatalf("Get(k) = %v, %v; want 42, nil", v, err)
	}
	keys, err := w.Keys(ctx)
	if err != nil || len(keys) != 1 || keys[0] != "k" {
		t.Fatalf("Keys() = %v, %v", keys, err)
	}
	if err := w.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := w.Delete(ctx, "k"); err != ErrNotFound {
		t.Fatalf("Delete(missing) error = %v, want ErrNotFound", err)
	}
	if err := w.Set(ctx, "a", 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := w.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	keys, _ = w.Keys(ctx)
	if len(keys) != 0 {
		t.Fatalf("Keys() after Clear = %v, want empty", keys)
	}
}

func TestMissionMemorySetGetSearch(t *testing.T) {
	ctx := context.Background()
	m := NewInMemoryStore().Mission()

	if err := m.Set(ctx, "fact:1", "the admin panel is at /admin", map[string]any{"turn_index": 0}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set(ctx, "fact:2", "the weather is sunny today", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}

	item, err := m.Get(ctx, "fact:1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if item.Value != "the admin panel is at /admin" {
		t.Fatalf("Get(fact:1).Value = %v", item.Value)
	}
	if item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	results, err := m.Search(ctx, "admin panel", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Key != "fact:1" {
		t.Fatalf("Search(admin panel) = %+v, want [fact:1]", results)
	}

	if _, err := m.Get(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}

	history, err := m.History(ctx, 10)
	if err != nil || len(history) != 2 {
		t.Fatalf("History() = %v, %v; want 2 items", history, err)
	}

	if err := m.Delete(ctx, "fact:2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, "fact:2"); err != ErrNotFound {
		t.Fatal("expected fact:2 to be gone")
	}
}

func TestMissionMemorySearchNoMatch(t *testing.T) {
	ctx := context.Background()
	m := NewInMemoryStore().Mission()
	if err := m.Set(ctx, "k", "completely unrelated text", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	results, err := m.Search(ctx, "admin panel credentials", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Search() = %v, want no results", results)
	}
}

func TestLongTermMemoryStoreAndFilter(t *testing.T) {
	ctx := context.Background()
	lt := NewInMemoryStore().LongTerm()

	id1, err := lt.Store(ctx, "python GIL prevents true parallelism", map[string]any{"language": "python"})
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if _, err := lt.Store(ctx, "go goroutines are cheap", map[string]any{"language": "go"}); err != nil {
		t.Fatalf("Store: %v", err)
	}

	results, err := lt.Search(ctx, "python parallelism", 5, map[string]any{"language": "python"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Key != id1 {
		t.Fatalf("Search() = %+v, want [%s]", results, id1)
	}

	results, err = lt.Search(ctx, "python parallelism", 5, map[string]any{"language": "go"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Search() with mismatched filter = %v, want none", results)
	}

	if err := lt.Delete(ctx, id1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := lt.Delete(ctx, id1); err != ErrNotFound {
		t.Fatalf("Delete(already deleted) error = %v, want ErrNotFound", err)
	}
}

func TestTextScore(t *testing.T) {
	if s := textScore("", "k", "v"); s != 0 {
		t.Fatalf("textScore(empty query) = %v, want 0", s)
	}
	if s := textScore("foo bar", "k", "foo baz"); s != 0.5 {
		t.Fatalf("textScore() = %v, want 0.5", s)
	}
}
