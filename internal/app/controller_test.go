package app

import (
	"strings"
	"sync"
	"testing"
	"time"

	"todopad/internal/task"
)

// memSaver records every snapshot handed to the debounced writer.
type memSaver struct {
	mu    sync.Mutex
	saves [][]task.Task
}

func (m *memSaver) SaveLogged(ts []task.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves = append(m.saves, ts)
}

func (m *memSaver) last() ([]task.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saves) == 0 {
		return nil, false
	}
	return m.saves[len(m.saves)-1], true
}

func newTestController(t *testing.T, initial []task.Task, opts ...Option) (*Controller, *memSaver) {
	t.Helper()
	ms := &memSaver{}
	opts = append([]Option{WithSaveDelay(5 * time.Millisecond)}, opts...)
	return NewController(ms, initial, opts...), ms
}

func TestAddIgnoresEmptyName(t *testing.T) {
	c, _ := newTestController(t, nil)
	if _, ok := c.Add("   \n\t  "); ok {
		t.Fatal("expected empty submission to be ignored")
	}
	if c.Len() != 0 {
		t.Fatalf("expected unchanged list, got %d tasks", c.Len())
	}
}

func TestAddSanitizesAndTruncates(t *testing.T) {
	c, _ := newTestController(t, nil)
	tk, ok := c.Add("  " + strings.Repeat("x", 150))
	if !ok {
		t.Fatal("expected add to succeed")
	}
	if n := len([]rune(tk.Name)); n != task.MaxNameLen {
		t.Fatalf("expected %d runes, got %d", task.MaxNameLen, n)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 task, got %d", c.Len())
	}
}

func TestToggleFlipsFlagAndStaleIDIsNoop(t *testing.T) {
	c, _ := newTestController(t, nil)
	tk, _ := c.Add("write tests")
	if !c.Toggle(tk.ID) {
		t.Fatal("expected toggle to find the task")
	}
	if ts := c.Tasks(); !ts[0].Complete {
		t.Fatal("expected complete=true after toggle")
	}
	if c.Toggle("no-such-id") {
		t.Fatal("expected stale id to be a no-op")
	}
	if !c.Toggle(tk.ID) || c.Tasks()[0].Complete {
		t.Fatal("expected toggle to be reversible")
	}
}

func TestDeleteThenUndoRestoresSameTask(t *testing.T) {
	c, _ := newTestController(t, nil)
	tk, _ := c.Add("buy milk")
	c.Toggle(tk.ID)
	removed, _, ok := c.Delete(tk.ID)
	if !ok {
		t.Fatal("expected delete to succeed")
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty list after delete, got %d", c.Len())
	}
	restored, ok := c.Undo()
	if !ok {
		t.Fatal("expected undo within window to succeed")
	}
	if restored.ID != tk.ID || restored.Name != tk.Name {
		t.Fatalf("expected same id and name back, got %+v", restored)
	}
	if !restored.Complete {
		t.Fatal("expected complete flag preserved through delete+undo")
	}
	if removed != restored {
		t.Fatalf("removed %+v != restored %+v", removed, restored)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 task after undo, got %d", c.Len())
	}
}

func TestUndoReappendsAtEnd(t *testing.T) {
	c, _ := newTestController(t, nil)
	a, _ := c.Add("first")
	c.Add("second")
	c.Add("third")
	c.Delete(a.ID)
	if _, ok := c.Undo(); !ok {
		t.Fatal("undo failed")
	}
	ts := c.Tasks()
	if ts[len(ts)-1].ID != a.ID {
		t.Fatalf("expected restored task at end of list, got order %+v", ts)
	}
}

func TestUndoAfterWindowFails(t *testing.T) {
	c, _ := newTestController(t, nil, WithUndoWindow(10*time.Millisecond))
	tk, _ := c.Add("ephemeral")
	c.Delete(tk.ID)
	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Undo(); ok {
		t.Fatal("expected undo to fail after the window")
	}
	if c.Len() != 0 {
		t.Fatalf("expected list to stay empty, got %d", c.Len())
	}
}

func TestSecondDeleteDiscardsEarlierUndo(t *testing.T) {
	c, _ := newTestController(t, nil)
	a, _ := c.Add("first")
	b, _ := c.Add("second")
	_, genA, _ := c.Delete(a.ID)
	_, genB, _ := c.Delete(b.ID)
	if genA == genB {
		t.Fatal("expected distinct generations")
	}
	// expiring the replaced window must not clear the newer one
	c.ExpireUndo(genA)
	restored, ok := c.Undo()
	if !ok {
		t.Fatal("expected the newer undo to survive")
	}
	if restored.ID != b.ID {
		t.Fatalf("expected second task back, got %s", restored.ID)
	}
	if _, ok := c.Undo(); ok {
		t.Fatal("expected only one level of undo")
	}
}

func TestExpireUndoPurgesPending(t *testing.T) {
	c, _ := newTestController(t, nil)
	tk, _ := c.Add("gone")
	_, gen, _ := c.Delete(tk.ID)
	c.ExpireUndo(gen)
	if _, ok := c.Undo(); ok {
		t.Fatal("expected undo to fail after expiry")
	}
}

func TestDeleteOfUnknownIDIsNoop(t *testing.T) {
	c, _ := newTestController(t, nil)
	c.Add("keep me")
	if _, _, ok := c.Delete("no-such-id"); ok {
		t.Fatal("expected delete of unknown id to fail")
	}
	if c.Len() != 1 {
		t.Fatalf("expected list unchanged, got %d", c.Len())
	}
}

func TestDebouncedSaveWritesSnapshot(t *testing.T) {
	c, ms := newTestController(t, nil)
	c.Add("one")
	c.Add("two")
	c.Add("three")
	time.Sleep(200 * time.Millisecond)
	last, ok := ms.last()
	if !ok {
		t.Fatal("expected a debounced save")
	}
	if len(last) != 3 {
		t.Fatalf("expected snapshot with 3 tasks, got %d", len(last))
	}
}

func TestFlushWritesPendingImmediately(t *testing.T) {
	ms := &memSaver{}
	c := NewController(ms, nil, WithSaveDelay(time.Hour))
	c.Add("unsaved")
	if _, ok := ms.last(); ok {
		t.Fatal("expected no save before the quiet period")
	}
	c.Flush()
	last, ok := ms.last()
	if !ok || len(last) != 1 {
		t.Fatalf("expected flush to persist the pending snapshot, got %v", last)
	}
}

func TestScenarioBuyMilk(t *testing.T) {
	c, ms := newTestController(t, nil)
	tk, ok := c.Add("Buy milk")
	if !ok || c.Len() != 1 || c.Tasks()[0].Complete {
		t.Fatal("expected one unchecked task after add")
	}
	c.Toggle(tk.ID)
	c.Flush()
	last, _ := ms.last()
	if len(last) != 1 || !last[0].Complete || last[0].ID != tk.ID {
		t.Fatalf("expected persisted record with complete=true, got %+v", last)
	}
	c.Delete(tk.ID)
	if c.Len() != 0 {
		t.Fatal("expected row gone after delete")
	}
	restored, ok := c.Undo()
	if !ok || restored.ID != tk.ID || !restored.Complete {
		t.Fatalf("expected undo to restore completed task, got %+v", restored)
	}
}
