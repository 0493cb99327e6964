// Package app owns the in-memory task list for a session. The Controller is
// the single writer; all mutations go through its methods and the event loop
// serializes calls, so no locking is needed on the list itself.
package app

import (
	"time"

	"todopad/internal/debounce"
	"todopad/internal/task"
)

const (
	// SaveDelay is the quiet period behind the debounced persistence write.
	SaveDelay = 300 * time.Millisecond
	// UndoWindow is how long a deleted task can still be restored.
	UndoWindow = 5 * time.Second
)

// Saver is the slice of the store the controller needs.
type Saver interface {
	SaveLogged([]task.Task)
}

type pendingDelete struct {
	t        task.Task
	gen      int
	deadline time.Time
}

type Controller struct {
	tasks   []task.Task
	store   Saver
	saver   *debounce.Debouncer
	window  time.Duration
	pending *pendingDelete
	gen     int
}

// Option tweaks controller timing, mainly for tests.
type Option func(*Controller)

func WithSaveDelay(d time.Duration) Option {
	return func(c *Controller) { c.saver = debounce.New(d) }
}

func WithUndoWindow(d time.Duration) Option {
	return func(c *Controller) { c.window = d }
}

func NewController(st Saver, initial []task.Task, opts ...Option) *Controller {
	c := &Controller{
		tasks:  append([]task.Task(nil), initial...),
		store:  st,
		saver:  debounce.New(SaveDelay),
		window: UndoWindow,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Tasks returns a copy of the current list in order.
func (c *Controller) Tasks() []task.Task {
	return append([]task.Task(nil), c.tasks...)
}

func (c *Controller) Len() int { return len(c.tasks) }

// Window returns the undo window; the TUI schedules its notice timer from it.
func (c *Controller) Window() time.Duration { return c.window }

// Add sanitizes name and appends a new active task. Submissions that are
// empty after sanitization are ignored.
func (c *Controller) Add(name string) (task.Task, bool) {
	name = task.CleanName(name)
	if name == "" {
		return task.Task{}, false
	}
	t := task.New(name)
	c.tasks = append(c.tasks, t)
	c.scheduleSave()
	return t, true
}

// Toggle flips the complete flag of the task with the given id. A stale id is
// a no-op.
func (c *Controller) Toggle(id string) bool {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i].Complete = !c.tasks[i].Complete
			c.scheduleSave()
			return true
		}
	}
	return false
}

// Delete removes the task and parks it as the pending undo. The returned
// generation identifies this undo window; a later delete replaces the pending
// entry, discarding the earlier one.
func (c *Controller) Delete(id string) (task.Task, int, bool) {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			t := c.tasks[i]
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			c.gen++
			c.pending = &pendingDelete{t: t, gen: c.gen, deadline: time.Now().Add(c.window)}
			c.scheduleSave()
			return t, c.gen, true
		}
	}
	return task.Task{}, 0, false
}

// Undo restores the pending deleted task at the end of the list, preserving
// its id, name and complete flag. Fails once the undo window has elapsed.
func (c *Controller) Undo() (task.Task, bool) {
	p := c.pending
	if p == nil || time.Now().After(p.deadline) {
		c.pending = nil
		return task.Task{}, false
	}
	c.pending = nil
	c.tasks = append(c.tasks, p.t)
	c.scheduleSave()
	return p.t, true
}

// ExpireUndo purges the pending delete for gen. Stale generations are ignored
// so an old expiry timer cannot cancel a newer window.
func (c *Controller) ExpireUndo(gen int) {
	if c.pending != nil && c.pending.gen == gen {
		c.pending = nil
	}
}

func (c *Controller) scheduleSave() {
	snapshot := c.Tasks()
	c.saver.Trigger(func() { c.store.SaveLogged(snapshot) })
}

// Flush writes any pending state immediately. Called before shutdown.
func (c *Controller) Flush() {
	c.saver.Flush()
}
