package services

import (
	"context"
	"sync"
	"time"
)

// DefaultFadeDuration is how long a checked row fades before it is removed.
const DefaultFadeDuration = 400 * time.Millisecond

// Completions tracks the transient "checked" flag of each row. Checking is
// one-way; when the row's fade finishes, Finish removes the todo.
type Completions struct {
	todos *TodoService
	fade  time.Duration

	mu sync.Mutex
	// checked holds every checked row; the value flips to true once the
	// row's fade has finished and the todo was deleted.
	checked map[string]bool
}

// NewCompletions creates a tracker that deletes through todos after fade.
// A non-positive fade falls back to DefaultFadeDuration.
func NewCompletions(todos *TodoService, fade time.Duration) *Completions {
	if fade <= 0 {
		fade = DefaultFadeDuration
	}
	return &Completions{
		todos:   todos,
		fade:    fade,
		checked: make(map[string]bool),
	}
}

// FadeDuration returns how long a checked row fades.
func (c *Completions) FadeDuration() time.Duration {
	return c.fade
}

// Check marks the row as checked. It returns true only on the first call for
// an ID; the caller starts the fade then and only then.
func (c *Completions) Check(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.checked[id]; ok {
		return false
	}
	c.checked[id] = false
	return true
}

// IsChecked reports whether the row has been checked.
func (c *Completions) IsChecked(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.checked[id]
	return ok
}

// Finish removes a checked todo once its fade is over. It deletes at most
// once per row: unchecked, already finished or forgotten rows are skipped.
// If the delete fails the row is unchecked.
func (c *Completions) Finish(ctx context.Context, id string) error {
	c.mu.Lock()
	done, ok := c.checked[id]
	if !ok || done {
		c.mu.Unlock()
		return nil
	}
	c.checked[id] = true
	c.mu.Unlock()

	if err := c.todos.Delete(ctx, id); err != nil {
		// Unchecked again so the row can be completed anew.
		c.mu.Lock()
		delete(c.checked, id)
		c.mu.Unlock()
		return err
	}
	return nil
}

// Forget drops the flag for a row removed through the explicit delete action.
func (c *Completions) Forget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.checked, id)
}
