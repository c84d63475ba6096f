// Package nav tracks which scene is active and derives the navigation UI
// state from it. The controller is the only mutable navigation state in
// the application.
package nav

import (
	"fmt"
	"sync"
)

// State is what the UI needs after a transition: the indicator text and
// whether each control is usable.
type State struct {
	Index        int
	Count        int
	Indicator    string
	PrevDisabled bool
	NextDisabled bool
	Prev         int
	Next         int
}

// Controller is a state machine over a scene index in [0, count). Moves
// outside the valid window are silently ignored. The zero index is the
// initial state; there is no terminal state.
type Controller struct {
	mu    sync.Mutex
	index int
	count int
}

func New(count int) *Controller {
	if count < 1 {
		count = 1
	}
	return &Controller{
		count: count,
	}
}

// GoTo moves to scene i. Out-of-range indexes leave the current scene
// unchanged and report false.
func (c *Controller) GoTo(i int) bool {
	if i < 0 || i >= c.count {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = i
	return true
}

// Current returns the active scene index.
func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Count returns the number of scenes.
func (c *Controller) Count() int {
	return c.count
}

// State derives the UI state for the active scene.
func (c *Controller) State() State {
	c.mu.Lock()
	i := c.index
	c.mu.Unlock()

	st := State{
		Index:        i,
		Count:        c.count,
		Indicator:    fmt.Sprintf("%d of %d", i+1, c.count),
		PrevDisabled: i == 0,
		NextDisabled: i == c.count-1,
		Prev:         i - 1,
		Next:         i + 1,
	}
	if st.PrevDisabled {
		st.Prev = i
	}
	if st.NextDisabled {
		st.Next = i
	}
	return st
}
