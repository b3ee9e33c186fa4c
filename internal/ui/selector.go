package ui

import "fmt"

// Cursor selects one item of a sequence whose length can change between
// samples. Next and Prev wrap around; on an empty sequence they do nothing.
type Cursor struct {
	i, n int
}

func NewCursor(n int) Cursor {
	c := Cursor{}
	c.Resize(n)
	return c
}

func (c *Cursor) Next() {
	if c.n == 0 {
		return
	}
	c.i = (c.i + 1) % c.n
}

func (c *Cursor) Prev() {
	if c.n == 0 {
		return
	}
	c.i = (c.i - 1 + c.n) % c.n
}

// Resize sets the sequence length, clamping the selection when it shrinks.
func (c *Cursor) Resize(n int) {
	if n < 0 {
		n = 0
	}
	c.n = n
	switch {
	case n == 0:
		c.i = 0
	case c.i >= n:
		c.i = n - 1
	}
}

func (c Cursor) Index() int { return c.i }
func (c Cursor) Len() int   { return c.n }

// Position is the 1-based "(i/N)" label, "(0/0)" when empty.
func (c Cursor) Position() string {
	if c.n == 0 {
		return "(0/0)"
	}
	return fmt.Sprintf("(%d/%d)", c.i+1, c.n)
}

// pick returns the selected element of items, if any.
func pick[T any](items []T, c Cursor) (T, bool) {
	var zero T
	if c.i < 0 || c.i >= len(items) {
		return zero, false
	}
	return items[c.i], true
}
