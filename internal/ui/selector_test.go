package ui

import "testing"

func TestCursorWraps(t *testing.T) {
	c := NewCursor(3)
	for _, want := range []int{1, 2, 0, 1} {
		c.Next()
		if c.Index() != want {
			t.Fatalf("Next: index = %d, want %d", c.Index(), want)
		}
	}

	c = NewCursor(3)
	for _, want := range []int{2, 1, 0, 2} {
		c.Prev()
		if c.Index() != want {
			t.Fatalf("Prev: index = %d, want %d", c.Index(), want)
		}
	}
}

func TestCursorSingleElement(t *testing.T) {
	c := NewCursor(1)
	c.Next()
	if c.Index() != 0 {
		t.Fatalf("Next: index = %d, want 0", c.Index())
	}
	c.Prev()
	if c.Index() != 0 {
		t.Fatalf("Prev: index = %d, want 0", c.Index())
	}
	if got := c.Position(); got != "(1/1)" {
		t.Fatalf("Position = %q", got)
	}
}

func TestCursorEmptyIsNoOp(t *testing.T) {
	c := NewCursor(0)
	c.Next()
	c.Prev()
	if c.Index() != 0 || c.Len() != 0 {
		t.Fatalf("cursor = %+v", c)
	}
	if got := c.Position(); got != "(0/0)" {
		t.Fatalf("Position = %q", got)
	}
	if _, ok := pick([]string{}, c); ok {
		t.Fatal("pick on empty sequence should fail")
	}
}

func TestCursorResizeClamps(t *testing.T) {
	c := NewCursor(4)
	c.Prev() // 3
	c.Resize(2)
	if c.Index() != 1 {
		t.Fatalf("after shrink index = %d, want 1", c.Index())
	}
	c.Resize(5)
	if c.Index() != 1 {
		t.Fatalf("growing must keep the selection, got %d", c.Index())
	}
	c.Resize(0)
	if c.Index() != 0 {
		t.Fatalf("after emptying index = %d", c.Index())
	}
	c.Resize(-1)
	if c.Len() != 0 {
		t.Fatalf("negative length should clamp to 0, got %d", c.Len())
	}
}

func TestCursorPosition(t *testing.T) {
	c := NewCursor(2)
	if got := c.Position(); got != "(1/2)" {
		t.Fatalf("Position = %q", got)
	}
	c.Next()
	if got := c.Position(); got != "(2/2)" {
		t.Fatalf("Position = %q", got)
	}
	if v, ok := pick([]string{"sda", "sdb"}, c); !ok || v != "sdb" {
		t.Fatalf("pick = %q, %v", v, ok)
	}
}
