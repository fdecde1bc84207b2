package cache

import "testing"

func TestResults_GetAdd(t *testing.T) {
	c, err := New[string](4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	c.Add("周记", "result")
	got, ok := c.Get("周记")
	if !ok || got != "result" {
		t.Errorf("expected hit with 'result', got %q (ok=%v)", got, ok)
	}
}

func TestResults_BoundedEviction(t *testing.T) {
	c, err := New[int](2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3) // "a" が追い出される

	if c.Len() != 2 {
		t.Errorf("expected len 2, got %d", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("expected oldest entry to be evicted")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected newest entry to remain")
	}
}

func TestResults_Purge(t *testing.T) {
	c, err := New[int](0) // デフォルト容量
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	c.Add("a", 1)
	c.Add("b", 2)
	c.Purge()

	if c.Len() != 0 {
		t.Errorf("expected empty cache after purge, got %d entries", c.Len())
	}
}
