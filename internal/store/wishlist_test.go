package store

import "testing"

func TestWishlistToggle(t *testing.T) {
	w := NewWishlist()
	if !w.Toggle("p1") {
		t.Fatalf("expected p1 added")
	}
	w.Toggle("p2")
	if w.Toggle("p1") {
		t.Fatalf("expected p1 removed")
	}
	if w.Contains("p1") || !w.Contains("p2") {
		t.Fatalf("unexpected contents: %v", w.IDs())
	}
}

func TestWishlistLoadDeduplicates(t *testing.T) {
	w := NewWishlist()
	w.Load([]string{"a", "b", "a", "", "c"})
	ids := w.IDs()
	if len(ids) != 3 || ids[0] != "a" || ids[2] != "c" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
