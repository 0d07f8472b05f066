package store

import (
	"testing"

	"github.com/spirecart/internal/models"
)

func TestCatalogSearch(t *testing.T) {
	catalog := NewCatalog([]models.Product{
		{ID: "f1", Name: "Linen Shirt", Category: "Fashion", Brand: "Weave", Seller: "Weave Store", Colors: models.StringArray{"White"}},
		{ID: "g1", Name: "Basmati Rice", Category: "Grocery", Seller: "FreshMart"},
		{ID: "d1", Name: "Paneer Tikka", Category: "Food", RestaurantName: "Spice Route"},
		{ID: "f1", Name: "Duplicate", Category: "Fashion"},
	})
	if catalog.Len() != 3 {
		t.Fatalf("expected duplicates dropped, got %d", catalog.Len())
	}
	if got := catalog.Search(CatalogFilter{Query: "SHIRT"}); len(got) != 1 || got[0].ID != "f1" {
		t.Fatalf("unexpected query result: %+v", got)
	}
	if got := catalog.Search(CatalogFilter{Query: "spice"}); len(got) != 1 || got[0].ID != "d1" {
		t.Fatalf("expected restaurant match, got %+v", got)
	}
	if got := catalog.Search(CatalogFilter{Category: "grocery"}); len(got) != 1 || got[0].ID != "g1" {
		t.Fatalf("unexpected category result: %+v", got)
	}
	if got := catalog.Search(CatalogFilter{Seller: "Spice Route"}); len(got) != 1 {
		t.Fatalf("unexpected seller result: %+v", got)
	}

	p, ok := catalog.Get("f1")
	if !ok || p.Name != "Linen Shirt" {
		t.Fatalf("unexpected get: %+v", p)
	}
	p.Colors[0] = "Black"
	again, _ := catalog.Get("f1")
	if again.Colors[0] != "White" {
		t.Fatalf("expected catalog to stay immutable")
	}
	if _, ok := catalog.Get("missing"); ok {
		t.Fatalf("expected missing product")
	}
}
