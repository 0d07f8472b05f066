package service

import (
	"context"
	"errors"
	"testing"
)

func TestWishlistServiceToggle(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	liked, err := env.wishlist.Toggle(ctx, 1, "fashion-tee")
	if err != nil || !liked {
		t.Fatalf("expected liked, got liked=%v err=%v", liked, err)
	}
	if _, err := env.wishlist.Toggle(ctx, 1, "grocery-rice"); err != nil {
		t.Fatalf("toggle rice failed: %v", err)
	}

	products, err := env.wishlist.List(ctx, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 2 || products[0].ID != "fashion-tee" || products[1].ID != "grocery-rice" {
		t.Fatalf("unexpected wishlist order: %+v", products)
	}

	liked, err = env.wishlist.Toggle(ctx, 1, "fashion-tee")
	if err != nil || liked {
		t.Fatalf("expected unliked, got liked=%v err=%v", liked, err)
	}
	ids, err := env.wishlistRepo.ListByUser(1)
	if err != nil || len(ids) != 1 || ids[0] != "grocery-rice" {
		t.Fatalf("unexpected persisted wishlist: ids=%v err=%v", ids, err)
	}

	if _, err := env.wishlist.Toggle(ctx, 1, "missing"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestWishlistServiceSkipsUnknownProducts(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	if err := env.wishlistRepo.ReplaceByUser(1, []string{"discontinued", "grocery-rice"}); err != nil {
		t.Fatalf("seed wishlist failed: %v", err)
	}
	products, err := env.wishlist.List(ctx, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != "grocery-rice" {
		t.Fatalf("expected unknown products skipped, got %+v", products)
	}
}
