package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.WishlistItem{},
		&models.UserLoginLog{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func TestUserRepositoryGetByPhone(t *testing.T) {
	repo := NewUserRepository(setupRepositoryTestDB(t))
	user := &models.User{Phone: "9876543210", Name: "Asha", Role: constants.UserRoleCustomer}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	got, err := repo.GetByPhone(" 9876543210 ")
	if err != nil || got == nil || got.ID != user.ID {
		t.Fatalf("get by phone failed: %v %+v", err, got)
	}
	missing, err := repo.GetByPhone("0000000000")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing user, got %+v err=%v", missing, err)
	}
}

func TestProductRepositoryListAndUpsert(t *testing.T) {
	repo := NewProductRepository(setupRepositoryTestDB(t))
	products := []models.Product{
		{ID: "fa-1", Name: "Cotton Kurta", Category: constants.CategoryFashion, Brand: "Loom", Price: models.NewMoneyFromInt(799), IsActive: true, SortOrder: 2},
		{ID: "gr-1", Name: "Organic Honey", Category: constants.CategoryGrocery, Seller: "FreshMart", Price: models.NewMoneyFromInt(349), IsActive: true, SortOrder: 1},
	}
	for i := range products {
		if err := repo.Upsert(&products[i]); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	active, err := repo.ListActive()
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 2 || active[0].ID != "gr-1" {
		t.Fatalf("unexpected active list: %+v", active)
	}

	list, total, err := repo.List(ProductListFilter{Search: "KURTA", OnlyActive: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].ID != "fa-1" {
		t.Fatalf("unexpected search result: total=%d %+v", total, list)
	}

	updated := products[0]
	updated.Name = "Cotton Kurta Set"
	if err := repo.Upsert(&updated); err != nil {
		t.Fatalf("upsert update failed: %v", err)
	}
	got, err := repo.GetByID("fa-1")
	if err != nil || got == nil || got.Name != "Cotton Kurta Set" {
		t.Fatalf("expected updated name, got %+v err=%v", got, err)
	}
	if !got.Price.Equal(products[0].Price.Decimal) {
		t.Fatalf("expected price preserved, got %s", got.Price)
	}
}

func TestAddressRepositoryReplaceByUser(t *testing.T) {
	repo := NewAddressRepository(setupRepositoryTestDB(t))
	first := []models.Address{
		{ID: "addr_1", Tag: "Home", Street: "12 MG Road", IsDefault: true, SortOrder: 0},
		{ID: "addr_2", Tag: "Work", Street: "Tech Park", SortOrder: 1},
	}
	if err := repo.ReplaceByUser(1, first); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if err := repo.ReplaceByUser(2, []models.Address{{ID: "addr_9", Tag: "Home", Street: "Other user"}}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	if err := repo.ReplaceByUser(1, first[1:]); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	list, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != "addr_2" || list[0].UserID != 1 {
		t.Fatalf("unexpected addresses: %+v", list)
	}
	other, _ := repo.ListByUser(2)
	if len(other) != 1 {
		t.Fatalf("expected other user untouched, got %+v", other)
	}
}

func TestWishlistRepositoryReplaceByUser(t *testing.T) {
	repo := NewWishlistRepository(setupRepositoryTestDB(t))
	if err := repo.ReplaceByUser(1, []string{"b", "a", "c"}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	ids, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 3 || ids[0] != "b" || ids[2] != "c" {
		t.Fatalf("unexpected order: %v", ids)
	}
	if err := repo.ReplaceByUser(1, nil); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	ids, _ = repo.ListByUser(1)
	if len(ids) != 0 {
		t.Fatalf("expected empty wishlist, got %v", ids)
	}
}

func TestOrderRepositoryCreateAndList(t *testing.T) {
	repo := NewOrderRepository(setupRepositoryTestDB(t))
	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	size := "M"

	for i := 0; i < 3; i++ {
		order := &models.Order{
			OrderNo:  fmt.Sprintf("ORD-%d", i),
			UserID:   7,
			Status:   constants.OrderStatusProcessing,
			Total:    models.NewMoneyFromInt(int64(100 * (i + 1))),
			PlacedAt: base.Add(time.Duration(i) * time.Hour),
			Items: []models.OrderItem{
				{ProductID: "p1", Name: "Tee", Quantity: 1, Price: models.NewMoneyFromInt(100), SelectedSize: &size},
			},
		}
		if err := repo.Create(order); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
		if order.ID == 0 || order.Items[0].OrderID != order.ID {
			t.Fatalf("expected ids assigned, got %+v", order)
		}
	}

	orders, total, err := repo.ListByUser(OrderListFilter{UserID: 7})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || orders[0].OrderNo != "ORD-2" || orders[2].OrderNo != "ORD-0" {
		t.Fatalf("expected newest first, got %+v", orders)
	}
	if len(orders[0].Items) != 1 || orders[0].Items[0].SelectedSize == nil || *orders[0].Items[0].SelectedSize != "M" {
		t.Fatalf("expected preloaded items, got %+v", orders[0].Items)
	}

	target, err := repo.GetByOrderNo("ORD-1")
	if err != nil || target == nil {
		t.Fatalf("get by order no failed: %v", err)
	}
	now := time.Now()
	if err := repo.UpdateStatus(target.ID, constants.OrderStatusCancelled, map[string]interface{}{"cancelled_at": now}); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	reloaded, _ := repo.GetByOrderNoAndUser("ORD-1", 7)
	if reloaded == nil || reloaded.Status != constants.OrderStatusCancelled || reloaded.CancelledAt == nil {
		t.Fatalf("unexpected reloaded order: %+v", reloaded)
	}
	if other, _ := repo.GetByOrderNoAndUser("ORD-1", 8); other != nil {
		t.Fatalf("expected other user to miss order")
	}
}

func TestUserLoginLogRepositoryList(t *testing.T) {
	repo := NewUserLoginLogRepository(setupRepositoryTestDB(t))
	entries := []models.UserLoginLog{
		{UserID: 1, Phone: "9876543210", Status: constants.LoginLogStatusSuccess},
		{UserID: 0, Phone: "9876543210", Status: constants.LoginLogStatusFailed, FailReason: constants.LoginLogFailReasonInvalidOTP},
		{UserID: 2, Phone: "9123456780", Status: constants.LoginLogStatusSuccess},
	}
	for i := range entries {
		if err := repo.Create(&entries[i]); err != nil {
			t.Fatalf("create login log failed: %v", err)
		}
	}

	logs, total, err := repo.List(UserLoginLogListFilter{Phone: "9876543210"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || logs[0].Status != constants.LoginLogStatusFailed {
		t.Fatalf("expected newest first for phone, got total=%d logs=%+v", total, logs)
	}

	logs, total, err = repo.List(UserLoginLogListFilter{UserID: 2, Page: 1, PageSize: 10})
	if err != nil || total != 1 || len(logs) != 1 || logs[0].Phone != "9123456780" {
		t.Fatalf("unexpected user filter result: total=%d logs=%+v err=%v", total, logs, err)
	}
}
