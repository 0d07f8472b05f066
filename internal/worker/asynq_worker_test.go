package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/models"
	"github.com/spirecart/internal/provider"
	"github.com/spirecart/internal/queue"
	"github.com/spirecart/internal/repository"
	"github.com/spirecart/internal/service"
	"github.com/spirecart/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func newWorkerTestConsumer(t *testing.T) *Consumer {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Address{}, &models.Order{}, &models.OrderItem{}, &models.WishlistItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	productRepo := repository.NewProductRepository(db)
	rice := models.Product{ID: "grocery-rice", Name: "Basmati Rice", Category: constants.CategoryGrocery, Price: models.NewMoneyFromInt(50), IsActive: true}
	if err := productRepo.Upsert(&rice); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	c := &provider.Container{
		ProductRepo:  productRepo,
		AddressRepo:  repository.NewAddressRepository(db),
		OrderRepo:    repository.NewOrderRepository(db),
		WishlistRepo: repository.NewWishlistRepository(db),
	}
	c.Sessions = service.NewSessionManager(c.AddressRepo, c.OrderRepo, c.WishlistRepo)
	c.BillingService = service.NewBillingService(store.DefaultFeePolicy())
	c.CatalogService = service.NewCatalogService(productRepo, 0)
	c.CartService = service.NewCartService(c.Sessions, c.CatalogService, c.BillingService)
	c.OrderService = service.NewOrderService(service.OrderServiceOptions{
		Sessions:  c.Sessions,
		OrderRepo: c.OrderRepo,
		Billing:   c.BillingService,
	})
	return NewConsumer(c)
}

func placeWorkerTestOrder(t *testing.T, c *Consumer, userID uint) models.Order {
	t.Helper()
	ctx := context.Background()
	if _, err := c.CartService.Add(ctx, userID, service.AddCartItemInput{ProductID: "grocery-rice", Quantity: 2}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	order, err := c.OrderService.Checkout(ctx, userID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	return order
}

func advanceTask(t *testing.T, orderNo string, userID uint, status string) *asynq.Task {
	t.Helper()
	task, err := queue.NewOrderAdvanceStatusTask(queue.OrderAdvanceStatusPayload{OrderNo: orderNo, UserID: userID, Status: status})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	return task
}

func TestHandleOrderAdvanceStatusAppliesTransitions(t *testing.T) {
	c := newWorkerTestConsumer(t)
	ctx := context.Background()
	order := placeWorkerTestOrder(t, c, 7)

	if err := c.handleOrderAdvanceStatus(ctx, advanceTask(t, order.OrderNo, 7, constants.OrderStatusOnTheWay)); err != nil {
		t.Fatalf("advance to on the way failed: %v", err)
	}
	if err := c.handleOrderAdvanceStatus(ctx, advanceTask(t, order.OrderNo, 7, constants.OrderStatusDelivered)); err != nil {
		t.Fatalf("advance to delivered failed: %v", err)
	}

	got, err := c.OrderService.Get(ctx, 7, order.OrderNo)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", got.Status)
	}

	row, err := c.OrderRepo.GetByOrderNo(order.OrderNo)
	if err != nil || row == nil {
		t.Fatalf("load persisted order failed: %v", err)
	}
	if row.Status != constants.OrderStatusDelivered || row.DeliveredAt == nil {
		t.Fatalf("expected persisted delivered status, got %s", row.Status)
	}
}

func TestHandleOrderAdvanceStatusDropsCancelledOrder(t *testing.T) {
	c := newWorkerTestConsumer(t)
	ctx := context.Background()
	order := placeWorkerTestOrder(t, c, 8)

	if _, err := c.OrderService.Cancel(ctx, 8, order.OrderNo); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := c.handleOrderAdvanceStatus(ctx, advanceTask(t, order.OrderNo, 8, constants.OrderStatusOnTheWay)); err != nil {
		t.Fatalf("expected invalid transition to be dropped, got %v", err)
	}
	got, _ := c.OrderService.Get(ctx, 8, order.OrderNo)
	if got.Status != constants.OrderStatusCancelled {
		t.Fatalf("cancelled order must stay cancelled, got %s", got.Status)
	}
}

func TestHandleOrderAdvanceStatusUnknownOrder(t *testing.T) {
	c := newWorkerTestConsumer(t)
	if err := c.handleOrderAdvanceStatus(context.Background(), advanceTask(t, "ORD-missing", 9, constants.OrderStatusOnTheWay)); err != nil {
		t.Fatalf("expected unknown order to be dropped, got %v", err)
	}
}

func TestHandleOrderAdvanceStatusBadPayload(t *testing.T) {
	c := newWorkerTestConsumer(t)
	err := c.handleOrderAdvanceStatus(context.Background(), asynq.NewTask(queue.TaskOrderAdvanceStatus, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry for bad payload, got %v", err)
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(nil, &Consumer{}); err == nil {
		t.Fatalf("expected error when queue config missing")
	}
}
