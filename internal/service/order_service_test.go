package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spirecart/internal/config"
	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/events"
	"github.com/spirecart/internal/models"
	"github.com/spirecart/internal/store"
)

func checkoutScenario(t *testing.T, env *serviceTestEnv, userID uint) string {
	t.Helper()
	ctx := context.Background()
	if _, err := env.cart.Add(ctx, userID, AddCartItemInput{ProductID: "fashion-tee", Color: strPtr("Blue"), Size: strPtr("L")}); err != nil {
		t.Fatalf("add tee failed: %v", err)
	}
	if _, err := env.cart.Add(ctx, userID, AddCartItemInput{ProductID: "grocery-rice"}); err != nil {
		t.Fatalf("add rice failed: %v", err)
	}
	order, err := env.orders.Checkout(ctx, userID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	return order.OrderNo
}

func TestOrderServiceCheckout(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	orderNo := checkoutScenario(t, env, 7)

	order, err := env.orders.Get(ctx, 7, orderNo)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if order.Status != constants.OrderStatusProcessing || order.UserID != 7 {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.ItemSubtotal.String() != "550.00" || order.GST.String() != "27.50" || order.Total.String() != "595.50" {
		t.Fatalf("unexpected totals: subtotal=%s gst=%s total=%s", order.ItemSubtotal, order.GST, order.Total)
	}
	if order.ID == 0 {
		t.Fatalf("expected persisted order id")
	}
	if summary := env.cart.Summary(ctx, 7); summary.Count != 0 {
		t.Fatalf("expected cart cleared after checkout, got count %d", summary.Count)
	}

	row, err := env.orderRepo.GetByOrderNo(orderNo)
	if err != nil || row == nil {
		t.Fatalf("expected persisted order, got row=%v err=%v", row, err)
	}
	if len(row.Items) != 2 || row.Total.String() != "595.50" {
		t.Fatalf("unexpected persisted order: items=%d total=%s", len(row.Items), row.Total)
	}

	placed := env.publisher.byTopic(constants.TopicOrderPlaced)
	if len(placed) != 1 || placed[0].Key != orderNo {
		t.Fatalf("expected one order-placed event, got %+v", placed)
	}
	evt, ok := placed[0].Payload.(events.OrderPlacedEvent)
	if !ok || evt.ItemCount != 2 || evt.UserID != 7 {
		t.Fatalf("unexpected order-placed payload: %+v", placed[0].Payload)
	}
}

func TestOrderServiceCheckoutEmptyCart(t *testing.T) {
	env := newServiceTestEnv(t)

	if _, err := env.orders.Checkout(context.Background(), 7); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if got := len(env.orders.List(context.Background(), 7)); got != 0 {
		t.Fatalf("expected no orders, got %d", got)
	}
	if got := len(env.publisher.byTopic(constants.TopicOrderPlaced)); got != 0 {
		t.Fatalf("expected no events, got %d", got)
	}
}

func TestOrderServiceListNewestFirst(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	first := checkoutScenario(t, env, 7)
	time.Sleep(2 * time.Millisecond)
	second := checkoutScenario(t, env, 7)

	list := env.orders.List(ctx, 7)
	if len(list) != 2 || list[0].OrderNo != second || list[1].OrderNo != first {
		t.Fatalf("expected newest first, got %+v", list)
	}

	reloaded := env.reopen().Get(ctx, 7).Orders.List()
	if len(reloaded) != 2 || reloaded[0].OrderNo != second {
		t.Fatalf("expected persisted order log newest first, got %+v", reloaded)
	}
	if len(reloaded[1].Items) != 2 {
		t.Fatalf("expected persisted items preloaded, got %d", len(reloaded[1].Items))
	}

	rows, total, err := env.orders.ListForUser(7, 1, 1)
	if err != nil || total != 2 || len(rows) != 1 || rows[0].OrderNo != second {
		t.Fatalf("unexpected admin listing: rows=%d total=%d err=%v", len(rows), total, err)
	}
}

func TestOrderServiceCancel(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()
	orderNo := checkoutScenario(t, env, 7)

	order, err := env.orders.Cancel(ctx, 7, orderNo)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if order.Status != constants.OrderStatusCancelled || order.CancelledAt == nil {
		t.Fatalf("unexpected cancelled order: %+v", order)
	}

	if _, err := env.orders.Cancel(ctx, 7, orderNo); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus on second cancel, got %v", err)
	}
	if _, err := env.orders.Cancel(ctx, 7, "ORD-0-MISSING"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	row, err := env.orderRepo.GetByOrderNo(orderNo)
	if err != nil || row == nil || row.Status != constants.OrderStatusCancelled || row.CancelledAt == nil {
		t.Fatalf("expected cancelled status persisted, got row=%+v err=%v", row, err)
	}

	status := env.publisher.byTopic(constants.TopicOrderStatusUpdated)
	if len(status) != 1 {
		t.Fatalf("expected one status event, got %d", len(status))
	}
	evt := status[0].Payload.(events.OrderStatusEvent)
	if evt.FromStatus != constants.OrderStatusProcessing || evt.ToStatus != constants.OrderStatusCancelled || evt.Source != OrderStatusSourceCustomer {
		t.Fatalf("unexpected status event: %+v", evt)
	}
}

func TestOrderServiceApplyStatusWithoutLoadedSession(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()
	orderNo := checkoutScenario(t, env, 7)
	env.sessions.Evict(7)

	if _, err := env.orders.ApplyStatus(ctx, 7, orderNo, constants.OrderStatusDelivered, OrderStatusSourceTracking); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected Processing -> Delivered rejected, got %v", err)
	}
	if _, err := env.orders.ApplyStatus(ctx, 7, orderNo, constants.OrderStatusOnTheWay, OrderStatusSourceTracking); err != nil {
		t.Fatalf("advance to on the way failed: %v", err)
	}
	updated, err := env.orders.ApplyStatus(ctx, 7, orderNo, constants.OrderStatusDelivered, OrderStatusSourceTracking)
	if err != nil {
		t.Fatalf("advance to delivered failed: %v", err)
	}
	if updated.DeliveredAt == nil {
		t.Fatalf("expected delivered timestamp")
	}
	if _, ok := env.sessions.Peek(7); ok {
		t.Fatalf("status changes must not load the session")
	}

	order, err := env.orders.Get(ctx, 7, orderNo)
	if err != nil {
		t.Fatalf("get after reload failed: %v", err)
	}
	if order.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected delivered after reload, got %s", order.Status)
	}

	if _, err := env.orders.ApplyStatus(ctx, 8, orderNo, constants.OrderStatusCancelled, OrderStatusSourceOperator); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected other users' orders to be invisible, got %v", err)
	}
}

func testServiceProduct(id string, price int64) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Price: models.NewMoneyFromInt(price), Category: constants.CategoryGrocery}
}

func TestOrderServiceWithoutRepository(t *testing.T) {
	sessions := NewSessionManager(nil, nil, nil)
	billing := NewBillingService(store.DefaultFeePolicy())
	svc := NewOrderService(OrderServiceOptions{
		Sessions: sessions,
		Billing:  billing,
		Tracking: config.TrackingConfig{Enabled: true, OnTheWayAfterSeconds: 1, DeliveredAfterSeconds: 2},
	})

	ctx := context.Background()
	session := sessions.Get(ctx, 4)
	session.Cart.Add(testServiceProduct("p1", 100), store.AddOptions{Quantity: 2})

	order, err := svc.Checkout(ctx, 4)
	if err != nil {
		t.Fatalf("checkout without repository failed: %v", err)
	}
	if order.ID != 0 || order.Total.String() != "228.00" {
		t.Fatalf("unexpected in-memory order: id=%d total=%s", order.ID, order.Total)
	}
	if _, err := svc.Cancel(ctx, 4, order.OrderNo); err != nil {
		t.Fatalf("cancel in memory failed: %v", err)
	}
}

func TestOrderTrackingPlan(t *testing.T) {
	svc := NewOrderService(OrderServiceOptions{
		Tracking: config.TrackingConfig{Enabled: true, OnTheWayAfterSeconds: 30, DeliveredAfterSeconds: 10},
	})
	plan := svc.trackingPlan()
	if len(plan) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(plan))
	}
	if plan[0].Status != constants.OrderStatusOnTheWay || plan[0].Delay != 30*time.Second {
		t.Fatalf("unexpected first step: %+v", plan[0])
	}
	if plan[1].Status != constants.OrderStatusDelivered || plan[1].Delay <= plan[0].Delay {
		t.Fatalf("delivered must come after on the way: %+v", plan[1])
	}
}
