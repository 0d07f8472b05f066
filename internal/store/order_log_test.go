package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spirecart/internal/constants"
)

func fixedOrderLog(at time.Time) *OrderLog {
	log := NewOrderLog()
	log.now = func() time.Time { return at }
	return log
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	log := NewOrderLog()
	cart := NewCart()
	_, err := log.PlaceOrder(cart, Calculate(decimal.Zero, DefaultFeePolicy()))
	if !errors.Is(err, ErrInvalidState) || !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart wrapping ErrInvalidState, got %v", err)
	}
	if log.Len() != 0 {
		t.Fatalf("expected no order recorded")
	}
}

func TestPlaceOrderScenario(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 4, 0, 0, time.UTC)
	log := fixedOrderLog(at)
	cart := NewCart()
	cart.Add(testProduct("p1", 250), AddOptions{Quantity: 2, Size: strPtr("L")})
	cart.Add(testProduct("p2", 50), AddOptions{})

	bill := Calculate(cart.Total(), DefaultFeePolicy())
	order, err := log.PlaceOrder(cart, bill)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if !cart.IsEmpty() {
		t.Fatalf("expected cart cleared after order")
	}
	if order.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected Processing, got %s", order.Status)
	}
	if !strings.HasPrefix(order.OrderNo, "ORD-") {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	if order.DateLabel != "14 Mar 2026, 03:04 PM" {
		t.Fatalf("unexpected date label: %s", order.DateLabel)
	}
	if order.GST.String() != "27.50" || order.Total.String() != "595.50" {
		t.Fatalf("unexpected totals gst=%s total=%s", order.GST, order.Total)
	}
	if len(order.Items) != 2 || order.ItemCount() != 3 {
		t.Fatalf("unexpected items: %+v", order.Items)
	}
	if order.Items[0].SelectedSize == nil || *order.Items[0].SelectedSize != "L" {
		t.Fatalf("expected size snapshot, got %+v", order.Items[0])
	}
}

func TestPlaceOrderNewestFirstAndImmutable(t *testing.T) {
	log := NewOrderLog()
	cart := NewCart()

	cart.Add(testProduct("p1", 100), AddOptions{})
	first, err := log.PlaceOrder(cart, Calculate(cart.Total(), DefaultFeePolicy()))
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	cart.Add(testProduct("p2", 200), AddOptions{})
	second, err := log.PlaceOrder(cart, Calculate(cart.Total(), DefaultFeePolicy()))
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	list := log.List()
	if len(list) != 2 || list[0].OrderNo != second.OrderNo || list[1].OrderNo != first.OrderNo {
		t.Fatalf("expected newest first, got %+v", list)
	}

	// 后续购物车变化与返回值篡改都不影响已下订单
	cart.Add(testProduct("p1", 100), AddOptions{Quantity: 5})
	list[1].Items[0].Quantity = 42
	stored, err := log.Get(first.OrderNo)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Items[0].Quantity != 1 || stored.Total.String() != first.Total.String() {
		t.Fatalf("expected stored order unchanged, got %+v", stored)
	}
}

func TestOrderTransition(t *testing.T) {
	log := NewOrderLog()
	cart := NewCart()
	cart.Add(testProduct("p1", 100), AddOptions{})
	order, _ := log.PlaceOrder(cart, Calculate(cart.Total(), DefaultFeePolicy()))

	if _, err := log.Transition(order.OrderNo, constants.OrderStatusDelivered); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := log.Transition(order.OrderNo, constants.OrderStatusOnTheWay); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	delivered, err := log.Transition(order.OrderNo, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if delivered.DeliveredAt == nil {
		t.Fatalf("expected delivered time set")
	}
	if _, err := log.Transition(order.OrderNo, constants.OrderStatusCancelled); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected delivered order not cancellable, got %v", err)
	}
	if _, err := log.Transition("ORD-missing", constants.OrderStatusCancelled); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.OrderStatusProcessing, constants.OrderStatusOnTheWay, true},
		{constants.OrderStatusProcessing, constants.OrderStatusCancelled, true},
		{constants.OrderStatusOnTheWay, constants.OrderStatusCancelled, true},
		{constants.OrderStatusOnTheWay, constants.OrderStatusDelivered, true},
		{constants.OrderStatusProcessing, constants.OrderStatusDelivered, false},
		{constants.OrderStatusCancelled, constants.OrderStatusProcessing, false},
		{constants.OrderStatusDelivered, constants.OrderStatusOnTheWay, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Fatalf("%s -> %s: expected %v, got %v", c.from, c.to, c.want, got)
		}
	}
}

func TestSessionCheckout(t *testing.T) {
	session := NewSession(7)
	session.Cart.Add(testProduct("p1", 1000), AddOptions{})

	order, bill, err := session.Checkout(DefaultFeePolicy())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.UserID != 7 {
		t.Fatalf("expected user id 7, got %d", order.UserID)
	}
	if bill.Rounded().GrandTotal != 1068 || order.Total.Display() != 1068 {
		t.Fatalf("unexpected totals: %+v / %s", bill.Rounded(), order.Total)
	}
	if _, _, err := session.Checkout(DefaultFeePolicy()); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart on second checkout, got %v", err)
	}
}
