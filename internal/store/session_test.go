package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSessionCheckoutBillsDrainedItemsUnderConcurrentAdds(t *testing.T) {
	session := NewSession(9)
	policy := DefaultFeePolicy()
	extra := testProduct("p2", 99)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					session.Cart.Add(extra, AddOptions{})
				}
			}
		}()
	}

	placed := 0
	for round := 0; round < 500; round++ {
		session.Cart.Add(testProduct("p1", 1000), AddOptions{Quantity: 2})
		order, bill, err := session.Checkout(policy)
		if errors.Is(err, ErrEmptyCart) {
			continue
		}
		if err != nil {
			close(stop)
			wg.Wait()
			t.Fatalf("round %d: checkout failed: %v", round, err)
		}
		placed++

		sum := decimal.Zero
		for _, item := range order.Items {
			sum = sum.Add(item.LineTotal.Decimal)
		}
		want := Calculate(sum, policy)
		if !sum.Equal(order.ItemSubtotal.Decimal) || !sum.Equal(bill.ItemSubtotal) {
			close(stop)
			wg.Wait()
			t.Fatalf("round %d: items sum %s, order subtotal %s, bill subtotal %s",
				round, sum, order.ItemSubtotal.Decimal, bill.ItemSubtotal)
		}
		if !want.GrandTotal.Equal(order.Total.Decimal) || !want.GST.Equal(order.GST.Decimal) {
			close(stop)
			wg.Wait()
			t.Fatalf("round %d: expected total %s gst %s, got %s/%s",
				round, want.GrandTotal, want.GST, order.Total.Decimal, order.GST.Decimal)
		}
	}
	close(stop)
	wg.Wait()

	if placed == 0 {
		t.Fatalf("expected at least one order to be placed")
	}
	if got := session.Orders.Len(); got != placed {
		t.Fatalf("expected %d orders, got %d", placed, got)
	}
}

func TestPlaceOrderWithPolicyEmptyCartKeepsLog(t *testing.T) {
	log := NewOrderLog()
	if _, _, err := log.PlaceOrderWithPolicy(NewCart(), DefaultFeePolicy()); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if log.Len() != 0 {
		t.Fatalf("expected empty order log, got %d", log.Len())
	}
}
