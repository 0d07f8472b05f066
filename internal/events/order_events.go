package events

import (
	"time"

	"github.com/spirecart/internal/models"
)

// OrderPlacedEvent 下单事件
type OrderPlacedEvent struct {
	OrderNo    string       `json:"order_no"`
	UserID     uint         `json:"user_id"`
	Status     string       `json:"status"`
	ItemCount  int          `json:"item_count"`
	Subtotal   models.Money `json:"item_subtotal"`
	GST        models.Money `json:"gst"`
	Total      models.Money `json:"total"`
	PlacedAt   time.Time    `json:"placed_at"`
	ProductIDs []string     `json:"product_ids"`
}

// OrderStatusEvent 订单状态变更事件
type OrderStatusEvent struct {
	OrderNo    string    `json:"order_no"`
	UserID     uint      `json:"user_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Source     string    `json:"source"`
	ChangedAt  time.Time `json:"changed_at"`
}

// NewOrderPlacedEvent 由订单快照构建下单事件
func NewOrderPlacedEvent(order models.Order) OrderPlacedEvent {
	ids := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}
	return OrderPlacedEvent{
		OrderNo:    order.OrderNo,
		UserID:     order.UserID,
		Status:     order.Status,
		ItemCount:  order.ItemCount(),
		Subtotal:   order.ItemSubtotal,
		GST:        order.GST,
		Total:      order.Total,
		PlacedAt:   order.PlacedAt,
		ProductIDs: ids,
	}
}
