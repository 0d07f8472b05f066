package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/models"
)

// OrderDateLayout 订单展示时间格式
const OrderDateLayout = "02 Jan 2006, 03:04 PM"

// orderTransitions 订单状态流转表
var orderTransitions = map[string][]string{
	constants.OrderStatusProcessing: {constants.OrderStatusOnTheWay, constants.OrderStatusCancelled},
	constants.OrderStatusOnTheWay:   {constants.OrderStatusDelivered, constants.OrderStatusCancelled},
}

// CanTransition 判断订单状态能否流转
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderLog 用户订单记录（新订单在前）
type OrderLog struct {
	mu         sync.RWMutex
	userID     uint
	orders     []models.Order
	now        func() time.Time
	newOrderNo func(time.Time) string
}

// NewOrderLog 创建空订单记录
func NewOrderLog() *OrderLog {
	return &OrderLog{
		now:        time.Now,
		newOrderNo: generateOrderNo,
	}
}

func generateOrderNo(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%d-%s", constants.OrderNoPrefix, at.UnixMilli(), suffix)
}

// Load 加载已持久化订单，按下单时间倒序
func (l *OrderLog) Load(list []models.Order) {
	orders := make([]models.Order, len(list))
	for i := range list {
		orders[i] = list[i].Clone()
	}
	sortOrdersNewestFirst(orders)

	l.mu.Lock()
	l.orders = orders
	l.mu.Unlock()
}

// PlaceOrder 将购物车快照为订单并清空购物车
// 购物车为空时返回 ErrEmptyCart，订单记录与购物车均不变
func (l *OrderLog) PlaceOrder(cart *Cart, bill Breakdown) (models.Order, error) {
	order, _, err := l.placeOrder(cart, func([]models.CartItem) Breakdown { return bill })
	return order, err
}

// PlaceOrderWithPolicy 按取出的购物车行计算结算明细并下单
// 明细与订单行来自同一次清空，并发加购不会让二者不一致
func (l *OrderLog) PlaceOrderWithPolicy(cart *Cart, policy FeePolicy) (models.Order, Breakdown, error) {
	return l.placeOrder(cart, func(items []models.CartItem) Breakdown {
		return Calculate(sumItems(items), policy)
	})
}

func (l *OrderLog) placeOrder(cart *Cart, billFor func([]models.CartItem) Breakdown) (models.Order, Breakdown, error) {
	if cart == nil {
		return models.Order{}, Breakdown{}, ErrEmptyCart
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	items := cart.drain()
	if len(items) == 0 {
		return models.Order{}, Breakdown{}, ErrEmptyCart
	}
	bill := billFor(items)

	placedAt := l.now()
	order := models.Order{
		OrderNo:          l.newOrderNo(placedAt),
		UserID:           l.userID,
		Status:           constants.OrderStatusProcessing,
		DateLabel:        placedAt.Format(OrderDateLayout),
		ItemSubtotal:     models.NewMoneyFromDecimal(bill.ItemSubtotal),
		DeliveryFee:      models.NewMoneyFromDecimal(bill.DeliveryFee),
		PlatformFee:      models.NewMoneyFromDecimal(bill.PlatformFee),
		GST:              models.NewMoneyFromDecimal(bill.GST),
		TreeContribution: models.NewMoneyFromDecimal(bill.TreeContribution),
		Total:            models.NewMoneyFromDecimal(bill.GrandTotal),
		PlacedAt:         placedAt,
		Items:            make([]models.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		order.Items = append(order.Items, models.NewOrderItemFromCart(item))
	}

	l.orders = append([]models.Order{order}, l.orders...)
	return order.Clone(), bill, nil
}

// List 返回订单副本（新订单在前）
func (l *OrderLog) List() []models.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Order, len(l.orders))
	for i := range l.orders {
		out[i] = l.orders[i].Clone()
	}
	return out
}

// Len 订单数量
func (l *OrderLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}

// Get 按订单编号获取订单
func (l *OrderLog) Get(orderNo string) (models.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx := l.indexOf(orderNo)
	if idx < 0 {
		return models.Order{}, ErrNotFound
	}
	return l.orders[idx].Clone(), nil
}

// Transition 流转订单状态
func (l *OrderLog) Transition(orderNo, status string) (models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(orderNo)
	if idx < 0 {
		return models.Order{}, ErrNotFound
	}
	order := &l.orders[idx]
	if !CanTransition(order.Status, status) {
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}
	now := l.now()
	order.Status = status
	switch status {
	case constants.OrderStatusCancelled:
		order.CancelledAt = &now
	case constants.OrderStatusDelivered:
		order.DeliveredAt = &now
	}
	return order.Clone(), nil
}

// Replace 用外部已更新的订单覆盖本地副本（如后台任务推进了状态）
func (l *OrderLog) Replace(order models.Order) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := l.indexOf(order.OrderNo)
	if idx < 0 {
		return false
	}
	l.orders[idx] = order.Clone()
	return true
}

func (l *OrderLog) indexOf(orderNo string) int {
	for i := range l.orders {
		if l.orders[i].OrderNo == orderNo {
			return i
		}
	}
	return -1
}

func sortOrdersNewestFirst(orders []models.Order) {
	// 插入排序保持同一时间订单的相对顺序
	for i := 1; i < len(orders); i++ {
		for j := i; j > 0 && orders[j].PlacedAt.After(orders[j-1].PlacedAt); j-- {
			orders[j], orders[j-1] = orders[j-1], orders[j]
		}
	}
}
