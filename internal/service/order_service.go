package service

import (
	"context"
	"strings"
	"time"

	"github.com/spirecart/internal/config"
	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/events"
	"github.com/spirecart/internal/logger"
	"github.com/spirecart/internal/models"
	"github.com/spirecart/internal/queue"
	"github.com/spirecart/internal/repository"
	"github.com/spirecart/internal/store"
)

// 订单状态变更来源
const (
	OrderStatusSourceCustomer = "customer"
	OrderStatusSourceOperator = "operator"
	OrderStatusSourceTracking = "tracking"
)

// OrderService 订单服务
type OrderService struct {
	sessions    *SessionManager
	orderRepo   repository.OrderRepository
	billing     *BillingService
	queueClient *queue.Client
	publisher   events.Publisher
	tracking    config.TrackingConfig
}

// OrderServiceOptions 订单服务依赖
type OrderServiceOptions struct {
	Sessions    *SessionManager
	OrderRepo   repository.OrderRepository
	Billing     *BillingService
	QueueClient *queue.Client
	Publisher   events.Publisher
	Tracking    config.TrackingConfig
}

// NewOrderService 创建订单服务
func NewOrderService(opts OrderServiceOptions) *OrderService {
	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &OrderService{
		sessions:    opts.Sessions,
		orderRepo:   opts.OrderRepo,
		billing:     opts.Billing,
		queueClient: opts.QueueClient,
		publisher:   publisher,
		tracking:    opts.Tracking,
	}
}

// Checkout 以当前购物车下单
// 订单快照与清空购物车在会话内原子完成；落库、物流任务与事件投递失败只记录告警
func (s *OrderService) Checkout(ctx context.Context, userID uint) (models.Order, error) {
	session := s.sessions.Get(ctx, userID)
	order, bill, err := session.Checkout(s.billing.Policy())
	if err != nil {
		return models.Order{}, translateStoreError(err, ErrOrderNotFound)
	}
	log := logger.Ctx(ctx)
	log.Infow("order_placed",
		"order_no", order.OrderNo,
		"user_id", userID,
		"items", order.ItemCount(),
		"grand_total", bill.GrandTotal.String(),
	)

	if s.orderRepo != nil {
		persisted := order.Clone()
		if err := s.orderRepo.Create(&persisted); err != nil {
			log.Warnw("order_persist_failed", "order_no", order.OrderNo, "error", err)
		} else {
			session.Orders.Replace(persisted)
			order = persisted
		}
	}

	s.enqueueTracking(ctx, order)
	if err := s.publisher.Publish(ctx, constants.TopicOrderPlaced, order.OrderNo, events.NewOrderPlacedEvent(order)); err != nil {
		log.Warnw("order_event_publish_failed", "topic", constants.TopicOrderPlaced, "order_no", order.OrderNo, "error", err)
	}
	return order, nil
}

// List 用户订单（新订单在前）
func (s *OrderService) List(ctx context.Context, userID uint) []models.Order {
	return s.sessions.Get(ctx, userID).Orders.List()
}

// Get 获取用户订单
func (s *OrderService) Get(ctx context.Context, userID uint, orderNo string) (models.Order, error) {
	order, err := s.sessions.Get(ctx, userID).Orders.Get(strings.TrimSpace(orderNo))
	if err != nil {
		return models.Order{}, translateStoreError(err, ErrOrderNotFound)
	}
	return order, nil
}

// Cancel 用户取消订单
func (s *OrderService) Cancel(ctx context.Context, userID uint, orderNo string) (models.Order, error) {
	return s.ApplyStatus(ctx, userID, orderNo, constants.OrderStatusCancelled, OrderStatusSourceCustomer)
}

// ListForUser 后台查看用户订单（以数据库为准）
func (s *OrderService) ListForUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if s.orderRepo == nil {
		session, ok := s.sessions.Peek(userID)
		if !ok {
			return []models.Order{}, 0, nil
		}
		list := session.Orders.List()
		return list, int64(len(list)), nil
	}
	return s.orderRepo.ListByUser(repository.OrderListFilter{UserID: userID, Page: page, PageSize: pageSize})
}

// ApplyStatus 推进订单状态
// 会话已加载时以内存为准，否则直接按数据库记录校验流转
func (s *OrderService) ApplyStatus(ctx context.Context, userID uint, orderNo, status, source string) (models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	status = strings.TrimSpace(status)

	var (
		updated models.Order
		from    string
		err     error
	)
	if session, ok := s.sessions.Peek(userID); ok {
		updated, from, err = s.transitionInSession(session, orderNo, status)
	} else {
		updated, from, err = s.transitionInRepository(userID, orderNo, status)
	}
	if err != nil {
		return models.Order{}, err
	}

	log := logger.Ctx(ctx)
	if err := s.persistStatus(updated); err != nil {
		log.Warnw("order_status_persist_failed", "order_no", orderNo, "status", status, "error", err)
	}
	log.Infow("order_status_changed", "order_no", orderNo, "from", from, "to", status, "source", source)

	evt := events.OrderStatusEvent{
		OrderNo:    orderNo,
		UserID:     userID,
		FromStatus: from,
		ToStatus:   status,
		Source:     source,
		ChangedAt:  time.Now(),
	}
	if err := s.publisher.Publish(ctx, constants.TopicOrderStatusUpdated, orderNo, evt); err != nil {
		log.Warnw("order_event_publish_failed", "topic", constants.TopicOrderStatusUpdated, "order_no", orderNo, "error", err)
	}
	return updated, nil
}

func (s *OrderService) transitionInSession(session *store.Session, orderNo, status string) (models.Order, string, error) {
	current, err := session.Orders.Get(orderNo)
	if err != nil {
		return models.Order{}, "", translateStoreError(err, ErrOrderNotFound)
	}
	updated, err := session.Orders.Transition(orderNo, status)
	if err != nil {
		return models.Order{}, "", translateStoreError(err, ErrOrderNotFound)
	}
	return updated, current.Status, nil
}

func (s *OrderService) transitionInRepository(userID uint, orderNo, status string) (models.Order, string, error) {
	if s.orderRepo == nil {
		return models.Order{}, "", ErrOrderNotFound
	}
	row, err := s.orderRepo.GetByOrderNoAndUser(orderNo, userID)
	if err != nil {
		return models.Order{}, "", err
	}
	if row == nil {
		return models.Order{}, "", ErrOrderNotFound
	}
	if !store.CanTransition(row.Status, status) {
		return models.Order{}, "", ErrInvalidOrderStatus
	}
	from := row.Status
	applyStatusTimestamps(row, status, time.Now())
	return *row, from, nil
}

func (s *OrderService) persistStatus(order models.Order) error {
	if s.orderRepo == nil {
		return nil
	}
	id := order.ID
	if id == 0 {
		row, err := s.orderRepo.GetByOrderNo(order.OrderNo)
		if err != nil {
			return err
		}
		if row == nil {
			return ErrOrderNotFound
		}
		id = row.ID
	}
	updates := map[string]interface{}{"updated_at": time.Now()}
	if order.CancelledAt != nil {
		updates["cancelled_at"] = *order.CancelledAt
	}
	if order.DeliveredAt != nil {
		updates["delivered_at"] = *order.DeliveredAt
	}
	return s.orderRepo.UpdateStatus(id, order.Status, updates)
}

func applyStatusTimestamps(order *models.Order, status string, now time.Time) {
	order.Status = status
	switch status {
	case constants.OrderStatusCancelled:
		order.CancelledAt = &now
	case constants.OrderStatusDelivered:
		order.DeliveredAt = &now
	}
}
