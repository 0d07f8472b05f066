package service

import (
	"context"
	"time"

	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/logger"
	"github.com/spirecart/internal/models"
	"github.com/spirecart/internal/queue"
)

// trackingStep 模拟物流的一次状态推进
type trackingStep struct {
	Status string
	Delay  time.Duration
}

// trackingPlan 下单后依次推进到 On the way 与 Delivered
func (s *OrderService) trackingPlan() []trackingStep {
	onTheWay := time.Duration(s.tracking.OnTheWayAfterSeconds) * time.Second
	delivered := time.Duration(s.tracking.DeliveredAfterSeconds) * time.Second
	if delivered <= onTheWay {
		delivered = onTheWay + time.Second
	}
	return []trackingStep{
		{Status: constants.OrderStatusOnTheWay, Delay: onTheWay},
		{Status: constants.OrderStatusDelivered, Delay: delivered},
	}
}

// enqueueTracking 入队延迟状态推进任务，队列未启用时跳过
func (s *OrderService) enqueueTracking(ctx context.Context, order models.Order) {
	if !s.tracking.Enabled || !s.queueClient.Enabled() {
		return
	}
	for _, step := range s.trackingPlan() {
		payload := queue.OrderAdvanceStatusPayload{
			OrderNo: order.OrderNo,
			UserID:  order.UserID,
			Status:  step.Status,
		}
		if err := s.queueClient.EnqueueOrderAdvanceStatus(payload, step.Delay); err != nil {
			logger.Ctx(ctx).Warnw("order_tracking_enqueue_failed",
				"order_no", order.OrderNo,
				"status", step.Status,
				"error", err,
			)
		}
	}
}
