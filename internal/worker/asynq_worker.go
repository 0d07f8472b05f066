package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/spirecart/internal/logger"
	"github.com/spirecart/internal/provider"
	"github.com/spirecart/internal/queue"
	"github.com/spirecart/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderAdvanceStatus, c.handleOrderAdvanceStatus)
}

// handleOrderAdvanceStatus 模拟物流推进订单状态
// 订单已取消或已送达时流转不合法，直接丢弃不重试
func (c *Consumer) handleOrderAdvanceStatus(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_advance_status_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderAdvanceStatusPayload(task)
	if err != nil {
		logger.Warnw("worker_order_advance_status_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.UserID == 0 {
		logger.Debugw("worker_order_advance_status_skip_invalid_payload", "order_no", payload.OrderNo)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_advance_status_skip_order_service_nil", "order_no", payload.OrderNo)
		return nil
	}

	ctx = logger.WithContextFields(ctx, "order_no", payload.OrderNo, "user_id", payload.UserID)
	_, err = c.OrderService.ApplyStatus(ctx, payload.UserID, payload.OrderNo, payload.Status, service.OrderStatusSourceTracking)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			logger.Ctx(ctx).Infow("worker_order_advance_status_skip_transition", "status", payload.Status)
			return nil
		case errors.Is(err, service.ErrOrderNotFound):
			logger.Ctx(ctx).Debugw("worker_order_advance_status_skip_order_not_found")
			return nil
		default:
			logger.Ctx(ctx).Warnw("worker_order_advance_status_failed", "status", payload.Status, "error", err)
			return err
		}
	}
	return nil
}
