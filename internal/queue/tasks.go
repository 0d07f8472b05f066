package queue

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spirecart/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskOrderAdvanceStatus 模拟物流推进订单状态任务
const TaskOrderAdvanceStatus = constants.TaskOrderAdvanceStatus

// OrderAdvanceStatusPayload 订单状态推进任务载荷
type OrderAdvanceStatusPayload struct {
	OrderNo string `json:"order_no"`
	UserID  uint   `json:"user_id"`
	Status  string `json:"status"`
}

// TaskID 任务去重标识
func (p OrderAdvanceStatusPayload) TaskID() string {
	status := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p.Status)), " ", "_")
	return fmt.Sprintf("%s:%s:%s", TaskOrderAdvanceStatus, p.OrderNo, status)
}

// NewOrderAdvanceStatusTask 创建订单状态推进任务
func NewOrderAdvanceStatusTask(payload OrderAdvanceStatusPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderAdvanceStatus, body), nil
}

// ParseOrderAdvanceStatusPayload 解析任务载荷
func ParseOrderAdvanceStatusPayload(task *asynq.Task) (OrderAdvanceStatusPayload, error) {
	var payload OrderAdvanceStatusPayload
	if task == nil {
		return payload, fmt.Errorf("nil task")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	if strings.TrimSpace(payload.OrderNo) == "" || strings.TrimSpace(payload.Status) == "" {
		return payload, fmt.Errorf("invalid %s payload", TaskOrderAdvanceStatus)
	}
	return payload, nil
}
