package queue

import (
	"encoding/json"

	"github.com/botshop/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderNotify 下单成功通知任务（买家私信 + 管理频道播报）
	TaskOrderNotify = constants.TaskOrderNotify
	// TaskOrderStatusNotify 订单状态变更通知任务
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
)

// OrderNotifyPayload 下单通知任务载荷
type OrderNotifyPayload struct {
	OrderID uint `json:"order_id"`
}

// OrderStatusNotifyPayload 状态变更通知任务载荷
type OrderStatusNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewOrderNotifyTask 创建下单通知任务
func NewOrderNotifyTask(payload OrderNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderNotify, body), nil
}

// NewOrderStatusNotifyTask 创建状态变更通知任务
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotify, body), nil
}
