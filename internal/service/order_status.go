package service

import "github.com/botshop/internal/constants"

// allowedTransitions 订单状态机：pending → processing → completed；
// pending/processing 可取消，completed 可退款，cancelled/refunded 为终态
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusCompleted: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusCompleted: {
		constants.OrderStatusRefunded: true,
	},
}

func isTransitionAllowed(current, target string) bool {
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}
