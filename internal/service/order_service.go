package service

import (
	"time"

	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/logger"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/queue"
	"github.com/botshop/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	accountRepo repository.UserAccountRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	accountRepo repository.UserAccountRepository,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		accountRepo: accountRepo,
		queueClient: queueClient,
	}
}

// GetByID 获取订单详情
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByIDForUser 获取用户自己的订单详情
func (s *OrderService) GetByIDForUser(id, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByOrderNo 按订单号获取订单
func (s *OrderService) GetByOrderNo(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// UpdateStatus 订单状态流转（仅允许状态机定义的迁移）
func (s *OrderService) UpdateStatus(orderID uint, target string, operator string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	// 目标状态与当前一致视为幂等重放，不重置任何时间戳
	if order.Status == target {
		return order, nil
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	switch target {
	case constants.OrderStatusCompleted:
		// completed_at 只在首次进入 completed 时写入
		if order.CompletedAt == nil {
			updates["completed_at"] = now
		}
	case constants.OrderStatusCancelled:
		updates["canceled_at"] = now
	case constants.OrderStatusRefunded:
		updates["payment_status"] = constants.PaymentStatusRefunded
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		accountRepo := s.accountRepo.WithTx(tx)

		if err := orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
			return err
		}

		switch target {
		case constants.OrderStatusCancelled:
			// 取消回补每个订单项库存并重算商品状态
			for _, item := range order.Items {
				if _, err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
				if err := productRepo.RefreshDerivedStatus(item.ProductID); err != nil {
					return err
				}
			}
			if order.PaymentMethod == constants.PaymentMethodPoints &&
				order.PaymentStatus == constants.PaymentStatusPaid {
				if err := s.refundPoints(accountRepo, order); err != nil {
					return err
				}
				if err := orderRepo.UpdateStatus(order.ID, target, map[string]interface{}{
					"payment_status": constants.PaymentStatusRefunded,
				}); err != nil {
					return err
				}
			}
		case constants.OrderStatusRefunded:
			if order.PaymentMethod == constants.PaymentMethodPoints {
				if err := s.refundPoints(accountRepo, order); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_status_changed",
		"order_no", order.OrderNo,
		"from", order.Status,
		"to", target,
		"operator", operator,
	)

	if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: order.ID,
		Status:  target,
	}); err != nil {
		logger.Warnw("order_status_notify_enqueue_failed", "order_no", order.OrderNo, "error", err)
	}

	return s.orderRepo.GetByID(order.ID)
}

// refundPoints 积分原路退回并记录流水
func (s *OrderService) refundPoints(accountRepo repository.UserAccountRepository, order *models.Order) error {
	if _, err := accountRepo.CreditPoints(order.UserID, order.TotalAmount); err != nil {
		return err
	}
	account, err := accountRepo.GetByID(order.UserID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}
	txn := &models.PointsTransaction{
		UserID:  order.UserID,
		OrderID: &order.ID,
		Type:    constants.PointsTxnTypeRefund,
		Amount:  order.TotalAmount,
		Balance: account.Points,
		Remark:  order.OrderNo,
	}
	return accountRepo.CreateTransaction(txn)
}

// UpdatePaymentStatus 人工确认支付状态（stripe/paypal/银行转账到账后由员工标记）
func (s *OrderService) UpdatePaymentStatus(orderID uint, status string, operator string) (*models.Order, error) {
	switch status {
	case constants.PaymentStatusPending,
		constants.PaymentStatusPaid,
		constants.PaymentStatusFailed,
		constants.PaymentStatusRefunded:
	default:
		return nil, ErrPaymentMethodInvalid
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	updates := map[string]interface{}{
		"payment_status": status,
		"updated_at":     time.Now(),
	}
	if status == constants.PaymentStatusPaid && order.PaidAt == nil {
		updates["paid_at"] = time.Now()
	}
	if err := s.orderRepo.UpdateStatus(order.ID, order.Status, updates); err != nil {
		return nil, err
	}

	logger.Infow("order_payment_status_changed",
		"order_no", order.OrderNo,
		"payment_status", status,
		"operator", operator,
	)
	return s.orderRepo.GetByID(order.ID)
}

// UpdateNotes 更新员工备注
func (s *OrderService) UpdateNotes(orderID uint, notes string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := s.orderRepo.UpdateStatus(order.ID, order.Status, map[string]interface{}{
		"notes":      notes,
		"updated_at": time.Now(),
	}); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// DashboardStats 控制台概览统计
type DashboardStats struct {
	StatusCounts map[string]int64 `json:"status_counts"`
	Revenue30d   models.Money     `json:"revenue_30d"`
}

// Stats 汇总订单统计
func (s *OrderService) Stats() (*DashboardStats, error) {
	counts, err := s.orderRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.SumRevenueSince(time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		StatusCounts: counts,
		Revenue30d:   revenue,
	}, nil
}
