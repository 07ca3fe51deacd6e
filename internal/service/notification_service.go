package service

import (
	"fmt"
	"strings"

	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/i18n"
	"github.com/botshop/internal/logger"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/repository"
)

// Sender 通知投递抽象（Discord 会话实现；测试使用内存实现）
type Sender interface {
	SendDirectMessage(discordID, title, content string) error
	PostToChannel(channelID, title, content string) error
}

// NotificationService 订单通知服务：买家私信 + 管理频道播报
type NotificationService struct {
	orderRepo      repository.OrderRepository
	accountRepo    repository.UserAccountRepository
	sender         Sender
	adminChannelID string
	locale         string
}

// NewNotificationService 创建订单通知服务
func NewNotificationService(
	orderRepo repository.OrderRepository,
	accountRepo repository.UserAccountRepository,
	sender Sender,
	adminChannelID string,
	locale string,
) *NotificationService {
	return &NotificationService{
		orderRepo:      orderRepo,
		accountRepo:    accountRepo,
		sender:         sender,
		adminChannelID: adminChannelID,
		locale:         i18n.NormalizeLocale(locale),
	}
}

// DispatchOrderNotify 下单成功通知：投递失败只记录日志
func (s *NotificationService) DispatchOrderNotify(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		logger.Warnw("order_notify_skipped_order_missing", "order_id", orderID)
		return nil
	}
	if s.sender == nil {
		logger.Debugw("order_notify_skipped_sender_disabled", "order_no", order.OrderNo)
		return nil
	}

	title := i18n.T(s.locale, "notify.order_created.title")
	content := s.renderOrderSummary(order)

	if err := s.sender.SendDirectMessage(order.DiscordID, title, content); err != nil {
		logger.Warnw("order_notify_dm_failed", "order_no", order.OrderNo, "error", err)
	}
	if channelID := strings.TrimSpace(s.adminChannelID); channelID != "" {
		if err := s.sender.PostToChannel(channelID, title, content); err != nil {
			logger.Warnw("order_notify_channel_failed", "order_no", order.OrderNo, "error", err)
		}
	}
	return nil
}

// DispatchOrderStatusNotify 订单状态变更通知买家
func (s *NotificationService) DispatchOrderStatusNotify(orderID uint, status string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		logger.Warnw("order_status_notify_skipped_order_missing", "order_id", orderID)
		return nil
	}
	if s.sender == nil {
		logger.Debugw("order_status_notify_skipped_sender_disabled", "order_no", order.OrderNo)
		return nil
	}

	title := i18n.T(s.locale, "notify.order_status.title")
	statusLabel := i18n.T(s.locale, "order.status."+status)
	content := fmt.Sprintf("%s\n%s: %s", order.OrderNo,
		i18n.T(s.locale, "notify.order_status.label"), statusLabel)

	if err := s.sender.SendDirectMessage(order.DiscordID, title, content); err != nil {
		logger.Warnw("order_status_notify_dm_failed", "order_no", order.OrderNo, "error", err)
	}
	return nil
}

// renderOrderSummary 组装订单摘要文本
func (s *NotificationService) renderOrderSummary(order *models.Order) string {
	var b strings.Builder
	b.WriteString(order.OrderNo)
	b.WriteString("\n")
	for _, item := range order.Items {
		b.WriteString(fmt.Sprintf("%s x%d  %s %s\n",
			item.ProductName, item.Quantity, item.TotalPrice.String(), order.Currency))
	}
	b.WriteString(fmt.Sprintf("%s: %s %s\n",
		i18n.T(s.locale, "notify.order_created.total"), order.TotalAmount.String(), order.Currency))
	b.WriteString(fmt.Sprintf("%s: %s",
		i18n.T(s.locale, "notify.order_created.payment"),
		i18n.T(s.locale, "payment.method."+order.PaymentMethod)))
	if order.PaymentStatus == constants.PaymentStatusPaid {
		b.WriteString(" (" + i18n.T(s.locale, "payment.status.paid") + ")")
	}
	return b.String()
}
