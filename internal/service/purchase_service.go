package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/botshop/internal/config"
	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/logger"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/queue"
	"github.com/botshop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseItem 下单项
type PurchaseItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// PurchaseInput 下单入参（REST、斜杠命令、按钮链共用同一入口）
type PurchaseInput struct {
	DiscordID     string
	Username      string
	Items         []PurchaseItem
	PaymentMethod string
	Source        string
}

// PurchaseResult 下单结果
type PurchaseResult struct {
	Order        *models.Order
	Account      *models.UserAccount
	Instructions string // 非积分支付的支付指引文案
}

// PurchaseService 购买流程服务
type PurchaseService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	accountRepo repository.UserAccountRepository
	queueClient *queue.Client
	payment     config.PaymentConfig
	currency    string
}

// NewPurchaseService 创建购买流程服务
func NewPurchaseService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	accountRepo repository.UserAccountRepository,
	queueClient *queue.Client,
	payment config.PaymentConfig,
	currency string,
) *PurchaseService {
	if strings.TrimSpace(currency) == "" {
		currency = constants.SiteCurrencyDefault
	}
	return &PurchaseService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		accountRepo: accountRepo,
		queueClient: queueClient,
		payment:     payment,
		currency:    currency,
	}
}

// Purchase 执行下单：前置校验全部通过后在单事务内落库，任一失败不产生任何变更
func (s *PurchaseService) Purchase(input PurchaseInput) (*PurchaseResult, error) {
	items, err := mergePurchaseItems(input.Items)
	if err != nil {
		return nil, err
	}
	if !isValidPaymentMethod(input.PaymentMethod) {
		return nil, ErrPaymentMethodInvalid
	}

	account, err := s.accountRepo.GetOrCreateByDiscordID(input.DiscordID, input.Username)
	if err != nil {
		return nil, err
	}

	// 按入参顺序逐项校验，命中第一个失败原因即返回
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uint]*models.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		product, ok := productMap[item.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		if !product.IsPurchasable() {
			return nil, ErrProductNotAvailable
		}
		if product.Stock < item.Quantity {
			return nil, ErrStockInsufficient
		}
		lineTotal := product.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		// 名称与单价在此处快照，后续商品变更不回溯订单
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.PriceAmount,
			Quantity:    item.Quantity,
			TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
		})
	}
	totalAmount := models.NewMoneyFromDecimal(total)

	usePoints := input.PaymentMethod == constants.PaymentMethodPoints
	if usePoints && account.Points.Decimal.LessThan(totalAmount.Decimal) {
		return nil, ErrPointsInsufficient
	}

	now := time.Now()
	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = constants.PurchaseSourceAPI
	}
	order := &models.Order{
		OrderNo:       generateOrderNo(),
		UserID:        account.ID,
		DiscordID:     account.DiscordID,
		Status:        constants.OrderStatusPending,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: constants.PaymentStatusPending,
		Currency:      s.currency,
		TotalAmount:   totalAmount,
		Source:        source,
	}
	if usePoints {
		order.PaymentStatus = constants.PaymentStatusPaid
		order.PaidAt = &now
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		accountRepo := s.accountRepo.WithTx(tx)

		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}

		for _, item := range items {
			// 条件更新保证并发下不超卖：库存不足时整个事务回滚
			affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrStockInsufficient
			}
			if err := productRepo.RefreshDerivedStatus(item.ProductID); err != nil {
				return err
			}
		}

		if usePoints {
			affected, err := accountRepo.DebitPoints(account.ID, totalAmount)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrPointsInsufficient
			}
			refreshed, err := accountRepo.GetByID(account.ID)
			if err != nil {
				return err
			}
			if refreshed != nil {
				account = refreshed
			}
			txn := &models.PointsTransaction{
				UserID:  account.ID,
				OrderID: &order.ID,
				Type:    constants.PointsTxnTypePurchase,
				Amount:  models.NewMoneyFromDecimal(totalAmount.Decimal.Neg()),
				Balance: account.Points,
				Remark:  order.OrderNo,
			}
			if err := accountRepo.CreateTransaction(txn); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Items = orderItems

	logger.Infow("order_created",
		"order_no", order.OrderNo,
		"user_id", account.ID,
		"discord_id", account.DiscordID,
		"payment_method", order.PaymentMethod,
		"total_amount", order.TotalAmount.String(),
		"source", order.Source,
	)

	// 通知失败只记录日志，不影响已落库的订单
	if err := s.queueClient.EnqueueOrderNotify(queue.OrderNotifyPayload{OrderID: order.ID}); err != nil {
		logger.Warnw("order_notify_enqueue_failed", "order_no", order.OrderNo, "error", err)
	}

	return &PurchaseResult{
		Order:        order,
		Account:      account,
		Instructions: s.paymentInstructions(order),
	}, nil
}

// paymentInstructions 返回非积分支付方式的付款指引
func (s *PurchaseService) paymentInstructions(order *models.Order) string {
	if order == nil {
		return ""
	}
	switch order.PaymentMethod {
	case constants.PaymentMethodPoints:
		return ""
	case constants.PaymentMethodBankTransfer:
		note := strings.TrimSpace(s.payment.BankTransferNote)
		if note == "" {
			return order.OrderNo
		}
		return fmt.Sprintf("%s\n%s", note, order.OrderNo)
	case constants.PaymentMethodStripe:
		return renderPaymentURL(s.payment.StripePageURL, order.OrderNo)
	case constants.PaymentMethodPaypal:
		return renderPaymentURL(s.payment.PaypalPageURL, order.OrderNo)
	default:
		return order.OrderNo
	}
}

func renderPaymentURL(template, orderNo string) string {
	template = strings.TrimSpace(template)
	if template == "" {
		return orderNo
	}
	if strings.Contains(template, "%s") {
		return fmt.Sprintf(template, orderNo)
	}
	if strings.Contains(template, "?") {
		return template + "&order_no=" + orderNo
	}
	return template + "?order_no=" + orderNo
}

// mergePurchaseItems 合并重复商品并校验数量
func mergePurchaseItems(items []PurchaseItem) ([]PurchaseItem, error) {
	if len(items) == 0 {
		return nil, ErrPurchaseItemInvalid
	}
	merged := make([]PurchaseItem, 0, len(items))
	indexMap := make(map[uint]int)
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, ErrPurchaseItemInvalid
		}
		if idx, ok := indexMap[item.ProductID]; ok {
			merged[idx].Quantity += item.Quantity
			continue
		}
		indexMap[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

func isValidPaymentMethod(method string) bool {
	switch method {
	case constants.PaymentMethodPoints,
		constants.PaymentMethodStripe,
		constants.PaymentMethodPaypal,
		constants.PaymentMethodBankTransfer:
		return true
	default:
		return false
	}
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := randNumeric(6)
	return fmt.Sprintf("BS%s%s", now, randPart)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
