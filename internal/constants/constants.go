package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

// 支付方式常量
const (
	PaymentMethodPoints       = "points"
	PaymentMethodStripe       = "stripe"
	PaymentMethodPaypal       = "paypal"
	PaymentMethodBankTransfer = "bank_transfer"
)

// 支付状态常量
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// 商品状态常量
const (
	ProductStatusAvailable  = "available"
	ProductStatusHidden     = "hidden"
	ProductStatusOutOfStock = "out_of_stock"
	ProductStatusPreOrder   = "pre_order"
)

// 购买入口来源常量
const (
	PurchaseSourceAPI     = "api"
	PurchaseSourceCommand = "command"
	PurchaseSourceButton  = "button"
	PurchaseSourceCart    = "cart"
)

// 积分流水类型常量
const (
	PointsTxnTypePurchase    = "purchase"
	PointsTxnTypeRefund      = "refund"
	PointsTxnTypeAdminAdjust = "admin_adjust"
)

// 管理端角色常量
const (
	AdminRoleAdmin = "admin"
	AdminRoleStaff = "staff"
)

// 异步任务类型常量
const (
	TaskOrderNotify       = "order:notify"
	TaskOrderStatusNotify = "order:status_notify"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 站点货币默认值
const SiteCurrencyDefault = "JPY"
