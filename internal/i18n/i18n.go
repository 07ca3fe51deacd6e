package i18n

import (
	"fmt"
	"strings"
)

// DefaultLocale 默认语言
const DefaultLocale = "zh-CN"

var supportedLocales = map[string]bool{
	"zh-CN": true,
	"en-US": true,
}

var messages = map[string]map[string]string{
	"zh-CN": {
		"error.bad_request":              "请求参数错误",
		"error.unauthorized":             "未登录或登录已过期",
		"error.forbidden":                "没有权限执行该操作",
		"error.not_found":                "资源不存在",
		"error.internal":                 "服务器内部错误",
		"error.rate_limited":             "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":   "限流服务不可用",
		"error.login_too_many":           "登录尝试次数过多，请 %d 秒后重试",
		"error.login_failed":             "用户名或密码错误",
		"error.jwt_secret_missing":       "服务端未配置 JWT 密钥",
		"error.auth_header_missing":      "缺少认证信息",
		"error.auth_header_invalid":      "认证信息格式错误",
		"error.token_invalid":            "登录凭证无效",
		"error.captcha_invalid":          "验证码错误",
		"error.product_not_found":        "商品不存在",
		"error.product_not_available":    "商品已下架或暂不可购买",
		"error.stock_insufficient":       "商品库存不足",
		"error.points_insufficient":      "积分余额不足",
		"error.payment_method_invalid":   "不支持的支付方式",
		"error.purchase_item_invalid":    "购买项参数无效",
		"error.order_not_found":          "订单不存在",
		"error.order_status_invalid":     "订单状态不允许该操作",
		"error.order_create_failed":      "订单创建失败",
		"error.cart_item_not_found":      "购物车中不存在该商品",
		"error.cart_empty":               "购物车为空",
		"error.account_not_found":        "用户不存在",
		"error.points_amount_invalid":    "积分数额无效",
		"error.category_not_found":       "分类不存在",
		"error.category_in_use":          "分类下仍有商品，无法删除",
		"error.product_status_conflict":  "缺货状态要求库存为 0",
		"order.status.pending":           "待处理",
		"order.status.processing":        "处理中",
		"order.status.completed":         "已完成",
		"order.status.cancelled":         "已取消",
		"order.status.refunded":          "已退款",
		"payment.method.points":          "积分支付",
		"payment.method.stripe":          "Stripe 支付",
		"payment.method.paypal":          "PayPal 支付",
		"payment.method.bank_transfer":   "银行转账",
		"payment.status.paid":            "已支付",
		"notify.order_created.title":     "下单成功",
		"notify.order_created.total":     "合计",
		"notify.order_created.payment":   "支付方式",
		"notify.order_status.title":      "订单状态更新",
		"notify.order_status.label":      "当前状态",
		"bot.choose_category":            "请选择商品分类",
		"bot.choose_product":             "请选择商品",
		"bot.choose_quantity":            "请选择购买数量",
		"bot.choose_payment":             "请选择支付方式",
		"bot.no_categories":              "暂无可选分类",
		"bot.no_products":                "该分类下暂无在售商品",
		"bot.cancelled":                  "已取消本次购买",
		"bot.order_success":              "下单成功",
		"bot.order_no":                   "订单号",
		"bot.price":                      "单价",
		"bot.stock":                      "库存",
		"bot.quantity":                   "数量",
		"bot.points_balance":             "积分余额",
	},
	"en-US": {
		"error.bad_request":              "invalid request parameters",
		"error.unauthorized":             "authentication required",
		"error.forbidden":                "permission denied",
		"error.not_found":                "resource not found",
		"error.internal":                 "internal server error",
		"error.rate_limited":             "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":   "rate limiter unavailable",
		"error.login_too_many":           "too many login attempts, retry in %d seconds",
		"error.login_failed":             "invalid username or password",
		"error.jwt_secret_missing":       "server JWT secret is not configured",
		"error.auth_header_missing":      "authorization header missing",
		"error.auth_header_invalid":      "authorization header malformed",
		"error.token_invalid":            "invalid or expired token",
		"error.captcha_invalid":          "captcha verification failed",
		"error.product_not_found":        "product not found",
		"error.product_not_available":    "product is not available for purchase",
		"error.stock_insufficient":       "insufficient stock",
		"error.points_insufficient":      "insufficient point balance",
		"error.payment_method_invalid":   "unsupported payment method",
		"error.purchase_item_invalid":    "invalid purchase item",
		"error.order_not_found":          "order not found",
		"error.order_status_invalid":     "order status does not allow this operation",
		"error.order_create_failed":      "failed to create order",
		"error.cart_item_not_found":      "item not found in cart",
		"error.cart_empty":               "cart is empty",
		"error.account_not_found":        "user not found",
		"error.points_amount_invalid":    "invalid point amount",
		"error.category_not_found":       "category not found",
		"error.category_in_use":          "category still has products",
		"error.product_status_conflict":  "out_of_stock status requires zero stock",
		"order.status.pending":           "pending",
		"order.status.processing":        "processing",
		"order.status.completed":         "completed",
		"order.status.cancelled":         "cancelled",
		"order.status.refunded":          "refunded",
		"payment.method.points":          "points",
		"payment.method.stripe":          "Stripe",
		"payment.method.paypal":          "PayPal",
		"payment.method.bank_transfer":   "bank transfer",
		"payment.status.paid":            "paid",
		"notify.order_created.title":     "Order placed",
		"notify.order_created.total":     "Total",
		"notify.order_created.payment":   "Payment",
		"notify.order_status.title":      "Order status updated",
		"notify.order_status.label":      "Status",
		"bot.choose_category":            "Choose a category",
		"bot.choose_product":             "Choose a product",
		"bot.choose_quantity":            "Choose a quantity",
		"bot.choose_payment":             "Choose a payment method",
		"bot.no_categories":              "no categories available",
		"bot.no_products":                "no products on sale in this category",
		"bot.cancelled":                  "purchase cancelled",
		"bot.order_success":              "Order placed",
		"bot.order_no":                   "Order No.",
		"bot.price":                      "Price",
		"bot.stock":                      "Stock",
		"bot.quantity":                   "Quantity",
		"bot.points_balance":             "Point balance",
	},
}

// NormalizeLocale 归一化语言标识，未支持的语言回退默认语言
func NormalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if supportedLocales[locale] {
		return locale
	}
	lower := strings.ToLower(locale)
	for candidate := range supportedLocales {
		if strings.ToLower(candidate) == lower {
			return candidate
		}
	}
	if strings.HasPrefix(lower, "en") {
		return "en-US"
	}
	return DefaultLocale
}

// T 按语言返回 key 对应的文案，缺失时回退默认语言，再缺失时返回 key 本身
func T(locale, key string) string {
	locale = NormalizeLocale(locale)
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 取 key 对应的模板并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
