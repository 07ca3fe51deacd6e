package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo       string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	UserID        uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	DiscordID     string         `gorm:"index" json:"discord_id"`                                   // 下单时的 Discord 用户ID快照
	Status        string         `gorm:"index;not null" json:"status"`                              // 订单状态
	PaymentMethod string         `gorm:"type:varchar(20);not null" json:"payment_method"`           // 支付方式（points/stripe/paypal/bank_transfer）
	PaymentStatus string         `gorm:"type:varchar(20);not null;index" json:"payment_status"`     // 支付状态（pending/paid/failed/refunded）
	Currency      string         `gorm:"not null" json:"currency"`                                  // 币种
	TotalAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 实付金额
	Source        string         `gorm:"type:varchar(20);not null;default:'api'" json:"source"`     // 下单入口（api/command/button/cart）
	Notes         string         `gorm:"type:text" json:"notes"`                                    // 员工备注
	PaidAt        *time.Time     `gorm:"index" json:"paid_at"`                                      // 支付时间
	CompletedAt   *time.Time     `gorm:"index" json:"completed_at"`                                 // 完成时间（仅首次进入 completed 时写入）
	CanceledAt    *time.Time     `gorm:"index" json:"canceled_at"`                                  // 取消时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
