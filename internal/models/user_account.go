package models

import (
	"time"

	"gorm.io/gorm"
)

// UserAccount 用户账户表（以 Discord 身份为主键维度，首次交互时懒创建）
type UserAccount struct {
	ID        uint           `gorm:"primarykey" json:"id"`                          // 主键
	DiscordID string         `gorm:"uniqueIndex;not null" json:"discord_id"`        // Discord 用户ID
	Username  string         `gorm:"default:''" json:"username"`                    // Discord 用户名快照
	Email     string         `gorm:"index;default:''" json:"email"`                 // 邮箱（可选）
	Points    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"points"` // 积分余额
	Locale    string         `gorm:"default:'zh-CN'" json:"locale"`                 // 语言偏好
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                       // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (UserAccount) TableName() string {
	return "user_accounts"
}

// PointsTransaction 积分流水表（信用/扣减/管理员调整的审计记录）
type PointsTransaction struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                // 主键
	UserID    uint      `gorm:"index;not null" json:"user_id"`                       // 用户ID
	OrderID   *uint     `gorm:"index" json:"order_id,omitempty"`                     // 关联订单ID（如适用）
	Type      string    `gorm:"type:varchar(20);not null;index" json:"type"`         // 流水类型（purchase/refund/admin_adjust）
	Amount    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"amount"` // 变动金额（正加负减）
	Balance   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"balance"` // 变动后余额
	Remark    string    `gorm:"type:varchar(200)" json:"remark"`                     // 备注
	CreatedAt time.Time `gorm:"index" json:"created_at"`                             // 创建时间
}

// TableName 指定表名
func (PointsTransaction) TableName() string {
	return "points_transactions"
}
