package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 分类表
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`              // 主键
	Name      string         `gorm:"not null" json:"name"`              // 分类名称
	Emoji     string         `gorm:"type:varchar(32)" json:"emoji"`     // 分类表情（Discord 菜单展示用）
	ChannelID string         `gorm:"type:varchar(32)" json:"-"`         // 绑定的 Discord 频道
	IsVisible bool           `gorm:"default:true;index" json:"is_visible"` // 是否展示
	SortOrder int            `gorm:"default:0;index" json:"sort_order"` // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
