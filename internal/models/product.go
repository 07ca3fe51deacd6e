package models

import (
	"time"

	"github.com/botshop/internal/constants"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                        // 主键
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`                           // 分类ID
	Name            string         `gorm:"not null" json:"name"`                                        // 商品名称
	Description     string         `gorm:"type:text" json:"description"`                                // 商品描述
	DeliveryContent string         `gorm:"type:text" json:"-"`                                          // 交付内容（下载链接/兑换说明，仅买家可见）
	PriceAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`   // 价格金额
	Stock           int            `gorm:"not null;default:0" json:"stock"`                             // 库存数量
	Status          string         `gorm:"type:varchar(20);not null;default:'available'" json:"status"` // 商品状态（available/hidden/out_of_stock/pre_order）
	StatusOverride  bool           `gorm:"not null;default:false" json:"status_override"`               // 状态钉住开关（开启后不随库存自动切换）
	Images          StringArray    `gorm:"type:json" json:"images"`                                     // 图片数组
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                           // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// IsPurchasable 判断商品当前是否可下单
func (p *Product) IsPurchasable() bool {
	switch p.Status {
	case constants.ProductStatusAvailable, constants.ProductStatusPreOrder:
		return true
	default:
		return false
	}
}

// DerivedStatus 根据库存推导状态（status_override 开启时保持原状态）
func (p *Product) DerivedStatus() string {
	if p.StatusOverride {
		return p.Status
	}
	if p.Status == constants.ProductStatusHidden || p.Status == constants.ProductStatusPreOrder {
		return p.Status
	}
	if p.Stock <= 0 {
		return constants.ProductStatusOutOfStock
	}
	return constants.ProductStatusAvailable
}
