package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page           int
	PageSize       int
	CategoryID     uint
	Search         string
	Status          string
	ExcludeHidden   bool
	OnlyPurchasable bool
	WithCategory    bool
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	OnlyVisible bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	UserID        uint
	DiscordID     string
	Status        string
	PaymentMethod string
	OrderNo       string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// UserAccountListFilter 查询用户账户列表的过滤条件
type UserAccountListFilter struct {
	Page     int
	PageSize int
	Keyword  string
}
