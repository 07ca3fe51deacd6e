package main

import (
	"github.com/botshop/internal/config"
	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/logger"
	"github.com/botshop/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Name: "游戏点卡", Emoji: "🎮", IsVisible: true, SortOrder: 1},
		{Name: "软件授权", Emoji: "🔑", IsVisible: true, SortOrder: 2},
		{Name: "会员订阅", Emoji: "⭐", IsVisible: true, SortOrder: 3},
	}
	for i := range categories {
		if err := models.DB.FirstOrCreate(&categories[i], models.Category{Name: categories[i].Name}).Error; err != nil {
			stdLog.Fatalf("Failed to seed category %q: %v", categories[i].Name, err)
		}
	}

	products := []models.Product{
		{
			CategoryID:      categories[0].ID,
			Name:            "Steam 充值卡 500",
			Description:     "面值 500 的 Steam 钱包充值码，下单后人工发货",
			DeliveryContent: "购买成功后请等待管理员私信发送卡密",
			PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(480)),
			Stock:           20,
			Status:          constants.ProductStatusAvailable,
			SortOrder:       1,
		},
		{
			CategoryID:      categories[1].ID,
			Name:            "正版系统激活码",
			Description:     "单设备永久授权",
			DeliveryContent: "激活码将在订单完成后通过私信发送",
			PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(128)),
			Stock:           50,
			Status:          constants.ProductStatusAvailable,
			SortOrder:       1,
		},
		{
			CategoryID:  categories[2].ID,
			Name:        "音乐平台月度会员",
			Description: "预售商品，到货后顺序发货",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
			Stock:       0,
			Status:      constants.ProductStatusPreOrder,
			SortOrder:   1,
		},
	}
	for i := range products {
		if err := models.DB.FirstOrCreate(&products[i], models.Product{Name: products[i].Name}).Error; err != nil {
			stdLog.Fatalf("Failed to seed product %q: %v", products[i].Name, err)
		}
	}

	stdLog.Printf("Seed finished: %d categories, %d products", len(categories), len(products))
}
