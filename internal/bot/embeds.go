package bot

import (
	"fmt"

	"github.com/botshop/internal/i18n"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/service"

	"github.com/bwmarrin/discordgo"
)

const (
	embedColorInfo    = 0x5865F2
	embedColorSuccess = 0x57F287
	embedColorError   = 0xED4245
)

func (s *Service) t(key string) string {
	return i18n.T(s.locale, key)
}

func (s *Service) productEmbed(product *models.Product) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       product.Name,
		Description: product.Description,
		Color:       embedColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: s.t("bot.price"), Value: product.PriceAmount.String(), Inline: true},
			{Name: s.t("bot.stock"), Value: fmt.Sprintf("%d", product.Stock), Inline: true},
		},
	}
	if len(product.Images) > 0 {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: product.Images[0]}
	}
	return embed
}

func (s *Service) orderSuccessEmbed(result *service.PurchaseResult) *discordgo.MessageEmbed {
	order := result.Order
	embed := &discordgo.MessageEmbed{
		Title: s.t("bot.order_success"),
		Color: embedColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: s.t("bot.order_no"), Value: order.OrderNo, Inline: true},
			{Name: s.t("notify.order_created.total"), Value: order.TotalAmount.String() + " " + order.Currency, Inline: true},
			{Name: s.t("notify.order_created.payment"), Value: s.t("payment.method." + order.PaymentMethod), Inline: true},
		},
	}
	if result.Instructions != "" {
		embed.Description = result.Instructions
	}
	if result.Account != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   s.t("bot.points_balance"),
			Value:  result.Account.Points.String(),
			Inline: true,
		})
	}
	return embed
}

func (s *Service) errorEmbed(message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Description: message,
		Color:       embedColorError,
	}
}

func (s *Service) infoEmbed(message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Description: message,
		Color:       embedColorInfo,
	}
}
