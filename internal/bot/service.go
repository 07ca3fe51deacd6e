package bot

import (
	"context"
	"errors"

	"github.com/botshop/internal/config"
	"github.com/botshop/internal/i18n"
	"github.com/botshop/internal/logger"
	"github.com/botshop/internal/provider"

	"github.com/bwmarrin/discordgo"
)

const (
	commandBuy   = "buy"
	commandStock = "stock"
)

// Service Discord 机器人服务，承载购买交互与通知发送
type Service struct {
	name      string
	cfg       *config.DiscordConfig
	locale    string
	session   *discordgo.Session
	container *provider.Container
}

// NewService 创建机器人服务
func NewService(cfg *config.DiscordConfig, container *provider.Container) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("discord bot disabled")
	}
	if cfg.BotToken == "" {
		return nil, errors.New("discord bot token missing")
	}
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	svc := &Service{
		name:      "bot",
		cfg:       cfg,
		locale:    i18n.NormalizeLocale(cfg.Locale),
		session:   session,
		container: container,
	}
	session.AddHandler(svc.onReady)
	session.AddHandler(svc.onInteractionCreate)
	return svc, nil
}

// Notifier 返回基于同一会话的通知发送端
func (s *Service) Notifier() *Notifier {
	if s == nil {
		return nil
	}
	return NewNotifier(s.session)
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "bot"
	}
	return s.name
}

// Start 建立网关连接并阻塞到上下文取消
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.session == nil {
		return errors.New("bot not initialized")
	}
	if err := s.session.Open(); err != nil {
		return err
	}
	<-ctx.Done()
	return ctx.Err()
}

// Stop 关闭网关连接
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.session == nil {
		return nil
	}
	_ = ctx
	return s.session.Close()
}

func (s *Service) onReady(sess *discordgo.Session, _ *discordgo.Ready) {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        commandBuy,
			Description: "Browse the shop and purchase a product",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "category",
					Description: "Category ID to browse",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "product_id",
					Description: "Product ID to buy directly",
					Required:    false,
				},
			},
		},
		{
			Name:        commandStock,
			Description: "Adjust product stock (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "product_id",
					Description: "Product ID",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "delta",
					Description: "Stock delta, negative to remove",
					Required:    true,
				},
			},
		},
	}
	for _, command := range commands {
		if _, err := sess.ApplicationCommandCreate(sess.State.User.ID, s.cfg.GuildID, command); err != nil {
			logger.Errorw("bot_command_register_failed", "command", command.Name, "error", err)
			continue
		}
		logger.Infow("bot_command_registered", "command", command.Name, "guild_id", s.cfg.GuildID)
	}
}
