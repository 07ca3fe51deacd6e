package bot

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// Notifier 基于机器人会话的通知发送端
type Notifier struct {
	session *discordgo.Session
}

// NewNotifier 创建通知发送端
func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{session: session}
}

// SendDirectMessage 给用户发送私信通知
func (n *Notifier) SendDirectMessage(discordID, title, content string) error {
	if n == nil || n.session == nil {
		return errors.New("discord session unavailable")
	}
	channel, err := n.session.UserChannelCreate(discordID)
	if err != nil {
		return err
	}
	_, err = n.session.ChannelMessageSendEmbed(channel.ID, &discordgo.MessageEmbed{
		Title:       title,
		Description: content,
		Color:       embedColorInfo,
	})
	return err
}

// PostToChannel 向频道发送通知
func (n *Notifier) PostToChannel(channelID, title, content string) error {
	if n == nil || n.session == nil {
		return errors.New("discord session unavailable")
	}
	_, err := n.session.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       title,
		Description: content,
		Color:       embedColorInfo,
	})
	return err
}
