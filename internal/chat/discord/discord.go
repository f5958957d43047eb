// Package discord adapts a discordgo session to the bot's chat contract.
package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"github.com/bwmarrin/snowflake"
	"github.com/diegoclair/availability-bot/internal/domain"
	"github.com/diegoclair/availability-bot/internal/domain/contract"
	"github.com/diegoclair/availability-bot/internal/domain/entity"
	"github.com/sirupsen/logrus"
)

var logger = logrus.WithField("component", "discord")

type Client struct {
	session *discordgo.Session

	ready     chan struct{}
	readyOnce sync.Once
	botUserID atomic.Int64

	mu         sync.RWMutex
	onReaction contract.ReactionFunc
}

var _ contract.Gateway = (*Client)(nil)

func New(token string) (*Client, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions
	session.State.TrackMembers = true

	c := &Client{
		session: session,
		ready:   make(chan struct{}),
	}

	session.AddHandler(c.onReady)
	session.AddHandler(c.onGuildCreate)
	session.AddHandler(c.onReactionAdd)
	session.AddHandler(c.onReactionRemove)

	return c, nil
}

func (c *Client) Open(ctx context.Context) error {
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.session.Close()
}

func (c *Client) OnReaction(fn contract.ReactionFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReaction = fn
}

func (c *Client) ParseChannelID(channelID string) (int64, error) {
	return parseID(channelID)
}

func (c *Client) BotUserID() int64 {
	return c.botUserID.Load()
}

func (c *Client) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) SendMessage(ctx context.Context, channelID int64, content string) (int64, error) {
	msg, err := c.session.ChannelMessageSend(formatID(channelID), content, discordgo.WithContext(ctx))
	if err != nil {
		return 0, err
	}
	return parseID(msg.ID)
}

func (c *Client) AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error {
	return c.session.MessageReactionAdd(formatID(channelID), formatID(messageID), emoji, discordgo.WithContext(ctx))
}

func (c *Client) FetchMessage(ctx context.Context, channelID, messageID int64) (*entity.ChatMessage, error) {
	msg, err := c.session.ChannelMessage(formatID(channelID), formatID(messageID), discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}

	out := &entity.ChatMessage{
		ID:        messageID,
		ChannelID: channelID,
		Content:   msg.Content,
	}
	if msg.Author != nil {
		out.AuthorID, _ = parseID(msg.Author.ID)
	}
	return out, nil
}

func (c *Client) EditMessage(ctx context.Context, channelID, messageID int64, content string) error {
	_, err := c.session.ChannelMessageEdit(formatID(channelID), formatID(messageID), content, discordgo.WithContext(ctx))
	return err
}

func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID int64) error {
	err := c.session.ChannelMessageDelete(formatID(channelID), formatID(messageID), discordgo.WithContext(ctx))
	if isNotFound(err) {
		return domain.ErrMessageNotFound
	}
	return err
}

// MemberName looks the member up in the state cache only. Members that left
// the guild are gone from the cache and do not resolve.
func (c *Client) MemberName(ctx context.Context, guildID, memberID int64) (string, bool) {
	member, err := c.session.State.Member(formatID(guildID), formatID(memberID))
	if err != nil || member.User == nil {
		return "", false
	}
	return member.User.Username, true
}

func (c *Client) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if r.User == nil {
		return
	}

	id, err := parseID(r.User.ID)
	if err != nil {
		logger.WithError(err).Error("Invalid bot user id in ready event")
		return
	}

	c.botUserID.Store(id)
	c.readyOnce.Do(func() { close(c.ready) })
	logger.WithField("user", r.User.Username).Info("Discord gateway ready")
}

// onGuildCreate asks for the full member list so display names resolve from state
func (c *Client) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Guild == nil || g.Unavailable {
		return
	}
	if err := s.RequestGuildMembers(g.ID, "", 0, "", false); err != nil {
		logger.WithError(err).WithField("guild_id", g.ID).Warn("Failed to request guild members")
	}
}

func (c *Client) onReactionAdd(s *discordgo.Session, e *discordgo.MessageReactionAdd) {
	c.dispatch(e.MessageReaction, entity.ReactionAdded)
}

func (c *Client) onReactionRemove(s *discordgo.Session, e *discordgo.MessageReactionRemove) {
	c.dispatch(e.MessageReaction, entity.ReactionRemoved)
}

func (c *Client) dispatch(r *discordgo.MessageReaction, action entity.ReactionAction) {
	if r == nil {
		return
	}

	c.mu.RLock()
	fn := c.onReaction
	c.mu.RUnlock()
	if fn == nil {
		return
	}

	ev, err := toReactionEvent(r, action)
	if err != nil {
		logger.WithError(err).Debug("Dropping reaction event")
		return
	}

	fn(context.Background(), ev)
}

func toReactionEvent(r *discordgo.MessageReaction, action entity.ReactionAction) (entity.ReactionEvent, error) {
	ev := entity.ReactionEvent{
		Emoji:  r.Emoji.Name,
		Action: action,
	}

	var err error
	if ev.MemberID, err = parseID(r.UserID); err != nil {
		return ev, err
	}
	if ev.MessageID, err = parseID(r.MessageID); err != nil {
		return ev, err
	}
	if ev.ChannelID, err = parseID(r.ChannelID); err != nil {
		return ev, err
	}
	// direct messages carry no guild
	if r.GuildID != "" {
		if ev.GuildID, err = parseID(r.GuildID); err != nil {
			return ev, err
		}
	}
	return ev, nil
}

func parseID(id string) (int64, error) {
	sf, err := snowflake.ParseString(id)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return sf.Int64(), nil
}

func formatID(id int64) string {
	return snowflake.ParseInt64(id).String()
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownMessage {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}
