// Package slack adapts the Slack Web API and Socket Mode to the bot's chat contract.
package slack

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/diegoclair/availability-bot/internal/domain"
	"github.com/diegoclair/availability-bot/internal/domain/contract"
	"github.com/diegoclair/availability-bot/internal/domain/entity"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	slackapi "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

var logger = logrus.WithField("component", "slack")

const (
	nameCacheTTL     = 10 * time.Minute
	nameCacheCleanup = 20 * time.Minute

	errMessageNotFound = "message_not_found"
)

// WebAPI is the subset of *slack.Client the adapter calls.
type WebAPI interface {
	AuthTestContext(ctx context.Context) (*slackapi.AuthTestResponse, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
	AddReactionContext(ctx context.Context, name string, item slackapi.ItemRef) error
	GetConversationHistoryContext(ctx context.Context, params *slackapi.GetConversationHistoryParameters) (*slackapi.GetConversationHistoryResponse, error)
	UpdateMessageContext(ctx context.Context, channelID, timestamp string, options ...slackapi.MsgOption) (string, string, string, error)
	DeleteMessageContext(ctx context.Context, channel, messageTimestamp string) (string, string, error)
	GetUserInfoContext(ctx context.Context, user string) (*slackapi.User, error)
}

type Client struct {
	api    WebAPI
	socket *socketmode.Client
	names  *cache.Cache

	ready     chan struct{}
	readyOnce sync.Once

	mu         sync.RWMutex
	botUserID  int64
	botID      string
	onReaction contract.ReactionFunc
	cancel     context.CancelFunc
}

var _ contract.Gateway = (*Client)(nil)

func New(botToken, appToken string) *Client {
	api := slackapi.New(botToken, slackapi.OptionAppLevelToken(appToken))
	return newClient(api, socketmode.New(api))
}

func newClient(api WebAPI, socket *socketmode.Client) *Client {
	return &Client{
		api:    api,
		socket: socket,
		names:  cache.New(nameCacheTTL, nameCacheCleanup),
		ready:  make(chan struct{}),
	}
}

// Open identifies the bot and starts the Socket Mode connection in the background.
func (c *Client) Open(ctx context.Context) error {
	auth, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate with slack: %w", err)
	}

	botUserID, err := parseID(auth.UserID)
	if err != nil {
		return fmt.Errorf("failed to parse bot user id: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	c.botUserID = botUserID
	c.botID = auth.BotID
	c.cancel = cancel
	c.mu.Unlock()

	go c.listen(runCtx)
	go func() {
		if err := c.socket.RunContext(runCtx); err != nil && runCtx.Err() == nil {
			logger.WithError(err).Error("Socket mode connection stopped")
		}
	}()

	logger.WithField("user", auth.User).Info("Slack client authenticated")
	return nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return nil
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
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.botUserID
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
	_, ts, err := c.api.PostMessageContext(ctx, formatID(channelID), slackapi.MsgOptionText(content, false))
	if err != nil {
		return 0, err
	}
	return parseTS(ts)
}

func (c *Client) AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error {
	name, ok := reactionName(emoji)
	if !ok {
		return fmt.Errorf("no slack reaction for emoji %q", emoji)
	}
	return c.api.AddReactionContext(ctx, name, slackapi.NewRefToMessage(formatID(channelID), formatTS(messageID)))
}

func (c *Client) FetchMessage(ctx context.Context, channelID, messageID int64) (*entity.ChatMessage, error) {
	ts := formatTS(messageID)
	history, err := c.api.GetConversationHistoryContext(ctx, &slackapi.GetConversationHistoryParameters{
		ChannelID: formatID(channelID),
		Latest:    ts,
		Oldest:    ts,
		Inclusive: true,
		Limit:     1,
	})
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}

	if len(history.Messages) == 0 || history.Messages[0].Timestamp != ts {
		return nil, domain.ErrMessageNotFound
	}

	msg := history.Messages[0]
	return &entity.ChatMessage{
		ID:        messageID,
		ChannelID: channelID,
		AuthorID:  c.authorID(msg.User, msg.BotID),
		Content:   msg.Text,
	}, nil
}

func (c *Client) EditMessage(ctx context.Context, channelID, messageID int64, content string) error {
	_, _, _, err := c.api.UpdateMessageContext(ctx, formatID(channelID), formatTS(messageID), slackapi.MsgOptionText(content, false))
	return err
}

func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID int64) error {
	_, _, err := c.api.DeleteMessageContext(ctx, formatID(channelID), formatTS(messageID))
	if isNotFound(err) {
		return domain.ErrMessageNotFound
	}
	return err
}

// MemberName resolves a user's display name. Slack has no guilds, so guildID is ignored.
func (c *Client) MemberName(ctx context.Context, guildID, memberID int64) (string, bool) {
	key := formatID(memberID)
	if name, ok := c.names.Get(key); ok {
		return name.(string), true
	}

	user, err := c.api.GetUserInfoContext(ctx, key)
	if err != nil {
		logger.WithError(err).WithField("member_id", key).Debug("Failed to resolve member")
		return "", false
	}
	if user.Deleted {
		return "", false
	}

	name := displayName(user)
	c.names.Set(key, name, cache.DefaultExpiration)
	return name, true
}

func displayName(user *slackapi.User) string {
	switch {
	case user.Profile.DisplayName != "":
		return user.Profile.DisplayName
	case user.RealName != "":
		return user.RealName
	default:
		return user.Name
	}
}

// authorID folds messages posted by the bot integration onto the bot user id.
func (c *Client) authorID(user, botID string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if botID != "" && botID == c.botID {
		return c.botUserID
	}
	id, err := parseID(user)
	if err != nil {
		return 0
	}
	return id
}

func (c *Client) listen(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-c.socket.Events:
			if !ok {
				return
			}
			c.handleEvent(ctx, evt)
		}
	}
}

func (c *Client) handleEvent(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		logger.Debug("Connecting to slack socket mode")
	case socketmode.EventTypeConnected:
		c.readyOnce.Do(func() { close(c.ready) })
		logger.Info("Slack socket mode connected")
	case socketmode.EventTypeConnectionError:
		logger.Warn("Slack socket mode connection failed, retrying")
	case socketmode.EventTypeEventsAPI:
		if evt.Request != nil && c.socket != nil {
			c.socket.Ack(*evt.Request)
		}

		apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			return
		}

		switch ev := apiEvent.InnerEvent.Data.(type) {
		case *slackevents.ReactionAddedEvent:
			c.dispatch(ctx, ev.User, ev.Item.Channel, ev.Item.Timestamp, ev.Reaction, entity.ReactionAdded)
		case *slackevents.ReactionRemovedEvent:
			c.dispatch(ctx, ev.User, ev.Item.Channel, ev.Item.Timestamp, ev.Reaction, entity.ReactionRemoved)
		}
	}
}

func (c *Client) dispatch(ctx context.Context, user, channel, ts, reaction string, action entity.ReactionAction) {
	c.mu.RLock()
	fn := c.onReaction
	c.mu.RUnlock()
	if fn == nil {
		return
	}

	ev, err := toReactionEvent(user, channel, ts, reaction, action)
	if err != nil {
		logger.WithError(err).Debug("Dropping reaction event")
		return
	}

	go fn(ctx, ev)
}

func toReactionEvent(user, channel, ts, reaction string, action entity.ReactionAction) (entity.ReactionEvent, error) {
	ev := entity.ReactionEvent{
		Emoji:  reactionEmoji(reaction),
		Action: action,
	}

	var err error
	if ev.MemberID, err = parseID(user); err != nil {
		return ev, err
	}
	if ev.ChannelID, err = parseID(channel); err != nil {
		return ev, err
	}
	if ev.MessageID, err = parseTS(ts); err != nil {
		return ev, err
	}
	return ev, nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var slackErr slackapi.SlackErrorResponse
	if errors.As(err, &slackErr) {
		return slackErr.Err == errMessageNotFound
	}
	return err.Error() == errMessageNotFound
}
