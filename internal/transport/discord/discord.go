// Package discord adapts the Discord SDK to the notifier's channel gateway
// contract. All platform specifics (session lifecycle, snowflake ids,
// allowed-mentions wire format, message ordering) stay behind this package.
package discord

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"

	"hhnotifier/internal/logx"
	"hhnotifier/internal/notifier"
)

type Config struct {
	Token        string
	ChannelID    uint64
	RoleID       uint64
	LogChannelID uint64 // 0 disables LogText
}

// Adapter owns the Discord session. It exposes the target channel as a
// notifier.Gateway and doubles as the logx Discord sink when a log channel
// is configured.
type Adapter struct {
	cfg Config
	log logx.Logger

	sess *discordgo.Session

	readyOnce sync.Once
	readyCh   chan string

	runMu   sync.Mutex
	running bool
}

func New(cfg Config, log logx.Logger) (*Adapter, error) {
	if cfg.Token == "" {
		return nil, errors.New("discord token is empty")
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	sess, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	sess.Identify.Intents = discordgo.IntentsGuildMessages

	a := &Adapter{
		cfg:     cfg,
		log:     log,
		sess:    sess,
		readyCh: make(chan string, 1),
	}

	sess.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		a.readyOnce.Do(func() {
			a.log.Info("gateway ready",
				logx.String("user", r.User.Username),
				logx.String("user_id", r.User.ID))
			a.readyCh <- r.User.ID
		})
	})

	return a, nil
}

// Start opens the gateway connection. The SDK reconnects on its own after
// transient drops; Ready fires only for the first session.
func (a *Adapter) Start(ctx context.Context) error {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	if a.running {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.sess.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	a.running = true
	return nil
}

func (a *Adapter) Stop() error {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	if !a.running {
		return nil
	}
	a.running = false
	return a.sess.Close()
}

// Ready yields the bot user id exactly once, after the gateway handshake.
func (a *Adapter) Ready() <-chan string { return a.readyCh }

// Channel returns the gateway bound to the configured target channel.
func (a *Adapter) Channel() notifier.Gateway {
	return &channelGateway{
		sess:      a.sess,
		channelID: strconv.FormatUint(a.cfg.ChannelID, 10),
		roleID:    strconv.FormatUint(a.cfg.RoleID, 10),
	}
}

// LogText implements logx.Sink against the (separate) log channel.
func (a *Adapter) LogText(ctx context.Context, text string) error {
	if a.cfg.LogChannelID == 0 || text == "" {
		return nil
	}
	ch := strconv.FormatUint(a.cfg.LogChannelID, 10)
	_, err := a.sess.ChannelMessageSendComplex(ch, &discordgo.MessageSend{
		Content:         text,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}, discordgo.WithContext(ctx))
	return err
}

// ---- Gateway implementation ----

type channelGateway struct {
	sess      *discordgo.Session
	channelID string
	roleID    string
}

func (g *channelGateway) ListRecent(ctx context.Context, limit int) ([]notifier.Message, error) {
	raw, err := g.sess.ChannelMessages(g.channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]notifier.Message, 0, len(raw))
	for _, m := range raw {
		if m == nil || m.Author == nil {
			continue
		}
		out = append(out, notifier.Message{
			ID:        m.ID,
			AuthorID:  m.Author.ID,
			Content:   m.Content,
			CreatedAt: m.Timestamp,
		})
	}
	// The API returns newest-first already; sort anyway since the classifier
	// depends on it positionally.
	sort.SliceStable(out, func(i, j int) bool {
		return snowflakeLess(out[j].ID, out[i].ID)
	})
	return out, nil
}

func (g *channelGateway) Send(ctx context.Context, body string, policy notifier.MentionPolicy) (notifier.Message, error) {
	m, err := g.sess.ChannelMessageSendComplex(g.channelID, &discordgo.MessageSend{
		Content:         body,
		AllowedMentions: g.allowedMentions(policy),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return notifier.Message{}, err
	}
	msg := notifier.Message{ID: m.ID, Content: m.Content, CreatedAt: m.Timestamp}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
	}
	return msg, nil
}

func (g *channelGateway) Edit(ctx context.Context, messageID, body string) error {
	// Edits keep mentions suppressed; only explicit notify sends ping.
	_, err := g.sess.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:         g.channelID,
		ID:              messageID,
		Content:         &body,
		AllowedMentions: g.allowedMentions(notifier.MentionNone),
	}, discordgo.WithContext(ctx))
	return err
}

func (g *channelGateway) Delete(ctx context.Context, messageID string) error {
	return g.sess.ChannelMessageDelete(g.channelID, messageID, discordgo.WithContext(ctx))
}

// allowedMentions maps the policy to Discord's allowed-mentions control.
// An empty struct (no Parse, no Roles) suppresses every ping regardless of
// tokens in the text.
func (g *channelGateway) allowedMentions(policy notifier.MentionPolicy) *discordgo.MessageAllowedMentions {
	if policy == notifier.MentionRole {
		return &discordgo.MessageAllowedMentions{Roles: []string{g.roleID}}
	}
	return &discordgo.MessageAllowedMentions{}
}

// snowflakeLess orders Discord snowflake ids chronologically. They are
// decimal strings without leading zeros, so length compares before lexicon.
func snowflakeLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
