package transport

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/wagner-austin/signal-bot/internal/logging"
	"github.com/wagner-austin/signal-bot/internal/plugin"
)

// Discord bridges Discord guild and direct messages into the pipeline. It is
// only constructed when the discord extra is enabled.
type Discord struct {
	session *discordgo.Session
	// roleNameMap maps lowercased Discord role names to bot roles.
	roleNameMap map[string]string
}

// NewDiscord opens a Discord session configuration for the given bot token.
// The session is not connected until Run.
func NewDiscord(token string, roleNameMap map[string]string) (*Discord, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
	lowered := make(map[string]string, len(roleNameMap))
	for name, role := range roleNameMap {
		lowered[strings.ToLower(name)] = role
	}
	return &Discord{session: session, roleNameMap: lowered}, nil
}

func (d *Discord) Name() string { return "discord" }

// Run connects the gateway and forwards message events until the context is
// cancelled.
func (d *Discord) Run(ctx context.Context, handler Handler) error {
	remove := d.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}
		groupID := ""
		if m.GuildID != "" {
			groupID = "discord:" + m.ChannelID
		}
		reply := handler(ctx, Inbound{
			Source:     d.Name(),
			Sender:     "discord:" + m.Author.ID,
			Body:       m.Content,
			GroupID:    groupID,
			SenderRole: d.resolveRole(s, m),
			Timestamp:  m.Timestamp.UnixMilli(),
		})
		if reply == "" {
			return
		}
		if _, err := s.ChannelMessageSendReply(m.ChannelID, reply, m.Reference()); err != nil {
			logging.Transport("discord reply in %s failed: %v", m.ChannelID, err)
		}
	})
	defer remove()

	if err := d.session.Open(); err != nil {
		return fmt.Errorf("failed to connect to discord: %w", err)
	}
	logging.Transport("discord gateway connected")
	<-ctx.Done()
	return d.session.Close()
}

// resolveRole maps the author's guild roles through the configured role name
// map, keeping the strongest match. Direct messages carry no member roles.
func (d *Discord) resolveRole(s *discordgo.Session, m *discordgo.MessageCreate) string {
	best := plugin.RoleEveryone
	if m.Member == nil {
		return best
	}
	for _, roleID := range m.Member.Roles {
		guildRole, err := s.State.Role(m.GuildID, roleID)
		if err != nil {
			continue
		}
		mapped, ok := d.roleNameMap[strings.ToLower(guildRole.Name)]
		if ok && plugin.HasPermission(mapped, best) {
			best = mapped
		}
	}
	return best
}
