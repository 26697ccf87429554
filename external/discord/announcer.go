package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/tuancreations/livesession/internal/announcer"
)

// Discord rejects message content longer than this.
const maxMessageRunes = 2000

var ErrChannelNotFound = errors.New("discord announce channel not found")

// ChannelAnnouncer posts session transitions to a single text channel over
// the REST API. It never opens a gateway connection.
type ChannelAnnouncer struct {
	session   *discordgo.Session
	channelID string
}

func NewChannelAnnouncer(token, channelID string) (*ChannelAnnouncer, error) {
	if token == "" || channelID == "" {
		return nil, fmt.Errorf("discord token and channel id are required")
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &ChannelAnnouncer{session: s, channelID: channelID}, nil
}

func (a *ChannelAnnouncer) Announce(ctx context.Context, ann announcer.Announcement) error {
	content := truncateRunes(ann.Content, maxMessageRunes)
	opts := []discordgo.RequestOption{discordgo.WithContext(ctx)}

	var err error
	if ann.Kind == announcer.KindEnded && len(ann.Summary) > 0 {
		_, err = a.session.ChannelMessageSendComplex(a.channelID, &discordgo.MessageSend{
			Content: content,
			Files: []*discordgo.File{
				{Name: ann.SummaryFilename, ContentType: "text/plain", Reader: bytes.NewReader(ann.Summary)},
			},
		}, opts...)
	} else {
		_, err = a.session.ChannelMessageSend(a.channelID, content, opts...)
	}
	if err == nil {
		return nil
	}
	if isRESTNotFound(err) {
		return fmt.Errorf("%w: %s", ErrChannelNotFound, a.channelID)
	}
	return fmt.Errorf("failed to post %s announcement: %w", ann.Kind, err)
}

func isRESTNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Response == nil {
		return false
	}
	return restErr.Response.StatusCode == http.StatusNotFound
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
