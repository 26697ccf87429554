package discord

import (
	"log/slog"

	"github.com/samber/do/v2"
	"github.com/tuancreations/livesession/internal/announcer"
	"github.com/tuancreations/livesession/internal/config"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (announcer.Announcer, error) {
		c := do.MustInvoke[*config.Config](i)
		if !c.DiscordEnabled() {
			slog.Info("discord announcements disabled")
			return announcer.Noop{}, nil
		}
		return NewChannelAnnouncer(c.DiscordToken, c.DiscordAnnounceChannelID)
	})
}
