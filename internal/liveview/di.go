package liveview

import (
	"github.com/samber/do/v2"
	"github.com/tuancreations/livesession/internal/announcer"
	"github.com/tuancreations/livesession/internal/config"
	"github.com/tuancreations/livesession/internal/notifier"
	"github.com/tuancreations/livesession/internal/session"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewManager(Options{
			Seed:         do.MustInvoke[session.Seed](i),
			Announcer:    do.MustInvoke[announcer.Announcer](i),
			Sender:       do.MustInvoke[notifier.Sender](i),
			TickInterval: cfg.CountdownTick(),
			AutoGoLive:   cfg.AutoGoLive,
			BannerTTL:    cfg.BannerTTL(),
			Timezone:     cfg.SessionTimezone,
			Location:     cfg.Location(),
		}), nil
	})
}
