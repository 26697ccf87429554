package seed

import (
	"log/slog"

	"github.com/samber/do/v2"
	"github.com/tuancreations/livesession/internal/config"
	"github.com/tuancreations/livesession/internal/session"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (session.Seed, error) {
		c := do.MustInvoke[*config.Config](i)
		s, err := Load(c.SessionSeedPath)
		if err != nil {
			return session.Seed{}, err
		}
		slog.Info("session seed loaded", "session_id", s.Session.ID, "participants", len(s.Participants), "path", c.SessionSeedPath)
		return s, nil
	})
}
