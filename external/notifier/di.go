package notifier

import (
	"time"

	"github.com/samber/do/v2"
	"github.com/tuancreations/livesession/internal/config"
	"github.com/tuancreations/livesession/internal/notifier"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (notifier.Sender, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewHTTPSender(c.NotificationEndpointURL, time.Duration(c.NotificationTimeoutSec)*time.Second), nil
	})
}
