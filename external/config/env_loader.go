package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/tuancreations/livesession/internal/config"
)

type envConfig struct {
	Env                      string `env:"ENV" envDefault:"production"`
	HTTPAddr                 string `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL              string `env:"DATABASE_URL,required"`
	NotificationEndpointURL  string `env:"NOTIFICATION_ENDPOINT_URL,required"`
	NotificationTimeoutSec   int    `env:"NOTIFICATION_TIMEOUT_SEC" envDefault:"10"`
	CountdownTickMs          int    `env:"COUNTDOWN_TICK_MS" envDefault:"500"`
	BannerTTLSec             int    `env:"BANNER_TTL_SEC" envDefault:"4"`
	AutoGoLive               bool   `env:"AUTO_GO_LIVE" envDefault:"true"`
	SessionSeedPath          string `env:"SESSION_SEED_PATH"`
	SessionTimezone          string `env:"SESSION_TIMEZONE" envDefault:"Africa/Kampala"`
	DiscordToken             string `env:"DISCORD_TOKEN"`
	DiscordAnnounceChannelID string `env:"DISCORD_ANNOUNCE_CHANNEL_ID"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                      raw.Env,
		HTTPAddr:                 raw.HTTPAddr,
		DatabaseURL:              raw.DatabaseURL,
		NotificationEndpointURL:  raw.NotificationEndpointURL,
		NotificationTimeoutSec:   raw.NotificationTimeoutSec,
		CountdownTickMs:          raw.CountdownTickMs,
		BannerTTLSec:             raw.BannerTTLSec,
		AutoGoLive:               raw.AutoGoLive,
		SessionSeedPath:          raw.SessionSeedPath,
		SessionTimezone:          raw.SessionTimezone,
		DiscordToken:             raw.DiscordToken,
		DiscordAnnounceChannelID: raw.DiscordAnnounceChannelID,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
