package config

import (
	"fmt"
	"net/url"
	"time"
)

type Config struct {
	Env                      string
	HTTPAddr                 string
	DatabaseURL              string
	NotificationEndpointURL  string
	NotificationTimeoutSec   int
	CountdownTickMs          int
	BannerTTLSec             int
	AutoGoLive               bool
	SessionSeedPath          string
	SessionTimezone          string
	DiscordToken             string
	DiscordAnnounceChannelID string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	u, err := url.Parse(c.NotificationEndpointURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("NOTIFICATION_ENDPOINT_URL must be an absolute URL, got %q", c.NotificationEndpointURL)
	}
	if c.NotificationTimeoutSec <= 0 {
		return fmt.Errorf("NOTIFICATION_TIMEOUT_SEC must be positive, got %d", c.NotificationTimeoutSec)
	}
	if c.CountdownTickMs <= 0 {
		return fmt.Errorf("COUNTDOWN_TICK_MS must be positive, got %d", c.CountdownTickMs)
	}
	if c.BannerTTLSec <= 0 {
		return fmt.Errorf("BANNER_TTL_SEC must be positive, got %d", c.BannerTTLSec)
	}
	if (c.DiscordToken == "") != (c.DiscordAnnounceChannelID == "") {
		return fmt.Errorf("DISCORD_TOKEN and DISCORD_ANNOUNCE_CHANNEL_ID must be set together")
	}
	if _, err := time.LoadLocation(c.SessionTimezone); err != nil {
		return fmt.Errorf("SESSION_TIMEZONE is invalid: %w", err)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "HTTP_ADDR", value: c.HTTPAddr},
		{name: "DATABASE_URL", value: c.DatabaseURL},
		{name: "NOTIFICATION_ENDPOINT_URL", value: c.NotificationEndpointURL},
		{name: "SESSION_TIMEZONE", value: c.SessionTimezone},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// DiscordEnabled reports whether go-live and ended announcements are posted.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordAnnounceChannelID != ""
}

func (c *Config) CountdownTick() time.Duration {
	return time.Duration(c.CountdownTickMs) * time.Millisecond
}

func (c *Config) BannerTTL() time.Duration {
	return time.Duration(c.BannerTTLSec) * time.Second
}

func (c *Config) NotificationTimeout() time.Duration {
	return time.Duration(c.NotificationTimeoutSec) * time.Second
}

// Location returns the zone summaries are rendered in. Validate has already
// checked the name, so UTC is only a fallback for unvalidated configs.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.SessionTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
