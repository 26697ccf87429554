package subscription

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tuancreations/livesession/internal/clock"
	"github.com/tuancreations/livesession/internal/notifier"
)

const defaultBannerTTL = 4 * time.Second

const (
	messageBannerSubscribed = "You're subscribed! We'll let you know when this session goes live."
	messageBannerFailed     = "We couldn't save your subscription. Please try again."
)

type Status string

const (
	StatusSubscribed        Status = "subscribed"
	StatusAlreadySubscribed Status = "already_subscribed"
	StatusInvalid           Status = "invalid"
	StatusInProgress        Status = "in_progress"
	StatusFailed            Status = "failed"
	StatusClosed            Status = "closed"
)

type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerFailure BannerKind = "failure"
)

// Banner is a transient notice that dismisses itself at ExpiresAt.
type Banner struct {
	Kind      BannerKind `json:"kind"`
	Message   string     `json:"message"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

type Outcome struct {
	Status Status
	Errors FieldErrors
	Banner *Banner
	Err    error
}

type State struct {
	Subscribed bool    `json:"subscribed"`
	Banner     *Banner `json:"banner,omitempty"`
}

type Options struct {
	Sender    notifier.Sender
	Validator *Validator
	Clock     clock.Clock
	BannerTTL time.Duration
	// SessionID reads the identity of the session the view is showing.
	SessionID func() string
}

// Flow is the subscribe form of one view. It sends at most one successful
// request per view and never retries on its own.
type Flow struct {
	sender    notifier.Sender
	validator *Validator
	clock     clock.Clock
	bannerTTL time.Duration
	sessionID func() string

	mu         sync.Mutex
	subscribed bool
	inFlight   bool
	closed     bool
	banner     *Banner
}

func NewFlow(opts Options) *Flow {
	if opts.Validator == nil {
		opts.Validator = NewValidator()
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.BannerTTL <= 0 {
		opts.BannerTTL = defaultBannerTTL
	}
	return &Flow{
		sender:    opts.Sender,
		validator: opts.Validator,
		clock:     opts.Clock,
		bannerTTL: opts.BannerTTL,
		sessionID: opts.SessionID,
	}
}

func (f *Flow) Submit(ctx context.Context, in Input) Outcome {
	if out, ok := f.precheck(); !ok {
		return out
	}
	if errs := f.validator.Validate(in); errs != nil {
		return Outcome{Status: StatusInvalid, Errors: errs}
	}
	in = in.normalized()

	f.mu.Lock()
	if out, ok := f.precheckLocked(); !ok {
		f.mu.Unlock()
		return out
	}
	f.inFlight = true
	f.mu.Unlock()

	payload := notifier.Payload{
		SessionID: f.sessionID(),
		Email:     in.Email,
		Phone:     in.FullPhone(),
	}
	err := f.sender.SendSubscription(ctx, payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if f.closed {
		slog.Info("discarding subscription result for closed view", "session_id", payload.SessionID, "error", err)
		return Outcome{Status: StatusClosed, Err: err}
	}
	now := f.clock.Now()
	if err != nil {
		slog.Warn("subscription request failed", "session_id", payload.SessionID, "error", err)
		f.banner = &Banner{Kind: BannerFailure, Message: messageBannerFailed, ExpiresAt: now.Add(f.bannerTTL)}
		return Outcome{Status: StatusFailed, Banner: f.banner, Err: err}
	}
	slog.Info("subscription recorded", "session_id", payload.SessionID)
	f.subscribed = true
	f.banner = &Banner{Kind: BannerSuccess, Message: messageBannerSubscribed, ExpiresAt: now.Add(f.bannerTTL)}
	return Outcome{Status: StatusSubscribed, Banner: f.banner}
}

func (f *Flow) precheck() (Outcome, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.precheckLocked()
}

func (f *Flow) precheckLocked() (Outcome, bool) {
	switch {
	case f.closed:
		return Outcome{Status: StatusClosed}, false
	case f.subscribed:
		return Outcome{Status: StatusAlreadySubscribed}, false
	case f.inFlight:
		return Outcome{Status: StatusInProgress}, false
	}
	return Outcome{}, true
}

func (f *Flow) Subscribed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subscribed
}

// State returns the subscribed flag and the banner, if it has not yet
// dismissed itself at now.
func (f *Flow) State(now time.Time) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := State{Subscribed: f.subscribed}
	if f.banner != nil && now.Before(f.banner.ExpiresAt) {
		b := *f.banner
		st.Banner = &b
	}
	return st
}

// Close tears the flow down. A request still in flight completes, but its
// result is dropped.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.banner = nil
}
