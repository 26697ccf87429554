package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tuancreations/livesession/internal/announcer"
	"github.com/tuancreations/livesession/internal/clock"
)

const (
	defaultTickInterval = 500 * time.Millisecond
	announceTimeout     = 10 * time.Second
)

type Options struct {
	ActorID      string
	Clock        clock.Clock
	Announcer    announcer.Announcer
	TickInterval time.Duration
	AutoGoLive   bool
	Timezone     string
	Location     *time.Location
}

// Controller owns the state of one mounted live-session view: the session
// lifecycle, the roster, the chat log, and the local actor's media toggles.
// It is constructed on mount and released with Close on unmount.
type Controller struct {
	actorID      string
	clock        clock.Clock
	announcer    announcer.Announcer
	tickInterval time.Duration
	autoGoLive   bool
	timezone     string
	loc          *time.Location

	mu         sync.Mutex
	sess       Session
	roster     *Roster
	chat       *ChatLog
	media      MediaState
	recording  bool
	resources  []Resource
	closed     bool
	tickCancel context.CancelFunc

	wg sync.WaitGroup
}

type Snapshot struct {
	Session      Session       `json:"session"`
	Countdown    int64         `json:"countdownSeconds"`
	Actor        Participant   `json:"actor"`
	CanControl   bool          `json:"canControl"`
	OnlineCount  int           `json:"onlineCount"`
	Participants []Participant `json:"participants"`
	Messages     []ChatMessage `json:"messages"`
	ScrollAnchor int64         `json:"scrollAnchor"`
	Media        MediaState    `json:"media"`
	Recording    bool          `json:"recording"`
	Resources    []Resource    `json:"resources"`
}

func NewController(seed Seed, opts Options) (*Controller, error) {
	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	if !seed.HasParticipant(opts.ActorID) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, opts.ActorID)
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.Timezone == "" {
		opts.Timezone = "UTC"
	}

	c := &Controller{
		actorID:      opts.ActorID,
		clock:        opts.Clock,
		announcer:    opts.Announcer,
		tickInterval: opts.TickInterval,
		autoGoLive:   opts.AutoGoLive,
		timezone:     opts.Timezone,
		loc:          safeLocation(opts.Location),
		sess:         seed.Session,
		roster:       NewRoster(),
		chat:         NewChatLog(),
		recording:    seed.Session.Status == StatusLive,
	}
	for _, p := range seed.Participants {
		if err := c.roster.Add(p); err != nil {
			return nil, err
		}
	}
	now := c.clock.Now()
	for _, m := range seed.Messages {
		sender, _ := c.roster.Get(m.SenderID)
		c.chat.Append(sender, m.Text, now)
	}

	c.mu.Lock()
	c.armTimerLocked()
	c.mu.Unlock()
	return c, nil
}

func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.ID
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.Status
}

func (c *Controller) ActorID() string {
	return c.actorID
}

// Start puts the session live. Only instructors and co-instructors may call
// it, and not once the session has ended.
func (c *Controller) Start() Result {
	c.mu.Lock()
	res, ann := c.startLocked(c.clock.Now())
	c.mu.Unlock()
	c.dispatch(ann)
	c.logResult("start", res)
	return res
}

func (c *Controller) startLocked(now time.Time) (Result, *announcer.Announcement) {
	if res, ok := c.guardControlLocked(); !ok {
		return res, nil
	}
	switch c.sess.Status {
	case StatusEnded:
		return rejected(ErrSessionEnded), nil
	case StatusLive:
		return unchanged(), nil
	}
	return applied(), c.goLiveLocked(now)
}

// End finishes a live session. Ended is terminal.
func (c *Controller) End() Result {
	c.mu.Lock()
	res, ann := c.endLocked(c.clock.Now())
	c.mu.Unlock()
	c.dispatch(ann)
	c.logResult("end", res)
	return res
}

func (c *Controller) endLocked(now time.Time) (Result, *announcer.Announcement) {
	if res, ok := c.guardControlLocked(); !ok {
		return res, nil
	}
	switch c.sess.Status {
	case StatusEnded:
		return unchanged(), nil
	case StatusScheduled:
		return rejected(ErrSessionNotLive), nil
	}
	c.sess.Status = StatusEnded
	c.sess.EndedAt = timePtr(now)
	c.recording = false
	c.disarmTimerLocked()

	startedAt, endedAt := sessionPeriod(c.sess)
	return applied(), c.trackLocked(&announcer.Announcement{
		Kind:            announcer.KindEnded,
		SessionID:       c.sess.ID,
		Title:           c.sess.Title,
		Instructor:      c.sess.Instructor,
		Content:         endedAnnouncementText(c.sess, formatElapsedHMS(endedAt.Sub(startedAt))),
		SummaryFilename: summaryFilename(c.sess.ID),
		Summary:         buildSessionSummary(c.sess, c.roster.List(), c.chat.Len(), c.timezone, c.loc),
	})
}

// Reschedule moves the session back to scheduled with a new start time and
// re-arms the countdown.
func (c *Controller) Reschedule(startAt time.Time) Result {
	c.mu.Lock()
	res := c.rescheduleLocked(startAt)
	c.mu.Unlock()
	c.logResult("reschedule", res)
	return res
}

func (c *Controller) rescheduleLocked(startAt time.Time) Result {
	if res, ok := c.guardControlLocked(); !ok {
		return res
	}
	if c.sess.Status == StatusEnded {
		return rejected(ErrSessionEnded)
	}
	if c.sess.Status == StatusLive {
		c.sess.StartedAt = nil
		c.recording = false
	}
	c.sess.ScheduledStart = timePtr(startAt)
	c.sess.Status = StatusScheduled
	c.armTimerLocked()
	return applied()
}

// Join marks the local actor online. Calling it again is a no-op.
func (c *Controller) Join() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return rejected(ErrViewClosed)
	}
	changed, ok := c.roster.UpsertPresence(c.actorID, true)
	if !ok {
		return rejected(ErrUnknownParticipant)
	}
	if !changed {
		return unchanged()
	}
	return applied()
}

// SendChat appends a message from the local actor. Blank text is dropped
// without any error.
func (c *Controller) SendChat(text string) (ChatMessage, Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ChatMessage{}, rejected(ErrViewClosed)
	}
	sender, ok := c.roster.Get(c.actorID)
	if !ok {
		return ChatMessage{}, rejected(ErrUnknownParticipant)
	}
	msg, ok := c.chat.Append(sender, text, c.clock.Now())
	if !ok {
		return ChatMessage{}, rejected(ErrEmptyMessage)
	}
	return msg, applied()
}

// ToggleMute flips the local actor's microphone. Muting also clears the
// actor's speaking flag.
func (c *Controller) ToggleMute() (bool, Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.media.Muted, rejected(ErrViewClosed)
	}
	c.media.Muted = !c.media.Muted
	if c.media.Muted {
		c.roster.SetSpeaking(c.actorID, false)
	}
	return c.media.Muted, applied()
}

func (c *Controller) ToggleVideo() (bool, Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.media.VideoOff, rejected(ErrViewClosed)
	}
	c.media.VideoOff = !c.media.VideoOff
	return c.media.VideoOff, applied()
}

func (c *Controller) ToggleHand() (bool, Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.media.HandRaised, rejected(ErrViewClosed)
	}
	c.media.HandRaised = !c.media.HandRaised
	return c.media.HandRaised, applied()
}

func (c *Controller) ShareResource(name, link string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if res, ok := c.guardControlLocked(); !ok {
		return res
	}
	if c.sess.Status == StatusEnded {
		return rejected(ErrSessionEnded)
	}
	name = strings.TrimSpace(name)
	link = strings.TrimSpace(link)
	if name == "" || link == "" {
		return rejected(ErrInvalidResource)
	}
	c.resources = append(c.resources, Resource{
		Name:     name,
		Link:     link,
		SharedBy: c.actorID,
		SharedAt: c.clock.Now(),
	})
	return applied()
}

// AttachRecording sets the recording locator of an ended session.
func (c *Controller) AttachRecording(url string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if res, ok := c.guardControlLocked(); !ok {
		return res
	}
	if c.sess.Status != StatusEnded {
		return rejected(ErrSessionNotEnded)
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return rejected(ErrInvalidResource)
	}
	if c.sess.RecordingURL == url {
		return unchanged()
	}
	c.sess.RecordingURL = url
	return applied()
}

// Countdown returns the whole seconds left until the scheduled start, or
// zero when the session is not waiting on one. When the countdown reaches
// zero the session goes live on its own if auto go-live is enabled.
func (c *Controller) Countdown(now time.Time) int64 {
	c.mu.Lock()
	remaining, ann := c.countdownLocked(now)
	c.mu.Unlock()
	c.dispatch(ann)
	return remaining
}

func (c *Controller) countdownLocked(now time.Time) (int64, *announcer.Announcement) {
	if c.sess.Status != StatusScheduled || c.sess.ScheduledStart == nil {
		return 0, nil
	}
	remaining := clock.RemainingSeconds(*c.sess.ScheduledStart, now)
	if remaining > 0 || !c.autoGoLive || c.closed {
		return remaining, nil
	}
	slog.Info("countdown elapsed; session going live", "session_id", c.sess.ID)
	return 0, c.goLiveLocked(now)
}

func (c *Controller) Snapshot(now time.Time) Snapshot {
	c.mu.Lock()
	remaining, ann := c.countdownLocked(now)
	actor, _ := c.roster.Get(c.actorID)
	snap := Snapshot{
		Session:      c.sess,
		Countdown:    remaining,
		Actor:        actor,
		CanControl:   actor.Role.CanControlSession(),
		OnlineCount:  c.roster.OnlineCount(),
		Participants: c.roster.List(),
		Messages:     c.chat.Messages(),
		ScrollAnchor: c.chat.ScrollAnchor(),
		Media:        c.media,
		Recording:    c.recording,
		Resources:    append([]Resource(nil), c.resources...),
	}
	c.mu.Unlock()
	c.dispatch(ann)
	return snap
}

// Close stops the countdown timer and waits for pending announcements. The
// controller rejects every mutation afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.disarmTimerLocked()
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Controller) guardControlLocked() (Result, bool) {
	if c.closed {
		return rejected(ErrViewClosed), false
	}
	actor, ok := c.roster.Get(c.actorID)
	if !ok {
		return rejected(ErrUnknownParticipant), false
	}
	if !actor.Role.CanControlSession() {
		return rejected(ErrNotPermitted), false
	}
	return Result{}, true
}

func (c *Controller) goLiveLocked(now time.Time) *announcer.Announcement {
	c.sess.Status = StatusLive
	c.sess.StartedAt = timePtr(now)
	c.sess.EndedAt = nil
	c.recording = true
	c.disarmTimerLocked()
	return c.trackLocked(&announcer.Announcement{
		Kind:       announcer.KindLive,
		SessionID:  c.sess.ID,
		Title:      c.sess.Title,
		Instructor: c.sess.Instructor,
		Content:    liveAnnouncementText(c.sess),
	})
}

// trackLocked registers ann with the wait group while c.mu is held, so Close
// cannot start waiting before the announcement is counted.
func (c *Controller) trackLocked(ann *announcer.Announcement) *announcer.Announcement {
	if c.announcer == nil {
		return nil
	}
	c.wg.Add(1)
	return ann
}

func (c *Controller) armTimerLocked() {
	c.disarmTimerLocked()
	if c.closed || c.sess.Status != StatusScheduled || c.sess.ScheduledStart == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.tickCancel = cancel
	c.wg.Add(1)
	go c.runCountdown(ctx)
}

func (c *Controller) disarmTimerLocked() {
	if c.tickCancel != nil {
		c.tickCancel()
		c.tickCancel = nil
	}
}

func (c *Controller) timerArmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickCancel != nil
}

func (c *Controller) runCountdown(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Countdown(c.clock.Now())
		}
	}
}

// dispatch posts an announcement already counted by trackLocked.
func (c *Controller) dispatch(ann *announcer.Announcement) {
	if ann == nil {
		return
	}
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), announceTimeout)
		defer cancel()
		if err := c.announcer.Announce(ctx, *ann); err != nil {
			slog.Error("failed to announce session transition", "error", err, "session_id", ann.SessionID, "kind", ann.Kind)
			return
		}
		slog.Info("session transition announced", "session_id", ann.SessionID, "kind", ann.Kind)
	}()
}

func (c *Controller) logResult(op string, res Result) {
	slog.Debug("lifecycle operation", "op", op, "actor_id", c.actorID, "outcome", res.Outcome, "reason", res.ReasonText())
}
