package liveview

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tuancreations/livesession/internal/announcer"
	"github.com/tuancreations/livesession/internal/clock"
	"github.com/tuancreations/livesession/internal/notifier"
	"github.com/tuancreations/livesession/internal/session"
	"github.com/tuancreations/livesession/internal/subscription"
)

var (
	ErrViewNotFound  = errors.New("view not found")
	ErrManagerClosed = errors.New("view manager is closed")
)

type Options struct {
	Seed         session.Seed
	Clock        clock.Clock
	Announcer    announcer.Announcer
	Sender       notifier.Sender
	TickInterval time.Duration
	AutoGoLive   bool
	BannerTTL    time.Duration
	Timezone     string
	Location     *time.Location
}

// View is one mounted live-session page. The controller and the subscribe
// flow share its lifetime.
type View struct {
	ID           string
	MountedAt    time.Time
	Controller   *session.Controller
	Subscription *subscription.Flow
}

type State struct {
	ViewID       string             `json:"viewId"`
	Subscription subscription.State `json:"subscription"`
	session.Snapshot
}

func (v *View) State(now time.Time) State {
	return State{
		ViewID:       v.ID,
		Subscription: v.Subscription.State(now),
		Snapshot:     v.Controller.Snapshot(now),
	}
}

func (v *View) close() {
	v.Subscription.Close()
	v.Controller.Close()
}

type Manager struct {
	opts      Options
	validator *subscription.Validator

	mu     sync.Mutex
	views  map[string]*View
	closed bool
}

func NewManager(opts Options) *Manager {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	return &Manager{
		opts:      opts,
		validator: subscription.NewValidator(),
		views:     make(map[string]*View),
	}
}

func (m *Manager) Clock() clock.Clock {
	return m.opts.Clock
}

// Mount creates a fresh view of the seeded session for actorID.
func (m *Manager) Mount(actorID string) (*View, error) {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return nil, ErrManagerClosed
	}

	ctrl, err := session.NewController(m.opts.Seed, session.Options{
		ActorID:      actorID,
		Clock:        m.opts.Clock,
		Announcer:    m.opts.Announcer,
		TickInterval: m.opts.TickInterval,
		AutoGoLive:   m.opts.AutoGoLive,
		Timezone:     m.opts.Timezone,
		Location:     m.opts.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mount view: %w", err)
	}
	v := &View{
		ID:         uuid.NewString(),
		MountedAt:  m.opts.Clock.Now(),
		Controller: ctrl,
		Subscription: subscription.NewFlow(subscription.Options{
			Sender:    m.opts.Sender,
			Validator: m.validator,
			Clock:     m.opts.Clock,
			BannerTTL: m.opts.BannerTTL,
			SessionID: ctrl.SessionID,
		}),
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		v.close()
		return nil, ErrManagerClosed
	}
	m.views[v.ID] = v
	count := len(m.views)
	m.mu.Unlock()

	slog.Info("view mounted", "view_id", v.ID, "actor_id", actorID, "session_id", ctrl.SessionID(), "views", count)
	return v, nil
}

func (m *Manager) Get(id string) (*View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.views[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	return v, nil
}

// Unmount stops the view's timer, discards any subscription still in flight,
// and waits for pending announcements.
func (m *Manager) Unmount(id string) error {
	m.mu.Lock()
	v, ok := m.views[id]
	delete(m.views, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	v.close()
	slog.Info("view unmounted", "view_id", id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.views)
}

// Close unmounts every view. Mount fails afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	views := m.views
	m.views = make(map[string]*View)
	m.mu.Unlock()

	for _, v := range views {
		v.close()
	}
	slog.Info("view manager closed", "views", len(views))
}
