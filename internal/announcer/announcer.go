package announcer

import "context"

type Kind string

const (
	KindLive  Kind = "live"
	KindEnded Kind = "ended"
)

type Announcement struct {
	Kind       Kind
	SessionID  string
	Title      string
	Instructor string
	Content    string

	// Set only for KindEnded.
	SummaryFilename string
	Summary         []byte
}

type Announcer interface {
	Announce(ctx context.Context, a Announcement) error
}

// Noop drops every announcement. Used when no channel is configured.
type Noop struct{}

func (Noop) Announce(context.Context, Announcement) error { return nil }
