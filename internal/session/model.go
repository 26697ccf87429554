package session

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusEnded     Status = "ended"
)

type Role string

const (
	RoleInstructor   Role = "instructor"
	RoleCoInstructor Role = "co-instructor"
	RoleStudent      Role = "student"
	RoleAdmin        Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleInstructor, RoleCoInstructor, RoleStudent, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// CanControlSession reports whether the role may start, end, or reschedule
// a session.
func (r Role) CanControlSession() bool {
	return r == RoleInstructor || r == RoleCoInstructor
}

type Session struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Instructor      string     `json:"instructor"`
	Topic           string     `json:"topic,omitempty"`
	ScheduledStart  *time.Time `json:"scheduledStart,omitempty"`
	StartedAt       *time.Time `json:"startedAt,omitempty"`
	EndedAt         *time.Time `json:"endedAt,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          Status     `json:"status"`
	RecordingURL    string     `json:"recordingUrl,omitempty"`
}

type Participant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Online   bool   `json:"online"`
	Speaking bool   `json:"speaking"`
}

type ChatMessage struct {
	ID             int64     `json:"id"`
	SenderID       string    `json:"senderId"`
	SenderName     string    `json:"senderName"`
	Text           string    `json:"text"`
	SentAt         time.Time `json:"sentAt"`
	FromInstructor bool      `json:"fromInstructor"`
}

type Resource struct {
	Name     string    `json:"name"`
	Link     string    `json:"link"`
	SharedBy string    `json:"sharedBy"`
	SharedAt time.Time `json:"sharedAt"`
}

type MediaState struct {
	Muted      bool `json:"muted"`
	VideoOff   bool `json:"videoOff"`
	HandRaised bool `json:"handRaised"`
}

func timePtr(t time.Time) *time.Time {
	return &t
}
