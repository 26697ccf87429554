package session

import (
	"fmt"
	"strings"
)

type SeedMessage struct {
	SenderID string
	Text     string
}

// Seed is the state a view starts from when it is mounted.
type Seed struct {
	Session      Session
	Participants []Participant
	Messages     []SeedMessage
}

func (s Seed) Validate() error {
	if err := checkID(s.Session.ID); err != nil {
		return fmt.Errorf("seed session: %w", err)
	}
	if s.Session.Title == "" {
		return fmt.Errorf("seed session title is required")
	}
	switch s.Session.Status {
	case StatusScheduled, StatusLive, StatusEnded:
	default:
		return fmt.Errorf("seed session status %q is invalid", s.Session.Status)
	}
	if s.Session.Status == StatusLive && s.Session.StartedAt == nil {
		return fmt.Errorf("seed session is live but has no start time")
	}
	if s.Session.DurationMinutes < 0 {
		return fmt.Errorf("seed session duration must not be negative, got %d", s.Session.DurationMinutes)
	}
	seen := make(map[string]struct{}, len(s.Participants))
	for _, p := range s.Participants {
		if err := checkID(p.ID); err != nil {
			return fmt.Errorf("participant: %w", err)
		}
		if _, ok := ParseRole(string(p.Role)); !ok {
			return fmt.Errorf("participant %s has invalid role %q", p.ID, p.Role)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	for _, m := range s.Messages {
		if _, ok := seen[m.SenderID]; !ok {
			return fmt.Errorf("seed message sender %q is not a participant", m.SenderID)
		}
	}
	return nil
}

// checkID rejects ids that are blank or carry surrounding whitespace, so the
// roster and message senders always compare equal to what was validated.
func checkID(id string) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(id) != id {
		return fmt.Errorf("id %q has surrounding whitespace", id)
	}
	return nil
}

func (s Seed) HasParticipant(id string) bool {
	for _, p := range s.Participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// DefaultSeed is the demo class shown when no fixture is configured.
func DefaultSeed() Seed {
	return Seed{
		Session: Session{
			ID:              "s-1",
			Title:           "Advanced AI & Machine Learning for African Contexts",
			Instructor:      "Eng. Godwin Ofwono",
			Topic:           "Neural Networks and Deep Learning Applications",
			DurationMinutes: 120,
			Status:          StatusScheduled,
		},
		Participants: []Participant{
			{ID: "u-1", Name: "Eng. Godwin", Role: RoleInstructor, Online: true, Speaking: true},
			{ID: "u-2", Name: "Eng. Cissyln", Role: RoleCoInstructor, Online: true},
			{ID: "u-3", Name: "Sarah Nakato", Role: RoleStudent, Online: true},
			{ID: "u-you", Name: "You", Role: RoleStudent},
		},
		Messages: []SeedMessage{
			{SenderID: "u-1", Text: "Welcome everyone!"},
		},
	}
}
