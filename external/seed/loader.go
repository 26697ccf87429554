package seed

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tuancreations/livesession/internal/session"
	"gopkg.in/yaml.v3"
)

type fileSeed struct {
	Session      fileSession       `yaml:"session"`
	Participants []fileParticipant `yaml:"participants"`
	Messages     []fileMessage     `yaml:"messages"`
}

type fileSession struct {
	ID              string     `yaml:"id"`
	Title           string     `yaml:"title"`
	Instructor      string     `yaml:"instructor"`
	Topic           string     `yaml:"topic"`
	ScheduledStart  *time.Time `yaml:"scheduledStart"`
	StartedAt       *time.Time `yaml:"startedAt"`
	DurationMinutes int        `yaml:"durationMinutes"`
	Status          string     `yaml:"status"`
	RecordingURL    string     `yaml:"recordingUrl"`
}

type fileParticipant struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Online   bool   `yaml:"online"`
	Speaking bool   `yaml:"speaking"`
}

type fileMessage struct {
	Sender string `yaml:"sender"`
	Text   string `yaml:"text"`
}

// Load reads a session fixture. An empty path yields the built-in demo seed.
func Load(path string) (session.Seed, error) {
	if path == "" {
		return session.DefaultSeed(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return session.Seed{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (session.Seed, error) {
	var raw fileSeed
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return session.Seed{}, fmt.Errorf("failed to parse seed file: %w", err)
	}

	status := session.Status(raw.Session.Status)
	if status == "" {
		status = session.StatusScheduled
	}
	s := session.Seed{
		Session: session.Session{
			ID:              strings.TrimSpace(raw.Session.ID),
			Title:           raw.Session.Title,
			Instructor:      raw.Session.Instructor,
			Topic:           raw.Session.Topic,
			ScheduledStart:  raw.Session.ScheduledStart,
			StartedAt:       raw.Session.StartedAt,
			DurationMinutes: raw.Session.DurationMinutes,
			Status:          status,
			RecordingURL:    raw.Session.RecordingURL,
		},
	}
	for _, p := range raw.Participants {
		s.Participants = append(s.Participants, session.Participant{
			ID:       strings.TrimSpace(p.ID),
			Name:     strings.TrimSpace(p.Name),
			Role:     session.Role(p.Role),
			Online:   p.Online,
			Speaking: p.Speaking,
		})
	}
	for _, m := range raw.Messages {
		s.Messages = append(s.Messages, session.SeedMessage{SenderID: strings.TrimSpace(m.Sender), Text: m.Text})
	}
	if err := s.Validate(); err != nil {
		return session.Seed{}, fmt.Errorf("seed file is invalid: %w", err)
	}
	return s, nil
}
