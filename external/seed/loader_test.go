package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tuancreations/livesession/internal/session"
)

const fixture = `
session:
  id: s-42
  title: Data Engineering on a Budget
  instructor: Dr. Achieng
  topic: Batch pipelines
  scheduledStart: 2026-03-02T10:00:00Z
  durationMinutes: 90
participants:
  - id: u-1
    name: Dr. Achieng
    role: instructor
    online: true
  - id: u-2
    name: Brian
    role: student
messages:
  - sender: u-1
    text: Slides are in the resources tab.
`

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Session.ID != session.DefaultSeed().Session.ID {
		t.Fatalf("expected default seed, got %s", s.Session.ID)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(fixture), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Session.ID != "s-42" || s.Session.Status != session.StatusScheduled {
		t.Fatalf("unexpected session: %+v", s.Session)
	}
	want := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	if s.Session.ScheduledStart == nil || !s.Session.ScheduledStart.Equal(want) {
		t.Fatalf("unexpected scheduled start: %v", s.Session.ScheduledStart)
	}
	if len(s.Participants) != 2 || s.Participants[0].Role != session.RoleInstructor {
		t.Fatalf("unexpected participants: %+v", s.Participants)
	}
	if len(s.Messages) != 1 || s.Messages[0].SenderID != "u-1" {
		t.Fatalf("unexpected messages: %+v", s.Messages)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParse_RejectsUnknownSender(t *testing.T) {
	data := []byte("session:\n  id: s-1\n  title: T\nparticipants:\n  - id: u-1\n    role: student\nmessages:\n  - sender: u-9\n    text: hi\n")
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for message from non-participant")
	}
}

func TestParse_RejectsInvalidRole(t *testing.T) {
	data := []byte("session:\n  id: s-1\n  title: T\nparticipants:\n  - id: u-1\n    role: janitor\n")
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestParse_TrimsIdentifiers(t *testing.T) {
	data := []byte("session:\n  id: ' s-1 '\n  title: T\nparticipants:\n  - id: ' u-1 '\n    role: instructor\nmessages:\n  - sender: 'u-1 '\n    text: hi\n")
	s, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Session.ID != "s-1" || s.Participants[0].ID != "u-1" || s.Messages[0].SenderID != "u-1" {
		t.Fatalf("identifiers were not trimmed: %+v", s)
	}
	if !s.HasParticipant("u-1") {
		t.Fatal("expected trimmed participant to be found")
	}
}

func TestParse_RejectsPaddedDuplicate(t *testing.T) {
	data := []byte("session:\n  id: s-1\n  title: T\nparticipants:\n  - id: u-1\n    role: instructor\n  - id: ' u-1'\n    role: student\n")
	if _, err := Parse(data); err == nil {
		t.Fatal("expected duplicate after trimming to be rejected")
	}
}
