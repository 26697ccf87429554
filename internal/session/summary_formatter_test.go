package session

import (
	"strings"
	"testing"
	"time"
)

func TestBuildSessionSummary(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Kampala")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	startedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	endedAt := startedAt.Add(75*time.Minute + 5*time.Second)
	sess := DefaultSeed().Session
	sess.StartedAt = &startedAt
	sess.EndedAt = &endedAt

	body := string(buildSessionSummary(sess, []Participant{
		{ID: "u-3", Name: "Sarah Nakato", Online: true},
		{ID: "u-2", Name: "Eng. Cissyln", Online: true},
		{ID: "u-you", Name: "You", Online: false},
	}, 7, "Africa/Kampala", loc))

	if !strings.Contains(body, "Session: Advanced AI & Machine Learning for African Contexts") {
		t.Fatalf("title not found in body: %s", body)
	}
	if !strings.Contains(body, "Period: 2026-03-02 12:00:00 ~ 2026-03-02 13:15:05 (Africa/Kampala)") {
		t.Fatalf("period line not found in body: %s", body)
	}
	if !strings.Contains(body, "Duration: 01:15:05") {
		t.Fatalf("duration line not found in body: %s", body)
	}
	if !strings.Contains(body, "Participants: Eng. Cissyln, Sarah Nakato") {
		t.Fatalf("participants line not found in body: %s", body)
	}
	if !strings.Contains(body, "Chat messages: 7") {
		t.Fatalf("message count not found in body: %s", body)
	}
}

func TestSessionPeriod_ClampsMissingEnd(t *testing.T) {
	startedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	start, end := sessionPeriod(Session{StartedAt: &startedAt})
	if !end.Equal(start) {
		t.Fatalf("expected end clamped to start, got %v ~ %v", start, end)
	}
}

func TestFormatElapsedHMS(t *testing.T) {
	if got := formatElapsedHMS(-time.Second); got != "00:00:00" {
		t.Fatalf("unexpected negative format: %s", got)
	}
	if got := formatElapsedHMS(26*time.Hour + 3*time.Minute + 9*time.Second); got != "26:03:09" {
		t.Fatalf("unexpected format: %s", got)
	}
}
