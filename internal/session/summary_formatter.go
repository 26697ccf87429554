package session

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// kept explicit rather than time.DateTime so the layout can change independently
const summaryTimeLayout = "2006-01-02 15:04:05"

func buildSessionSummary(sess Session, participants []Participant, messageCount int, timezone string, loc *time.Location) []byte {
	names := make([]string, 0, len(participants))
	for _, p := range canonicalParticipants(participants) {
		names = append(names, p.Name)
	}

	startedAt, endedAt := sessionPeriod(sess)
	lines := []string{
		fmt.Sprintf("Session: %s", sess.Title),
		fmt.Sprintf("Instructor: %s", sess.Instructor),
	}
	if sess.Topic != "" {
		lines = append(lines, fmt.Sprintf("Topic: %s", sess.Topic))
	}
	lines = append(lines,
		fmt.Sprintf("Period: %s ~ %s (%s)",
			startedAt.In(safeLocation(loc)).Format(summaryTimeLayout),
			endedAt.In(safeLocation(loc)).Format(summaryTimeLayout),
			timezone),
		fmt.Sprintf("Duration: %s", formatElapsedHMS(endedAt.Sub(startedAt))),
		fmt.Sprintf("Participants: %s", strings.Join(names, ", ")),
		fmt.Sprintf("Chat messages: %d", messageCount),
	)
	return []byte(strings.Join(lines, "\n"))
}

func summaryFilename(sessionID string) string {
	return fmt.Sprintf("session-summary-%s.txt", sessionID)
}

func sessionPeriod(sess Session) (time.Time, time.Time) {
	var startedAt, endedAt time.Time
	if sess.StartedAt != nil {
		startedAt = *sess.StartedAt
	}
	if sess.EndedAt != nil {
		endedAt = *sess.EndedAt
	}
	if endedAt.Before(startedAt) {
		endedAt = startedAt
	}
	return startedAt, endedAt
}

// canonicalParticipants returns the participants that were online, sorted by
// display name with the id as tie-breaker.
func canonicalParticipants(participants []Participant) []Participant {
	list := make([]Participant, 0, len(participants))
	for _, p := range participants {
		if !p.Online || strings.TrimSpace(p.ID) == "" {
			continue
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		in := strings.ToLower(list[i].Name)
		jn := strings.ToLower(list[j].Name)
		if in != jn {
			return in < jn
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func formatElapsedHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func safeLocation(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
