package discord

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/tuancreations/livesession/internal/announcer"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestAnnouncer(t *testing.T, rt roundTripFunc) *ChannelAnnouncer {
	t.Helper()
	a, err := NewChannelAnnouncer("test-token", "chan-1")
	if err != nil {
		t.Fatalf("failed to create announcer: %v", err)
	}
	a.session.Client = &http.Client{Transport: rt}
	return a
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestNewChannelAnnouncer_RequiresCredentials(t *testing.T) {
	if _, err := NewChannelAnnouncer("", "chan-1"); err == nil {
		t.Fatal("expected error for empty token")
	}
	if _, err := NewChannelAnnouncer("token", ""); err == nil {
		t.Fatal("expected error for empty channel")
	}
}

func TestAnnounce_LivePostsPlainMessage(t *testing.T) {
	var gotBody string
	a := newTestAnnouncer(t, func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || !strings.HasSuffix(req.URL.Path, "/channels/chan-1/messages") {
			t.Fatalf("unexpected request: %s %s", req.Method, req.URL.Path)
		}
		if got := req.Header.Get("Authorization"); got != "Bot test-token" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		b, _ := io.ReadAll(req.Body)
		gotBody = string(b)
		return jsonResponse(http.StatusOK, `{"id":"m-1","channel_id":"chan-1"}`), nil
	})

	err := a.Announce(context.Background(), announcer.Announcement{
		Kind:      announcer.KindLive,
		SessionID: "s-1",
		Content:   "Session is live",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotBody, "Session is live") {
		t.Fatalf("expected content in body, got %s", gotBody)
	}
}

func TestAnnounce_EndedAttachesSummary(t *testing.T) {
	var contentType, body string
	a := newTestAnnouncer(t, func(req *http.Request) (*http.Response, error) {
		contentType = req.Header.Get("Content-Type")
		b, _ := io.ReadAll(req.Body)
		body = string(b)
		return jsonResponse(http.StatusOK, `{"id":"m-2","channel_id":"chan-1"}`), nil
	})

	err := a.Announce(context.Background(), announcer.Announcement{
		Kind:            announcer.KindEnded,
		SessionID:       "s-1",
		Content:         "Session ended",
		SummaryFilename: "session-summary-s-1.txt",
		Summary:         []byte("Participants: 3"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		t.Fatalf("expected multipart upload, got %q", contentType)
	}
	if !strings.Contains(body, "session-summary-s-1.txt") || !strings.Contains(body, "Participants: 3") {
		t.Fatalf("expected summary file in body, got %s", body)
	}
}

func TestAnnounce_UnknownChannel(t *testing.T) {
	a := newTestAnnouncer(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"message":"Unknown Channel","code":10003}`), nil
	})

	err := a.Announce(context.Background(), announcer.Announcement{Kind: announcer.KindLive, Content: "x"})
	if !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("abc", 5); got != "abc" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateRunes("abcdef", 4); got != "abc…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
