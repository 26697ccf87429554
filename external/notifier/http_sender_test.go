package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tuancreations/livesession/internal/notifier"
)

func TestSendSubscription_EmptyEndpointURL(t *testing.T) {
	sender := NewHTTPSender("", time.Second)
	if err := sender.SendSubscription(context.Background(), notifier.Payload{SessionID: "s-1"}); err == nil {
		t.Fatal("expected error when endpoint url is missing")
	}
}

func TestSendSubscription_Success(t *testing.T) {
	var got notifier.Payload
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL, time.Second)
	payload := notifier.Payload{SessionID: "s-1", Email: "amina@example.com", Phone: "+256772123456"}
	if err := sender.SendSubscription(context.Background(), payload); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if requests != 1 {
		t.Fatalf("expected exactly one request, got %d", requests)
	}
	if got != payload {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestSendSubscription_WireFieldNames(t *testing.T) {
	var raw map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL, time.Second)
	_ = sender.SendSubscription(context.Background(), notifier.Payload{SessionID: "s-1", Email: "a@b.co", Phone: "+1555123"})
	for _, key := range []string{"sessionId", "email", "phone"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("expected %q in request body, got %v", key, raw)
		}
	}
}

func TestSendSubscription_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL, time.Second)
	err := sender.SendSubscription(context.Background(), notifier.Payload{SessionID: "s-1"})
	if !errors.Is(err, notifier.ErrEndpointStatus) {
		t.Fatalf("expected ErrEndpointStatus, got %v", err)
	}
}
