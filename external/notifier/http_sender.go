package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tuancreations/livesession/internal/notifier"
)

type HTTPSender struct {
	endpointURL string
	client      *http.Client
}

func NewHTTPSender(endpointURL string, timeout time.Duration) notifier.Sender {
	return &HTTPSender{
		endpointURL: endpointURL,
		client:      &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSender) SendSubscription(ctx context.Context, payload notifier.Payload) error {
	if s.endpointURL == "" {
		return fmt.Errorf("notification endpoint url is not configured")
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpointURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if !isHTTPSuccessStatus(resp.StatusCode) {
		return fmt.Errorf("%w: %d", notifier.ErrEndpointStatus, resp.StatusCode)
	}
	return nil
}

func isHTTPSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
