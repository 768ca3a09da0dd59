// Package gradebook pushes completed quiz results to the external gradebook
// service. Sync is best-effort: the caller's grading transaction is already
// committed, so a failed sync is recorded and logged, never propagated as a
// grading failure.
package gradebook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

type Clock func() time.Time

// Syncer notifies the gradebook that a quiz has new graded results.
type Syncer interface {
	Sync(ctx context.Context, quizID string) error
}

// LogStore records the outcome of each sync so operators can find and replay
// failures.
type LogStore interface {
	MarkPending(ctx context.Context, quizID string) error
	MarkOK(ctx context.Context, quizID string) error
	MarkFailed(ctx context.Context, quizID, lastErr string) error
}

// HTTPSyncer posts sync notifications to the gradebook endpoint.
type HTTPSyncer struct {
	Endpoint string
	Client   *http.Client
	Logs     LogStore
	Now      Clock
}

func NewHTTPSyncer(endpoint string, client *http.Client, logs LogStore) *HTTPSyncer {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSyncer{Endpoint: endpoint, Client: client, Logs: logs, Now: time.Now}
}

func (s *HTTPSyncer) Sync(ctx context.Context, quizID string) error {
	_ = s.Logs.MarkPending(ctx, quizID)

	body, _ := json.Marshal(map[string]interface{}{
		"quiz_id":   quizID,
		"synced_at": s.Now().UTC().Format(time.RFC3339),
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		_ = s.Logs.MarkFailed(ctx, quizID, err.Error())
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		_ = s.Logs.MarkFailed(ctx, quizID, err.Error())
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("gradebook sync: unexpected status %d", resp.StatusCode)
		_ = s.Logs.MarkFailed(ctx, quizID, err.Error())
		return err
	}
	return s.Logs.MarkOK(ctx, quizID)
}

// NopSyncer is used in offline mode; it only logs.
type NopSyncer struct{}

func (NopSyncer) Sync(_ context.Context, quizID string) error {
	log.Printf("gradebook sync skipped (offline): quiz=%s", quizID)
	return nil
}
