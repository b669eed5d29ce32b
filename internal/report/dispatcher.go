// Package report delivers final intelligence reports to the external
// reporting endpoint and journals the outcome in the archive. Delivery
// is fire-and-forget from the orchestrator's perspective: failures are
// logged, never propagated back to the conversation.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/honeylab/scambait/internal/domain"
	"github.com/honeylab/scambait/internal/store"
)

// Sink accepts a final report for delivery.
type Sink interface {
	Submit(ctx context.Context, rep *domain.FinalReport) error
}

const (
	maxAttempts    = 3
	attemptTimeout = 15 * time.Second
	baseBackoff    = 2 * time.Second
)

// Dispatcher posts reports to a callback URL with bounded retries and
// archives each attempt's outcome.
type Dispatcher struct {
	url     string
	client  *http.Client
	archive store.Repository // may be nil
}

// NewDispatcher creates a dispatcher for the given callback URL. archive
// may be nil when journaling is disabled.
func NewDispatcher(url string, archive store.Repository) *Dispatcher {
	return &Dispatcher{
		url:     url,
		client:  &http.Client{Timeout: attemptTimeout},
		archive: archive,
	}
}

// Submit delivers the report, retrying transient failures with
// exponential backoff. Client errors (4xx) are not retried. The delivery
// outcome is journaled either way.
func (d *Dispatcher) Submit(ctx context.Context, rep *domain.FinalReport) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report %s: %w", rep.ReportID, err)
	}

	deliverErr := d.deliver(ctx, rep, payload)
	d.journal(ctx, rep, payload, deliverErr == nil)
	return deliverErr
}

func (d *Dispatcher) deliver(ctx context.Context, rep *domain.FinalReport, payload []byte) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		code, err := d.post(ctx, payload)
		switch {
		case err == nil && code == http.StatusOK:
			slog.Info("final report delivered",
				"report_id", rep.ReportID,
				"session_id", rep.SessionID,
				"attempt", attempt)
			return nil
		case err == nil && code >= 400 && code < 500:
			// The endpoint rejected the payload; retrying cannot help.
			return fmt.Errorf("report %s rejected with status %d", rep.ReportID, code)
		case err != nil:
			lastErr = err
		default:
			lastErr = fmt.Errorf("unexpected status %d", code)
		}

		if attempt < maxAttempts {
			delay := baseBackoff << (attempt - 1)
			slog.Warn("report delivery failed, retrying",
				"report_id", rep.ReportID,
				"attempt", attempt,
				"delay", delay,
				"error", lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("report %s delivery cancelled: %w", rep.ReportID, ctx.Err())
			}
		}
	}
	return fmt.Errorf("report %s delivery failed after %d attempts: %w", rep.ReportID, maxAttempts, lastErr)
}

func (d *Dispatcher) post(ctx context.Context, payload []byte) (int, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post report: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}()
	return resp.StatusCode, nil
}

func (d *Dispatcher) journal(ctx context.Context, rep *domain.FinalReport, payload []byte, delivered bool) {
	if d.archive == nil {
		return
	}
	rec := &domain.ReportRecord{
		ReportID:    rep.ReportID,
		SessionID:   rep.SessionID,
		Category:    rep.Category,
		TurnCount:   rep.TotalMessagesExchanged,
		PayloadJSON: string(payload),
		Delivered:   delivered,
		CreatedAt:   rep.CreatedAt,
	}
	if err := d.archive.SaveReport(ctx, rec); err != nil {
		slog.Error("failed to archive report", "report_id", rep.ReportID, "error", err)
	}
}
