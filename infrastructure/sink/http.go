package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// submissionEnvelope is the wire form of a submission. Unlike the
// stored record, it carries the submission key in the body so the
// receiving collector can enforce idempotency.
type submissionEnvelope struct {
	Key         string             `json:"key"`
	Username    string             `json:"username"`
	SubmittedAt time.Time          `json:"submittedAt"`
	Ratings     domain.RatingTable `json:"ratings"`
}

// HTTP forwards submissions to a remote collector endpoint.
// Server-side 5xx and transport failures surface as retryable persist
// errors; a 409 means the collector already holds the key and counts
// as success.
type HTTP struct {
	url    string
	token  string
	client *http.Client
}

var _ ports.RatingsSink = (*HTTP)(nil)

// NewHTTP creates an HTTP sink posting to url, authenticating with a
// bearer token when one is supplied. A nil client falls back to a
// default with a sane timeout.
func NewHTTP(url, token string, client *http.Client) (*HTTP, error) {
	if url == "" {
		return nil, fmt.Errorf("collector URL is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTP{url: url, token: token, client: client}, nil
}

// Name identifies this sink in errors, metrics, and traces.
func (h *HTTP) Name() string { return "http" }

// Store posts the submission envelope to the collector.
func (h *HTTP) Store(ctx context.Context, submission *domain.ValidatedSubmission) error {
	envelope := submissionEnvelope{
		Key:         submission.Key,
		Username:    submission.Username,
		SubmittedAt: submission.SubmittedAt,
		Ratings:     submission.Ratings,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return ports.NewPersistError(h.Name(), submission.Key,
			fmt.Errorf("%w: %v", ports.ErrInvalidRecord, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return ports.NewPersistError(h.Name(), submission.Key,
			fmt.Errorf("%w: %v", ports.ErrInvalidRecord, err))
	}
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	res, err := h.client.Do(req)
	if err != nil {
		return ports.NewPersistError(h.Name(), submission.Key,
			fmt.Errorf("%w: %v", ports.ErrSinkUnavailable, err))
	}
	defer res.Body.Close()

	if err := classifyStatus(res); err != nil {
		return ports.NewPersistError(h.Name(), submission.Key, err)
	}
	return nil
}

// classifyStatus maps collector responses onto the sink error
// taxonomy. 409 reports a replayed key, which is success here.
func classifyStatus(res *http.Response) error {
	switch {
	case res.StatusCode/100 == 2, res.StatusCode == http.StatusConflict:
		return nil
	case res.StatusCode == http.StatusUnauthorized, res.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ports.ErrUnauthorized, res.StatusCode)
	case res.StatusCode == http.StatusRequestTimeout, res.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ports.ErrSinkUnavailable, res.StatusCode)
	case res.StatusCode/100 == 5:
		return fmt.Errorf("%w: status %d", ports.ErrSinkUnavailable, res.StatusCode)
	default:
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ports.ErrInvalidRecord, res.StatusCode, detail)
	}
}
