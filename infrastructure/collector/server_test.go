package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/testutils"
)

const testToken = "collector-secret"

// fakeStore is an in-memory SubmissionStore with programmable
// failures.
type fakeStore struct {
	mu        sync.Mutex
	records   map[string]*domain.ValidatedSubmission
	insertErr error
	pingErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]*domain.ValidatedSubmission{}}
}

func (f *fakeStore) Insert(ctx context.Context, submission *domain.ValidatedSubmission) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return false, f.insertErr
	}
	if _, exists := f.records[submission.Key]; exists {
		return false, nil
	}
	f.records[submission.Key] = submission
	return true, nil
}

func (f *fakeStore) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeStore) get(key string) (*domain.ValidatedSubmission, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[key]
	return record, ok
}

func newCollector(t *testing.T) (*httptest.Server, *fakeStore, *testutils.MockMetrics) {
	t.Helper()
	store := newFakeStore()
	metrics := testutils.NewMockMetrics()
	handler, err := NewHandler(testToken, store, metrics)
	require.NoError(t, err)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, store, metrics
}

func validEnvelope() submissionEnvelope {
	return submissionEnvelope{
		Key:         "alice_1760000000000000000",
		Username:    "Alice",
		SubmittedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Ratings: domain.RatingTable{
			0: {"Fluency": {Y1: 8, Y2: 3}},
		},
	}
}

func postSubmission(t *testing.T, serverURL, token string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, serverURL+"/api/v1/submissions", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestCollector_AcceptsSubmission(t *testing.T) {
	server, store, metrics := newCollector(t)
	envelope := validEnvelope()

	res := postSubmission(t, server.URL, testToken, envelope)

	require.Equal(t, http.StatusCreated, res.StatusCode)
	var created createdResp
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.Equal(t, envelope.Key, created.Key)

	record, ok := store.get(envelope.Key)
	require.True(t, ok, "the record should be stored under its key")
	assert.Equal(t, "Alice", record.Username)
	assert.Equal(t, 8, record.Ratings[0]["Fluency"].Y1)

	counters := metrics.Counters()
	require.Len(t, counters, 1)
	assert.Equal(t, "submissions_received_total", counters[0].Name)
	assert.Equal(t, "accepted", counters[0].Labels["status"])
}

func TestCollector_ReplayedKeyReturnsConflict(t *testing.T) {
	server, store, _ := newCollector(t)
	envelope := validEnvelope()

	first := postSubmission(t, server.URL, testToken, envelope)
	second := postSubmission(t, server.URL, testToken, envelope)

	assert.Equal(t, http.StatusCreated, first.StatusCode)
	assert.Equal(t, http.StatusConflict, second.StatusCode, "a replayed key must not create a second record")
	_, ok := store.get(envelope.Key)
	assert.True(t, ok)
}

func TestCollector_RejectsBadToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "wrong token", token: "not-the-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, store, _ := newCollector(t)

			res := postSubmission(t, server.URL, tt.token, validEnvelope())

			assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
			_, ok := store.get(validEnvelope().Key)
			assert.False(t, ok, "unauthorized requests must not reach the store")
		})
	}
}

func TestCollector_RejectsMalformedBody(t *testing.T) {
	server, _, _ := newCollector(t)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/v1/submissions",
		bytes.NewReader([]byte("not json")))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCollector_RejectsInvalidEnvelope(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*submissionEnvelope)
	}{
		{
			name:   "blank username",
			mutate: func(e *submissionEnvelope) { e.Username = "   " },
		},
		{
			name:   "missing key",
			mutate: func(e *submissionEnvelope) { e.Key = "" },
		},
		{
			name:   "zero timestamp",
			mutate: func(e *submissionEnvelope) { e.SubmittedAt = time.Time{} },
		},
		{
			name:   "no ratings",
			mutate: func(e *submissionEnvelope) { e.Ratings = domain.RatingTable{} },
		},
		{
			name: "only empty rating sets",
			mutate: func(e *submissionEnvelope) {
				e.Ratings = domain.RatingTable{0: {}, 1: nil}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, store, _ := newCollector(t)
			envelope := validEnvelope()
			tt.mutate(&envelope)

			res := postSubmission(t, server.URL, testToken, envelope)

			assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
			_, ok := store.get(envelope.Key)
			assert.False(t, ok, "invalid envelopes must not reach the store")
		})
	}
}

func TestCollector_StoreFailureIsBadGateway(t *testing.T) {
	server, store, metrics := newCollector(t)
	store.insertErr = fmt.Errorf("connection refused")

	res := postSubmission(t, server.URL, testToken, validEnvelope())

	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	counters := metrics.Counters()
	require.Len(t, counters, 1)
	assert.Equal(t, "failed", counters[0].Labels["status"])
}

func TestCollector_Healthz(t *testing.T) {
	server, store, _ := newCollector(t)

	res, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode, "healthz needs no auth")

	store.pingErr = fmt.Errorf("down")
	res, err = http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestCollector_MetricsEndpoint(t *testing.T) {
	server, _, _ := newCollector(t)

	res, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode, "metrics are exposed without auth")
}

func TestNewHandler_Validation(t *testing.T) {
	store := newFakeStore()

	_, err := NewHandler("", store, nil)
	require.Error(t, err, "an unset token must not open the collector to everyone")

	_, err = NewHandler(testToken, nil, nil)
	require.Error(t, err)

	handler, err := NewHandler(testToken, store, nil)
	require.NoError(t, err, "metrics are optional")
	require.NotNil(t, handler)
}
