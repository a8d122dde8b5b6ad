// Package collector exposes the HTTP ingestion service remote raters
// submit to. It validates incoming submission envelopes at the trust
// boundary, enforces bearer-token auth, and stores records through an
// idempotent submission store.
package collector

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// SubmissionStore is the slice of the postgres sink the collector
// needs: idempotent inserts that report replays, plus a health ping.
type SubmissionStore interface {
	// Insert stores the submission and reports whether a new record
	// was written. False with a nil error means the key was already
	// present.
	Insert(ctx context.Context, submission *domain.ValidatedSubmission) (bool, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// Server handles submission ingestion over HTTP.
type Server struct {
	store   SubmissionStore
	token   string
	metrics ports.MetricsCollector
}

// submissionEnvelope is the wire form posted by remote raters.
// It mirrors the sink-side envelope: the submission key travels in
// the body so the collector can enforce idempotency.
type submissionEnvelope struct {
	Key         string             `json:"key"`
	Username    string             `json:"username"`
	SubmittedAt time.Time          `json:"submittedAt"`
	Ratings     domain.RatingTable `json:"ratings"`
}

type createdResp struct {
	Key string `json:"key"`
}

type errResp struct {
	Error string `json:"error"`
}

// NewServer builds the ingestion server listening on addr.
func NewServer(addr, token string, store SubmissionStore, metrics ports.MetricsCollector) (*http.Server, error) {
	handler, err := NewHandler(token, store, metrics)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// NewHandler builds the collector's HTTP handler. It is separated
// from NewServer so tests can drive it through httptest.
func NewHandler(token string, store SubmissionStore, metrics ports.MetricsCollector) (http.Handler, error) {
	if token == "" {
		return nil, fmt.Errorf("collector API token is required")
	}
	if store == nil {
		return nil, fmt.Errorf("submission store is required")
	}
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}

	s := &Server{store: store, token: token, metrics: metrics}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)
		r.Post("/api/v1/submissions", s.createSubmission)
	})

	r.Get("/healthz", s.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r, nil
}

// requireBearer rejects requests whose Authorization header does not
// carry the configured token. The comparison is constant time so the
// token cannot be probed byte by byte.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get("Authorization")
		if len(got) < 8 || got[:7] != "Bearer " ||
			subtle.ConstantTimeCompare([]byte(got[7:]), []byte(s.token)) != 1 {
			writeJSON(w, http.StatusUnauthorized, errResp{"unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) createSubmission(w http.ResponseWriter, r *http.Request) {
	var envelope submissionEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		s.count("rejected")
		writeJSON(w, http.StatusBadRequest, errResp{err.Error()})
		return
	}

	submission, err := validateEnvelope(envelope)
	if err != nil {
		s.count("rejected")
		writeJSON(w, http.StatusUnprocessableEntity, errResp{err.Error()})
		return
	}

	inserted, err := s.store.Insert(r.Context(), submission)
	if err != nil {
		s.count("failed")
		writeJSON(w, http.StatusBadGateway, errResp{"store failed"})
		return
	}
	if !inserted {
		s.count("replayed")
		writeJSON(w, http.StatusConflict, errResp{"duplicate submission key"})
		return
	}

	s.count("accepted")
	writeJSON(w, http.StatusCreated, createdResp{Key: submission.Key})
}

// validateEnvelope re-checks the submission rules at the trust
// boundary: clients are not trusted to have run them.
func validateEnvelope(envelope submissionEnvelope) (*domain.ValidatedSubmission, error) {
	username := strings.TrimSpace(envelope.Username)
	if username == "" {
		return nil, domain.ErrMissingUsername
	}
	if envelope.Key == "" {
		return nil, fmt.Errorf("submission key is required")
	}
	if envelope.SubmittedAt.IsZero() {
		return nil, fmt.Errorf("submission timestamp is required")
	}

	rated := envelope.Ratings.FilterRated()
	if len(rated) == 0 {
		return nil, domain.ErrEmptySubmission
	}

	return &domain.ValidatedSubmission{
		Username:    username,
		Key:         envelope.Key,
		SubmittedAt: envelope.SubmittedAt,
		Ratings:     rated,
	}, nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "store error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) count(status string) {
	s.metrics.RecordCounter("submissions_received_total", 1,
		map[string]string{"status": status})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
