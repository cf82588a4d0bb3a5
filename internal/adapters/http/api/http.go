// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	service "github.com/okian/advisor/internal/app"
	"github.com/okian/advisor/internal/domain/model"
	"github.com/okian/advisor/internal/domain/scoring"
	"github.com/okian/advisor/pkg/logger"
)

const defaultMaxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Score(ctx context.Context, modelID string, user model.User, now time.Time) (Result, error)
	CardData(ctx context.Context, modelID string, user model.User, now time.Time) (any, error)
	ComputeAdvices(ctx context.Context, user model.User, now time.Time) ([]Advice, error)
	ScoreBatch(ctx context.Context, modelID string, users []model.User, now time.Time) ([]Result, error)
	Models() []string
}

// Result mirrors the shape returned by a scoring call.
type Result = service.Result

// Advice mirrors the shape of one relevant advice.
type Advice = service.Advice

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	scoreHandler   *ScoreHandler
	advicesHandler *AdvicesHandler
	batchHandler   *BatchHandler
	modelsHandler  *ModelsHandler
}

// Option applies a configuration option to the Server.
type Option func(*options)

type options struct {
	maxBodyBytes int64
	logger       logger.Logger
}

// WithMaxBodyBytes caps the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger used to report server side failures.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	o := options{maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Get().Named("api")
	}
	d := decoder{maxBytes: o.maxBodyBytes}
	return &Server{
		healthHandler:  NewHealthHandler(),
		scoreHandler:   &ScoreHandler{deps: deps, decode: d, log: o.logger},
		advicesHandler: &AdvicesHandler{deps: deps, decode: d, log: o.logger},
		batchHandler:   &BatchHandler{deps: deps, decode: d, log: o.logger},
		modelsHandler:  &ModelsHandler{deps: deps},
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/models", MetricsMiddleware(s.modelsHandler.HandleModels, "models"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandleScore, "score"))
	mux.HandleFunc("/card", MetricsMiddleware(s.scoreHandler.HandleCard, "card"))
	mux.HandleFunc("/advices", MetricsMiddleware(s.advicesHandler.HandleAdvices, "advices"))
	mux.HandleFunc("/batch", MetricsMiddleware(s.batchHandler.HandleBatch, "batch"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	setErrorCode(w, code)
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps a service error to its HTTP status and code. Server side
// failures are logged; their message is not exposed to the caller.
func writeFailure(ctx context.Context, w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, scoring.ErrUnknownModel):
		writeError(w, http.StatusNotFound, codeUnknownModel, err)
	case errors.Is(err, scoring.ErrMalformedIdentifier):
		writeError(w, http.StatusBadRequest, codeMalformedIdentifier, err)
	case errors.Is(err, service.ErrBatchTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, codeBatchTooLarge, err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, nil)
	case scoring.IsConfigurationError(err):
		log.Error(ctx, "configuration error", logger.String("op", op), logger.Error(err))
		writeError(w, http.StatusInternalServerError, codeConfigurationError, nil)
	default:
		log.Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, nil)
	}
}

type decoder struct {
	maxBytes int64
}

// decode reads a JSON body into v, rejecting trailing data.
func (d decoder) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, d.maxBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}

// requestTime returns the time carried by a request, or the zero time to let
// the service use its clock.
func requestTime(now *time.Time) time.Time {
	if now == nil {
		return time.Time{}
	}
	return *now
}
