// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/advisor/internal/adapters/repository"
	"github.com/okian/advisor/internal/domain/filter"
	"github.com/okian/advisor/internal/domain/model"
	"github.com/okian/advisor/internal/domain/reference"
	"github.com/okian/advisor/internal/domain/scoring"
	"github.com/okian/advisor/pkg/logger"
	"github.com/okian/advisor/pkg/metrics"
)

// Result is the outcome of scoring one user with one model.
type Result struct {
	Model     string  `json:"model"`
	Score     float64 `json:"score"`
	ExtraData any     `json:"extraData,omitempty"`
}

// Advice is an advice relevant to a user.
type Advice struct {
	AdviceID  string  `json:"adviceId"`
	Model     string  `json:"model"`
	Score     float64 `json:"score"`
	ExtraData any     `json:"extraData,omitempty"`
}

// Service scores users against the advice models, reading reference data
// from a store.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	reader reference.Reader
	owned  bool

	// Configuration
	fixtures     string
	batchWorkers int
	maxBatchSize int
	clock        func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the reference store. The service does not close a store it
// was given.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithFixtures loads a YAML reference dataset into the store on Start.
func WithFixtures(path string) Option {
	return func(s *Service) {
		s.fixtures = path
	}
}

// WithBatchWorkers sets how many users of a batch are scored concurrently.
func WithBatchWorkers(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.batchWorkers = count
		}
	}
}

// WithMaxBatchSize sets the largest batch accepted by ScoreBatch.
func WithMaxBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxBatchSize = size
		}
	}
}

// WithClock sets the clock used when a request carries no time.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		batchWorkers: runtime.NumCPU(),
		maxBatchSize: 1000,
		clock:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start prepares the reference store. Without a store an in-memory one is
// created, and the fixtures, if any, are loaded into it.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting advisor service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.owned = true
	}
	if s.fixtures != "" {
		counts, err := repository.LoadYAML(ctx, s.fixtures, s.store)
		if err != nil {
			return fmt.Errorf("load reference fixtures: %w", err)
		}
		s.logger.Info(ctx, "reference fixtures loaded",
			logger.String("path", s.fixtures),
			logger.Any("documents", counts),
		)
	}
	if err := repository.PublishCounts(ctx, s.store); err != nil {
		s.logger.Warn(ctx, "failed to count reference documents", logger.Error(err))
	}
	s.reader = repository.Instrument(s.store)

	s.started = true
	s.logger.Info(ctx, "advisor service started",
		logger.Int("batchWorkers", s.batchWorkers),
		logger.Int("maxBatchSize", s.maxBatchSize),
		logger.Int("models", len(scoring.Identifiers())),
		logger.Bool("ownedStore", s.owned),
	)

	return nil
}

// Stop releases the store when the service created it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping advisor service...")

	if s.owned && s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "failed to close reference store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "advisor service stopped")
}

func (s *Service) referenceReader() (reference.Reader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.reader, nil
}

func (s *Service) project(user model.User, r reference.Reader, now time.Time) *scoring.Project {
	return scoring.NewUserProject(user, r, scoring.WithClock(s.clock), scoring.WithNow(now))
}

// Score rates user with the model named by modelID. A zero now uses the
// service clock.
func (s *Service) Score(ctx context.Context, modelID string, user model.User, now time.Time) (Result, error) {
	r, err := s.referenceReader()
	if err != nil {
		return Result{}, err
	}
	m, err := scoring.Get(modelID)
	if err != nil {
		s.recordFailure(ctx, modelID, err, 0)
		return Result{}, err
	}
	return s.score(ctx, modelID, m, s.project(user, r, now))
}

func (s *Service) score(ctx context.Context, modelID string, m scoring.Model, p *scoring.Project) (Result, error) {
	start := time.Now()
	score, err := m.Score(ctx, p)
	if err == nil {
		var extra any
		extra, err = m.ExtraData(ctx, p)
		if err == nil {
			metrics.RecordScoring(modelID, metrics.OutcomeOK, elapsedMs(start))
			return Result{Model: modelID, Score: score, ExtraData: extra}, nil
		}
	}
	s.recordFailure(ctx, modelID, err, elapsedMs(start))
	return Result{}, err
}

// CardData returns the data of the expanded advice card. Models without
// dedicated card data fall back to their extra data.
func (s *Service) CardData(ctx context.Context, modelID string, user model.User, now time.Time) (any, error) {
	r, err := s.referenceReader()
	if err != nil {
		return nil, err
	}
	m, err := scoring.Get(modelID)
	if err != nil {
		s.recordFailure(ctx, modelID, err, 0)
		return nil, err
	}
	p := s.project(user, r, now)

	var data any
	if provider, ok := m.(scoring.CardDataProvider); ok {
		data, err = provider.CardData(ctx, p)
	} else {
		data, err = m.ExtraData(ctx, p)
	}
	if err != nil {
		s.recordFailure(ctx, modelID, err, 0)
		return nil, err
	}
	return data, nil
}

// ComputeAdvices scores user with the trigger model of every advice module
// and returns the relevant advices, most relevant first. Modules restricted
// to a feature the user lacks are skipped. One Project is shared by every
// module so reference lookups happen once.
func (s *Service) ComputeAdvices(ctx context.Context, user model.User, now time.Time) ([]Advice, error) {
	r, err := s.referenceReader()
	if err != nil {
		return nil, err
	}
	modules, err := adviceModules(ctx, r)
	if err != nil {
		s.recordFailure(ctx, reference.AdviceModules, err, 0)
		return nil, err
	}

	pass := uuid.NewString()
	log := s.logger.Named("advices")
	p := s.project(user, r, now)

	var advices []Advice
	for _, module := range modules {
		if module.RequiredFeature != "" && !user.Features.Has(module.RequiredFeature) {
			continue
		}
		m, err := scoring.Get(module.TriggerScoringModel)
		if err != nil {
			s.recordFailure(ctx, module.TriggerScoringModel, err, 0)
			return nil, fmt.Errorf("advice %q: %w", module.AdviceID, err)
		}
		res, err := s.score(ctx, module.TriggerScoringModel, m, p)
		if err != nil {
			return nil, fmt.Errorf("advice %q: %w", module.AdviceID, err)
		}
		if res.Score <= 0 {
			continue
		}
		advices = append(advices, Advice{
			AdviceID:  module.AdviceID,
			Model:     res.Model,
			Score:     res.Score,
			ExtraData: res.ExtraData,
		})
	}

	slices.SortStableFunc(advices, func(a, b Advice) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.AdviceID, b.AdviceID)
	})

	metrics.RecordAdvicesComputed(len(advices))
	ids := make([]string, len(advices))
	for i, a := range advices {
		ids[i] = a.AdviceID
	}
	log.Debug(ctx, "advices computed",
		logger.String("pass", pass),
		logger.Int("modules", len(modules)),
		logger.Strings("adviceIds", ids),
		logger.String("now", p.Now().Format(time.RFC3339)),
	)
	return advices, nil
}

// ScoreBatch rates every user with the same model. Results follow the order
// of users; the first failure cancels the remaining work.
func (s *Service) ScoreBatch(ctx context.Context, modelID string, users []model.User, now time.Time) ([]Result, error) {
	r, err := s.referenceReader()
	if err != nil {
		return nil, err
	}
	if len(users) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d users, at most %d", ErrBatchTooLarge, len(users), s.maxBatchSize)
	}
	m, err := scoring.Get(modelID)
	if err != nil {
		s.recordFailure(ctx, modelID, err, 0)
		return nil, err
	}
	metrics.RecordBatchSize(len(users))

	results := make([]Result, len(users))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)
	for i, user := range users {
		g.Go(func() error {
			res, err := s.score(ctx, modelID, m, s.project(user, r, now))
			if err != nil {
				return fmt.Errorf("user #%d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Models returns the identifiers of the static models.
func (s *Service) Models() []string {
	return scoring.Identifiers()
}

// Counts returns the number of reference documents per collection.
func (s *Service) Counts(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store.Counts(ctx)
}

func adviceModules(ctx context.Context, r reference.Reader) ([]model.AdviceModule, error) {
	docs, err := r.List(ctx, reference.AdviceModules)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", reference.AdviceModules, err)
	}
	modules := make([]model.AdviceModule, 0, len(docs))
	for i, doc := range docs {
		var m model.AdviceModule
		if err := json.Unmarshal(doc, &m); err != nil {
			return nil, fmt.Errorf("%w: %s #%d: %w", scoring.ErrInvalidDocument, reference.AdviceModules, i, err)
		}
		modules = append(modules, m)
	}
	return modules, nil
}

func (s *Service) recordFailure(ctx context.Context, modelID string, err error, latencyMs float64) {
	if errors.Is(err, context.Canceled) {
		return
	}
	if scoring.IsConfigurationError(err) {
		kind := configurationErrorKind(err)
		metrics.RecordScoring(modelID, metrics.OutcomeConfigurationError, latencyMs)
		metrics.RecordConfigurationError(kind)
		s.logger.Error(ctx, "scoring configuration error",
			logger.String("model", modelID),
			logger.String("kind", kind),
			logger.Error(err),
		)
		return
	}
	metrics.RecordScoring(modelID, metrics.OutcomeStoreError, latencyMs)
	s.logger.Error(ctx, "reference store failure",
		logger.String("model", modelID),
		logger.Error(err),
	)
}

func configurationErrorKind(err error) string {
	switch {
	case errors.Is(err, scoring.ErrUnknownModel):
		return "unknown_model"
	case errors.Is(err, scoring.ErrMalformedIdentifier):
		return "malformed_identifier"
	case errors.Is(err, filter.ErrInvalidFilter):
		return "invalid_filter"
	default:
		return "invalid_document"
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
