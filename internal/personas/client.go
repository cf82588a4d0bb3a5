package personas

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/okian/advisor/internal/domain/model"
	"github.com/okian/advisor/pkg/logger"
)

// Advice is one relevant advice returned by the service.
type Advice struct {
	AdviceID  string          `json:"adviceId"`
	Model     string          `json:"model"`
	Score     float64         `json:"score"`
	ExtraData json.RawMessage `json:"extraData,omitempty"`
}

// Result is the outcome of probing the service with one persona.
type Result struct {
	Persona  string
	Advices  []Advice
	Duration time.Duration
}

type advicesRequest struct {
	User model.User `json:"user"`
	Now  *time.Time `json:"now,omitempty"`
}

type advicesResponse struct {
	Advices []Advice `json:"advices"`
}

// Client calls a running advisor service.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Advices asks the service which advices are relevant for user. A zero now
// lets the service use its own clock.
func (c *Client) Advices(ctx context.Context, user model.User, now time.Time) ([]Advice, error) {
	req := advicesRequest{User: user}
	if !now.IsZero() {
		req.Now = &now
	}
	var resp advicesResponse
	if err := c.post(ctx, "/advices", req, &resp); err != nil {
		return nil, err
	}
	return resp.Advices, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrProbeFailed, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrProbeFailed, path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: status %d: %s", ErrProbeFailed, path, resp.StatusCode, bytes.TrimSpace(payload))
	}
	return json.Unmarshal(payload, out)
}

// Probe sends every persona to the service with at most workers requests in
// flight. Results follow the order of list.
func Probe(ctx context.Context, c *Client, list []Persona, now time.Time, workers int) ([]Result, error) {
	log := logger.Get().Named("probe")
	results := make([]Result, len(list))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for i, p := range list {
		g.Go(func() error {
			start := time.Now()
			advices, err := c.Advices(ctx, p.User, now)
			if err != nil {
				return fmt.Errorf("persona %q: %w", p.Name, err)
			}
			results[i] = Result{Persona: p.Name, Advices: advices, Duration: time.Since(start)}
			log.Debug(ctx, "persona probed",
				logger.String("persona", p.Name),
				logger.Int("advices", len(advices)),
				logger.Duration("took", results[i].Duration),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
