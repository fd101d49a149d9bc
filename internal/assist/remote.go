package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/good-yellow-bee/innohub/internal/metrics"
	"github.com/good-yellow-bee/innohub/pkg/config"
)

const (
	DefaultModel   = "gemini-pro"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
)

// RemoteConfig configures the Gemini provider.
type RemoteConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond and Burst bound outbound calls across all requests.
	RequestsPerSecond float64
	Burst             int
}

// Validate checks the configuration and fills in defaults.
func (c *RemoteConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api key is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base url %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 2
	}
	if c.Burst <= 0 {
		c.Burst = 5
	}
	return nil
}

// RemoteProvider calls the Gemini generateContent REST endpoint.
type RemoteProvider struct {
	config     RemoteConfig
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewRemoteProvider creates a provider from cfg.
func NewRemoteProvider(cfg RemoteConfig) (*RemoteProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid remote provider config: %w", err)
	}

	endpoint := strings.TrimRight(cfg.BaseURL, "/") +
		"/v1beta/models/" + url.PathEscape(cfg.Model) + ":generateContent"

	return &RemoteProvider{
		config:   cfg,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}, nil
}

// Name returns "remote".
func (p *RemoteProvider) Name() string { return string(SourceRemote) }

// Model returns the configured model name.
func (p *RemoteProvider) Model() string { return p.config.Model }

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends req.Prompt and returns the concatenated text of the first
// candidate. All failures wrap ErrUpstreamUnavailable.
func (p *RemoteProvider) Generate(ctx context.Context, req Request) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limit: %v", ErrUpstreamUnavailable, err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: req.Prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.config.APIKey)
	httpReq.Header.Set("User-Agent", config.UserAgent())

	start := time.Now()
	resp, err := p.httpClient.Do(httpReq)
	metrics.AssistUpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: status %d, body: %s", ErrUpstreamUnavailable, resp.StatusCode, string(msg))
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstreamUnavailable, err)
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrUpstreamUnavailable)
	}

	var text strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("%w: empty reply", ErrUpstreamUnavailable)
	}
	return text.String(), nil
}
