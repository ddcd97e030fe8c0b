// Package hf provides an embedding service adapter using the
// HuggingFace inference API feature-extraction pipeline.
package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/docsage/docsage/internal/core/domain"
	"github.com/docsage/docsage/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://router.huggingface.co/hf-inference"
	DefaultModel      = "sentence-transformers/all-MiniLM-L6-v2"
	DefaultDimensions = 384
	DefaultTimeout    = 60 * time.Second

	// DefaultRequestsPerSecond throttles inference calls; the shared
	// inference endpoints reject bursts well below any documented limit.
	DefaultRequestsPerSecond = 2
)

// Config holds configuration for the HuggingFace embedding service.
type Config struct {
	// Token is the HuggingFace API token (required).
	Token string

	// BaseURL is the inference API base URL
	// (default: https://router.huggingface.co/hf-inference).
	BaseURL string

	// Model is the feature-extraction model to use
	// (default: sentence-transformers/all-MiniLM-L6-v2).
	Model string

	// Dimensions is the model's declared output dimension (default: 384).
	// Every normalized vector must have exactly this length.
	Dimensions int

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// RequestsPerSecond caps the request rate (default: 2).
	RequestsPerSecond float64
}

// EmbeddingService generates embeddings using the HuggingFace inference
// API. Responses are shape-normalized into fixed-length vectors; the
// service performs no retries of its own.
type EmbeddingService struct {
	client     *http.Client
	limiter    *rate.Limiter
	baseURL    string
	token      string
	model      string
	dimensions int
}

// embeddingRequest is the feature-extraction request format.
type embeddingRequest struct {
	Inputs  any              `json:"inputs"`
	Options embeddingOptions `json:"options"`
}

type embeddingOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// NewEmbeddingService creates a new HuggingFace embedding service.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: HuggingFace token is required", domain.ErrEmbeddingUnavailable)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &EmbeddingService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	raw, err := s.request(ctx, text)
	if err != nil {
		return nil, err
	}

	vec, err := normalizeTensor(raw)
	if err != nil {
		return nil, err
	}
	if err := s.checkDimension(vec); err != nil {
		return nil, err
	}
	return vec, nil
}

// EmbedBatch generates embeddings for multiple texts in one request.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	raw, err := s.request(ctx, texts)
	if err != nil {
		return nil, err
	}

	vectors, err := normalizeBatch(raw, len(texts))
	if err != nil {
		return nil, err
	}
	for _, vec := range vectors {
		if err := s.checkDimension(vec); err != nil {
			return nil, err
		}
	}
	return vectors, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by embedding a short probe.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.Embed(ctx, "ping"); err != nil {
		return fmt.Errorf("huggingface: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// request posts inputs to the feature-extraction pipeline and decodes
// the raw tensor response.
func (s *EmbeddingService) request(ctx context.Context, inputs any) (any, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqBody := embeddingRequest{
		Inputs:  inputs,
		Options: embeddingOptions{WaitForModel: true},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s/pipeline/feature-extraction", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.ServiceError{Service: "embedding", Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ServiceError{
			Service:    "embedding",
			StatusCode: resp.StatusCode,
			Detail:     upstreamDetail(body),
		}
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &domain.FormatError{Shape: "non-JSON response body"}
	}
	return raw, nil
}

func (s *EmbeddingService) checkDimension(vec []float32) error {
	if len(vec) != s.dimensions {
		return &domain.DimensionError{Want: s.dimensions, Got: len(vec)}
	}
	return nil
}

// upstreamDetail extracts the error message from an inference API error
// body, falling back to the raw body.
func upstreamDetail(body []byte) string {
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	if len(body) == 0 {
		return "empty response"
	}
	return string(body)
}
