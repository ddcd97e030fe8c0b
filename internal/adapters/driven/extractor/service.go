package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/docsage/docsage/internal/core/domain"
	"github.com/docsage/docsage/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.TextExtractor = (*Service)(nil)

// DefaultServiceTimeout is the extraction request timeout. Large PDFs
// can take a while to parse upstream.
const DefaultServiceTimeout = 120 * time.Second

// ServiceConfig holds configuration for the remote extraction service.
type ServiceConfig struct {
	// BaseURL is the extraction service endpoint (required).
	BaseURL string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Service extracts text from binary document formats by delegating to
// an HTTP extraction service. The raw file bytes are posted as the
// request body with the format passed as a query parameter.
type Service struct {
	client  *http.Client
	baseURL string
}

// extractionResponse is the service's response format.
type extractionResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// NewService creates a remote extraction adapter.
// Returns domain.ErrExtractionUnavailable if no endpoint is configured.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("extraction endpoint not configured: %w", domain.ErrExtractionUnavailable)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultServiceTimeout
	}

	return &Service{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
	}, nil
}

// Extensions returns the binary formats delegated to the service.
func (s *Service) Extensions() []string {
	return []string{"pdf", "docx"}
}

// Extract posts the file bytes to the extraction service and returns
// the extracted plain text.
func (s *Service) Extract(ctx context.Context, data []byte, ext string) (string, error) {
	url := fmt.Sprintf("%s/extract?format=%s", s.baseURL, ext)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling extraction service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading extraction response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &domain.ServiceError{
			Service:    "extraction",
			StatusCode: resp.StatusCode,
			Detail:     string(body),
		}
	}

	var parsed extractionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding extraction response: %w", err)
	}
	if parsed.Error != "" {
		return "", &domain.ServiceError{Service: "extraction", Detail: parsed.Error}
	}

	return parsed.Text, nil
}
