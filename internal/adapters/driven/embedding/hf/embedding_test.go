package hf

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsage/docsage/internal/core/domain"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *EmbeddingService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewEmbeddingService(Config{
		Token:             "test-token",
		BaseURL:           server.URL,
		Dimensions:        3,
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)
	return svc
}

func TestNewEmbeddingService_RequiresToken(t *testing.T) {
	_, err := NewEmbeddingService(Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestEmbed_PooledResponse(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Inputs)
		assert.True(t, req.Options.WaitForModel)

		w.Write([]byte(`[0.1, 0.2, 0.3]`))
	})

	vec, err := svc.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbed_TokenMatrixResponse(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[[1, 2, 3], [3, 4, 5]]`))
	})

	vec, err := svc.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 3, 4}, vec)
}

func TestEmbed_UpstreamError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": "model overloaded"}`))
	})

	_, err := svc.Embed(context.Background(), "hello")
	require.Error(t, err)

	var svcErr *domain.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "embedding", svcErr.Service)
	assert.Equal(t, http.StatusServiceUnavailable, svcErr.StatusCode)
	assert.Equal(t, "model overloaded", svcErr.Detail)
}

func TestEmbed_DimensionMismatch(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[0.1, 0.2]`))
	})

	_, err := svc.Embed(context.Background(), "hello")
	require.Error(t, err)

	var dimErr *domain.DimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 3, dimErr.Want)
	assert.Equal(t, 2, dimErr.Got)
}

func TestEmbed_MalformedShape(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"unexpected": true}`))
	})

	_, err := svc.Embed(context.Background(), "hello")
	require.Error(t, err)

	var formatErr *domain.FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestEmbedBatch(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []any{"a", "b"}, req.Inputs)

		w.Write([]byte(`[[1, 2, 3], [[4, 5, 6], [6, 7, 8]]]`))
	})

	vectors, err := svc.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{1, 2, 3}, vectors[0])
	assert.Equal(t, []float32{5, 6, 7}, vectors[1])
}

func TestEmbedBatch_Empty(t *testing.T) {
	svc := newTestService(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected for empty batch")
	})

	vectors, err := svc.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestDimensions_Default(t *testing.T) {
	svc, err := NewEmbeddingService(Config{Token: "x"})
	require.NoError(t, err)
	assert.Equal(t, DefaultDimensions, svc.Dimensions())
	assert.Equal(t, DefaultModel, svc.ModelName())
}
