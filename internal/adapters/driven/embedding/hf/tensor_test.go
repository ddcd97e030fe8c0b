package hf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsage/docsage/internal/core/domain"
)

// decode mirrors how the service sees response bodies: through a generic
// JSON decode.
func decode(t *testing.T, body string) any {
	t.Helper()
	var raw any
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func TestNormalizeTensor_FlatVectorUnchanged(t *testing.T) {
	vec, err := normalizeTensor(decode(t, `[0.1, 0.2, 0.3]`))
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestNormalizeTensor_TokenMatrixMeanPooled(t *testing.T) {
	// Two tokens: means are (1+3)/2 and (2+4)/2.
	vec, err := normalizeTensor(decode(t, `[[1, 2], [3, 4]]`))
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 3}, vec)
}

func TestNormalizeTensor_AllEqualRowsPoolToRow(t *testing.T) {
	vec, err := normalizeTensor(decode(t, `[[5, 6, 7], [5, 6, 7], [5, 6, 7]]`))
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 6, 7}, vec)
}

func TestNormalizeTensor_SingleTokenMatrix(t *testing.T) {
	vec, err := normalizeTensor(decode(t, `[[1, 2, 3]]`))
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, vec)
}

func TestNormalizeTensor_BatchOfOneMatrix(t *testing.T) {
	vec, err := normalizeTensor(decode(t, `[[[1, 2], [3, 4]]]`))
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 3}, vec)
}

func TestNormalizeTensor_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"non-numeric leaf", `[[1, "x"]]`},
		{"ragged matrix", `[[1, 2], [3]]`},
		{"mixed nesting", `[1, [2]]`},
		{"object", `{"error": "nope"}`},
		{"empty array", `[]`},
		{"scalar", `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizeTensor(decode(t, tt.body))
			require.Error(t, err)

			var formatErr *domain.FormatError
			assert.ErrorAs(t, err, &formatErr)
			assert.NotEmpty(t, formatErr.Shape)
		})
	}
}

func TestNormalizeBatch_MixedShapes(t *testing.T) {
	// One pooled vector and one token matrix in the same batch.
	raw := decode(t, `[[1, 2], [[3, 4], [5, 6]]]`)

	vectors, err := normalizeBatch(raw, 2)
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{1, 2}, vectors[0])
	assert.Equal(t, []float32{4, 5}, vectors[1])
}

func TestNormalizeBatch_SingleInputMatrixNotSplit(t *testing.T) {
	// For one input, a token matrix is pooled, not treated as a batch
	// of flat vectors.
	vectors, err := normalizeBatch(decode(t, `[[1, 2], [3, 4]]`), 1)
	require.NoError(t, err)
	require.Len(t, vectors, 1)
	assert.Equal(t, []float32{2, 3}, vectors[0])
}

func TestNormalizeBatch_CountMismatch(t *testing.T) {
	_, err := normalizeBatch(decode(t, `[[1, 2], [3, 4]]`), 3)
	require.Error(t, err)

	var formatErr *domain.FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestMeanPool_ZeroRowMatrixYieldsNil(t *testing.T) {
	// No rows means no row width to pool over.
	assert.NotPanics(t, func() {
		assert.Nil(t, meanPool(nil))
		assert.Nil(t, meanPool([][]float32{}))
	})
}
