package hf

import (
	"fmt"

	"github.com/docsage/docsage/internal/core/domain"
)

// The feature-extraction endpoint does not commit to one tensor layout.
// For a single input it may return a flat vector (already pooled), a
// token-by-dimension matrix, or a batch axis wrapped around either. The
// shape is resolved once here and everything downstream works with one
// canonical []float32.

// normalizeTensor converts one raw tensor for a single input into a
// fixed-length vector. Resolution order:
//
//  1. elements are numbers        -> already a vector, returned as-is
//  2. elements are vectors        -> token matrix, mean-pooled
//  3. elements are matrices       -> batch of one, element 0 mean-pooled
//
// Anything else is a FormatError naming the structure; a malformed shape
// means an incompatible service response, not a transient fault.
func normalizeTensor(raw any) ([]float32, error) {
	outer, ok := raw.([]any)
	if !ok || len(outer) == 0 {
		return nil, &domain.FormatError{Shape: describe(raw)}
	}

	switch outer[0].(type) {
	case float64:
		return asVector(outer)

	case []any:
		inner := outer[0].([]any)
		if len(inner) == 0 {
			return nil, &domain.FormatError{Shape: describe(raw)}
		}
		switch inner[0].(type) {
		case float64:
			matrix, err := asMatrix(outer)
			if err != nil {
				return nil, err
			}
			return meanPool(matrix), nil

		case []any:
			matrix, err := asMatrix(inner)
			if err != nil {
				return nil, err
			}
			return meanPool(matrix), nil
		}
	}

	return nil, &domain.FormatError{Shape: describe(raw)}
}

// normalizeBatch converts the raw response for n batched inputs into one
// vector per input, in input order. Each batch element is either a flat
// vector or a token matrix and is normalized independently. A batch of
// one falls back to single-input resolution so a lone token matrix is
// not mistaken for several flat vectors.
func normalizeBatch(raw any, n int) ([][]float32, error) {
	if n == 1 {
		vec, err := normalizeTensor(raw)
		if err != nil {
			return nil, err
		}
		return [][]float32{vec}, nil
	}

	outer, ok := raw.([]any)
	if !ok {
		return nil, &domain.FormatError{Shape: describe(raw)}
	}
	if len(outer) != n {
		return nil, &domain.FormatError{
			Shape: fmt.Sprintf("batch of %d results for %d inputs", len(outer), n),
		}
	}

	vectors := make([][]float32, n)
	for i, item := range outer {
		elems, ok := item.([]any)
		if !ok || len(elems) == 0 {
			return nil, &domain.FormatError{Shape: describe(item)}
		}

		switch elems[0].(type) {
		case float64:
			vec, err := asVector(elems)
			if err != nil {
				return nil, err
			}
			vectors[i] = vec

		case []any:
			matrix, err := asMatrix(elems)
			if err != nil {
				return nil, err
			}
			vectors[i] = meanPool(matrix)

		default:
			return nil, &domain.FormatError{Shape: describe(item)}
		}
	}

	return vectors, nil
}

// meanPool averages a token-by-dimension matrix elementwise into a
// single vector. A zero-row matrix has no row width to pool over and
// yields nil; shape validation rejects it before pooling, so the nil
// never reaches the dimension check.
func meanPool(matrix [][]float32) []float32 {
	tokens := len(matrix)
	if tokens == 0 {
		return nil
	}

	dim := len(matrix[0])
	out := make([]float32, dim)
	for _, row := range matrix {
		for j, v := range row {
			out[j] += v
		}
	}

	n := float32(tokens)
	for j := range out {
		out[j] /= n
	}
	return out
}

// asVector converts a slice of JSON numbers to float32s. Any non-number
// leaf is a FormatError.
func asVector(elems []any) ([]float32, error) {
	vec := make([]float32, len(elems))
	for i, e := range elems {
		f, ok := e.(float64)
		if !ok {
			return nil, &domain.FormatError{
				Shape: fmt.Sprintf("non-numeric leaf %T at index %d", e, i),
			}
		}
		vec[i] = float32(f)
	}
	return vec, nil
}

// asMatrix converts a slice of rows to a rectangular float32 matrix.
// Ragged rows are a FormatError.
func asMatrix(rows []any) ([][]float32, error) {
	matrix := make([][]float32, len(rows))
	width := -1
	for i, r := range rows {
		elems, ok := r.([]any)
		if !ok {
			return nil, &domain.FormatError{
				Shape: fmt.Sprintf("mixed row types: %T at row %d", r, i),
			}
		}
		row, err := asVector(elems)
		if err != nil {
			return nil, err
		}
		if width == -1 {
			width = len(row)
		} else if len(row) != width {
			return nil, &domain.FormatError{
				Shape: fmt.Sprintf("ragged matrix: row %d has %d values, want %d", i, len(row), width),
			}
		}
		matrix[i] = row
	}
	return matrix, nil
}

// describe names a value's structure for error messages.
func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case []any:
		if len(t) == 0 {
			return "empty array"
		}
		return fmt.Sprintf("array of %T", t[0])
	default:
		return fmt.Sprintf("%T", v)
	}
}
