package driven

import "context"

// ObjectStore stores and retrieves raw uploaded bytes by path.
type ObjectStore interface {
	// Put writes data under the given path, creating parents as needed.
	Put(ctx context.Context, path string, data []byte) error

	// Get reads the bytes stored under the given path.
	// Returns domain.ErrNotFound if nothing is stored there.
	Get(ctx context.Context, path string) ([]byte, error)

	// Delete removes the object at the given path. Removing a missing
	// object is not an error.
	Delete(ctx context.Context, path string) error
}
