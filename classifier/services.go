package classifier

import (
	"context"
)

type FileStore interface {
	Load(ctx context.Context, path string) ([]byte, error)
	Save(ctx context.Context, path string, content []byte) error
}

type CacheStorage interface {
	Get(ctx context.Context, key string, v interface{}) error
	Set(ctx context.Context, key string, v interface{}) error
}

// Model is a trainable, serializable classifier over dense feature vectors.
// Class indices follow data.Names().
type Model interface {
	Fit(x [][]float64, y []int) error
	Predict(x []float64) (int, error)
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(b []byte) error
}

// Strategy builds untrained models of one configuration.
type Strategy interface {
	Name() string
	Construct() Model
}
