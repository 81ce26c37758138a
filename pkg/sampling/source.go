package sampling

import (
	"io"
	"math/rand/v2"
	"sync"
)

// seededSource is a deterministic ChaCha8 stream. ChaCha8 is not safe for
// concurrent use on its own.
type seededSource struct {
	mu     sync.Mutex
	stream *rand.ChaCha8
}

// NewSeededSource returns a deterministic, concurrency-safe random source.
// It is meant for tests and reproducible runs, not for production keys.
func NewSeededSource(seed [32]byte) io.Reader {
	return &seededSource{stream: rand.NewChaCha8(seed)}
}

func (s *seededSource) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream.Read(p)
}
