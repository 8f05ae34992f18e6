package secretstore

import (
	"context"
	"sync"
)

// MemoryBackend keeps secrets in process memory. Nothing survives the
// process; it backs tests.
type MemoryBackend struct {
	mu      sync.Mutex
	secrets map[[2]string]string
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{secrets: make(map[[2]string]string)}
}

// Get implements Backend.
func (b *MemoryBackend) Get(_ context.Context, account, service string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	value, ok := b.secrets[[2]string{account, service}]
	if !ok {
		return "", notFound(service)
	}
	return value, nil
}

// Set implements Backend.
func (b *MemoryBackend) Set(_ context.Context, account, service, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.secrets[[2]string{account, service}] = value
	return nil
}

// Delete implements Backend.
func (b *MemoryBackend) Delete(_ context.Context, account, service string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.secrets, [2]string{account, service})
	return nil
}
