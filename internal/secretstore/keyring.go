package secretstore

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"path/filepath"

	"github.com/99designs/keyring"

	"github.com/binbandit/keychainctl/internal/logging"
)

// KeyringServicePrefix namespaces per-account keyrings.
const KeyringServicePrefix = "keychainctl:"

// KeyringOpener opens the keyring that holds one account's secrets.
type KeyringOpener func(account string) (keyring.Keyring, error)

// KeyringOptions configures NewKeyringOpener.
type KeyringOptions struct {
	Backends     []string // 99designs backend names; empty allows all
	FileDir      string   // parent directory for the encrypted file backend, one subdirectory per account
	FilePassword keyring.PromptFunc
}

// NewKeyringOpener returns an opener backed by keyring.Open.
func NewKeyringOpener(opts KeyringOptions) KeyringOpener {
	allowed := make([]keyring.BackendType, 0, len(opts.Backends))
	for _, name := range opts.Backends {
		allowed = append(allowed, keyring.BackendType(name))
	}
	return func(account string) (keyring.Keyring, error) {
		fileDir := opts.FileDir
		if fileDir != "" {
			fileDir = filepath.Join(fileDir, url.PathEscape(account))
		}
		return keyring.Open(keyring.Config{
			ServiceName:              KeyringServicePrefix + account,
			AllowedBackends:          allowed,
			FileDir:                  fileDir,
			FilePasswordFunc:         opts.FilePassword,
			KeychainTrustApplication: true,
		})
	}
}

// KeyringBackend stores secrets through github.com/99designs/keyring. Each
// account maps to its own keyring service; the item key is the service name.
type KeyringBackend struct {
	open KeyringOpener
	log  logging.Logger
}

// NewKeyringBackend returns a backend using open for every call.
func NewKeyringBackend(open KeyringOpener, log logging.Logger) *KeyringBackend {
	return &KeyringBackend{open: open, log: log}
}

// Get implements Backend.
func (b *KeyringBackend) Get(_ context.Context, account, service string) (string, error) {
	ring, err := b.ring("get", account, service)
	if err != nil {
		return "", err
	}
	item, err := ring.Get(service)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", notFound(service)
		}
		return "", &StoreError{Op: "get", Service: service, Err: err}
	}
	return string(item.Data), nil
}

// Set implements Backend.
func (b *KeyringBackend) Set(_ context.Context, account, service, value string) error {
	ring, err := b.ring("set", account, service)
	if err != nil {
		return err
	}
	err = ring.Set(keyring.Item{
		Key:   service,
		Data:  []byte(value),
		Label: service,
	})
	if err != nil {
		return &StoreError{Op: "set", Service: service, Err: err}
	}
	return nil
}

// Delete implements Backend.
func (b *KeyringBackend) Delete(_ context.Context, account, service string) error {
	ring, err := b.ring("delete", account, service)
	if err != nil {
		return err
	}
	if err := ring.Remove(service); err != nil {
		// The file backend reports a missing item as a bare os.Remove error.
		if errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &StoreError{Op: "delete", Service: service, Err: err}
	}
	return nil
}

func (b *KeyringBackend) ring(op, account, service string) (keyring.Keyring, error) {
	ring, err := b.open(account)
	if err != nil {
		return nil, &StoreError{Op: op, Service: service, Err: err}
	}
	b.log.Debug().Str("op", op).Str("account", account).Str("service", service).Msg("keyring opened")
	return ring, nil
}
