package secretstore

import (
	"context"
	"errors"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/binbandit/keychainctl/internal/logging"
)

// SystemBackend uses the OS credential vault through
// github.com/zalando/go-keyring (Keychain, Secret Service, Credential
// Manager). The keyring service is the secret's service name and the user is
// the account.
type SystemBackend struct {
	log logging.Logger
}

// NewSystemBackend returns a SystemBackend.
func NewSystemBackend(log logging.Logger) *SystemBackend {
	return &SystemBackend{log: log}
}

// Get implements Backend.
func (b *SystemBackend) Get(_ context.Context, account, service string) (string, error) {
	value, err := gokeyring.Get(service, account)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", notFound(service)
		}
		return "", &StoreError{Op: "get", Service: service, Err: err}
	}
	return value, nil
}

// Set implements Backend.
func (b *SystemBackend) Set(_ context.Context, account, service, value string) error {
	if err := gokeyring.Set(service, account, value); err != nil {
		return &StoreError{Op: "set", Service: service, Err: err}
	}
	b.log.Debug().Str("account", account).Str("service", service).Msg("system keyring updated")
	return nil
}

// Delete implements Backend.
func (b *SystemBackend) Delete(_ context.Context, account, service string) error {
	err := gokeyring.Delete(service, account)
	if err != nil && !errors.Is(err, gokeyring.ErrNotFound) {
		return &StoreError{Op: "delete", Service: service, Err: err}
	}
	return nil
}
