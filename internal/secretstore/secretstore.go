// Package secretstore adapts platform secret stores to a single
// get/set/delete contract keyed by (account, service).
//
// Implementations never cache or log secret values, and they distinguish a
// missing secret (ErrNotFound) from a failing store (*StoreError).
package secretstore

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound reports that no secret exists for the (account, service) pair.
var ErrNotFound = errors.New("secret not found")

// Backend is a secret store holding one string per (account, service).
//
// Delete is idempotent: deleting an absent secret succeeds.
type Backend interface {
	Get(ctx context.Context, account, service string) (string, error)
	Set(ctx context.Context, account, service, value string) error
	Delete(ctx context.Context, account, service string) error
}

// StoreError is any secret store failure other than a missing secret.
type StoreError struct {
	Op      string // get, set or delete
	Service string
	Detail  string // trimmed diagnostic output from the store, if any
	Err     error
}

func (e *StoreError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%s secret `%s`: %s", e.Op, e.Service, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s secret `%s`: %v", e.Op, e.Service, e.Err)
	default:
		return fmt.Sprintf("%s secret `%s` failed", e.Op, e.Service)
	}
}

func (e *StoreError) Unwrap() error { return e.Err }

func notFound(service string) error {
	return fmt.Errorf("%w for service `%s`", ErrNotFound, service)
}
