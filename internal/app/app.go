// Package app sequences account and secret resolution, the secret store and
// the registry for each keychainctl operation.
//
// The secret store is the source of truth. The registry is updated only
// after the store accepted a change, so it never records a service the store
// rejected.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/binbandit/keychainctl/internal/logging"
	"github.com/binbandit/keychainctl/internal/registry"
	"github.com/binbandit/keychainctl/internal/resolve"
	"github.com/binbandit/keychainctl/internal/secretstore"
)

// ErrInvalidPattern reports a --match glob doublestar cannot parse.
var ErrInvalidPattern = errors.New("invalid --match pattern")

// AccountResolver determines the account an operation acts on.
type AccountResolver interface {
	Account(ctx context.Context, explicit string) (string, error)
}

// SecretResolver determines the value stored by Set.
type SecretResolver interface {
	SecretValue(req resolve.Request) (string, error)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Auditor records completed mutations.
type Auditor interface {
	LogSet(account, service, backend string) error
	LogDelete(account, service, backend string) error
}

// Service runs operations. All fields except Audit are required.
type Service struct {
	Backend     secretstore.Backend
	BackendName string
	Registry    registry.Store
	Accounts    AccountResolver
	Secrets     SecretResolver
	Confirm     Confirmer
	Audit       Auditor
	Log         logging.Logger
}

// GetRequest asks for one secret.
type GetRequest struct {
	Service string
	Account string
}

// GetResult carries a retrieved secret.
type GetResult struct {
	Service string `json:"service"`
	Account string `json:"account"`
	Value   string `json:"value"`
}

// Get resolves the account and reads the secret from the store.
func (s *Service) Get(ctx context.Context, req GetRequest) (GetResult, error) {
	account, err := s.Accounts.Account(ctx, req.Account)
	if err != nil {
		return GetResult{}, err
	}
	value, err := s.Backend.Get(ctx, account, req.Service)
	if err != nil {
		return GetResult{}, err
	}
	return GetResult{Service: req.Service, Account: account, Value: value}, nil
}

// SetRequest stores one secret.
type SetRequest struct {
	Service string
	Account string
	Secret  resolve.Request
}

// SetResult describes a stored secret.
type SetResult struct {
	Service string `json:"service"`
	Account string `json:"account"`
}

// Set resolves the account and value, stores the secret, then records the
// service in the registry.
func (s *Service) Set(ctx context.Context, req SetRequest) (SetResult, error) {
	account, err := s.Accounts.Account(ctx, req.Account)
	if err != nil {
		return SetResult{}, err
	}
	value, err := s.Secrets.SecretValue(req.Secret)
	if err != nil {
		return SetResult{}, err
	}
	if err := s.Backend.Set(ctx, account, req.Service, value); err != nil {
		return SetResult{}, err
	}
	if err := s.Registry.Add(account, req.Service); err != nil {
		return SetResult{}, fmt.Errorf("secret stored but registry not updated: %w", err)
	}
	s.audit(func(a Auditor) error { return a.LogSet(account, req.Service, s.BackendName) })

	s.Log.Debug().Str("account", account).Str("service", req.Service).Msg("secret saved")
	return SetResult{Service: req.Service, Account: account}, nil
}

// DeleteRequest removes one secret.
type DeleteRequest struct {
	Service string
	Account string
	Yes     bool // skip confirmation
}

// DeleteResult describes a delete. Aborted is set when the user declined.
type DeleteResult struct {
	Service string `json:"service"`
	Account string `json:"account"`
	Aborted bool   `json:"aborted,omitempty"`
}

// DeleteQuestion is the confirmation asked before deleting.
func DeleteQuestion(service, account string) string {
	return fmt.Sprintf("Remove keychain secret for service `%s` (account %s)?", service, account)
}

// Delete resolves the account, asks for confirmation unless req.Yes, deletes
// from the store and then drops the service from the registry. Declining is
// not an error.
func (s *Service) Delete(ctx context.Context, req DeleteRequest) (DeleteResult, error) {
	account, err := s.Accounts.Account(ctx, req.Account)
	if err != nil {
		return DeleteResult{}, err
	}
	result := DeleteResult{Service: req.Service, Account: account}

	if !req.Yes {
		confirmed := false
		if s.Confirm != nil {
			confirmed, err = s.Confirm.Confirm(DeleteQuestion(req.Service, account))
			if err != nil {
				return DeleteResult{}, err
			}
		}
		if !confirmed {
			result.Aborted = true
			return result, nil
		}
	}

	if err := s.Backend.Delete(ctx, account, req.Service); err != nil {
		return DeleteResult{}, err
	}
	if err := s.Registry.Remove(account, req.Service); err != nil {
		return DeleteResult{}, fmt.Errorf("secret removed but registry not updated: %w", err)
	}
	s.audit(func(a Auditor) error { return a.LogDelete(account, req.Service, s.BackendName) })

	s.Log.Debug().Str("account", account).Str("service", req.Service).Msg("secret removed")
	return result, nil
}

// ListRequest enumerates tracked services.
type ListRequest struct {
	Account string
	Match   string // optional doublestar glob over service names
}

// ListResult holds the tracked services in lexical order.
type ListResult struct {
	Account  string   `json:"account"`
	Services []string `json:"services"`
}

// List resolves the account and reads its services from the registry.
func (s *Service) List(ctx context.Context, req ListRequest) (ListResult, error) {
	if req.Match != "" && !doublestar.ValidatePattern(req.Match) {
		return ListResult{}, fmt.Errorf("%w %q", ErrInvalidPattern, req.Match)
	}
	account, err := s.Accounts.Account(ctx, req.Account)
	if err != nil {
		return ListResult{}, err
	}
	services, err := s.Registry.List(account)
	if err != nil {
		return ListResult{}, err
	}
	services, err = filterServices(services, req.Match)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Account: account, Services: services}, nil
}

// ListAll returns every tracked account with its services.
func (s *Service) ListAll(match string) ([]ListResult, error) {
	if match != "" && !doublestar.ValidatePattern(match) {
		return nil, fmt.Errorf("%w %q", ErrInvalidPattern, match)
	}
	m, err := s.Registry.Load()
	if err != nil {
		return nil, err
	}

	results := make([]ListResult, 0, len(m))
	for _, account := range m.Accounts() {
		services, err := filterServices(m.Services(account), match)
		if err != nil {
			return nil, err
		}
		if len(services) == 0 {
			continue
		}
		results = append(results, ListResult{Account: account, Services: services})
	}
	return results, nil
}

func filterServices(services []string, pattern string) ([]string, error) {
	if pattern == "" {
		return services, nil
	}
	matched := make([]string, 0, len(services))
	for _, service := range services {
		ok, err := doublestar.Match(pattern, service)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
		}
		if ok {
			matched = append(matched, service)
		}
	}
	return matched, nil
}

// audit failures are reported but never undo a completed store change.
func (s *Service) audit(record func(Auditor) error) {
	if s.Audit == nil {
		return
	}
	if err := record(s.Audit); err != nil {
		s.Log.Warn().Err(err).Msg("audit log not written")
	}
}
