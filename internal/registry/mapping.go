// Package registry keeps the index of service names known per account.
//
// The registry is only an index: the secret store stays the source of truth
// for which secrets exist. An account is never kept with an empty service
// set.
package registry

import "sort"

// Mapping is the in-memory registry: account -> set of service names.
type Mapping map[string]map[string]struct{}

// Add records service under account.
func (m Mapping) Add(account, service string) {
	services, ok := m[account]
	if !ok {
		services = make(map[string]struct{})
		m[account] = services
	}
	services[service] = struct{}{}
}

// Remove drops service from account and removes the account once its set
// is empty. It reports whether the account was tracked at all.
func (m Mapping) Remove(account, service string) bool {
	services, ok := m[account]
	if !ok {
		return false
	}
	delete(services, service)
	if len(services) == 0 {
		delete(m, account)
	}
	return true
}

// Has reports whether service is tracked under account.
func (m Mapping) Has(account, service string) bool {
	_, ok := m[account][service]
	return ok
}

// Services returns the services tracked for account in lexical order.
// An untracked account yields an empty, non-nil slice.
func (m Mapping) Services(account string) []string {
	services := make([]string, 0, len(m[account]))
	for service := range m[account] {
		services = append(services, service)
	}
	sort.Strings(services)
	return services
}

// Accounts returns all tracked accounts in lexical order.
func (m Mapping) Accounts() []string {
	accounts := make([]string, 0, len(m))
	for account := range m {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)
	return accounts
}

// Len returns the total number of (account, service) records.
func (m Mapping) Len() int {
	n := 0
	for _, services := range m {
		n += len(services)
	}
	return n
}
