package cli

import (
	"context"

	"github.com/binbandit/keychainctl/docs"
	"github.com/binbandit/keychainctl/internal/commands"
	"github.com/binbandit/keychainctl/internal/registry"
	"github.com/binbandit/keychainctl/internal/resolve"
)

// completeDynamic supplies shell completions for service names and guide
// topics. Completion never fails loudly; it offers nothing instead.
func completeDynamic(kind, toComplete string) []string {
	switch kind {
	case commands.CompleteTopics:
		topics, err := docs.Topics()
		if err != nil {
			return nil
		}
		names := make([]string, 0, len(topics))
		for _, t := range topics {
			names = append(names, t.Name)
		}
		return names
	case commands.CompleteServices:
		return completeServices()
	default:
		return nil
	}
}

func completeServices() []string {
	if err := loadRuntime(); err != nil {
		return nil
	}
	c := getConfig()

	store, err := registry.Open(c.Registry.Driver, c.RegistryDir(resolvedConfigDir), logger)
	if err != nil {
		return nil
	}
	defer store.Close()

	account, err := resolve.NewAccountResolver(c.Identity.Whoami, runner, logger).Account(context.Background(), "")
	if err != nil {
		return nil
	}
	services, err := store.List(account)
	if err != nil {
		return nil
	}
	return services
}
