package secretstore

import (
	"fmt"
	"strings"

	"github.com/binbandit/keychainctl/internal/logging"
	"github.com/binbandit/keychainctl/internal/proc"
)

// Backend names accepted by Open.
const (
	BackendSecurity = "security"
	BackendKeyring  = "keyring"
	BackendSystem   = "system"
)

// Names lists the accepted backend names. MemoryBackend is not among them:
// it keeps nothing across invocations, so the registry would list services
// that no longer exist.
var Names = []string{BackendSecurity, BackendKeyring, BackendSystem}

// Options carries what the individual backends need.
type Options struct {
	SecurityBinary string
	Runner         proc.Runner
	Keyring        KeyringOptions
	Log            logging.Logger
}

// Open returns the backend called name. An empty name selects security.
func Open(name string, opts Options) (Backend, error) {
	if opts.Runner == nil {
		opts.Runner = proc.ExecRunner{}
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendSecurity:
		return NewSecurityBackend(opts.SecurityBinary, opts.Runner, opts.Log), nil
	case BackendKeyring:
		return NewKeyringBackend(NewKeyringOpener(opts.Keyring), opts.Log), nil
	case BackendSystem:
		return NewSystemBackend(opts.Log), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want one of %s)", name, strings.Join(Names, ", "))
	}
}
