package cli

import (
	"errors"
	"path/filepath"

	"github.com/binbandit/keychainctl/internal/app"
	"github.com/binbandit/keychainctl/internal/audit"
	"github.com/binbandit/keychainctl/internal/commands"
	"github.com/binbandit/keychainctl/internal/config"
	"github.com/binbandit/keychainctl/internal/proc"
	"github.com/binbandit/keychainctl/internal/prompt"
	"github.com/binbandit/keychainctl/internal/registry"
	"github.com/binbandit/keychainctl/internal/resolve"
	"github.com/binbandit/keychainctl/internal/secretstore"
)

// Seams replaced in tests.
var (
	openBackend             = secretstore.Open
	newTerminal             = prompt.NewTerminal
	runner      proc.Runner = proc.ExecRunner{}
)

// newService wires an app.Service for the command at path. The registry is
// opened only when withRegistry is set; the caller must call the returned
// close function.
func newService(path string, withRegistry bool) (*app.Service, func(), error) {
	c := getConfig()
	term := newTerminal()

	backend, err := openBackend(c.Backend, secretstore.Options{
		SecurityBinary: c.Security.Binary,
		Runner:         runner,
		Keyring: secretstore.KeyringOptions{
			Backends: c.Keyring.Backends,
			FileDir:  c.Keyring.FileDir,
			FilePassword: func(label string) (string, error) {
				return term.ReadSecret(label + ": ")
			},
		},
		Log: logger,
	})
	if err != nil {
		return nil, nil, &configError{err: err}
	}

	svc := &app.Service{
		Backend:     backend,
		BackendName: c.Backend,
		Accounts:    resolve.NewAccountResolver(c.Identity.Whoami, runner, logger),
		Secrets: resolve.NewSecretResolver(resolve.Input{
			Stdin:       term.In,
			Interactive: term.Interactive,
			Prompt:      term.ReadSecret,
		}, logger),
		Confirm: term,
		Log:     logger,
	}

	dir, err := getConfigDir()
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {}
	if withRegistry {
		store, err := registry.Open(c.Registry.Driver, c.RegistryDir(dir), logger)
		if err != nil {
			var ioErr *registry.IOError
			if errors.As(err, &ioErr) {
				return nil, nil, err
			}
			return nil, nil, &configError{err: err}
		}
		svc.Registry = store
		closeFn = func() {
			if err := store.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close registry")
			}
		}
	}

	if commands.Mutates(path) {
		svc.Audit = newAuditLogger(dir)
	}

	return svc, closeFn, nil
}

func newAuditLogger(configDir string) *audit.Logger {
	return audit.New(filepath.Join(configDir, config.AuditFileName), getConfig().Audit.Enabled)
}

// emitSuccess writes a JSON success envelope including load warnings.
func emitSuccess(data interface{}, meta *Meta) {
	if len(loadWarnings) > 0 {
		outputSuccessWithWarnings(data, loadWarnings, meta)
		return
	}
	outputSuccess(data, meta)
}
