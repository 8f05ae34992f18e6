// Package resolve determines the effective account and secret value for an
// invocation from its competing input sources.
package resolve

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/binbandit/keychainctl/internal/logging"
	"github.com/binbandit/keychainctl/internal/proc"
)

// UserEnvVar names the current user.
const UserEnvVar = "USER"

// DefaultWhoamiBinary is queried when neither a flag nor USER names the account.
const DefaultWhoamiBinary = "/usr/bin/whoami"

// AccountResolutionError reports that no account could be determined.
type AccountResolutionError struct {
	Reason string
	Err    error
}

func (e *AccountResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to determine account: %s: %v", e.Reason, e.Err)
	}
	return "failed to determine account: " + e.Reason
}

func (e *AccountResolutionError) Unwrap() error { return e.Err }

// AccountResolver picks the account an invocation acts on.
type AccountResolver struct {
	Getenv func(string) string
	Runner proc.Runner
	Whoami string
	Log    logging.Logger
}

// NewAccountResolver returns a resolver reading the process environment and
// running whoami through runner.
func NewAccountResolver(whoami string, runner proc.Runner, log logging.Logger) *AccountResolver {
	if strings.TrimSpace(whoami) == "" {
		whoami = DefaultWhoamiBinary
	}
	return &AccountResolver{Getenv: os.Getenv, Runner: runner, Whoami: whoami, Log: log}
}

// Account returns the first of: explicit (when not blank), $USER (when not
// blank), the output of whoami.
func (r *AccountResolver) Account(ctx context.Context, explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		r.Log.Debug().Str("account", explicit).Str("source", "flag").Msg("account resolved")
		return explicit, nil
	}

	if user := r.Getenv(UserEnvVar); strings.TrimSpace(user) != "" {
		r.Log.Debug().Str("account", user).Str("source", "env").Msg("account resolved")
		return user, nil
	}

	res, err := r.Runner.Run(ctx, r.Whoami)
	if err != nil {
		return "", &AccountResolutionError{Reason: "could not run " + r.Whoami, Err: err}
	}
	if !res.Success() {
		return "", &AccountResolutionError{Reason: fmt.Sprintf("%s exited with status %d", r.Whoami, res.ExitCode)}
	}
	account := strings.TrimRight(string(res.Stdout), "\r\n")
	if strings.TrimSpace(account) == "" {
		return "", &AccountResolutionError{Reason: r.Whoami + " printed no user name"}
	}
	r.Log.Debug().Str("account", account).Str("source", "whoami").Msg("account resolved")
	return account, nil
}
