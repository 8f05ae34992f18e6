package cli

import (
	"errors"
	"fmt"

	"github.com/binbandit/keychainctl/internal/app"
	"github.com/binbandit/keychainctl/internal/registry"
	"github.com/binbandit/keychainctl/internal/resolve"
	"github.com/binbandit/keychainctl/internal/secretstore"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	ErrInvalidInput            = "INVALID_INPUT"
	ErrAccountResolutionFailed = "ACCOUNT_RESOLUTION_FAILED"
	ErrMissingSecretInput      = "MISSING_SECRET_INPUT"
	ErrSecretNotFound          = "SECRET_NOT_FOUND"
	ErrStoreError              = "STORE_ERROR"
	ErrRegistryIOError         = "REGISTRY_IO_ERROR"
	ErrConfigInvalid           = "CONFIG_INVALID"
	ErrConfirmationRequired    = "CONFIRMATION_REQUIRED"
	ErrInternal                = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnAuditDisabled = "AUDIT_DISABLED"
	WarnInvalidAccent = "INVALID_ACCENT"
)

// configError marks failures to locate or load the configuration.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// codedError carries an explicit code and suggestion.
type codedError struct {
	code       string
	msg        string
	suggestion string
	err        error
}

func (e *codedError) Error() string { return e.msg }
func (e *codedError) Unwrap() error { return e.err }

// usageError marks err as a command-line usage mistake: unknown commands or
// flags, wrong argument counts, conflicting flags.
func usageError(err error) error {
	var coded *codedError
	var cfgErr *configError
	if errors.As(err, &coded) || errors.As(err, &cfgErr) {
		return err
	}
	return &codedError{
		code:       ErrInvalidInput,
		msg:        err.Error(),
		suggestion: "Run 'keychainctl --help' for usage",
		err:        err,
	}
}

func newCodedError(code, suggestion, format string, args ...interface{}) error {
	return &codedError{code: code, msg: fmt.Sprintf(format, args...), suggestion: suggestion}
}

// classifyError maps err to a stable code and an optional suggestion.
func classifyError(err error) (code, suggestion string) {
	var (
		coded      *codedError
		cfgErr     *configError
		accountErr *resolve.AccountResolutionError
		storeErr   *secretstore.StoreError
		regErr     *registry.IOError
	)

	switch {
	case errors.As(err, &coded):
		return coded.code, coded.suggestion
	case errors.As(err, &cfgErr):
		return ErrConfigInvalid, "Run 'keychainctl config path' to locate the config file"
	case errors.As(err, &accountErr):
		return ErrAccountResolutionFailed, "Pass --account or set $USER"
	case errors.Is(err, resolve.ErrMissingSecretInput):
		return ErrMissingSecretInput, ""
	case errors.Is(err, app.ErrInvalidPattern):
		return ErrInvalidInput, "See 'keychainctl guide registry' for --match syntax"
	case errors.Is(err, secretstore.ErrNotFound):
		return ErrSecretNotFound, "Run 'keychainctl list' to see tracked services"
	case errors.As(err, &regErr):
		return ErrRegistryIOError, ""
	case errors.As(err, &storeErr):
		return ErrStoreError, ""
	default:
		return ErrInternal, ""
	}
}
