package resolve

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/binbandit/keychainctl/internal/logging"
)

// ErrMissingSecretInput means set had no usable source for the secret.
var ErrMissingSecretInput = errors.New("No secret provided. Use --value, --stdin, or --prompt (or pipe data).")

// SecretPromptLabel is shown before hidden input.
const SecretPromptLabel = "Secret value: "

// Source identifies where a secret value comes from.
type Source int

const (
	SourceNone Source = iota
	SourceValue
	SourceStdin
	SourcePrompt
)

func (s Source) String() string {
	switch s {
	case SourceValue:
		return "value"
	case SourceStdin:
		return "stdin"
	case SourcePrompt:
		return "prompt"
	default:
		return "none"
	}
}

// Request is what the caller asked for on the command line. At most one of
// HasValue, StdinFlag and PromptFlag is set; the CLI rejects combinations.
type Request struct {
	Value      string
	HasValue   bool
	StdinFlag  bool
	PromptFlag bool
}

// ChooseSource decides where the secret comes from. It is pure so the
// precedence can be tested without terminals or pipes.
func ChooseSource(req Request, interactive bool) Source {
	switch {
	case req.HasValue:
		return SourceValue
	case req.StdinFlag || (!interactive && !req.PromptFlag):
		return SourceStdin
	case req.PromptFlag || interactive:
		return SourcePrompt
	default:
		return SourceNone
	}
}

// Input is the ambient terminal state the secret resolver reads from.
type Input struct {
	Stdin       io.Reader
	Interactive func() bool
	Prompt      func(label string) (string, error)
}

// SecretResolver produces the secret value for set.
type SecretResolver struct {
	Input Input
	Log   logging.Logger
}

// NewSecretResolver returns a SecretResolver over in.
func NewSecretResolver(in Input, log logging.Logger) *SecretResolver {
	return &SecretResolver{Input: in, Log: log}
}

// SecretValue resolves the value for req.
//
// Explicit and prompted values are used verbatim. Values read from stdin
// lose trailing CR/LF characters. When stdin was picked only because it is
// not a terminal and it turns out to be empty, ErrMissingSecretInput is
// returned instead of storing an empty secret.
func (r *SecretResolver) SecretValue(req Request) (string, error) {
	interactive := r.Input.Interactive != nil && r.Input.Interactive()
	source := ChooseSource(req, interactive)
	r.Log.Debug().Stringer("source", source).Bool("interactive", interactive).Msg("secret source chosen")

	switch source {
	case SourceValue:
		return req.Value, nil
	case SourceStdin:
		if r.Input.Stdin == nil {
			return "", ErrMissingSecretInput
		}
		data, err := io.ReadAll(r.Input.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read secret from stdin: %w", err)
		}
		if len(data) == 0 && !req.StdinFlag {
			return "", ErrMissingSecretInput
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	case SourcePrompt:
		if r.Input.Prompt == nil {
			return "", ErrMissingSecretInput
		}
		value, err := r.Input.Prompt(SecretPromptLabel)
		if err != nil {
			return "", fmt.Errorf("failed to read secret from prompt: %w", err)
		}
		return value, nil
	default:
		return "", ErrMissingSecretInput
	}
}
