// Package testutil provides reusable test utilities for keychainctl
// integration tests: an isolated config home, a fake security tool and a
// harness that runs the built binary.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// DefaultAccount is the $USER every run sees.
const DefaultAccount = "alice"

// fakeSecurity mimics the parts of /usr/bin/security keychainctl uses,
// keeping one file per (account, service) under $FAKE_KEYCHAIN_DIR.
const fakeSecurity = `#!/bin/sh
dir="${FAKE_KEYCHAIN_DIR:?}"
cmd="$1"
shift
account=""
service=""
value=""
while [ $# -gt 0 ]; do
	case "$1" in
	-a) account="$2"; shift 2 ;;
	-s) service="$2"; shift 2 ;;
	-w)
		if [ "$cmd" = "find-generic-password" ]; then
			shift
		else
			value="$2"
			shift 2
		fi
		;;
	*) shift ;;
	esac
done
key=$(printf '%s\t%s' "$account" "$service" | cksum | cut -d' ' -f1)
item="$dir/$key"
missing="security: SecKeychainSearchCopyNext: The specified item could not be found in the keychain."
case "$cmd" in
find-generic-password)
	if [ -f "$item" ]; then
		cat "$item"
		printf '\n'
		exit 0
	fi
	echo "$missing" >&2
	exit 44
	;;
add-generic-password)
	printf '%s' "$value" > "$item"
	exit 0
	;;
delete-generic-password)
	if [ -f "$item" ]; then
		rm -f "$item"
		echo "password has been deleted."
		exit 0
	fi
	echo "$missing" >&2
	exit 44
	;;
esac
echo "security: unknown command $cmd" >&2
exit 1
`

// TestHome is an isolated keychainctl environment: a config root, a fake
// keychain and the environment the binary runs with.
type TestHome struct {
	Root        string // XDG_CONFIG_HOME
	KeychainDir string
	Security    string // path of the fake security tool
	t           *testing.T
	config      string
	registry    string
	env         map[string]string
}

// NewTestHome creates a new test home builder.
// Call Build() to create the directories.
func NewTestHome(t *testing.T) *TestHome {
	t.Helper()
	return &TestHome{t: t, env: make(map[string]string)}
}

// WithConfig sets the config.toml content.
func (h *TestHome) WithConfig(toml string) *TestHome {
	h.config = toml
	return h
}

// WithRegistry sets the initial registry.txt content.
func (h *TestHome) WithRegistry(content string) *TestHome {
	h.registry = content
	return h
}

// WithEnv sets an extra environment variable for every run.
func (h *TestHome) WithEnv(key, value string) *TestHome {
	h.env[key] = value
	return h
}

// Build creates the directories and files. Tests are skipped where the
// fake security tool cannot run.
func (h *TestHome) Build() *TestHome {
	h.t.Helper()
	if runtime.GOOS == "windows" {
		h.t.Skip("fake security tool needs a POSIX shell")
	}

	base := h.t.TempDir()
	h.Root = filepath.Join(base, "config")
	h.KeychainDir = filepath.Join(base, "keychain")
	h.Security = filepath.Join(base, "bin", "security")

	h.mkdir(h.KeychainDir)
	h.mkdir(filepath.Dir(h.Security))
	if err := os.WriteFile(h.Security, []byte(fakeSecurity), 0o755); err != nil {
		h.t.Fatalf("failed to write fake security tool: %v", err)
	}

	if h.config != "" {
		h.writeFile("config.toml", h.config)
	}
	if h.registry != "" {
		h.writeFile("registry.txt", h.registry)
	}
	return h
}

// ConfigDir returns the keychainctl directory inside Root.
func (h *TestHome) ConfigDir() string {
	return filepath.Join(h.Root, "keychainctl")
}

// Environ returns the environment for a run.
func (h *TestHome) Environ() []string {
	env := []string{
		"XDG_CONFIG_HOME=" + h.Root,
		"USER=" + DefaultAccount,
		"KEYCHAINCTL_SECURITY_BINARY=" + h.Security,
		"FAKE_KEYCHAIN_DIR=" + h.KeychainDir,
	}
	if path := os.Getenv("PATH"); path != "" {
		env = append(env, "PATH="+path)
	}
	if home := os.Getenv("HOME"); home != "" {
		env = append(env, "HOME="+home)
	}
	for k, v := range h.env {
		env = append(env, k+"="+v)
	}
	return env
}

func (h *TestHome) mkdir(dir string) {
	h.t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
}

func (h *TestHome) writeFile(name, content string) {
	h.t.Helper()
	h.mkdir(h.ConfigDir())
	if err := os.WriteFile(filepath.Join(h.ConfigDir(), name), []byte(content), 0o600); err != nil {
		h.t.Fatalf("failed to write %s: %v", name, err)
	}
}

// ReadFile reads a file from the config directory; missing files read as "".
func (h *TestHome) ReadFile(name string) string {
	h.t.Helper()
	data, err := os.ReadFile(filepath.Join(h.ConfigDir(), name))
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		h.t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

// FileExists checks if a file exists in the config directory.
func (h *TestHome) FileExists(name string) bool {
	_, err := os.Stat(filepath.Join(h.ConfigDir(), name))
	return err == nil
}
