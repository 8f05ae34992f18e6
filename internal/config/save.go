package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/binbandit/keychainctl/internal/atomicfile"
)

const defaultHeader = `# keychainctl configuration
#
# backend: security (macOS security tool), keyring (99designs keyring)
#          or system (OS credential vault)
# registry.driver: text (registry.txt) or sqlite (registry.db)
# Every key can be overridden with KEYCHAINCTL_<SECTION>_<KEY>, e.g.
# KEYCHAINCTL_REGISTRY_DRIVER=sqlite.

`

// Encode renders cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = Default()
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the default config to path unless a file already
// exists there. It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	body, err := Encode(Default())
	if err != nil {
		return false, err
	}
	data := append([]byte(defaultHeader), body...)

	if err := atomicfile.WriteFile(path, data, 0o600); err != nil {
		return false, fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return true, nil
}
