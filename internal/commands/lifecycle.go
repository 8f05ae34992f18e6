package commands

import "strings"

// ResolveCommandID resolves a CLI command path to a registry command ID.
// Paths are matched with surrounding and repeated spaces collapsed, so
// "config  init" resolves to "config init".
func ResolveCommandID(path string) (string, bool) {
	normalized := strings.Join(strings.Fields(path), " ")
	if normalized == "" {
		return "", false
	}
	if _, ok := Registry[normalized]; ok {
		return normalized, true
	}
	return "", false
}

// LookupMetaByPath resolves a CLI command path and returns the registry metadata.
func LookupMetaByPath(path string) (string, Meta, bool) {
	id, ok := ResolveCommandID(path)
	if !ok {
		return "", Meta{}, false
	}
	meta, ok := Registry[id]
	return id, meta, ok
}

// Mutates reports whether the command at path can change the secret store,
// the registry or the config file.
func Mutates(path string) bool {
	_, meta, ok := LookupMetaByPath(path)
	return ok && meta.Mutates
}
