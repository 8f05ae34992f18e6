// Package docs bundles the long-form guide shipped with the keychainctl
// binary.
package docs

import "embed"

// FS contains the Markdown guide topics.
//
//go:embed guide/*.md
var FS embed.FS
