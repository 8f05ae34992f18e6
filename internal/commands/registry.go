// Package commands provides a central registry of keychainctl CLI commands.
// This registry is the single source of truth for command metadata: usage,
// help text, flags and completion hints.
package commands

// Meta defines metadata for a CLI command, used to generate its Cobra
// command and help text.
type Meta struct {
	Name        string     // Command name (e.g., "get", "config path")
	Description string     // Short description
	LongDesc    string     // Long description (for --help)
	Args        []ArgMeta  // Positional arguments
	Flags       []FlagMeta // Command flags
	Exclusive   [][]string // Flag groups of which at most one may be set
	Examples    []string   // Usage examples
	Mutates     bool       // Changes the secret store or registry
}

// ArgMeta defines a positional argument.
type ArgMeta struct {
	Name        string   // Argument name
	Description string   // Description
	Required    bool     // Is this argument required?
	Completions []string // Static completions (if any)
	DynamicComp string   // Dynamic completion kind: "services", "topics"
}

// FlagMeta defines a command flag.
type FlagMeta struct {
	Name        string   // Flag name (e.g., "value", "account")
	Short       string   // Short flag (e.g., "v" for -v)
	Description string   // Description
	Type        FlagType // Type of flag
	Default     string   // Default value
}

// FlagType represents the type of a flag.
type FlagType string

const (
	FlagTypeString FlagType = "string"
	FlagTypeBool   FlagType = "bool"
	FlagTypeInt    FlagType = "int"
)

// Dynamic completion kinds.
const (
	CompleteServices = "services"
	CompleteTopics   = "topics"
)

var accountFlag = FlagMeta{
	Name:        "account",
	Short:       "a",
	Description: "Keychain account (defaults to $USER, then whoami)",
	Type:        FlagTypeString,
}

// Registry holds all registered commands.
var Registry = map[string]Meta{
	"get": {
		Name:        "get",
		Description: "Print a stored secret",
		LongDesc: `Prints the secret stored for a service to stdout, followed by a newline.

The value is read from the configured secret store; the registry is not
consulted. A missing secret is an error.`,
		Args: []ArgMeta{
			{Name: "service", Description: "Service name the secret is stored under", Required: true, DynamicComp: CompleteServices},
		},
		Flags: []FlagMeta{accountFlag},
		Examples: []string{
			"keychainctl get github-token",
			"keychainctl get github-token -a work",
			"export NPM_TOKEN=\"$(keychainctl get npm)\"",
		},
	},
	"set": {
		Name:        "set",
		Description: "Store or replace a secret",
		LongDesc: `Stores a secret for a service, replacing any existing value, and records the
service in the registry so 'keychainctl list' can show it.

The value comes from the first of:
  --value          used verbatim
  --stdin          read from standard input (trailing newline stripped)
  piped input      when stdin is not a terminal and --prompt is not set
  --prompt         hidden prompt on the terminal (the default on a terminal)

Passing --value exposes the secret to shell history and the process list.`,
		Args: []ArgMeta{
			{Name: "service", Description: "Service name to store the secret under", Required: true, DynamicComp: CompleteServices},
		},
		Flags: []FlagMeta{
			accountFlag,
			{Name: "value", Short: "v", Description: "Secret value (visible in shell history)", Type: FlagTypeString},
			{Name: "stdin", Description: "Read the secret from standard input", Type: FlagTypeBool},
			{Name: "prompt", Description: "Prompt for the secret with hidden input", Type: FlagTypeBool},
		},
		Exclusive: [][]string{{"value", "stdin", "prompt"}},
		Examples: []string{
			"keychainctl set github-token --prompt",
			"printf '%s' \"$TOKEN\" | keychainctl set github-token",
			"keychainctl set npm --stdin -a work < token.txt",
		},
		Mutates: true,
	},
	"delete": {
		Name:        "delete",
		Description: "Remove a stored secret",
		LongDesc: `Removes the secret for a service from the secret store and drops the service
from the registry. Asks for confirmation unless --yes is given; declining
leaves everything untouched. Deleting a secret that does not exist succeeds.`,
		Args: []ArgMeta{
			{Name: "service", Description: "Service name of the secret to remove", Required: true, DynamicComp: CompleteServices},
		},
		Flags: []FlagMeta{
			accountFlag,
			{Name: "yes", Short: "y", Description: "Skip the confirmation prompt", Type: FlagTypeBool},
		},
		Examples: []string{
			"keychainctl delete github-token",
			"keychainctl delete github-token --yes",
		},
		Mutates: true,
	},
	"list": {
		Name:        "list",
		Description: "List services with tracked secrets",
		LongDesc: `Lists the services recorded in the registry for an account, one per line in
lexical order. The registry only knows about secrets set through keychainctl.`,
		Flags: []FlagMeta{
			accountFlag,
			{Name: "all", Description: "List every tracked account", Type: FlagTypeBool},
			{Name: "match", Short: "m", Description: "Only services matching a glob (e.g. 'github/*')", Type: FlagTypeString},
			{Name: "format", Short: "f", Description: "Output format: text or yaml", Type: FlagTypeString, Default: "text"},
		},
		Exclusive: [][]string{{"account", "all"}},
		Examples: []string{
			"keychainctl list",
			"keychainctl list --match 'aws/**'",
			"keychainctl list --all --format yaml",
		},
	},
	"history": {
		Name:        "history",
		Description: "Show recorded set and delete operations",
		LongDesc: `Shows the audit log of secret changes made through keychainctl. Entries never
contain secret values. Enable recording with 'audit.enabled = true' in the
config file.`,
		Flags: []FlagMeta{
			accountFlag,
			{Name: "limit", Short: "n", Description: "Show only the most recent entries", Type: FlagTypeInt, Default: "20"},
		},
		Examples: []string{
			"keychainctl history",
			"keychainctl history -n 5 --json",
		},
	},
	"config": {
		Name:        "config",
		Description: "Inspect or create the configuration file",
	},
	"config path": {
		Name:        "config path",
		Description: "Print the configuration file path",
	},
	"config show": {
		Name:        "config show",
		Description: "Print the effective configuration",
		LongDesc: `Prints the configuration after defaults, the config file and KEYCHAINCTL_*
environment overrides have been applied.`,
	},
	"config init": {
		Name:        "config init",
		Description: "Write a default configuration file",
		LongDesc:    `Writes the default configuration file. An existing file is left untouched.`,
		Mutates:     true,
	},
	"guide": {
		Name:        "guide",
		Description: "Read the built-in guide",
		Args: []ArgMeta{
			{Name: "topic", Description: "Guide topic (omit to list topics)", DynamicComp: CompleteTopics},
		},
		Examples: []string{
			"keychainctl guide",
			"keychainctl guide backends",
		},
	},
	"version": {
		Name:        "version",
		Description: "Show keychainctl version and build information",
	},
}
