// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/binbandit/keychainctl/internal/commands"
	"github.com/binbandit/keychainctl/internal/config"
	"github.com/binbandit/keychainctl/internal/logging"
	"github.com/binbandit/keychainctl/internal/prompt"
	"github.com/binbandit/keychainctl/internal/ui"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Resolved values
	resolvedConfigPath string
	resolvedConfigDir  string
	cfg                *config.Config
	logger             = logging.Nop()

	// Warnings collected while loading, reported with the command's output.
	loadWarnings []Warning

	// Set once a command's RunE starts; errors before that are usage errors.
	commandRan bool
)

func newRootCmd() *cobra.Command {
	jsonOutput = false
	configPath = ""
	verbose = false
	commandRan = false

	root := &cobra.Command{
		Use:   "keychainctl",
		Short: "keychainctl - manage secrets in the OS keychain",
		Long: `keychainctl stores, retrieves and removes secrets in the operating system's
credential store, keyed by account and service name.

It keeps a small registry of the services it has stored so they can be listed
later; the keychain itself remains the source of truth for values.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip config resolution for commands that don't need it
			switch cmd.Name() {
			case "completion", "help", "version", "guide":
				return nil
			}
			if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
				return nil
			}
			if err := loadRuntime(); err != nil {
				return err
			}
			logger.Debug().
				Str("command", cmd.CommandPath()).
				Strs("flags", commands.ChangedFlags(cmd.Flags())).
				Msg("running command")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log diagnostics to stderr")

	root.AddCommand(
		newGetCmd(),
		newSetCmd(),
		newDeleteCmd(),
		newListCmd(),
		newHistoryCmd(),
		newConfigCmd(),
		newGuideCmd(),
		newVersionCmd(),
	)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})
	trackRun(root)

	return root
}

// trackRun wraps every RunE in the tree so execute can tell handler errors
// from cobra's own argument, flag and lookup errors.
func trackRun(cmd *cobra.Command) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			commandRan = true
			return run(c, args)
		}
	}
	for _, sub := range cmd.Commands() {
		trackRun(sub)
	}
}

// Execute runs the CLI.
func Execute() error {
	return execute(os.Args[1:])
}

func execute(args []string) error {
	var err error
	if req, ok := parseFastGet(args); ok {
		err = runFastGet(req)
	} else {
		root := newRootCmd()
		root.SetArgs(args)
		err = root.Execute()
		if err != nil && !commandRan {
			err = usageError(err)
		}
	}
	if err != nil {
		reportError(err)
	}
	return err
}

// reportError prints err once: as the JSON envelope, or on stderr.
func reportError(err error) {
	if isJSONOutput() {
		code, suggestion := classifyError(err)
		outputError(code, err.Error(), nil, suggestion)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
}

// loadRuntime resolves the config directory, loads the config and builds
// the logger.
func loadRuntime() error {
	dir, err := config.Dir()
	if err != nil {
		return &configError{err: err}
	}

	path := configPath
	if strings.TrimSpace(path) == "" {
		path = filepath.Join(dir, config.FileName)
	}

	loaded, err := config.Load(path)
	if err != nil {
		return &configError{err: err}
	}

	cfg = loaded
	resolvedConfigDir = dir
	resolvedConfigPath = path
	loadWarnings = nil

	if !ui.ConfigureAccent(cfg.UI.Accent) {
		loadWarnings = append(loadWarnings, Warning{
			Code:    WarnInvalidAccent,
			Message: fmt.Sprintf("ignoring ui.accent %q: want 0-255 or #RRGGBB", cfg.UI.Accent),
		})
	}

	logger = logging.New(os.Stderr, logging.Options{
		Level:   cfg.Log.Level,
		Verbose: verbose,
		NoColor: !prompt.IsTerminal(os.Stderr),
	})
	logger.Debug().
		Str("config", resolvedConfigPath).
		Str("backend", cfg.Backend).
		Str("registry", cfg.Registry.Driver).
		Msg("configuration loaded")

	for _, w := range loadWarnings {
		logger.Warn().Msg(w.Message)
	}
	return nil
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// getConfigDir returns the resolved configuration directory.
func getConfigDir() (string, error) {
	if resolvedConfigDir != "" {
		return resolvedConfigDir, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", &configError{err: err}
	}
	return dir, nil
}
