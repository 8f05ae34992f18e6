package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RunFunc executes a generated command.
type RunFunc func(cmd *cobra.Command, args []string) error

// CompleteFunc supplies dynamic completions of the given kind.
type CompleteFunc func(kind, toComplete string) []string

// GenerateCobraCommand creates a Cobra command from registry metadata.
// Use, Short, Long, Args and flags come from the registry; the handler logic
// stays with the caller. It returns nil for an unknown command.
func GenerateCobraCommand(name string, run RunFunc, complete CompleteFunc) *cobra.Command {
	meta, ok := Registry[name]
	if !ok {
		return nil
	}

	// The registry key is the full path; Use takes the last word.
	use := name
	if i := strings.LastIndex(name, " "); i >= 0 {
		use = name[i+1:]
	}
	for _, arg := range meta.Args {
		if arg.Required {
			use += fmt.Sprintf(" <%s>", arg.Name)
		} else {
			use += fmt.Sprintf(" [%s]", arg.Name)
		}
	}

	minArgs := 0
	maxArgs := len(meta.Args)
	for _, arg := range meta.Args {
		if arg.Required {
			minArgs++
		}
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: meta.Description,
		Long:  BuildLongDesc(meta),
	}

	if minArgs == maxArgs {
		if minArgs == 0 {
			cmd.Args = cobra.NoArgs
		} else {
			cmd.Args = cobra.ExactArgs(minArgs)
		}
	} else {
		cmd.Args = cobra.RangeArgs(minArgs, maxArgs)
	}

	for _, flag := range meta.Flags {
		addFlag(cmd.Flags(), flag)
	}
	for _, group := range meta.Exclusive {
		cmd.MarkFlagsMutuallyExclusive(group...)
	}

	if len(meta.Args) > 0 {
		cmd.ValidArgsFunction = generateCompletionFunc(meta.Args, complete)
	}

	if run != nil {
		cmd.RunE = run
	}

	return cmd
}

func addFlag(fs *pflag.FlagSet, flag FlagMeta) {
	switch flag.Type {
	case FlagTypeBool:
		fs.BoolP(flag.Name, flag.Short, flag.Default == "true", flag.Description)
	case FlagTypeInt:
		defaultInt, _ := strconv.Atoi(flag.Default)
		fs.IntP(flag.Name, flag.Short, defaultInt, flag.Description)
	default:
		fs.StringP(flag.Name, flag.Short, flag.Default, flag.Description)
	}
}

// ChangedFlags returns the names of flags set on the command line, sorted.
func ChangedFlags(fs *pflag.FlagSet) []string {
	var names []string
	fs.Visit(func(f *pflag.Flag) {
		names = append(names, f.Name)
	})
	sort.Strings(names)
	return names
}

// BuildLongDesc joins the long description and examples.
func BuildLongDesc(meta Meta) string {
	longDesc := meta.Description
	if meta.LongDesc != "" {
		longDesc = meta.LongDesc
	}
	if len(meta.Examples) == 0 {
		return longDesc
	}

	var b strings.Builder
	b.WriteString(longDesc)
	b.WriteString("\n\nExamples:\n")
	for _, ex := range meta.Examples {
		b.WriteString("  ")
		b.WriteString(ex)
		b.WriteString("\n")
	}
	return b.String()
}

// generateCompletionFunc creates a shell completion function based on arg metadata.
func generateCompletionFunc(args []ArgMeta, complete CompleteFunc) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, completedArgs []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		argIndex := len(completedArgs)
		if argIndex >= len(args) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		arg := args[argIndex]

		if len(arg.Completions) > 0 {
			return filterPrefix(arg.Completions, toComplete), cobra.ShellCompDirectiveNoFileComp
		}

		if arg.DynamicComp != "" && complete != nil {
			return filterPrefix(complete(arg.DynamicComp, toComplete), toComplete), cobra.ShellCompDirectiveNoFileComp
		}

		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func filterPrefix(candidates []string, prefix string) []string {
	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			matches = append(matches, c)
		}
	}
	return matches
}

// GetCommandMeta returns the metadata for a command.
func GetCommandMeta(name string) (Meta, bool) {
	meta, ok := Registry[name]
	return meta, ok
}

// AllCommandNames returns all registered command names, sorted.
func AllCommandNames() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
