package commands

import (
	"testing"

	"github.com/spf13/cobra"
)

// TestRegistryHasRequiredCommands verifies that essential commands exist.
func TestRegistryHasRequiredCommands(t *testing.T) {
	requiredCommands := []string{
		"get", "set", "delete", "list",
		"config", "config path", "config show", "config init",
		"history", "guide", "version",
	}

	for _, cmd := range requiredCommands {
		if _, ok := Registry[cmd]; !ok {
			t.Errorf("Registry missing required command %q", cmd)
		}
	}
}

// TestRegistryMetadataComplete verifies all commands have required metadata.
func TestRegistryMetadataComplete(t *testing.T) {
	for name, meta := range Registry {
		t.Run(name, func(t *testing.T) {
			if meta.Name != name {
				t.Errorf("Name = %q, want registry key %q", meta.Name, name)
			}
			if meta.Description == "" {
				t.Error("Command has empty Description")
			}

			for i, arg := range meta.Args {
				if arg.Name == "" {
					t.Errorf("Arg %d has empty Name", i)
				}
				if arg.Description == "" {
					t.Errorf("Arg %q has empty Description", arg.Name)
				}
			}

			flags := make(map[string]bool)
			for i, flag := range meta.Flags {
				if flag.Name == "" {
					t.Errorf("Flag %d has empty Name", i)
				}
				if flag.Description == "" {
					t.Errorf("Flag %q has empty Description", flag.Name)
				}
				if flag.Type == "" {
					t.Errorf("Flag %q has empty Type", flag.Name)
				}
				flags[flag.Name] = true
			}
			for _, group := range meta.Exclusive {
				for _, name := range group {
					if !flags[name] {
						t.Errorf("Exclusive group names unknown flag %q", name)
					}
				}
			}
		})
	}
}

// TestCobraCommandGeneration verifies Cobra command generation works.
func TestCobraCommandGeneration(t *testing.T) {
	cmd := GenerateCobraCommand("set", nil, nil)
	if cmd == nil {
		t.Fatal("GenerateCobraCommand returned nil for 'set'")
	}

	if cmd.Use != "set <service>" {
		t.Errorf("Use = %q, want 'set <service>'", cmd.Use)
	}

	value := cmd.Flags().Lookup("value")
	if value == nil {
		t.Fatal("Missing 'value' flag")
	}
	if value.Shorthand != "v" {
		t.Errorf("value shorthand = %q, want 'v'", value.Shorthand)
	}
	if cmd.Flags().Lookup("account").Shorthand != "a" {
		t.Error("account flag should have shorthand 'a'")
	}
}

func TestCobraCommandRejectsExclusiveFlags(t *testing.T) {
	cmd := GenerateCobraCommand("set", nil, nil)
	cmd.RunE = func(*cobra.Command, []string) error { return nil }
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"svc", "--value", "x", "--stdin"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when --value and --stdin are combined")
	}
}

func TestCobraCommandNestedUse(t *testing.T) {
	cmd := GenerateCobraCommand("config init", nil, nil)
	if cmd == nil {
		t.Fatal("GenerateCobraCommand returned nil for 'config init'")
	}
	if cmd.Use != "init" {
		t.Errorf("Use = %q, want 'init'", cmd.Use)
	}
}

func TestCobraCommandWithOptionalArgs(t *testing.T) {
	cmd := GenerateCobraCommand("guide", nil, nil)
	if cmd.Use != "guide [topic]" {
		t.Errorf("Use = %q, want 'guide [topic]'", cmd.Use)
	}
}

func TestIntFlagDefault(t *testing.T) {
	cmd := GenerateCobraCommand("history", nil, nil)
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		t.Fatalf("GetInt(limit): %v", err)
	}
	if limit != 20 {
		t.Errorf("limit default = %d, want 20", limit)
	}
}

func TestDynamicCompletion(t *testing.T) {
	var asked string
	cmd := GenerateCobraCommand("get", nil, func(kind, _ string) []string {
		asked = kind
		return []string{"github", "gitlab", "npm"}
	})

	got, _ := cmd.ValidArgsFunction(cmd, nil, "git")
	if asked != CompleteServices {
		t.Errorf("completion kind = %q, want %q", asked, CompleteServices)
	}
	if len(got) != 2 || got[0] != "github" || got[1] != "gitlab" {
		t.Errorf("completions = %v, want [github gitlab]", got)
	}

	got, _ = cmd.ValidArgsFunction(cmd, []string{"github"}, "")
	if len(got) != 0 {
		t.Errorf("completions past last arg = %v, want none", got)
	}
}

// TestAllCommandsGeneratable verifies all registry commands can generate Cobra commands.
func TestAllCommandsGeneratable(t *testing.T) {
	for _, name := range AllCommandNames() {
		t.Run(name, func(t *testing.T) {
			if cmd := GenerateCobraCommand(name, nil, nil); cmd == nil {
				t.Errorf("GenerateCobraCommand returned nil for %q", name)
			}
		})
	}
}

func TestChangedFlags(t *testing.T) {
	cmd := GenerateCobraCommand("list", nil, nil)
	cmd.RunE = func(*cobra.Command, []string) error { return nil }
	cmd.SetArgs([]string{"--match", "git*", "-a", "bob"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := ChangedFlags(cmd.Flags())
	if len(got) != 2 || got[0] != "account" || got[1] != "match" {
		t.Errorf("ChangedFlags = %v, want [account match]", got)
	}
}
