package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/binbandit/keychainctl/internal/app"
	"github.com/binbandit/keychainctl/internal/commands"
	"github.com/binbandit/keychainctl/internal/ui"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

func newListCmd() *cobra.Command {
	return commands.GenerateCobraCommand("list", runList, completeDynamic)
}

func runList(cmd *cobra.Command, args []string) error {
	account, _ := cmd.Flags().GetString("account")
	all, _ := cmd.Flags().GetBool("all")
	match, _ := cmd.Flags().GetString("match")
	format, _ := cmd.Flags().GetString("format")

	format = strings.ToLower(strings.TrimSpace(format))
	if format != formatText && format != formatYAML {
		return newCodedError(ErrInvalidInput, "Use --format text or --format yaml", "unknown format %q", format)
	}

	svc, closeFn, err := newService("list", true)
	if err != nil {
		return err
	}
	defer closeFn()

	if all {
		results, err := svc.ListAll(match)
		if err != nil {
			return err
		}
		return printListAll(results, format)
	}

	result, err := svc.List(cmd.Context(), app.ListRequest{Account: account, Match: match})
	if err != nil {
		return err
	}
	return printList(result, format)
}

func printList(result app.ListResult, format string) error {
	if isJSONOutput() {
		emitSuccess(result, &Meta{Count: len(result.Services)})
		return nil
	}

	if format == formatYAML {
		return printYAML(map[string][]string{result.Account: result.Services})
	}

	if len(result.Services) == 0 {
		fmt.Printf("No tracked secrets for account %s.\n", result.Account)
		return nil
	}
	for _, service := range result.Services {
		fmt.Println(service)
	}
	return nil
}

func printListAll(results []app.ListResult, format string) error {
	total := 0
	for _, r := range results {
		total += len(r.Services)
	}

	if isJSONOutput() {
		emitSuccess(map[string]interface{}{"accounts": results}, &Meta{Count: total})
		return nil
	}

	if format == formatYAML {
		byAccount := make(map[string][]string, len(results))
		for _, r := range results {
			byAccount[r.Account] = r.Services
		}
		return printYAML(byAccount)
	}

	if total == 0 {
		fmt.Println("No tracked secrets.")
		return nil
	}

	table := ui.NewTable(2)
	table.AddRow(ui.Header("ACCOUNT"), ui.Header("SERVICE"))
	for _, r := range results {
		for _, service := range r.Services {
			table.AddRow(ui.Name(r.Account), service)
		}
	}
	fmt.Print(table.String())
	return nil
}

func printYAML(v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
