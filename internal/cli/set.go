package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binbandit/keychainctl/internal/app"
	"github.com/binbandit/keychainctl/internal/commands"
	"github.com/binbandit/keychainctl/internal/resolve"
)

func newSetCmd() *cobra.Command {
	return commands.GenerateCobraCommand("set", runSet, completeDynamic)
}

func runSet(cmd *cobra.Command, args []string) error {
	account, _ := cmd.Flags().GetString("account")
	value, _ := cmd.Flags().GetString("value")
	fromStdin, _ := cmd.Flags().GetBool("stdin")
	withPrompt, _ := cmd.Flags().GetBool("prompt")

	svc, closeFn, err := newService("set", true)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := svc.Set(cmd.Context(), app.SetRequest{
		Service: args[0],
		Account: account,
		Secret: resolve.Request{
			Value:      value,
			HasValue:   cmd.Flags().Changed("value"),
			StdinFlag:  fromStdin,
			PromptFlag: withPrompt,
		},
	})
	if err != nil {
		return err
	}

	if isJSONOutput() {
		emitSuccess(result, nil)
		return nil
	}
	fmt.Printf("Saved secret for service `%s` (account %s).\n", result.Service, result.Account)
	return nil
}
