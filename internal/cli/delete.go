package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binbandit/keychainctl/internal/app"
	"github.com/binbandit/keychainctl/internal/commands"
)

func newDeleteCmd() *cobra.Command {
	return commands.GenerateCobraCommand("delete", runDelete, completeDynamic)
}

func runDelete(cmd *cobra.Command, args []string) error {
	account, _ := cmd.Flags().GetString("account")
	yes, _ := cmd.Flags().GetBool("yes")

	// A JSON caller cannot answer the prompt.
	if isJSONOutput() && !yes {
		return newCodedError(ErrConfirmationRequired, "Pass --yes to delete without confirmation",
			"refusing to delete `%s` without confirmation", args[0])
	}

	svc, closeFn, err := newService("delete", true)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := svc.Delete(cmd.Context(), app.DeleteRequest{
		Service: args[0],
		Account: account,
		Yes:     yes,
	})
	if err != nil {
		return err
	}

	if isJSONOutput() {
		emitSuccess(result, nil)
		return nil
	}
	if result.Aborted {
		fmt.Println("Aborted.")
		return nil
	}
	fmt.Printf("Removed secret for service `%s` (account %s).\n", result.Service, result.Account)
	return nil
}
