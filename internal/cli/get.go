package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binbandit/keychainctl/internal/app"
	"github.com/binbandit/keychainctl/internal/commands"
)

func newGetCmd() *cobra.Command {
	return commands.GenerateCobraCommand("get", func(cmd *cobra.Command, args []string) error {
		account, _ := cmd.Flags().GetString("account")
		return runGet(cmd.Context(), app.GetRequest{Service: args[0], Account: account})
	}, completeDynamic)
}

// runGet serves both the cobra command and the fast path.
func runGet(ctx context.Context, req app.GetRequest) error {
	if ctx == nil {
		ctx = context.Background()
	}

	svc, closeFn, err := newService("get", false)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := svc.Get(ctx, req)
	if err != nil {
		return err
	}

	if isJSONOutput() {
		emitSuccess(result, nil)
		return nil
	}
	fmt.Println(result.Value)
	return nil
}
