package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binbandit/keychainctl/internal/buildinfo"
	"github.com/binbandit/keychainctl/internal/commands"
)

var currentBuild = buildinfo.Current

func newVersionCmd() *cobra.Command {
	return commands.GenerateCobraCommand("version", runVersion, nil)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := currentBuild()
	if isJSONOutput() {
		outputSuccess(info, nil)
		return nil
	}
	fmt.Println(info.String())
	return nil
}
