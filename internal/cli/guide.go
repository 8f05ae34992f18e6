package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binbandit/keychainctl/docs"
	"github.com/binbandit/keychainctl/internal/commands"
	"github.com/binbandit/keychainctl/internal/ui"
)

func newGuideCmd() *cobra.Command {
	return commands.GenerateCobraCommand("guide", runGuide, completeDynamic)
}

func runGuide(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return listGuideTopics()
	}

	content, err := docs.Read(args[0])
	if err != nil {
		if errors.Is(err, docs.ErrUnknownTopic) {
			return newCodedError(ErrInvalidInput, "Run 'keychainctl guide' to list topics", "%s", err)
		}
		return err
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"topic": args[0], "content": content}, nil)
		return nil
	}

	if !ui.StdoutIsTTY() {
		fmt.Print(content)
		return nil
	}
	rendered, err := ui.RenderMarkdown(content, ui.TermWidth())
	if err != nil {
		fmt.Print(content)
		return nil
	}
	fmt.Print(rendered)
	return nil
}

func listGuideTopics() error {
	topics, err := docs.Topics()
	if err != nil {
		return err
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"topics": topics}, &Meta{Count: len(topics)})
		return nil
	}

	table := ui.NewTable(2)
	for _, t := range topics {
		table.AddRow(ui.Name(t.Name), ui.Hint(t.Title))
	}
	fmt.Println(ui.Header("Guide topics"))
	fmt.Print(table.String())
	fmt.Println()
	fmt.Println(ui.Hint("Read one with 'keychainctl guide <topic>'."))
	return nil
}
