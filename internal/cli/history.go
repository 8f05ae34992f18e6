package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/binbandit/keychainctl/internal/audit"
	"github.com/binbandit/keychainctl/internal/commands"
	"github.com/binbandit/keychainctl/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	return commands.GenerateCobraCommand("history", runHistory, nil)
}

func runHistory(cmd *cobra.Command, args []string) error {
	account, _ := cmd.Flags().GetString("account")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return newCodedError(ErrInvalidInput, "", "--limit must not be negative")
	}

	dir, err := getConfigDir()
	if err != nil {
		return err
	}
	log := newAuditLogger(dir)

	var entries []audit.Entry
	if strings.TrimSpace(account) != "" {
		entries, err = log.ReadForAccount(account)
	} else {
		entries, err = log.Read()
	}
	if err != nil {
		return newCodedError(ErrInternal, "", "%v", err)
	}
	entries = audit.Tail(entries, limit)

	if isJSONOutput() {
		var warnings []Warning
		if !log.Enabled() {
			warnings = append(warnings, Warning{Code: WarnAuditDisabled, Message: auditDisabledMessage()})
		}
		warnings = append(warnings, loadWarnings...)
		data := map[string]interface{}{"path": log.Path(), "entries": entries}
		outputSuccessWithWarnings(data, warnings, &Meta{Count: len(entries)})
		return nil
	}

	if !log.Enabled() {
		fmt.Println(ui.Warning(auditDisabledMessage()))
	}
	if len(entries) == 0 {
		fmt.Println("No recorded operations.")
		return nil
	}

	table := ui.NewTable(5)
	table.AddRow(ui.Header("TIME"), ui.Header("OP"), ui.Header("ACCOUNT"), ui.Header("SERVICE"), ui.Header("BACKEND"))
	for _, e := range entries {
		table.AddRow(
			e.Timestamp.Local().Format(time.DateTime),
			e.Operation,
			e.Account,
			ui.Name(e.Service),
			ui.Hint(e.Backend),
		)
	}
	fmt.Print(table.String())
	return nil
}

func auditDisabledMessage() string {
	return fmt.Sprintf("Audit logging is disabled; set audit.enabled = true in %s", resolvedConfigPath)
}
