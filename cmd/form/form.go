// Package form handles the persisted ledger form fields
package form

import (
	"fmt"
	"strings"

	"github.com/gphunter1004/automation/cmd/common"
	"github.com/gphunter1004/automation/cmd/root"
	"github.com/gphunter1004/automation/internal/ledgererror"
	"github.com/gphunter1004/automation/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the form command
var Cmd = &cobra.Command{
	Use:   "form",
	Short: "Show or change the saved ledger form fields",
	Long: `Show or change the ledger form fields (user name, bank and department codes)
saved between runs. Empty fields fall back to the configured defaults.`,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the form fields with defaults applied",
	Args:  cobra.NoArgs,
	RunE:  showFunc,
}

var setCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Save one form field",
	Long:  "Save one form field. Fields: " + strings.Join(models.FormFieldNames, ", "),
	Args:  cobra.ExactArgs(2),
	RunE:  setFunc,
}

func init() {
	Cmd.AddCommand(showCmd, setCmd)
}

func showFunc(cmd *cobra.Command, args []string) error {
	appContainer, err := root.GetContainer()
	if err != nil {
		return err
	}
	form, err := appContainer.LoadForm()
	if err != nil {
		return err
	}

	tbl := common.NewTable()
	for _, key := range models.FormFieldNames {
		value, _ := form.Get(key)
		tbl.Row(key, value)
	}
	return tbl.Render(cmd.OutOrStdout())
}

func setFunc(cmd *cobra.Command, args []string) error {
	key, value := args[0], strings.TrimSpace(args[1])

	appContainer, err := root.GetContainer()
	if err != nil {
		return err
	}
	store := appContainer.GetFormStore()

	form, err := store.Load()
	if err != nil {
		return err
	}
	if !form.Set(key, value) {
		return fmt.Errorf("%w: %s", ledgererror.ErrUnknownField, key)
	}
	if err := store.Save(form); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s saved to %s\n", key, store.Path())
	return err
}
