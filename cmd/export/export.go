// Package export handles writing result records as a ledger file
package export

import (
	"fmt"
	"os"
	"time"

	"github.com/gphunter1004/automation/cmd/root"
	"github.com/gphunter1004/automation/internal/export"
	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/validation"

	"github.com/spf13/cobra"
)

// now is replaced in tests.
var now = time.Now

var (
	inputFile  string
	outputFile string
	format     string
	userName   string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export result records as an XLSX or CSV ledger",
	Long: `Export a JSON array of result records as an expense ledger. Rows are sorted
by issue date; form fields come from the saved form and configured defaults.`,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Result records JSON file")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Ledger file (.xlsx or .csv) (default: ledger_<rows>_files_<YYYYMMDD>.<format>)")
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: xlsx or csv (default: from output extension)")
	Cmd.Flags().StringVarP(&userName, "user", "u", "", "User name for generated remarks (default: saved form)")
	_ = Cmd.MarkFlagRequired("input")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidPath(inputFile); err != nil {
		return err
	}
	if format != "" {
		if err := validation.IsValidOutputFormat(format); err != nil {
			return err
		}
	}

	appContainer, err := root.GetContainer()
	if err != nil {
		return err
	}
	logger := root.Log.WithFields(
		logging.Field{Key: logging.FieldOperation, Value: "export"},
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
	)

	form, err := appContainer.LoadForm()
	if err != nil {
		return err
	}
	if userName != "" {
		form.UserName = userName
	}

	file, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("error opening results: %w", err)
	}
	results, err := export.ReadResults(file)
	_ = file.Close()
	if err != nil {
		return err
	}

	rows, err := export.BuildRows(results, form, now())
	if err != nil {
		return err
	}
	logger.Debug("Ledger rows built", logging.Field{Key: logging.FieldCount, Value: len(rows)})

	output := outputFile
	if output == "" {
		output = export.DefaultFileName(len(rows), format, now())
	}
	if err := appContainer.GetWriter().WriteFile(output, format, rows); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", len(rows), output)
	return err
}
