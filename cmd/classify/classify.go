// Package classify handles the filename classification command
package classify

import (
	"strings"

	"github.com/gphunter1004/automation/cmd/common"
	"github.com/gphunter1004/automation/cmd/root"
	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/textutils"

	"github.com/spf13/cobra"
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify <filename>...",
	Short: "Classify receipt filenames into expense categories",
	Long: `Classify receipt filenames into expense categories using the keyword table,
and show the names and business purpose extracted from each filename.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if listCategories {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: classifyFunc,
}

var listCategories bool

func init() {
	Cmd.Flags().BoolVar(&listCategories, "categories", false, "List the categories and keywords in priority order")
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	appContainer, err := root.GetContainer()
	if err != nil {
		return err
	}
	classifier := appContainer.GetClassifier()
	if listCategories {
		tbl := common.NewTable("CODE", "CATEGORY", "KEYWORDS")
		for _, def := range classifier.Definitions() {
			tbl.Row(string(def.Code), def.Label, strings.Join(def.Keywords, ","))
		}
		return tbl.Render(cmd.OutOrStdout())
	}
	logger := root.Log.WithField(logging.FieldOperation, "classify")

	tbl := common.NewTable("FILE", "CODE", "CATEGORY", "KEYWORD", "NAMES", "PURPOSE")
	for _, name := range args {
		code, keyword, matched := classifier.Match(name)
		if !matched {
			keyword = "-"
		}
		purpose := ""
		if code.IsBusinessTrip() {
			purpose = textutils.ExtractBusinessPurpose(name)
		}
		tbl.Row(name, string(code), code.Label(), keyword, textutils.ExtractNames(name), purpose)
	}
	logger.Debug("Filenames classified", logging.Field{Key: logging.FieldCount, Value: len(args)})
	return tbl.Render(cmd.OutOrStdout())
}
