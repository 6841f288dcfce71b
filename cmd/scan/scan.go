// Package scan handles building a receipt collection from files on disk
package scan

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gphunter1004/automation/cmd/common"
	"github.com/gphunter1004/automation/cmd/root"
	"github.com/gphunter1004/automation/internal/collection"
	"github.com/gphunter1004/automation/internal/fileutils"
	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/models"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	userName     string
	tripContent  string
	resultsFile  string
	jsonOutput   bool
	showProgress bool
)

// Cmd represents the scan command
var Cmd = &cobra.Command{
	Use:   "scan <path>...",
	Short: "Build a receipt collection from files and directories",
	Long: `Scan receipt files and directories, validate and deduplicate them, classify
each file and print the pending collection with its generated remarks.

With --results the collection is submitted offline and written as a JSON array
of result records. Fill in merchant, amount and issue date, then run export.`,
	Args: cobra.MinimumNArgs(1),
	RunE: scanFunc,
}

func init() {
	Cmd.Flags().StringVarP(&userName, "user", "u", "", "User name for remarks (default: saved form)")
	Cmd.Flags().StringVar(&tripContent, "trip-content", "", "Business content applied to business trip receipts")
	Cmd.Flags().StringVarP(&resultsFile, "results", "r", "", "Write result records as JSON to this file")
	Cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the collection as JSON")
	Cmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress indicator while scanning")
}

func scanFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	appContainer, err := root.GetContainer()
	if err != nil {
		return err
	}
	logger := root.Log.WithField(logging.FieldOperation, "scan")

	form, err := appContainer.LoadForm()
	if err != nil {
		return err
	}
	if userName != "" {
		form.UserName = userName
	}

	manager := appContainer.GetManager()
	manager.OnUserNameChanged(form.UserName)

	var progress func()
	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Scanning receipts"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		progress = func() {
			if err := bar.Add(1); err != nil {
				logger.WithError(err).Debug("Failed to update progress bar")
			}
		}
	}

	sources, err := fileutils.CollectSourceFiles(ctx, args, logger, progress)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("failed to scan files: %w", err)
	}

	result, err := manager.AddFiles(sources, collection.Primary)
	if err != nil {
		return err
	}
	common.PrintRejections(cmd.ErrOrStderr(), result.Rejected, result.Skipped)

	if tripContent != "" {
		for _, rec := range manager.Records(collection.Primary) {
			if rec.Category.IsBusinessTrip() {
				if err := manager.EditField(rec.ID, collection.FieldBusinessContent, tripContent); err != nil {
					return err
				}
			}
		}
	}

	out := cmd.OutOrStdout()
	records := manager.Records(collection.Primary)
	if jsonOutput {
		if err := common.WriteJSON(out, records); err != nil {
			return err
		}
	} else {
		if err := common.PrintRecords(out, records); err != nil {
			return err
		}
		common.PrintSummary(out, manager.Summary(collection.Primary))
	}

	if resultsFile == "" {
		return nil
	}
	return writeResults(ctx, manager, form, out)
}

// writeResults submits the primary collection to the offline submitter and
// saves the result records.
func writeResults(ctx context.Context, manager *collection.Manager, form models.FormFields, out io.Writer) error {
	results, err := manager.Submit(ctx, OfflineSubmitter(), collection.Primary, form)
	if err != nil {
		return fmt.Errorf("cannot create results: %w", err)
	}

	file, err := os.Create(resultsFile)
	if err != nil {
		return fmt.Errorf("error creating results file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := common.WriteJSON(file, results); err != nil {
		return fmt.Errorf("error writing results: %w", err)
	}
	_, err = fmt.Fprintf(out, "wrote %d result records to %s\n", len(results), resultsFile)
	return err
}

// OfflineSubmitter answers a submission without OCR: one result per file
// carrying the pending metadata, with merchant, amount and issue date left
// for the user to fill in.
func OfflineSubmitter() collection.Submitter {
	return collection.SubmitterFunc(func(_ context.Context, sub collection.Submission) ([]models.ResultRecord, error) {
		results := make([]models.ResultRecord, len(sub.Files))
		for i, f := range sub.Files {
			results[i] = models.ResultRecord{
				ID:              models.NewRecordID(),
				FileName:        f.Source.Name,
				Category:        f.Category,
				Remark:          f.Remark,
				Purpose:         f.Purpose,
				BusinessContent: f.BusinessContent,
				BusinessPurpose: f.Purpose,
			}
		}
		return results, nil
	})
}
