// Package normalize handles the receipt date normalization command
package normalize

import (
	"fmt"
	"time"

	"github.com/gphunter1004/automation/cmd/common"
	"github.com/gphunter1004/automation/internal/dateutils"

	"github.com/spf13/cobra"
)

// now is replaced in tests.
var now = time.Now

// Cmd represents the normalize command
var Cmd = &cobra.Command{
	Use:   "normalize <date>...",
	Short: "Normalize OCR receipt dates",
	Long: `Normalize receipt dates as printed on receipts or returned by OCR into
YYYYMMDD, the MM/DD remark fragment and the YYYY/MM/DD HH:MM display form.
With --pay-date the payment date for today is printed instead.`,
	RunE: normalizeFunc,
}

func init() {
	Cmd.Flags().Bool("pay-date", false, "Print the payment date for today")
}

func normalizeFunc(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	payDate, _ := cmd.Flags().GetBool("pay-date")
	if payDate {
		_, err := fmt.Fprintln(out, dateutils.CalculatePaymentDate(now()))
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("at least one date is required")
	}

	tbl := common.NewTable("INPUT", "YYYYMMDD", "MM/DD", "STANDARD", "HOUR")
	for _, text := range args {
		hour := "-"
		if h := dateutils.ExtractHour(text); h >= 0 {
			hour = fmt.Sprintf("%02d", h)
		}
		tbl.Row(
			text,
			dateutils.Normalize(dateutils.CleanDateString(text)),
			dateutils.FormatToMMDD(text),
			dateutils.FormatStandardAt(text, now()),
			hour)
	}
	return tbl.Render(out)
}
