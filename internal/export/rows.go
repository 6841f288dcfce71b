// Package export turns OCR result records into ledger rows and writes them as
// CSV or XLSX in the column layout the accounting system imports.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/gphunter1004/automation/internal/dateutils"
	"github.com/gphunter1004/automation/internal/ledgererror"
	"github.com/gphunter1004/automation/internal/models"
	"github.com/gphunter1004/automation/internal/remark"
	"github.com/gphunter1004/automation/internal/textutils"
)

// VATAmount is written in the VAT_AM column of every row; receipt amounts are
// imported VAT inclusive.
const VATAmount = "0"

// Headers are the ledger column names in output order.
var Headers = []string{
	"CASH_CD", "RMK_DC", "TR_NM", "SUP_AM", "VAT_AM",
	"ATTR_CD", "ISS_DT", "PAY_DT", "BANK_CD", "BA_NB",
	"DEPOSITOR_DC", "DEPT_CD", "EMP_CD",
}

// LedgerRow is one line of the exported ledger.
type LedgerRow struct {
	CashCD      string `csv:"CASH_CD" json:"CASH_CD"`
	RmkDC       string `csv:"RMK_DC" json:"RMK_DC"`
	TrNM        string `csv:"TR_NM" json:"TR_NM"`
	SupAM       string `csv:"SUP_AM" json:"SUP_AM"`
	VatAM       string `csv:"VAT_AM" json:"VAT_AM"`
	AttrCD      string `csv:"ATTR_CD" json:"ATTR_CD"`
	IssDT       string `csv:"ISS_DT" json:"ISS_DT"`
	PayDT       string `csv:"PAY_DT" json:"PAY_DT"`
	BankCD      string `csv:"BANK_CD" json:"BANK_CD"`
	BaNB        string `csv:"BA_NB" json:"BA_NB"`
	DepositorDC string `csv:"DEPOSITOR_DC" json:"DEPOSITOR_DC"`
	DeptCD      string `csv:"DEPT_CD" json:"DEPT_CD"`
	EmpCD       string `csv:"EMP_CD" json:"EMP_CD"`
}

// Values returns the row's cells in Headers order.
func (r LedgerRow) Values() []string {
	return []string{
		r.CashCD, r.RmkDC, r.TrNM, r.SupAM, r.VatAM,
		r.AttrCD, r.IssDT, r.PayDT, r.BankCD, r.BaNB,
		r.DepositorDC, r.DeptCD, r.EmpCD,
	}
}

// BuildRows converts result records into ledger rows sorted by issue date.
// The amount falls back to supply plus VAT when no usage amount is present.
// Records without a remark get the default remark for the form's user and a
// leading MM/DD placeholder is replaced by the issue date. Records
// without a payment date get the one computed from now, and an empty
// attribute code falls back to models.DefaultAttrCD.
func BuildRows(results []models.ResultRecord, form models.FormFields, now time.Time) ([]LedgerRow, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to export: %w", ledgererror.ErrEmptyCollection)
	}

	attrCD := form.AttrCD
	if attrCD == "" {
		attrCD = models.DefaultAttrCD
	}
	payDate := dateutils.CalculatePaymentDate(now)

	rows := make([]LedgerRow, len(results))
	for i, r := range results {
		rmk := remark.FillDate(r.Remark, r.IssueDate)
		if rmk == "" {
			rmk = remark.GenerateDefault(r.IssueDate, form.UserName, r.Category)
		}
		payDT := r.PayDate
		if payDT == "" {
			payDT = payDate
		}

		rows[i] = LedgerRow{
			CashCD:      string(r.Category),
			RmkDC:       rmk,
			TrNM:        r.Merchant,
			SupAM:       textutils.CleanAmount(textutils.ResolveAmount(r.Amount, r.SupplyAmount, r.VATAmount)),
			VatAM:       VATAmount,
			AttrCD:      attrCD,
			IssDT:       dateutils.Normalize(r.IssueDate),
			PayDT:       payDT,
			BankCD:      form.BankCD,
			BaNB:        form.BANB,
			DepositorDC: form.DepositorDC,
			DeptCD:      form.DeptCD,
			EmpCD:       form.EmpCD,
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].IssDT < rows[j].IssDT
	})
	return rows, nil
}

// DefaultFileName names a ledger of count rows exported on now's date.
func DefaultFileName(count int, format string, now time.Time) string {
	if format == "" {
		format = FormatXLSX
	}
	return fmt.Sprintf("ledger_%d_files_%s.%s", count, dateutils.CurrentYYYYMMDD(now), format)
}

// ReadResults decodes a JSON array of result records.
func ReadResults(r io.Reader) ([]models.ResultRecord, error) {
	var results []models.ResultRecord
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("error decoding results: %w", err)
	}
	return results, nil
}
