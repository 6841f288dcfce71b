package export

import (
	"strings"
	"testing"
	"time"

	"github.com/gphunter1004/automation/internal/ledgererror"
	"github.com/gphunter1004/automation/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 4, 5, 9, 0, 0, 0, time.UTC)

func sampleResults() []models.ResultRecord {
	return []models.ResultRecord{
		{
			FileName:  "lunch.jpg",
			Category:  models.CategoryLunch,
			Merchant:  "Cafe Namu",
			Amount:    "32,300 원",
			IssueDate: "2025. 4. 23. 12: 30:00",
		},
		{
			FileName:  "dinner.jpg",
			Category:  models.CategoryDinner,
			Remark:    "04/20_Kim,Lee_dinner",
			Amount:    "1000",
			IssueDate: "25.04.20",
			PayDate:   "20250515",
		},
	}
}

func sampleForm() models.FormFields {
	return models.FormFields{UserName: "Kim", BankCD: "088", BANB: "110-123", DeptCD: "D1", EmpCD: "E7", DepositorDC: "Kim"}
}

func TestBuildRows(t *testing.T) {
	rows, err := BuildRows(sampleResults(), sampleForm(), testNow)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, LedgerRow{
		CashCD: "6130", RmkDC: "04/20_Kim,Lee_dinner", SupAM: "1000", VatAM: "0",
		AttrCD: "8A", IssDT: "20250420", PayDT: "20250515",
		BankCD: "088", BaNB: "110-123", DepositorDC: "Kim", DeptCD: "D1", EmpCD: "E7",
	}, rows[0])

	assert.Equal(t, LedgerRow{
		CashCD: "6120", RmkDC: "04/23_Kim_lunch", TrNM: "Cafe Namu", SupAM: "32300", VatAM: "0",
		AttrCD: "8A", IssDT: "20250423", PayDT: "20250415",
		BankCD: "088", BaNB: "110-123", DepositorDC: "Kim", DeptCD: "D1", EmpCD: "E7",
	}, rows[1])
}

func TestBuildRows_AttrCDFromForm(t *testing.T) {
	form := sampleForm()
	form.AttrCD = "9Z"
	rows, err := BuildRows(sampleResults()[:1], form, testNow)
	require.NoError(t, err)
	assert.Equal(t, "9Z", rows[0].AttrCD)
}

func TestBuildRows_Empty(t *testing.T) {
	_, err := BuildRows(nil, sampleForm(), testNow)
	assert.ErrorIs(t, err, ledgererror.ErrEmptyCollection)
}

func TestLedgerRow_ValuesMatchHeaders(t *testing.T) {
	assert.Len(t, LedgerRow{}.Values(), len(Headers))
}

func TestReadResults(t *testing.T) {
	input := `[{"fileName":"a.jpg","category":"6120","amount":"5,000","issueDate":"20250401","merchant":"Deli"}]`
	results, err := ReadResults(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.CategoryLunch, results[0].Category)
	assert.Equal(t, "Deli", results[0].Merchant)

	_, err = ReadResults(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestBuildRows_FillsPlaceholderDate(t *testing.T) {
	results := []models.ResultRecord{{
		Category:  models.CategoryLunch,
		Remark:    "MM/DD_Kim,Lee_lunch",
		IssueDate: "2025-04-23 12:30",
	}}
	rows, err := BuildRows(results, sampleForm(), testNow)
	require.NoError(t, err)
	assert.Equal(t, "04/23_Kim,Lee_lunch", rows[0].RmkDC)
	assert.Equal(t, "20250423", rows[0].IssDT)
}

func TestBuildRows_AmountFallback(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		supply string
		vat    string
		want   string
	}{
		{name: "usage amount", amount: "12,000원", supply: "9,000", vat: "900", want: "12000"},
		{name: "zero usage uses supply and vat", amount: "0", supply: "10,000", vat: "1,000", want: "11000"},
		{name: "missing usage uses supply", supply: "7,500", want: "7500"},
		{name: "nothing", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := []models.ResultRecord{{
				Category:     models.CategoryLunch,
				Amount:       tt.amount,
				SupplyAmount: tt.supply,
				VATAmount:    tt.vat,
				IssueDate:    "20250423",
			}}
			rows, err := BuildRows(results, sampleForm(), testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows[0].SupAM)
		})
	}
}

func TestDefaultFileName(t *testing.T) {
	assert.Equal(t, "ledger_3_files_20250405.xlsx", DefaultFileName(3, "", testNow))
	assert.Equal(t, "ledger_1_files_20250405.csv", DefaultFileName(1, FormatCSV, testNow))
}
