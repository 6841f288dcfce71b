package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gphunter1004/automation/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRows(t *testing.T) []LedgerRow {
	t.Helper()
	rows, err := BuildRows(sampleResults(), sampleForm(), testNow)
	require.NoError(t, err)
	return rows
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(';', nil).WriteCSV(&buf, sampleRows(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Headers, ";"), lines[0])
	assert.Equal(t, "6130;04/20_Kim,Lee_dinner;;1000;0;8A;20250420;20250515;088;110-123;Kim;D1;E7", lines[1])
	assert.Equal(t, "6120;04/23_Kim_lunch;Cafe Namu;32300;0;8A;20250423;20250415;088;110-123;Kim;D1;E7", lines[2])
}

func TestWriteXLSX_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(0, nil).WriteXLSX(&buf, sampleRows(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	cell := func(ref string) string {
		v, err := f.GetCellValue(SheetName, ref)
		require.NoError(t, err)
		return v
	}

	assert.Empty(t, cell("A1"))
	assert.Equal(t, "CASH_CD", cell("A2"))
	assert.Equal(t, "EMP_CD", cell("M2"))
	assert.Empty(t, cell("A3"))
	assert.Equal(t, "6130", cell("A4"))
	assert.Equal(t, "04/23_Kim_lunch", cell("B5"))
	assert.Equal(t, "20250423", cell("G5"))

	width, err := f.GetColWidth(SheetName, "M")
	require.NoError(t, err)
	assert.Equal(t, float64(ColumnWidth), width)

	styleID, err := f.GetCellStyle(SheetName, "A2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	mock := logging.NewMockLogger()
	w := NewWriter(',', mock)
	rows := sampleRows(t)

	csvPath := filepath.Join(dir, "out", "ledger.csv")
	require.NoError(t, w.WriteFile(csvPath, "", rows))
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "CASH_CD,RMK_DC"))

	xlsxPath := filepath.Join(dir, "ledger.xlsx")
	require.NoError(t, w.WriteFile(xlsxPath, "", rows))
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	assert.NoError(t, f.Close())

	assert.Error(t, w.WriteFile(filepath.Join(dir, "ledger.txt"), "", rows))
	assert.True(t, mock.HasEntry("INFO", "Ledger written"))
}
