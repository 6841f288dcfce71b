// Package common contains shared functionality for command handlers
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/gphunter1004/automation/internal/collection"
	"github.com/gphunter1004/automation/internal/ledgererror"
	"github.com/gphunter1004/automation/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// columnGap separates table columns.
const columnGap = 2

// Table renders rows as borderless aligned columns.
type Table struct {
	t *table.Table
}

// NewTable starts a table; headers may be omitted.
func NewTable(headers ...string) *Table {
	cell := lipgloss.NewStyle()
	gap := lipgloss.NewStyle().PaddingLeft(columnGap)
	t := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return cell
			}
			return gap
		})
	if len(headers) > 0 {
		t.Headers(headers...)
	}
	return &Table{t: t}
}

// Row appends one row.
func (t *Table) Row(cells ...string) {
	t.t.Row(cells...)
}

// Render writes the table followed by a newline.
func (t *Table) Render(w io.Writer) error {
	_, err := fmt.Fprintln(w, t.t.String())
	return err
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintRecords writes pending records as a table.
func PrintRecords(w io.Writer, records []models.FileRecord) error {
	tbl := NewTable("FILE", "CATEGORY", "NAMES", "REMARK")
	for _, rec := range records {
		tbl.Row(rec.Source.Name, rec.Category.Label(), rec.AdditionalNames, rec.Remark)
	}
	return tbl.Render(w)
}

// PrintRejections writes one line per refused file.
func PrintRejections(w io.Writer, rejected []*ledgererror.RejectionError, skipped []string) {
	for _, rej := range rejected {
		fmt.Fprintf(w, "rejected: %s\n", rej.Error())
	}
	for _, name := range skipped {
		fmt.Fprintf(w, "skipped duplicate: %s\n", name)
	}
}

// PrintSummary writes the file count per category in code order.
func PrintSummary(w io.Writer, summary collection.Summary) {
	fmt.Fprintf(w, "total: %d\n", summary.Total)

	codes := make([]models.CategoryCode, 0, len(summary.ByCategory))
	for code := range summary.ByCategory {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, code := range codes {
		fmt.Fprintf(w, "  %s (%s): %d\n", code.Label(), code, summary.ByCategory[code])
	}
}
