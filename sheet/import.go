package sheet

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/etnz/costsheet"
	"github.com/xuri/excelize/v2"
)

// Decode imports a workbook from its bytes. It is a costsheet.Decoder.
func Decode(data []byte) (costsheet.State, error) {
	return Import(bytes.NewReader(data))
}

// Import reads a workbook with the statement layout.
//
// The sheet named SheetName is read, or the first sheet when there is none.
// Header values come from rows 2 to 4. Item rows start right after the row
// whose first cell is "공정" and end at the first blank row or at the totals
// row, subtotal rows are skipped. Amounts are recomputed and rows get ids
// from 1 in order.
//
// Any failure returns a *StructureError and no state.
func Import(r io.Reader) (costsheet.State, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return costsheet.State{}, &StructureError{Reason: "not a readable xlsx workbook", Err: err}
	}
	defer f.Close()

	name := SheetName
	if idx, _ := f.GetSheetIndex(name); idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return costsheet.State{}, &StructureError{Reason: "workbook has no sheet"}
		}
		name = sheets[0]
	}
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return costsheet.State{}, &StructureError{Reason: fmt.Sprintf("cannot read sheet %q", name), Err: err}
	}

	header := -1
	for i, row := range rows {
		if trimmed(row, colCategory) == costsheet.FieldProcessCategory.Label() {
			header = i
			break
		}
	}
	if header < 0 {
		return costsheet.State{}, &StructureError{
			Reason: fmt.Sprintf("no header row in sheet %q: column A must contain %q above the items",
				name, costsheet.FieldProcessCategory.Label()),
		}
	}

	var items []costsheet.LineItem
scan:
	for _, row := range rows[header+1:] {
		switch classify(row) {
		case blankRow, totalsRow:
			break scan
		case subtotalRow:
			continue
		}
		items = append(items, costsheet.LineItem{
			ID:              len(items) + 1,
			ProcessCategory: cell(row, colCategory),
			ItemName:        cell(row, colItem),
			Spec:            cell(row, colSpec),
			Unit:            cell(row, colUnit),
			Quantity:        costsheet.ParseNumber(cell(row, colQuantity)),
			UnitPrice:       costsheet.ParseNumber(cell(row, colUnitPrice)),
			Vendor:          cell(row, colVendor),
			Note:            cell(row, colNote),
		})
	}

	s := costsheet.NewState()
	s.Ledger = costsheet.NewLedger(items...)
	s.Meta = readMeta(rows, s.Meta)
	s.Meta.RevenueAmount = manualRevenue(at(rows, rowProfit, "B"), s.WithMeta(withoutRevenue(s.Meta)))
	return s, nil
}

// readMeta reads the header block over defaults. Text is kept as written,
// a blank date stays blank.
func readMeta(rows [][]string, m costsheet.ProjectMeta) costsheet.ProjectMeta {
	m.ProjectName = at(rows, rowName, "B")
	m.Date = at(rows, rowName, "F")
	m.ContractAmount = costsheet.StripSeparators(at(rows, rowAmount, "B"))
	m.ContractCapacity = costsheet.ParseNumber(at(rows, rowAmount, "F"))
	return m
}

func withoutRevenue(m costsheet.ProjectMeta) costsheet.ProjectMeta {
	m.RevenueAmount = ""
	return m
}

// manualRevenue returns the revenue override carried by the revenue cell.
// The cell always holds the effective revenue on export: it is an override
// only when it differs from the revenue derived from the imported state.
func manualRevenue(raw string, derived costsheet.State) string {
	raw = costsheet.StripSeparators(raw)
	if raw == "" || raw == costsheet.Sentinel {
		return ""
	}
	if n, err := parseCell(raw); err == nil {
		if v, ok := derived.Metrics().Revenue.Value(); ok && v == n {
			return ""
		}
	}
	return raw
}

type rowKind int

const (
	itemRow rowKind = iota
	blankRow
	subtotalRow
	totalsRow
)

// classify tells item rows from the synthetic rows of an export. Synthetic
// rows never carry a quantity nor a unit price.
func classify(row []string) rowKind {
	blank := true
	for i := range columns {
		if trimmed(row, i) != "" {
			blank = false
			break
		}
	}
	switch {
	case blank:
		return blankRow
	case trimmed(row, colQuantity) != "" || trimmed(row, colUnitPrice) != "":
		return itemRow
	case isSubtotal(trimmed(row, colItem)) && trimmed(row, colCategory) == "":
		return subtotalRow
	}
	for i := range columns {
		if i != colAmount && trimmed(row, i) != "" {
			return itemRow
		}
	}
	return totalsRow
}

func isSubtotal(name string) bool {
	return strings.HasPrefix(name, "▶ ") && strings.HasSuffix(name, " 소계")
}

// cell returns the value at column index i, "" past the end of the row.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// trimmed is cell without surrounding blanks, for recognizing rows.
func trimmed(row []string, i int) string { return strings.TrimSpace(cell(row, i)) }

// at returns the value of a cell by its 1-indexed row and column letter.
func at(rows [][]string, row int, col string) string {
	if row-1 >= len(rows) {
		return ""
	}
	i, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		return ""
	}
	return cell(rows[row-1], i-1)
}

// parseCell parses a finite number.
func parseCell(s string) (float64, error) {
	n, err := strconv.ParseFloat(costsheet.StripSeparators(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return n, nil
}
